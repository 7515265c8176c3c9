package message

import (
	"github.com/plgd-dev/coapmsg/message/codes"
)

// View is a read-only structural view over a validated CoAP datagram.
// It borrows the caller's buffer and owns no memory; the only way to obtain
// one is Parse, so every accessor may rely on a well-formed option region.
// The zero View is not valid.
type View struct {
	data         []byte
	tokenEnd     int
	optionsEnd   int
	payloadStart int
}

// Bytes returns the whole datagram.
func (v View) Bytes() []byte {
	return v.data
}

// Length returns the size of header plus content.
func (v View) Length() int {
	return len(v.data)
}

func (v View) Header() Header {
	var h Header
	copy(h[:], v.data)
	return h
}

func (v View) Type() Type {
	return v.Header().Type()
}

func (v View) Code() codes.Code {
	return v.Header().Code()
}

// MessageID returns the message ID in host byte order.
func (v View) MessageID() uint16 {
	return v.Header().MessageID()
}

func (v View) IsRequest() bool {
	return v.Code().IsRequest()
}

func (v View) IsResponse() bool {
	return v.Code().IsResponse()
}

// Token returns the token bytes borrowed from the datagram.
func (v View) Token() Token {
	if v.tokenEnd <= HeaderSize {
		return nil
	}
	return Token(v.data[HeaderSize:v.tokenEnd:v.tokenEnd])
}

// CopyToken copies the token into dst and returns its length.
func (v View) CopyToken(dst *[MaxTokenSize]byte) int {
	if v.tokenEnd <= HeaderSize {
		return 0
	}
	return copy(dst[:], v.data[HeaderSize:v.tokenEnd])
}

// Identity returns the (message ID, token) pair of the message.
func (v View) Identity() Identity {
	id := Identity{
		MessageID: v.MessageID(),
	}
	id.tokenLen = uint8(v.CopyToken(&id.token))
	return id
}

// TokenMatches reports whether the token of the message equals the token of
// id, regardless of the message IDs.
func (v View) TokenMatches(id Identity) bool {
	return id.TokenMatches(v.Token())
}

// Options returns an iterator positioned at the first option.
func (v View) Options() OptionIterator {
	return newOptionIterator(v.data[v.tokenEnd:v.optionsEnd])
}

// ForEachOption calls f for every option in wire order until f returns false.
func (v View) ForEachOption(f func(Option) bool) {
	for it := v.Options(); !it.End(); it = it.Next() {
		if !f(it.Option()) {
			return
		}
	}
}

// AppendOptions appends all options to dst. Values are borrowed from the datagram.
func (v View) AppendOptions(dst Options) Options {
	for it := v.Options(); !it.End(); it = it.Next() {
		dst = append(dst, it.Option())
	}
	return dst
}

// FindOption returns the first option with the given number.
func (v View) FindOption(id OptionID) (Option, error) {
	for it := v.Options(); !it.End() && it.Number() <= id; it = it.Next() {
		if it.Number() == id {
			return it.Option(), nil
		}
	}
	return Option{}, ErrOptionNotFound
}

// HasPayload reports whether the datagram carries a payload marker.
func (v View) HasPayload() bool {
	return v.payloadStart < len(v.data)
}

// Payload returns the bytes after the payload marker, nil when there is none.
func (v View) Payload() []byte {
	if !v.HasPayload() {
		return nil
	}
	return v.data[v.payloadStart:]
}

func (v View) PayloadLength() int {
	return len(v.data) - v.payloadStart
}
