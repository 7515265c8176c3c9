package pool

import (
	"context"
	"fmt"

	"github.com/plgd-dev/coapmsg/message"
	"github.com/plgd-dev/coapmsg/message/codes"
)

type Encoder interface {
	Size(m message.Message) (int, error)
	Encode(m message.Message, buf []byte) (int, error)
}

type Decoder interface {
	Decode(buf []byte, m *message.Message) (int, error)
}

// Message is a reusable message that owns its datagram. Unmarshal copies the
// input, so token, option values and payload stay valid after the caller
// reuses its read buffer.
type Message struct {
	// Context context of request.
	ctx        context.Context
	msg        message.Message
	isModified bool
	sequence   uint64

	// local vars
	bufferUnmarshal []byte
	bufferMarshal   []byte
}

const (
	bufferSize    = 256
	maxBufferSize = 1024
)

func NewMessage(ctx context.Context) *Message {
	return &Message{
		ctx: ctx,
		msg: message.Message{
			Options:   make(message.Options, 0, 16),
			MessageID: -1,
		},
		bufferUnmarshal: make([]byte, bufferSize),
		bufferMarshal:   make([]byte, bufferSize),
	}
}

func (r *Message) Context() context.Context {
	return r.ctx
}

func (r *Message) SetContext(ctx context.Context) {
	r.ctx = ctx
}

// SetMessage replaces the content. Token, options and payload of m are copied.
func (r *Message) SetMessage(m message.Message) {
	r.Reset()
	r.msg.Code = m.Code
	r.msg.MessageID = m.MessageID
	r.msg.Type = m.Type
	r.SetToken(m.Token)
	r.ResetOptionsTo(m.Options)
	r.SetPayload(m.Payload)
	r.isModified = true
}

// SetMessageID only 0 to 2^16-1 are valid.
func (r *Message) SetMessageID(mid int32) {
	r.msg.MessageID = mid
	r.isModified = true
}

// UpsertMessageID set value only when origin value is invalid. Only 0 to 2^16-1 values are valid.
func (r *Message) UpsertMessageID(mid int32) {
	if message.ValidateMID(r.msg.MessageID) {
		return
	}
	r.SetMessageID(mid)
}

// MessageID returns 0 to 2^16-1 otherwise it contains invalid value.
func (r *Message) MessageID() int32 {
	return r.msg.MessageID
}

func (r *Message) SetType(typ message.Type) {
	r.msg.Type = typ
	r.isModified = true
}

func (r *Message) Type() message.Type {
	return r.msg.Type
}

// Reset clear message for next reuse
func (r *Message) Reset() {
	r.msg.Token = nil
	r.msg.Code = codes.Empty
	r.msg.Options = r.msg.Options[:0]
	r.msg.MessageID = -1
	r.msg.Type = message.Confirmable
	r.msg.Payload = nil
	if cap(r.bufferMarshal) > maxBufferSize {
		r.bufferMarshal = make([]byte, bufferSize)
	}
	if cap(r.bufferUnmarshal) > maxBufferSize {
		r.bufferUnmarshal = make([]byte, bufferSize)
	}
	r.bufferUnmarshal = r.bufferUnmarshal[:0]
	r.isModified = false
}

func (r *Message) Path() (string, error) {
	return r.msg.Options.Path()
}

func (r *Message) Queries() ([]string, error) {
	return r.msg.Options.Queries()
}

func (r *Message) Remove(opt message.OptionID) {
	r.msg.Options = r.msg.Options.Remove(opt)
	r.isModified = true
}

func (r *Message) Token() message.Token {
	if r.msg.Token == nil {
		return nil
	}
	token := make(message.Token, 0, message.MaxTokenSize)
	token = append(token, r.msg.Token...)
	return token
}

func (r *Message) SetToken(token message.Token) {
	if token == nil {
		r.msg.Token = nil
		return
	}
	r.msg.Token = append(message.Token(nil), token...)
	r.isModified = true
}

// ResetOptionsTo replaces all options by copies of in.
func (r *Message) ResetOptionsTo(in message.Options) {
	r.msg.Options = r.msg.Options[:0]
	for _, o := range in {
		r.msg.Options = r.msg.Options.Add(message.Option{ID: o.ID, Value: append([]byte(nil), o.Value...)})
	}
	if len(in) > 0 {
		r.isModified = true
	}
}

func (r *Message) Options() message.Options {
	return r.msg.Options
}

// SetPath stores the given path within URI-Path options.
func (r *Message) SetPath(p string) error {
	opts, err := r.msg.Options.SetPath(p)
	if err != nil {
		return fmt.Errorf("cannot set path: %w", err)
	}
	r.msg.Options = opts
	r.isModified = true
	return nil
}

func (r *Message) Code() codes.Code {
	return r.msg.Code
}

func (r *Message) SetCode(code codes.Code) {
	r.msg.Code = code
	r.isModified = true
}

func (r *Message) AddQuery(query string) {
	r.msg.Options = r.msg.Options.AddString(message.URIQuery, query)
	r.isModified = true
}

func (r *Message) GetOptionUint32(id message.OptionID) (uint32, error) {
	return r.msg.Options.GetUint32(id)
}

func (r *Message) SetOptionUint32(opt message.OptionID, value uint32) {
	r.msg.Options = r.msg.Options.SetUint32(opt, value)
	r.isModified = true
}

func (r *Message) ContentFormat() (message.MediaType, error) {
	return r.msg.Options.ContentFormat()
}

func (r *Message) HasOption(id message.OptionID) bool {
	return r.msg.Options.HasOption(id)
}

func (r *Message) SetContentFormat(contentFormat message.MediaType) {
	r.SetOptionUint32(message.ContentFormat, uint32(contentFormat))
}

func (r *Message) Payload() []byte {
	return r.msg.Payload
}

func (r *Message) SetPayload(payload []byte) {
	if len(payload) == 0 {
		r.msg.Payload = nil
		return
	}
	r.msg.Payload = append([]byte(nil), payload...)
	r.isModified = true
}

func (r *Message) SetSequence(seq uint64) {
	r.sequence = seq
}

func (r *Message) Sequence() uint64 {
	return r.sequence
}

func (r *Message) IsModified() bool {
	return r.isModified
}

func (r *Message) SetModified(b bool) {
	r.isModified = b
}

func (r *Message) String() string {
	return r.msg.String()
}

// Message returns the content. Slices are shared with r.
func (r *Message) Message() message.Message {
	return r.msg
}

func (r *Message) MarshalWithEncoder(encoder Encoder) ([]byte, error) {
	size, err := encoder.Size(r.msg)
	if err != nil {
		return nil, err
	}
	if len(r.bufferMarshal) < size {
		r.bufferMarshal = append(r.bufferMarshal, make([]byte, size-len(r.bufferMarshal))...)
	}
	n, err := encoder.Encode(r.msg, r.bufferMarshal)
	if err != nil {
		return nil, err
	}
	r.bufferMarshal = r.bufferMarshal[:n]
	return r.bufferMarshal, nil
}

// UnmarshalWithDecoder replaces the content by the decoded data. On error the
// message is left empty.
func (r *Message) UnmarshalWithDecoder(decoder Decoder, data []byte) (int, error) {
	if cap(r.bufferUnmarshal) < len(data) {
		r.bufferUnmarshal = make([]byte, len(data))
	}
	r.bufferUnmarshal = r.bufferUnmarshal[:len(data)]
	copy(r.bufferUnmarshal, data)
	n, err := decoder.Decode(r.bufferUnmarshal, &r.msg)
	if err != nil {
		r.Reset()
		return n, err
	}
	return n, nil
}

// View validates the last unmarshaled datagram and returns a view over the
// owned copy. Reset and a failed unmarshal drop the datagram.
func (r *Message) View() (message.View, error) {
	return message.Parse(r.bufferUnmarshal)
}

func (r *Message) IsSeparateMessage() bool {
	return r.Code() == codes.Empty && r.Token() == nil && r.Type() == message.Acknowledgement && len(r.Options()) == 0 && len(r.Payload()) == 0
}

// Clone copies r into msg.
func (r *Message) Clone(msg *Message) {
	msg.SetMessage(r.msg)
	msg.SetContext(r.Context())
	msg.SetSequence(r.Sequence())
	msg.SetModified(r.IsModified())
}
