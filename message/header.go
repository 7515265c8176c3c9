package message

import (
	"encoding/binary"

	"github.com/plgd-dev/coapmsg/message/codes"
)

const (
	// HeaderSize is the size of the fixed CoAP header and the minimal message size.
	HeaderSize = 4
	// Version is the only protocol version defined by RFC 7252.
	Version = 1
	// PayloadMarker separates options from the payload.
	PayloadMarker = 0xFF
)

const (
	versionShift     = 6
	typeMask         = 0x30
	typeShift        = 4
	tokenLengthMask  = 0x0F
	versionTypeMask  = 0xC0 | typeMask
	versionTokenMask = 0xC0 | tokenLengthMask
)

/*
     0                   1                   2                   3
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |Ver| T |  TKL  |      Code     |          Message ID           |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/

// Header is the serialized 4-byte CoAP header. The accessors are raw reads:
// they never fail, Validate decides whether the values are acceptable.
type Header [HeaderSize]byte

// HeaderFromBytes copies the first HeaderSize bytes of data.
func HeaderFromBytes(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, ErrMessageTruncated
	}
	copy(h[:], data)
	return h, nil
}

// NewHeader builds a version 1 header.
func NewHeader(typ Type, code codes.Code, messageID uint16, tokenLength int) Header {
	var h Header
	h.SetVersion(Version)
	h.SetType(typ)
	h.SetCode(code)
	h.SetMessageID(messageID)
	h.SetTokenLength(tokenLength)
	return h
}

func (h Header) Version() uint8 {
	return h[0] >> versionShift
}

func (h *Header) SetVersion(v uint8) {
	h[0] = (v&0x3)<<versionShift | h[0]&^0xC0
}

func (h Header) Type() Type {
	return Type((h[0] & typeMask) >> typeShift)
}

// SetType writes the 2-bit type field, version and token length are kept.
func (h *Header) SetType(t Type) {
	h[0] = (byte(t)<<typeShift)&typeMask | h[0]&versionTokenMask
}

// TokenLength returns the raw TKL nibble. Values 9-15 are malformed and only
// Validate reports them.
func (h Header) TokenLength() int {
	return int(h[0] & tokenLengthMask)
}

func (h *Header) SetTokenLength(n int) {
	h[0] = byte(n)&tokenLengthMask | h[0]&versionTypeMask
}

func (h Header) Code() codes.Code {
	return codes.Code(h[1])
}

func (h *Header) SetCode(c codes.Code) {
	h[1] = byte(c)
}

// MessageID returns the message ID in host byte order.
func (h Header) MessageID() uint16 {
	return binary.BigEndian.Uint16(h[2:])
}

func (h *Header) SetMessageID(mid uint16) {
	binary.BigEndian.PutUint16(h[2:], mid)
}
