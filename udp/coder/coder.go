package coder

import (
	"errors"
	"fmt"

	"github.com/plgd-dev/coapmsg/message"
)

var DefaultCoder = new(Coder)

// Coder converts between message.Message and CoAP over UDP datagrams.
type Coder struct{}

func (c *Coder) Size(m message.Message) (int, error) {
	if len(m.Token) > message.MaxTokenSize {
		return -1, message.ErrInvalidTokenLen
	}
	size := message.HeaderSize + len(m.Token)
	payloadLen := len(m.Payload)
	optionsLen, err := m.Options.Marshal(nil)
	if err != nil && !errors.Is(err, message.ErrTooSmall) {
		return -1, err
	}
	if payloadLen > 0 {
		// for separator 0xff
		payloadLen++
	}
	size += payloadLen + optionsLen
	return size, nil
}

func (c *Coder) Encode(m message.Message, buf []byte) (int, error) {
	/*
	     0                   1                   2                   3
	    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
	   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	   |Ver| T |  TKL  |      Code     |          Message ID           |
	   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	   |   Token (if any, TKL bytes) ...
	   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	   |   Options (if any) ...
	   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	   |1 1 1 1 1 1 1 1|    Payload (if any) ...
	   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	*/
	if !message.ValidateMID(m.MessageID) {
		return -1, fmt.Errorf("invalid MessageID(%v)", m.MessageID)
	}
	if !message.ValidateType(m.Type) {
		return -1, fmt.Errorf("invalid Type(%v)", m.Type)
	}
	size, err := c.Size(m)
	if err != nil {
		return -1, err
	}
	if len(buf) < size {
		return size, message.ErrTooSmall
	}

	hdr := message.NewHeader(m.Type, m.Code, uint16(m.MessageID), len(m.Token))
	copy(buf, hdr[:])
	buf = buf[message.HeaderSize:]

	copy(buf, m.Token)
	buf = buf[len(m.Token):]

	optionsLen, err := m.Options.Marshal(buf)
	if err != nil {
		return -1, err
	}
	buf = buf[optionsLen:]

	if len(m.Payload) > 0 {
		buf[0] = message.PayloadMarker
		buf = buf[1:]
	}
	copy(buf, m.Payload)
	return size, nil
}

// Decode validates data and fills m. Token, option values and payload are
// borrowed from data; m.Options is reused.
func (c *Coder) Decode(data []byte, m *message.Message) (int, error) {
	v, err := message.Parse(data)
	if err != nil {
		return -1, err
	}
	m.Options = v.AppendOptions(m.Options[:0])
	m.Payload = v.Payload()
	m.Code = v.Code()
	m.Token = v.Token()
	m.Type = v.Type()
	m.MessageID = int32(v.MessageID())
	return len(data), nil
}
