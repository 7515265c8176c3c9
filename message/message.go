package message

import (
	"fmt"

	"github.com/plgd-dev/coapmsg/message/codes"
)

// Message is an owned, encodable CoAP message. Decoded datagrams are read
// through View; Message is what gets built and handed to an encoder.
type Message struct {
	Token   Token
	Options Options
	Code    codes.Code
	Payload []byte

	MessageID int32 // uint16 is valid, all other values are invalid, -1 is used for unset
	Type      Type
}

// ToMessage copies the decoded fields of v. Option values and the payload
// stay borrowed from the datagram.
func (v View) ToMessage() Message {
	return Message{
		Token:     v.Token(),
		Options:   v.AppendOptions(nil),
		Code:      v.Code(),
		Payload:   v.Payload(),
		MessageID: int32(v.MessageID()),
		Type:      v.Type(),
	}
}

func (r *Message) String() string {
	if r == nil {
		return "nil"
	}
	buf := fmt.Sprintf("Code: %v, Token: %v", r.Code, r.Token)
	path, err := r.Options.Path()
	if err == nil {
		buf = fmt.Sprintf("%s, Path: %v", buf, path)
	}
	cf, err := r.Options.ContentFormat()
	if err == nil {
		buf = fmt.Sprintf("%s, ContentFormat: %v", buf, cf)
	}
	queries, err := r.Options.Queries()
	if err == nil {
		buf = fmt.Sprintf("%s, Queries: %+v", buf, queries)
	}
	if ValidateType(r.Type) {
		buf = fmt.Sprintf("%s, Type: %v", buf, r.Type)
	}
	if ValidateMID(r.MessageID) {
		buf = fmt.Sprintf("%s, MessageID: %v", buf, r.MessageID)
	}
	if len(r.Payload) > 0 {
		buf = fmt.Sprintf("%s, PayloadLen: %v", buf, len(r.Payload))
	}
	return buf
}
