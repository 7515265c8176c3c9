// Package noresponse interprets the No-Response option (RFC 7967).
package noresponse

import (
	"errors"

	"github.com/plgd-dev/coapmsg/message"
	"github.com/plgd-dev/coapmsg/message/codes"
)

// Bits of the No-Response option value.
const (
	Suppress2xx uint32 = 1 << 1
	Suppress4xx uint32 = 1 << 3
	Suppress5xx uint32 = 1 << 4
)

var ErrMessageNotInterested = errors.New("message not to be sent due to disinterest")

var classBits = []struct {
	class uint8
	bit   uint32
	name  string
}{
	{class: 2, bit: Suppress2xx, name: "2.xx"},
	{class: 4, bit: Suppress4xx, name: "4.xx"},
	{class: 5, bit: Suppress5xx, name: "5.xx"},
}

// IsNoResponseCode returns ErrMessageNotInterested when a response with the
// given code must not be sent to a requester that sent value.
func IsNoResponseCode(code codes.Code, value uint32) error {
	for _, c := range classBits {
		if code.Class() == c.class && value&c.bit != 0 {
			return ErrMessageNotInterested
		}
	}
	return nil
}

// Classes lists the response classes suppressed by value, e.g. ["2.xx", "5.xx"].
func Classes(value uint32) []string {
	var r []string
	for _, c := range classBits {
		if value&c.bit != 0 {
			r = append(r, c.name)
		}
	}
	return r
}

// FromView reads the No-Response option of a request.
func FromView(v message.View) (uint32, bool) {
	opt, err := v.FindOption(message.NoResponse)
	if err != nil {
		return 0, false
	}
	value, _, err := message.DecodeUint32(opt.Value)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Suppressed reports whether req asked not to receive a response with code.
func Suppressed(req message.View, code codes.Code) bool {
	value, ok := FromView(req)
	if !ok {
		return false
	}
	return IsNoResponseCode(code, value) != nil
}
