package message

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/plgd-dev/coapmsg/message/codes"
)

// Summary returns a one line description of the message, e.g.
// "2.05 Content, Acknowledgement, id 1, token 0102 (2B), payload 5B".
func (v View) Summary() string {
	var codeBuf [codes.MaxFormatLen]byte
	var b strings.Builder
	b.WriteString(v.Code().Format(codeBuf[:]))
	b.WriteString(", ")
	b.WriteString(v.Type().String())
	b.WriteString(", id ")
	b.WriteString(strconv.FormatUint(uint64(v.MessageID()), 10))
	token := v.Token()
	b.WriteString(", token ")
	if len(token) > 0 {
		b.WriteString(hex.EncodeToString(token))
		b.WriteString(" ")
	}
	b.WriteString("(")
	b.WriteString(strconv.Itoa(len(token)))
	b.WriteString("B)")
	if v.HasPayload() {
		b.WriteString(", payload ")
		b.WriteString(strconv.Itoa(v.PayloadLength()))
		b.WriteString("B")
	}
	return b.String()
}

func (v View) String() string {
	return v.Summary()
}

func formatOptionValue(opt Option) string {
	def, ok := CoapOptionDefs[opt.ID]
	if !ok {
		return hex.EncodeToString(opt.Value)
	}
	switch def.ValueFormat {
	case ValueUint:
		if val, _, err := DecodeUint32(opt.Value); err == nil {
			return strconv.FormatUint(uint64(val), 10)
		}
	case ValueString:
		if s, err := DecodeString(opt.Value); err == nil {
			return strconv.Quote(s)
		}
	case ValueEmpty:
		if len(opt.Value) == 0 {
			return "(empty)"
		}
	}
	return hex.EncodeToString(opt.Value)
}

// DebugPrint writes a multi-line dump of the message to w.
func (v View) DebugPrint(w io.Writer) error {
	var codeBuf [codes.MaxFormatLen]byte
	h := v.Header()
	token := v.Token()
	lines := []string{
		fmt.Sprintf("-- Message (length: %vB) --", v.Length()),
		fmt.Sprintf("  version: %v", h.Version()),
		fmt.Sprintf("  type: %v", h.Type()),
		fmt.Sprintf("  code: %v", h.Code().Format(codeBuf[:])),
		fmt.Sprintf("  message ID: %v", h.MessageID()),
		fmt.Sprintf("  token: %v (length: %vB)", hex.EncodeToString(token), len(token)),
	}
	for it := v.Options(); !it.End(); it = it.Next() {
		opt := it.Option()
		lines = append(lines, fmt.Sprintf("  option %v (%v), length %v: %v", opt.ID, uint32(opt.ID), len(opt.Value), formatOptionValue(opt)))
	}
	lines = append(lines, fmt.Sprintf("  payload: %vB", v.PayloadLength()))
	for _, l := range lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return err
		}
	}
	return nil
}
