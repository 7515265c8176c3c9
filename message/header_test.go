package message

import (
	"testing"

	"github.com/plgd-dev/coapmsg/message/codes"
	"github.com/stretchr/testify/require"
)

func TestHeaderFromBytes(t *testing.T) {
	h, err := HeaderFromBytes([]byte{0x52, 0x45, 0x12, 0x34, 0xaa})
	require.NoError(t, err)
	require.Equal(t, uint8(1), h.Version())
	require.Equal(t, NonConfirmable, h.Type())
	require.Equal(t, 2, h.TokenLength())
	require.Equal(t, codes.Content, h.Code())
	require.Equal(t, uint16(0x1234), h.MessageID())

	_, err = HeaderFromBytes([]byte{0x40, 0x01, 0x00})
	require.ErrorIs(t, err, ErrMessageTruncated)
}

func TestHeaderSetType(t *testing.T) {
	tests := []struct {
		name  string
		first byte
	}{
		{name: "zero", first: 0x00},
		{name: "version", first: 0x40},
		{name: "all bits", first: 0xff},
		{name: "token length", first: 0x48},
		{name: "invalid token length", first: 0x4f},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, typ := range []Type{Confirmable, NonConfirmable, Acknowledgement, Reset} {
				h := Header{tt.first, 0x45, 0x00, 0x01}
				h.SetType(typ)
				require.Equal(t, typ, h.Type())
				require.Equal(t, tt.first>>6, h.Version())
				require.Equal(t, int(tt.first&0x0f), h.TokenLength())
				require.Equal(t, codes.Content, h.Code())
				require.Equal(t, uint16(1), h.MessageID())
			}
		})
	}
}

func TestHeaderSetters(t *testing.T) {
	var h Header
	h.SetVersion(Version)
	h.SetTokenLength(8)
	h.SetType(Acknowledgement)
	h.SetCode(codes.NotFound)
	h.SetMessageID(0xbeef)
	require.Equal(t, Header{0x68, 0x84, 0xbe, 0xef}, h)

	h.SetTokenLength(3)
	require.Equal(t, 3, h.TokenLength())
	require.Equal(t, Acknowledgement, h.Type())
	require.Equal(t, uint8(Version), h.Version())
}

func TestNewHeader(t *testing.T) {
	h := NewHeader(Confirmable, codes.GET, 1, 0)
	require.Equal(t, Header{0x40, 0x01, 0x00, 0x01}, h)
	h = NewHeader(Reset, codes.Empty, 0xffff, 8)
	require.Equal(t, Header{0x78, 0x00, 0xff, 0xff}, h)
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "Confirmable", Confirmable.String())
	require.Equal(t, "Reset", Reset.String())
	require.Equal(t, "Type(7)", Type(7).String())
	require.True(t, ValidateType(Reset))
	require.False(t, ValidateType(Reset+1))
}
