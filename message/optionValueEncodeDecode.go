package message

import (
	"encoding/binary"
	"unicode/utf8"
)

const (
	max1ByteNumber = uint32(^uint8(0))
	max2ByteNumber = uint32(^uint16(0))
	max3ByteNumber = uint32(0xffffff)
)

// EncodeUint32 writes value as a minimal-length big-endian uint option value.
// Zero encodes to an empty value.
func EncodeUint32(buf []byte, value uint32) (int, error) {
	switch {
	case value == 0:
		return 0, nil
	case value <= max1ByteNumber:
		if len(buf) < 1 {
			return 1, ErrTooSmall
		}
		buf[0] = byte(value)
		return 1, nil
	case value <= max2ByteNumber:
		if len(buf) < 2 {
			return 2, ErrTooSmall
		}
		binary.BigEndian.PutUint16(buf, uint16(value))
		return 2, nil
	case value <= max3ByteNumber:
		if len(buf) < 3 {
			return 3, ErrTooSmall
		}
		var rv [4]byte
		binary.BigEndian.PutUint32(rv[:], value)
		copy(buf, rv[1:])
		return 3, nil
	default:
		if len(buf) < 4 {
			return 4, ErrTooSmall
		}
		binary.BigEndian.PutUint32(buf, value)
		return 4, nil
	}
}

// DecodeUint32 decodes a uint option value of up to 4 bytes.
func DecodeUint32(buf []byte) (uint32, int, error) {
	if len(buf) > 4 {
		return 0, 0, ErrInvalidValueLength
	}
	var tmp [4]byte
	copy(tmp[4-len(buf):], buf)
	value := binary.BigEndian.Uint32(tmp[:])
	return value, len(buf), nil
}

// DecodeString validates that buf is UTF-8 and returns it as a string.
func DecodeString(buf []byte) (string, error) {
	if !utf8.Valid(buf) {
		return "", ErrInvalidEncoding
	}
	return string(buf), nil
}
