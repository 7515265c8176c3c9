package message

import (
	"errors"
	"fmt"
)

// Validate checks the structural soundness of a datagram: header, token,
// the complete option stream and the payload marker. It returns nil or a
// *MalformedError; there are no partial results.
func Validate(data []byte) error {
	_, err := Parse(data)
	return err
}

// IsValid is Validate reduced to a boolean gate.
func IsValid(data []byte) bool {
	return Validate(data) == nil
}

// Parse validates data in a single linear pass and returns a View borrowing
// it. data must not be modified while the View or any iterator derived from
// it is in use.
func Parse(data []byte) (View, error) {
	if len(data) < HeaderSize {
		return View{}, malformed(TruncatedBuffer, len(data), ErrMessageTruncated)
	}
	h, _ := HeaderFromBytes(data)
	if h.Version() != Version {
		return View{}, malformed(MalformedHeader, 0, fmt.Errorf("%w: %v", ErrMessageInvalidVersion, h.Version()))
	}
	tokenLen := h.TokenLength()
	if tokenLen > MaxTokenSize {
		return View{}, malformed(MalformedHeader, 0, fmt.Errorf("%w: %v", ErrInvalidTokenLen, tokenLen))
	}
	tokenEnd := HeaderSize + tokenLen
	if tokenEnd > len(data) {
		return View{}, malformed(TruncatedBuffer, HeaderSize, fmt.Errorf("%w: token needs %v bytes, %v left", ErrMessageTruncated, tokenLen, len(data)-HeaderSize))
	}

	offset := tokenEnd
	prev := OptionID(0)
	for offset < len(data) {
		if data[offset] == PayloadMarker {
			if offset+1 == len(data) {
				return View{}, malformed(EmptyPayloadAfterMarker, offset, ErrEmptyPayload)
			}
			return View{
				data:         data,
				tokenEnd:     tokenEnd,
				optionsEnd:   offset,
				payloadStart: offset + 1,
			}, nil
		}
		opt, n, err := DecodeOption(data[offset:], prev)
		if err != nil {
			reason := MalformedOption
			if errors.Is(err, ErrMessageTruncated) {
				reason = TruncatedBuffer
			}
			return View{}, malformed(reason, offset, err)
		}
		prev = opt.ID
		offset += n
	}
	return View{
		data:         data,
		tokenEnd:     tokenEnd,
		optionsEnd:   len(data),
		payloadStart: len(data),
	}, nil
}
