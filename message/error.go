package message

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrTooSmall                     = errors.New("too small bytes buffer")
	ErrMessageTruncated             = errors.New("message is truncated")
	ErrMessageInvalidVersion        = errors.New("message has invalid version")
	ErrInvalidTokenLen              = errors.New("invalid token length")
	ErrOptionTruncated              = errors.New("option is truncated")
	ErrOptionUnexpectedExtendMarker = errors.New("option contains unexpected extend marker")
	ErrOptionGapTooLarge            = errors.New("option gap too large")
	ErrEmptyPayload                 = errors.New("payload marker is not followed by payload")
	ErrInvalidValueLength           = errors.New("invalid value length")
	ErrInvalidEncoding              = errors.New("invalid encoding")
	ErrOptionNotFound               = errors.New("option not found")
)

// Reason classifies why a datagram was rejected by Validate.
type Reason uint8

const (
	// MalformedHeader - bad version or token length field above 8.
	MalformedHeader Reason = iota + 1
	// TruncatedBuffer - the token or an option region overruns the buffer.
	TruncatedBuffer
	// MalformedOption - reserved nibble misuse or incomplete extension bytes.
	MalformedOption
	// EmptyPayloadAfterMarker - 0xFF payload marker with nothing following.
	EmptyPayloadAfterMarker
)

func (r Reason) String() string {
	switch r {
	case MalformedHeader:
		return "MalformedHeader"
	case TruncatedBuffer:
		return "TruncatedBuffer"
	case MalformedOption:
		return "MalformedOption"
	case EmptyPayloadAfterMarker:
		return "EmptyPayloadAfterMarker"
	}
	return "Reason(" + strconv.FormatInt(int64(r), 10) + ")"
}

// MalformedError is returned by Validate and Parse. Offset is the position
// in the datagram where decoding stopped.
type MalformedError struct {
	Reason Reason
	Offset int
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed message (%v at offset %v): %v", e.Reason, e.Offset, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func malformed(reason Reason, offset int, err error) *MalformedError {
	return &MalformedError{
		Reason: reason,
		Offset: offset,
		Err:    err,
	}
}

// ReasonOf returns the Reason carried by err, or 0 when err is not a *MalformedError.
func ReasonOf(err error) Reason {
	var m *MalformedError
	if errors.As(err, &m) {
		return m.Reason
	}
	return 0
}
