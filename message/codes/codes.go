package codes

import (
	"fmt"
	"strconv"
)

// A Code is an unsigned 8-bit coap code: 3-bit class and 5-bit detail.
type Code uint8

const (
	classShift = 5
	classMask  = 0xE0
	detailMask = 0x1F
)

// New composes a code from its class and detail. Out of range bits are dropped.
func New(class, detail uint8) Code {
	return Code((class<<classShift)&classMask | detail&detailMask)
}

// Empty code
const Empty Code = 0

// Request Codes
const (
	GET    Code = 1
	POST   Code = 2
	PUT    Code = 3
	DELETE Code = 4
)

// Response Codes
const (
	Created                 Code = 65
	Deleted                 Code = 66
	Valid                   Code = 67
	Changed                 Code = 68
	Content                 Code = 69
	Continue                Code = 95
	BadRequest              Code = 128
	Unauthorized            Code = 129
	BadOption               Code = 130
	Forbidden               Code = 131
	NotFound                Code = 132
	MethodNotAllowed        Code = 133
	NotAcceptable           Code = 134
	RequestEntityIncomplete Code = 136
	PreconditionFailed      Code = 140
	RequestEntityTooLarge   Code = 141
	UnsupportedMediaType    Code = 143
	InternalServerError     Code = 160
	NotImplemented          Code = 161
	BadGateway              Code = 162
	ServiceUnavailable      Code = 163
	GatewayTimeout          Code = 164
	ProxyingNotSupported    Code = 165
)

const _maxCode = 255

// Class returns the upper 3 bits of the code.
func (c Code) Class() uint8 {
	return uint8(c) >> classShift
}

// Detail returns the lower 5 bits of the code.
func (c Code) Detail() uint8 {
	return uint8(c) & detailMask
}

// SetClass replaces the class bits and keeps the detail.
func (c *Code) SetClass(class uint8) {
	*c = New(class, c.Detail())
}

// SetDetail replaces the detail bits and keeps the class.
func (c *Code) SetDetail(detail uint8) {
	*c = New(c.Class(), detail)
}

// IsRequest reports a method code. Empty (0.00) is not a request.
func (c Code) IsRequest() bool {
	return c.Class() == 0 && c.Detail() > 0
}

func (c Code) IsResponse() bool {
	return c.Class() > 0
}

func (c Code) IsClientError() bool {
	return c.Class() == 4
}

func (c Code) IsServerError() bool {
	return c.Class() == 5
}

var strToCode = map[string]Code{
	`"Empty"`:                   Empty,
	`"GET"`:                     GET,
	`"POST"`:                    POST,
	`"PUT"`:                     PUT,
	`"DELETE"`:                  DELETE,
	`"Created"`:                 Created,
	`"Deleted"`:                 Deleted,
	`"Valid"`:                   Valid,
	`"Changed"`:                 Changed,
	`"Content"`:                 Content,
	`"Continue"`:                Continue,
	`"BadRequest"`:              BadRequest,
	`"Unauthorized"`:            Unauthorized,
	`"BadOption"`:               BadOption,
	`"Forbidden"`:               Forbidden,
	`"NotFound"`:                NotFound,
	`"MethodNotAllowed"`:        MethodNotAllowed,
	`"NotAcceptable"`:           NotAcceptable,
	`"RequestEntityIncomplete"`: RequestEntityIncomplete,
	`"PreconditionFailed"`:      PreconditionFailed,
	`"RequestEntityTooLarge"`:   RequestEntityTooLarge,
	`"UnsupportedMediaType"`:    UnsupportedMediaType,
	`"InternalServerError"`:     InternalServerError,
	`"NotImplemented"`:          NotImplemented,
	`"BadGateway"`:              BadGateway,
	`"ServiceUnavailable"`:      ServiceUnavailable,
	`"GatewayTimeout"`:          GatewayTimeout,
	`"ProxyingNotSupported"`:    ProxyingNotSupported,
}

func (c Code) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON unmarshals b into the Code.
func (c *Code) UnmarshalJSON(b []byte) error {
	if c == nil {
		return fmt.Errorf("nil receiver passed to UnmarshalJSON")
	}
	if ci, err := strconv.ParseUint(string(b), 10, 8); err == nil {
		*c = Code(ci)
		return nil
	}
	if jc, ok := strToCode[string(b)]; ok {
		*c = jc
		return nil
	}
	if len(b) > len(`"Code()"`) {
		if n, err := strconv.ParseUint(string(b[len(`"Code(`):len(b)-len(`)"`)]), 10, 8); err == nil && string(b[:len(`"Code(`)]) == `"Code(` {
			*c = Code(n)
			return nil
		}
	}
	return fmt.Errorf("invalid code: %q", b)
}
