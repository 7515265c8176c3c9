package codes

import "strconv"

// FormatError is returned by Format when the output buffer cannot hold the text.
const FormatError = "<error>"

// MaxFormatLen is the size of a buffer big enough for every Format result.
const MaxFormatLen = 32

func (c Code) String() string {
	if name, ok := c.name(); ok {
		return name
	}
	return "Code(" + strconv.FormatInt(int64(c), 10) + ")"
}

func (c Code) name() (string, bool) {
	switch c {
	case Empty:
		return "Empty", true
	case GET:
		return "GET", true
	case POST:
		return "POST", true
	case PUT:
		return "PUT", true
	case DELETE:
		return "DELETE", true
	case Created:
		return "Created", true
	case Deleted:
		return "Deleted", true
	case Valid:
		return "Valid", true
	case Changed:
		return "Changed", true
	case Content:
		return "Content", true
	case Continue:
		return "Continue", true
	case BadRequest:
		return "BadRequest", true
	case Unauthorized:
		return "Unauthorized", true
	case BadOption:
		return "BadOption", true
	case Forbidden:
		return "Forbidden", true
	case NotFound:
		return "NotFound", true
	case MethodNotAllowed:
		return "MethodNotAllowed", true
	case NotAcceptable:
		return "NotAcceptable", true
	case RequestEntityIncomplete:
		return "RequestEntityIncomplete", true
	case PreconditionFailed:
		return "PreconditionFailed", true
	case RequestEntityTooLarge:
		return "RequestEntityTooLarge", true
	case UnsupportedMediaType:
		return "UnsupportedMediaType", true
	case InternalServerError:
		return "InternalServerError", true
	case NotImplemented:
		return "NotImplemented", true
	case BadGateway:
		return "BadGateway", true
	case ServiceUnavailable:
		return "ServiceUnavailable", true
	case GatewayTimeout:
		return "GatewayTimeout", true
	case ProxyingNotSupported:
		return "ProxyingNotSupported", true
	}
	return "", false
}

// AppendText appends the dotted form of the code followed by its name,
// e.g. "2.05 Content" or "0.31 unknown".
func (c Code) AppendText(dst []byte) []byte {
	dst = strconv.AppendUint(dst, uint64(c.Class()), 10)
	dst = append(dst, '.')
	detail := c.Detail()
	dst = append(dst, '0'+detail/10, '0'+detail%10)
	dst = append(dst, ' ')
	name, ok := c.name()
	if !ok {
		name = "unknown"
	}
	return append(dst, name...)
}

// Format renders the code like AppendText into buf without growing it.
// When buf is too small the constant FormatError is returned.
func (c Code) Format(buf []byte) string {
	if len(buf) < c.textLen() {
		return FormatError
	}
	return string(c.AppendText(buf[:0]))
}

// textLen is the length of the AppendText output.
func (c Code) textLen() int {
	name, ok := c.name()
	if !ok {
		name = "unknown"
	}
	// class digit, '.', two detail digits, ' '
	return 1 + 3 + 1 + len(name)
}
