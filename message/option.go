package message

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"

	pkgMath "github.com/plgd-dev/coapmsg/pkg/math"
)

const (
	ExtendOptionByteCode   = 13
	ExtendOptionByteAddend = 13
	ExtendOptionWordCode   = 14
	ExtendOptionWordAddend = 269
	ExtendOptionError      = 15

	// MaxOptionDelta is the largest delta (and value length) one option header can carry.
	MaxOptionDelta = ExtendOptionWordAddend + math.MaxUint16
)

// OptionID identifies an option in a message. On the wire only the delta to
// the previous option is stored, the decoder reconstructs the absolute number.
type OptionID uint32

/*
   +-----+----+---+---+---+----------------+--------+--------+---------+
   | No. | C  | U | N | R | Name           | Format | Length | Default |
   +-----+----+---+---+---+----------------+--------+--------+---------+
   |   1 | x  |   |   | x | If-Match       | opaque | 0-8    | (none)  |
   |   3 | x  | x | - |   | Uri-Host       | string | 1-255  | (see    |
   |     |    |   |   |   |                |        |        | below)  |
   |   4 |    |   |   | x | ETag           | opaque | 1-8    | (none)  |
   |   5 | x  |   |   |   | If-None-Match  | empty  | 0      | (none)  |
   |   7 | x  | x | - |   | Uri-Port       | uint   | 0-2    | (see    |
   |     |    |   |   |   |                |        |        | below)  |
   |   8 |    |   |   | x | Location-Path  | string | 0-255  | (none)  |
   |  11 | x  | x | - | x | Uri-Path       | string | 0-255  | (none)  |
   |  12 |    |   |   |   | Content-Format | uint   | 0-2    | (none)  |
   |  14 |    | x | - |   | Max-Age        | uint   | 0-4    | 60      |
   |  15 | x  | x | - | x | Uri-Query      | string | 0-255  | (none)  |
   |  17 | x  |   |   |   | Accept         | uint   | 0-2    | (none)  |
   |  20 |    |   |   | x | Location-Query | string | 0-255  | (none)  |
   |  23 | x  | x | - | - | Block2         | uint   | 0-3    | (none)  |
   |  27 | x  | x | - | - | Block1         | uint   | 0-3    | (none)  |
   |  28 |    |   | x |   | Size2          | uint   | 0-4    | (none)  |
   |  35 | x  | x | - |   | Proxy-Uri      | string | 1-1034 | (none)  |
   |  39 | x  | x | - |   | Proxy-Scheme   | string | 1-255  | (none)  |
   |  60 |    |   | x |   | Size1          | uint   | 0-4    | (none)  |
   +-----+----+---+---+---+----------------+--------+--------+---------+
   C=Critical, U=Unsafe, N=NoCacheKey, R=Repeatable
*/

// Option IDs.
const (
	IfMatch       OptionID = 1
	URIHost       OptionID = 3
	ETag          OptionID = 4
	IfNoneMatch   OptionID = 5
	Observe       OptionID = 6
	URIPort       OptionID = 7
	LocationPath  OptionID = 8
	URIPath       OptionID = 11
	ContentFormat OptionID = 12
	MaxAge        OptionID = 14
	URIQuery      OptionID = 15
	Accept        OptionID = 17
	LocationQuery OptionID = 20
	Block2        OptionID = 23
	Block1        OptionID = 27
	Size2         OptionID = 28
	ProxyURI      OptionID = 35
	ProxyScheme   OptionID = 39
	Size1         OptionID = 60
	NoResponse    OptionID = 258
)

// Option value format (RFC7252 section 3.2)
type ValueFormat uint8

const (
	ValueUnknown ValueFormat = iota
	ValueEmpty
	ValueOpaque
	ValueUint
	ValueString
)

type OptionDef struct {
	Name        string
	ValueFormat ValueFormat
	MinLen      int
	MaxLen      int
}

var CoapOptionDefs = map[OptionID]OptionDef{
	IfMatch:       {Name: "If-Match", ValueFormat: ValueOpaque, MinLen: 0, MaxLen: 8},
	URIHost:       {Name: "Uri-Host", ValueFormat: ValueString, MinLen: 1, MaxLen: 255},
	ETag:          {Name: "ETag", ValueFormat: ValueOpaque, MinLen: 1, MaxLen: 8},
	IfNoneMatch:   {Name: "If-None-Match", ValueFormat: ValueEmpty, MinLen: 0, MaxLen: 0},
	Observe:       {Name: "Observe", ValueFormat: ValueUint, MinLen: 0, MaxLen: 3},
	URIPort:       {Name: "Uri-Port", ValueFormat: ValueUint, MinLen: 0, MaxLen: 2},
	LocationPath:  {Name: "Location-Path", ValueFormat: ValueString, MinLen: 0, MaxLen: 255},
	URIPath:       {Name: "Uri-Path", ValueFormat: ValueString, MinLen: 0, MaxLen: 255},
	ContentFormat: {Name: "Content-Format", ValueFormat: ValueUint, MinLen: 0, MaxLen: 2},
	MaxAge:        {Name: "Max-Age", ValueFormat: ValueUint, MinLen: 0, MaxLen: 4},
	URIQuery:      {Name: "Uri-Query", ValueFormat: ValueString, MinLen: 0, MaxLen: 255},
	Accept:        {Name: "Accept", ValueFormat: ValueUint, MinLen: 0, MaxLen: 2},
	LocationQuery: {Name: "Location-Query", ValueFormat: ValueString, MinLen: 0, MaxLen: 255},
	Block2:        {Name: "Block2", ValueFormat: ValueUint, MinLen: 0, MaxLen: 3},
	Block1:        {Name: "Block1", ValueFormat: ValueUint, MinLen: 0, MaxLen: 3},
	Size2:         {Name: "Size2", ValueFormat: ValueUint, MinLen: 0, MaxLen: 4},
	ProxyURI:      {Name: "Proxy-Uri", ValueFormat: ValueString, MinLen: 1, MaxLen: 1034},
	ProxyScheme:   {Name: "Proxy-Scheme", ValueFormat: ValueString, MinLen: 1, MaxLen: 255},
	Size1:         {Name: "Size1", ValueFormat: ValueUint, MinLen: 0, MaxLen: 4},
	NoResponse:    {Name: "No-Response", ValueFormat: ValueUint, MinLen: 0, MaxLen: 1},
}

func (o OptionID) String() string {
	if def, ok := CoapOptionDefs[o]; ok {
		return def.Name
	}
	return "Option(" + strconv.FormatUint(uint64(o), 10) + ")"
}

// Critical options must be understood by the receiver.
func (o OptionID) Critical() bool {
	return o&1 != 0
}

// UnSafe options must not be forwarded by proxies unaware of them.
func (o OptionID) UnSafe() bool {
	return o&2 != 0
}

func (o OptionID) NoCacheKey() bool {
	return o&0x1e == 0x1c
}

type Option struct {
	ID    OptionID
	Value []byte
}

func (o Option) String() string {
	return fmt.Sprintf("%v(%v): %x", o.ID, uint32(o.ID), o.Value)
}

func extendOpt(opt int) (int, int) {
	ext := 0
	if opt >= ExtendOptionByteAddend {
		if opt >= ExtendOptionWordAddend {
			ext = opt - ExtendOptionWordAddend
			opt = ExtendOptionWordCode
		} else {
			ext = opt - ExtendOptionByteAddend
			opt = ExtendOptionByteCode
		}
	}
	return opt, ext
}

func extendOptLen(opt int) int {
	switch opt {
	case ExtendOptionByteCode:
		return 1
	case ExtendOptionWordCode:
		return 2
	}
	return 0
}

func marshalOptionHeaderExt(buf []byte, opt, ext int) {
	switch opt {
	case ExtendOptionByteCode:
		buf[0] = byte(ext)
	case ExtendOptionWordCode:
		binary.BigEndian.PutUint16(buf, uint16(ext))
	}
}

func checkOptionHeaderValue(v int, errTooLarge error) error {
	if v < ExtendOptionWordAddend {
		return nil
	}
	if _, err := pkgMath.SafeCastTo[uint16](v - ExtendOptionWordAddend); err != nil {
		return fmt.Errorf("%w: %v", errTooLarge, err)
	}
	return nil
}

func marshalOptionHeader(buf []byte, delta, length int) (int, error) {
	if err := checkOptionHeaderValue(delta, ErrOptionGapTooLarge); err != nil {
		return -1, err
	}
	if err := checkOptionHeaderValue(length, ErrInvalidValueLength); err != nil {
		return -1, err
	}
	d, dx := extendOpt(delta)
	l, lx := extendOpt(length)
	size := 1 + extendOptLen(d) + extendOptLen(l)
	if len(buf) < size {
		return size, ErrTooSmall
	}
	buf[0] = byte(d<<4) | byte(l)
	marshalOptionHeaderExt(buf[1:], d, dx)
	marshalOptionHeaderExt(buf[1+extendOptLen(d):], l, lx)
	return size, nil
}

// Marshal encodes the option relative to previousID. When buf is too small
// the required size is returned with ErrTooSmall.
func (o Option) Marshal(buf []byte, previousID OptionID) (int, error) {
	/*
	     0   1   2   3   4   5   6   7
	   +---------------+---------------+
	   |               |               |
	   |  Option Delta | Option Length |   1 byte
	   |               |               |
	   +---------------+---------------+
	   \                               \
	   /         Option Delta          /   0-2 bytes
	   \          (extended)           \
	   +-------------------------------+
	   \                               \
	   /         Option Length         /   0-2 bytes
	   \          (extended)           \
	   +-------------------------------+
	   \                               \
	   /                               /
	   \                               \
	   /         Option Value          /   0 or more bytes
	   \                               \
	   /                               /
	   \                               \
	   +-------------------------------+
	*/
	if o.ID < previousID {
		return -1, fmt.Errorf("option %v follows %v: options must be sorted", o.ID, previousID)
	}
	hdrLen, err := marshalOptionHeader(buf, int(o.ID-previousID), len(o.Value))
	switch {
	case err == nil:
	case errors.Is(err, ErrTooSmall):
		return hdrLen + len(o.Value), ErrTooSmall
	default:
		return -1, err
	}
	if len(buf) < hdrLen+len(o.Value) {
		return hdrLen + len(o.Value), ErrTooSmall
	}
	copy(buf[hdrLen:], o.Value)
	return hdrLen + len(o.Value), nil
}

func parseExtOpt(data []byte, opt int) (int, int, error) {
	processed := 0
	switch opt {
	case ExtendOptionByteCode:
		if len(data) < 1 {
			return 0, -1, ErrOptionTruncated
		}
		opt = int(data[0]) + ExtendOptionByteAddend
		processed = 1
	case ExtendOptionWordCode:
		if len(data) < 2 {
			return 0, -1, ErrOptionTruncated
		}
		opt = int(binary.BigEndian.Uint16(data[:2])) + ExtendOptionWordAddend
		processed = 2
	case ExtendOptionError:
		return 0, -1, ErrOptionUnexpectedExtendMarker
	}
	return processed, opt, nil
}

// DecodeOption decodes one option from the beginning of data. prev is the
// number of the preceding option (0 for the first one). It returns the
// option, with Value borrowed from data, and the number of bytes consumed.
//
// Incomplete extension bytes are reported as ErrOptionTruncated, a value
// running past the end of data as ErrMessageTruncated.
//
// The payload marker is not an option: callers check data[0] against
// PayloadMarker first, DecodeOption rejects it as a reserved nibble.
func DecodeOption(data []byte, prev OptionID) (Option, int, error) {
	if len(data) == 0 {
		return Option{}, 0, ErrOptionTruncated
	}
	processed := 1
	proc, delta, err := parseExtOpt(data[processed:], int(data[0]>>4))
	if err != nil {
		return Option{}, processed, err
	}
	processed += proc
	proc, length, err := parseExtOpt(data[processed:], int(data[0]&0x0f))
	if err != nil {
		return Option{}, processed, err
	}
	processed += proc
	if len(data)-processed < length {
		return Option{}, processed, fmt.Errorf("%w: option value needs %v bytes, %v left", ErrMessageTruncated, length, len(data)-processed)
	}
	if uint64(prev)+uint64(delta) > math.MaxUint32 {
		return Option{}, processed, ErrOptionGapTooLarge
	}
	return Option{
		ID:    prev + OptionID(delta),
		Value: data[processed : processed+length : processed+length],
	}, processed + length, nil
}
