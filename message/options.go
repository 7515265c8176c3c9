package message

import (
	"errors"
	"sort"
	"strings"
)

// Options is a list of options kept sorted by ID; options with the same ID
// keep their insertion order. It is used to build messages, decoded
// messages are read through View.Options.
type Options []Option

const maxPathValue = 255

// Find returns the range [first, last) of options with the given ID.
func (options Options) Find(id OptionID) (int, int, error) {
	first := options.findPosition(id, true)
	last := options.findPosition(id, false)
	if first == last {
		return -1, -1, ErrOptionNotFound
	}
	return first, last, nil
}

func (options Options) findPosition(id OptionID, prepend bool) int {
	if prepend {
		return sort.Search(len(options), func(i int) bool { return options[i].ID >= id })
	}
	return sort.Search(len(options), func(i int) bool { return options[i].ID > id })
}

func (options Options) HasOption(id OptionID) bool {
	_, _, err := options.Find(id)
	return err == nil
}

// Set replaces all options with the ID of opt by opt.
func (options Options) Set(opt Option) Options {
	first := options.findPosition(opt.ID, true)
	last := options.findPosition(opt.ID, false)
	if first == last {
		return options.insert(first, opt)
	}
	options[first] = opt
	n := copy(options[first+1:], options[last:])
	return options[:first+1+n]
}

// Add appends opt after the options with the same ID.
func (options Options) Add(opt Option) Options {
	return options.insert(options.findPosition(opt.ID, false), opt)
}

func (options Options) insert(idx int, opt Option) Options {
	options = append(options, Option{})
	copy(options[idx+1:], options[idx:])
	options[idx] = opt
	return options
}

// Remove drops all options with the given ID.
func (options Options) Remove(id OptionID) Options {
	first := options.findPosition(id, true)
	last := options.findPosition(id, false)
	if first == last {
		return options
	}
	n := copy(options[first:], options[last:])
	return options[:first+n]
}

func (options Options) GetBytes(id OptionID) ([]byte, error) {
	first, _, err := options.Find(id)
	if err != nil {
		return nil, err
	}
	return options[first].Value, nil
}

func (options Options) GetString(id OptionID) (string, error) {
	v, err := options.GetBytes(id)
	if err != nil {
		return "", err
	}
	return DecodeString(v)
}

func (options Options) GetUint32(id OptionID) (uint32, error) {
	v, err := options.GetBytes(id)
	if err != nil {
		return 0, err
	}
	val, _, err := DecodeUint32(v)
	return val, err
}

// ReadStrings returns the values of all options with the given ID.
func (options Options) ReadStrings(id OptionID) ([]string, error) {
	first, last, err := options.Find(id)
	if err != nil {
		return nil, err
	}
	r := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		s, err := DecodeString(options[i].Value)
		if err != nil {
			return nil, err
		}
		r = append(r, s)
	}
	return r, nil
}

func (options Options) ContentFormat() (MediaType, error) {
	v, err := options.GetUint32(ContentFormat)
	return MediaType(v), err
}

// Path joins all Uri-Path options into "/a/b/c".
func (options Options) Path() (string, error) {
	segments, err := options.ReadStrings(URIPath)
	if err != nil {
		return "", err
	}
	return "/" + strings.Join(segments, "/"), nil
}

func (options Options) Queries() ([]string, error) {
	return options.ReadStrings(URIQuery)
}

// SetPath replaces Uri-Path options by the segments of path. Empty segments are skipped.
func (options Options) SetPath(path string) (Options, error) {
	o := options.Remove(URIPath)
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		if len(segment) > maxPathValue {
			return options, ErrInvalidValueLength
		}
		o = o.Add(Option{ID: URIPath, Value: []byte(segment)})
	}
	return o, nil
}

func (options Options) AddString(id OptionID, str string) Options {
	return options.Add(Option{ID: id, Value: []byte(str)})
}

func (options Options) SetUint32(id OptionID, value uint32) Options {
	var buf [4]byte
	n, _ := EncodeUint32(buf[:], value)
	return options.Set(Option{ID: id, Value: append([]byte(nil), buf[:n]...)})
}

func (options Options) AddUint32(id OptionID, value uint32) Options {
	var buf [4]byte
	n, _ := EncodeUint32(buf[:], value)
	return options.Add(Option{ID: id, Value: append([]byte(nil), buf[:n]...)})
}

func (options Options) SetContentFormat(contentFormat MediaType) Options {
	return options.SetUint32(ContentFormat, uint32(contentFormat))
}

// Marshal encodes the options in TLV form. When buf is too small it returns
// the needed size together with ErrTooSmall.
func (options Options) Marshal(buf []byte) (int, error) {
	previousID := OptionID(0)
	length := 0
	tooSmall := false
	for _, o := range options {
		var dst []byte
		if !tooSmall {
			dst = buf[length:]
		}
		n, err := o.Marshal(dst, previousID)
		switch {
		case err == nil:
		case errors.Is(err, ErrTooSmall):
			tooSmall = true
		default:
			return -1, err
		}
		previousID = o.ID
		length += n
	}
	if tooSmall {
		return length, ErrTooSmall
	}
	return length, nil
}
