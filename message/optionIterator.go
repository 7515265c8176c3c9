package message

// OptionIterator is a forward-only cursor over the option region of a View.
// It is a value: Next returns the advanced cursor and leaves the receiver
// untouched, so restarting means calling View.Options again.
type OptionIterator struct {
	data   []byte
	offset int
	next   int
	opt    Option
}

func newOptionIterator(data []byte) OptionIterator {
	return OptionIterator{data: data}.decodeAt(0, 0)
}

func (it OptionIterator) decodeAt(offset int, prev OptionID) OptionIterator {
	it.offset = offset
	it.opt = Option{}
	if offset >= len(it.data) {
		it.offset = len(it.data)
		return it
	}
	opt, n, err := DecodeOption(it.data[offset:], prev)
	if err != nil {
		// unreachable for regions accepted by Parse
		it.offset = len(it.data)
		return it
	}
	it.opt = opt
	it.next = offset + n
	return it
}

// End reports whether the iterator moved past the last option.
func (it OptionIterator) End() bool {
	return it.offset >= len(it.data)
}

// Next returns the iterator advanced by one option.
func (it OptionIterator) Next() OptionIterator {
	if it.End() {
		return it
	}
	return it.decodeAt(it.next, it.opt.ID)
}

// Number returns the reconstructed number of the current option.
func (it OptionIterator) Number() OptionID {
	return it.opt.ID
}

// Value returns the value of the current option, borrowed from the datagram.
func (it OptionIterator) Value() []byte {
	return it.opt.Value
}

func (it OptionIterator) Option() Option {
	return it.opt
}

// Uint32 decodes the current value as a uint option.
func (it OptionIterator) Uint32() (uint32, error) {
	v, _, err := DecodeUint32(it.opt.Value)
	return v, err
}

// StringValue decodes the current value as a UTF-8 string option.
func (it OptionIterator) StringValue() (string, error) {
	return DecodeString(it.opt.Value)
}
