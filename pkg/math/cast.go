package math

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// SafeCastTo converts from to T and fails when the value does not survive
// the conversion (overflow or sign change).
func SafeCastTo[T, F constraints.Integer](from F) (T, error) {
	to := T(from)
	if F(to) != from || (to < 0) != (from < 0) {
		return T(0), fmt.Errorf("value(%v) is out of range of %T", from, to)
	}
	return to, nil
}

// MustSafeCastTo is SafeCastTo for values already known to be in range.
func MustSafeCastTo[T, F constraints.Integer](from F) T {
	to, err := SafeCastTo[T](from)
	if err != nil {
		panic(err)
	}
	return to
}
