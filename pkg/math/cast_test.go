package math_test

import (
	"math"
	"testing"

	pkgMath "github.com/plgd-dev/coapmsg/pkg/math"
	"github.com/stretchr/testify/require"
)

func TestCastToUint8(t *testing.T) {
	_, err := pkgMath.SafeCastTo[uint8](uint8(0))
	require.NoError(t, err)
	_, err = pkgMath.SafeCastTo[uint8](math.MaxUint8)
	require.NoError(t, err)
	_, err = pkgMath.SafeCastTo[uint8](math.MinInt8)
	require.Error(t, err)
	_, err = pkgMath.SafeCastTo[uint8](int8(-1))
	require.Error(t, err)
	_, err = pkgMath.SafeCastTo[uint8](uint64(math.MaxUint64))
	require.Error(t, err)
	_, err = pkgMath.SafeCastTo[uint8](int64(math.MaxUint8))
	require.NoError(t, err)
	_, err = pkgMath.SafeCastTo[uint8](int64(math.MaxUint8 + 1))
	require.Error(t, err)
}

func TestCastToInt8(t *testing.T) {
	_, err := pkgMath.SafeCastTo[int8](uint8(math.MaxUint8))
	require.Error(t, err)
	_, err = pkgMath.SafeCastTo[int8](math.MinInt8)
	require.NoError(t, err)
	_, err = pkgMath.SafeCastTo[int8](math.MaxInt8)
	require.NoError(t, err)
	_, err = pkgMath.SafeCastTo[int8](uint64(math.MaxUint64))
	require.Error(t, err)
	_, err = pkgMath.SafeCastTo[int8](int64(math.MinInt64))
	require.Error(t, err)
}

func TestCastToUint16(t *testing.T) {
	v, err := pkgMath.SafeCastTo[uint16](65535)
	require.NoError(t, err)
	require.Equal(t, uint16(65535), v)
	_, err = pkgMath.SafeCastTo[uint16](65536)
	require.Error(t, err)
	_, err = pkgMath.SafeCastTo[uint16](-1)
	require.Error(t, err)
}

func TestCastToUint64(t *testing.T) {
	_, err := pkgMath.SafeCastTo[uint64](int64(-1))
	require.Error(t, err)
	v, err := pkgMath.SafeCastTo[int64](uint64(math.MaxInt64))
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), v)
	_, err = pkgMath.SafeCastTo[int64](uint64(math.MaxUint64))
	require.Error(t, err)
}

func TestMustSafeCastTo(t *testing.T) {
	require.Equal(t, uint32(7), pkgMath.MustSafeCastTo[uint32](7))
	require.Panics(t, func() {
		_ = pkgMath.MustSafeCastTo[uint8](256)
	})
}
