package codec

import (
	"errors"
	"math"
	"testing"

	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_UintDerivativeNarrowsToByte(t *testing.T) {
	col := NewUintColumn([]uint64{1, 2, 3, 4}, 4)
	enc, err := Encode(col, Options{UseCompression: true, Mode: ModeExactDerivative})
	require.NoError(t, err)
	assert.Equal(t, uint8(1), enc.CompressedBytesPerValue)
	assert.Equal(t, numeric.KindUnsigned, enc.CompressedTypeChar)
	assert.Len(t, enc.Payload, 3)
	assert.Equal(t, []byte{1, 1, 1}, enc.Payload)
}

func TestEncode_UintMinOffsetNarrowsToByte(t *testing.T) {
	col := NewUintColumn([]uint64{1, 2, 3, 4}, 4)
	enc, err := Encode(col, Options{UseCompression: true, Mode: ModeMinOffset})
	require.NoError(t, err)
	assert.Equal(t, uint8(1), enc.CompressedBytesPerValue)
	assert.Equal(t, []byte{0, 1, 2, 3}, enc.Payload)
}

func TestEncode_IntDerivativeKeepsOffset(t *testing.T) {
	col := NewIntColumn([]int64{-4, -2, 0, 2000}, 2)
	enc, err := Encode(col, Options{UseCompression: true, Mode: ModeExactDerivative})
	require.NoError(t, err)
	assert.Equal(t, uint8(2), enc.CompressedBytesPerValue)
	assert.Equal(t, numeric.KindUnsigned, enc.CompressedTypeChar)

	decoded, err := Decode(numeric.KindSigned, 2, enc.TagOptions, enc.Descriptor, enc.Payload, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{-4, -2, 0, 2000}, decoded.Int)
}

func TestEncode_IntMinOffset(t *testing.T) {
	col := NewIntColumn([]int64{-4, -2, 0, 2000}, 2)
	enc, err := Encode(col, Options{UseCompression: true, Mode: ModeMinOffset})
	require.NoError(t, err)
	assert.Equal(t, uint8(2), enc.CompressedBytesPerValue)

	decoded, err := Decode(numeric.KindSigned, 2, enc.TagOptions, enc.Descriptor, enc.Payload, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{-4, -2, 0, 2000}, decoded.Int)
}

func TestEncode_FloatNonIntegralStaysFloat(t *testing.T) {
	col := NewFloatColumn([]float64{5.2, 0.8, 3.1415, 8}, 8)
	enc, err := Encode(col, Options{UseCompression: true, Mode: ModeMinOffset})
	require.NoError(t, err)
	assert.Equal(t, numeric.KindFloat, enc.CompressedTypeChar)
	assert.Equal(t, uint8(8), enc.CompressedBytesPerValue)

	decoded, err := Decode(numeric.KindFloat, 8, enc.TagOptions, enc.Descriptor, enc.Payload, 4)
	require.NoError(t, err)
	require.Len(t, decoded.Float, 4)
	assert.InDelta(t, 5.2, decoded.Float[0], 1e-9)
	assert.InDelta(t, 0.8, decoded.Float[1], 1e-9)
	assert.InDelta(t, 3.1415, decoded.Float[2], 1e-9)
	assert.InDelta(t, 8.0, decoded.Float[3], 1e-9)
}

func TestEncode_FloatIntegralValuesNarrow(t *testing.T) {
	values := []float64{2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768, 65536}
	col := NewFloatColumn(values, 8)

	derivative, err := Encode(col, Options{UseCompression: true, Mode: ModeExactDerivative})
	require.NoError(t, err)
	assert.Equal(t, numeric.KindUnsigned, derivative.CompressedTypeChar)
	assert.Equal(t, uint8(2), derivative.CompressedBytesPerValue)

	offset, err := Encode(col, Options{UseCompression: true, Mode: ModeMinOffset})
	require.NoError(t, err)
	assert.Equal(t, numeric.KindUnsigned, offset.CompressedTypeChar)
	assert.Equal(t, uint8(2), offset.CompressedBytesPerValue)

	decoded, err := Decode(numeric.KindFloat, 8, offset.TagOptions, offset.Descriptor, offset.Payload, len(values))
	require.NoError(t, err)
	require.Len(t, decoded.Float, len(values))
	for i, v := range values {
		assert.InDelta(t, v, decoded.Float[i], 1e-9)
	}
}

func TestEncode_InvalidModeRejected(t *testing.T) {
	col := NewUintColumn([]uint64{1, 2, 3}, 4)
	_, err := Encode(col, Options{UseCompression: true, Mode: 'z'})
	assert.True(t, errors.Is(err, errs.ErrCompressionModeInvalid))
}

func TestEncode_NegativeDerivativeRejected(t *testing.T) {
	col := NewFloatColumn([]float64{5.2, 0.8, 3.1415, 8}, 8)
	_, err := Encode(col, Options{UseCompression: true, Mode: ModeExactDerivative})
	assert.True(t, errors.Is(err, errs.ErrCompression))
}

func TestEncode_FloatingPointRoundedRequiresCompression(t *testing.T) {
	col := NewFloatColumn([]float64{1.23, 4.56}, 8)
	_, err := Encode(col, Options{FloatingPointRounded: true, NumDecimals: 2})
	assert.True(t, errors.Is(err, errs.ErrCompression))
}

func TestEncode_FloatingPointRoundedRoundTrip(t *testing.T) {
	col := NewFloatColumn([]float64{1.005, 2.675, 3.14}, 8)
	enc, err := Encode(col, Options{UseCompression: true, Mode: ModeMinOffset, FloatingPointRounded: true, NumDecimals: 2})
	require.NoError(t, err)
	assert.True(t, enc.TagOptions.FloatingPointRounded())

	decoded, err := Decode(numeric.KindFloat, 8, enc.TagOptions, enc.Descriptor, enc.Payload, 3)
	require.NoError(t, err)
	require.Len(t, decoded.Float, 3)
	assert.InDelta(t, 1.0, decoded.Float[0], 0.02)
	assert.InDelta(t, 2.68, decoded.Float[1], 0.02)
	assert.InDelta(t, 3.14, decoded.Float[2], 0.02)
}

func TestEncode_NoCompressionPassesThrough(t *testing.T) {
	col := NewUintColumn([]uint64{10, 20, 30}, 2)
	enc, err := Encode(col, Options{})
	require.NoError(t, err)
	assert.False(t, enc.TagOptions.UseCompression())
	assert.Equal(t, uint8(2), enc.CompressedBytesPerValue)

	decoded, err := Decode(numeric.KindUnsigned, 2, enc.TagOptions, enc.Descriptor, enc.Payload, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 20, 30}, decoded.Uint)
}

func TestEncode_ZeroLengthColumnRejected(t *testing.T) {
	col := NewUintColumn(nil, 4)
	_, err := Encode(col, Options{})
	assert.True(t, errors.Is(err, errs.ErrDataShape))
}

func TestEncode_InvalidWidthRejected(t *testing.T) {
	col := NewFloatColumn([]float64{1.5, 2.5}, 3)
	_, err := Encode(col, Options{})
	assert.True(t, errors.Is(err, errs.ErrUnsupportedType))
}

// Large uint64/int64 values above 2^53 don't round-trip exactly through a
// float64 intermediate; the uncompressed path must marshal the native
// slice directly rather than widening through fillFloat64 (§8 property 1).
func TestEncode_NoCompressionPreservesFullUint64Range(t *testing.T) {
	values := []uint64{0, 1 << 62, ^uint64(0), ^uint64(0) - 1}
	col := NewUintColumn(values, 8)
	enc, err := Encode(col, Options{})
	require.NoError(t, err)
	assert.False(t, enc.TagOptions.UseCompression())

	decoded, err := Decode(numeric.KindUnsigned, 8, enc.TagOptions, enc.Descriptor, enc.Payload, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Uint)
}

func TestEncode_NoCompressionPreservesFullInt64Range(t *testing.T) {
	values := []int64{math.MinInt64, -(1 << 62), 0, math.MaxInt64}
	col := NewIntColumn(values, 8)
	enc, err := Encode(col, Options{})
	require.NoError(t, err)

	decoded, err := Decode(numeric.KindSigned, 8, enc.TagOptions, enc.Descriptor, enc.Payload, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Int)
}
