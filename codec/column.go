// Package codec implements the per-tag compression pipeline and on-disk tag
// definition layout described in spec.md §4.4 and §4.5: fixed-decimal
// scaling for floats, an offset or derivative transform, and width
// narrowing, plus the 32-byte mode-specific descriptor that records enough
// to invert all three stages on read.
//
// The struct shape (a typed Column plus narrow Encode/Decode entry points)
// follows the teacher's section.NumericFlag / encoding package split: a
// plain data holder next to pure functions that transform it, rather than
// a stateful encoder object, because this pipeline needs the whole column
// in hand to compute a reference value and a single narrowed width.
package codec

import (
	"fmt"

	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/numeric"
)

// Column holds one tag's typed data vector in exactly one of its three
// slices, selected by Kind.
type Column struct {
	Kind  numeric.Kind
	Bytes uint8
	Int   []int64
	Uint  []uint64
	Float []float64
}

// Len returns the number of elements in the column's populated slice.
func (c Column) Len() int {
	switch c.Kind {
	case numeric.KindSigned:
		return len(c.Int)
	case numeric.KindUnsigned:
		return len(c.Uint)
	case numeric.KindFloat:
		return len(c.Float)
	default:
		return 0
	}
}

// NewIntColumn builds a signed-integer Column at the given byte width.
func NewIntColumn(values []int64, bytes uint8) Column {
	return Column{Kind: numeric.KindSigned, Bytes: bytes, Int: values}
}

// NewUintColumn builds an unsigned-integer Column at the given byte width.
func NewUintColumn(values []uint64, bytes uint8) Column {
	return Column{Kind: numeric.KindUnsigned, Bytes: bytes, Uint: values}
}

// NewFloatColumn builds a floating-point Column at the given byte width (4
// or 8).
func NewFloatColumn(values []float64, bytes uint8) Column {
	return Column{Kind: numeric.KindFloat, Bytes: bytes, Float: values}
}

// fillFloat64 widens c's values into dst, which must already have length
// c.Len(). Used only by the Stage B/C transform path (§4.4), which operates
// in a single arithmetic domain regardless of the column's on-disk kind;
// the plain uncompressed path marshals c's native slice directly instead
// (see marshalColumn) so it never loses precision above 2^53.
func fillFloat64(dst []float64, c Column) {
	switch c.Kind {
	case numeric.KindSigned:
		for i, v := range c.Int {
			dst[i] = float64(v)
		}
	case numeric.KindUnsigned:
		for i, v := range c.Uint {
			dst[i] = float64(v)
		}
	case numeric.KindFloat:
		copy(dst, c.Float)
	}
}

// marshalColumn writes c's native slice (int64, uint64, or float64) at its
// declared byte width, little-endian, without ever widening through
// float64. This is the only marshaling path for a tag that uses neither
// compression nor fixed-decimal rounding.
func marshalColumn(c Column) []byte {
	width := int(c.Bytes)
	buf := make([]byte, c.Len()*width)

	switch c.Kind {
	case numeric.KindSigned:
		for i, v := range c.Int {
			numeric.PutInt(buf[i*width:(i+1)*width], v)
		}
	case numeric.KindUnsigned:
		for i, v := range c.Uint {
			numeric.PutUint(buf[i*width:(i+1)*width], v)
		}
	case numeric.KindFloat:
		for i, v := range c.Float {
			numeric.PutFloat(buf[i*width:(i+1)*width], v)
		}
	}

	return buf
}

// unmarshalColumn reverses marshalColumn: it reads n values of the given
// kind and width directly into the matching native slice, without a
// float64 intermediate.
func unmarshalColumn(payload []byte, kind numeric.Kind, width uint8, n int) (Column, error) {
	need := n * int(width)
	if len(payload) < need {
		return Column{}, fmt.Errorf("need %d bytes for %d values at width %d, have %d: %w", need, n, width, len(payload), errs.ErrShortRead)
	}

	w := int(width)

	switch kind {
	case numeric.KindSigned:
		out := make([]int64, n)
		for i := range out {
			out[i] = numeric.GetInt(payload[i*w : (i+1)*w])
		}

		return NewIntColumn(out, width), nil
	case numeric.KindUnsigned:
		out := make([]uint64, n)
		for i := range out {
			out[i] = numeric.GetUint(payload[i*w : (i+1)*w])
		}

		return NewUintColumn(out, width), nil
	default:
		out := make([]float64, n)
		for i := range out {
			out[i] = numeric.GetFloat(payload[i*w : (i+1)*w])
		}

		return NewFloatColumn(out, width), nil
	}
}

func validateColumn(c Column) error {
	if c.Len() == 0 {
		return fmt.Errorf("column has zero points: %w", errs.ErrDataShape)
	}

	if _, err := numeric.NewDescriptor(c.Kind, int(c.Bytes)*8); err != nil {
		return err
	}

	return nil
}
