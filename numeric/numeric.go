// Package numeric implements the type descriptors and width-calculation
// primitives that the rest of the codec builds on (§4.1).
package numeric

import (
	"fmt"
	"math/bits"

	"github.com/briankopp/timebox/errs"
)

// Kind is the one-character dtype kind used throughout the on-disk format:
// 'i' for signed integer, 'u' for unsigned integer, 'f' for IEEE float. Its
// byte value is the kind character's ASCII ordinal, exactly as stored on
// disk (§4.1).
type Kind byte

const (
	KindSigned   Kind = 'i' // 0x69
	KindUnsigned Kind = 'u' // 0x75
	KindFloat    Kind = 'f' // 0x66
)

func (k Kind) String() string {
	switch k {
	case KindSigned:
		return "i"
	case KindUnsigned:
		return "u"
	case KindFloat:
		return "f"
	default:
		return fmt.Sprintf("Kind(0x%02x)", byte(k))
	}
}

// Descriptor is a (kind, bytes) pair describing a concrete machine numeric
// type: the width in bytes plus its signedness/float-ness.
type Descriptor struct {
	Kind  Kind
	Bytes uint8
}

// Bits returns the bit width of the descriptor.
func (d Descriptor) Bits() int { return int(d.Bytes) * 8 }

func (d Descriptor) String() string {
	return fmt.Sprintf("%s%d", d.Kind, d.Bits())
}

// NewDescriptor validates a (kind, bits) pair against the supported matrix
// and returns its Descriptor. Valid pairs: i/u x {8,16,32,64}; f x
// {16,32,64}. Any other pair fails with errs.ErrUnsupportedType.
func NewDescriptor(kind Kind, bits int) (Descriptor, error) {
	switch kind {
	case KindSigned, KindUnsigned:
		switch bits {
		case 8, 16, 32, 64:
			return Descriptor{Kind: kind, Bytes: uint8(bits / 8)}, nil
		}
	case KindFloat:
		switch bits {
		case 16, 32, 64:
			return Descriptor{Kind: kind, Bytes: uint8(bits / 8)}, nil
		}
	}

	return Descriptor{}, fmt.Errorf("kind=%q bits=%d: %w", byte(kind), bits, errs.ErrUnsupportedType)
}

// MinUnsignedBytes returns the smallest power-of-two unsigned width in
// {1,2,4,8} bytes that can hold v.
func MinUnsignedBytes(v uint64) uint8 {
	switch {
	case v>>8 == 0:
		return 1
	case v>>16 == 0:
		return 2
	case v>>32 == 0:
		return 4
	default:
		return 8
	}
}

// MinUnsignedBytesChecked is the signed entry point for MinUnsignedBytes: it
// rejects negative values with errs.ErrIntegerNotUnsigned before measuring
// the width, matching the source's determine_required_bytes_unsigned_integer
// contract (original_source/timebox/utils/binary.py).
func MinUnsignedBytesChecked(v int64) (uint8, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d is negative: %w", v, errs.ErrIntegerNotUnsigned)
	}

	return MinUnsignedBytes(uint64(v)), nil
}

// SumUnsignedBytes returns the minimal unsigned width that holds the
// largest value in a slice of non-negative seconds-deltas. It does not add
// the values together, and its error result is always nil.
func SumUnsignedBytes(values []uint64) (uint8, error) {
	var max uint64
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	return MinUnsignedBytes(max), nil
}

// MinSignedBytes returns the smallest signed width in {1,2,4,8} bytes that
// holds both lo and hi. Used by Stage C (§4.4) when the min-offset transform
// on a signed column can still produce negative output.
func MinSignedBytes(lo, hi int64) uint8 {
	// Number of bits needed to represent the two's-complement range [lo, hi].
	needed := func(v int64) int {
		if v >= 0 {
			return bits.Len64(uint64(v)) + 1
		}

		return bits.Len64(uint64(^v)) + 1
	}

	n := needed(lo)
	if h := needed(hi); h > n {
		n = h
	}

	switch {
	case n <= 8:
		return 1
	case n <= 16:
		return 2
	case n <= 32:
		return 4
	default:
		return 8
	}
}

// Unsigned64Max returns the maximum unsigned value representable in the
// given byte width (1, 2, 4, or 8).
func Unsigned64Max(width uint8) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}

	return (uint64(1) << (width * 8)) - 1
}
