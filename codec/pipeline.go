package codec

import (
	"fmt"
	"math"

	"github.com/briankopp/timebox/bitopts"
	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/internal/pool"
	"github.com/briankopp/timebox/numeric"
)

// ModeMinOffset and ModeExactDerivative are the two Stage B transforms
// (§4.4). Min-offset subtracts the column minimum from every value
// (output length N); exact-derivative subtracts each value from its
// successor (output length N-1) and requires the result to be
// non-negative throughout.
const (
	ModeMinOffset       byte = 'm'
	ModeExactDerivative byte = 'e'
)

// Options configures the per-column compression pipeline for Encode.
type Options struct {
	// UseCompression enables Stage B/C (the offset/derivative transform
	// and width narrowing).
	UseCompression bool
	// Mode selects the Stage B transform. Defaults to ModeMinOffset when
	// zero and UseCompression is true.
	Mode byte
	// FloatingPointRounded enables Stage A. Only valid for float columns,
	// and only in combination with UseCompression: Stage A's int64 output
	// only has a well-defined on-disk width once Stage C narrows it, so
	// TimeBox requires the two together (see the codec package's deliberate
	// divergences in DESIGN.md; the source format allows rounding without
	// compression but leaves the resulting on-disk width ambiguous).
	FloatingPointRounded bool
	NumDecimals          uint8
}

// Encoded is the result of running Encode on a Column: the tag option bits
// to persist, the 32-byte descriptor (§4.5), and the narrowed payload bytes.
type Encoded struct {
	TagOptions              bitopts.TagOptions
	Descriptor              [32]byte
	CompressedTypeChar      numeric.Kind
	CompressedBytesPerValue uint8
	Payload                 []byte
}

// DecodedOptions reconstructs the Options a tag's descriptor was produced
// with, for callers that want to re-run Encode over a decoded Column (e.g.
// a read-modify-write round trip) without re-deriving the mode or decimal
// count by hand.
func DecodedOptions(tagOpts bitopts.TagOptions, descriptor [32]byte) Options {
	if !tagOpts.UseCompression() {
		return Options{}
	}

	refBytes := descriptor[3]
	opts := Options{
		UseCompression:       true,
		Mode:                 descriptor[0],
		FloatingPointRounded: tagOpts.FloatingPointRounded(),
	}
	if opts.FloatingPointRounded {
		opts.NumDecimals = descriptor[5+int(refBytes)]
	}

	return opts
}

// Encode runs the Stage A/B/C pipeline over col and returns the encoded
// tag options, descriptor, and payload bytes (§4.4, §4.5).
func Encode(col Column, opts Options) (Encoded, error) {
	if err := validateColumn(col); err != nil {
		return Encoded{}, err
	}

	if opts.FloatingPointRounded {
		if col.Kind != numeric.KindFloat {
			return Encoded{}, fmt.Errorf("floating_point_rounded requires a float column: %w", errs.ErrUnsupportedType)
		}
		if !opts.UseCompression {
			return Encoded{}, fmt.Errorf("floating_point_rounded requires use_compression: %w", errs.ErrCompression)
		}
	}

	// A tag with neither compression nor rounding is marshaled straight from
	// its native int64/uint64/float64 slice: going through float64 here
	// would silently truncate any i64/u64 value above 2^53 (§8 property 1).
	if !opts.UseCompression {
		payload := marshalColumn(col)

		return Encoded{
			CompressedTypeChar:      col.Kind,
			CompressedBytesPerValue: col.Bytes,
			Payload:                 payload,
		}, nil
	}

	refKind := col.Kind
	refBytes := col.Bytes

	work, putWork := pool.GetFloat64Slice(col.Len())
	defer putWork()
	fillFloat64(work, col)

	if opts.FloatingPointRounded {
		scale := math.Pow10(int(opts.NumDecimals))
		for i, v := range work {
			work[i] = math.RoundToEven(v * scale)
		}
		refKind = numeric.KindSigned
		refBytes = 8
	}

	mode := opts.Mode
	if mode == 0 {
		mode = ModeMinOffset
	}

	var ref float64
	var y []float64
	var putY func()

	switch mode {
	case ModeMinOffset:
		ref = work[0]
		for _, v := range work[1:] {
			if v < ref {
				ref = v
			}
		}
		y, putY = pool.GetFloat64Slice(len(work))
		defer putY()
		for i, v := range work {
			y[i] = v - ref
		}
	case ModeExactDerivative:
		ref = work[0]
		y, putY = pool.GetFloat64Slice(len(work) - 1)
		defer putY()
		for i := 0; i < len(work)-1; i++ {
			d := work[i+1] - work[i]
			if d < 0 {
				return Encoded{}, fmt.Errorf("derivative at index %d is negative: %w", i, errs.ErrCompression)
			}
			y[i] = d
		}
	default:
		return Encoded{}, fmt.Errorf("mode %q: %w", mode, errs.ErrCompressionModeInvalid)
	}

	compressedKind, compressedBytes := narrowKind(y)
	payload := marshalTyped(y, compressedKind, compressedBytes)

	var desc [32]byte
	desc[0] = mode
	desc[1] = compressedBytes
	desc[2] = byte(compressedKind)
	desc[3] = refBytes
	desc[4] = byte(refKind)

	refBuf := desc[5 : 5+int(refBytes)]
	putScalar(refBuf, ref, refKind)

	pos := 5 + int(refBytes)
	if opts.FloatingPointRounded {
		desc[pos] = opts.NumDecimals
	}

	tagOpts := bitopts.TagOptions(0)
	tagOpts.SetUseCompression(true)
	tagOpts.SetFloatingPointRounded(opts.FloatingPointRounded)

	return Encoded{
		TagOptions:              tagOpts,
		Descriptor:              desc,
		CompressedTypeChar:      compressedKind,
		CompressedBytesPerValue: compressedBytes,
		Payload:                 payload,
	}, nil
}

// narrowKind implements Stage C's width decision: if every value in y is
// integer-valued, narrow to the smallest signed or unsigned integer width
// that holds it; otherwise leave it as a float at its current width (8
// bytes, since y is always computed in float64 — see Decode's handling of
// an originally-narrower float column).
func narrowKind(y []float64) (numeric.Kind, uint8) {
	allInt := true
	for _, v := range y {
		if v != math.Trunc(v) {
			allInt = false
			break
		}
	}

	if !allInt {
		return numeric.KindFloat, 8
	}

	hasNeg := false
	var minI, maxI int64
	var maxU uint64

	for _, v := range y {
		if v < 0 {
			hasNeg = true
		}
	}

	if hasNeg {
		minI, maxI = int64(y[0]), int64(y[0])
		for _, v := range y {
			iv := int64(v)
			if iv < minI {
				minI = iv
			}
			if iv > maxI {
				maxI = iv
			}
		}

		return numeric.KindSigned, numeric.MinSignedBytes(minI, maxI)
	}

	for _, v := range y {
		if uv := uint64(v); uv > maxU {
			maxU = uv
		}
	}

	return numeric.KindUnsigned, numeric.MinUnsignedBytes(maxU)
}

// Decode inverts Encode: given the tag's declared kind/width, its option
// bits, its 32-byte descriptor, and the on-disk payload, it reconstructs
// the original Column.
func Decode(kind numeric.Kind, bytesPerValue uint8, tagOpts bitopts.TagOptions, descriptor [32]byte, payload []byte, numPoints int) (Column, error) {
	// Mirrors Encode's uncompressed path: read the native slice directly so
	// an i64/u64 value above 2^53 round-trips exactly.
	if !tagOpts.UseCompression() {
		return unmarshalColumn(payload, kind, bytesPerValue, numPoints)
	}

	mode := descriptor[0]
	compressedBytes := descriptor[1]
	compressedKind := numeric.Kind(descriptor[2])
	refBytes := descriptor[3]
	refKind := numeric.Kind(descriptor[4])
	ref := getScalar(descriptor[5:5+int(refBytes)], refKind)

	floatRounded := tagOpts.FloatingPointRounded()
	var numDecimals uint8
	if floatRounded {
		numDecimals = descriptor[5+int(refBytes)]
	}

	storedLen := numPoints
	if mode == ModeExactDerivative {
		storedLen = numPoints - 1
	}

	y, err := unmarshalTyped(payload, compressedKind, compressedBytes, storedLen)
	if err != nil {
		return Column{}, err
	}

	work, putWork := pool.GetFloat64Slice(numPoints)
	defer putWork()
	switch mode {
	case ModeMinOffset:
		for i, v := range y {
			work[i] = v + ref
		}
	case ModeExactDerivative:
		work[0] = ref
		for i, v := range y {
			work[i+1] = work[i] + v
		}
	default:
		return Column{}, fmt.Errorf("mode %q: %w", mode, errs.ErrCompressionModeInvalid)
	}

	if floatRounded {
		scale := math.Pow10(int(numDecimals))
		floats := make([]float64, numPoints)
		for i, v := range work {
			floats[i] = v / scale
		}

		return NewFloatColumn(floats, bytesPerValue), nil
	}

	return columnFromFloats(work, kind, bytesPerValue), nil
}

func columnFromFloats(values []float64, kind numeric.Kind, bytes uint8) Column {
	switch kind {
	case numeric.KindSigned:
		out := make([]int64, len(values))
		for i, v := range values {
			out[i] = int64(v)
		}

		return NewIntColumn(out, bytes)
	case numeric.KindUnsigned:
		out := make([]uint64, len(values))
		for i, v := range values {
			out[i] = uint64(v)
		}

		return NewUintColumn(out, bytes)
	default:
		return NewFloatColumn(values, bytes)
	}
}

func putScalar(dst []byte, v float64, kind numeric.Kind) {
	switch kind {
	case numeric.KindSigned:
		numeric.PutInt(dst, int64(v))
	case numeric.KindUnsigned:
		numeric.PutUint(dst, uint64(v))
	default:
		numeric.PutFloat(dst, v)
	}
}

func getScalar(src []byte, kind numeric.Kind) float64 {
	switch kind {
	case numeric.KindSigned:
		return float64(numeric.GetInt(src))
	case numeric.KindUnsigned:
		return float64(numeric.GetUint(src))
	default:
		return numeric.GetFloat(src)
	}
}

func marshalTyped(values []float64, kind numeric.Kind, width uint8) []byte {
	buf := make([]byte, len(values)*int(width))
	for i, v := range values {
		putScalar(buf[i*int(width):(i+1)*int(width)], v, kind)
	}

	return buf
}

func unmarshalTyped(data []byte, kind numeric.Kind, width uint8, n int) ([]float64, error) {
	need := n * int(width)
	if len(data) < need {
		return nil, fmt.Errorf("need %d bytes for %d values at width %d, have %d: %w", need, n, width, len(data), errs.ErrShortRead)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = getScalar(data[i*int(width):(i+1)*int(width)], kind)
	}

	return out, nil
}
