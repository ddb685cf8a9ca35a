// Package compress provides the optional block-compression layer applied on
// top of the codec's own per-column pipeline (the numeric, dateindex, and
// codec packages). It is a pure addition over the wire format in spec.md
// §4.6: the delta table and each tag's post-narrowing payload may optionally
// be run through one more general-purpose compressor before hitting disk,
// selected by the BlockCompression bits described in SPEC_FULL.md §B/§D.
package compress

import (
	"fmt"

	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/format"
)

// Compressor compresses a byte payload.
//
// Memory management:
//   - Returned slice is owned by the caller; it is newly allocated except
//     for NoOpCompressor, which returns the input slice itself
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte payload produced by the matching
// Compressor.
//
// Error conditions:
//   - Returns error if input data is corrupted or invalid
//   - Returns error if data was compressed with an incompatible algorithm
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression for a single algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns the Codec for the given block compression selector.
func CreateCodec(kind format.BlockCompression) (Codec, error) {
	switch kind {
	case format.BlockCompressionNone:
		return NewNoOpCompressor(), nil
	case format.BlockCompressionZstd:
		return NewZstdCompressor(), nil
	case format.BlockCompressionS2:
		return NewS2Compressor(), nil
	case format.BlockCompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("block compression code %d: %w", kind, errs.ErrUnsupportedCompression)
	}
}
