//go:build !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

func newZstdDecoder() *zstd.Decoder {
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(false),
	)
	if err != nil {
		panic(fmt.Sprintf("compress: zstd decoder: %v", err))
	}

	return decoder
}

func newZstdEncoder() *zstd.Encoder {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderCRC(false),
	)
	if err != nil {
		panic(fmt.Sprintf("compress: zstd encoder: %v", err))
	}

	return encoder
}

// zstdDecoderPool and zstdEncoderPool hold warmed-up zstd.Decoder/Encoder
// instances; both types are documented as allocation-free after warmup when
// reused rather than recreated per call.
var (
	zstdDecoderPool = sync.Pool{New: func() any { return newZstdDecoder() }}
	zstdEncoderPool = sync.Pool{New: func() any { return newZstdEncoder() }}
)

// Compress zstd-encodes data using a pooled encoder. EncodeAll is stateless,
// so sharing an encoder across calls is safe.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress reverses Compress using a pooled decoder.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}

	return decompressed, nil
}
