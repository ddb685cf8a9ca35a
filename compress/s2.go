package compress

import "github.com/klauspost/compress/s2"

// S2Compressor is the BlockCompressionS2 codec: S2 carries its own
// decompressed-length header, so unlike LZ4Compressor its Decompress needs
// no buffer-sizing retry loop.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor returns an S2Compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress s2-encodes data.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress reverses Compress.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
