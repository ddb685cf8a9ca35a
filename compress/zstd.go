package compress

// ZstdCompressor is the BlockCompressionZstd codec, applied to an already
// narrowed tag payload or the date-delta table when the best ratio matters
// more than compression speed. Its Compress/Decompress methods live in
// zstd_pure.go (klauspost/compress, no cgo) and zstd_cgo.go (gozstd, cgo),
// selected by build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor returns a ZstdCompressor.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
