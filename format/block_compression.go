// Package format defines small enum types shared across the codec's binary
// layout. It mirrors the teacher package's format.EncodingType/CompressionType
// pattern (a byte-sized enum with a String method), trimmed down to the one
// enum TimeBox actually persists: the optional block-compression selector
// described in SPEC_FULL.md §B.
package format

// BlockCompression selects the optional general-purpose compression pass
// applied over an already-narrowed payload (the delta table, or a tag's
// post-compression-pipeline bytes). It is persisted in 2 previously-reserved
// bits of the file/tag option fields (SPEC_FULL.md §B, §D).
type BlockCompression uint8

const (
	BlockCompressionNone BlockCompression = 0
	BlockCompressionZstd BlockCompression = 1
	BlockCompressionS2   BlockCompression = 2
	BlockCompressionLZ4  BlockCompression = 3
)

func (c BlockCompression) String() string {
	switch c {
	case BlockCompressionNone:
		return "None"
	case BlockCompressionZstd:
		return "Zstd"
	case BlockCompressionS2:
		return "S2"
	case BlockCompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is one of the four recognized block compression
// selectors.
func (c BlockCompression) IsValid() bool {
	return c <= BlockCompressionLZ4
}
