package timebox

import (
	"fmt"

	"github.com/briankopp/timebox/compress"
	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/format"
	"github.com/briankopp/timebox/numeric"
)

// wrapSection optionally runs payload through a block compression codec
// (SPEC_FULL.md §B/§D) before it is written to disk. BlockCompressionNone
// returns payload unchanged, reproducing the exact byte layout of §4.6.
// Any other selector prefixes the compressed bytes with their own 4-byte
// little-endian length, since the compressed size can no longer be derived
// from N and the column's width alone.
func wrapSection(payload []byte, kind format.BlockCompression) ([]byte, error) {
	if kind == format.BlockCompressionNone {
		return payload, nil
	}

	codec, err := compress.CreateCodec(kind)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compressing section with %s: %w", kind, err)
	}

	out := make([]byte, 4+len(compressed))
	numeric.PutUint(out[0:4], uint64(len(compressed)))
	copy(out[4:], compressed)

	return out, nil
}

// cursor is a sequential byte reader over a fully-buffered file, used while
// parsing the header, tag table, delta table, and tag payloads in order.
// Every read is bounds-checked and fails with errs.ErrShortRead rather than
// panicking on a truncated file.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// take advances the cursor by n bytes and returns them, or
// errs.ErrShortRead if fewer than n bytes remain.
func (c *cursor) take(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d remaining: %w", n, c.pos, len(c.data)-c.pos, errs.ErrShortRead)
	}

	out := c.data[c.pos : c.pos+n]
	c.pos += n

	return out, nil
}

// takeSection reads rawLen bytes of payload, either directly
// (BlockCompressionNone) or as a 4-byte-length-prefixed compressed blob
// that it decompresses back to rawLen bytes, mirroring wrapSection.
func (c *cursor) takeSection(rawLen int, kind format.BlockCompression) ([]byte, error) {
	if kind == format.BlockCompressionNone {
		return c.take(rawLen)
	}

	lenBytes, err := c.take(4)
	if err != nil {
		return nil, err
	}
	compressedLen := int(numeric.GetUint(lenBytes))

	compressed, err := c.take(compressedLen)
	if err != nil {
		return nil, err
	}

	cdc, err := compress.CreateCodec(kind)
	if err != nil {
		return nil, err
	}

	out, err := cdc.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing section with %s: %w", kind, err)
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("decompressed section is %d bytes, want %d: %w", len(out), rawLen, errs.ErrShortRead)
	}

	return out, nil
}
