package timebox

import (
	"fmt"

	"github.com/briankopp/timebox/bitopts"
	"github.com/briankopp/timebox/codec"
	"github.com/briankopp/timebox/dateindex"
	"github.com/briankopp/timebox/internal/pool"
	"github.com/briankopp/timebox/numeric"
)

// encode validates f and serializes it into a single byte slice following
// the layout in §4.6: header, tag-definition table, start date, then
// either a delta table or a uniform-spacing scalar, then every tag's
// payload in sorted identifier order.
func (f *TimeBoxFile) encode() ([]byte, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	layout, err := computeDateLayout(f.Timestamps)
	if err != nil {
		return nil, err
	}

	ids := f.sortedIdentifiers()

	var w uint8
	if f.IntegerIdentifiers {
		w, err = integerIdentifierWidth(ids)
	} else {
		w, err = identifierWidth(ids)
	}
	if err != nil {
		return nil, err
	}

	fileOpts := bitopts.FileOptions(0)
	fileOpts.SetTagNamesAreStrings(!f.IntegerIdentifiers)
	fileOpts.SetDateDifferentialsStored(layout.Table != nil)
	fileOpts.SetBlockCompression(uint8(f.blockCompression))

	type encodedTag struct {
		def     codec.TagDef
		payload []byte
	}
	encodedTags := make(map[string]encodedTag, len(ids))

	for _, id := range ids {
		tag := f.Tags[id]
		enc, err := codec.Encode(tag.Column, tag.Compression)
		if err != nil {
			return nil, fmt.Errorf("encoding tag %q: %w", id, err)
		}

		payload, err := wrapSection(enc.Payload, tag.BlockCompression)
		if err != nil {
			return nil, fmt.Errorf("compressing tag %q payload: %w", id, err)
		}

		tagOpts := enc.TagOptions
		tagOpts.SetBlockCompression(uint8(tag.BlockCompression))

		encodedTags[id] = encodedTag{
			def: codec.TagDef{
				Identifier:    id,
				Options:       tagOpts,
				BytesPerValue: tag.Column.Bytes,
				TypeChar:      tag.Column.Kind,
				Descriptor:    enc.Descriptor,
			},
			payload: payload,
		}
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	buf.MustWrite(marshalHeader(f.Version, fileOpts, uint8(len(ids)), uint32(f.NumPoints()), w))

	for _, id := range ids {
		entry, err := marshalTagEntry(id, w, f.IntegerIdentifiers, encodedTags[id].def)
		if err != nil {
			return nil, err
		}
		buf.MustWrite(entry)
	}

	var startDate [8]byte
	numeric.PutInt(startDate[:], layout.StartDate)
	buf.MustWrite(startDate[:])

	if layout.Table != nil {
		buf.MustWrite([]byte{layout.Table.Bytes})
		var unitBuf [2]byte
		numeric.PutUint(unitBuf[:], uint64(layout.Table.Unit))
		buf.MustWrite(unitBuf[:])
	} else {
		var secBuf [4]byte
		numeric.PutUint(secBuf[:], uint64(layout.SecondsBetweenPoints))
		buf.MustWrite(secBuf[:])
	}

	if layout.Table != nil {
		deltaBuf := dateindex.MarshalDeltas(layout.Table.Deltas, layout.Table.Bytes)
		wrapped, err := wrapSection(deltaBuf.Bytes(), f.blockCompression)
		pool.PutFileBuffer(deltaBuf)
		if err != nil {
			return nil, fmt.Errorf("compressing delta table: %w", err)
		}
		buf.MustWrite(wrapped)
	}

	for _, id := range ids {
		buf.MustWrite(encodedTags[id].payload)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}
