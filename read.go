package timebox

import (
	"fmt"
	"io"

	"github.com/briankopp/timebox/codec"
	"github.com/briankopp/timebox/dateindex"
	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/format"
	"github.com/briankopp/timebox/internal/options"
	"github.com/briankopp/timebox/lockfile"
	"github.com/briankopp/timebox/numeric"
)

// Open reads a TimeBox file from path under the concurrency gate's read
// lock (§4.7), decoding the header, tag table, date index, and every tag's
// payload into a new TimeBoxFile. Readers never delete path on error (§7).
func Open(path string, opts ...Option) (*TimeBoxFile, error) {
	f := &TimeBoxFile{Tags: make(map[string]*TagInput)}
	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}

	gate := f.gate
	if gate == nil {
		gate = lockfile.New()
	}

	handle, err := gate.AcquireRead(path)
	if err != nil {
		return nil, err
	}
	defer handle.Unlock()

	data, err := io.ReadAll(handle.File)
	if err != nil {
		return nil, err
	}

	return decode(data, f)
}

// decode parses a full file image into f, reversing encode's layout.
func decode(data []byte, f *TimeBoxFile) (*TimeBoxFile, error) {
	c := newCursor(data)

	headerBytes, err := c.take(headerFixedSize)
	if err != nil {
		return nil, err
	}

	h, err := unmarshalHeader(headerBytes)
	if err != nil {
		return nil, err
	}

	if h.NumTags == 0 {
		return nil, errs.ErrNoTags
	}
	if h.NumPoints == 0 {
		return nil, errs.ErrNoPoints
	}

	type tagEntry struct {
		identifier string
		def        codec.TagDef
	}
	entries := make([]tagEntry, h.NumTags)

	entryLen := tagTableEntryLen(h.IDWidth)
	for i := range entries {
		entryBytes, err := c.take(entryLen)
		if err != nil {
			return nil, err
		}

		identifier, def, err := unmarshalTagEntry(entryBytes, h.IDWidth, !h.FileOpts.TagNamesAreStrings())
		if err != nil {
			return nil, err
		}

		entries[i] = tagEntry{identifier: identifier, def: def}
	}

	startDateBytes, err := c.take(8)
	if err != nil {
		return nil, err
	}
	startDate := numeric.GetInt(startDateBytes)

	deltasStored := h.FileOpts.DateDifferentialsStored()
	fileBlockCompression := format.BlockCompression(h.FileOpts.BlockCompression())

	var (
		bytesPerDelta        uint8
		deltaUnit            dateindex.Unit
		secondsBetweenPoints uint32
	)

	if deltasStored {
		b, err := c.take(1)
		if err != nil {
			return nil, err
		}
		bytesPerDelta = b[0]

		u, err := c.take(2)
		if err != nil {
			return nil, err
		}
		deltaUnit = dateindex.Unit(numeric.GetUint(u))
	} else {
		s, err := c.take(4)
		if err != nil {
			return nil, err
		}
		secondsBetweenPoints = uint32(numeric.GetUint(s))
	}

	n := int(h.NumPoints)
	var timestamps []int64

	if deltasStored {
		rawLen := (n - 1) * int(bytesPerDelta)
		deltaBytes, err := c.takeSection(rawLen, fileBlockCompression)
		if err != nil {
			return nil, err
		}

		deltas, err := dateindex.UnmarshalDeltas(deltaBytes, n-1, bytesPerDelta)
		if err != nil {
			return nil, err
		}

		timestamps = dateindex.Decode(dateindex.Table{
			StartDate: startDate,
			Unit:      deltaUnit,
			Bytes:     bytesPerDelta,
			Deltas:    deltas,
		})
	} else {
		timestamps = make([]int64, n)
		timestamps[0] = startDate
		for i := 1; i < n; i++ {
			timestamps[i] = timestamps[i-1] + int64(secondsBetweenPoints)
		}
	}

	for _, e := range entries {
		payloadLen, width, err := payloadShape(e.def, n)
		if err != nil {
			return nil, err
		}

		payload, err := c.takeSection(payloadLen*int(width), format.BlockCompression(e.def.Options.BlockCompression()))
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", e.identifier, err)
		}

		col, err := codec.Decode(e.def.TypeChar, e.def.BytesPerValue, e.def.Options, e.def.Descriptor, payload, n)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", e.identifier, err)
		}

		f.Tags[e.identifier] = &TagInput{
			Column:           col,
			Compression:      codec.DecodedOptions(e.def.Options, e.def.Descriptor),
			BlockCompression: format.BlockCompression(e.def.Options.BlockCompression()),
		}
	}

	f.Version = h.Version
	f.Timestamps = timestamps
	f.FileOptions = h.FileOpts
	f.IntegerIdentifiers = !h.FileOpts.TagNamesAreStrings()
	f.StartDate = startDate
	f.SecondsBetweenPoints = secondsBetweenPoints
	f.BytesPerDelta = bytesPerDelta
	f.DeltaUnit = deltaUnit
	f.blockCompression = fileBlockCompression

	return f, nil
}

// payloadShape returns a tag's on-disk (length, width) in stored elements,
// accounting for mode 'e''s one-shorter output and the descriptor's
// compressed width when compression is active (§4.4, §4.6).
func payloadShape(def codec.TagDef, numPoints int) (length int, width uint8, err error) {
	if !def.Options.UseCompression() {
		return numPoints, def.BytesPerValue, nil
	}

	mode := def.Descriptor[0]
	width = def.Descriptor[1]

	switch mode {
	case codec.ModeMinOffset:
		return numPoints, width, nil
	case codec.ModeExactDerivative:
		return numPoints - 1, width, nil
	default:
		return 0, 0, fmt.Errorf("mode %q: %w", mode, errs.ErrCompressionModeInvalid)
	}
}
