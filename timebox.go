// Package timebox implements the TimeBox file format and codec: an ordered
// sequence of timestamped rows, each carrying one value per named tag
// (column), encoded with a per-column compression pipeline and a
// date-delta index, and guarded on disk by a cooperative file-lock
// protocol (spec.md §1-§7).
//
// A TimeBoxFile is the in-memory mirror of the on-disk artifact: populate
// one with New and AddTag, then call Write to persist it; call Open to read
// one back. The zero value is not usable; always construct with New.
package timebox

import (
	"fmt"
	"sort"

	"github.com/briankopp/timebox/bitopts"
	"github.com/briankopp/timebox/codec"
	"github.com/briankopp/timebox/dateindex"
	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/format"
	"github.com/briankopp/timebox/internal/fingerprint"
	"github.com/briankopp/timebox/internal/options"
	"github.com/briankopp/timebox/lockfile"
	"github.com/briankopp/timebox/numeric"
)

// Version is the current on-disk format version byte (§6.1). Files whose
// header carries a different value are rejected with
// errs.ErrUnsupportedVersion.
const Version uint8 = 1

// TagInput is one tag's data plus the per-tag settings that drive its
// compression pipeline (§4.4) and its optional block-compression pass
// (SPEC_FULL.md §B/§D). The zero value for Compression and BlockCompression
// disables both, matching the on-disk default of an uncompressed,
// unwrapped payload.
type TagInput struct {
	Column           codec.Column
	Compression      codec.Options
	BlockCompression format.BlockCompression
}

// TimeBoxFile is the in-memory mirror of a TimeBox file (§3). Timestamps is
// the authoritative point index: Write derives the on-disk start date and
// spacing from it and does not change the StartDate, SecondsBetweenPoints,
// BytesPerDelta, and DeltaUnit fields, which Open populates from the file.
type TimeBoxFile struct {
	Version   uint8
	Timestamps []int64
	Tags      map[string]*TagInput

	FileOptions          bitopts.FileOptions
	StartDate            int64
	SecondsBetweenPoints uint32
	BytesPerDelta        uint8
	DeltaUnit            dateindex.Unit

	// IntegerIdentifiers selects the unsigned-integer tag-identifier
	// encoding (§3, §6.3) instead of the default UTF-32 string encoding.
	// When set, every tag identifier passed to AddTag must be the
	// canonical base-10 string form of a uint64 (e.g. "0", "17").
	IntegerIdentifiers bool

	blockCompression format.BlockCompression
	gate             *lockfile.Gate
}

// New builds an empty TimeBoxFile over the given sorted timestamp sequence.
// Tags are added afterward with AddTag. Options configure the default
// block-compression pass and the lock gate used by Write/Open.
func New(timestamps []int64, opts ...Option) (*TimeBoxFile, error) {
	if len(timestamps) == 0 {
		return nil, errs.ErrNoPoints
	}

	f := &TimeBoxFile{
		Version:    Version,
		Timestamps: append([]int64(nil), timestamps...),
		Tags:       make(map[string]*TagInput),
	}

	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}

	return f, nil
}

// NumPoints returns N, the number of rows (§3).
func (f *TimeBoxFile) NumPoints() int { return len(f.Timestamps) }

// AddTag registers a tag's column under identifier, validating its length
// against N (§3 invariant 1). Re-adding an existing identifier replaces it.
func (f *TimeBoxFile) AddTag(identifier string, col codec.Column, compression codec.Options) error {
	if col.Len() != f.NumPoints() {
		return fmt.Errorf("tag %q has %d points, want %d: %w", identifier, col.Len(), f.NumPoints(), errs.ErrDataShape)
	}

	f.Tags[identifier] = &TagInput{Column: col, Compression: compression, BlockCompression: f.blockCompression}

	return nil
}

// AddTagWithBlockCompression is AddTag plus a per-tag block-compression
// override (SPEC_FULL.md §D); the file-level default (WithBlockCompression)
// otherwise applies to every tag.
func (f *TimeBoxFile) AddTagWithBlockCompression(identifier string, col codec.Column, compression codec.Options, bc format.BlockCompression) error {
	if err := f.AddTag(identifier, col, compression); err != nil {
		return err
	}

	f.Tags[identifier].BlockCompression = bc

	return nil
}

// sortedIdentifiers returns the tag identifiers in the sorted order §4.6
// requires for on-disk emission.
func (f *TimeBoxFile) sortedIdentifiers() []string {
	ids := make([]string, 0, len(f.Tags))
	for id := range f.Tags {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Fingerprint returns a stable xxHash64 fingerprint of the file's tag
// schema (identifier, kind, byte width), in sorted identifier order
// (SPEC_FULL.md §B, §E.3). It is a cheap in-memory equality check between
// two TimeBoxFile instances' schemas; it is not persisted to disk and has
// no role in the wire format.
func (f *TimeBoxFile) Fingerprint() uint64 {
	ids := f.sortedIdentifiers()
	specs := make([]fingerprint.TagSpec, 0, len(ids))
	for _, id := range ids {
		tag := f.Tags[id]
		specs = append(specs, fingerprint.TagSpec{
			Identifier: id,
			Kind:       byte(tag.Column.Kind),
			Bytes:      tag.Column.Bytes,
		})
	}

	return fingerprint.Schema(specs)
}

// validate checks every invariant in spec.md §3 that can be verified
// without touching disk, per §7's "validation errors are raised before any
// file I/O" propagation rule.
func (f *TimeBoxFile) validate() error {
	n := f.NumPoints()
	if n == 0 {
		return errs.ErrNoPoints
	}

	if len(f.Tags) == 0 {
		return errs.ErrNoTags
	}
	if len(f.Tags) > 255 {
		return errs.ErrTooManyTags
	}

	for id, tag := range f.Tags {
		if tag.Column.Len() != n {
			return fmt.Errorf("tag %q has %d points, want %d: %w", id, tag.Column.Len(), n, errs.ErrDataShape)
		}
		if _, err := numeric.NewDescriptor(tag.Column.Kind, int(tag.Column.Bytes)*8); err != nil {
			return fmt.Errorf("tag %q: %w", id, err)
		}
	}

	if f.IntegerIdentifiers {
		if _, err := integerIdentifierWidth(f.sortedIdentifiers()); err != nil {
			return err
		}
	} else if _, err := identifierWidth(f.sortedIdentifiers()); err != nil {
		return err
	}

	return nil
}
