// Package fingerprint computes a stable identifier for a TimeBoxFile's tag
// schema, used by SPEC_FULL.md §E.3 to let a reader cheaply detect whether
// two files share the same tag layout without comparing every tag
// definition byte-for-byte. Grounded on the teacher's internal/hash.ID,
// which hashes with xxhash rather than a cryptographic function since this
// is a collision-resistance-for-practical-purposes identifier, not a
// security boundary.
package fingerprint

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// TagSpec is the minimal per-tag shape that feeds a schema fingerprint: its
// wire identifier, value kind, and byte width.
type TagSpec struct {
	Identifier string
	Kind       byte
	Bytes      uint8
}

// Schema returns a 64-bit xxHash fingerprint of an ordered list of tag
// specs. Callers must pass tags in the same sorted-identifier order the
// file format uses (§4.6) so that two files with identical schemas but
// differently-ordered input slices still fingerprint identically.
func Schema(tags []TagSpec) uint64 {
	d := xxhash.New()
	for _, t := range tags {
		d.WriteString(t.Identifier)
		d.Write([]byte{0})
		d.Write([]byte{t.Kind})
		d.WriteString(strconv.Itoa(int(t.Bytes)))
		d.Write([]byte{0})
	}

	return d.Sum64()
}
