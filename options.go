package timebox

import (
	"github.com/briankopp/timebox/format"
	"github.com/briankopp/timebox/internal/options"
	"github.com/briankopp/timebox/lockfile"
)

// Option configures a TimeBoxFile at construction time, mirroring the
// teacher's functional-options convention (internal/options.Option[T]).
type Option = options.Option[*TimeBoxFile]

// WithBlockCompression selects the optional general-purpose compression pass
// (SPEC_FULL.md §B) applied to the delta table and every tag's payload.
func WithBlockCompression(c format.BlockCompression) Option {
	return options.NoError(func(f *TimeBoxFile) {
		f.blockCompression = c
	})
}

// WithLockGate overrides the default lockfile.Gate used by Write/Open.
func WithLockGate(g *lockfile.Gate) Option {
	return options.NoError(func(f *TimeBoxFile) {
		f.gate = g
	})
}

// WithIntegerIdentifiers selects the unsigned-integer tag-identifier
// encoding (§3, §6.3) for a file being written, instead of the default
// UTF-32 string encoding. Every identifier passed to AddTag must then be
// the canonical base-10 string form of a uint64.
func WithIntegerIdentifiers() Option {
	return options.NoError(func(f *TimeBoxFile) {
		f.IntegerIdentifiers = true
	})
}
