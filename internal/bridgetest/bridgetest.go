// Package bridgetest builds the typed-column fixture shape spec.md §6.4
// describes for the dataframe bridge: a sorted timestamp slice alongside a
// map of tag identifier to one typed column of equal length. It exists only
// for tests — the root timebox package's tests use it to build
// self-consistent fixtures without reaching for an actual dataframe library,
// which is out of scope (§1 Non-goals).
//
// Grounded on original_source/timebox/timebox.py's from_pandas/to_pandas,
// which shape a tag map the same way (column name -> typed array, plus a
// parallel date index) before/after pandas ever gets involved; this package
// keeps that shape and drops the pandas dependency entirely.
package bridgetest

import "github.com/briankopp/timebox/codec"

// Frame is a minimal, in-memory stand-in for the typed-column bridge
// structure: Timestamps is sorted and in seconds, and every column in
// Columns has len(Timestamps) points.
type Frame struct {
	Timestamps []int64
	Columns    map[string]codec.Column
}

// Example returns a small fixed Frame exercising all three Column kinds,
// mirroring the tag layout original_source's compression test fixtures use
// (an unsigned counter, a signed column with a negative run, and a float
// column with non-integral values).
func Example() Frame {
	return Frame{
		Timestamps: []int64{
			1514764800, // 2018-01-01T00:00:00Z
			1514768400,
			1514772000,
			1514775600,
		},
		Columns: map[string]codec.Column{
			"counter":     codec.NewUintColumn([]uint64{1, 2, 3, 4}, 4),
			"temperature": codec.NewIntColumn([]int64{-4, -2, 0, 2000}, 2),
			"pressure":    codec.NewFloatColumn([]float64{5.2, 0.8, 3.1415, 8}, 8),
		},
	}
}

// WithPowersOfTwo returns a single-column Frame whose float values are all
// integer-valued, exercising Stage C's integer-valuedness narrowing path for
// an originally-float column.
func WithPowersOfTwo() Frame {
	values := []float64{2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768, 65536}
	timestamps := make([]int64, len(values))
	for i := range timestamps {
		timestamps[i] = 1514764800 + int64(i)*3600
	}

	return Frame{
		Timestamps: timestamps,
		Columns: map[string]codec.Column{
			"level": codec.NewFloatColumn(values, 8),
		},
	}
}
