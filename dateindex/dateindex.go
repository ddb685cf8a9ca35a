// Package dateindex implements the date-delta engine described in spec.md
// §4.3: it turns a sorted sequence of per-second timestamps into a narrow
// delta table (a coarse time unit plus a minimal unsigned width) and
// reverses that transform on read.
//
// It keeps only the encode/decode pairing of the teacher's
// encoding.TimestampDeltaEncoder / TimestampDeltaDecoder (a struct wrapping
// a pool.ByteBuffer, with Bytes()/Reset() accessors), not that struct or
// its algorithm: that encoder streams delta-of-delta zigzag varints one
// timestamp at a time, which fits a blob format built for random access.
// This engine instead needs the full timestamp slice up front to choose the
// single coarsest unit all deltas share, so it is expressed as batch
// Encode/Decode functions over a Table value rather than a Write-per-value
// streaming encoder; MarshalDeltas hands back the pooled byte buffer.
package dateindex

import (
	"fmt"

	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/internal/pool"
	"github.com/briankopp/timebox/numeric"
)

// Unit is the coarse time unit a delta table is expressed in. The ordered
// set is restricted to {Seconds, Minutes, Hours, Days}: calendar-aware
// units (months, years) appear in the ordered set spec.md §4.3 describes,
// but promoting to them requires a calendar-arithmetic library absent from
// the retrieved corpus, so promotion stops at Days (see SPEC_FULL.md §C).
// Unit's numeric values match the on-disk encoding in spec.md §6.2 exactly
// (seconds=1 .. days=4), not a zero-based enum.
type Unit uint16

const (
	Seconds Unit = 1
	Minutes Unit = 2
	Hours   Unit = 3
	Days    Unit = 4
)

// secondsPerUnit lists the candidate units from finest to coarsest; the
// promotion loop in Encode walks it in reverse to prefer the coarsest fit.
var secondsPerUnit = []struct {
	unit    Unit
	seconds int64
}{
	{Seconds, 1},
	{Minutes, 60},
	{Hours, 3600},
	{Days, 86400},
}

// SecondsPer returns the number of seconds a single tick of u represents.
func (u Unit) SecondsPer() int64 {
	for _, e := range secondsPerUnit {
		if e.unit == u {
			return e.seconds
		}
	}

	return 1
}

func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	case Days:
		return "days"
	default:
		return fmt.Sprintf("Unit(%d)", uint16(u))
	}
}

// Table is the encoded form of a timestamp index: the starting timestamp,
// the chosen unit, the narrowed byte width, and the narrowed delta values
// (length N-1, one fewer than the original timestamp count).
type Table struct {
	StartDate int64
	Unit      Unit
	Bytes     uint8
	Deltas    []uint64
}

// Encode computes the date-delta table for a sorted sequence of per-second
// timestamps (§4.3). It fails with errs.ErrDateOrder if any timestamp
// decreases, and with errs.ErrDateUnits if the sequence is too short to
// need a delta table (callers should special-case N<=1 before calling in;
// Encode requires len(timestamps) >= 2).
func Encode(timestamps []int64) (Table, error) {
	if len(timestamps) < 2 {
		return Table{}, fmt.Errorf("need at least 2 timestamps to compute deltas: %w", errs.ErrDateUnits)
	}

	deltasSeconds := make([]int64, len(timestamps)-1)
	for i := 1; i < len(timestamps); i++ {
		d := timestamps[i] - timestamps[i-1]
		if d < 0 {
			return Table{}, fmt.Errorf("timestamp %d precedes timestamp %d: %w", timestamps[i], timestamps[i-1], errs.ErrDateOrder)
		}
		deltasSeconds[i-1] = d
	}

	unit := coarsestUnit(deltasSeconds)
	secPer := unit.SecondsPer()

	narrowed := make([]uint64, len(deltasSeconds))
	var maxVal uint64
	for i, d := range deltasSeconds {
		v := uint64(d / secPer)
		narrowed[i] = v
		if v > maxVal {
			maxVal = v
		}
	}

	return Table{
		StartDate: timestamps[0],
		Unit:      unit,
		Bytes:     numeric.MinUnsignedBytes(maxVal),
		Deltas:    narrowed,
	}, nil
}

// coarsestUnit finds the coarsest unit in secondsPerUnit such that every
// delta divides evenly into it, walking from Days down to Seconds.
func coarsestUnit(deltasSeconds []int64) Unit {
	for i := len(secondsPerUnit) - 1; i >= 0; i-- {
		candidate := secondsPerUnit[i]
		if allDivisible(deltasSeconds, candidate.seconds) {
			return candidate.unit
		}
	}

	return Seconds
}

func allDivisible(deltasSeconds []int64, divisor int64) bool {
	for _, d := range deltasSeconds {
		if d%divisor != 0 {
			return false
		}
	}

	return true
}

// Decode reconstructs N timestamps from a Table, where N = len(t.Deltas)+1.
func Decode(t Table) []int64 {
	out := make([]int64, len(t.Deltas)+1)
	out[0] = t.StartDate
	secPer := t.Unit.SecondsPer()
	for i, d := range t.Deltas {
		out[i+1] = out[i] + int64(d)*secPer
	}

	return out
}

// MarshalDeltas writes the narrowed delta table into a pooled byte buffer
// at the given width (1, 2, 4, or 8 bytes per value), little-endian.
func MarshalDeltas(deltas []uint64, width uint8) *pool.ByteBuffer {
	buf := pool.GetFileBuffer()
	buf.Grow(len(deltas) * int(width))

	var tmp [8]byte
	for _, v := range deltas {
		numeric.PutUint(tmp[:width], v)
		buf.MustWrite(tmp[:width])
	}

	return buf
}

// UnmarshalDeltas reads n narrowed delta values of the given width from
// data, little-endian.
func UnmarshalDeltas(data []byte, n int, width uint8) ([]uint64, error) {
	need := n * int(width)
	if len(data) < need {
		return nil, fmt.Errorf("need %d bytes for %d deltas at width %d, have %d: %w", need, n, width, len(data), errs.ErrShortRead)
	}

	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = numeric.GetUint(data[i*int(width) : i*int(width)+int(width)])
	}

	return out, nil
}
