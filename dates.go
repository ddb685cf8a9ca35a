package timebox

import (
	"fmt"

	"github.com/briankopp/timebox/dateindex"
	"github.com/briankopp/timebox/errs"
)

// dateLayout is the on-disk spacing representation chosen for a timestamp
// sequence: either uniform (Table nil, SecondsBetweenPoints > 0) or
// per-point deltas (Table non-nil, SecondsBetweenPoints == 0), satisfying
// the XOR in §3 invariant 3.
type dateLayout struct {
	StartDate            int64
	SecondsBetweenPoints uint32
	Table                *dateindex.Table
}

const maxUint32 = 1<<32 - 1

// computeDateLayout picks uniform spacing when every consecutive gap is
// identical, non-zero, and fits in 32 bits, and a per-point delta table otherwise
// (§4.3). A single-point file always uses uniform spacing with
// SecondsBetweenPoints == 0, since a delta table needs at least one gap.
func computeDateLayout(timestamps []int64) (dateLayout, error) {
	if len(timestamps) == 1 {
		return dateLayout{StartDate: timestamps[0]}, nil
	}

	uniform := true
	gap := timestamps[1] - timestamps[0]
	if gap < 0 {
		return dateLayout{}, fmt.Errorf("timestamp %d precedes timestamp %d: %w", timestamps[1], timestamps[0], errs.ErrDateOrder)
	}

	for i := 1; i < len(timestamps); i++ {
		d := timestamps[i] - timestamps[i-1]
		if d < 0 {
			return dateLayout{}, fmt.Errorf("timestamp %d precedes timestamp %d: %w", timestamps[i], timestamps[i-1], errs.ErrDateOrder)
		}
		if d != gap {
			uniform = false
		}
	}

	if uniform && gap > 0 && gap <= maxUint32 {
		return dateLayout{StartDate: timestamps[0], SecondsBetweenPoints: uint32(gap)}, nil
	}

	table, err := dateindex.Encode(timestamps)
	if err != nil {
		return dateLayout{}, err
	}

	return dateLayout{StartDate: table.StartDate, Table: &table}, nil
}
