package dateindex

import (
	"errors"
	"testing"

	"github.com/briankopp/timebox/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const daySeconds = 86400
const hourSeconds = 3600

func TestEncode_PromotesToDays(t *testing.T) {
	base := int64(1514764800) // 2018-01-01T00:00:00Z
	timestamps := []int64{
		base,
		base + daySeconds,
		base + 2*daySeconds,
		base + 4*daySeconds,
	}

	table, err := Encode(timestamps)
	require.NoError(t, err)

	assert.Equal(t, Days, table.Unit)
	assert.Equal(t, uint8(1), table.Bytes)
	assert.Equal(t, []uint64{1, 1, 2}, table.Deltas)
	assert.Equal(t, base, table.StartDate)
}

func TestEncode_PromotesToHoursWhenNotDayAligned(t *testing.T) {
	// Mirrors the source's hour-resolution fixture: 36h, 17h, 43h deltas.
	base := int64(1514764800)
	timestamps := []int64{
		base,
		base + 36*hourSeconds,
		base + (36+17)*hourSeconds,
		base + (36+17+43)*hourSeconds,
	}

	table, err := Encode(timestamps)
	require.NoError(t, err)

	assert.Equal(t, Hours, table.Unit)
	assert.Equal(t, uint8(1), table.Bytes)
	assert.Equal(t, []uint64{36, 17, 43}, table.Deltas)
}

func TestEncode_RejectsDecreasingTimestamps(t *testing.T) {
	timestamps := []int64{100, 200, 150, 500}

	_, err := Encode(timestamps)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrDateOrder))
}

func TestEncode_TooFewTimestamps(t *testing.T) {
	_, err := Encode([]int64{100})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrDateUnits))
}

func TestDecode_RoundTrip(t *testing.T) {
	base := int64(1514764800)
	timestamps := []int64{base, base + 36*hourSeconds, base + 53*hourSeconds, base + 96*hourSeconds}

	table, err := Encode(timestamps)
	require.NoError(t, err)

	got := Decode(table)
	assert.Equal(t, timestamps, got)
}

func TestMarshalUnmarshalDeltas_RoundTrip(t *testing.T) {
	deltas := []uint64{1, 1, 2, 255}

	buf := MarshalDeltas(deltas, 1)
	defer func() { buf.Reset() }()

	got, err := UnmarshalDeltas(buf.Bytes(), len(deltas), 1)
	require.NoError(t, err)
	assert.Equal(t, deltas, got)
}

func TestMarshalUnmarshalDeltas_WiderWidth(t *testing.T) {
	deltas := []uint64{1, 400, 70000}

	buf := MarshalDeltas(deltas, 4)
	got, err := UnmarshalDeltas(buf.Bytes(), len(deltas), 4)
	require.NoError(t, err)
	assert.Equal(t, deltas, got)
}

func TestUnmarshalDeltas_ShortRead(t *testing.T) {
	_, err := UnmarshalDeltas([]byte{1, 2}, 3, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrShortRead))
}

func TestUnit_SecondsPer(t *testing.T) {
	assert.Equal(t, int64(1), Seconds.SecondsPer())
	assert.Equal(t, int64(60), Minutes.SecondsPer())
	assert.Equal(t, int64(3600), Hours.SecondsPer())
	assert.Equal(t, int64(86400), Days.SecondsPer())
}
