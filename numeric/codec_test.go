package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutGetUint_RoundTrip(t *testing.T) {
	for _, width := range []int{1, 2, 4, 8} {
		buf := make([]byte, width)
		v := Unsigned64Max(uint8(width))
		PutUint(buf, v)
		assert.Equal(t, v, GetUint(buf))
	}
}

func TestPutGetInt_RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	PutInt(buf, -4)
	assert.Equal(t, int64(-4), GetInt(buf))

	buf4 := make([]byte, 4)
	PutInt(buf4, -70000)
	assert.Equal(t, int64(-70000), GetInt(buf4))
}

func TestPutGetFloat_RoundTrip(t *testing.T) {
	buf8 := make([]byte, 8)
	PutFloat(buf8, 3.1415926535)
	assert.InDelta(t, 3.1415926535, GetFloat(buf8), 1e-12)

	buf4 := make([]byte, 4)
	PutFloat(buf4, 5.2)
	assert.InDelta(t, float64(float32(5.2)), GetFloat(buf4), 1e-7)
}
