package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_StableForSameInput(t *testing.T) {
	tags := []TagSpec{
		{Identifier: "0", Kind: 'u', Bytes: 1},
		{Identifier: "1", Kind: 'i', Bytes: 2},
	}

	a := Schema(tags)
	b := Schema(tags)
	assert.Equal(t, a, b)
}

func TestSchema_DiffersOnWidthChange(t *testing.T) {
	a := Schema([]TagSpec{{Identifier: "0", Kind: 'u', Bytes: 1}})
	b := Schema([]TagSpec{{Identifier: "0", Kind: 'u', Bytes: 2}})
	assert.NotEqual(t, a, b)
}

func TestSchema_DiffersOnKindChange(t *testing.T) {
	a := Schema([]TagSpec{{Identifier: "0", Kind: 'u', Bytes: 4}})
	b := Schema([]TagSpec{{Identifier: "0", Kind: 'i', Bytes: 4}})
	assert.NotEqual(t, a, b)
}

func TestSchema_EmptyTagList(t *testing.T) {
	assert.Equal(t, Schema(nil), Schema([]TagSpec{}))
}
