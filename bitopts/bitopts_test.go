package bitopts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileOptions_TagNamesAreStrings(t *testing.T) {
	var f FileOptions
	assert.False(t, f.TagNamesAreStrings())

	f.SetTagNamesAreStrings(true)
	assert.True(t, f.TagNamesAreStrings())
	assert.False(t, f.DateDifferentialsStored())

	f.SetTagNamesAreStrings(false)
	assert.False(t, f.TagNamesAreStrings())
}

func TestFileOptions_DateDifferentialsStored(t *testing.T) {
	var f FileOptions
	f.SetDateDifferentialsStored(true)
	assert.True(t, f.DateDifferentialsStored())
	assert.Equal(t, FileOptions(0x02), f)
}

func TestFileOptions_BlockCompression(t *testing.T) {
	var f FileOptions
	f.SetTagNamesAreStrings(true)
	f.SetBlockCompression(3)
	assert.Equal(t, uint8(3), f.BlockCompression())
	assert.True(t, f.TagNamesAreStrings())

	f.SetBlockCompression(1)
	assert.Equal(t, uint8(1), f.BlockCompression())
	assert.True(t, f.TagNamesAreStrings())
}

func TestTagOptions_Bits(t *testing.T) {
	var tag TagOptions
	tag.SetUseCompression(true)
	tag.SetFloatingPointRounded(true)

	assert.True(t, tag.UseCompression())
	assert.True(t, tag.FloatingPointRounded())
	assert.False(t, tag.UseHashTable())
	assert.Equal(t, TagOptions(0x05), tag)
}

func TestTagOptions_BlockCompression(t *testing.T) {
	var tag TagOptions
	tag.SetBlockCompression(2)
	assert.Equal(t, uint8(2), tag.BlockCompression())

	tag.SetUseCompression(true)
	assert.Equal(t, uint8(2), tag.BlockCompression())
	assert.True(t, tag.UseCompression())
}
