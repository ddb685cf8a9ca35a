package codec

import (
	"fmt"

	"github.com/briankopp/timebox/bitopts"
	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/numeric"
)

// FixedDefinitionBytes is the number of bytes in a tag's definition record
// that are not the identifier: 2 bytes of options, 1 byte bytes-per-value,
// 1 byte type char, 4 bytes extra-information length, and the 32-byte
// mode-specific descriptor (§4.6). The tag table stores one record of
// (W + FixedDefinitionBytes) bytes per tag, where W is the identifier width.
const FixedDefinitionBytes = 2 + 1 + 1 + 4 + 32

// TagDef is a single tag's definition record: everything the tag table
// persists about a tag other than its data.
type TagDef struct {
	Identifier               string
	Options                  bitopts.TagOptions
	BytesPerValue            uint8
	TypeChar                 numeric.Kind
	NumBytesExtraInformation uint32
	Descriptor               [32]byte
}

// Marshal writes a TagDef's fixed-width fields (everything after the
// identifier) into a FixedDefinitionBytes-length buffer.
func (d TagDef) Marshal() []byte {
	buf := make([]byte, FixedDefinitionBytes)
	numeric.PutUint(buf[0:2], uint64(d.Options))
	buf[2] = d.BytesPerValue
	buf[3] = byte(d.TypeChar)
	numeric.PutUint(buf[4:8], uint64(d.NumBytesExtraInformation))
	copy(buf[8:40], d.Descriptor[:])

	return buf
}

// UnmarshalTagDef reads everything after the identifier field (options
// through the 32-byte descriptor) from a FixedDefinitionBytes-length slice.
func UnmarshalTagDef(identifier string, data []byte) (TagDef, error) {
	if len(data) < FixedDefinitionBytes {
		return TagDef{}, fmt.Errorf("tag definition needs %d bytes, have %d: %w", FixedDefinitionBytes, len(data), errs.ErrShortRead)
	}

	d := TagDef{
		Identifier:               identifier,
		Options:                  bitopts.TagOptions(numeric.GetUint(data[0:2])),
		BytesPerValue:            data[2],
		TypeChar:                 numeric.Kind(data[3]),
		NumBytesExtraInformation: uint32(numeric.GetUint(data[4:8])),
	}
	copy(d.Descriptor[:], data[8:40])

	return d, nil
}
