package timebox

import (
	"fmt"

	"github.com/briankopp/timebox/bitopts"
	"github.com/briankopp/timebox/codec"
	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/numeric"
)

// headerFixedSize is the byte length of the header fields that precede the
// tag-definition table: version(1) + options(2) + num_tags(1) +
// num_points(4) + identifier_width(1) (§4.6).
const headerFixedSize = 1 + 2 + 1 + 4 + 1

// marshalHeader writes the fixed-size header fields (everything up to, but
// not including, the tag-definition table) for a file whose tags are
// emitted under identifierWidth w.
func marshalHeader(version uint8, fileOpts bitopts.FileOptions, numTags uint8, numPoints uint32, w uint8) []byte {
	buf := make([]byte, headerFixedSize)
	buf[0] = version
	numeric.PutUint(buf[1:3], uint64(fileOpts))
	buf[3] = numTags
	numeric.PutUint(buf[4:8], uint64(numPoints))
	buf[8] = w

	return buf
}

// parsedHeader is the decoded form of marshalHeader's output.
type parsedHeader struct {
	Version   uint8
	FileOpts  bitopts.FileOptions
	NumTags   uint8
	NumPoints uint32
	IDWidth   uint8
}

func unmarshalHeader(data []byte) (parsedHeader, error) {
	if len(data) < headerFixedSize {
		return parsedHeader{}, fmt.Errorf("need %d header bytes, have %d: %w", headerFixedSize, len(data), errs.ErrInvalidHeaderSize)
	}

	h := parsedHeader{
		Version:   data[0],
		FileOpts:  bitopts.FileOptions(numeric.GetUint(data[1:3])),
		NumTags:   data[3],
		NumPoints: uint32(numeric.GetUint(data[4:8])),
		IDWidth:   data[8],
	}

	if h.Version != Version {
		return parsedHeader{}, fmt.Errorf("version byte %d: %w", h.Version, errs.ErrUnsupportedVersion)
	}

	return h, nil
}

// tagTableEntryLen is the on-disk length of one tag's table entry: its
// identifier (w bytes) followed by its fixed definition record (§4.6).
func tagTableEntryLen(w uint8) int {
	return int(w) + codec.FixedDefinitionBytes
}

// marshalTagEntry writes one tag's identifier (padded to w bytes, encoded
// as UTF-32 or a raw unsigned integer per integerIDs) plus its fixed
// definition record.
func marshalTagEntry(identifier string, w uint8, integerIDs bool, def codec.TagDef) ([]byte, error) {
	var idBytes []byte
	var err error
	if integerIDs {
		idBytes, err = encodeIdentifierInt(identifier, w)
	} else {
		idBytes, err = encodeIdentifier(identifier, w)
	}
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, tagTableEntryLen(w))
	buf = append(buf, idBytes...)
	buf = append(buf, def.Marshal()...)

	return buf, nil
}

// unmarshalTagEntry reverses marshalTagEntry.
func unmarshalTagEntry(data []byte, w uint8, integerIDs bool) (string, codec.TagDef, error) {
	need := tagTableEntryLen(w)
	if len(data) < need {
		return "", codec.TagDef{}, fmt.Errorf("need %d bytes for tag entry, have %d: %w", need, len(data), errs.ErrShortRead)
	}

	var identifier string
	if integerIDs {
		identifier = decodeIdentifierInt(data[:w])
	} else {
		identifier = decodeIdentifier(data[:w])
	}

	def, err := codec.UnmarshalTagDef(identifier, data[w:need])
	if err != nil {
		return "", codec.TagDef{}, err
	}

	return identifier, def, nil
}
