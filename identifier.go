package timebox

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/numeric"
)

// identifierWidth returns the tag-identifier byte width W (§3 invariant 6)
// for string identifiers: the smallest multiple of 4 that holds every
// identifier encoded as UTF-32.
func identifierWidth(ids []string) (uint8, error) {
	var maxRunes int
	for _, id := range ids {
		if id == "" {
			return 0, fmt.Errorf("tag identifier cannot be empty: %w", errs.ErrTagIdentifierByteRepresentation)
		}

		n := utf8.RuneCountInString(id)
		if n > maxRunes {
			maxRunes = n
		}
	}

	width := maxRunes * 4
	if width == 0 || width > 255 {
		return 0, fmt.Errorf("identifier width %d out of range: %w", width, errs.ErrTagIdentifierByteRepresentation)
	}

	return uint8(width), nil
}

// encodeIdentifier writes id as little-endian UTF-32 code points, zero
// padded to width bytes.
func encodeIdentifier(id string, width uint8) ([]byte, error) {
	buf := make([]byte, width)
	i := 0
	for _, r := range id {
		if i+4 > int(width) {
			return nil, fmt.Errorf("identifier %q exceeds width %d: %w", id, width, errs.ErrTagIdentifierByteRepresentation)
		}
		numeric.PutUint(buf[i:i+4], uint64(r))
		i += 4
	}

	return buf, nil
}

// decodeIdentifier reverses encodeIdentifier, dropping trailing zero runes.
func decodeIdentifier(data []byte) string {
	runes := make([]rune, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		v := numeric.GetUint(data[i : i+4])
		if v == 0 {
			break
		}
		runes = append(runes, rune(v))
	}

	return string(runes)
}

// integerIdentifierWidth returns the identifier width for integer-mode
// identifiers (§3 invariant 6): the smallest power-of-two unsigned width
// that holds the largest id, when every id parses as a canonical base-10
// uint64 (no sign, no leading zeros other than "0" itself).
func integerIdentifierWidth(ids []string) (uint8, error) {
	var max uint64
	for _, id := range ids {
		v, err := parseCanonicalUint(id)
		if err != nil {
			return 0, fmt.Errorf("identifier %q is not a canonical unsigned integer: %w", id, errs.ErrTagIdentifierByteRepresentation)
		}
		if v > max {
			max = v
		}
	}

	return numeric.MinUnsignedBytes(max), nil
}

// parseCanonicalUint parses s as a uint64 and rejects any representation
// that wouldn't round-trip through strconv.FormatUint unchanged (leading
// zeros, signs, whitespace), so that the integer and string identifier
// spaces never silently collide.
func parseCanonicalUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if strconv.FormatUint(v, 10) != s {
		return 0, fmt.Errorf("%q is not canonical", s)
	}

	return v, nil
}

// encodeIdentifierInt writes id (a decimal string) as a little-endian
// unsigned integer of width bytes.
func encodeIdentifierInt(id string, width uint8) ([]byte, error) {
	v, err := parseCanonicalUint(id)
	if err != nil {
		return nil, fmt.Errorf("identifier %q: %w", id, errs.ErrTagIdentifierByteRepresentation)
	}

	buf := make([]byte, width)
	numeric.PutUint(buf, v)

	return buf, nil
}

// decodeIdentifierInt reverses encodeIdentifierInt, returning the decimal
// string form of the stored integer.
func decodeIdentifierInt(data []byte) string {
	return strconv.FormatUint(numeric.GetUint(data), 10)
}
