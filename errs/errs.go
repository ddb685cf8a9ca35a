// Package errs defines the sentinel errors returned by the timebox codec.
//
// Callers should use errors.Is against the sentinels in this package rather
// than comparing error strings; call sites wrap these sentinels with
// fmt.Errorf("...: %w", ...) to attach context.
package errs

import "errors"

var (
	// ErrUnsupportedType is returned when a (kind, bits) pair falls outside
	// the supported numeric matrix (§4.1).
	ErrUnsupportedType = errors.New("timebox: unsupported numeric type")

	// ErrIntegerTooLarge is returned when a value does not fit in 64
	// unsigned bits (§4.1).
	ErrIntegerTooLarge = errors.New("timebox: integer too large for unsigned 64-bit width")

	// ErrIntegerNotUnsigned is returned when a negative value is passed to
	// an unsigned-width calculation (§4.1).
	ErrIntegerNotUnsigned = errors.New("timebox: integer is not unsigned")

	// ErrTagIdentifierByteRepresentation is returned when a tag identifier's
	// on-disk width cannot be represented: zero-length, or a string width
	// that is not a multiple of 4 (§3 invariant 6).
	ErrTagIdentifierByteRepresentation = errors.New("timebox: tag identifier byte representation is invalid")

	// ErrDataDoesNotMatchTagDefinition is returned when a tag's data is
	// missing, has the wrong dtype, or the identifier set does not match
	// the tag definitions (§3 invariant 2).
	ErrDataDoesNotMatchTagDefinition = errors.New("timebox: data does not match tag definition")

	// ErrDataShape is returned when a tag's data vector length does not
	// equal num_points (§3 invariant 1).
	ErrDataShape = errors.New("timebox: data shape does not match num_points")

	// ErrDateOrder is returned when timestamps decrease (§4.3 step 1).
	ErrDateOrder = errors.New("timebox: timestamps are not non-decreasing")

	// ErrDateUnits is returned when a timestamp index cannot be coerced to
	// second resolution.
	ErrDateUnits = errors.New("timebox: could not coerce timestamps to second resolution")

	// ErrCompression is returned when mode 'e' is applied to a non-monotone
	// sequence, or a compression descriptor is inconsistent on read (§4.4).
	ErrCompression = errors.New("timebox: compression error")

	// ErrCompressionModeInvalid is returned for an unrecognized compression
	// mode byte (§4.4).
	ErrCompressionModeInvalid = errors.New("timebox: invalid compression mode")

	// ErrUnsupportedCompression is returned for an unrecognized block
	// compression selector (§B).
	ErrUnsupportedCompression = errors.New("timebox: unsupported block compression type")

	// ErrCouldNotAcquireLock is returned when a reader or writer deadline
	// elapses before the lock could be acquired (§4.7).
	ErrCouldNotAcquireLock = errors.New("timebox: could not acquire file lock before deadline")

	// ErrUnsupportedVersion is returned when the header version byte does
	// not match a version this codec understands (§6.1).
	ErrUnsupportedVersion = errors.New("timebox: unsupported file version")

	// ErrInvalidHeaderSize is returned when a header-sized byte slice is
	// the wrong length for parsing.
	ErrInvalidHeaderSize = errors.New("timebox: invalid header size")

	// ErrShortRead is returned when fewer bytes are available than a
	// section declares it needs.
	ErrShortRead = errors.New("timebox: short read, truncated file")

	// ErrNoTags is returned when a file is written or read with zero tags,
	// which violates 1 <= T <= 255 (§3).
	ErrNoTags = errors.New("timebox: file must have at least one tag")

	// ErrTooManyTags is returned when T would exceed 255 (§3).
	ErrTooManyTags = errors.New("timebox: too many tags, maximum is 255")

	// ErrNoPoints is returned when N would be zero, violating N >= 1 (§3).
	ErrNoPoints = errors.New("timebox: file must have at least one point")
)
