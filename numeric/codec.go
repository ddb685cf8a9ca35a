package numeric

import "math"

// PutUint writes v into dst as a little-endian unsigned integer. len(dst)
// must be 1, 2, 4, or 8; higher-order bytes of v beyond that width are
// silently truncated, matching the narrowing contract the callers already
// establish via MinUnsignedBytes.
func PutUint(dst []byte, v uint64) {
	for i := range dst {
		dst[i] = byte(v >> (8 * uint(i)))
	}
}

// GetUint reads a little-endian unsigned integer of width len(src).
func GetUint(src []byte) uint64 {
	var v uint64
	for i, b := range src {
		v |= uint64(b) << (8 * uint(i))
	}

	return v
}

// PutInt writes v into dst as a little-endian two's-complement signed
// integer of width len(dst) (1, 2, 4, or 8 bytes).
func PutInt(dst []byte, v int64) {
	PutUint(dst, uint64(v))
}

// GetInt reads a little-endian two's-complement signed integer of width
// len(src), sign-extending to int64.
func GetInt(src []byte) int64 {
	u := GetUint(src)
	bits := uint(len(src)) * 8
	if bits < 64 && u&(1<<(bits-1)) != 0 {
		u |= ^uint64(0) << bits
	}

	return int64(u)
}

// PutFloat writes v into dst as little-endian IEEE-754. len(dst) must be
// 4 (float32) or 8 (float64).
func PutFloat(dst []byte, v float64) {
	switch len(dst) {
	case 4:
		PutUint(dst, uint64(math.Float32bits(float32(v))))
	case 8:
		PutUint(dst, math.Float64bits(v))
	default:
		panic("numeric: PutFloat requires a 4 or 8 byte destination")
	}
}

// GetFloat reads a little-endian IEEE-754 value of width len(src) (4 or 8
// bytes) as a float64.
func GetFloat(src []byte) float64 {
	switch len(src) {
	case 4:
		return float64(math.Float32frombits(uint32(GetUint(src))))
	case 8:
		return math.Float64frombits(GetUint(src))
	default:
		panic("numeric: GetFloat requires a 4 or 8 byte source")
	}
}
