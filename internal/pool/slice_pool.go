package pool

import "sync"

// float64SlicePool backs GetFloat64Slice, used by codec's encode/decode
// pipeline for the Stage B/C scratch buffer.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice returns a float64 slice of length size drawn from the
// pool, reallocating only if the pooled slice's capacity is too small. The
// caller must call the returned cleanup func, typically via defer, to
// return the slice to the pool.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}
