// Package compress implements the optional block-compression algorithms
// selectable through format.BlockCompression: None, Zstd, S2, and LZ4.
//
// This sits above the codec package's own per-column pipeline (fixed-decimal
// scaling, min-offset/derivative transform, width narrowing) and above the
// dateindex package's delta narrowing. Those stages already exploit the
// structure of time-series data; this package is a general-purpose pass
// applied to whatever bytes come out, selected per-file and per-tag via the
// bits described in SPEC_FULL.md §B and §D.
//
// Zstd has two build-tag-selected backends: zstd_pure.go (klauspost/compress,
// pure Go, used when cgo is disabled) and zstd_cgo.go (valyala/gozstd, a cgo
// binding to the reference C library, used when cgo is available). Both
// implement the same ZstdCompressor type declared in zstd.go.
package compress
