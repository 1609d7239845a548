package shapefile

import (
	"runtime"

	"go.uber.org/zap"
)

// Options configures Open.
type Options struct {
	// CacheBytes bounds the memory held by decoded records returned from
	// File.Record. Zero disables the cache and every call decodes afresh.
	CacheBytes int64

	// Logger receives debug output from decoding. When non-nil it is
	// installed as the process logger for the decoding packages; nil leaves
	// the current logger in place (silent by default).
	Logger *zap.Logger
}

// DefaultOptions returns options with a 64 MiB record cache.
func DefaultOptions() Options {
	return Options{
		CacheBytes: 64 << 20,
		Logger:     nil,
	}
}

// LoadOptions controls File.DecodeAll.
type LoadOptions struct {
	// Parallel enables concurrent decoding with a worker pool.
	Parallel bool

	// Workers is the number of decoding goroutines. If 0, defaults to
	// runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors keeps decoding after a corrupt record. The record's slot is
	// left nil and its error collected. When false the first error stops
	// decoding and is returned alone.
	SkipErrors bool

	// Progress is called after each record is processed, successfully or
	// not, with the count processed so far and the total.
	Progress func(done, total int)
}

// DefaultLoadOptions returns parallel decoding on every CPU that tolerates
// corrupt records.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Progress:   nil,
	}
}
