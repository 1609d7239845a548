package shapefile

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/beetlebugorg/shapefile/internal/logger"
)

// DecodeAll decodes every record. The result has one slot per record in
// file order, so records[n-1] is record n; slots of records that failed are
// nil. Null-shape records decode to an empty record of KindNull, not nil.
//
// Corrupt records never abort the dataset when opts.SkipErrors is set: each
// failure is collected and decoding continues. Without SkipErrors the first
// failure is returned alone with a nil slice.
//
// DecodeAll bypasses the record cache.
//
// Example:
//
//	records, errs := f.DecodeAll(shapefile.LoadOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Progress: func(done, total int) {
//	        fmt.Printf("\rDecoding: %d/%d", done, total)
//	    },
//	})
//	if len(errs) > 0 {
//	    fmt.Printf("\nSkipped %d corrupt records\n", len(errs))
//	}
func (f *File) DecodeAll(opts LoadOptions) ([]*Record, []error) {
	total := len(f.offsets)
	if total == 0 {
		return []*Record{}, nil
	}
	if !opts.Parallel {
		return f.decodeSerial(opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > total {
		workers = total
	}

	type decodeResult struct {
		number int
		rec    *Record
		err    error
	}

	jobs := make(chan int, total)
	results := make(chan decodeResult, total)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				rec, err := f.decode(n)
				results <- decodeResult{number: n, rec: rec, err: err}
			}
		}()
	}

	for n := 1; n <= total; n++ {
		jobs <- n
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]*Record, total)
	failed := make([]error, total)
	done := 0
	for result := range results {
		done++
		if opts.Progress != nil {
			opts.Progress(done, total)
		}
		if result.err != nil {
			logDecodeFailure(result.number, result.err)
			if !opts.SkipErrors {
				// results holds every job; the workers never block.
				return nil, []error{result.err}
			}
			failed[result.number-1] = result.err
			continue
		}
		records[result.number-1] = result.rec
	}

	// Errors are reported in record order regardless of completion order.
	var errs []error
	for _, err := range failed {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return records, errs
}

func (f *File) decodeSerial(opts LoadOptions) ([]*Record, []error) {
	total := len(f.offsets)
	records := make([]*Record, total)
	var errs []error
	for n := 1; n <= total; n++ {
		rec, err := f.decode(n)
		if opts.Progress != nil {
			opts.Progress(n, total)
		}
		if err != nil {
			logDecodeFailure(n, err)
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		records[n-1] = rec
	}
	return records, errs
}

func logDecodeFailure(n int, err error) {
	logger.L().Debug("record decode failed", zap.Int("record", n), zap.Error(err))
}
