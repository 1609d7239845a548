package main

import (
	"fmt"
	"log"
	"runtime"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

// Read a single vertex without decoding the whole record
func lastVertex(f *shapefile.File, n int) (shapefile.Vertex, error) {
	ra, err := f.Reader(n)
	if err != nil {
		return shapefile.Vertex{}, err
	}
	return ra.Vertex(ra.NumPoints() - 1)
}

func main() {
	// Larger cache for repeated Record calls
	opts := shapefile.DefaultOptions()
	opts.CacheBytes = 256 << 20

	f, err := shapefile.Open("parcels.shp", opts)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	// Decode every record on all CPUs
	fmt.Println("=== Parallel decode ===")
	records, errs := f.DecodeAll(shapefile.LoadOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Progress: func(done, total int) {
			if done%10000 == 0 || done == total {
				fmt.Printf("\rDecoded: %d/%d", done, total)
			}
		},
	})
	fmt.Printf("\nRecords: %d, corrupt: %d\n", len(records), len(errs))

	// Random access
	fmt.Println("\n=== Random access ===")
	v, err := lastVertex(f, 1)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Last vertex of record 1: %.6f, %.6f\n", v.X, v.Y)
}
