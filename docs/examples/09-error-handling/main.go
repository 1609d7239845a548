package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

func safeOpen(path string) (*shapefile.File, error) {
	f, err := shapefile.Open(path, shapefile.DefaultOptions())
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("shapefile not found: %s", path)
		}
		return nil, err
	}

	if f.NumRecords() == 0 {
		log.Printf("Warning: %s contains no records", path)
	}
	if f.ProjectionTree().Empty() {
		log.Printf("Warning: %s has no usable projection", path)
	}
	return f, nil
}

func main() {
	f, err := safeOpen("parcels.shp")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	defer f.Close()

	// Corrupt records fail on their own; the rest stay readable
	for n := 1; n <= f.NumRecords(); n++ {
		_, err := f.Record(n)
		var corrupt *shapefile.CorruptRecordError
		if errors.As(err, &corrupt) {
			log.Printf("skipping record %d: %s", corrupt.Number, corrupt.Reason)
		}
	}

	// Unsupported text geometry
	if _, err := shapefile.ParseWKT("GEOMETRYCOLLECTION (POINT (1 2))"); errors.Is(err, shapefile.ErrUnsupportedGeometry) {
		log.Printf("Expected error: %v", err)
	}
}
