package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

func main() {
	f, err := shapefile.Open("coastline.shp", shapefile.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	// Build R-tree over record rectangles (reads headers only)
	idx, errs := shapefile.BuildIndex(f)
	if len(errs) > 0 {
		log.Printf("%d corrupt records left out of the index", len(errs))
	}

	// Define viewport (Boston Harbor area)
	viewport := shapefile.Bounds{
		MinX: -71.1, MaxX: -71.0,
		MinY: 42.3, MaxY: 42.4,
	}

	hits := idx.Query(viewport)
	fmt.Printf("Visible records: %d\n", len(hits))

	for _, n := range hits {
		rec, err := f.Record(n)
		if err != nil {
			log.Printf("record %d: %v", n, err)
			continue
		}
		fmt.Printf("  #%d: %v, %d points\n", n, rec.Kind(), rec.VertexCount())
	}
}
