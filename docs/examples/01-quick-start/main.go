package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

func main() {
	// Open shapefile (.shx and .prj are picked up beside it)
	f, err := shapefile.Open("coastline.shp", shapefile.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	// Print file info
	fmt.Printf("Kind: %v\n", f.Kind())
	fmt.Printf("Records: %d\n", f.NumRecords())
	fmt.Printf("Datum: %s\n", f.Projection().Datum)

	// Get file bounds
	bounds := f.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinX, bounds.MinY,
		bounds.MaxX, bounds.MaxY)

	// First record as WKT
	rec, err := f.Record(1)
	if err != nil {
		log.Fatal(err)
	}
	text, err := shapefile.FormatWKT(rec)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(text)
}
