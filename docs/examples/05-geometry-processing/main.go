package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/shapefile/pkg/shapefile"
)

func describeRings(rec *shapefile.Record) {
	for i := 0; i < rec.PartCount(); i++ {
		ring, err := rec.Ring(i)
		if err != nil {
			log.Fatal(err)
		}
		role := "outer"
		if ring.IsHole() {
			role = "hole"
		}
		cx, cy := ring.Centroid()
		fmt.Printf("  part %d (%s): %d points, %v, area %.2f, centroid %.4f,%.4f\n",
			i, role, ring.Part().Len(), ring.Direction(), ring.Area(), cx, cy)
	}
}

func main() {
	// A polygon with one hole
	rec, err := shapefile.ParseWKT("POLYGON ((0 0, 0 10, 10 10, 10 0, 0 0), (2 2, 4 2, 4 4, 2 4, 2 2))")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%v: area %.2f, perimeter %.2f\n", rec.Kind(), rec.Area(), rec.Perimeter())
	describeRings(rec)

	// Edit a vertex; derived values follow
	if err := rec.SetVertex(2, shapefile.Vertex{X: 12, Y: 10}); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("after edit: area %.2f\n", rec.Area())

	// Shrinking edits leave the rectangle stale until recomputed
	if err := rec.DeleteVertex(2); err != nil {
		log.Fatal(err)
	}
	if rec.BoundsStale() {
		rec.RecomputeBounds()
	}
	fmt.Printf("bounds: %+v\n", rec.Bounds())
}
