// Package shapefile reads ESRI shapefile geometry.
//
// A shapefile is a main file (.shp) of variable-length geometry records, an
// index file (.shx) of record offsets and, optionally, a projection file
// (.prj). This package opens all three and gives access to records as
// editable geometry, as lazy random-access views over the file bytes, or in
// bulk through a parallel decoder.
//
// # Basic Usage
//
//	f, err := shapefile.Open("parcels.shp", shapefile.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	fmt.Printf("%d %v records covering %+v\n", f.NumRecords(), f.Kind(), f.Bounds())
//
// # Records
//
// Record decodes one record into a Record: a vertex sequence with parts over
// it, a bounding rectangle, and Z and M ranges. Z and M values are nullable;
// stored values at or below -1e38 read back as null.
//
//	rec, err := f.Record(1)
//	for i := 0; i < rec.PartCount(); i++ {
//	    ring, _ := rec.Ring(i)
//	    fmt.Println(ring.Area(), ring.IsHole())
//	}
//
// Decoded records are cached up to Options.CacheBytes and shared between
// callers. Clone a record before editing it.
//
// # Random Access
//
// Reader and Vertex read single values straight from the file bytes, which
// avoids decoding large records to inspect a few vertices:
//
//	ra, err := f.Reader(7)
//	v, err := ra.Vertex(ra.NumPoints() - 1)
//
// # Corrupt Records
//
// A record that cannot be decoded yields a *CorruptRecordError carrying its
// record number. Corruption never affects other records. DecodeAll collects
// these errors and keeps going when LoadOptions.SkipErrors is set.
//
// # Spatial Queries
//
// BuildIndex builds an R-tree over record rectangles:
//
//	idx, _ := shapefile.BuildIndex(f)
//	hits := idx.Query(shapefile.Bounds{MinX: -71.5, MinY: 42.0, MaxX: -71.0, MaxY: 42.5})
//
// # Projection
//
// Projection summarizes the .prj file (datum, spheroid, units, projection
// parameters). ProjectionTree gives the full parsed tree for anything the
// summary does not cover. Coordinates are never reprojected.
package shapefile
