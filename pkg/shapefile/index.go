package shapefile

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"go.uber.org/zap"

	"github.com/beetlebugorg/shapefile/internal/geometry"
	"github.com/beetlebugorg/shapefile/internal/logger"
)

// RecordIndex answers bounding-rectangle queries over the records of a File.
//
// Rectangles are read from each record's header, so building the index does
// not decode any vertex arrays except the single vertex of point records.
// Null-shape records are not indexed.
//
// Example:
//
//	idx, errs := shapefile.BuildIndex(f)
//	for _, n := range idx.Query(shapefile.Bounds{MinX: 10, MinY: 50, MaxX: 11, MaxY: 51}) {
//	    rec, err := f.Record(n)
//	    ...
//	}
type RecordIndex struct {
	rtree *rtreego.Rtree
	size  int
}

// indexedRecord is a record rectangle stored in the R-tree.
type indexedRecord struct {
	number int
	bounds Bounds
}

// Bounds implements rtreego.Spatial.
func (r *indexedRecord) Bounds() rtreego.Rect {
	return rect(r.bounds)
}

// minExtent pads zero-width or zero-height rectangles, which rtreego
// rejects.
const minExtent = 1e-9

func rect(b Bounds) rtreego.Rect {
	point := rtreego.Point{b.MinX, b.MinY}
	lengths := []float64{
		math.Max(b.Width(), minExtent),
		math.Max(b.Height(), minExtent),
	}
	r, _ := rtreego.NewRect(point, lengths)
	return r
}

// BuildIndex indexes every record of f. Records whose header cannot be read
// are left out and their errors returned in record order.
func BuildIndex(f *File) (*RecordIndex, []error) {
	idx := &RecordIndex{rtree: rtreego.NewTree(2, 25, 50)}
	var errs []error
	for n := 1; n <= f.NumRecords(); n++ {
		b, ok, err := recordBounds(f, n)
		if err != nil {
			logger.L().Debug("record left out of index", zap.Int("record", n), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		idx.rtree.Insert(&indexedRecord{number: n, bounds: b})
		idx.size++
	}
	return idx, errs
}

func recordBounds(f *File, n int) (Bounds, bool, error) {
	ra, err := f.Reader(n)
	if err != nil {
		return Bounds{}, false, err
	}
	switch kind := ra.Kind(); {
	case kind == geometry.KindNull:
		return Bounds{}, false, nil
	case kind.IsPoint():
		v, err := ra.Vertex(0)
		if err != nil {
			return Bounds{}, false, err
		}
		return geometry.PointBounds(v.X, v.Y), true, nil
	case ra.NumPoints() == 0:
		return Bounds{}, false, nil
	}
	return ra.Box(), true, nil
}

// Len returns the number of indexed records.
func (idx *RecordIndex) Len() int { return idx.size }

// Query returns the numbers of records whose rectangle intersects b, edges
// included, in ascending order.
func (idx *RecordIndex) Query(b Bounds) []int {
	// Grown so rectangles that only touch b still overlap it in the R-tree.
	search := Bounds{
		MinX: b.MinX - minExtent, MinY: b.MinY - minExtent,
		MaxX: b.MaxX + minExtent, MaxY: b.MaxY + minExtent,
	}
	spatials := idx.rtree.SearchIntersect(rect(search))
	out := make([]int, 0, len(spatials))
	for _, s := range spatials {
		r := s.(*indexedRecord)
		if r.bounds.Intersects(b) {
			out = append(out, r.number)
		}
	}
	sort.Ints(out)
	return out
}

// QueryPoint returns the numbers of records whose rectangle contains (x, y).
func (idx *RecordIndex) QueryPoint(x, y float64) []int {
	return idx.Query(geometry.PointBounds(x, y))
}
