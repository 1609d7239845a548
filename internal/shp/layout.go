package shp

import "github.com/beetlebugorg/shapefile/internal/geometry"

// Byte sizes and fixed offsets inside a record payload. All values in the
// payload are little-endian.
//
//	Point       type(4) X(8) Y(8) [Z(8)] [M(8)]
//	MultiPoint  type(4) bbox(32) numPoints(4) points[16n] [zRange(16) z[8n]] [mRange(16) m[8n]]
//	Poly*       type(4) bbox(32) numParts(4) numPoints(4) parts[4p] points[16n] [Z block] [M block]
//	MultiPatch  as Poly* with partTypes[4p] after parts[4p]
const (
	sizeInt    = 4
	sizeDouble = 8
	sizeXY     = 16
	sizeRange  = 16

	offsetKind     = 0
	offsetBox      = 4
	offsetPointXY  = 4
	offsetPointZ   = 20
	offsetPointM   = 20 // PointM
	offsetPointZM  = 28 // M of PointZ
	offsetNumParts = 36 // Poly*, MultiPatch
	offsetNumMulti = 36 // MultiPoint: point count
	offsetNumPts   = 40 // Poly*, MultiPatch: point count

	headerMultiPoint = 40
	headerPoly       = 44
)

// Layout computes byte offsets inside a payload of a given kind and size.
// It is the single table consulted by the eager decoder, the random-access
// reader and the test encoder.
type Layout struct {
	Kind      geometry.Kind
	NumParts  int
	NumPoints int
}

// NewLayout returns the layout for a record of kind with the given counts.
// Point kinds always have one point and no parts.
func NewLayout(kind geometry.Kind, numParts, numPoints int) Layout {
	switch {
	case kind == geometry.KindNull:
		numParts, numPoints = 0, 0
	case kind.IsPoint():
		numParts, numPoints = 0, 1
	case kind.IsMultiPoint():
		numParts = 0
	}
	return Layout{Kind: kind, NumParts: numParts, NumPoints: numPoints}
}

// PartIndexOffset returns the offset of the part start array, or -1.
func (l Layout) PartIndexOffset() int {
	if !l.Kind.HasParts() {
		return -1
	}
	return headerPoly
}

// PartTypeOffset returns the offset of the MultiPatch part type array, or -1.
func (l Layout) PartTypeOffset() int {
	if l.Kind != geometry.KindMultiPatch {
		return -1
	}
	return headerPoly + sizeInt*l.NumParts
}

// PointsOffset returns the offset of the first X.
func (l Layout) PointsOffset() int {
	switch {
	case l.Kind.IsPoint():
		return offsetPointXY
	case l.Kind.IsMultiPoint():
		return headerMultiPoint
	case l.Kind == geometry.KindMultiPatch:
		return headerPoly + 2*sizeInt*l.NumParts
	case l.Kind.HasParts():
		return headerPoly + sizeInt*l.NumParts
	}
	return -1
}

// PointOffset returns the offset of vertex i's X; Y follows at +8.
func (l Layout) PointOffset(i int) int {
	return l.PointsOffset() + sizeXY*i
}

// pointsEnd is the first byte after the XY array.
func (l Layout) pointsEnd() int {
	return l.PointsOffset() + sizeXY*l.NumPoints
}

// ZRangeOffset returns the offset of the Z min/max pair, or -1 for kinds
// without a Z range (including PointZ).
func (l Layout) ZRangeOffset() int {
	if !l.Kind.HasZ() || l.Kind.IsPoint() {
		return -1
	}
	return l.pointsEnd()
}

// ZOffset returns the offset of vertex i's Z, or -1 if the kind has none.
func (l Layout) ZOffset(i int) int {
	if !l.Kind.HasZ() {
		return -1
	}
	if l.Kind.IsPoint() {
		return offsetPointZ
	}
	return l.ZRangeOffset() + sizeRange + sizeDouble*i
}

// MRangeOffset returns the offset of the M min/max pair, or -1.
func (l Layout) MRangeOffset() int {
	if !l.Kind.HasM() || l.Kind.IsPoint() {
		return -1
	}
	if l.Kind.HasZ() {
		return l.ZRangeOffset() + sizeRange + sizeDouble*l.NumPoints
	}
	return l.pointsEnd()
}

// MOffset returns the offset of vertex i's M, or -1 if the kind has none.
func (l Layout) MOffset(i int) int {
	if !l.Kind.HasM() {
		return -1
	}
	switch l.Kind {
	case geometry.KindPointM:
		return offsetPointM
	case geometry.KindPointZ:
		return offsetPointZM
	}
	return l.MRangeOffset() + sizeRange + sizeDouble*i
}

// MinLength returns the smallest payload holding every mandatory field:
// header, part arrays and XY array. Z and M blocks are optional trailing
// data and are not included.
func (l Layout) MinLength() int {
	switch {
	case l.Kind == geometry.KindNull:
		return sizeInt
	case l.Kind.IsPoint():
		return offsetPointXY + sizeXY
	}
	return l.pointsEnd()
}

// FullLength returns the payload length with every optional block present.
func (l Layout) FullLength() int {
	switch l.Kind {
	case geometry.KindPointZ:
		return offsetPointZM + sizeDouble
	case geometry.KindPointM:
		return offsetPointM + sizeDouble
	}
	if off := l.MRangeOffset(); off >= 0 {
		return off + sizeRange + sizeDouble*l.NumPoints
	}
	if off := l.ZRangeOffset(); off >= 0 {
		return off + sizeRange + sizeDouble*l.NumPoints
	}
	return l.MinLength()
}
