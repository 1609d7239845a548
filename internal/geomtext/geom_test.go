package geomtext

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/beetlebugorg/shapefile/internal/geometry"
)

func ring(x0, y0, x1, y1 float64) []geometry.Vertex {
	return []geometry.Vertex{
		geometry.XY(x0, y0), geometry.XY(x0, y1), geometry.XY(x1, y1), geometry.XY(x1, y0), geometry.XY(x0, y0),
	}
}

func TestToGeomPolygonGrouping(t *testing.T) {
	rec := geometry.NewRecord(geometry.KindPolygon)
	rec.AppendPart(ring(0, 0, 10, 10)...)
	rec.AppendPart(ring(2, 2, 4, 4)...)
	rec.AppendPart(ring(20, 20, 21, 21)...)

	g, err := ToGeom(rec)
	require.NoError(t, err)
	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok, "got %T", g)
	require.Equal(t, 2, mp.NumPolygons())
	require.Equal(t, 2, mp.Polygon(0).NumLinearRings())
	require.Equal(t, 1, mp.Polygon(1).NumLinearRings())

	single := geometry.NewRecord(geometry.KindPolygon)
	single.AppendPart(ring(0, 0, 1, 1)...)
	g, err = ToGeom(single)
	require.NoError(t, err)
	_, ok = g.(*geom.Polygon)
	require.True(t, ok, "got %T", g)
}

func TestToGeomHoleListedAfterOtherOuter(t *testing.T) {
	rec := geometry.NewRecord(geometry.KindPolygon)
	rec.AppendPart(ring(0, 0, 10, 10)...)
	rec.AppendPart(ring(20, 20, 30, 30)...)
	rec.AppendPart(ring(2, 2, 4, 4)...)

	g, err := ToGeom(rec)
	require.NoError(t, err)
	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok, "got %T", g)
	require.Equal(t, 2, mp.NumPolygons())

	first := mp.Polygon(0)
	require.Equal(t, 2, first.NumLinearRings())
	require.Equal(t, geom.Coord{0, 0}, first.LinearRing(0).Coord(0))
	require.Equal(t, geom.Coord{2, 2}, first.LinearRing(1).Coord(0))

	second := mp.Polygon(1)
	require.Equal(t, 1, second.NumLinearRings())
	require.Equal(t, geom.Coord{20, 20}, second.LinearRing(0).Coord(0))

	text, err := FormatWKT(rec)
	require.NoError(t, err)
	back, err := ParseWKT(text)
	require.NoError(t, err)
	require.Equal(t, []bool{false, true, false}, back.ClassifyHoles())
	require.InDelta(t, rec.Area(), back.Area(), 1e-9)
}

func TestToGeomLayouts(t *testing.T) {
	z := geometry.NewRecord(geometry.KindPolyLineZ)
	z.AppendPart(geometry.XYZ(0, 0, 1), geometry.XYZ(1, 1, 2))
	g, err := ToGeom(z)
	require.NoError(t, err)
	require.Equal(t, geom.XYZ, g.Layout())
	_, ok := g.(*geom.LineString)
	require.True(t, ok, "got %T", g)

	zm := geometry.NewRecord(geometry.KindMultiPointZ)
	zm.AppendVertex(geometry.XYZM(0, 0, 1, 2))
	zm.AppendVertex(geometry.XYZ(1, 1, 2))
	g, err = ToGeom(zm)
	require.NoError(t, err)
	require.Equal(t, geom.XYZM, g.Layout())
	require.Equal(t, []float64{0, 0, 1, 2, 1, 1, 2, geometry.NoData}, g.FlatCoords())

	m := geometry.NewRecord(geometry.KindPointM)
	m.AppendVertex(geometry.XYM(3, 4, 5))
	g, err = ToGeom(m)
	require.NoError(t, err)
	require.Equal(t, geom.XYM, g.Layout())
}

func TestFormatRoundTrip(t *testing.T) {
	rec := geometry.NewRecord(geometry.KindPolygonZ)
	rec.AppendPart(geometry.XYZ(0, 0, 1), geometry.XYZ(0, 10, 2), geometry.XYZ(10, 10, 3), geometry.XYZ(0, 0, 1))
	rec.AppendPart(geometry.XYZ(1, 1, 0), geometry.XYZ(1, 2, 0), geometry.XYZ(2, 2, 0), geometry.XYZ(1, 1, 0))

	text, err := FormatWKT(rec)
	require.NoError(t, err)
	fromText, err := ParseWKT(text)
	require.NoError(t, err)
	require.Equal(t, rec.Kind(), fromText.Kind())
	require.Equal(t, rec.Vertices(), fromText.Vertices())
	require.Equal(t, rec.Parts(), fromText.Parts())

	data, err := FormatWKB(rec, wkb.XDR)
	require.NoError(t, err)
	require.Equal(t, byte(0), data[0])
	fromBinary, err := ParseWKB(data)
	require.NoError(t, err)
	require.Equal(t, rec.Vertices(), fromBinary.Vertices())
	require.Equal(t, rec.Parts(), fromBinary.Parts())
}

func TestToGeomUnsupported(t *testing.T) {
	_, err := ToGeom(geometry.NewRecord(geometry.KindNull))
	require.True(t, errors.Is(err, ErrUnsupportedGeometry))

	patch := geometry.NewRecord(geometry.KindMultiPatch)
	patch.BeginPatch(geometry.PatchTriangleFan)
	patch.AppendVertex(geometry.XYZ(0, 0, 0))
	patch.AppendVertex(geometry.XYZ(1, 0, 0))
	patch.AppendVertex(geometry.XYZ(0, 1, 0))
	_, err = ToGeom(patch)
	require.True(t, errors.Is(err, ErrUnsupportedGeometry))
}

func TestToGeomMultiPatchRings(t *testing.T) {
	patch := geometry.NewRecord(geometry.KindMultiPatch)
	patch.BeginPatch(geometry.PatchOuterRing)
	for _, v := range ring(0, 0, 10, 10) {
		v.Z = geometry.Float(5)
		patch.AppendVertex(v)
	}
	patch.BeginPatch(geometry.PatchInnerRing)
	for _, v := range ring(2, 2, 4, 4) {
		v.Z = geometry.Float(5)
		patch.AppendVertex(v)
	}

	g, err := ToGeom(patch)
	require.NoError(t, err)
	p, ok := g.(*geom.Polygon)
	require.True(t, ok, "got %T", g)
	require.Equal(t, 2, p.NumLinearRings())
}
