package geomtext

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/beetlebugorg/shapefile/internal/geometry"
)

func flatten(rec *geometry.Record, z, m bool) []float64 {
	var flat []float64
	for _, v := range rec.Vertices() {
		flat = append(flat, v.X, v.Y)
		if z {
			flat = append(flat, v.Z.Value)
		}
		if m {
			flat = append(flat, v.M.Value)
		}
	}
	return flat
}

func TestParseWKTPoint(t *testing.T) {
	rec, err := ParseWKT("POINT (10 20)")
	require.NoError(t, err)
	require.Equal(t, geometry.KindPoint, rec.Kind())
	require.Equal(t, []geometry.Vertex{geometry.XY(10, 20)}, rec.Vertices())

	v := rec.Vertices()[0]
	require.False(t, v.Z.Valid)
	require.False(t, v.M.Valid)
}

func TestParseWKTPolygonWithHole(t *testing.T) {
	rec, err := ParseWKT("POLYGON ((0 0,0 10,10 10,10 0,0 0),(2 2,2 4,4 4,4 2,2 2))")
	require.NoError(t, err)
	require.Equal(t, geometry.KindPolygon, rec.Kind())
	require.Equal(t, 2, rec.PartCount())

	outer, err := rec.Ring(0)
	require.NoError(t, err)
	inner, err := rec.Ring(1)
	require.NoError(t, err)
	require.True(t, outer.Bounds().ContainsBounds(inner.Bounds()))
	require.Equal(t, []bool{false, true}, rec.ClassifyHoles())
}

func TestParseWKTKinds(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		kind     geometry.Kind
		vertices int
		parts    int
	}{
		{"PointZ", "POINT Z (1 2 3)", geometry.KindPointZ, 1, 0},
		{"PointM", "POINT M (1 2 3)", geometry.KindPointM, 1, 0},
		{"PointZM", "POINT ZM (1 2 3 4)", geometry.KindPointZ, 1, 0},
		{"WidthImpliesZ", "POINT (1 2 3)", geometry.KindPointZ, 1, 0},
		{"WidthImpliesZM", "POINT (1 2 3 4)", geometry.KindPointZ, 1, 0},
		{"MultiPointBare", "MULTIPOINT (1 2, 3 4)", geometry.KindMultiPoint, 2, 0},
		{"MultiPointWrapped", "MULTIPOINT ((1 2), (3 4), (5 6))", geometry.KindMultiPoint, 3, 0},
		{"LineString", "LINESTRING (0 0, 1 1, 2 0)", geometry.KindPolyLine, 3, 1},
		{"LineStringM", "LINESTRING M (0 0 5, 1 1 6)", geometry.KindPolyLineM, 2, 1},
		{"MultiLineString", "MULTILINESTRING ((0 0, 1 1), (5 5, 6 6, 7 7))", geometry.KindPolyLine, 5, 2},
		{"MultiPolygon", "MULTIPOLYGON (((0 0, 0 10, 10 10, 10 0, 0 0), (2 2, 2 4, 4 4, 4 2, 2 2)), ((20 20, 20 21, 21 21, 20 20)))", geometry.KindPolygon, 14, 3},
		{"PolygonZ", "POLYGON Z ((0 0 1, 0 1 1, 1 1 1, 0 0 1))", geometry.KindPolygonZ, 4, 1},
		{"Empty", "POINT EMPTY", geometry.KindPoint, 0, 0},
		{"EmptyWithSuffix", "POLYGON ZM EMPTY", geometry.KindPolygonZ, 0, 0},
		{"Whitespace", "  LINESTRING(0 0,\n\t1 1)  ", geometry.KindPolyLine, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseWKT(tt.text)
			require.NoError(t, err)
			require.Equal(t, tt.kind, rec.Kind())
			require.Equal(t, tt.vertices, rec.VertexCount())
			require.Equal(t, tt.parts, rec.PartCount())
		})
	}
}

func TestParseWKTOrdinates(t *testing.T) {
	rec, err := ParseWKT("LINESTRING M (0 0 5, 1 1 6)")
	require.NoError(t, err)
	require.Equal(t, []geometry.Vertex{geometry.XYM(0, 0, 5), geometry.XYM(1, 1, 6)}, rec.Vertices())
	require.Equal(t, geometry.Range{Min: 5, Max: 6, Valid: true}, rec.MRange())

	rec, err = ParseWKT("POINT ZM (1 2 3 4)")
	require.NoError(t, err)
	require.Equal(t, geometry.XYZM(1, 2, 3, 4), rec.Vertices()[0])

	// the no-data sentinel still reads back as null
	rec, err = ParseWKT("POINT ZM (1 2 3 -1e39)")
	require.NoError(t, err)
	require.False(t, rec.Vertices()[0].M.Valid)
}

func TestParseWKTMatchesGoGeom(t *testing.T) {
	texts := []string{
		"POLYGON ((0 0, 0 10, 10 10, 10 0, 0 0), (2 2, 2 4, 4 4, 4 2, 2 2))",
		"MULTILINESTRING ((0 0, 1 1), (5 5, 6 6, 7 7))",
		"MULTIPOINT ((1 2), (3 4))",
	}
	for _, text := range texts {
		g, err := wkt.Unmarshal(text)
		require.NoError(t, err)

		rec, err := ParseWKT(text)
		require.NoError(t, err)
		require.Equal(t, g.FlatCoords(), flatten(rec, false, false), text)
	}

	g, err := wkt.Unmarshal("LINESTRING Z (0 0 1, 1 1 2, 2 0 3)")
	require.NoError(t, err)
	rec, err := ParseWKT("LINESTRING Z (0 0 1, 1 1 2, 2 0 3)")
	require.NoError(t, err)
	require.Equal(t, g.FlatCoords(), flatten(rec, true, false))
}

func TestAppendWKTExtendsRecord(t *testing.T) {
	rec := geometry.NewRecord(geometry.KindPolyLine)
	rec.AppendPart(geometry.XY(0, 0), geometry.XY(1, 1))

	require.NoError(t, AppendWKT(rec, "LINESTRING (5 5, 6 -6)"))
	require.Equal(t, 2, rec.PartCount())
	require.Equal(t, geometry.Bounds{MinX: 0, MinY: -6, MaxX: 6, MaxY: 5}, rec.Bounds())

	p, err := rec.Part(1)
	require.NoError(t, err)
	require.Equal(t, geometry.Part{Begin: 2, End: 3}, p)
}

func TestParseWKTErrors(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, err error)
	}{
		{"LowercaseKeyword", "point (1 2)", func(t *testing.T, err error) {
			require.True(t, errors.Is(err, ErrUnsupportedGeometry))
		}},
		{"UnknownKeyword", "TRIANGLE ((0 0, 1 1, 1 0, 0 0))", func(t *testing.T, err error) {
			require.True(t, errors.Is(err, ErrUnsupportedGeometry))
		}},
		{"Blank", "   ", syntaxError},
		{"Unterminated", "POINT (1 2", syntaxError},
		{"MixedWidth", "LINESTRING (0 0, 1 1 1)", syntaxError},
		{"SuffixWidth", "POINT Z (1 2)", syntaxError},
		{"Trailing", "POINT (1 2) junk", syntaxError},
		{"TwoPoints", "POINT (1 2, 3 4)", syntaxError},
		{"RingNotGroup", "POLYGON (0 0, 1 1)", syntaxError},
		{"BadNumber", "POINT (1 x)", func(t *testing.T, err error) {
			var ne *strconv.NumError
			require.ErrorAs(t, err, &ne)
			require.Equal(t, "x", ne.Num)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseWKT(tt.text)
			require.Nil(t, rec)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func syntaxError(t *testing.T, err error) {
	t.Helper()
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
}
