package shp_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/shapefile/internal/geometry"
	"github.com/beetlebugorg/shapefile/internal/shp"
	"github.com/beetlebugorg/shapefile/internal/shp/shptest"
)

func fixture(kind geometry.Kind, parts ...[]geometry.Vertex) *geometry.Record {
	rec := geometry.NewRecord(kind)
	for _, vs := range parts {
		if kind.HasParts() {
			rec.AppendPart(vs...)
			continue
		}
		for _, v := range vs {
			rec.AppendVertex(v)
		}
	}
	rec.ClearModified()
	return rec
}

func square(x, y float64) []geometry.Vertex {
	return []geometry.Vertex{
		geometry.XY(x, y), geometry.XY(x, y+1), geometry.XY(x+1, y+1), geometry.XY(x+1, y), geometry.XY(x, y),
	}
}

func withZM(vs []geometry.Vertex, z, m bool) []geometry.Vertex {
	out := make([]geometry.Vertex, len(vs))
	for i, v := range vs {
		if z {
			v.Z = geometry.Float(float64(10 + i))
		}
		if m {
			v.M = geometry.Float(float64(100 + i))
		}
		out[i] = v
	}
	return out
}

func multiPatch() *geometry.Record {
	rec := geometry.NewRecord(geometry.KindMultiPatch)
	rec.BeginPatch(geometry.PatchTriangleStrip)
	for _, v := range withZM([]geometry.Vertex{geometry.XY(0, 0), geometry.XY(0, 1), geometry.XY(1, 0), geometry.XY(1, 1)}, true, false) {
		rec.AppendVertex(v)
	}
	rec.BeginPatch(geometry.PatchOuterRing)
	for _, v := range withZM(square(5, 5), true, true) {
		rec.AppendVertex(v)
	}
	rec.ClearModified()
	return rec
}

func fixtures() map[string]*geometry.Record {
	pts := []geometry.Vertex{geometry.XY(1, 2), geometry.XY(-3, 4), geometry.XY(5, -6)}
	line := []geometry.Vertex{geometry.XY(0, 0), geometry.XY(2, 2), geometry.XY(4, 0)}
	return map[string]*geometry.Record{
		"Null":        fixture(geometry.KindNull),
		"Point":       fixture(geometry.KindPoint, []geometry.Vertex{geometry.XY(1, 2)}),
		"PointZ":      fixture(geometry.KindPointZ, []geometry.Vertex{geometry.XYZM(1, 2, 3, 4)}),
		"PointM":      fixture(geometry.KindPointM, []geometry.Vertex{geometry.XYM(1, 2, 5)}),
		"MultiPoint":  fixture(geometry.KindMultiPoint, pts),
		"MultiPointZ": fixture(geometry.KindMultiPointZ, withZM(pts, true, true)),
		"MultiPointM": fixture(geometry.KindMultiPointM, withZM(pts, false, true)),
		"PolyLine":    fixture(geometry.KindPolyLine, line, square(10, 10)),
		"PolyLineZ":   fixture(geometry.KindPolyLineZ, withZM(line, true, false), withZM(square(3, 3), true, true)),
		"PolyLineM":   fixture(geometry.KindPolyLineM, withZM(line, false, true)),
		"Polygon":     fixture(geometry.KindPolygon, square(0, 0), square(4, 4)),
		"PolygonZ":    fixture(geometry.KindPolygonZ, withZM(square(0, 0), true, true)),
		"PolygonM":    fixture(geometry.KindPolygonM, withZM(square(0, 0), false, true), withZM(square(2, 2), false, false)),
		"MultiPatch":  multiPatch(),
	}
}

func TestDecodeMatchesRandomAccess(t *testing.T) {
	for name, want := range fixtures() {
		t.Run(name, func(t *testing.T) {
			payload := shptest.Payload(want)

			got, err := shp.Decode(payload)
			require.NoError(t, err)
			require.Equal(t, want.Kind(), got.Kind())
			require.Equal(t, want.Vertices(), got.Vertices())
			require.Equal(t, want.Parts(), got.Parts())
			require.False(t, got.Modified())

			ra, err := shp.NewRandomAccess(payload)
			require.NoError(t, err)
			require.Equal(t, want.Kind(), ra.Kind())
			require.Equal(t, got.VertexCount(), ra.NumPoints())
			for i, v := range got.Vertices() {
				lazy, err := ra.Vertex(i)
				require.NoError(t, err)
				require.Equal(t, v, lazy, "vertex %d", i)
			}
			if want.Kind().HasParts() {
				require.Equal(t, got.PartCount(), ra.NumParts())
			}
			for k, p := range got.Parts() {
				begin, end, err := ra.PartRange(k)
				require.NoError(t, err)
				require.Equal(t, p.Begin, begin)
				require.Equal(t, p.End, end)

				pt, err := ra.PartType(k)
				require.NoError(t, err)
				require.Equal(t, p.Type, pt)
			}
			require.Equal(t, want.Kind().HasZ() && want.VertexCount() > 0, ra.HasZ())
			require.Equal(t, want.Kind().HasM() && want.VertexCount() > 0, ra.HasM())
		})
	}
}

func TestRandomAccessIndexErrors(t *testing.T) {
	ra, err := shp.NewRandomAccess(shptest.Payload(fixture(geometry.KindPolyLine, square(0, 0))))
	require.NoError(t, err)

	var idx *geometry.IndexError
	_, err = ra.Vertex(5)
	require.ErrorAs(t, err, &idx)
	require.Equal(t, 5, idx.Len)

	_, err = ra.Vertex(-1)
	require.ErrorAs(t, err, &idx)

	_, _, err = ra.PartRange(1)
	require.ErrorAs(t, err, &idx)
	require.Equal(t, "part", idx.What)
}

func TestLayoutOffsets(t *testing.T) {
	tests := []struct {
		name      string
		layout    shp.Layout
		points    int
		zRange    int
		mRange    int
		minLength int
		full      int
	}{
		{"Point", shp.NewLayout(geometry.KindPoint, 0, 0), 4, -1, -1, 20, 20},
		{"PointZ", shp.NewLayout(geometry.KindPointZ, 0, 0), 4, -1, -1, 20, 36},
		{"PointM", shp.NewLayout(geometry.KindPointM, 0, 0), 4, -1, -1, 20, 28},
		{"MultiPointZ", shp.NewLayout(geometry.KindMultiPointZ, 0, 2), 40, 72, 104, 72, 136},
		{"PolyLineM", shp.NewLayout(geometry.KindPolyLineM, 2, 3), 52, -1, 100, 100, 140},
		{"PolygonZ", shp.NewLayout(geometry.KindPolygonZ, 1, 4), 48, 112, 160, 112, 208},
		{"MultiPatch", shp.NewLayout(geometry.KindMultiPatch, 2, 3), 60, 108, 148, 108, 188},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.points, tt.layout.PointsOffset())
			require.Equal(t, tt.zRange, tt.layout.ZRangeOffset())
			require.Equal(t, tt.mRange, tt.layout.MRangeOffset())
			require.Equal(t, tt.minLength, tt.layout.MinLength())
			require.Equal(t, tt.full, tt.layout.FullLength())
		})
	}

	mp := shp.NewLayout(geometry.KindMultiPatch, 2, 3)
	require.Equal(t, 44, mp.PartIndexOffset())
	require.Equal(t, 52, mp.PartTypeOffset())
	require.Equal(t, 60+16*2, mp.PointOffset(2))
	require.Equal(t, 108+16+8, mp.ZOffset(1))
	require.Equal(t, 148+16+16, mp.MOffset(2))

	pz := shp.NewLayout(geometry.KindPointZ, 0, 0)
	require.Equal(t, 20, pz.ZOffset(0))
	require.Equal(t, 28, pz.MOffset(0))
	require.Equal(t, -1, shp.NewLayout(geometry.KindPolyLine, 1, 1).ZOffset(0))
}

func TestOptionalBlocksGuardedByLength(t *testing.T) {
	rec := fixture(geometry.KindPolyLineZ, withZM(square(0, 0), true, true))
	payload := shptest.Payload(rec)
	l := shp.NewLayout(rec.Kind(), rec.PartCount(), rec.VertexCount())

	t.Run("XYOnly", func(t *testing.T) {
		got, err := shp.Decode(payload[:l.MinLength()])
		require.NoError(t, err)
		require.Equal(t, rec.VertexCount(), got.VertexCount())
		for _, v := range got.Vertices() {
			require.False(t, v.Z.Valid)
			require.False(t, v.M.Valid)
		}
		ra, err := shp.NewRandomAccess(payload[:l.MinLength()])
		require.NoError(t, err)
		require.False(t, ra.HasZ())
		require.False(t, ra.HasM())
	})

	t.Run("ZWithoutM", func(t *testing.T) {
		got, err := shp.Decode(payload[:l.MRangeOffset()])
		require.NoError(t, err)
		for i, v := range got.Vertices() {
			require.Equal(t, geometry.Float(float64(10+i)), v.Z)
			require.False(t, v.M.Valid)
		}
	})

	t.Run("PointZWithoutM", func(t *testing.T) {
		p := shptest.Payload(fixture(geometry.KindPointZ, []geometry.Vertex{geometry.XYZM(1, 2, 3, 4)}))
		got, err := shp.Decode(p[:28])
		require.NoError(t, err)
		v, err := got.Vertex(0)
		require.NoError(t, err)
		require.Equal(t, geometry.XYZ(1, 2, 3), v)
	})
}

func TestNoDataSentinelDecodesNull(t *testing.T) {
	rec := fixture(geometry.KindMultiPointM, []geometry.Vertex{geometry.XY(1, 1), geometry.XYM(2, 2, 7)})
	payload := shptest.Payload(rec)
	l := shp.NewLayout(rec.Kind(), 0, 2)
	// any value at or below -1e38 is null, not only the canonical sentinel
	binary.LittleEndian.PutUint64(payload[l.MOffset(1):], math.Float64bits(-1e38))

	got, err := shp.Decode(payload)
	require.NoError(t, err)
	require.False(t, got.Vertices()[0].M.Valid)
	require.False(t, got.Vertices()[1].M.Valid)
}

func TestDecodeCorrupt(t *testing.T) {
	poly := shptest.Payload(fixture(geometry.KindPolygon, square(0, 0), square(2, 2)))

	hugeCount := append([]byte(nil), poly...)
	binary.LittleEndian.PutUint32(hugeCount[40:], 12)

	badStart := append([]byte(nil), poly...)
	binary.LittleEndian.PutUint32(badStart[44:], 1)

	descending := append([]byte(nil), poly...)
	binary.LittleEndian.PutUint32(descending[48:], 0)

	unknown := make([]byte, 20)
	binary.LittleEndian.PutUint32(unknown, 2)

	tests := []struct {
		name    string
		payload []byte
		check   func(t *testing.T, err error)
	}{
		{"Empty", nil, func(t *testing.T, err error) {
			require.True(t, errors.Is(err, shp.ErrEmptyPayload))
		}},
		{"UnknownKind", unknown, func(t *testing.T, err error) {
			var uk *shp.ErrUnknownKind
			require.ErrorAs(t, err, &uk)
			require.Equal(t, int32(2), uk.Code)
		}},
		{"ShortHeader", poly[:30], func(t *testing.T, err error) {
			var tr *shp.ErrTruncated
			require.ErrorAs(t, err, &tr)
		}},
		{"CountBeyondPayload", hugeCount, func(t *testing.T, err error) {
			var tr *shp.ErrTruncated
			require.ErrorAs(t, err, &tr)
		}},
		{"FirstPartNotZero", badStart, func(t *testing.T, err error) {
			var inv *geometry.ErrInvalidRecord
			require.ErrorAs(t, err, &inv)
		}},
		{"PartsNotAscending", descending, func(t *testing.T, err error) {
			var inv *geometry.ErrInvalidRecord
			require.ErrorAs(t, err, &inv)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := shp.Decode(tt.payload)
			require.Nil(t, rec)
			var ce *shp.CorruptRecordError
			require.ErrorAs(t, err, &ce)
			tt.check(t, err)
		})
	}
}

func TestCorruptAttachesNumber(t *testing.T) {
	_, err := shp.Decode(nil)
	err = shp.Corrupt(7, err)
	var ce *shp.CorruptRecordError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, 7, ce.Number)
	require.Contains(t, err.Error(), "corrupt record 7")

	require.NoError(t, shp.Corrupt(3, nil))
}

func BenchmarkDecode(b *testing.B) {
	rec := geometry.NewRecord(geometry.KindPolygonZ)
	for p := 0; p < 10; p++ {
		rec.AppendPart(withZM(square(float64(p), float64(p)), true, true)...)
	}
	payload := shptest.Payload(rec)

	b.Run("Eager", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := shp.Decode(payload); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("RandomAccess", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ra, err := shp.NewRandomAccess(payload)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := ra.Vertex(ra.NumPoints() - 1); err != nil {
				b.Fatal(err)
			}
		}
	})
}
