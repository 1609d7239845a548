package geomtext

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/beetlebugorg/shapefile/internal/geometry"
)

// ToGeom converts rec to a go-geom geometry. Polygon rings are grouped by
// containment: every outer ring opens a polygon and each hole joins the
// polygon of the innermost ring containing it, wherever it appears in the
// part list. Null Z and M values are written as the no-data sentinel.
func ToGeom(rec *geometry.Record) (geom.T, error) {
	kind := rec.Kind()
	layout := layoutFor(rec)
	flat := flatCoords(rec, layout)

	switch {
	case kind == geometry.KindNull:
		return nil, errors.Wrap(ErrUnsupportedGeometry, "null shape")
	case kind.IsPoint():
		if rec.VertexCount() == 0 {
			return geom.NewPointEmpty(layout), nil
		}
		return geom.NewPointFlat(layout, flat[:layout.Stride()]), nil
	case kind.IsMultiPoint():
		return geom.NewMultiPointFlat(layout, flat), nil
	case kind == geometry.KindMultiPatch:
		endss, err := patchEndss(rec, layout.Stride())
		if err != nil {
			return nil, err
		}
		return polygonal(layout, flat, endss), nil
	case kind.IsPolygonal():
		flat, endss := ringGroups(rec, flat, layout.Stride())
		return polygonal(layout, flat, endss), nil
	}

	ends := partEnds(rec, layout.Stride())
	if len(ends) == 1 {
		return geom.NewLineStringFlat(layout, flat), nil
	}
	return geom.NewMultiLineStringFlat(layout, flat, ends), nil
}

// FormatWKT renders rec as Well-Known Text.
func FormatWKT(rec *geometry.Record) (string, error) {
	g, err := ToGeom(rec)
	if err != nil {
		return "", err
	}
	return wkt.Marshal(g)
}

// FormatWKB renders rec as ISO Well-Known Binary in the given byte order.
func FormatWKB(rec *geometry.Record, order binary.ByteOrder) ([]byte, error) {
	g, err := ToGeom(rec)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, order)
}

func layoutFor(rec *geometry.Record) geom.Layout {
	kind := rec.Kind()
	switch {
	case kind.HasZ() && rec.MRange().Valid:
		return geom.XYZM
	case kind.HasZ():
		return geom.XYZ
	case kind.HasM():
		return geom.XYM
	}
	return geom.XY
}

func flatCoords(rec *geometry.Record, layout geom.Layout) []float64 {
	flat := make([]float64, 0, rec.VertexCount()*layout.Stride())
	for _, v := range rec.Vertices() {
		flat = append(flat, v.X, v.Y)
		if layout.ZIndex() >= 0 {
			flat = append(flat, v.Z.Stored())
		}
		if layout.MIndex() >= 0 {
			flat = append(flat, v.M.Stored())
		}
	}
	return flat
}

// partEnds returns the flat-coordinate end offset of every non-empty part.
func partEnds(rec *geometry.Record, stride int) []int {
	var ends []int
	for _, p := range rec.Parts() {
		if p.Empty() {
			continue
		}
		ends = append(ends, (p.End+1)*stride)
	}
	if len(ends) == 0 && rec.VertexCount() > 0 {
		ends = []int{rec.VertexCount() * stride}
	}
	return ends
}

// ringGroups reorders the flat coordinates of a polygonal record so each
// polygon's outer ring is followed by its own holes, and returns the
// reordered coordinates with their ring end offsets.
func ringGroups(rec *geometry.Record, flat []float64, stride int) ([]float64, [][]int) {
	parts := rec.Parts()
	owners := rec.HoleOwners()

	var groups [][]int
	groupOf := make(map[int]int, len(parts))
	for k, p := range parts {
		if p.Empty() || owners[k] >= 0 {
			continue
		}
		groupOf[k] = len(groups)
		groups = append(groups, []int{k})
	}
	for k, p := range parts {
		if p.Empty() || owners[k] < 0 {
			continue
		}
		g, ok := groupOf[owners[k]]
		if !ok {
			// owner is itself a hole of overlapping rings
			g = len(groups)
			groupOf[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], k)
	}

	out := make([]float64, 0, len(flat))
	endss := make([][]int, 0, len(groups))
	for _, g := range groups {
		ends := make([]int, 0, len(g))
		for _, k := range g {
			p := parts[k]
			out = append(out, flat[p.Begin*stride:(p.End+1)*stride]...)
			ends = append(ends, len(out))
		}
		endss = append(endss, ends)
	}
	if len(endss) == 0 && rec.VertexCount() > 0 {
		return flat, [][]int{{len(flat)}}
	}
	return out, endss
}

// patchEndss groups MultiPatch rings by part type. Triangle strips and fans
// have no polygon equivalent.
func patchEndss(rec *geometry.Record, stride int) ([][]int, error) {
	var endss [][]int
	for _, p := range rec.Parts() {
		if p.Empty() {
			continue
		}
		end := (p.End + 1) * stride
		switch p.Type {
		case geometry.PatchOuterRing, geometry.PatchFirstRing:
			endss = append(endss, []int{end})
		case geometry.PatchInnerRing, geometry.PatchRing:
			if len(endss) == 0 {
				endss = append(endss, []int{end})
				continue
			}
			endss[len(endss)-1] = append(endss[len(endss)-1], end)
		default:
			return nil, errors.Wrapf(ErrUnsupportedGeometry, "multipatch part type %v", p.Type)
		}
	}
	return endss, nil
}

func polygonal(layout geom.Layout, flat []float64, endss [][]int) geom.T {
	switch len(endss) {
	case 0:
		return geom.NewPolygon(layout)
	case 1:
		return geom.NewPolygonFlat(layout, flat, endss[0])
	}
	return geom.NewMultiPolygonFlat(layout, flat, endss)
}
