package geometry

import "math"

// NoDataThreshold is the largest stored Z or M value that still means
// "no value". Anything at or below it decodes as null.
const NoDataThreshold = -1e38

// NoData is the sentinel written back for a null Z or M value.
const NoData = -1e39

// NullFloat is an optional ordinate (elevation or measure).
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a valid NullFloat holding v.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// FromStored converts an on-disk value, mapping the no-data sentinel (and
// NaN) to null.
func FromStored(v float64) NullFloat {
	if v <= NoDataThreshold || math.IsNaN(v) {
		return NullFloat{}
	}
	return NullFloat{Value: v, Valid: true}
}

// Stored returns the on-disk representation, restoring the sentinel for null.
func (n NullFloat) Stored() float64 {
	if !n.Valid {
		return NoData
	}
	return n.Value
}

// Vertex is a single coordinate of a record.
type Vertex struct {
	X, Y float64
	Z, M NullFloat
}

// XY returns a 2D vertex.
func XY(x, y float64) Vertex {
	return Vertex{X: x, Y: y}
}

// XYZ returns a vertex with elevation.
func XYZ(x, y, z float64) Vertex {
	return Vertex{X: x, Y: y, Z: Float(z)}
}

// XYM returns a vertex with a measure.
func XYM(x, y, m float64) Vertex {
	return Vertex{X: x, Y: y, M: Float(m)}
}

// XYZM returns a vertex with elevation and measure.
func XYZM(x, y, z, m float64) Vertex {
	return Vertex{X: x, Y: y, Z: Float(z), M: Float(m)}
}

// Normalize re-applies the null sentinel rule to Z and M, so a value set to
// NoData through the Valid path still reads back as null.
func (v Vertex) Normalize() Vertex {
	if v.Z.Valid {
		v.Z = FromStored(v.Z.Value)
	}
	if v.M.Valid {
		v.M = FromStored(v.M.Value)
	}
	return v
}

func distance(a, b Vertex) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
