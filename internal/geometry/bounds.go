package geometry

// Bounds is an axis-aligned minimum bounding rectangle.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// PointBounds returns the degenerate rectangle around a single point.
func PointBounds(x, y float64) Bounds {
	return Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
}

// Extend returns b grown to include (x, y).
func (b Bounds) Extend(x, y float64) Bounds {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
	return b
}

// Contains checks if a point is within bounds (edges included).
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// ContainsBounds reports whether other lies entirely inside b.
func (b Bounds) ContainsBounds(other Bounds) bool {
	return other.MinX >= b.MinX && other.MaxX <= b.MaxX &&
		other.MinY >= b.MinY && other.MaxY <= b.MaxY
}

// Intersects checks if two bounding boxes intersect.
func (b Bounds) Intersects(other Bounds) bool {
	return !(b.MaxX < other.MinX || b.MinX > other.MaxX ||
		b.MaxY < other.MinY || b.MinY > other.MaxY)
}

// Union returns the smallest rectangle containing both.
func (b Bounds) Union(other Bounds) Bounds {
	return b.Extend(other.MinX, other.MinY).Extend(other.MaxX, other.MaxY)
}

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() (x, y float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// onEdge reports whether (x, y) touches one of the extremes, meaning that
// removing it may loosen the rectangle.
func (b Bounds) onEdge(x, y float64) bool {
	return x == b.MinX || x == b.MaxX || y == b.MinY || y == b.MaxY
}

// Range is an optional min/max interval of Z or M values.
type Range struct {
	Min, Max float64
	Valid    bool
}

// Extend returns r grown to include v. Null values are ignored.
func (r Range) Extend(v NullFloat) Range {
	if !v.Valid {
		return r
	}
	if !r.Valid {
		return Range{Min: v.Value, Max: v.Value, Valid: true}
	}
	if v.Value < r.Min {
		r.Min = v.Value
	}
	if v.Value > r.Max {
		r.Max = v.Value
	}
	return r
}

func (r Range) onEdge(v NullFloat) bool {
	return r.Valid && v.Valid && (v.Value == r.Min || v.Value == r.Max)
}
