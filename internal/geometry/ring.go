package geometry

// Direction is the winding order of a ring.
type Direction int8

const (
	// DirectionUnknown is reported for parts with fewer than 3 vertices.
	DirectionUnknown Direction = iota
	Clockwise
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	}
	return "Unknown"
}

// ringCache holds the derived attributes of one part.
type ringCache struct {
	done      bool
	area      float64 // signed, positive when clockwise
	cx, cy    float64
	perimeter float64
	bounds    Bounds
	zRange    Range
	mRange    Range
}

// Ring is a read-only view of one part with its derived attributes. A Ring
// is valid until the next mutation of its record.
type Ring struct {
	rec   *Record
	index int
	part  Part
}

// Ring returns the view of part i.
func (r *Record) Ring(i int) (Ring, error) {
	p, err := r.Part(i)
	if err != nil {
		return Ring{}, err
	}
	return Ring{rec: r, index: i, part: p}, nil
}

// Index returns the part index.
func (g Ring) Index() int { return g.index }

// Part returns the underlying vertex range.
func (g Ring) Part() Part { return g.part }

// Vertices returns the part's vertices. The slice aliases the record.
func (g Ring) Vertices() []Vertex {
	if g.part.Empty() {
		return nil
	}
	return g.rec.vertices[g.part.Begin : g.part.End+1]
}

// SignedArea returns the shoelace area of the ring, closed from the last
// vertex back to the first. It is positive for clockwise rings (outer
// boundaries) and negative for counter-clockwise ones (hole candidates).
func (g Ring) SignedArea() float64 { return g.derived().area }

// Area returns the absolute ring area.
func (g Ring) Area() float64 {
	a := g.SignedArea()
	if a < 0 {
		return -a
	}
	return a
}

// Direction returns the winding order, or DirectionUnknown for a part with
// fewer than 3 vertices.
func (g Ring) Direction() Direction {
	if g.part.Len() < 3 {
		return DirectionUnknown
	}
	if g.SignedArea() > 0 {
		return Clockwise
	}
	return CounterClockwise
}

// Centroid returns the area centroid, or the vertex mean for a ring whose
// signed area is zero.
func (g Ring) Centroid() (x, y float64) {
	d := g.derived()
	return d.cx, d.cy
}

// Perimeter returns the length of the part. Rings of polygonal records are
// closed back to the first vertex; line parts are not.
func (g Ring) Perimeter() float64 { return g.derived().perimeter }

// Bounds returns the part's own bounding rectangle.
func (g Ring) Bounds() Bounds { return g.derived().bounds }

// ZRange returns the part's own elevation range.
func (g Ring) ZRange() Range { return g.derived().zRange }

// MRange returns the part's own measure range.
func (g Ring) MRange() Range { return g.derived().mRange }

// PatchType returns the MultiPatch classification of the part.
func (g Ring) PatchType() PatchType { return g.part.Type }

// IsHole reports whether the ring lies inside another ring of the record.
func (g Ring) IsHole() bool {
	flags, _ := g.rec.holeFlags()
	return flags[g.index]
}

func (g Ring) derived() ringCache {
	g.rec.mu.Lock()
	defer g.rec.mu.Unlock()
	return *g.rec.ringLocked(g.index)
}

// ringLocked returns the filled cache entry of part i. r.mu must be held.
func (r *Record) ringLocked(i int) *ringCache {
	if r.rings == nil {
		r.rings = make([]ringCache, len(r.parts))
	}
	c := &r.rings[i]
	if !c.done {
		p := r.parts[i]
		var vs []Vertex
		if !p.Empty() {
			vs = r.vertices[p.Begin : p.End+1]
		}
		*c = computeRing(vs, r.kind.IsPolygonal())
	}
	return c
}

func computeRing(vs []Vertex, closed bool) ringCache {
	c := ringCache{done: true}
	n := len(vs)
	if n == 0 {
		return c
	}

	c.bounds = PointBounds(vs[0].X, vs[0].Y)
	var sumX, sumY, cross, wx, wy float64
	for i, v := range vs {
		c.bounds = c.bounds.Extend(v.X, v.Y)
		c.zRange = c.zRange.Extend(v.Z)
		c.mRange = c.mRange.Extend(v.M)
		sumX += v.X
		sumY += v.Y

		next := vs[(i+1)%n]
		// clockwise-positive cross term
		t := next.X*v.Y - v.X*next.Y
		cross += t
		wx += (v.X + next.X) * t
		wy += (v.Y + next.Y) * t

		if i+1 < n {
			c.perimeter += distance(v, next)
		}
	}
	if closed && n > 1 {
		c.perimeter += distance(vs[n-1], vs[0])
	}

	c.area = cross / 2
	if n >= 3 && c.area != 0 {
		c.cx = wx / (6 * c.area)
		c.cy = wy / (6 * c.area)
	} else {
		c.cx = sumX / float64(n)
		c.cy = sumY / float64(n)
	}
	return c
}

// Area returns the polygon area of the record: outer rings minus holes.
// Non-polygonal records have zero area.
func (r *Record) Area() float64 {
	if !r.kind.IsPolygonal() {
		return 0
	}
	var total float64
	for i := range r.parts {
		g := Ring{rec: r, index: i, part: r.parts[i]}
		if r.kind == KindMultiPatch && !g.part.Type.IsRing() {
			continue
		}
		if g.IsHole() {
			total -= g.Area()
		} else {
			total += g.Area()
		}
	}
	return total
}

// Perimeter returns the summed length of every part.
func (r *Record) Perimeter() float64 {
	var total float64
	for i := range r.parts {
		total += Ring{rec: r, index: i, part: r.parts[i]}.Perimeter()
	}
	if len(r.parts) == 0 && len(r.vertices) > 1 {
		total = computeRing(r.vertices, false).perimeter
	}
	return total
}

// Centroid returns the area-weighted centroid of a polygonal record, holes
// counting negatively. Other records, and polygons of zero area, fall back
// to the vertex mean.
func (r *Record) Centroid() (x, y float64) {
	if len(r.vertices) == 0 {
		return 0, 0
	}
	if r.kind.IsPolygonal() {
		var sw, sx, sy float64
		for i := range r.parts {
			g := Ring{rec: r, index: i, part: r.parts[i]}
			w := g.Area()
			if g.IsHole() {
				w = -w
			}
			cx, cy := g.Centroid()
			sw += w
			sx += w * cx
			sy += w * cy
		}
		if sw != 0 {
			return sx / sw, sy / sw
		}
	}
	var mx, my float64
	for _, v := range r.vertices {
		mx += v.X
		my += v.Y
	}
	n := float64(len(r.vertices))
	return mx / n, my / n
}
