package geometry

import "sync"

// Part is an inclusive [Begin, End] range into the record's vertex sequence.
//
// A part opened with BeginPart holds no vertices until the next append; in
// that state End == Begin-1.
type Part struct {
	Begin int
	End   int
	Type  PatchType // PatchNone unless the record is a MultiPatch
}

// Len returns the number of vertices in the part.
func (p Part) Len() int { return p.End - p.Begin + 1 }

// Empty reports whether the part has no vertices yet.
func (p Part) Empty() bool { return p.End < p.Begin }

// Record holds the geometry of one shapefile feature: an ordered vertex
// sequence and ordered, non-overlapping parts over it.
//
// The bounding rectangle and the Z and M ranges are maintained on every
// insertion. Deleting or overwriting an extremal vertex does not shrink them;
// BoundsStale reports that case and RecomputeBounds rescans.
//
// A Record is not safe for concurrent mutation. Read-only methods, including
// the derived ring and hole attributes, may be called from many goroutines.
type Record struct {
	kind     Kind
	vertices []Vertex
	parts    []Part

	bounds Bounds
	zRange Range
	mRange Range
	stale  bool

	modified bool

	// derived attribute caches, dropped on every mutation
	mu     sync.Mutex
	rings  []ringCache
	holes  []bool
	owners []int
}

// NewRecord creates an empty record of the given kind.
func NewRecord(kind Kind) *Record {
	return &Record{kind: kind}
}

// Kind returns the shape kind.
func (r *Record) Kind() Kind { return r.kind }

// SetKind changes the shape kind. Existing vertices and parts are kept.
func (r *Record) SetKind(k Kind) {
	if r.kind != k {
		r.kind = k
		r.touch()
	}
}

// Grow preallocates room for n more vertices and parts more parts.
func (r *Record) Grow(n, parts int) {
	if need := len(r.vertices) + n; need > cap(r.vertices) {
		vs := make([]Vertex, len(r.vertices), need)
		copy(vs, r.vertices)
		r.vertices = vs
	}
	if need := len(r.parts) + parts; need > cap(r.parts) {
		ps := make([]Part, len(r.parts), need)
		copy(ps, r.parts)
		r.parts = ps
	}
}

// Clone returns a deep copy of r. Derived caches are not copied.
func (r *Record) Clone() *Record {
	c := &Record{
		kind:     r.kind,
		bounds:   r.bounds,
		zRange:   r.zRange,
		mRange:   r.mRange,
		stale:    r.stale,
		modified: r.modified,
	}
	c.vertices = append([]Vertex(nil), r.vertices...)
	c.parts = append([]Part(nil), r.parts...)
	return c
}

// VertexCount returns the number of vertices.
func (r *Record) VertexCount() int { return len(r.vertices) }

// Vertex returns vertex i.
func (r *Record) Vertex(i int) (Vertex, error) {
	if i < 0 || i >= len(r.vertices) {
		return Vertex{}, &IndexError{What: "vertex", Index: i, Len: len(r.vertices)}
	}
	return r.vertices[i], nil
}

// Vertices returns the vertex sequence. The slice is owned by the record.
func (r *Record) Vertices() []Vertex { return r.vertices }

// PartCount returns the number of parts.
func (r *Record) PartCount() int { return len(r.parts) }

// Part returns part i.
func (r *Record) Part(i int) (Part, error) {
	if i < 0 || i >= len(r.parts) {
		return Part{}, &IndexError{What: "part", Index: i, Len: len(r.parts)}
	}
	return r.parts[i], nil
}

// Parts returns the part list. The slice is owned by the record.
func (r *Record) Parts() []Part { return r.parts }

// PartOf returns the index of the part containing vertex i, or -1 if the
// record has no parts.
func (r *Record) PartOf(i int) (int, error) {
	if i < 0 || i >= len(r.vertices) {
		return -1, &IndexError{What: "vertex", Index: i, Len: len(r.vertices)}
	}
	lo, hi := 0, len(r.parts)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		p := r.parts[mid]
		switch {
		case i < p.Begin:
			hi = mid - 1
		case i > p.End:
			lo = mid + 1
		default:
			return mid, nil
		}
	}
	return -1, nil
}

// Bounds returns the maintained bounding rectangle. It is the zero value for
// an empty record.
func (r *Record) Bounds() Bounds { return r.bounds }

// ZRange returns the maintained elevation range.
func (r *Record) ZRange() Range { return r.zRange }

// MRange returns the maintained measure range.
func (r *Record) MRange() Range { return r.mRange }

// BoundsStale reports whether a deletion or overwrite removed a vertex lying
// on an extreme, so Bounds, ZRange and MRange may be looser than the data.
func (r *Record) BoundsStale() bool { return r.stale }

// RecomputeBounds rescans every vertex. Cost is O(n).
func (r *Record) RecomputeBounds() {
	r.bounds = Bounds{}
	r.zRange = Range{}
	r.mRange = Range{}
	for i, v := range r.vertices {
		if i == 0 {
			r.bounds = PointBounds(v.X, v.Y)
		} else {
			r.bounds = r.bounds.Extend(v.X, v.Y)
		}
		r.zRange = r.zRange.Extend(v.Z)
		r.mRange = r.mRange.Extend(v.M)
	}
	r.stale = false
}

// Modified reports whether the record changed since it was created or
// ClearModified was last called.
func (r *Record) Modified() bool { return r.modified }

// ClearModified resets the modified flag, typically after the caller has
// persisted the record.
func (r *Record) ClearModified() { r.modified = false }

// BeginPart starts a new part at the current insertion point. Vertices
// appended afterwards belong to it. Calling BeginPart twice without an
// append in between reuses the empty part.
func (r *Record) BeginPart() {
	r.BeginPatch(PatchNone)
}

// BeginPatch starts a new MultiPatch part of type t.
func (r *Record) BeginPatch(t PatchType) {
	n := len(r.vertices)
	if k := len(r.parts); k > 0 && r.parts[k-1].Empty() {
		r.parts[k-1].Type = t
		r.touch()
		return
	}
	if len(r.parts) == 0 && n > 0 {
		// vertices added before the first BeginPart form part 0
		r.parts = append(r.parts, Part{Begin: 0, End: n - 1})
	}
	r.parts = append(r.parts, Part{Begin: n, End: n - 1, Type: t})
	r.touch()
}

// AppendPart starts a new part and appends vs to it.
func (r *Record) AppendPart(vs ...Vertex) {
	r.BeginPart()
	for _, v := range vs {
		r.AppendVertex(v)
	}
}

// AppendVertex adds v at the end of the last part.
func (r *Record) AppendVertex(v Vertex) {
	v = v.Normalize()
	r.ensurePart()
	r.vertices = append(r.vertices, v)
	if k := len(r.parts); k > 0 {
		r.parts[k-1].End = len(r.vertices) - 1
	}
	r.include(v)
	r.touch()
}

// InsertVertex inserts v before vertex i, growing the part that contains i.
// Inserting at VertexCount appends.
func (r *Record) InsertVertex(i int, v Vertex) error {
	if i == len(r.vertices) {
		r.AppendVertex(v)
		return nil
	}
	if i < 0 || i > len(r.vertices) {
		return &IndexError{What: "vertex", Index: i, Len: len(r.vertices)}
	}
	v = v.Normalize()
	r.ensurePart()
	r.vertices = append(r.vertices, Vertex{})
	copy(r.vertices[i+1:], r.vertices[i:])
	r.vertices[i] = v
	for k := range r.parts {
		p := &r.parts[k]
		switch {
		case p.Begin > i:
			p.Begin++
			p.End++
		case p.End >= i:
			p.End++
		}
	}
	r.include(v)
	r.touch()
	return nil
}

// SetVertex overwrites vertex i.
func (r *Record) SetVertex(i int, v Vertex) error {
	if i < 0 || i >= len(r.vertices) {
		return &IndexError{What: "vertex", Index: i, Len: len(r.vertices)}
	}
	v = v.Normalize()
	r.exclude(r.vertices[i])
	r.vertices[i] = v
	r.include(v)
	r.touch()
	return nil
}

// DeleteVertex removes vertex i. A part left without vertices is removed,
// except a trailing part opened by BeginPart.
func (r *Record) DeleteVertex(i int) error {
	if i < 0 || i >= len(r.vertices) {
		return &IndexError{What: "vertex", Index: i, Len: len(r.vertices)}
	}
	old := r.vertices[i]
	r.vertices = append(r.vertices[:i], r.vertices[i+1:]...)

	kept := r.parts[:0]
	for k, p := range r.parts {
		switch {
		case p.Begin > i:
			p.Begin--
			p.End--
		case p.End >= i:
			p.End--
			if p.Empty() && k != len(r.parts)-1 {
				continue
			}
		}
		kept = append(kept, p)
	}
	r.parts = kept

	r.exclude(old)
	r.touch()
	return nil
}

// DeletePart removes part i and its vertices.
func (r *Record) DeletePart(i int) error {
	if i < 0 || i >= len(r.parts) {
		return &IndexError{What: "part", Index: i, Len: len(r.parts)}
	}
	p := r.parts[i]
	n := p.Len()
	for _, v := range r.vertices[p.Begin : p.End+1] {
		r.exclude(v)
	}
	r.vertices = append(r.vertices[:p.Begin], r.vertices[p.End+1:]...)
	r.parts = append(r.parts[:i], r.parts[i+1:]...)
	for k := i; k < len(r.parts); k++ {
		r.parts[k].Begin -= n
		r.parts[k].End -= n
	}
	if len(r.vertices) == 0 {
		r.RecomputeBounds()
	}
	r.touch()
	return nil
}

// Reset drops every vertex and part and keeps the kind.
func (r *Record) Reset() {
	r.vertices = r.vertices[:0]
	r.parts = r.parts[:0]
	r.RecomputeBounds()
	r.touch()
}

// ensurePart opens part 0 over any existing vertices when the kind requires
// parts and none exists yet.
func (r *Record) ensurePart() {
	if len(r.parts) == 0 && r.kind.HasParts() {
		r.parts = append(r.parts, Part{Begin: 0, End: len(r.vertices) - 1})
	}
}

func (r *Record) include(v Vertex) {
	if len(r.vertices) == 1 && !r.stale {
		r.bounds = PointBounds(v.X, v.Y)
		r.zRange = Range{}.Extend(v.Z)
		r.mRange = Range{}.Extend(v.M)
		return
	}
	r.bounds = r.bounds.Extend(v.X, v.Y)
	r.zRange = r.zRange.Extend(v.Z)
	r.mRange = r.mRange.Extend(v.M)
}

func (r *Record) exclude(v Vertex) {
	if len(r.vertices) == 0 {
		r.RecomputeBounds()
		return
	}
	if r.bounds.onEdge(v.X, v.Y) || r.zRange.onEdge(v.Z) || r.mRange.onEdge(v.M) {
		r.stale = true
	}
}

func (r *Record) touch() {
	r.modified = true
	r.mu.Lock()
	r.rings = nil
	r.holes = nil
	r.owners = nil
	r.mu.Unlock()
}
