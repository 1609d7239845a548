package geometry

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// minExtent pads degenerate (zero width or height) rectangles, which
// rtreego rejects.
const minExtent = 1e-12

// partEntry is a part's bounding rectangle stored in the R-tree.
type partEntry struct {
	index  int
	bounds Bounds
}

// Bounds method for rtreego.Spatial interface.
func (e *partEntry) Bounds() rtreego.Rect {
	return toRect(e.bounds)
}

func toRect(b Bounds) rtreego.Rect {
	point := rtreego.Point{b.MinX, b.MinY}
	lengths := []float64{
		math.Max(b.Width(), minExtent),
		math.Max(b.Height(), minExtent),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// ClassifyHoles returns one flag per part, true for parts that are holes.
//
// The single largest part is never a hole. Any other part P is tested
// against each part Q whose bounding rectangle contains P's: a horizontal ray
// cast from the center of P's rectangle towards +X must cross Q's ring an odd
// number of times. P is a hole when the number of rings containing it is
// odd, so an island inside a hole counts as outer again.
//
// Candidate pairs come from an R-tree over part rectangles, so only parts
// with overlapping rectangles are ever ray-tested.
func (r *Record) ClassifyHoles() []bool {
	flags, _ := r.holeFlags()
	out := make([]bool, len(flags))
	copy(out, flags)
	return out
}

// HoleOwners returns one index per part: for a hole, the innermost ring that
// contains it; -1 for every other part. Holes are attributed by containment,
// not by their position in the part list.
func (r *Record) HoleOwners() []int {
	_, owners := r.holeFlags()
	out := make([]int, len(owners))
	copy(out, owners)
	return out
}

func (r *Record) holeFlags() ([]bool, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.holes == nil || len(r.holes) != len(r.parts) {
		r.holes, r.owners = r.computeHolesLocked()
	}
	return r.holes, r.owners
}

// computeHolesLocked classifies every part. r.mu must be held.
func (r *Record) computeHolesLocked() ([]bool, []int) {
	n := len(r.parts)
	holes := make([]bool, n)
	owners := make([]int, n)
	for i := range owners {
		owners[i] = -1
	}
	if n < 2 || !r.kind.IsPolygonal() {
		return holes, owners
	}

	rings := make([]*ringCache, n)
	largest := -1
	var largestArea float64
	tree := rtreego.NewTree(2, 2, 8)
	for i, p := range r.parts {
		rings[i] = r.ringLocked(i)
		if p.Len() < 3 {
			continue
		}
		if a := math.Abs(rings[i].area); largest < 0 || a > largestArea {
			largest, largestArea = i, a
		}
		tree.Insert(&partEntry{index: i, bounds: rings[i].bounds})
	}

	for p, part := range r.parts {
		if p == largest || part.Len() < 3 {
			continue
		}
		pb := rings[p].bounds
		px, py := pb.Center()

		candidates := tree.SearchIntersect(toRect(pb))
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].(*partEntry).index < candidates[j].(*partEntry).index
		})

		depth, owner := 0, -1
		for _, c := range candidates {
			q := c.(*partEntry)
			if q.index == p || !q.bounds.ContainsBounds(pb) {
				continue
			}
			qp := r.parts[q.index]
			if !pointInRing(px, py, r.vertices[qp.Begin:qp.End+1]) {
				continue
			}
			depth++
			if owner < 0 || math.Abs(rings[q.index].area) < math.Abs(rings[owner].area) {
				owner = q.index
			}
		}
		if depth%2 == 1 {
			holes[p] = true
			owners[p] = owner
		}
	}
	return holes, owners
}

// pointInRing applies the even-odd rule with a ray towards +X. An edge is
// counted when its endpoints lie on opposite sides of the ray, with the
// upper endpoint exclusive, so a ray through a vertex is counted once.
func pointInRing(px, py float64, vs []Vertex) bool {
	inside := false
	n := len(vs)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := vs[i], vs[j]
		if (a.Y > py) != (b.Y > py) {
			x := a.X + (py-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if px < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Contains reports whether (x, y) lies inside ring i by the even-odd rule.
func (r *Record) Contains(i int, x, y float64) (bool, error) {
	g, err := r.Ring(i)
	if err != nil {
		return false, err
	}
	if !g.Bounds().Contains(x, y) {
		return false, nil
	}
	return pointInRing(x, y, g.Vertices()), nil
}
