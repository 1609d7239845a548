package geometry

import "fmt"

// Validate checks the part table against the record model rules: parts in
// ascending order, the first starting at vertex 0, each following directly
// on the previous one and the last ending at the final vertex. It does not
// check topology (self-intersection, ring closure).
func (r *Record) Validate() error {
	if len(r.parts) == 0 {
		if r.kind.IsPoint() && len(r.vertices) > 1 {
			return &ErrInvalidRecord{
				Kind:   r.kind,
				Reason: fmt.Sprintf("point record holds %d vertices", len(r.vertices)),
			}
		}
		return nil
	}

	if r.parts[0].Begin != 0 {
		return &ErrInvalidRecord{Kind: r.kind, Reason: "first part does not start at vertex 0"}
	}
	for i, p := range r.parts {
		last := i == len(r.parts)-1
		if p.Empty() && !last {
			return &ErrInvalidRecord{
				Kind:   r.kind,
				Reason: fmt.Sprintf("part %d is empty", i),
			}
		}
		if i > 0 && p.Begin != r.parts[i-1].End+1 {
			return &ErrInvalidRecord{
				Kind:   r.kind,
				Reason: fmt.Sprintf("part %d starts at %d, expected %d", i, p.Begin, r.parts[i-1].End+1),
			}
		}
		if last && p.End != len(r.vertices)-1 {
			return &ErrInvalidRecord{
				Kind:   r.kind,
				Reason: fmt.Sprintf("last part ends at %d of %d vertices", p.End, len(r.vertices)),
			}
		}
		if r.kind == KindMultiPatch && p.Type == PatchNone {
			return &ErrInvalidRecord{
				Kind:   r.kind,
				Reason: fmt.Sprintf("multipatch part %d has no patch type", i),
			}
		}
	}
	return nil
}
