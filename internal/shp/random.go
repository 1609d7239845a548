package shp

import (
	"encoding/binary"

	"github.com/beetlebugorg/shapefile/internal/geometry"
)

// RandomAccess reads single vertices and parts straight from a payload
// without materializing the record. The payload must not change while the
// RandomAccess is in use.
type RandomAccess struct {
	payload []byte
	header  Header
}

// NewRandomAccess reads the fixed header of payload.
func NewRandomAccess(payload []byte) (*RandomAccess, error) {
	h, err := ReadHeader(payload)
	if err != nil {
		return nil, &CorruptRecordError{Err: err}
	}
	return &RandomAccess{payload: payload, header: h}, nil
}

// Kind returns the shape kind.
func (ra *RandomAccess) Kind() geometry.Kind { return ra.header.Kind }

// Box returns the bounding box stored in the record header.
func (ra *RandomAccess) Box() geometry.Bounds { return ra.header.Box }

// Layout returns the offset table for this payload.
func (ra *RandomAccess) Layout() Layout { return ra.header.Layout }

// NumPoints returns the total vertex count.
func (ra *RandomAccess) NumPoints() int { return ra.header.Layout.NumPoints }

// NumParts returns the total part count.
func (ra *RandomAccess) NumParts() int { return ra.header.Layout.NumParts }

// HasZ reports whether this payload actually carries the Z block.
func (ra *RandomAccess) HasZ() bool {
	l := ra.header.Layout
	return l.NumPoints > 0 && l.ZOffset(l.NumPoints-1) >= 0 &&
		l.ZOffset(l.NumPoints-1)+sizeDouble <= len(ra.payload)
}

// HasM reports whether this payload actually carries the M block.
func (ra *RandomAccess) HasM() bool {
	l := ra.header.Layout
	return l.NumPoints > 0 && l.MOffset(l.NumPoints-1) >= 0 &&
		l.MOffset(l.NumPoints-1)+sizeDouble <= len(ra.payload)
}

// Vertex returns vertex i.
func (ra *RandomAccess) Vertex(i int) (geometry.Vertex, error) {
	l := ra.header.Layout
	if i < 0 || i >= l.NumPoints {
		return geometry.Vertex{}, &geometry.IndexError{What: "vertex", Index: i, Len: l.NumPoints}
	}
	return vertexAt(ra.payload, l, i), nil
}

// Z returns the elevation of vertex i, null when absent.
func (ra *RandomAccess) Z(i int) (geometry.NullFloat, error) {
	l := ra.header.Layout
	if i < 0 || i >= l.NumPoints {
		return geometry.NullFloat{}, &geometry.IndexError{What: "vertex", Index: i, Len: l.NumPoints}
	}
	return optionalFloat(ra.payload, l.ZOffset(i)), nil
}

// M returns the measure of vertex i, null when absent.
func (ra *RandomAccess) M(i int) (geometry.NullFloat, error) {
	l := ra.header.Layout
	if i < 0 || i >= l.NumPoints {
		return geometry.NullFloat{}, &geometry.IndexError{What: "vertex", Index: i, Len: l.NumPoints}
	}
	return optionalFloat(ra.payload, l.MOffset(i)), nil
}

// PartRange returns the inclusive vertex range of part k.
func (ra *RandomAccess) PartRange(k int) (begin, end int, err error) {
	l := ra.header.Layout
	if k < 0 || k >= l.NumParts {
		return 0, 0, &geometry.IndexError{What: "part", Index: k, Len: l.NumParts}
	}
	begin = ra.partStart(k)
	end = l.NumPoints - 1
	if k+1 < l.NumParts {
		end = ra.partStart(k+1) - 1
	}
	if begin < 0 || begin > end || end >= l.NumPoints {
		return 0, 0, &CorruptRecordError{
			Err: &geometry.ErrInvalidRecord{Kind: l.Kind, Reason: "part range outside point array"},
		}
	}
	return begin, end, nil
}

// PartType returns the MultiPatch type of part k, PatchNone for other kinds.
func (ra *RandomAccess) PartType(k int) (geometry.PatchType, error) {
	l := ra.header.Layout
	if k < 0 || k >= l.NumParts {
		return geometry.PatchNone, &geometry.IndexError{What: "part", Index: k, Len: l.NumParts}
	}
	off := l.PartTypeOffset()
	if off < 0 {
		return geometry.PatchNone, nil
	}
	return geometry.PatchTypeFromCode(int32(binary.LittleEndian.Uint32(ra.payload[off+sizeInt*k:]))), nil
}

func (ra *RandomAccess) partStart(k int) int {
	off := ra.header.Layout.PartIndexOffset() + sizeInt*k
	return int(int32(binary.LittleEndian.Uint32(ra.payload[off:])))
}
