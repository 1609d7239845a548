package shp

import (
	"encoding/binary"
	"math"

	"go.uber.org/zap"

	"github.com/beetlebugorg/shapefile/internal/geometry"
	"github.com/beetlebugorg/shapefile/internal/logger"
)

// Header is the fixed part of a record payload that is cheap to read before
// deciding how to decode the rest.
type Header struct {
	Kind   geometry.Kind
	Box    geometry.Bounds // zero for Null and Point kinds
	Layout Layout
}

// ReadHeader parses the shape type and the part/point counts and checks that
// the payload holds every mandatory field they imply.
func ReadHeader(payload []byte) (Header, error) {
	if len(payload) == 0 {
		return Header{}, ErrEmptyPayload
	}
	if len(payload) < sizeInt {
		return Header{}, &ErrTruncated{Need: sizeInt, Have: len(payload)}
	}
	kind := geometry.Kind(int32(binary.LittleEndian.Uint32(payload[offsetKind:])))
	if !kind.Valid() {
		return Header{}, &ErrUnknownKind{Code: int32(kind)}
	}

	h := Header{Kind: kind, Layout: NewLayout(kind, 0, 0)}
	switch {
	case kind == geometry.KindNull, kind.IsPoint():
	case kind.IsMultiPoint():
		if len(payload) < headerMultiPoint {
			return Header{}, &ErrTruncated{Kind: kind, Need: headerMultiPoint, Have: len(payload)}
		}
		h.Box = readBox(payload)
		n, err := readCount(payload, offsetNumMulti, kind)
		if err != nil {
			return Header{}, err
		}
		h.Layout = NewLayout(kind, 0, n)
	default:
		if len(payload) < headerPoly {
			return Header{}, &ErrTruncated{Kind: kind, Need: headerPoly, Have: len(payload)}
		}
		h.Box = readBox(payload)
		p, err := readCount(payload, offsetNumParts, kind)
		if err != nil {
			return Header{}, err
		}
		n, err := readCount(payload, offsetNumPts, kind)
		if err != nil {
			return Header{}, err
		}
		h.Layout = NewLayout(kind, p, n)
	}

	// Counts are bounded by the payload before any allocation is sized by them.
	if need := h.Layout.MinLength(); need > len(payload) || need < 0 {
		return Header{}, &ErrTruncated{Kind: kind, Need: need, Have: len(payload)}
	}
	return h, nil
}

// Decode reads a whole record payload into a new Record.
func Decode(payload []byte) (*geometry.Record, error) {
	h, err := ReadHeader(payload)
	if err != nil {
		return nil, &CorruptRecordError{Err: err}
	}
	rec := geometry.NewRecord(h.Kind)
	if err := decodeInto(rec, payload, h); err != nil {
		return nil, &CorruptRecordError{Err: err}
	}
	rec.ClearModified()
	return rec, nil
}

func decodeInto(rec *geometry.Record, payload []byte, h Header) error {
	l := h.Layout
	if l.NumPoints == 0 {
		return nil
	}

	var starts []int
	var types []geometry.PatchType
	if l.NumParts > 0 {
		starts = make([]int, l.NumParts)
		base := l.PartIndexOffset()
		for k := range starts {
			starts[k] = int(int32(binary.LittleEndian.Uint32(payload[base+sizeInt*k:])))
			if err := checkPartStart(h.Kind, k, starts, l.NumPoints); err != nil {
				return err
			}
		}
		if off := l.PartTypeOffset(); off >= 0 {
			types = make([]geometry.PatchType, l.NumParts)
			for k := range types {
				types[k] = geometry.PatchTypeFromCode(int32(binary.LittleEndian.Uint32(payload[off+sizeInt*k:])))
			}
		}
	}

	rec.Grow(l.NumPoints, l.NumParts)
	part := 0
	for i := 0; i < l.NumPoints; i++ {
		if part < len(starts) && starts[part] == i {
			if types != nil {
				rec.BeginPatch(types[part])
			} else {
				rec.BeginPart()
			}
			part++
		}
		rec.AppendVertex(vertexAt(payload, l, i))
	}
	return nil
}

func checkPartStart(kind geometry.Kind, k int, starts []int, numPoints int) error {
	s := starts[k]
	switch {
	case k == 0 && s != 0:
		return &geometry.ErrInvalidRecord{Kind: kind, Reason: "first part does not start at point 0"}
	case s < 0 || s >= numPoints:
		return &geometry.ErrInvalidRecord{Kind: kind, Reason: "part start outside point array"}
	case k > 0 && s <= starts[k-1]:
		return &geometry.ErrInvalidRecord{Kind: kind, Reason: "part starts not strictly ascending"}
	}
	return nil
}

// vertexAt reads vertex i. The XY array must be present; Z and M are read
// only when the payload is long enough to hold them.
func vertexAt(payload []byte, l Layout, i int) geometry.Vertex {
	off := l.PointOffset(i)
	v := geometry.Vertex{
		X: readFloat(payload, off),
		Y: readFloat(payload, off+sizeDouble),
	}
	v.Z = optionalFloat(payload, l.ZOffset(i))
	v.M = optionalFloat(payload, l.MOffset(i))
	return v
}

// optionalFloat reads a Z or M value at off. A negative offset (kind has no
// such block) or a payload that ends before the value yields null.
func optionalFloat(payload []byte, off int) geometry.NullFloat {
	if off < 0 {
		return geometry.NullFloat{}
	}
	if off+sizeDouble > len(payload) {
		if ce := logger.L().Check(zap.DebugLevel, "optional block absent"); ce != nil {
			ce.Write(zap.Int("offset", off), zap.Int("length", len(payload)))
		}
		return geometry.NullFloat{}
	}
	return geometry.FromStored(readFloat(payload, off))
}

func readFloat(b []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b[off:]))
}

func readBox(b []byte) geometry.Bounds {
	return geometry.Bounds{
		MinX: readFloat(b, offsetBox),
		MinY: readFloat(b, offsetBox+8),
		MaxX: readFloat(b, offsetBox+16),
		MaxY: readFloat(b, offsetBox+24),
	}
}

func readCount(b []byte, off int, kind geometry.Kind) (int, error) {
	n := int32(binary.LittleEndian.Uint32(b[off:]))
	if n < 0 || int(n) > len(b) {
		return 0, &geometry.ErrInvalidRecord{Kind: kind, Reason: "count out of range"}
	}
	return int(n), nil
}
