package geomtext

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/beetlebugorg/shapefile/internal/geometry"
	"github.com/beetlebugorg/shapefile/internal/logger"
)

// WKB geometry type codes, ISO numbering. The thousands band carries the
// dimensionality; EWKB producers set the high bits instead.
const (
	wkbPoint           = 1
	wkbLineString      = 2
	wkbPolygon         = 3
	wkbMultiPoint      = 4
	wkbMultiLineString = 5
	wkbMultiPolygon    = 6

	wkbBandZ  = 1
	wkbBandM  = 2
	wkbBandZM = 3

	ewkbZ    = 0x80000000
	ewkbM    = 0x40000000
	ewkbSRID = 0x20000000
	ewkbMask = 0x0fffffff

	wkbLittleEndian = 1
	maxWKBDepth     = 8
)

// wkbType is a decoded geometry type code.
type wkbType struct {
	base uint32
	dims dims
	srid bool
}

func decodeWKBType(code uint32) wkbType {
	hasZ := code&ewkbZ != 0
	hasM := code&ewkbM != 0
	srid := code&ewkbSRID != 0
	code &= ewkbMask
	switch code / 1000 {
	case wkbBandZ:
		hasZ = true
	case wkbBandM:
		hasM = true
	case wkbBandZM:
		hasZ, hasM = true, true
	}
	t := wkbType{base: code % 1000, srid: srid, dims: dimsXY}
	switch {
	case hasZ && hasM:
		t.dims = dimsZM
	case hasZ:
		t.dims = dimsZ
	case hasM:
		t.dims = dimsM
	}
	return t
}

func (t wkbType) kind() (geometry.Kind, bool) {
	var base geometry.Kind
	switch t.base {
	case wkbPoint:
		base = geometry.KindPoint
	case wkbMultiPoint:
		base = geometry.KindMultiPoint
	case wkbLineString, wkbMultiLineString:
		base = geometry.KindPolyLine
	case wkbPolygon, wkbMultiPolygon:
		base = geometry.KindPolygon
	default:
		return geometry.KindNull, false
	}
	return geometry.KindFor(base, t.dims.hasZ(), t.dims.hasM()), true
}

// ParseWKB imports data into a new record whose kind is inferred from the
// outermost type code. An unsupported outermost code is an error here, since
// there is no kind to give the record.
func ParseWKB(data []byte) (*geometry.Record, error) {
	r := &wkbReader{data: data}
	order, err := r.byteOrder()
	if err != nil {
		return nil, err
	}
	code, err := r.readUint32(order)
	if err != nil {
		return nil, err
	}
	t := decodeWKBType(code)
	kind, ok := t.kind()
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedGeometry, "wkb type code %d", code)
	}
	rec := geometry.NewRecord(kind)
	if err := AppendWKB(rec, data); err != nil {
		return nil, err
	}
	return rec, nil
}

// AppendWKB imports data into rec. Each linestring and ring starts a new
// part. Geometry types other than points, linestrings, polygons and their
// multi forms are skipped along with anything that follows them, since their
// length is unknown.
func AppendWKB(rec *geometry.Record, data []byte) error {
	r := &wkbReader{data: data}
	_, err := r.readGeometry(rec, 0)
	return err
}

type wkbReader struct {
	data []byte
	pos  int
}

// readGeometry reads one geometry. It returns false when it met an unsupported
// type and stopped.
func (r *wkbReader) readGeometry(rec *geometry.Record, depth int) (bool, error) {
	start := r.pos
	order, err := r.byteOrder()
	if err != nil {
		return false, err
	}
	code, err := r.readUint32(order)
	if err != nil {
		return false, err
	}
	t := decodeWKBType(code)
	if t.srid {
		if _, err := r.readUint32(order); err != nil {
			return false, err
		}
	}

	switch t.base {
	case wkbPoint:
		v, err := r.vertex(order, t.dims)
		if err != nil {
			return false, err
		}
		if !math.IsNaN(v.X) || !math.IsNaN(v.Y) {
			rec.AppendVertex(v)
		}
	case wkbLineString:
		if err := r.part(rec, order, t.dims); err != nil {
			return false, err
		}
	case wkbPolygon:
		rings, err := r.count(order, 4)
		if err != nil {
			return false, err
		}
		for i := 0; i < rings; i++ {
			if err := r.part(rec, order, t.dims); err != nil {
				return false, err
			}
		}
	case wkbMultiPoint, wkbMultiLineString, wkbMultiPolygon:
		if depth >= maxWKBDepth {
			return false, errors.Errorf("wkb: nesting deeper than %d at offset %d", maxWKBDepth, start)
		}
		n, err := r.count(order, 1+4)
		if err != nil {
			return false, err
		}
		for i := 0; i < n; i++ {
			ok, err := r.readGeometry(rec, depth+1)
			if err != nil || !ok {
				return ok, err
			}
		}
	default:
		logger.L().Debug("skipping unsupported wkb geometry",
			zap.Uint32("code", code),
			zap.Int("offset", start))
		return false, nil
	}
	return true, nil
}

// part reads a point count and the points of one linestring or ring.
func (r *wkbReader) part(rec *geometry.Record, order binary.ByteOrder, d dims) error {
	n, err := r.count(order, 8*d.width())
	if err != nil {
		return err
	}
	rec.BeginPart()
	for i := 0; i < n; i++ {
		v, err := r.vertex(order, d)
		if err != nil {
			return err
		}
		rec.AppendVertex(v)
	}
	return nil
}

func (r *wkbReader) vertex(order binary.ByteOrder, d dims) (geometry.Vertex, error) {
	var t [4]float64
	for i := 0; i < d.width(); i++ {
		f, err := r.readFloat64(order)
		if err != nil {
			return geometry.Vertex{}, err
		}
		t[i] = f
	}
	return d.vertex(t[:d.width()]), nil
}

func (r *wkbReader) byteOrder() (binary.ByteOrder, error) {
	if r.pos >= len(r.data) {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "wkb: byte order at offset %d", r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	if b == wkbLittleEndian {
		return binary.LittleEndian, nil
	}
	return binary.BigEndian, nil
}

func (r *wkbReader) readUint32(order binary.ByteOrder) (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, errors.Wrapf(io.ErrUnexpectedEOF, "wkb: uint32 at offset %d", r.pos)
	}
	v := order.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// count reads an element count and checks that the remaining input could
// hold that many elements of at least minSize bytes.
func (r *wkbReader) count(order binary.ByteOrder, minSize int) (int, error) {
	at := r.pos
	n, err := r.readUint32(order)
	if err != nil {
		return 0, err
	}
	if int64(n)*int64(minSize) > int64(len(r.data)-r.pos) {
		return 0, errors.Wrapf(io.ErrUnexpectedEOF, "wkb: count %d at offset %d exceeds input", n, at)
	}
	return int(n), nil
}

func (r *wkbReader) readFloat64(order binary.ByteOrder) (float64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errors.Wrapf(io.ErrUnexpectedEOF, "wkb: float64 at offset %d", r.pos)
	}
	v := math.Float64frombits(order.Uint64(r.data[r.pos:]))
	r.pos += 8
	return v, nil
}
