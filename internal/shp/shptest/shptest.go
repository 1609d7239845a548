// Package shptest builds shapefile payloads and files in memory for tests.
package shptest

import (
	"encoding/binary"
	"math"

	"github.com/beetlebugorg/shapefile/internal/geometry"
	"github.com/beetlebugorg/shapefile/internal/shp"
)

// Payload encodes rec as a record payload with every optional block present.
func Payload(rec *geometry.Record) []byte {
	kind := rec.Kind()
	l := shp.NewLayout(kind, rec.PartCount(), rec.VertexCount())
	if kind.IsMultiPoint() || !kind.HasParts() {
		l = shp.NewLayout(kind, 0, rec.VertexCount())
	}
	b := make([]byte, l.FullLength())
	putInt(b, 0, int32(kind))
	if kind == geometry.KindNull {
		return b
	}

	if !kind.IsPoint() {
		box := rec.Bounds()
		putFloat(b, 4, box.MinX)
		putFloat(b, 12, box.MinY)
		putFloat(b, 20, box.MaxX)
		putFloat(b, 28, box.MaxY)
		if kind.IsMultiPoint() {
			putInt(b, 36, int32(l.NumPoints))
		} else {
			putInt(b, 36, int32(l.NumParts))
			putInt(b, 40, int32(l.NumPoints))
		}
	}

	for k, p := range rec.Parts() {
		if off := l.PartIndexOffset(); off >= 0 {
			putInt(b, off+4*k, int32(p.Begin))
		}
		if off := l.PartTypeOffset(); off >= 0 {
			putInt(b, off+4*k, p.Type.Code())
		}
	}

	vs := rec.Vertices()
	if kind.IsPoint() && len(vs) == 0 {
		vs = []geometry.Vertex{{}}
	}
	for i, v := range vs {
		off := l.PointOffset(i)
		putFloat(b, off, v.X)
		putFloat(b, off+8, v.Y)
		if off := l.ZOffset(i); off >= 0 {
			putFloat(b, off, v.Z.Stored())
		}
		if off := l.MOffset(i); off >= 0 {
			putFloat(b, off, v.M.Stored())
		}
	}
	if off := l.ZRangeOffset(); off >= 0 {
		putRange(b, off, rec.ZRange())
	}
	if off := l.MRangeOffset(); off >= 0 {
		putRange(b, off, rec.MRange())
	}
	return b
}

// File encodes records as a main file and its index. The header kind is
// that of the first non-null record.
func File(records ...*geometry.Record) (shpFile, shxFile []byte) {
	kind := geometry.KindNull
	var box geometry.Bounds
	first := true
	for _, rec := range records {
		if rec.Kind() == geometry.KindNull {
			continue
		}
		if first {
			kind, box = rec.Kind(), rec.Bounds()
			first = false
			continue
		}
		box = box.Union(rec.Bounds())
	}

	shpFile = make([]byte, shp.FileHeaderSize)
	shxFile = make([]byte, shp.FileHeaderSize)
	for i, rec := range records {
		payload := Payload(rec)
		offset := len(shpFile)

		hdr := make([]byte, shp.RecordHeaderSize)
		binary.BigEndian.PutUint32(hdr[0:], uint32(i+1))
		binary.BigEndian.PutUint32(hdr[4:], uint32(len(payload)/2))
		shpFile = append(shpFile, hdr...)
		shpFile = append(shpFile, payload...)

		entry := make([]byte, shp.IndexEntrySize)
		binary.BigEndian.PutUint32(entry[0:], uint32(offset/2))
		binary.BigEndian.PutUint32(entry[4:], uint32(len(payload)/2))
		shxFile = append(shxFile, entry...)
	}
	putFileHeader(shpFile, kind, box)
	putFileHeader(shxFile, kind, box)
	return shpFile, shxFile
}

func putFileHeader(b []byte, kind geometry.Kind, box geometry.Bounds) {
	binary.BigEndian.PutUint32(b[0:], shp.FileCode)
	binary.BigEndian.PutUint32(b[24:], uint32(len(b)/2))
	putInt(b, 28, shp.FileVersion)
	putInt(b, 32, int32(kind))
	putFloat(b, 36, box.MinX)
	putFloat(b, 44, box.MinY)
	putFloat(b, 52, box.MaxX)
	putFloat(b, 60, box.MaxY)
}

func putRange(b []byte, off int, r geometry.Range) {
	if !r.Valid {
		putFloat(b, off, geometry.NoData)
		putFloat(b, off+8, geometry.NoData)
		return
	}
	putFloat(b, off, r.Min)
	putFloat(b, off+8, r.Max)
}

func putInt(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:], uint32(v))
}

func putFloat(b []byte, off int, v float64) {
	binary.LittleEndian.PutUint64(b[off:], math.Float64bits(v))
}
