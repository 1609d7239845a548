package shp

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/beetlebugorg/shapefile/internal/geometry"
)

// Main (.shp) and index (.shx) files share a 100-byte header. The file code
// and length are big-endian; everything after them is little-endian.
const (
	FileHeaderSize   = 100
	RecordHeaderSize = 8
	IndexEntrySize   = 8
	FileCode         = 9994
	FileVersion      = 1000
	headerOffsetLen  = 24
	headerOffsetVer  = 28
	headerOffsetKind = 32
	headerOffsetBox  = 36
	headerOffsetZ    = 68
	headerOffsetM    = 84
	bytesPerFileWord = 2
)

// FileHeader is the decoded 100-byte header of a .shp or .shx file.
type FileHeader struct {
	FileLength int64 // bytes
	Version    int32
	Kind       geometry.Kind
	Bounds     geometry.Bounds
	ZRange     geometry.Range
	MRange     geometry.Range
}

// ReadFileHeader decodes the header at the start of b.
func ReadFileHeader(b []byte) (FileHeader, error) {
	if len(b) < FileHeaderSize {
		return FileHeader{}, errors.Errorf("file header: need %d bytes, have %d", FileHeaderSize, len(b))
	}
	if code := binary.BigEndian.Uint32(b[0:]); code != FileCode {
		return FileHeader{}, errors.Errorf("file header: bad file code %d", code)
	}
	h := FileHeader{
		FileLength: int64(binary.BigEndian.Uint32(b[headerOffsetLen:])) * bytesPerFileWord,
		Version:    int32(binary.LittleEndian.Uint32(b[headerOffsetVer:])),
		Kind:       geometry.Kind(int32(binary.LittleEndian.Uint32(b[headerOffsetKind:]))),
		Bounds: geometry.Bounds{
			MinX: readFloat(b, headerOffsetBox),
			MinY: readFloat(b, headerOffsetBox+8),
			MaxX: readFloat(b, headerOffsetBox+16),
			MaxY: readFloat(b, headerOffsetBox+24),
		},
		ZRange: headerRange(b, headerOffsetZ),
		MRange: headerRange(b, headerOffsetM),
	}
	if !h.Kind.Valid() {
		return FileHeader{}, &ErrUnknownKind{Code: int32(h.Kind)}
	}
	return h, nil
}

func headerRange(b []byte, off int) geometry.Range {
	lo, hi := readFloat(b, off), readFloat(b, off+8)
	if lo <= geometry.NoDataThreshold || math.IsNaN(lo) || math.IsNaN(hi) {
		return geometry.Range{}
	}
	if lo == 0 && hi == 0 {
		// unused ranges are written as zeros
		return geometry.Range{}
	}
	return geometry.Range{Min: lo, Max: hi, Valid: true}
}

// IndexEntry locates one record in the main file.
type IndexEntry struct {
	Offset        int64 // byte offset of the record header
	ContentLength int   // payload bytes, excluding the 8-byte record header
}

// ReadIndex decodes a .shx file.
func ReadIndex(shx []byte) ([]IndexEntry, error) {
	if _, err := ReadFileHeader(shx); err != nil {
		return nil, errors.Wrap(err, "index")
	}
	body := shx[FileHeaderSize:]
	n := len(body) / IndexEntrySize
	entries := make([]IndexEntry, n)
	for i := range entries {
		e := body[i*IndexEntrySize:]
		entries[i] = IndexEntry{
			Offset:        int64(binary.BigEndian.Uint32(e[0:])) * bytesPerFileWord,
			ContentLength: int(binary.BigEndian.Uint32(e[4:])) * bytesPerFileWord,
		}
	}
	return entries, nil
}

// RecordAt frames record number (1-based) whose header starts at offset in
// the main file and returns its payload. The payload aliases file.
func RecordAt(file []byte, number int, offset int64) ([]byte, error) {
	if offset < FileHeaderSize || offset+RecordHeaderSize > int64(len(file)) {
		return nil, &CorruptRecordError{
			Number: number,
			Reason: fmt.Sprintf("record start %d beyond end of file (%d bytes)", offset, len(file)),
		}
	}
	hdr := file[offset:]
	if got := int(binary.BigEndian.Uint32(hdr[0:])); number > 0 && got != number {
		return nil, &CorruptRecordError{
			Number: number,
			Reason: fmt.Sprintf("record header carries number %d", got),
		}
	}
	length := int64(binary.BigEndian.Uint32(hdr[4:])) * bytesPerFileWord
	if length == 0 {
		return nil, &CorruptRecordError{Number: number, Reason: "zero content length", Err: ErrEmptyPayload}
	}
	start := offset + RecordHeaderSize
	if start+length > int64(len(file)) {
		return nil, &CorruptRecordError{
			Number: number,
			Reason: fmt.Sprintf("content length %d runs past end of file", length),
		}
	}
	return file[start : start+length], nil
}

// WalkRecords visits each record of a main file in order, starting after the
// file header. It stops at the first framing error or when fn returns false.
func WalkRecords(file []byte, fn func(number int, offset int64, payload []byte) bool) error {
	if _, err := ReadFileHeader(file); err != nil {
		return err
	}
	offset := int64(FileHeaderSize)
	for number := 1; offset+RecordHeaderSize <= int64(len(file)); number++ {
		payload, err := RecordAt(file, number, offset)
		if err != nil {
			return err
		}
		if !fn(number, offset, payload) {
			return nil
		}
		offset += RecordHeaderSize + int64(len(payload))
	}
	return nil
}
