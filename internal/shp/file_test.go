package shp_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/shapefile/internal/geometry"
	"github.com/beetlebugorg/shapefile/internal/shp"
	"github.com/beetlebugorg/shapefile/internal/shp/shptest"
)

func threeRecords() []*geometry.Record {
	return []*geometry.Record{
		fixture(geometry.KindPolygon, square(0, 0)),
		fixture(geometry.KindNull),
		fixture(geometry.KindPolygon, square(5, 5), square(7, 7)),
	}
}

func TestFileHeaderAndIndex(t *testing.T) {
	main, index := shptest.File(threeRecords()...)

	h, err := shp.ReadFileHeader(main)
	require.NoError(t, err)
	require.Equal(t, geometry.KindPolygon, h.Kind)
	require.Equal(t, int64(len(main)), h.FileLength)
	require.Equal(t, int32(shp.FileVersion), h.Version)
	require.Equal(t, geometry.Bounds{MinX: 0, MinY: 0, MaxX: 8, MaxY: 8}, h.Bounds)
	require.False(t, h.ZRange.Valid)

	entries, err := shp.ReadIndex(index)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, int64(shp.FileHeaderSize), entries[0].Offset)
	require.Equal(t, 4, entries[1].ContentLength)

	for i, e := range entries {
		payload, err := shp.RecordAt(main, i+1, e.Offset)
		require.NoError(t, err)
		require.Len(t, payload, e.ContentLength)
	}

	rec, err := shp.Decode(mustRecordAt(t, main, 3, entries[2].Offset))
	require.NoError(t, err)
	require.Equal(t, 2, rec.PartCount())

	null, err := shp.Decode(mustRecordAt(t, main, 2, entries[1].Offset))
	require.NoError(t, err)
	require.Equal(t, geometry.KindNull, null.Kind())
	require.Zero(t, null.VertexCount())
}

func mustRecordAt(t *testing.T, file []byte, number int, offset int64) []byte {
	t.Helper()
	payload, err := shp.RecordAt(file, number, offset)
	require.NoError(t, err)
	return payload
}

func TestWalkRecords(t *testing.T) {
	main, index := shptest.File(threeRecords()...)
	entries, err := shp.ReadIndex(index)
	require.NoError(t, err)

	var offsets []int64
	err = shp.WalkRecords(main, func(number int, offset int64, payload []byte) bool {
		offsets = append(offsets, offset)
		return true
	})
	require.NoError(t, err)
	require.Len(t, offsets, len(entries))
	for i, e := range entries {
		require.Equal(t, e.Offset, offsets[i])
	}

	calls := 0
	err = shp.WalkRecords(main, func(int, int64, []byte) bool {
		calls++
		return false
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestReadFileHeaderErrors(t *testing.T) {
	main, _ := shptest.File(threeRecords()...)

	_, err := shp.ReadFileHeader(main[:50])
	require.Error(t, err)

	bad := append([]byte(nil), main...)
	binary.BigEndian.PutUint32(bad, 1234)
	_, err = shp.ReadFileHeader(bad)
	require.ErrorContains(t, err, "file code")

	badKind := append([]byte(nil), main...)
	binary.LittleEndian.PutUint32(badKind[32:], 4)
	_, err = shp.ReadFileHeader(badKind)
	var uk *shp.ErrUnknownKind
	require.ErrorAs(t, err, &uk)

	_, err = shp.ReadIndex(bad)
	require.ErrorContains(t, err, "index: file header: bad file code 1234")
}

func TestRecordAtCorrupt(t *testing.T) {
	main, index := shptest.File(threeRecords()...)
	entries, err := shp.ReadIndex(index)
	require.NoError(t, err)
	last := entries[2]

	zero := append([]byte(nil), main...)
	binary.BigEndian.PutUint32(zero[last.Offset+4:], 0)

	tests := []struct {
		name   string
		file   []byte
		number int
		offset int64
		reason string
	}{
		{"StartBeyondEnd", main, 3, int64(len(main)) + 10, "beyond end of file"},
		{"StartInHeader", main, 1, 40, "beyond end of file"},
		{"Truncated", main[:len(main)-8], 3, last.Offset, "runs past end of file"},
		{"ZeroLength", zero, 3, last.Offset, "zero content length"},
		{"NumberMismatch", main, 2, last.Offset, "carries number 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := shp.RecordAt(tt.file, tt.number, tt.offset)
			require.Nil(t, payload)
			var ce *shp.CorruptRecordError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, tt.number, ce.Number)
			require.Contains(t, ce.Reason, tt.reason)
		})
	}
}
