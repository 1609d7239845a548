package shapefile

import (
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/beetlebugorg/shapefile/internal/geometry"
	"github.com/beetlebugorg/shapefile/internal/logger"
	"github.com/beetlebugorg/shapefile/internal/prj"
	"github.com/beetlebugorg/shapefile/internal/shp"
)

// File is an opened shapefile: the main file held in memory, the record
// offsets taken from the index (or found by walking the main file) and the
// projection text, if any.
//
// A File is safe for concurrent use. Records returned by Record are shared
// with the cache and must be cloned before they are modified.
type File struct {
	path    string
	data    []byte
	header  shp.FileHeader
	offsets []int64 // main-file offset of record n at offsets[n-1]
	tree    *prj.Tree
	proj    prj.Projection
	cache   *ristretto.Cache[int, *geometry.Record]
}

// Open reads the shapefile at path. The extension may be ".shp" or omitted;
// the companion ".shx" and ".prj" files are looked up beside it.
//
// A missing index is not an error: records are found by walking the main
// file, which stops at the first framing error. A missing or malformed
// projection leaves Projection empty.
//
// Example:
//
//	f, err := shapefile.Open("coast.shp", shapefile.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	rec, err := f.Record(1)
func Open(path string, opts Options) (*File, error) {
	if opts.Logger != nil {
		logger.Set(opts.Logger)
	}
	base := path
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}
	shpPath := base + ".shp"

	data, err := os.ReadFile(shpPath)
	if err != nil {
		return nil, errors.Wrapf(err, "shapefile: read %s", shpPath)
	}
	header, err := shp.ReadFileHeader(data)
	if err != nil {
		return nil, errors.Wrapf(err, "shapefile: %s", shpPath)
	}

	f := &File{path: shpPath, data: data, header: header}
	if err := f.loadOffsets(base + ".shx"); err != nil {
		return nil, err
	}
	f.loadProjection(base + ".prj")

	if opts.CacheBytes > 0 {
		f.cache, err = newRecordCache(opts.CacheBytes, len(f.offsets))
		if err != nil {
			return nil, errors.Wrap(err, "shapefile: record cache")
		}
	}

	logger.L().Debug("opened shapefile",
		zap.String("path", shpPath),
		zap.Stringer("kind", header.Kind),
		zap.Int("records", len(f.offsets)))
	return f, nil
}

func (f *File) loadOffsets(shxPath string) error {
	shx, err := os.ReadFile(shxPath)
	switch {
	case err == nil:
		entries, err := shp.ReadIndex(shx)
		if err != nil {
			return errors.Wrapf(err, "shapefile: %s", shxPath)
		}
		f.offsets = make([]int64, len(entries))
		for i, e := range entries {
			f.offsets[i] = e.Offset
		}
		return nil
	case errors.Is(err, os.ErrNotExist):
		logger.L().Debug("no index file, walking records", zap.String("path", shxPath))
	default:
		return errors.Wrapf(err, "shapefile: read %s", shxPath)
	}

	err = shp.WalkRecords(f.data, func(_ int, offset int64, _ []byte) bool {
		f.offsets = append(f.offsets, offset)
		return true
	})
	if err != nil {
		logger.L().Warn("record walk stopped early",
			zap.String("path", f.path),
			zap.Int("records", len(f.offsets)),
			zap.Error(err))
	}
	return nil
}

func (f *File) loadProjection(prjPath string) {
	tree, err := prj.ParseFile(prjPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.L().Debug("projection ignored", zap.String("path", prjPath), zap.Error(err))
	}
	f.tree = tree
	f.proj = prj.Describe(tree)
}

// Path returns the main file path.
func (f *File) Path() string { return f.path }

// Header returns the main file header.
func (f *File) Header() FileHeader { return f.header }

// Kind returns the shape kind declared in the file header.
func (f *File) Kind() Kind { return f.header.Kind }

// Bounds returns the bounding rectangle declared in the file header.
func (f *File) Bounds() Bounds { return f.header.Bounds }

// NumRecords returns the number of records.
func (f *File) NumRecords() int { return len(f.offsets) }

// Projection returns the typed projection summary. It is zero when the
// projection file is missing or malformed.
func (f *File) Projection() Projection { return f.proj }

// ProjectionTree returns the parsed projection text. It is never nil.
func (f *File) ProjectionTree() *ProjectionTree { return f.tree }

// Payload returns the raw content of record n (1-based). The slice aliases
// the file data and must not be modified.
func (f *File) Payload(n int) ([]byte, error) {
	if n < 1 || n > len(f.offsets) {
		return nil, &geometry.IndexError{What: "record", Index: n, Len: len(f.offsets)}
	}
	return shp.RecordAt(f.data, n, f.offsets[n-1])
}

// Record decodes record n (1-based). Decoded records are cached; the
// result is shared and must be cloned before editing.
//
// A corrupt record yields a *CorruptRecordError carrying n. Other
// records stay readable.
func (f *File) Record(n int) (*Record, error) {
	if f.cache != nil {
		if rec, ok := f.cache.Get(n); ok {
			return rec, nil
		}
	}
	rec, err := f.decode(n)
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		f.cache.Set(n, rec, 0)
	}
	return rec, nil
}

func (f *File) decode(n int) (*Record, error) {
	payload, err := f.Payload(n)
	if err != nil {
		return nil, err
	}
	rec, err := shp.Decode(payload)
	if err != nil {
		return nil, shp.Corrupt(n, err)
	}
	return rec, nil
}

// Reader returns a random-access view of record n that reads vertices
// straight from the file data without decoding the whole record.
func (f *File) Reader(n int) (*RandomAccess, error) {
	payload, err := f.Payload(n)
	if err != nil {
		return nil, err
	}
	ra, err := shp.NewRandomAccess(payload)
	if err != nil {
		return nil, shp.Corrupt(n, err)
	}
	return ra, nil
}

// Vertex returns vertex i of record n without decoding the record.
func (f *File) Vertex(n, i int) (Vertex, error) {
	ra, err := f.Reader(n)
	if err != nil {
		return Vertex{}, err
	}
	return ra.Vertex(i)
}

// Close releases the record cache. The File must not be used afterwards.
func (f *File) Close() error {
	if f.cache != nil {
		f.cache.Close()
		f.cache = nil
	}
	f.data = nil
	f.offsets = nil
	return nil
}

var (
	vertexSize = int64(unsafe.Sizeof(geometry.Vertex{}))
	partSize   = int64(unsafe.Sizeof(geometry.Part{}))
	recordSize = int64(unsafe.Sizeof(geometry.Record{}))
)

func newRecordCache(maxBytes int64, records int) (*ristretto.Cache[int, *geometry.Record], error) {
	counters := int64(records) * 10
	if counters < 1000 {
		counters = 1000
	}
	return ristretto.NewCache(&ristretto.Config[int, *geometry.Record]{
		NumCounters: counters,
		MaxCost:     maxBytes,
		BufferItems: 64,
		Cost: func(rec *geometry.Record) int64 {
			return recordSize + int64(rec.VertexCount())*vertexSize + int64(rec.PartCount())*partSize
		},
	})
}
