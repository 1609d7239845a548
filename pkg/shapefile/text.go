package shapefile

import (
	"encoding/binary"

	"github.com/beetlebugorg/shapefile/internal/geomtext"
)

// ErrUnsupportedGeometry is returned for geometry types that have no
// shapefile equivalent.
var ErrUnsupportedGeometry = geomtext.ErrUnsupportedGeometry

// ParseWKT imports Well-Known Text into a new record.
func ParseWKT(text string) (*Record, error) { return geomtext.ParseWKT(text) }

// ParseWKB imports Well-Known Binary, ISO or EWKB, into a new record.
func ParseWKB(data []byte) (*Record, error) { return geomtext.ParseWKB(data) }

// FormatWKT renders rec as Well-Known Text. Polygon rings are grouped into
// polygons by hole classification.
func FormatWKT(rec *Record) (string, error) { return geomtext.FormatWKT(rec) }

// FormatWKB renders rec as ISO Well-Known Binary.
func FormatWKB(rec *Record, order binary.ByteOrder) ([]byte, error) {
	return geomtext.FormatWKB(rec, order)
}
