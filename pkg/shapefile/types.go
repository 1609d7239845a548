package shapefile

import (
	"github.com/beetlebugorg/shapefile/internal/geometry"
	"github.com/beetlebugorg/shapefile/internal/prj"
	"github.com/beetlebugorg/shapefile/internal/shp"
)

// Geometry types re-exported from the internal packages.
type (
	Record             = geometry.Record
	Vertex             = geometry.Vertex
	Part               = geometry.Part
	Ring               = geometry.Ring
	Kind               = geometry.Kind
	PatchType          = geometry.PatchType
	Bounds             = geometry.Bounds
	Range              = geometry.Range
	NullFloat          = geometry.NullFloat
	IndexError         = geometry.IndexError
	CorruptRecordError = shp.CorruptRecordError
	FileHeader         = shp.FileHeader
	RandomAccess       = shp.RandomAccess
	Projection         = prj.Projection
	ProjectionTree     = prj.Tree
	ProjectionNode     = prj.Node
)

// Shape kinds.
const (
	KindNull        = geometry.KindNull
	KindPoint       = geometry.KindPoint
	KindPolyLine    = geometry.KindPolyLine
	KindPolygon     = geometry.KindPolygon
	KindMultiPoint  = geometry.KindMultiPoint
	KindPointZ      = geometry.KindPointZ
	KindPolyLineZ   = geometry.KindPolyLineZ
	KindPolygonZ    = geometry.KindPolygonZ
	KindMultiPointZ = geometry.KindMultiPointZ
	KindPointM      = geometry.KindPointM
	KindPolyLineM   = geometry.KindPolyLineM
	KindPolygonM    = geometry.KindPolygonM
	KindMultiPointM = geometry.KindMultiPointM
	KindMultiPatch  = geometry.KindMultiPatch
)

// NoData is the value written for a null Z or M.
const NoData = geometry.NoData
