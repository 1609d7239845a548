package geometry

import "fmt"

// Kind is the shape type code stored at offset 0 of every shape record and
// at offset 32 of the main file header.
//
// Reference: ESRI Shapefile Technical Description (July 1998), table 1.
type Kind int32

const (
	KindNull        Kind = 0
	KindPoint       Kind = 1
	KindPolyLine    Kind = 3
	KindPolygon     Kind = 5
	KindMultiPoint  Kind = 8
	KindPointZ      Kind = 11
	KindPolyLineZ   Kind = 13
	KindPolygonZ    Kind = 15
	KindMultiPointZ Kind = 18
	KindPointM      Kind = 21
	KindPolyLineM   Kind = 23
	KindPolygonM    Kind = 25
	KindMultiPointM Kind = 28
	KindMultiPatch  Kind = 31
)

var kindNames = map[Kind]string{
	KindNull:        "Null",
	KindPoint:       "Point",
	KindPolyLine:    "PolyLine",
	KindPolygon:     "Polygon",
	KindMultiPoint:  "MultiPoint",
	KindPointZ:      "PointZ",
	KindPolyLineZ:   "PolyLineZ",
	KindPolygonZ:    "PolygonZ",
	KindMultiPointZ: "MultiPointZ",
	KindPointM:      "PointM",
	KindPolyLineM:   "PolyLineM",
	KindPolygonM:    "PolygonM",
	KindMultiPointM: "MultiPointM",
	KindMultiPatch:  "MultiPatch",
}

// Kinds lists every shape kind in code order.
var Kinds = []Kind{
	KindNull, KindPoint, KindPolyLine, KindPolygon, KindMultiPoint,
	KindPointZ, KindPolyLineZ, KindPolygonZ, KindMultiPointZ,
	KindPointM, KindPolyLineM, KindPolygonM, KindMultiPointM,
	KindMultiPatch,
}

// String returns the name used by the format documentation.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Valid reports whether k is one of the documented shape kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Base strips the Z/M variant, returning one of Null, Point, PolyLine,
// Polygon, MultiPoint or MultiPatch.
func (k Kind) Base() Kind {
	switch k {
	case KindPoint, KindPointZ, KindPointM:
		return KindPoint
	case KindPolyLine, KindPolyLineZ, KindPolyLineM:
		return KindPolyLine
	case KindPolygon, KindPolygonZ, KindPolygonM:
		return KindPolygon
	case KindMultiPoint, KindMultiPointZ, KindMultiPointM:
		return KindMultiPoint
	case KindMultiPatch:
		return KindMultiPatch
	}
	return KindNull
}

// HasZ reports whether records of this kind carry an elevation block.
func (k Kind) HasZ() bool {
	switch k {
	case KindPointZ, KindPolyLineZ, KindPolygonZ, KindMultiPointZ, KindMultiPatch:
		return true
	}
	return false
}

// HasM reports whether records of this kind may carry a measure block.
// Z kinds always may; the M block is optional trailing data for them.
func (k Kind) HasM() bool {
	switch k {
	case KindPointM, KindPolyLineM, KindPolygonM, KindMultiPointM:
		return true
	}
	return k.HasZ()
}

// IsPoint reports whether k is a single-point kind.
func (k Kind) IsPoint() bool { return k.Base() == KindPoint }

// IsMultiPoint reports whether k is a multipoint kind.
func (k Kind) IsMultiPoint() bool { return k.Base() == KindMultiPoint }

// HasParts reports whether records of this kind carry a part index array.
func (k Kind) HasParts() bool {
	switch k.Base() {
	case KindPolyLine, KindPolygon, KindMultiPatch:
		return true
	}
	return false
}

// IsPolygonal reports whether parts of this kind are closed rings.
func (k Kind) IsPolygonal() bool {
	b := k.Base()
	return b == KindPolygon || b == KindMultiPatch
}

// KindFor returns the variant of base carrying the requested dimensions.
// Z variants also carry M, so hasM only matters when hasZ is false.
func KindFor(base Kind, hasZ, hasM bool) Kind {
	switch base.Base() {
	case KindPoint:
		return pick(hasZ, hasM, KindPoint, KindPointZ, KindPointM)
	case KindPolyLine:
		return pick(hasZ, hasM, KindPolyLine, KindPolyLineZ, KindPolyLineM)
	case KindPolygon:
		return pick(hasZ, hasM, KindPolygon, KindPolygonZ, KindPolygonM)
	case KindMultiPoint:
		return pick(hasZ, hasM, KindMultiPoint, KindMultiPointZ, KindMultiPointM)
	case KindMultiPatch:
		return KindMultiPatch
	}
	return KindNull
}

func pick(hasZ, hasM bool, plain, z, m Kind) Kind {
	switch {
	case hasZ:
		return z
	case hasM:
		return m
	}
	return plain
}

// PatchType classifies a MultiPatch part. The zero value marks a part that
// does not belong to a MultiPatch.
type PatchType int8

const (
	PatchNone PatchType = iota
	PatchTriangleStrip
	PatchTriangleFan
	PatchOuterRing
	PatchInnerRing
	PatchFirstRing
	PatchRing
)

// PatchTypeFromCode converts the on-disk part type code (0..5).
func PatchTypeFromCode(code int32) PatchType {
	if code < 0 || code > 5 {
		return PatchNone
	}
	return PatchType(code + 1)
}

// Code returns the on-disk part type code, or -1 for PatchNone.
func (t PatchType) Code() int32 {
	return int32(t) - 1
}

func (t PatchType) String() string {
	switch t {
	case PatchTriangleStrip:
		return "TriangleStrip"
	case PatchTriangleFan:
		return "TriangleFan"
	case PatchOuterRing:
		return "OuterRing"
	case PatchInnerRing:
		return "InnerRing"
	case PatchFirstRing:
		return "FirstRing"
	case PatchRing:
		return "Ring"
	}
	return "None"
}

// IsRing reports whether the patch part describes a ring rather than a
// triangle strip or fan.
func (t PatchType) IsRing() bool {
	return t >= PatchOuterRing
}
