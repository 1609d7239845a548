package prj

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/beetlebugorg/shapefile/internal/logger"
)

// Spheroid is the reference ellipsoid of a datum.
type Spheroid struct {
	Name              string
	SemiMajorAxis     float64
	InverseFlattening float64
}

// Unit is a named unit with its conversion factor to meters or radians.
type Unit struct {
	Name   string
	Factor float64
}

// Projection is a typed summary of the common ESRI projection tags.
type Projection struct {
	Name           string // PROJCS name, empty for geographic systems
	GeographicName string // GEOGCS name
	Datum          string
	Spheroid       Spheroid
	PrimeMeridian  string
	PrimeLongitude float64
	AngularUnit    Unit
	LinearUnit     Unit
	Method         string // PROJECTION name
	Parameters     map[string]float64
	AuthorityName  string
	AuthorityCode  string
}

// Projected reports whether the system has a projection on top of its
// geographic system.
func (p Projection) Projected() bool { return p.Name != "" }

// Describe extracts a Projection from t. Missing tags leave their fields
// zero; numbers that fail to parse are logged and left zero.
func Describe(t *Tree) Projection {
	var p Projection
	if t == nil || t.Empty() {
		return p
	}

	p.Name, _ = t.ValueIn(RootParent, "PROJCS", 0)
	p.GeographicName, _ = t.Value("GEOGCS", 0)
	p.Datum, _ = t.ValueIn("GEOGCS", "DATUM", 0)

	if sph := t.Find("SPHEROID"); len(sph) > 0 {
		p.Spheroid.Name, _ = sph[0].Attribute(0)
		p.Spheroid.SemiMajorAxis = number(sph[0], 1)
		p.Spheroid.InverseFlattening = number(sph[0], 2)
	}
	if pm := t.Find("PRIMEM"); len(pm) > 0 {
		p.PrimeMeridian, _ = pm[0].Attribute(0)
		p.PrimeLongitude = number(pm[0], 1)
	}
	for _, u := range t.Find("UNIT") {
		unit := Unit{Factor: number(u, 1)}
		unit.Name, _ = u.Attribute(0)
		switch u.Parent {
		case "GEOGCS":
			if p.AngularUnit.Name == "" {
				p.AngularUnit = unit
			}
		case "PROJCS":
			if p.LinearUnit.Name == "" {
				p.LinearUnit = unit
			}
		}
	}

	p.Method, _ = t.ValueIn("PROJCS", "PROJECTION", 0)
	for _, n := range t.Find("PARAMETER") {
		name, ok := n.Attribute(0)
		if !ok || n.Parent != "PROJCS" {
			continue
		}
		if p.Parameters == nil {
			p.Parameters = make(map[string]float64)
		}
		p.Parameters[name] = number(n, 1)
	}

	if root := t.Roots(); len(root) > 0 {
		for _, c := range root[0].Children {
			if c.Name == "AUTHORITY" {
				p.AuthorityName, _ = c.Attribute(0)
				p.AuthorityCode, _ = c.Attribute(1)
			}
		}
	}
	return p
}

func number(n *Node, i int) float64 {
	s, ok := n.Attribute(i)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logger.L().Debug("projection value is not a number",
			zap.String("tag", n.Name),
			zap.String("path", n.Path),
			zap.String("value", s))
		return 0
	}
	return v
}
