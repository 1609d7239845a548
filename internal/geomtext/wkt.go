// Package geomtext imports Well-Known Text and Well-Known Binary geometry
// into geometry records, and exports records through go-geom.
package geomtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/beetlebugorg/shapefile/internal/geometry"
)

// ErrUnsupportedGeometry is returned for geometry keywords or type codes the
// importers do not handle.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// SyntaxError reports malformed WKT structure.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("wkt: %s at offset %d", e.Msg, e.Offset)
}

// dims says which ordinates follow X and Y in each tuple.
type dims int

const (
	dimsUnknown dims = iota
	dimsXY
	dimsZ
	dimsM
	dimsZM
)

func (d dims) width() int {
	switch d {
	case dimsZ, dimsM:
		return 3
	case dimsZM:
		return 4
	}
	return 2
}

func (d dims) hasZ() bool { return d == dimsZ || d == dimsZM }
func (d dims) hasM() bool { return d == dimsM || d == dimsZM }

func (d dims) vertex(t []float64) geometry.Vertex {
	switch d {
	case dimsZ:
		return geometry.XYZ(t[0], t[1], t[2])
	case dimsM:
		return geometry.XYM(t[0], t[1], t[2])
	case dimsZM:
		return geometry.XYZM(t[0], t[1], t[2], t[3])
	}
	return geometry.XY(t[0], t[1])
}

var wktKinds = map[string]geometry.Kind{
	"POINT":           geometry.KindPoint,
	"MULTIPOINT":      geometry.KindMultiPoint,
	"LINESTRING":      geometry.KindPolyLine,
	"MULTILINESTRING": geometry.KindPolyLine,
	"POLYGON":         geometry.KindPolygon,
	"MULTIPOLYGON":    geometry.KindPolygon,
}

// wktNode is either a coordinate tuple or a parenthesized group.
type wktNode struct {
	offset int
	tuple  []float64
	items  []*wktNode
	empty  bool
}

type wktGeometry struct {
	keyword string
	dims    dims
	root    *wktNode // nil for EMPTY
}

// ParseWKT imports text into a new record whose kind is inferred from the
// keyword and dimensionality.
func ParseWKT(text string) (*geometry.Record, error) {
	g, err := parseWKT(text)
	if err != nil {
		return nil, err
	}
	rec := geometry.NewRecord(geometry.KindFor(wktKinds[g.keyword], g.dims.hasZ(), g.dims.hasM()))
	if err := g.appendTo(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AppendWKT imports text into rec through the regular vertex and part
// insertion path. Each linestring and ring starts a new part; rings are not
// classified as holes here.
func AppendWKT(rec *geometry.Record, text string) error {
	g, err := parseWKT(text)
	if err != nil {
		return err
	}
	return g.appendTo(rec)
}

func parseWKT(text string) (*wktGeometry, error) {
	p := &wktParser{s: text}
	p.skipSpace()
	start := p.pos
	keyword := p.word()
	if _, ok := wktKinds[keyword]; !ok {
		if keyword == "" {
			return nil, &SyntaxError{Offset: start, Msg: "missing geometry keyword"}
		}
		return nil, errors.Wrapf(ErrUnsupportedGeometry, "wkt keyword %q", keyword)
	}
	g := &wktGeometry{keyword: keyword}

	p.skipSpace()
	switch p.word() {
	case "":
	case "ZM":
		g.dims = dimsZM
	case "Z":
		g.dims = dimsZ
	case "M":
		g.dims = dimsM
	case "EMPTY":
		return g.finish(p)
	default:
		return nil, &SyntaxError{Offset: start + len(keyword), Msg: "unexpected token after " + keyword}
	}
	p.skipSpace()
	if strings.HasPrefix(p.s[p.pos:], "EMPTY") {
		p.pos += len("EMPTY")
		return g.finish(p)
	}

	root, err := p.group()
	if err != nil {
		return nil, err
	}
	g.root = root
	return g.finish(p)
}

// finish checks for trailing input and settles the tuple width.
func (g *wktGeometry) finish(p *wktParser) (*wktGeometry, error) {
	p.skipSpace()
	if p.pos < len(p.s) {
		return nil, &SyntaxError{Offset: p.pos, Msg: "trailing characters"}
	}
	if g.root == nil {
		if g.dims == dimsUnknown {
			g.dims = dimsXY
		}
		return g, nil
	}
	if g.dims == dimsUnknown {
		first := firstTuple(g.root)
		switch {
		case first == nil:
			g.dims = dimsXY
		case len(first.tuple) == 2:
			g.dims = dimsXY
		case len(first.tuple) == 3:
			g.dims = dimsZ
		case len(first.tuple) == 4:
			g.dims = dimsZM
		default:
			return nil, &SyntaxError{Offset: first.offset, Msg: fmt.Sprintf("coordinate has %d values", len(first.tuple))}
		}
	}
	if err := checkWidth(g.root, g.dims.width()); err != nil {
		return nil, err
	}
	return g, nil
}

func firstTuple(n *wktNode) *wktNode {
	if n.tuple != nil {
		return n
	}
	for _, it := range n.items {
		if t := firstTuple(it); t != nil {
			return t
		}
	}
	return nil
}

func checkWidth(n *wktNode, width int) error {
	if n.tuple != nil && len(n.tuple) != width {
		return &SyntaxError{
			Offset: n.offset,
			Msg:    fmt.Sprintf("coordinate has %d values, want %d", len(n.tuple), width),
		}
	}
	for _, it := range n.items {
		if err := checkWidth(it, width); err != nil {
			return err
		}
	}
	return nil
}

func (g *wktGeometry) appendTo(rec *geometry.Record) error {
	if g.root == nil {
		return nil
	}
	switch g.keyword {
	case "POINT":
		pts, err := g.tuples(g.root)
		if err != nil {
			return err
		}
		if len(pts) > 1 {
			return &SyntaxError{Offset: g.root.offset, Msg: "point has more than one coordinate"}
		}
		g.appendVertices(rec, pts)
	case "MULTIPOINT":
		for _, it := range g.root.items {
			switch {
			case it.empty:
			case it.tuple != nil:
				rec.AppendVertex(g.dims.vertex(it.tuple))
			default:
				pts, err := g.tuples(it)
				if err != nil {
					return err
				}
				g.appendVertices(rec, pts)
			}
		}
	case "LINESTRING":
		pts, err := g.tuples(g.root)
		if err != nil {
			return err
		}
		rec.BeginPart()
		g.appendVertices(rec, pts)
	case "POLYGON", "MULTILINESTRING":
		return g.appendParts(rec, g.root)
	case "MULTIPOLYGON":
		for _, poly := range g.root.items {
			if poly.empty {
				continue
			}
			if poly.tuple != nil {
				return &SyntaxError{Offset: poly.offset, Msg: "expected polygon"}
			}
			if err := g.appendParts(rec, poly); err != nil {
				return err
			}
		}
	}
	return nil
}

// appendParts adds one part per group in n.
func (g *wktGeometry) appendParts(rec *geometry.Record, n *wktNode) error {
	for _, ring := range n.items {
		if ring.empty {
			continue
		}
		if ring.tuple != nil {
			return &SyntaxError{Offset: ring.offset, Msg: "expected parenthesized coordinates"}
		}
		pts, err := g.tuples(ring)
		if err != nil {
			return err
		}
		rec.BeginPart()
		g.appendVertices(rec, pts)
	}
	return nil
}

// tuples returns the coordinates of a group that must hold only tuples.
func (g *wktGeometry) tuples(n *wktNode) ([][]float64, error) {
	out := make([][]float64, 0, len(n.items))
	for _, it := range n.items {
		if it.empty {
			continue
		}
		if it.tuple == nil {
			return nil, &SyntaxError{Offset: it.offset, Msg: "unexpected nested group"}
		}
		out = append(out, it.tuple)
	}
	return out, nil
}

func (g *wktGeometry) appendVertices(rec *geometry.Record, pts [][]float64) {
	for _, t := range pts {
		rec.AppendVertex(g.dims.vertex(t))
	}
}

type wktParser struct {
	s   string
	pos int
}

func (p *wktParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// word consumes a run of ASCII letters.
func (p *wktParser) word() string {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			break
		}
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *wktParser) group() (*wktNode, error) {
	if p.pos >= len(p.s) || p.s[p.pos] != '(' {
		return nil, &SyntaxError{Offset: p.pos, Msg: "expected '('"}
	}
	n := &wktNode{offset: p.pos}
	p.pos++
	for {
		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, &SyntaxError{Offset: p.pos, Msg: "unterminated group"}
		}
		var item *wktNode
		var err error
		switch c := p.s[p.pos]; {
		case c == '(':
			item, err = p.group()
		case strings.HasPrefix(p.s[p.pos:], "EMPTY"):
			item = &wktNode{offset: p.pos, empty: true}
			p.pos += len("EMPTY")
		default:
			item, err = p.tuple()
		}
		if err != nil {
			return nil, err
		}
		n.items = append(n.items, item)

		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, &SyntaxError{Offset: p.pos, Msg: "unterminated group"}
		}
		switch p.s[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return n, nil
		default:
			return nil, &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf("unexpected %q", p.s[p.pos])}
		}
	}
}

// tuple reads space separated numbers up to the next ',' or ')'.
func (p *wktParser) tuple() (*wktNode, error) {
	n := &wktNode{offset: p.pos}
	for {
		p.skipSpace()
		if p.pos >= len(p.s) || p.s[p.pos] == ',' || p.s[p.pos] == ')' {
			break
		}
		start := p.pos
		for p.pos < len(p.s) {
			c := p.s[p.pos]
			if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' || c == ')' || c == '(' {
				break
			}
			p.pos++
		}
		if p.pos == start {
			return nil, &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf("unexpected %q", p.s[p.pos])}
		}
		v, err := strconv.ParseFloat(p.s[start:p.pos], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "wkt: coordinate at offset %d", start)
		}
		n.tuple = append(n.tuple, v)
	}
	if len(n.tuple) == 0 {
		return nil, &SyntaxError{Offset: n.offset, Msg: "empty coordinate"}
	}
	return n, nil
}
