package prj

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/beetlebugorg/shapefile/internal/logger"
)

// RootParent is the Parent value of top-level nodes.
const RootParent = "#"

// PathSeparator joins child ordinals in a node path.
const PathSeparator = "."

// Node is one TAG[...] element.
type Node struct {
	Name       string
	Parent     string   // parent tag name, RootParent at the top level
	Attributes []string // literals before the first child tag
	Children   []*Node
	Path       string // child ordinals from the root, e.g. "0.2.1"
}

// Attribute returns the nth attribute, or "" and false.
func (n *Node) Attribute(i int) (string, bool) {
	if i < 0 || i >= len(n.Attributes) {
		return "", false
	}
	return n.Attributes[i], true
}

// Tree is a parsed projection text. It is read-only once built and safe for
// concurrent queries.
type Tree struct {
	roots []*Node
	bfs   []*Node // breadth-first order
	paths map[string]*Node
}

// Parse builds a tree from text. On any structural failure it returns an
// empty, non-nil tree together with the error.
func Parse(text string) (*Tree, error) {
	tokens, err := Scan(text)
	if err != nil {
		logger.L().Debug("projection text rejected", zap.Error(err))
		return &Tree{}, err
	}
	roots, err := build(tokens)
	if err != nil {
		logger.L().Debug("projection text rejected", zap.Error(err))
		return &Tree{}, err
	}
	return newTree(roots), nil
}

// ParseFile reads and parses a .prj file. A missing file yields an error
// satisfying errors.Is(err, os.ErrNotExist) and an empty tree.
func ParseFile(path string) (*Tree, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return &Tree{}, errors.Wrapf(err, "prj: read %s", path)
	}
	t, err := Parse(string(b))
	if err != nil {
		return t, errors.Wrapf(err, "prj: parse %s", path)
	}
	return t, nil
}

func build(tokens []Token) ([]*Node, error) {
	var (
		roots []*Node
		stack []*Node
		last  *Node // tag awaiting its bracket
	)
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenTag:
			parent := RootParent
			if len(stack) > 0 {
				parent = stack[len(stack)-1].Name
			}
			last = &Node{Name: tok.Text, Parent: parent}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, last)
			} else {
				roots = append(roots, last)
			}
		case TokenOpen:
			if last == nil {
				return nil, &ParseError{Offset: tok.Offset, Msg: "bracket without tag name"}
			}
			stack = append(stack, last)
			last = nil
		case TokenLiteral:
			if len(stack) == 0 {
				return nil, &ParseError{Offset: tok.Offset, Msg: "value outside brackets"}
			}
			top := stack[len(stack)-1]
			if len(top.Children) == 0 {
				top.Attributes = append(top.Attributes, tok.Text)
			}
		case TokenClose:
			if len(stack) == 0 {
				return nil, &ParseError{Offset: tok.Offset, Msg: "unmatched close"}
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return nil, &ParseError{Msg: "unclosed " + stack[len(stack)-1].Name}
	}
	return roots, nil
}

// newTree assigns paths breadth-first and indexes every node by path.
func newTree(roots []*Node) *Tree {
	t := &Tree{roots: roots, paths: make(map[string]*Node)}
	queue := make([]*Node, 0, len(roots))
	for i, r := range roots {
		r.Path = strconv.Itoa(i)
		queue = append(queue, r)
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		t.bfs = append(t.bfs, n)
		t.paths[n.Path] = n
		for i, c := range n.Children {
			c.Path = n.Path + PathSeparator + strconv.Itoa(i)
			queue = append(queue, c)
		}
	}
	return t
}

// Empty reports whether the tree has no nodes, which is how a failed parse
// or missing file presents.
func (t *Tree) Empty() bool { return len(t.bfs) == 0 }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.bfs) }

// Roots returns the top-level nodes.
func (t *Tree) Roots() []*Node { return t.roots }

// Lookup returns the node at path.
func (t *Tree) Lookup(path string) (*Node, bool) {
	n, ok := t.paths[path]
	return n, ok
}

// Walk visits nodes depth-first in document order. Returning false from fn
// skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range t.roots {
		walk(r, 0)
	}
}

// Find returns every node named tag, in breadth-first order.
func (t *Tree) Find(tag string) []*Node {
	var out []*Node
	for _, n := range t.bfs {
		if n.Name == tag {
			out = append(out, n)
		}
	}
	return out
}

// FindWithAttribute returns nodes named tag whose parent is named parent and
// whose first attribute equals attr, ignoring case. An empty parent matches
// any parent.
func (t *Tree) FindWithAttribute(parent, tag, attr string) []*Node {
	var out []*Node
	for _, n := range t.bfs {
		if n.Name != tag || (parent != "" && n.Parent != parent) {
			continue
		}
		if len(n.Attributes) > 0 && strings.EqualFold(n.Attributes[0], attr) {
			out = append(out, n)
		}
	}
	return out
}

// Value returns attribute n of the first node named tag.
func (t *Tree) Value(tag string, n int) (string, bool) {
	return t.ValueIn("", tag, n)
}

// ValueIn returns attribute n of the first node named tag under a node named
// parent.
func (t *Tree) ValueIn(parent, tag string, n int) (string, bool) {
	for _, node := range t.bfs {
		if node.Name == tag && (parent == "" || node.Parent == parent) {
			return node.Attribute(n)
		}
	}
	return "", false
}

// ValueOf returns attribute n of the first node found by FindWithAttribute,
// e.g. ValueOf("PROJCS", "PARAMETER", "False_Easting", 1).
func (t *Tree) ValueOf(parent, tag, attr string, n int) (string, bool) {
	nodes := t.FindWithAttribute(parent, tag, attr)
	if len(nodes) == 0 {
		return "", false
	}
	return nodes[0].Attribute(n)
}
