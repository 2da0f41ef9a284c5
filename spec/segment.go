package spec

import (
	"strings"
)

// Segment represents a single segment as defined in [RFC 9535 Section 1.4.2],
// consisting of a list of [Selector] values.
//
// [RFC 9535 Section 1.4.2]: https://www.rfc-editor.org/rfc/rfc9535.html#name-segments
type Segment struct {
	selectors  []Selector
	descendant bool
}

// Child creates and returns a [Segment] that uses sel to select values from a
// JSON object or array.
func Child(sel ...Selector) *Segment {
	return &Segment{selectors: sel}
}

// Descendant creates and returns a [Segment] that uses sel to select values
// from a JSON object or array or any of its descendant objects and arrays.
func Descendant(sel ...Selector) *Segment {
	return &Segment{selectors: sel, descendant: true}
}

// Selectors returns s's [Selector] values.
func (s *Segment) Selectors() []Selector {
	return s.selectors
}

// IsDescendant returns true if the segment is a [Descendant] selector that
// recursively select the children of a JSON value.
func (s *Segment) IsDescendant() bool { return s.descendant }

// String returns a string representation of seg. A [Child] [Segment]
// formats as:
//
//	[<selectors>]
//
// A [Descendant] [Segment] formats as:
//
//	..[<selectors>]
func (s *Segment) String() string {
	buf := new(strings.Builder)
	s.writeTo(buf)
	return buf.String()
}

// writeTo writes a string representation of s to buf.
func (s *Segment) writeTo(buf *strings.Builder) {
	if s.descendant {
		buf.WriteString("..")
	}
	buf.WriteByte('[')
	for i, sel := range s.selectors {
		if i > 0 {
			buf.WriteByte(',')
		}
		sel.writeTo(buf)
	}
	buf.WriteByte(']')
}

// Select selects and returns values from current or root, for each of s's
// selectors, followed by the results of a recursive descent through
// current's children when s is a [Descendant] segment. Defined by the
// [Selector] interface.
func (s *Segment) Select(current, root any) []any {
	ret := []any{}
	for _, sel := range s.selectors {
		ret = append(ret, sel.Select(current, root)...)
	}
	if s.descendant {
		eachChild(current, func(_ Selector, child any) {
			ret = append(ret, s.Select(child, root)...)
		})
	}
	return ret
}

// SelectLocated selects and returns values as [LocatedNode] values from
// current or root for each of seg's selectors, followed by the results of a
// recursive descent through current's children when s is a [Descendant]
// segment. Defined by the [Selector] interface.
func (s *Segment) SelectLocated(current, root any, parent NormalizedPath) []*LocatedNode {
	ret := []*LocatedNode{}
	for _, sel := range s.selectors {
		ret = append(ret, sel.SelectLocated(current, root, parent)...)
	}
	if s.descendant {
		eachChild(current, func(step Selector, child any) {
			ret = append(ret, s.SelectLocated(child, root, append(parent, step))...)
		})
	}
	return ret
}

// eachChild calls visit once for every immediate child of val, in
// deterministic document order: array elements by ascending index, then
// object members. *Object members iterate in the object's insertion order;
// a plain map[string]any falls back to Go's native (single-run-consistent
// but unspecified across runs) map iteration order, since it carries no
// record of how its source document ordered its members. visit receives
// the [Selector] (an [Index] or a [Name]) that would locate child from val,
// so callers building located paths and callers that only need the child's
// value can share one traversal.
func eachChild(val any, visit func(step Selector, child any)) {
	switch v := val.(type) {
	case []any:
		for i, child := range v {
			visit(Index(i), child)
		}
	case *Object:
		v.Range(func(k string, child any) bool {
			visit(Name(k), child)
			return true
		})
	case map[string]any:
		for k, child := range v {
			visit(Name(k), child)
		}
	}
}

// isSingular returns true if the segment selects at most one node. Defined by
// the [Selector] interface.
func (s *Segment) isSingular() bool {
	if s.descendant || len(s.selectors) != 1 {
		return false
	}
	return s.selectors[0].isSingular()
}
