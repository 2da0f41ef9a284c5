package spec

import (
	"cmp"
	"strings"
)

// NormalSelector represents a single selector in a normalized path.
// Implemented by [Name] and [Index].
type NormalSelector interface {
	// writeNormalizedTo writes n to buf formatted as a [normalized path] element.
	//
	// [normalized path]: https://www.rfc-editor.org/rfc/rfc9535#section-2.7
	writeNormalizedTo(buf *strings.Builder)

	// writePointerTo writes n to buf formatted as an RFC 6901 JSON Pointer
	// reference token.
	writePointerTo(buf *strings.Builder)
}

// NormalizedPath represents a normalized path identifying a single value in a
// JSON query argument, as [defined by RFC 9535].
//
// [defined by RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535#name-normalized-paths
type NormalizedPath []NormalSelector

// Normalized builds a [NormalizedPath] from sels.
func Normalized(sels ...NormalSelector) NormalizedPath {
	return NormalizedPath(sels)
}

// String returns the string representation of np.
func (np NormalizedPath) String() string {
	buf := new(strings.Builder)
	buf.WriteRune('$')
	for _, e := range np {
		e.writeNormalizedTo(buf)
	}
	return buf.String()
}

// Pointer returns np rendered as an [RFC 6901] JSON Pointer string, e.g.
// "/store/book/0/title" for the normalized path $['store']['book'][0]['title'].
//
// [RFC 6901]: https://www.rfc-editor.org/rfc/rfc6901
func (np NormalizedPath) Pointer() string {
	buf := new(strings.Builder)
	for _, e := range np {
		buf.WriteRune('/')
		e.writePointerTo(buf)
	}
	return buf.String()
}

// compareStep orders a single pair of normalized-path elements: an [Index]
// always sorts before a [Name], and two elements of the same kind compare
// by value.
func compareStep(a, b NormalSelector) int {
	ai, aIsIndex := a.(Index)
	bi, bIsIndex := b.(Index)
	switch {
	case aIsIndex && bIsIndex:
		return cmp.Compare(ai, bi)
	case aIsIndex:
		return -1
	case bIsIndex:
		return 1
	default:
		return cmp.Compare(a.(Name), b.(Name))
	}
}

// Compare compares np to np2 and returns -1 if np is less than np2, 1 if it's
// greater than np2, and 0 if they're equal. Indexes are always considered
// less than names.
func (np NormalizedPath) Compare(np2 NormalizedPath) int {
	for i, step := range np {
		if i >= len(np2) {
			return 1
		}
		if x := compareStep(step, np2[i]); x != 0 {
			return x
		}
	}
	if len(np2) > len(np) {
		return -1
	}
	return 0
}

// MarshalText marshals np into text. It implements [encoding.TextMarshaler].
func (np NormalizedPath) MarshalText() ([]byte, error) {
	return []byte(np.String()), nil
}

// LocatedNode pairs a value with its location within the JSON query argument
// from which it was selected.
type LocatedNode struct {
	// Node is the value selected from a JSON query argument.
	Node any `json:"node"`

	// Path is the normalized path that uniquely identifies the location of
	// Node in a JSON query argument.
	Path NormalizedPath `json:"path"`
}

// newLocatedNode creates and returns a new [LocatedNode]. It makes a copy of
// path so appending further steps for sibling nodes can't alias it.
func newLocatedNode(path NormalizedPath, node any) *LocatedNode {
	return &LocatedNode{
		Path: append(make(NormalizedPath, 0, len(path)+1), path...),
		Node: node,
	}
}
