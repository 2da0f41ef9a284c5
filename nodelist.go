package jsonpath

import (
	"iter"
	"slices"

	"github.com/rfc9535/jsonpath/spec"
)

// NodeList is a list of values selected from JSON data by [Path.Select].
type NodeList []any

// All returns an [iter.Seq] that iterates over the values in list.
func (list NodeList) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, node := range list {
			if !yield(node) {
				return
			}
		}
	}
}

// LocatedNodeList is a list of values selected from JSON data by
// [Path.SelectLocated], each paired with the normalized path that
// identifies its location.
type LocatedNodeList []*spec.LocatedNode

// All returns an [iter.Seq] that iterates over the [spec.LocatedNode] values
// in list.
func (list LocatedNodeList) All() iter.Seq[*spec.LocatedNode] {
	return func(yield func(*spec.LocatedNode) bool) {
		for _, node := range list {
			if !yield(node) {
				return
			}
		}
	}
}

// Nodes returns an [iter.Seq] that iterates over the selected values in
// list, omitting their paths.
func (list LocatedNodeList) Nodes() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, node := range list {
			if !yield(node.Node) {
				return
			}
		}
	}
}

// Paths returns an [iter.Seq] that iterates over the normalized paths of
// the nodes in list, omitting the selected values themselves.
func (list LocatedNodeList) Paths() iter.Seq[spec.NormalizedPath] {
	return func(yield func(spec.NormalizedPath) bool) {
		for _, node := range list {
			if !yield(node.Path) {
				return
			}
		}
	}
}

// Clone returns a copy of list.
func (list LocatedNodeList) Clone() LocatedNodeList {
	return slices.Clone(list)
}

// Deduplicate removes nodes from list with duplicate normalized paths,
// retaining the first occurrence of each path, and returns the result. It
// modifies the contents of list, zeroing out the elements beyond the
// returned length, and should generally be used as list = list.Deduplicate().
func (list LocatedNodeList) Deduplicate() LocatedNodeList {
	seen := make(map[string]struct{}, len(list))
	n := 0
	for _, node := range list {
		key := node.Path.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		list[n] = node
		n++
	}

	for i := n; i < len(list); i++ {
		list[i] = nil
	}

	return list[:n]
}

// Sort sorts list in place by the normalized paths of its nodes, as defined
// by [spec.NormalizedPath.Compare].
func (list LocatedNodeList) Sort() {
	slices.SortFunc(list, func(a, b *spec.LocatedNode) int {
		return a.Path.Compare(b.Path)
	})
}
