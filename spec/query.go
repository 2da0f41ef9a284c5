package spec

import "strings"

// PathQuery represents a JSONPath expression: a root or relative query
// together with the chain of segments applied to it.
type PathQuery struct {
	segments []*Segment
	root     bool
}

// Query returns a new query consisting of segments. root distinguishes a
// "$"-rooted jsonpath-query from an "@"-rooted rel-query used inside a
// filter expression.
func Query(root bool, segments ...*Segment) *PathQuery {
	return &PathQuery{root: root, segments: segments}
}

// Segments returns q's Segments.
func (q *PathQuery) Segments() []*Segment {
	return q.segments
}

// String returns a string representation of q.
func (q *PathQuery) String() string {
	buf := new(strings.Builder)
	if q.root {
		buf.WriteRune('$')
	} else {
		buf.WriteRune('@')
	}
	for _, s := range q.segments {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// start resolves the node q's first segment applies to: root when q is a
// root query, current otherwise.
func (q *PathQuery) start(current, root any) any {
	if q.root {
		return root
	}
	return current
}

// reduceSegments feeds start through each of segs in turn, collecting every
// intermediate result produced by step and feeding all of them into the
// next segment. It underlies both [PathQuery.Select] and
// [PathQuery.SelectLocated], which differ only in the node type T they
// thread through the chain (a bare value vs. a [LocatedNode]) and in how
// step invokes the segment.
func reduceSegments[T any](segs []*Segment, start T, step func(*Segment, T) []T) []T {
	res := []T{start}
	for _, seg := range segs {
		next := []T{}
		for _, v := range res {
			next = append(next, step(seg, v)...)
		}
		res = next
	}
	return res
}

// Select selects q.segments from current or root and returns the result.
// Returns just the starting node if q has no segments. Defined by the
// [Selector] interface.
func (q *PathQuery) Select(current, root any) []any {
	return reduceSegments(q.segments, q.start(current, root), func(seg *Segment, v any) []any {
		return seg.Select(v, root)
	})
}

// SelectLocated selects q.segments from current or root and returns the
// result as [LocatedNode] values, with paths prefixed by parent. Defined by
// the [Selector] interface.
func (q *PathQuery) SelectLocated(current, root any, parent NormalizedPath) []*LocatedNode {
	start := &LocatedNode{Node: q.start(current, root), Path: parent}
	return reduceSegments(q.segments, start, func(seg *Segment, ln *LocatedNode) []*LocatedNode {
		return seg.SelectLocated(ln.Node, root, ln.Path)
	})
}

// isSingular returns true if q always returns at most one value. Defined by
// the [Selector] interface.
func (q *PathQuery) isSingular() bool {
	for _, s := range q.segments {
		if !s.isSingular() {
			return false
		}
	}
	return true
}

// Singular returns a [SingularQueryExpr] variant of q if [PathQuery.isSingular]
// returns true, and nil otherwise.
func (q *PathQuery) Singular() *SingularQueryExpr {
	if !q.isSingular() {
		return nil
	}
	return singular(q)
}

// Expression returns a [SingularQueryExpr] variant of q when q is singular,
// and otherwise wraps q as a filterQuery. Used to build the comparable or
// existence-testable representation of a query encountered in a filter
// expression or function argument.
func (q *PathQuery) Expression() FunctionExprArg {
	if q.isSingular() {
		return singular(q)
	}
	return FilterQuery(q)
}

// singular converts q, which must be singular, into a [SingularQueryExpr].
func singular(q *PathQuery) *SingularQueryExpr {
	selectors := make([]Selector, len(q.segments))
	for i, s := range q.segments {
		selectors[i] = s.selectors[0]
	}
	return &SingularQueryExpr{selectors: selectors, relative: !q.root}
}
