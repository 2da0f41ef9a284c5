package jsonpath

import "iter"

// Find parses path and selects the matching values from input in a single
// call. It is a convenience wrapper around [Parse] and [Path.Select] for
// callers that compile a query only once; reuse [Parse] directly to apply
// the same query to many documents.
func Find(path string, input any) (NodeList, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.Select(input), nil
}

// FindOne parses path and returns the first value it selects from input.
// The second return value reports whether path matched anything in input;
// when it is false the returned value is nil.
func FindOne(path string, input any) (any, bool, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, false, err
	}
	nodes := p.Select(input)
	if len(nodes) == 0 {
		return nil, false, nil
	}
	return nodes[0], true, nil
}

// FindSeq parses path and returns an [iter.Seq] over the values it selects
// from input, in selection order. The query is compiled and fully applied
// before FindSeq returns; the sequence itself just replays the resulting
// [NodeList].
func FindSeq(path string, input any) (iter.Seq[any], error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.Select(input).All(), nil
}
