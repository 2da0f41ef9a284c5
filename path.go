// Package jsonpath implements [RFC 9535] JSONPath query expressions: parsing
// query strings into reusable [Path] values and executing them against
// unmarshaled JSON data (any value built from nil, bool, string, float64 (or
// [encoding/json.Number]), []any, and map[string]any, or the ordered
// [github.com/rfc9535/jsonpath/spec.Object]).
//
// Parse a query with [Parse] or [MustParse], or construct a [Parser] with
// [NewParser] to reuse a custom function extension registry across multiple
// queries. Execute a parsed [Path] against JSON data with [Path.Select] or
// [Path.SelectLocated].
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
package jsonpath

import "github.com/rfc9535/jsonpath/spec"

// Path represents a parsed [RFC 9535] JSONPath query, ready to be executed
// against JSON data any number of times via [Path.Select] or
// [Path.SelectLocated].
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
type Path struct {
	q *spec.PathQuery
}

// New creates and returns a new [Path] that executes q.
func New(q *spec.PathQuery) *Path {
	return &Path{q: q}
}

// String returns the string representation of p.
func (p *Path) String() string {
	return p.q.String()
}

// Query returns p's underlying [spec.PathQuery].
func (p *Path) Query() *spec.PathQuery {
	return p.q
}

// Select executes p against input, a JSON value built from data unmarshaled
// by [encoding/json] (or the compatible subset produced by
// [github.com/rfc9535/jsonpath/spec.Normalize]), and returns the selected
// values.
func (p *Path) Select(input any) NodeList {
	return NodeList(p.q.Select(nil, input))
}

// SelectLocated executes p against input and returns the selected values
// together with the normalized paths that identify their locations in
// input.
func (p *Path) SelectLocated(input any) LocatedNodeList {
	return LocatedNodeList(p.q.SelectLocated(nil, input, spec.NormalizedPath{}))
}

// MarshalText returns the string representation of p as text. Implements
// [encoding.TextMarshaler].
func (p *Path) MarshalText() ([]byte, error) {
	return []byte(p.q.String()), nil
}

// UnmarshalText parses text as a JSONPath query using the default function
// extension registry and assigns the result to p. Implements
// [encoding.TextUnmarshaler].
func (p *Path) UnmarshalText(text []byte) error {
	path, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = *path
	return nil
}

// MarshalBinary returns the string representation of p as bytes. Implements
// [encoding.BinaryMarshaler].
func (p *Path) MarshalBinary() ([]byte, error) {
	return p.MarshalText()
}

// UnmarshalBinary parses data as a JSONPath query using the default function
// extension registry and assigns the result to p. Implements
// [encoding.BinaryUnmarshaler].
func (p *Path) UnmarshalBinary(data []byte) error {
	return p.UnmarshalText(data)
}
