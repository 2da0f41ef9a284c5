package spec

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Object represents a JSON object as an insertion-ordered sequence of
// string-keyed members, as required by [RFC 9535 Section 2.3.2] and
// [Section 2.5.2] wherever a wildcard or descendant segment visits an
// object's members: the visitation order must be consistent, and this type
// is how that order survives round trips through the evaluator.
//
// The zero value is an empty Object ready to use.
//
// [RFC 9535 Section 2.3.2]: https://www.rfc-editor.org/rfc/rfc9535.html#name-wildcard-selector
// [Section 2.5.2]: https://www.rfc-editor.org/rfc/rfc9535.html#name-descendant-segment
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns a new, empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Set inserts or updates the value for key. The position of key among
// o.Keys is fixed by its *first* Set call; subsequent calls with the same
// key update the value in place without moving it. This makes Object
// first-wins for position and last-wins for value when callers build one
// from a source that repeats a key, resolving the duplicate-key ambiguity
// [RFC 9535] leaves to implementations.
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
func (o *Object) Set(key string, val any) {
	if o.vals == nil {
		o.vals = make(map[string]any)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = val
}

// Get returns the value stored for key and whether it was present.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.vals[key]
	return v, ok
}

// Len returns the number of members in o.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns o's member names in insertion order. The caller must not
// modify the returned slice.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Range calls fn for each member of o in insertion order, stopping early if
// fn returns false.
func (o *Object) Range(fn func(key string, val any) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !fn(k, o.vals[k]) {
			return
		}
	}
}

// Equal reports whether o and o2 have the same members, ignoring order, as
// required for object equality by [RFC 9535 Section 2.3.5.2.2]'s comparison
// rules (objects compare as unordered member sets, unlike arrays).
//
// [RFC 9535 Section 2.3.5.2.2]: https://www.rfc-editor.org/rfc/rfc9535.html#name-comparisons
func (o *Object) Equal(o2 *Object) bool {
	if o.Len() != o2.Len() {
		return false
	}
	for _, k := range o.keys {
		v1 := o.vals[k]
		v2, ok := o2.vals[k]
		if !ok || !deepEqual(v1, v2) {
			return false
		}
	}
	return true
}

// MarshalJSON implements [json.Marshaler], rendering o's members in
// insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// objectFromMap builds an Object from a native Go map, the representation
// [encoding/json] produces when a host unmarshals into `any`. Go
// deliberately randomizes map iteration order between ranges, which would
// break the determinism [RFC 9535] Testable Property requires, so the keys
// are sorted lexically instead: a documented, stable fallback order for
// hosts that did not preserve the source document's own order. Hosts that
// need true document order should build an [Object] directly (see
// [Normalize] and the CLI's decoder, which does this via
// github.com/go-json-experiment/json's streaming token reader).
func objectFromMap(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := &Object{keys: keys, vals: make(map[string]any, len(m))}
	for _, k := range keys {
		o.vals[k] = Normalize(m[k])
	}
	return o
}

// Normalize recursively converts v into the value representation the
// evaluator consumes: [map[string]any] values become [*Object] (see
// [objectFromMap] for the ordering caveat), []any values are copied with
// their elements normalized, and any [*Object] is normalized in place.
// Scalars (string, bool, nil, and any numeric type) pass through unchanged.
//
// Every selector and the descendant walker switch on both map[string]any
// and *Object directly, so calling Normalize before Path.Select is optional;
// a host calls it only when it wants map[string]any's unspecified iteration
// order replaced by Object's documented lexical fallback, or when preparing
// a document for round-tripping through [Object.MarshalJSON].
func Normalize(v any) any {
	switch val := v.(type) {
	case *Object:
		for _, k := range val.keys {
			val.vals[k] = Normalize(val.vals[k])
		}
		return val
	case map[string]any:
		return objectFromMap(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Normalize(e)
		}
		return out
	default:
		return v
	}
}

// deepEqual reports whether a and b are equal JSON values per [RFC 9535]'s
// comparison rules: numbers compare by mathematical value, strings by
// code point sequence, arrays element-wise and order-sensitive, objects by
// unordered member equality, and everything else by Go equality.
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html#name-comparisons
func deepEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}

	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		return ok && av.Equal(bv)
	default:
		return a == b
	}
}
