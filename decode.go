package jsonpath

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/rfc9535/jsonpath/spec"
)

// DecodeOrdered reads a single JSON value from r and returns it as an any
// built from nil, bool, float64, string, []any, and [spec.Object], an
// insertion-ordered object map, rather than the order-erasing map[string]any
// produced by [encoding/json]. RFC 9535 leaves the order selectors such as
// $.store.* or $..* visit object members in up to the implementation; this
// decoder preserves the source document's member order so those queries
// return results in document order instead of Go's randomized map order.
// [Path.Select] and [Path.SelectLocated] accept the result directly, along
// with any other any value built from the same six kinds (including plain
// map[string]any, for callers who don't need ordering guarantees).
func DecodeOrdered(r io.Reader) (any, error) {
	dec := jsontext.NewDecoder(r)
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("could not decode JSON contents: %w", err)
	}
	return v, nil
}

// DecodeOrderedString is [DecodeOrdered] for a JSON document already in
// memory as a string.
func DecodeOrderedString(src string) (any, error) {
	return DecodeOrdered(strings.NewReader(src))
}

// decodeValue reads and returns the next complete JSON value from dec.
func decodeValue(dec *jsontext.Decoder) (any, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}

	switch tok.Kind() {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	case '"':
		return tok.String(), nil
	case '0':
		return tok.Float(), nil
	case 't', 'f':
		return tok.Bool(), nil
	case 'n':
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

// decodeObject reads the members of a JSON object from dec, having already
// consumed its opening brace, and returns them as a [spec.Object] that
// preserves member order.
func decodeObject(dec *jsontext.Decoder) (*spec.Object, error) {
	obj := spec.NewObject()
	for dec.PeekKind() != '}' {
		name, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(name.String(), val)
	}
	if _, err := dec.ReadToken(); err != nil { // consume '}'
		return nil, err
	}
	return obj, nil
}

// decodeArray reads the elements of a JSON array from dec, having already
// consumed its opening bracket, and returns them as a []any.
func decodeArray(dec *jsontext.Decoder) ([]any, error) {
	arr := []any{}
	for dec.PeekKind() != ']' {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.ReadToken(); err != nil { // consume ']'
		return nil, err
	}
	return arr, nil
}
