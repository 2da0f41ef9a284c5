package main

import (
	"io"

	"github.com/rfc9535/jsonpath"
)

// decodeOrdered reads a single JSON value from r, preserving object member
// order via [jsonpath.DecodeOrdered] so that queries such as $.store.* or
// $..* print results in document order.
func decodeOrdered(r io.Reader) (any, error) {
	return jsonpath.DecodeOrdered(r)
}
