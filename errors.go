package jsonpath

import "github.com/rfc9535/jsonpath/parser"

// ErrPathParse errors are returned when a JSONPath query fails to parse.
// Use [errors.Is] to test for it.
var ErrPathParse = parser.ErrPathParse
