// Package main builds the Wasm binding exposed to the browser: a single
// global "query" function that runs a JSONPath query against a JSON
// document and returns the result serialized back to JSON.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/rfc9535/jsonpath"
)

// Option bits passed as the third argument to the "query" JS function.
const (
	optIndent int = 1 << iota
	optLocated
)

func main() {
	stream := make(chan struct{})

	js.Global().Set("query", js.FuncOf(runQuery))
	js.Global().Set("optIndent", js.ValueOf(optIndent))
	js.Global().Set("optLocated", js.ValueOf(optLocated))

	<-stream
}

// runQuery adapts the JS call (selector string, document string, option
// bits) to [execute]. It's the [js.Func] registered as the global "query".
func runQuery(_ js.Value, args []js.Value) any {
	selector := args[0].String()
	document := args[1].String()
	opts := args[2].Int()

	return execute(selector, document, opts)
}

// execute parses document and selector, applies selector to document, and
// returns the serialized result (values by default, normalized paths when
// opts carries optLocated), or a human-readable error string on failure.
func execute(selector, document string, opts int) string {
	value, err := jsonpath.DecodeOrderedString(document)
	if err != nil {
		return fmt.Sprintf("Error parsing JSON: %v", err)
	}

	path, err := jsonpath.Parse(selector)
	if err != nil {
		return fmt.Sprintf("Error parsing %v", err)
	}

	var result any
	if opts&optLocated == optLocated {
		var paths []string
		for p := range path.SelectLocated(value).Paths() {
			paths = append(paths, p.String())
		}
		result = paths
	} else {
		result = path.Select(value)
	}

	return encode(result, opts)
}

// encode serializes result as JSON, indenting when opts carries optIndent.
func encode(result any, opts int) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts&optIndent == optIndent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return fmt.Sprintf("Error parsing results: %v", err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
