// Package main runs a single JSONPath query as a smoke test that this
// module cross-compiles cleanly to the Wasm target.
package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/rfc9535/jsonpath"
)

func main() {
	path, err := jsonpath.Parse(`$.foo`)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := jsonpath.DecodeOrderedString(`{"foo": "bar"}`)
	if err != nil {
		log.Fatal(err)
	}

	result := path.Select(doc)

	items, err := json.Marshal(result)
	if err != nil {
		log.Fatal(err)
	}
	//nolint:forbidigo
	fmt.Printf("%s\n", items)
}
