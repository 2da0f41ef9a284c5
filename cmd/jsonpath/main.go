// Package main implements a simple command-line utility that allows one to extract
// data from an arbitrary JSON body read from a file argument or piped into it.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rfc9535/jsonpath"
	"github.com/urfave/cli/v2"
)

// pathsFlag selects normalized-path output instead of value output.
const pathsFlag = "paths"

func main() {
	app := &cli.App{
		Name:      "jsonpath",
		Usage:     "extracting data from JSON according to RFC-9535",
		UsageText: "jsonpath [--paths] QUERY [FILE]",
		Version:   gitrev(),
		Action:    parseAndPrint,
		Args:      true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  pathsFlag,
				Usage: "print the normalized path of each result instead of its value",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprint(os.Stderr, err.Error()+"\n")
		os.Exit(1)
	}
}

// gitrev reports the revision this binary was built from, read from the
// embedded build info rather than a linker-injected version string.
func gitrev() string {
	version := "(git revision unavailable)"

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, kv := range bi.Settings {
			if kv.Key == "vcs.revision" {
				version = kv.Value
			}
		}
	}

	return version
}

// parseAndPrint is the app's [cli.ActionFunc]: it compiles the query
// argument, applies it to the JSON document read from the file argument (or
// from stdin when there is none), and writes the result to stdout as a JSON
// array, either of matched values or, with --paths, of the normalized paths
// that located them.
func parseAndPrint(ctx *cli.Context) error {
	q := ctx.Args().First()
	if q == "" {
		cli.ShowAppHelpAndExit(ctx, 1)
	}
	p := jsonpath.NewParser().MustParse(q)

	in, src := os.Stdin, "stdin"
	if path := ctx.Args().Get(1); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("could not open %v: %w", path, err)
		}
		defer f.Close()
		in, src = f, path
	}

	doc, err := decodeOrdered(in)
	if err != nil {
		return fmt.Errorf("could not read JSON body from %v: %w", src, err)
	}

	var out any
	if ctx.Bool(pathsFlag) {
		out = pathStrings(p.SelectLocated(doc))
	} else {
		out = p.Select(doc)
	}

	items, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("could not marshal results to JSON: %w", err)
	}
	fmt.Printf("%s\n", items) //nolint:forbidigo

	return nil
}

// pathStrings renders each located node's normalized path as a string, for
// --paths output.
func pathStrings(nodes jsonpath.LocatedNodeList) []string {
	paths := make([]string, 0, len(nodes))
	for path := range nodes.Paths() {
		paths = append(paths, path.String())
	}
	return paths
}
