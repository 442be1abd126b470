// Command exprc compiles every paint/filter expression in a YAML style
// document and reports, per layer, either the compiled type and constancy
// flags or the compile-time diagnostics.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/cartoexpr/mapexpr/pkg/expr"
)

// Layer is one named style layer: its paint and/or filter expression, each
// a JSON-shaped value even though the document itself is YAML.
type Layer struct {
	Paint  interface{} `yaml:"paint"`
	Filter interface{} `yaml:"filter"`
}

// Document is a style document: a set of named layers.
type Document struct {
	Layers map[string]Layer `yaml:"layers"`
}

func main() {
	listOperators := flag.Bool("list-operators", false, "print every built-in operator name and exit")
	path := flag.String("file", "", "path to a YAML style document (default: stdin)")
	flag.Parse()

	color := isatty.IsTerminal(os.Stdout.Fd())

	if *listOperators {
		names := expr.Operators()
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	var data []byte
	var err error
	if *path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*path)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "exprc:", err)
		os.Exit(1)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		fmt.Fprintln(os.Stderr, "exprc: invalid style document:", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(doc.Layers))
	for name := range doc.Layers {
		names = append(names, name)
	}
	sort.Strings(names)

	failures := 0
	for _, name := range names {
		layer := doc.Layers[name]
		if layer.Paint != nil {
			if !report(name, "paint", layer.Paint, color) {
				failures++
			}
		}
		if layer.Filter != nil {
			if !report(name, "filter", layer.Filter, color) {
				failures++
			}
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func report(layer, field string, expression interface{}, color bool) bool {
	result := expr.Compile(expression)
	if result.Result == "success" {
		fmt.Printf("%s.%s: %s (isFeatureConstant=%v, isZoomConstant=%v)\n",
			layer, field, result.Type.String(), result.IsFeatureConstant, result.IsZoomConstant)
		return true
	}

	for _, d := range result.Errors {
		if color {
			fmt.Printf("\x1b[31m%s.%s[%s]: %s\x1b[0m\n", layer, field, d.Key, d.Error)
		} else {
			fmt.Printf("%s.%s[%s]: %s\n", layer, field, d.Key, d.Error)
		}
	}
	return false
}
