// Package diag defines the single diagnostic shape used across parsing,
// checking and compiling: {key, error}. Nothing in this package ever
// panics or throws; it is plain data, collected by callers into a
// Diagnostics slice and sorted for deterministic output.
package diag

import (
	"fmt"
	"sort"
)

// Diagnostic is one compile-time error, keyed by the dotted path of the
// node that produced it.
type Diagnostic struct {
	Key   string
	Error string
}

// Diagnostics is an ordered list of compile-time errors.
type Diagnostics []Diagnostic

// Add appends a new diagnostic.
func (d *Diagnostics) Add(key, format string, args ...interface{}) {
	*d = append(*d, Diagnostic{Key: key, Error: fmt.Sprintf(format, args...)})
}

// Sort orders diagnostics by key then message, so that repeated
// compilations of an invalid expression produce byte-identical output.
func (d Diagnostics) Sort() {
	sort.Slice(d, func(i, j int) bool {
		if d[i].Key != d[j].Key {
			return d[i].Key < d[j].Key
		}
		return d[i].Error < d[j].Error
	})
}
