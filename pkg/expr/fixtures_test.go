package expr_test

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/cartoexpr/mapexpr/internal/color"
	"github.com/cartoexpr/mapexpr/pkg/expr"
)

// update regenerates every testdata/*.txtar fixture's "want" section from
// the engine's current behavior.
var update = flag.Bool("update", false, "update fixture want sections")

// TestFixtures bundles each end-to-end scenario — expression JSON, optional
// mapProperties/feature JSON, and the expected compile/evaluate outcome —
// into one txtar archive per testdata/*.txtar file.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found under testdata/")
	}

	for _, path := range paths {
		path := path
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			runFixture(t, path)
		})
	}
}

func runFixture(t *testing.T, path string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	archive := txtar.Parse(raw)

	exprFile := fixtureFile(archive, "expr.json")
	if exprFile == nil {
		t.Fatalf("fixture %s has no expr.json section", path)
	}

	var expression interface{}
	if err := json.Unmarshal(exprFile, &expression); err != nil {
		t.Fatalf("invalid expr.json: %v", err)
	}

	mapProperties := map[string]interface{}{}
	if f := fixtureFile(archive, "mapProperties.json"); f != nil {
		if err := json.Unmarshal(f, &mapProperties); err != nil {
			t.Fatalf("invalid mapProperties.json: %v", err)
		}
	}

	var feature expr.Feature
	if f := fixtureFile(archive, "feature.json"); f != nil {
		if err := json.Unmarshal(f, &feature); err != nil {
			t.Fatalf("invalid feature.json: %v", err)
		}
	}

	got := renderOutcome(expression, mapProperties, feature)

	if *update {
		writeWant(t, archive, path, got)
		return
	}

	want := string(fixtureFile(archive, "want"))
	if got != want {
		t.Fatalf("outcome mismatch (run with -update to regenerate):\n got:\n%s\nwant:\n%s", got, want)
	}
}

func fixtureFile(archive *txtar.Archive, name string) []byte {
	for _, f := range archive.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}

func writeWant(t *testing.T, archive *txtar.Archive, path, got string) {
	t.Helper()
	found := false
	for i, f := range archive.Files {
		if f.Name == "want" {
			archive.Files[i].Data = []byte(got)
			found = true
		}
	}
	if !found {
		archive.Files = append(archive.Files, txtar.File{Name: "want", Data: []byte(got)})
	}
	if err := os.WriteFile(path, txtar.Format(archive), 0o644); err != nil {
		t.Fatalf("updating fixture: %v", err)
	}
}

// renderOutcome compiles and, on success, evaluates expression, formatting
// the result the same deterministic way regardless of run, which is what
// makes the fixture diffable at all.
func renderOutcome(expression interface{}, mapProperties map[string]interface{}, feature expr.Feature) string {
	c := expr.Compile(expression)
	if c.Result != "success" {
		var b strings.Builder
		fmt.Fprintln(&b, "result: error")
		errs := append([]expr.Diagnostic(nil), c.Errors...)
		sort.Slice(errs, func(i, j int) bool {
			if errs[i].Key != errs[j].Key {
				return errs[i].Key < errs[j].Key
			}
			return errs[i].Error < errs[j].Error
		})
		for _, e := range errs {
			fmt.Fprintf(&b, "%s: %s\n", e.Key, e.Error)
		}
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintln(&b, "result: success")
	fmt.Fprintf(&b, "type: %s\n", c.Type.String())
	fmt.Fprintf(&b, "isFeatureConstant: %v\n", c.IsFeatureConstant)
	fmt.Fprintf(&b, "isZoomConstant: %v\n", c.IsZoomConstant)

	value, err := c.Function(mapProperties, feature)
	if err != nil {
		fmt.Fprintf(&b, "evalError: %s\n", err.Error())
		return b.String()
	}
	fmt.Fprintf(&b, "value: %s\n", formatValue(value))
	return b.String()
}

func formatValue(v interface{}) string {
	switch vv := v.(type) {
	case color.RGBA:
		return fmt.Sprintf("color(%s,%s,%s,%s)",
			strconv.FormatFloat(vv[0], 'g', -1, 64),
			strconv.FormatFloat(vv[1], 'g', -1, 64),
			strconv.FormatFloat(vv[2], 'g', -1, 64),
			strconv.FormatFloat(vv[3], 'g', -1, 64))
	case float64:
		return strconv.FormatFloat(vv, 'g', -1, 64)
	case string:
		return vv
	case bool:
		return strconv.FormatBool(vv)
	case nil:
		return "null"
	default:
		out, err := json.Marshal(vv)
		if err != nil {
			return fmt.Sprintf("%v", vv)
		}
		return string(out)
	}
}
