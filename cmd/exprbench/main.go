// Command exprbench evaluates one compiled expression against many
// (mapProperties, feature) pairs concurrently and records a row of run
// history in a small local sqlite database.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/cartoexpr/mapexpr/pkg/expr"
)

// runCase is one (mapProperties, feature) pair to evaluate the compiled
// expression against.
type runCase struct {
	MapProperties map[string]interface{} `json:"mapProperties"`
	Feature       expr.Feature           `json:"feature"`
}

func main() {
	exprFlag := flag.String("expr", "", "JSON-shaped expression to compile and evaluate")
	casesPath := flag.String("cases", "", "path to a JSON array of {mapProperties, feature} run cases")
	concurrency := flag.Int("concurrency", runtime.NumCPU(), "maximum concurrent evaluations")
	dbPath := flag.String("db", "exprbench_history.db", "sqlite run-history database path")
	flag.Parse()

	if *exprFlag == "" {
		fmt.Fprintln(os.Stderr, "exprbench: -expr is required")
		os.Exit(1)
	}

	var expression interface{}
	if err := json.Unmarshal([]byte(*exprFlag), &expression); err != nil {
		fmt.Fprintln(os.Stderr, "exprbench: invalid -expr JSON:", err)
		os.Exit(1)
	}

	compiled := expr.Compile(expression)
	if compiled.Result != "success" {
		for _, d := range compiled.Errors {
			fmt.Fprintf(os.Stderr, "exprbench: [%s]: %s\n", d.Key, d.Error)
		}
		os.Exit(1)
	}

	cases, err := loadCases(*casesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "exprbench:", err)
		os.Exit(1)
	}

	runID := uuid.New().String()
	var errCount int64

	start := time.Now()
	g := new(errgroup.Group)
	g.SetLimit(*concurrency)
	for _, batch := range chunkCases(cases, batchSize(len(cases), *concurrency)) {
		batch := batch
		g.Go(func() error {
			mapProperties := make([]map[string]interface{}, len(batch))
			features := make([]expr.Feature, len(batch))
			for i, c := range batch {
				mapProperties[i] = c.MapProperties
				features[i] = c.Feature
			}
			_, errs := expr.EvaluateBatch(compiled.Function, mapProperties, features)
			for _, err := range errs {
				if err != nil {
					atomic.AddInt64(&errCount, 1)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	wall := time.Since(start)

	fmt.Printf("run %s: %d evaluations in %s, %d errors\n", runID, len(cases), wall, errCount)

	if err := recordRun(*dbPath, runID, len(cases), wall, int(errCount)); err != nil {
		fmt.Fprintln(os.Stderr, "exprbench: could not record run history:", err)
		os.Exit(1)
	}
}

// batchSize divides n cases evenly across workers workers, so each errgroup
// goroutine's expr.EvaluateBatch call carries a roughly equal share.
func batchSize(n, workers int) int {
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	if size < 1 {
		size = 1
	}
	return size
}

func chunkCases(cases []runCase, size int) [][]runCase {
	var chunks [][]runCase
	for i := 0; i < len(cases); i += size {
		end := i + size
		if end > len(cases) {
			end = len(cases)
		}
		chunks = append(chunks, cases[i:end])
	}
	return chunks
}

func loadCases(path string) ([]runCase, error) {
	if path == "" {
		return []runCase{{}}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cases []runCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("invalid -cases JSON: %w", err)
	}
	return cases, nil
}

func recordRun(dbPath, runID string, exprCount int, wall time.Duration, errCount int) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS run_history (
		id TEXT PRIMARY KEY,
		expr_count INTEGER,
		wall_ms INTEGER,
		error_count INTEGER,
		created_at TEXT
	)`); err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO run_history (id, expr_count, wall_ms, error_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID, exprCount, wall.Milliseconds(), errCount, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
