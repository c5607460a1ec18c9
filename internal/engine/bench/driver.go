package bench

import (
	"errors"
	"fmt"
	"log"

	"orecast.dev/internal/config"
	"orecast.dev/internal/persistence/blockdb"
	"orecast.dev/internal/persistence/runlog"
)

// Driver walks the configured bench range against the block model,
// committing each bench as it completes. A bench missing from the model
// is logged and skipped; any other failure aborts the run and leaves
// the failure marker in the run log.
type Driver struct {
	Params *config.Params
	Store  *blockdb.Store
	Log    *runlog.Log
	Out    *log.Logger
}

// BenchResult records the outcome of one bench.
type BenchResult struct {
	Bench  int
	Blocks int
	Err    error
}

// Run processes every bench in the configured range and reports one
// result per bench. A non-nil error aborts the run; a skipped bench
// only sets its result's Err.
func (d *Driver) Run() ([]BenchResult, error) {
	r := New(d.Params)
	results := make([]BenchResult, 0, d.Params.Run.BenchMax-d.Params.Run.BenchMin+1)
	for b := d.Params.Run.BenchMin; b <= d.Params.Run.BenchMax; b++ {
		d.Out.Printf("  Opening and updating Bench: %2d", b)
		sl, err := d.Store.Slab(b)
		if errors.Is(err, blockdb.ErrBenchAccess) {
			d.Log.Printf("Model Access Error: %v", err)
			d.Log.Printf("Failed")
			results = append(results, BenchResult{Bench: b, Err: err})
			continue
		}
		if err != nil {
			return results, fmt.Errorf("bench %d: %w", b, err)
		}
		blocks := r.Bench(sl, b, sl.Rows, sl.Cols)
		if err := sl.Commit(); err != nil {
			return results, fmt.Errorf("bench %d: commit: %w", b, err)
		}
		sl.Release()
		d.Log.Audit("bench_done", map[string]any{"bench": b, "blocks": blocks})
		results = append(results, BenchResult{Bench: b, Blocks: blocks})
	}
	return results, d.Log.Succeed()
}
