package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"orecast.dev/internal/config"
	"orecast.dev/internal/engine/bench"
	"orecast.dev/internal/persistence/blockdb"
	"orecast.dev/internal/persistence/runlog"
)

const toolVersion = "orecast 11.52"

func main() {
	var (
		paramsPath = flag.String("params", "", "parameter file (default: built-in planning-cycle values)")
		dbPath     = flag.String("model", "./data/model.db", "block model database")
		logPath    = flag.String("log", "", "run log path (default: <model dir>/dest.log)")
		benchMin   = flag.Int("bench_min", -1, "first bench (overrides parameter file)")
		benchMax   = flag.Int("bench_max", -1, "last bench (overrides parameter file)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[orecast] ", log.LstdFlags|log.Lmicroseconds)

	p, err := config.Load(*paramsPath)
	if err != nil {
		logger.Fatalf("load params: %v", err)
	}
	if *benchMin >= 0 {
		p.Run.BenchMin = *benchMin
	}
	if *benchMax >= 0 {
		p.Run.BenchMax = *benchMax
	}
	if p.Run.BenchMax < p.Run.BenchMin {
		logger.Fatalf("bench range %d-%d is empty", p.Run.BenchMin, p.Run.BenchMax)
	}

	eng := strings.TrimSpace(p.Run.User)
	if eng == "" {
		if u, err := user.Current(); err == nil {
			eng = u.Username
		} else {
			eng = "unknown"
		}
	}

	lp := strings.TrimSpace(*logPath)
	if lp == "" {
		lp = filepath.Join(filepath.Dir(*dbPath), "dest.log")
	}
	rl, err := runlog.Open(lp, eng, toolVersion)
	if err != nil {
		logger.Fatalf("open run log: %v", err)
	}
	defer rl.Close()

	store, err := blockdb.Open(*dbPath)
	if err != nil {
		logger.Fatalf("open block model: %v", err)
	}
	defer store.Close()

	logger.Printf("run %s: benches %d-%d, milling option %d",
		rl.RunID(), p.Run.BenchMin, p.Run.BenchMax, p.Run.MillingOption)

	d := &bench.Driver{Params: &p, Store: store, Log: rl, Out: logger}
	results, err := d.Run()
	if err != nil {
		rl.Printf("Error: %v", err)
		logger.Printf("run failed: %v", err)
		os.Exit(1)
	}
	skipped := 0
	for _, r := range results {
		if r.Err != nil {
			skipped++
			logger.Printf("bench %d skipped: %v", r.Bench, r.Err)
		}
	}
	fmt.Println("Executed OK")
	if skipped > 0 {
		os.Exit(2)
	}
}
