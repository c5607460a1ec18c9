package bench

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"orecast.dev/internal/config"
	"orecast.dev/internal/engine/dest"
	"orecast.dev/internal/persistence/blockdb"
	"orecast.dev/internal/persistence/runlog"
)

type fakeSlab struct {
	m map[string]float64
}

func newFakeSlab() *fakeSlab { return &fakeSlab{m: map[string]float64{}} }

func ck(name string, r, c int) string { return fmt.Sprintf("%s:%d:%d", name, r, c) }

func (f *fakeSlab) Get(name string, r, c int) (float64, bool) {
	v, ok := f.m[ck(name, r, c)]
	return v, ok
}

func (f *fakeSlab) Set(name string, r, c int, v float64) {
	f.m[ck(name, r, c)] = v
}

func (f *fakeSlab) has(name string, r, c int) bool {
	_, ok := f.m[ck(name, r, c)]
	return ok
}

func (f *fakeSlab) must(t *testing.T, name string, r, c int) float64 {
	t.Helper()
	v, ok := f.Get(name, r, c)
	if !ok {
		t.Fatalf("%s(%d,%d) not written", name, r, c)
	}
	return v
}

// setShale fills one block with unassayed Siksikpuk shale in the Main
// deposit. No metallurgy runs for it; grinding comes from the host-rock
// preset and it classifies as non-reactive waste.
func setShale(sl *fakeSlab, r, c int) {
	sl.Set("DEP", r, c, 1)
	sl.Set("GEOL", r, c, 4)
	sl.Set("GEOLM", r, c, 4)
	sl.Set("SHALE", r, c, 100)
	sl.Set("SG", r, c, 2.6)
	sl.Set("NSG", r, c, 80)
	sl.Set("ODENM", r, c, 2.9)
}

// setOre fills one block with rich Main deposit exhalite sulfide. Its
// value rate lands far above the operating cutoff.
func setOre(sl *fakeSlab, r, c int) {
	sl.Set("DEP", r, c, 1)
	sl.Set("GEOL", r, c, 1)
	sl.Set("GEOLM", r, c, 1)
	sl.Set("STZN", r, c, 24)
	sl.Set("STPB", r, c, 6)
	sl.Set("STFE", r, c, 8)
	sl.Set("STBA", r, c, 2)
	sl.Set("AG", r, c, 3.0)
	sl.Set("TOC", r, c, 0.3)
	sl.Set("SG", r, c, 3.5)
	sl.Set("NSG", r, c, 40)
	sl.Set("ODENM", r, c, 3.4)
	sl.Set("RESCL", r, c, 1)
}

func testParams() *config.Params {
	p := config.Defaults()
	return &p
}

func TestBench_AirOnly(t *testing.T) {
	sl := newFakeSlab()
	r := New(testParams())

	if n := r.Bench(sl, 17, 2, 2); n != 4 {
		t.Fatalf("blocks = %d", n)
	}
	if v := sl.must(t, "DESTC", 0, 0); v != float64(dest.WN) {
		t.Fatalf("air DESTC = %v", v)
	}
	if v := sl.must(t, "VALS", 0, 0); v != 0 {
		t.Fatalf("air VALS = %v", v)
	}
	if v := sl.must(t, "TAILS", 0, 0); v != 0 {
		t.Fatalf("air TAILS = %v", v)
	}
	if v := sl.must(t, "MET", 0, 0); v != 0 {
		t.Fatalf("air MET = %v", v)
	}
	if sl.has("ORCT4", 0, 0) {
		t.Fatalf("air should have no ore type")
	}
}

func TestBench_ShaleWaste(t *testing.T) {
	sl := newFakeSlab()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			setShale(sl, r, c)
		}
	}
	New(testParams()).Bench(sl, 17, 3, 3)

	if v := sl.must(t, "MET", 1, 1); v != 0 {
		t.Fatalf("shale MET = %v", v)
	}
	if v := sl.must(t, "SESAG", 1, 1); v != 10.32 {
		t.Fatalf("preset SESAG = %v", v)
	}
	if v := sl.must(t, "MPT", 1, 1); v <= 0 {
		t.Fatalf("MPT = %v", v)
	}
	if v := sl.must(t, "DESTC", 1, 1); v != float64(dest.WN) {
		t.Fatalf("DESTC = %v", v)
	}
	if v := sl.must(t, "DESTD", 1, 1); v != float64(dest.WN) {
		t.Fatalf("DESTD = %v", v)
	}
	if v := sl.must(t, "DESTR", 1, 1); v != float64(dest.ResWaste) {
		t.Fatalf("DESTR = %v", v)
	}
	if v := sl.must(t, "DILFG", 1, 1); v != float64(dest.DilWasteUnchanged) {
		t.Fatalf("DILFG = %v", v)
	}
	if v := sl.must(t, "VALS", 1, 1); v >= 0 {
		t.Fatalf("waste shale should carry a negative value rate: %v", v)
	}
	wantTPB := 25.0 * 25.0 * 15.0 * 2.9
	if v := sl.must(t, "TAILS", 1, 1); v != wantTPB {
		t.Fatalf("TAILS = %v want %v", v, wantTPB)
	}
	if v := sl.must(t, "ZNCON", 1, 1); v != 0 {
		t.Fatalf("ZNCON = %v", v)
	}
	if v := sl.must(t, "BAC", 1, 1); v != 1 {
		t.Fatalf("construction shale BAC = %v", v)
	}
	if v := sl.must(t, "ORCT4", 1, 1); v != 23 {
		t.Fatalf("ORCT4 = %v", v)
	}
	if v := sl.must(t, "ORCT2", 1, 1); v != 6 {
		t.Fatalf("ORCT2 = %v", v)
	}
}

func TestBench_HighGradeOre(t *testing.T) {
	sl := newFakeSlab()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			setOre(sl, r, c)
		}
	}
	New(testParams()).Bench(sl, 17, 3, 3)

	if v := sl.must(t, "MET", 1, 1); v != 1 {
		t.Fatalf("MET = %v", v)
	}
	if v := sl.must(t, "DESTC", 1, 1); v != float64(dest.HG) {
		t.Fatalf("DESTC = %v", v)
	}
	if v := sl.must(t, "DESTD", 1, 1); v != float64(dest.HG) {
		t.Fatalf("DESTD = %v", v)
	}
	if v := sl.must(t, "DESTR", 1, 1); v != float64(dest.ResHGMI) {
		t.Fatalf("DESTR = %v", v)
	}
	if v := sl.must(t, "DILFG", 1, 1); v != float64(dest.DilOreUnchanged) {
		t.Fatalf("DILFG = %v", v)
	}
	if v := sl.must(t, "VALS", 1, 1); v <= 0 {
		t.Fatalf("ore VALS = %v", v)
	}
	if v := sl.must(t, "VALT", 1, 1); v <= 0 {
		t.Fatalf("ore revenue = %v", v)
	}
	zncon := sl.must(t, "ZNCON", 1, 1)
	if zncon <= 0 {
		t.Fatalf("ZNCON = %v", zncon)
	}
	tpb := 25.0 * 25.0 * 15.0 * 3.4
	sum := zncon + sl.must(t, "PBCON", 1, 1) + sl.must(t, "TAILS", 1, 1)
	if math.Abs(sum-tpb) > 1e-6 {
		t.Fatalf("mass balance: %v want %v", sum, tpb)
	}
	want := float64(dest.OreType4(dest.HG, sl.must(t, "ORCT2", 1, 1), 24))
	if v := sl.must(t, "ORCT4", 1, 1); v != want {
		t.Fatalf("ORCT4 = %v want %v", v, want)
	}
}

func TestBench_IsolatedOreDiluted(t *testing.T) {
	sl := newFakeSlab()
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			setShale(sl, r, c)
		}
	}
	setOre(sl, 2, 2)
	New(testParams()).Bench(sl, 17, 5, 5)

	// The lone mill-feed block keeps its economic classification but
	// dilutes away, and the reserve code follows the diluted routing.
	if v := sl.must(t, "DESTC", 2, 2); v != float64(dest.HG) {
		t.Fatalf("DESTC = %v", v)
	}
	if v := sl.must(t, "DESTD", 2, 2); v != float64(dest.WN) {
		t.Fatalf("DESTD = %v", v)
	}
	if v := sl.must(t, "DESTR", 2, 2); v != float64(dest.ResWaste) {
		t.Fatalf("DESTR = %v", v)
	}
	if v := sl.must(t, "DESTD", 1, 2); v != float64(dest.WN) {
		t.Fatalf("neighbour DESTD = %v", v)
	}
}

func TestBench_ValueRun(t *testing.T) {
	sl := newFakeSlab()
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			setShale(sl, r, c)
		}
	}
	p := testParams()
	p.Run.ValueRun = 1
	New(p).Bench(sl, 17, 2, 2)

	if v := sl.must(t, "VALB", 0, 0); v >= 0 {
		t.Fatalf("waste block value = %v", v)
	}
	if sl.has("DESTC", 0, 0) {
		t.Fatalf("value run should not classify destinations")
	}
}

func TestBench_PeriodFilterSkips(t *testing.T) {
	sl := newFakeSlab()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			setShale(sl, r, c)
		}
	}
	sl.Set("PERLT", 1, 1, 5)
	sl.Set("DESTC", 1, 1, float64(dest.HG))
	sl.Set("DESTD", 1, 1, float64(dest.HG))
	sl.Set("DILFG", 1, 1, float64(dest.DilOreUnchanged))

	p := testParams()
	p.Run.PeriodFilter = dest.PeriodUnassigned
	New(p).Bench(sl, 17, 3, 3)

	if v := sl.must(t, "DESTC", 1, 1); v != float64(dest.HG) {
		t.Fatalf("scheduled block rewritten: DESTC = %v", v)
	}
	if sl.has("VALS", 1, 1) {
		t.Fatalf("scheduled block should not be revalued")
	}
	if v := sl.must(t, "DESTC", 0, 1); v != float64(dest.WN) {
		t.Fatalf("unscheduled block DESTC = %v", v)
	}
}

func TestDriver_Run(t *testing.T) {
	dir := t.TempDir()
	store, err := blockdb.Open(filepath.Join(dir, "model.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if err := store.DefineBench(10, 3, 3); err != nil {
		t.Fatalf("DefineBench: %v", err)
	}
	slab, err := store.Slab(10)
	if err != nil {
		t.Fatalf("Slab: %v", err)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			slab.Set("DEP", r, c, 1)
			slab.Set("GEOL", r, c, 4)
			slab.Set("GEOLM", r, c, 4)
			slab.Set("SHALE", r, c, 100)
			slab.Set("SG", r, c, 2.6)
			slab.Set("NSG", r, c, 80)
			slab.Set("ODENM", r, c, 2.9)
		}
	}
	if err := slab.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	slab.Release()

	logPath := filepath.Join(dir, "dest.log")
	lg, err := runlog.Open(logPath, "jdoe", "orecast test")
	if err != nil {
		t.Fatalf("runlog: %v", err)
	}

	p := testParams()
	p.Run.BenchMin = 9
	p.Run.BenchMax = 10
	d := &Driver{
		Params: p,
		Store:  store,
		Log:    lg,
		Out:    log.New(io.Discard, "", 0),
	}
	results, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].Bench != 9 || results[0].Err == nil {
		t.Fatalf("missing bench result: %+v", results[0])
	}
	if results[1].Bench != 10 || results[1].Err != nil || results[1].Blocks != 9 {
		t.Fatalf("bench 10 result: %+v", results[1])
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	s := string(b)
	// Bench 9 is not in the model: logged and skipped, run still succeeds.
	if !strings.Contains(s, "Model Access Error") {
		t.Fatalf("missing bench error:\n%s", s)
	}
	if !strings.HasSuffix(strings.TrimRight(s, "\n"), "Executed OK") {
		t.Fatalf("missing success marker:\n%s", s)
	}

	slab, err = store.Slab(10)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if v, ok := slab.Get("DESTC", 1, 1); !ok || v != float64(dest.WN) {
		t.Fatalf("DESTC(1,1) = %v,%v", v, ok)
	}
	if _, ok := slab.Get("MPT", 1, 1); !ok {
		t.Fatalf("MPT not persisted")
	}
}
