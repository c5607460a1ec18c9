package blockdb

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "model.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSlab_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	if err := s.DefineBench(12, 4, 5); err != nil {
		t.Fatalf("DefineBench: %v", err)
	}

	sl, err := s.Slab(12)
	if err != nil {
		t.Fatalf("Slab: %v", err)
	}
	if sl.Rows != 4 || sl.Cols != 5 {
		t.Fatalf("extents: %dx%d", sl.Rows, sl.Cols)
	}
	if _, ok := sl.Get("STZN", 1, 1); ok {
		t.Fatalf("unset item should be undefined")
	}

	sl.Set("STZN", 1, 1, 14.2)
	sl.Set("DESTC", 1, 1, 1)
	sl.Set("STZN", 3, 4, 0)
	if err := sl.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	sl.Release()

	sl, err = s.Slab(12)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if v, ok := sl.Get("STZN", 1, 1); !ok || v != 14.2 {
		t.Fatalf("STZN(1,1) = %v,%v", v, ok)
	}
	if v, ok := sl.Get("DESTC", 1, 1); !ok || v != 1 {
		t.Fatalf("DESTC(1,1) = %v,%v", v, ok)
	}
	if v, ok := sl.Get("STZN", 3, 4); !ok || v != 0 {
		t.Fatalf("stored zero must stay defined: %v,%v", v, ok)
	}
}

func TestSlab_OverwriteAndStaging(t *testing.T) {
	s := openTestStore(t)
	if err := s.DefineBench(7, 2, 2); err != nil {
		t.Fatalf("DefineBench: %v", err)
	}
	sl, err := s.Slab(7)
	if err != nil {
		t.Fatalf("Slab: %v", err)
	}
	sl.Set("VALS", 0, 0, 1.5)
	if err := sl.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// Staged but uncommitted values are visible locally and lost on Release.
	sl.Set("VALS", 0, 0, 9.9)
	if v, _ := sl.Get("VALS", 0, 0); v != 9.9 {
		t.Fatalf("staged read: %v", v)
	}
	sl.Release()

	sl, err = s.Slab(7)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if v, _ := sl.Get("VALS", 0, 0); v != 1.5 {
		t.Fatalf("released stage leaked: %v", v)
	}

	sl.Set("VALS", 0, 0, 2.5)
	if err := sl.Commit(); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	sl, err = s.Slab(7)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if v, _ := sl.Get("VALS", 0, 0); v != 2.5 {
		t.Fatalf("overwrite read: %v", v)
	}
}

func TestSlab_MissingBench(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Slab(99); !errors.Is(err, ErrBenchAccess) {
		t.Fatalf("want ErrBenchAccess, got %v", err)
	}
}

func TestBenches(t *testing.T) {
	s := openTestStore(t)
	for _, b := range []int{30, 10, 20} {
		if err := s.DefineBench(b, 1, 1); err != nil {
			t.Fatalf("DefineBench(%d): %v", b, err)
		}
	}
	got, err := s.Benches()
	if err != nil {
		t.Fatalf("Benches: %v", err)
	}
	want := []int{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("benches: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("benches order: %v", got)
		}
	}
}
