package runlog

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestLog_FailedUntilSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dest.log")
	l, err := Open(path, "jdoe", "orecast v1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasSuffix(strings.TrimRight(string(b), "\n"), "Failed!") {
		t.Fatalf("log should end in Failed! before completion:\n%s", b)
	}
	if !strings.Contains(string(b), "Eng: jdoe") {
		t.Fatalf("missing user header:\n%s", b)
	}

	if err := l.Succeed(); err != nil {
		t.Fatalf("Succeed: %v", err)
	}

	b, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	s := string(b)
	if !strings.HasSuffix(strings.TrimRight(s, "\n"), "Executed OK") {
		t.Fatalf("log should end in Executed OK:\n%s", s)
	}
	if strings.Contains(s, "Failed!") {
		t.Fatalf("Failed! marker should be rewritten on success:\n%s", s)
	}
}

func TestLog_BenchErrorsKeptOnSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dest.log")
	l, err := Open(path, "jdoe", "orecast v1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Printf("Model Access Error: bench 40 not in model")
	l.Printf("Failed")
	if err := l.Succeed(); err != nil {
		t.Fatalf("Succeed: %v", err)
	}

	b, _ := os.ReadFile(path)
	s := string(b)
	// A per-bench failure line survives; only the run-level marker is
	// replaced.
	if !strings.Contains(s, "Model Access Error") {
		t.Fatalf("bench error lost:\n%s", s)
	}
	if !strings.HasSuffix(strings.TrimRight(s, "\n"), "Executed OK") {
		t.Fatalf("missing success marker:\n%s", s)
	}
}

func TestLog_AuditStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dest.log")
	l, err := Open(path, "jdoe", "orecast v1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Audit("bench_done", map[string]any{"bench": 12, "blocks": 400})
	if err := l.Succeed(); err != nil {
		t.Fatalf("Succeed: %v", err)
	}

	f, err := os.Open(path + ".audit.jsonl.zst")
	if err != nil {
		t.Fatalf("open audit: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	if !sc.Scan() {
		t.Fatalf("empty audit stream")
	}
	line := sc.Text()
	if !strings.Contains(line, `"event":"bench_done"`) || !strings.Contains(line, `"bench":12`) {
		t.Fatalf("audit entry: %s", line)
	}
	if !strings.Contains(line, l.RunID()) {
		t.Fatalf("audit entry missing run id: %s", line)
	}
}
