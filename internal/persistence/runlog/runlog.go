// Package runlog writes the destination run's plain-text execution log
// and a compressed JSONL audit stream. The text log follows the site
// convention: a header naming the run, "Failed!" appended immediately
// after the header, and the last line replaced with "Executed OK" only
// when the run finishes. A crash therefore always leaves a failed log
// behind.
package runlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

type Log struct {
	path  string
	runID string

	mu sync.Mutex
	f  *os.File

	audit *auditWriter
}

// Open starts a run log. The header records when the run started, who
// ran it and with which tool version, plus a fresh run ID for matching
// against the audit stream.
func Open(path, user, tool string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l := &Log{path: path, runID: uuid.NewString(), f: f}

	now := time.Now().Format("2006-01-02 15:04:05")
	header := fmt.Sprintf("Eng: %s\nDate: %s\nRun: %s\nTool: %s\n", user, now, l.runID, tool)
	if _, err := f.WriteString(header); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.WriteString("Failed!\n"); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return nil, err
	}

	l.audit = newAuditWriter(path + ".audit.jsonl.zst")
	return l, nil
}

// RunID is the identifier stamped in the header and on audit entries.
func (l *Log) RunID() string { return l.runID }

// Printf appends a line to the text log.
func (l *Log) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = l.f.WriteString(msg)
}

// Audit writes one structured entry to the compressed audit stream.
func (l *Log) Audit(event string, fields map[string]any) {
	if l.audit == nil {
		return
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"run":   l.runID,
		"event": event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	_ = l.audit.Write(entry)
}

// Succeed replaces the log's last line with "Executed OK" and closes
// the log. In an error-free run the last line is the "Failed!" marker
// from Open; if benches reported errors, the final per-bench "Failed"
// is replaced and the error text stays on record.
func (l *Log) Succeed() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	if err := l.f.Close(); err != nil {
		return err
	}
	l.f = nil

	b, err := os.ReadFile(l.path)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	lines = append(lines, "Executed OK")
	if err := os.WriteFile(l.path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return err
	}
	return l.closeAudit()
}

// Close closes the log without rewriting the failure marker.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f != nil {
		_ = l.f.Close()
		l.f = nil
	}
	return l.closeAudit()
}

func (l *Log) closeAudit() error {
	if l.audit == nil {
		return nil
	}
	err := l.audit.Close()
	l.audit = nil
	return err
}

// auditWriter appends zstd-compressed JSONL, one entry per line.
type auditWriter struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func newAuditWriter(path string) *auditWriter {
	return &auditWriter{path: path}
}

func (w *auditWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		if err := w.openLocked(); err != nil {
			return err
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *auditWriter) openLocked() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	return nil
}

func (w *auditWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err1
}
