package crash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport("", "test-temp", "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	if !strings.HasPrefix(path, os.TempDir()) {
		t.Fatalf("expected report under temp dir, got %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Pagesmith Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
}

func TestWriteReportCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "nested")

	path, err := writeReport(dir, "20250101-000000", "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if path != filepath.Join(dir, "crash-20250101-000000.log") {
		t.Fatalf("unexpected report path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
}

func TestWriteRescueSurvivesPanickingRenderer(t *testing.T) {
	dir := t.TempDir()
	_, err := writeRescue(dir, "x", func() string { panic("render broke") })
	if err == nil || !strings.Contains(err.Error(), "render broke") {
		t.Fatalf("expected wrapped render panic, got %v", err)
	}
	if _, err := writeRescue(dir, "y", func() string { return "" }); err == nil {
		t.Fatalf("expected error for empty markup")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("no file expected, found %d", len(entries))
	}
}
