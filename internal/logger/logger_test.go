package logger

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLoggerMemoryKeepsEntriesBelowFileLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.log")

	log, err := NewFileLogger(path, LevelInfo, Options{})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer log.Close()

	log.Error("boom %d", 1)
	log.Debug("should not appear in file")

	got := log.GetLogs(LevelDebug)
	if !strings.Contains(got, "boom 1") {
		t.Fatalf("expected memory log to contain error, got %q", got)
	}
	if !strings.Contains(got, "should not appear in file") {
		t.Fatalf("expected memory log to retain debug entries regardless of file level")
	}
}

func TestFileLoggerJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.log")

	log, err := NewFileLogger(path, LevelDebug, Options{JSON: true})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer log.Close()

	log.Info("hello %s", "world")

	got := log.GetLogs(LevelDebug)
	if !strings.HasPrefix(strings.TrimSpace(got), "{") {
		t.Fatalf("expected JSON-framed log line, got %q", got)
	}
}

func TestFileLoggerUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.log")

	log, err := NewFileLogger(path, LevelInfo, Options{Unique: true})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer log.Close()

	if log.Path() == path {
		t.Fatalf("expected unique path to differ from %q", path)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"error": LevelError,
		"DEBUG": LevelDebug,
		"":      LevelInfo,
		"huh":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNullLogger(t *testing.T) {
	var l Logger = &NullLogger{}
	l.Error("x")
	l.Info("x")
	l.Debug("x")
	if got := l.GetLogs(LevelDebug); got != "" {
		t.Fatalf("NullLogger.GetLogs() = %q, want empty", got)
	}
}
