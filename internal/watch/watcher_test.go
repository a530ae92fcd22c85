package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cppintel/mcp-cpp-bridge/internal/logger"
)

func TestIsCppFile(t *testing.T) {
	cases := map[string]bool{
		"foo.cpp":  true,
		"foo.cc":   true,
		"foo.cxx":  true,
		"foo.h":    true,
		"foo.hpp":  true,
		"foo.hh":   true,
		"foo.c":    true,
		"foo.CPP":  true,
		"foo.txt":  false,
		"CMakeLists.txt": false,
		"foo":      false,
	}
	for path, want := range cases {
		if got := isCppFile(path); got != want {
			t.Errorf("isCppFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherDebouncesBurstOfWritesIntoOneCallback(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "foo.cpp")
	if err := os.WriteFile(target, []byte("int main() {}"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var mu sync.Mutex
	var calls int
	var lastFiles []string
	done := make(chan struct{}, 1)

	w, err := New(root, func(files []string) {
		mu.Lock()
		calls++
		lastFiles = files
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
	}, &logger.NullLogger{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("int main() { return 0; }"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for debounced callback")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (writes should coalesce into one callback)", calls)
	}
	found := false
	for _, f := range lastFiles {
		if f == target {
			found = true
		}
	}
	if !found {
		t.Fatalf("lastFiles = %v, want it to contain %q", lastFiles, target)
	}
}

func TestWatcherStartsWithSkippedDirectoryPresent(t *testing.T) {
	root := t.TempDir()
	buildDir := filepath.Join(root, "build")
	if err := os.Mkdir(buildDir, 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	w, err := New(root, func([]string) {}, &logger.NullLogger{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	// addRecursive should have skipped descending into build/, so adding a
	// file under it must not register a watch (best-effort: we just assert
	// New() didn't error and the watcher is usable).
	if err := os.WriteFile(filepath.Join(buildDir, "generated.cpp"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}
