package build

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDiscoverEmptyProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "README.md"), "hello")

	result, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if result.ProjectType != "unknown" || result.IsConfigured {
		t.Fatalf("got %+v, want unconfigured unknown project", result)
	}
	if len(result.Directories) != 0 {
		t.Fatalf("expected no build directories, got %d", len(result.Directories))
	}
}

func TestDiscoverConfiguredProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "CMakeLists.txt"), "project(demo)")
	writeFile(t, filepath.Join(dir, "build-debug", "CMakeCache.txt"),
		"CMAKE_BUILD_TYPE:STRING=Debug\nCMAKE_GENERATOR:INTERNAL=Ninja\n")
	writeFile(t, filepath.Join(dir, "build-release", "CMakeCache.txt"),
		"CMAKE_BUILD_TYPE:STRING=Release\n")
	writeFile(t, filepath.Join(dir, "build-release", "compile_commands.json"), "[]")

	result, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if result.ProjectType != "cmake" || !result.IsConfigured {
		t.Fatalf("got %+v, want configured cmake project", result)
	}
	if len(result.Directories) != 2 {
		t.Fatalf("expected 2 build directories, got %d", len(result.Directories))
	}
	if result.Directories[0].Path > result.Directories[1].Path {
		t.Fatalf("expected directories sorted by path")
	}

	debug := result.Directories[0]
	if debug.BuildType != BuildTypeDebug {
		t.Fatalf("build type = %v, want Debug", debug.BuildType)
	}
	if debug.HasCompileCommands() {
		t.Fatalf("build-debug has no compile_commands.json, HasCompileCommands() should be false")
	}

	release := result.Directories[1]
	if release.BuildType != BuildTypeRelease {
		t.Fatalf("build type = %v, want Release", release.BuildType)
	}
	if !release.HasCompileCommands() {
		t.Fatalf("build-release has compile_commands.json, HasCompileCommands() should be true")
	}
}

func TestDiscoverCorruptCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build", "CMakeCache.txt"), "corrupted cache content")

	result, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(result.Directories) != 1 {
		t.Fatalf("expected 1 build directory, got %d", len(result.Directories))
	}
	d := result.Directories[0]
	if d.BuildType != BuildTypeUnknown {
		t.Fatalf("build type = %v, want unknown for corrupt cache", d.BuildType)
	}
	if len(d.Issues) == 0 {
		t.Fatalf("expected an advisory issue for a corrupt cache")
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatalf("expected error for a missing project root")
	}
}

func TestDiscoverIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b", "CMakeCache.txt"), "CMAKE_BUILD_TYPE:STRING=Debug\n")
	writeFile(t, filepath.Join(dir, "a", "CMakeCache.txt"), "CMAKE_BUILD_TYPE:STRING=Release\n")

	first, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	second, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(first.Directories) != len(second.Directories) {
		t.Fatalf("directory counts differ across runs")
	}
	for i := range first.Directories {
		if first.Directories[i].Path != second.Directories[i].Path {
			t.Fatalf("directory order differs across runs")
		}
	}
}
