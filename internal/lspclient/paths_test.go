package lspclient

import (
	"path/filepath"
	"testing"
)

func TestToAbsolutePathLeavesAbsoluteUntouched(t *testing.T) {
	c := &Client{projectRoot: "/project"}
	abs := "/other/file.cpp"
	if got := c.ToAbsolutePath(abs); got != abs {
		t.Fatalf("ToAbsolutePath(%q) = %q, want unchanged", abs, got)
	}
}

func TestToAbsolutePathJoinsRelativeToProjectRoot(t *testing.T) {
	c := &Client{projectRoot: "/project"}
	got := c.ToAbsolutePath("src/foo.cpp")
	want := filepath.Join("/project", "src/foo.cpp")
	if got != want {
		t.Fatalf("ToAbsolutePath() = %q, want %q", got, want)
	}
}

func TestToRelativePathMakesPathRelativeToRoot(t *testing.T) {
	c := &Client{projectRoot: "/project"}
	got := c.ToRelativePath("/project/src/foo.cpp")
	want := filepath.Join("src", "foo.cpp")
	if got != want {
		t.Fatalf("ToRelativePath() = %q, want %q", got, want)
	}
}

func TestToRelativePathFallsBackToAbsoluteWhenUnrelated(t *testing.T) {
	// filepath.Rel errors when one path is absolute and the other isn't;
	// ToRelativePath must fall back to returning the absolute path as-is.
	c := &Client{projectRoot: "relative/root"}
	abs := "/totally/different/path.cpp"
	if got := c.ToRelativePath(abs); got != abs {
		t.Fatalf("ToRelativePath() = %q, want unchanged %q", got, abs)
	}
}

func TestFileURIFromPathProducesFileScheme(t *testing.T) {
	c := &Client{projectRoot: "/project"}
	uri := c.FileURIFromPath("src/foo.cpp")
	want := "file:///project/src/foo.cpp"
	if uri != want {
		t.Fatalf("FileURIFromPath() = %q, want %q", uri, want)
	}
}

func TestPathFromFileURIStripsScheme(t *testing.T) {
	if got := PathFromFileURI("file:///project/src/foo.cpp"); got != "/project/src/foo.cpp" {
		t.Fatalf("PathFromFileURI() = %q, want %q", got, "/project/src/foo.cpp")
	}
}

func TestPathFromFileURILeavesNonFileURIUnchanged(t *testing.T) {
	if got := PathFromFileURI("src/foo.cpp"); got != "src/foo.cpp" {
		t.Fatalf("PathFromFileURI() = %q, want unchanged", got)
	}
}

func TestLanguageIDDetectsCAndDefaultsToCpp(t *testing.T) {
	if got := languageID("main.c"); got != "c" {
		t.Fatalf("languageID(main.c) = %q, want %q", got, "c")
	}
	if got := languageID("main.cpp"); got != "cpp" {
		t.Fatalf("languageID(main.cpp) = %q, want %q", got, "cpp")
	}
	if got := languageID("header.hpp"); got != "cpp" {
		t.Fatalf("languageID(header.hpp) = %q, want %q", got, "cpp")
	}
}
