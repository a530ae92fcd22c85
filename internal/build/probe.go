// Package build implements the build-graph probe: it scans a project root
// for configured CMake build directories and reports what it finds
// without mutating anything on disk.
package build

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
)

// BuildType mirrors CMAKE_BUILD_TYPE, with Unknown standing in for a
// missing or unparseable value.
type BuildType int

const (
	BuildTypeUnknown BuildType = iota
	BuildTypeDebug
	BuildTypeRelease
	BuildTypeRelWithDebInfo
	BuildTypeMinSizeRel
)

func (t BuildType) String() string {
	switch t {
	case BuildTypeDebug:
		return "Debug"
	case BuildTypeRelease:
		return "Release"
	case BuildTypeRelWithDebInfo:
		return "RelWithDebInfo"
	case BuildTypeMinSizeRel:
		return "MinSizeRel"
	default:
		return "unknown"
	}
}

func parseBuildType(s string) BuildType {
	switch s {
	case "Debug":
		return BuildTypeDebug
	case "Release":
		return BuildTypeRelease
	case "RelWithDebInfo":
		return BuildTypeRelWithDebInfo
	case "MinSizeRel":
		return BuildTypeMinSizeRel
	default:
		return BuildTypeUnknown
	}
}

// Directory is a discovered configured build tree.
// Immutable once returned by Discover.
type Directory struct {
	Path               string
	BuildType          BuildType
	CompileCommandsPath string // empty if absent
	Generator          string
	Issues             []string
}

// HasCompileCommands reports whether this build produced a compile
// database the LSP client can hand to clangd.
func (d Directory) HasCompileCommands() bool { return d.CompileCommandsPath != "" }

// Result is the probe's full answer for one project root.
type Result struct {
	ProjectType  string // "cmake" or "unknown"
	IsConfigured bool
	Directories  []Directory
}

// Discover scans root's immediate subdirectories for configured CMake
// builds (presence of CMakeCache.txt). Results are sorted by path for
// determinism.
func Discover(root string) (Result, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return Result{}, bridgeerr.New(bridgeerr.NotFound, "project root %q does not exist", root)
	}

	result := Result{ProjectType: "unknown"}
	if _, err := os.Stat(filepath.Join(root, "CMakeLists.txt")); err == nil {
		result.ProjectType = "cmake"
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return Result{}, bridgeerr.Wrap(bridgeerr.Io, err, "listing %s", root)
	}

	var dirs []Directory
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		candidate := filepath.Join(root, e.Name())
		cachePath := filepath.Join(candidate, "CMakeCache.txt")
		if _, err := os.Stat(cachePath); err != nil {
			continue
		}
		dirs = append(dirs, probeOne(candidate, cachePath))
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Path < dirs[j].Path })

	result.Directories = dirs
	result.IsConfigured = len(dirs) > 0
	return result, nil
}

// probeOne extracts build type and generator from one CMakeCache.txt and
// checks for a sibling compile_commands.json. Cache-read/parse failures
// are recorded as issues rather than surfaced as errors.
func probeOne(dir, cachePath string) Directory {
	d := Directory{Path: dir, BuildType: BuildTypeUnknown}

	buildType, generator, err := parseCache(cachePath)
	if err != nil {
		d.Issues = append(d.Issues, "could not read CMakeCache.txt: "+err.Error())
	} else {
		d.BuildType = buildType
		d.Generator = generator
		if buildType == BuildTypeUnknown {
			d.Issues = append(d.Issues, "CMAKE_BUILD_TYPE not found or unrecognized in CMakeCache.txt")
		}
	}

	ccPath := filepath.Join(dir, "compile_commands.json")
	if _, err := os.Stat(ccPath); err == nil {
		d.CompileCommandsPath = ccPath
	}

	return d
}

// parseCache scans a CMakeCache.txt for CMAKE_BUILD_TYPE and
// CMAKE_GENERATOR entries. It tolerates an entirely malformed cache (no
// matching lines) by returning BuildTypeUnknown rather than an error; a
// read failure (permissions, not a regular file) is the only hard error.
func parseCache(path string) (BuildType, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return BuildTypeUnknown, "", err
	}
	defer f.Close()

	var buildType BuildType
	var generator string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := splitCacheEntry(line)
		if !ok {
			continue
		}
		switch key {
		case "CMAKE_BUILD_TYPE":
			buildType = parseBuildType(value)
		case "CMAKE_GENERATOR":
			generator = value
		}
	}
	if err := scanner.Err(); err != nil {
		return BuildTypeUnknown, "", err
	}
	return buildType, generator, nil
}

// splitCacheEntry parses a "KEY:TYPE=VALUE" CMakeCache.txt line.
func splitCacheEntry(line string) (key, value string, ok bool) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return "", "", false
	}
	lhs, value := line[:eq], line[eq+1:]
	colon := strings.Index(lhs, ":")
	if colon < 0 {
		return "", "", false
	}
	return lhs[:colon], value, true
}

// Configure is an explicit opt-in helper that runs `cmake -B` to generate
// compile_commands.json when a project has none. It is never invoked by
// Discover itself (the probe stays read-only), but a tool handler may call
// it when a caller explicitly asks to bootstrap a build.
func Configure(projectRoot, buildDir string) (string, error) {
	return configureCMake(projectRoot, buildDir)
}
