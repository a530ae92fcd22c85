package build

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
)

// configureCMake shells out to `cmake -B buildDir -S projectRoot
// -DCMAKE_EXPORT_COMPILE_COMMANDS=ON`, adapted from the reference CLI's
// EnsureCompilationDatabase. Unlike that original, it never picks the
// build directory itself (the caller names it), since this helper now
// serves an explicit opt-in tool rather than being invoked implicitly on
// every cold start.
func configureCMake(projectRoot, buildDir string) (string, error) {
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return "", bridgeerr.Wrap(bridgeerr.Io, err, "creating build directory %s", buildDir)
	}

	cmd := exec.Command("cmake",
		"-S", projectRoot,
		"-B", buildDir,
		"-DCMAKE_EXPORT_COMPILE_COMMANDS=ON")

	output, err := cmd.CombinedOutput()
	if err != nil {
		if strings.Contains(err.Error(), "executable file not found") {
			return "", bridgeerr.New(bridgeerr.Unsupported, "cmake not found in PATH")
		}
		return "", bridgeerr.Wrap(bridgeerr.Io, err, "cmake configure failed: %s", string(output))
	}

	ccPath := filepath.Join(buildDir, "compile_commands.json")
	if _, err := os.Stat(ccPath); err != nil {
		return "", bridgeerr.New(bridgeerr.Malformed, "cmake succeeded but compile_commands.json was not created")
	}
	return buildDir, nil
}
