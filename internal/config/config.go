// Package config resolves the bridge's configuration from environment
// variables and CLI flags, per the external-interfaces contract.
package config

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cppintel/mcp-cpp-bridge/internal/logger"
)

// Config is the resolved configuration for one bridge process.
type Config struct {
	// WorkingDir is the project root the bridge operates on.
	WorkingDir string
	// ClangdPath is the clangd binary to spawn.
	ClangdPath string
	// LogFile is where the FileLogger writes, empty disables file output.
	LogFile string
	// LogUnique mirrors MCP_LOG_UNIQUE.
	LogUnique bool
	// LogJSON mirrors MCP_LOG_JSON.
	LogJSON bool
	// LogLevel mirrors MCP_LOG_LEVEL.
	LogLevel logger.LogLevel
	// ServerPath is read from MCP_SERVER_PATH but otherwise ignored; it
	// exists for test harnesses.
	ServerPath string
}

// Load resolves configuration from the environment, given a working
// directory already chosen by the caller (e.g. from the --root flag).
func Load(workingDir string) (Config, error) {
	abs, err := filepath.Abs(workingDir)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		WorkingDir: abs,
		LogFile:    os.Getenv("MCP_LOG_FILE"),
		LogUnique:  envBool("MCP_LOG_UNIQUE"),
		LogJSON:    envBool("MCP_LOG_JSON"),
		LogLevel:   logger.ParseLevel(os.Getenv("MCP_LOG_LEVEL")),
		ServerPath: os.Getenv("MCP_SERVER_PATH"),
	}

	cfg.ClangdPath = resolveClangdPath()
	return cfg, nil
}

func resolveClangdPath() string {
	if p := os.Getenv("CLANGD_PATH"); p != "" {
		return p
	}
	if p, err := exec.LookPath("clangd"); err == nil {
		return p
	}
	return "clangd"
}

func envBool(name string) bool {
	v := os.Getenv(name)
	return v == "1" || v == "true" || v == "yes"
}
