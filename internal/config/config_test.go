package config

import (
	"testing"
)

func TestLoadResolvesWorkingDirAbs(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorkingDir != dir {
		t.Fatalf("WorkingDir = %q, want %q", cfg.WorkingDir, dir)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("MCP_LOG_UNIQUE", "1")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.LogUnique {
		t.Fatalf("expected LogUnique=true when MCP_LOG_UNIQUE=1")
	}
}

func TestClangdPathFromEnv(t *testing.T) {
	t.Setenv("CLANGD_PATH", "/opt/llvm/bin/clangd")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClangdPath != "/opt/llvm/bin/clangd" {
		t.Fatalf("ClangdPath = %q, want override", cfg.ClangdPath)
	}
}
