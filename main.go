// Command mcp-cpp-bridge serves C++ source-code intelligence to MCP
// clients over a stdio JSON-RPC channel, mediating a long-lived clangd
// child process on the client's behalf.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/cppintel/mcp-cpp-bridge/internal/config"
	"github.com/cppintel/mcp-cpp-bridge/internal/logger"
	"github.com/cppintel/mcp-cpp-bridge/internal/mcpserver"
)

func printHelp() {
	fmt.Println(`mcp-cpp-bridge - C++ source-code intelligence over MCP

Usage:
  mcp-cpp-bridge [--root <dir>] [--help]

The bridge serves the MCP stdio protocol on stdin/stdout. A project root
is resolved from --root, or the current working directory otherwise; it
need not be a configured CMake project at startup (cpp_project_status
reports that state to the client).

Flags:
  --root <dir>   Project root to operate on (default: current directory)
  --help         Show this help message

Environment:
  CLANGD_PATH       clangd binary to spawn (default: "clangd" on $PATH)
  MCP_LOG_FILE      File to append structured logs to
  MCP_LOG_UNIQUE    Suffix the log path with pid/timestamp (1/true/yes)
  MCP_LOG_JSON      Emit one JSON object per log line (1/true/yes)
  MCP_LOG_LEVEL     error | info | debug (default: info)`)
}

func parseRoot(args []string) (root string, help bool, err error) {
	i := 0
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			help = true
			i++
		case arg == "--root":
			if i+1 >= len(args) {
				return "", false, fmt.Errorf("flag --root requires a value")
			}
			root = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--root="):
			root = strings.TrimPrefix(arg, "--root=")
			i++
		default:
			return "", false, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return root, help, nil
}

func main() {
	root, help, err := parseRoot(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if help {
		printHelp()
		return
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting current directory: %v\n", err)
			os.Exit(1)
		}
		root = cwd
	}
	root, err = filepath.Abs(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving project root: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	if closer, ok := log.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	srv := mcpserver.New(cfg, log)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("received shutdown signal, stopping clangd session")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("error shutting down clangd session: %v", err)
		}
		os.Exit(0)
	}()

	if err := srv.ServeStdio(); err != nil {
		log.Error("mcp server exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildLogger(cfg config.Config) (logger.Logger, error) {
	if cfg.LogFile == "" {
		return &logger.NullLogger{}, nil
	}
	return logger.NewFileLogger(cfg.LogFile, cfg.LogLevel, logger.Options{
		JSON:   cfg.LogJSON,
		Unique: cfg.LogUnique,
	})
}
