// Package mcpserver exposes the bridge's clangd-mediation core as MCP
// tools. It is the thin adapter layer of §1: its only job is to decode
// tool-call arguments, call into internal/analyzer and internal/build,
// and wrap results in the {success, error, issues} envelope of §7. It
// owns the lazily-created clangd session, guaranteeing callers a single
// in-process ClangdSession rather than a second IPC hop to a daemon.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cppintel/mcp-cpp-bridge/internal/analyzer"
	"github.com/cppintel/mcp-cpp-bridge/internal/build"
	"github.com/cppintel/mcp-cpp-bridge/internal/config"
	"github.com/cppintel/mcp-cpp-bridge/internal/logger"
	"github.com/cppintel/mcp-cpp-bridge/internal/lspclient"
	"github.com/cppintel/mcp-cpp-bridge/internal/watch"
)

// Server wraps one project's clangd mediation behind the MCP tool
// surface. The clangd session is created lazily, on first use by a tool
// that needs it (search_symbols, analyze_symbol_context); cpp_project_status
// and list_build_dirs never touch clangd.
type Server struct {
	cfg config.Config
	log logger.Logger

	mcp *server.MCPServer

	mu      sync.Mutex
	client  *lspclient.Client
	watcher *watch.Watcher
}

// New builds a Server and registers its tool table. Call ServeStdio to
// run it.
func New(cfg config.Config, log logger.Logger) *Server {
	if log == nil {
		log = &logger.NullLogger{}
	}
	s := &Server{cfg: cfg, log: log}

	mcpServer := server.NewMCPServer(
		"mcp-cpp-bridge",
		"0.1.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)
	s.mcp = mcpServer
	return s
}

// ServeStdio runs the MCP server over stdio until the transport closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// Shutdown tears down the clangd session, if one was ever created.
// Safe to call even if no tool call ever required clangd.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	client := s.client
	watcher := s.watcher
	s.mu.Unlock()
	if watcher != nil {
		watcher.Stop()
	}
	if client == nil {
		return nil
	}
	return client.Shutdown(ctx)
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("cpp_project_status",
			mcp.WithDescription("Report whether the working directory is a configured CMake project, and list its build directories."),
		),
		s.handleProjectStatus,
	)

	mcpServer.AddTool(
		mcp.NewTool("list_build_dirs",
			mcp.WithDescription("List configured CMake build directories discovered under the project root."),
		),
		s.handleListBuildDirs,
	)

	mcpServer.AddTool(
		mcp.NewTool("search_symbols",
			mcp.WithDescription("Search for C++ symbols across the project by name via clangd's workspace symbol index."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Symbol name or qualified name to search for (e.g. \"Widget\", \"ns::Widget::update\")"),
			),
			mcp.WithString("kind",
				mcp.Description("Restrict results to a single symbol kind (e.g. \"Class\", \"Function\", \"Variable\")"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of matches to return (default 20)"),
			),
		),
		s.handleSearchSymbols,
	)

	mcpServer.AddTool(
		mcp.NewTool("analyze_symbol_context",
			mcp.WithDescription("Resolve a C++ symbol and return its declaration/definition, inheritance, callers/callees, and usage examples."),
			mcp.WithString("symbol",
				mcp.Required(),
				mcp.Description("Bare or qualified symbol name, or a \"file:line:column\" location string"),
			),
			mcp.WithString("file_uri",
				mcp.Description("Optional file:// URI anchoring disambiguation to a specific source location"),
			),
			mcp.WithNumber("line",
				mcp.Description("1-based line number, used with file_uri to anchor disambiguation"),
			),
			mcp.WithNumber("column",
				mcp.Description("1-based column number, used with file_uri to anchor disambiguation"),
			),
			mcp.WithBoolean("include_usage_patterns",
				mcp.Description("Include classified usage examples (default true)"),
			),
			mcp.WithNumber("max_usage_examples",
				mcp.Description("Maximum usage examples to extract, capped at 100 (default 10)"),
			),
			mcp.WithBoolean("include_inheritance",
				mcp.Description("Include the recursive type hierarchy for class/struct symbols (default true)"),
			),
		),
		s.handleAnalyzeSymbolContext,
	)
}

// ensureClient returns the shared clangd session, spawning it on first
// use. Per §3, the ClangdSession is created once per project root and
// reused by every subsequent tool call that needs it.
func (s *Server) ensureClient(ctx context.Context) (*lspclient.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		switch s.client.State() {
		case lspclient.Dead, lspclient.ShuttingDown:
			s.client = nil
		default:
			return s.client, nil
		}
	}

	probe, err := build.Discover(s.cfg.WorkingDir)
	if err != nil {
		return nil, err
	}

	buildDir := ""
	for _, d := range probe.Directories {
		if d.HasCompileCommands() {
			buildDir = filepath.Dir(d.CompileCommandsPath)
			break
		}
	}

	client, err := lspclient.New(ctx, lspclient.Options{
		ClangdPath:  s.cfg.ClangdPath,
		ProjectRoot: s.cfg.WorkingDir,
		BuildDir:    buildDir,
		Logger:      s.log,
		OpenDocCap:  64,
	})
	if err != nil {
		return nil, err
	}
	s.client = client

	watcher, err := watch.New(s.cfg.WorkingDir, client.OnFilesChanged, s.log)
	if err != nil {
		// The bridge degrades to a one-shot view of the source tree rather
		// than failing the whole session over a watcher start failure.
		s.log.Error("file watcher failed to start: %v", err)
	} else {
		s.watcher = watcher
	}

	return client, nil
}

func (s *Server) analyzer(ctx context.Context) (*analyzer.Analyzer, error) {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return nil, err
	}
	return analyzer.New(client, s.log), nil
}

func toolResult(payload map[string]interface{}) (*mcp.CallToolResult, error) {
	b, err := marshalIndent(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(b), nil
}
