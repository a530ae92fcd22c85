// Package lspclient drives one clangd child process through its full LSP
// lifecycle: request multiplexing, notification dispatch, indexing-progress
// tracking, and document synchronization. This is the hardest
// subsystem in the bridge.
package lspclient

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
	"github.com/cppintel/mcp-cpp-bridge/internal/logger"
	"github.com/cppintel/mcp-cpp-bridge/internal/lspframe"
	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
	"github.com/cppintel/mcp-cpp-bridge/internal/transport"
)

// IndexingState mirrors the ClangdSession.indexing_state attribute in §3.
type IndexingState int

const (
	IndexingNotStarted IndexingState = iota
	IndexingInProgress
	IndexingDone
)

// IndexingProgress is the current indexing snapshot.
type IndexingProgress struct {
	State   IndexingState
	Done    int
	Total   int
	Message string
}

// Client owns one clangd child and provides the request/notify API that
// higher layers (the symbol analyzer) build on. It is the Go realization
// of the ClangdSession + LSP client.
type Client struct {
	transport   *transport.Transport
	projectRoot string
	buildDir    string
	log         logger.Logger

	state    stateMachine
	pending  *pendingTable
	nextID   int64
	writeMu  sync.Mutex // serializes frame writes (single-writer contract)

	progressMu sync.Mutex
	progress   IndexingProgress
	indexingCh chan struct{}
	indexOnce  sync.Once

	diagMu      sync.Mutex
	diagnostics map[string][]lsptypes.Diagnostic

	docs *docSet

	capabilities *lsptypes.ServerCapabilities

	done chan struct{} // closed once the reader goroutine exits
}

// Options configures a new Client.
type Options struct {
	ClangdPath  string
	ProjectRoot string
	BuildDir    string // compile_commands.json directory, may be empty
	Logger      logger.Logger
	OpenDocCap  int
}

// New spawns clangd and drives it through initialize/initialized. It
// returns once the Ready state is reached (or an error on failure).
func New(ctx context.Context, opts Options) (*Client, error) {
	log := opts.Logger
	if log == nil {
		log = &logger.NullLogger{}
	}

	args := []string{
		"--background-index",
		"--clang-tidy=false",
		"--log=verbose",
		"--header-insertion=never",
		"--pch-storage=memory",
		"--ranking-model=decision_forest",
		"--all-scopes-completion",
		"--completion-style=detailed",
		"--function-arg-placeholders",
		"--header-insertion-decorators",
		"--query-driver=*",
	}
	if opts.BuildDir != "" {
		args = append(args, fmt.Sprintf("--compile-commands-dir=%s", opts.BuildDir))
	}

	tp, err := transport.Spawn(ctx, opts.ClangdPath, args, opts.ProjectRoot, stderrSink(log))
	if err != nil {
		return nil, err
	}

	c := &Client{
		transport:   tp,
		projectRoot: opts.ProjectRoot,
		buildDir:    opts.BuildDir,
		log:         log,
		pending:     newPendingTable(),
		indexingCh:  make(chan struct{}),
		diagnostics: make(map[string][]lsptypes.Diagnostic),
		docs:        newDocSet(opts.OpenDocCap),
		done:        make(chan struct{}),
	}
	c.state.set(PreInit)

	go c.readLoop()
	go c.watchChildDeath()

	if err := c.initialize(ctx); err != nil {
		c.Kill()
		return nil, err
	}

	return c, nil
}

// stderrSink adapts a logger.Logger into an io.Writer for clangd's stderr,
// routed to the session log file per §4.1.
type loggerWriter struct{ log logger.Logger }

func (w loggerWriter) Write(p []byte) (int, error) {
	w.log.Debug("[clangd] %s", string(p))
	return len(p), nil
}

func stderrSink(log logger.Logger) loggerWriter { return loggerWriter{log: log} }

func (c *Client) watchChildDeath() {
	<-c.transport.Wait()
	c.onFatal(bridgeerr.New(bridgeerr.ChildGone, "clangd process exited"))
}

// onFatal transitions the session to ShuttingDown/Dead and fails every
// pending waiter with it rather than leaving requests hanging forever.
func (c *Client) onFatal(err error) {
	c.state.set(ShuttingDown)
	c.pending.drainWithError(err)
	c.state.set(Dead)
	c.progressMu.Lock()
	c.indexOnce.Do(func() { close(c.indexingCh) })
	c.progressMu.Unlock()
}

// readLoop is the single reader goroutine: it owns clangd's stdout
// exclusively and dispatches every frame by id or method.
func (c *Client) readLoop() {
	defer close(c.done)
	for {
		env, err := c.transport.ReadMessage()
		if err != nil {
			c.onFatal(err)
			return
		}
		c.dispatch(env)
	}
}

func (c *Client) dispatch(env *lspframe.Envelope) {
	switch {
	case env.IsResponse():
		c.dispatchResponse(env)
	case env.IsRequest():
		c.handleServerRequest(env)
	case env.IsNotification():
		c.handleNotification(env.Method, env.Params)
	}
}

func (c *Client) dispatchResponse(env *lspframe.Envelope) {
	var id string
	if err := json.Unmarshal(env.ID, &id); err != nil {
		// Some servers emit numeric ids; normalize.
		var n json.Number
		if err := json.Unmarshal(env.ID, &n); err != nil {
			c.log.Error("response with unparseable id: %s", string(env.ID))
			return
		}
		id = n.String()
	}

	resp := &lspframe.Response{ID: id, Result: env.Result, Error: env.Error}
	if !c.pending.deliver(id, pendingResult{resp: resp}) {
		c.log.Debug("dropped response for unknown id %s", id)
	}
}

// handleServerRequest answers the fixed set of server-initiated requests
// below.
func (c *Client) handleServerRequest(env *lspframe.Envelope) {
	switch env.Method {
	case "window/workDoneProgress/create", "client/registerCapability", "client/unregisterCapability":
		c.writeMessage(lspframe.Response{Jsonrpc: "2.0", ID: rawID(env.ID), Result: json.RawMessage("null")})
	default:
		c.writeMessage(lspframe.Response{
			Jsonrpc: "2.0",
			ID:      rawID(env.ID),
			Error:   &lspframe.RPCError{Code: lspframe.MethodNotFound, Message: "method not found: " + env.Method},
		})
	}
}

func rawID(id json.RawMessage) interface{} {
	var v interface{}
	_ = json.Unmarshal(id, &v)
	return v
}

// handleNotification processes clangd-initiated notifications.
func (c *Client) handleNotification(method string, params json.RawMessage) {
	switch method {
	case "$/progress":
		c.handleProgress(params)
	case "textDocument/publishDiagnostics":
		c.handleDiagnostics(params)
	case "window/logMessage", "window/showMessage":
		c.handleLogMessage(method, params)
	default:
		// Unrecognized notifications are dropped; the coordinator never
		// blocks dispatch on them.
	}
}

func (c *Client) handleProgress(params json.RawMessage) {
	var p lsptypes.ProgressParams
	if err := json.Unmarshal(params, &p); err != nil {
		return
	}

	c.progressMu.Lock()
	defer c.progressMu.Unlock()

	switch p.Value.Kind {
	case "begin":
		c.progress = IndexingProgress{State: IndexingInProgress, Total: percentOr(p.Value.Percentage, 100), Message: p.Value.Message}
	case "report":
		if p.Value.Percentage != nil {
			c.progress.Done = *p.Value.Percentage
		}
		if p.Value.Message != "" {
			c.progress.Message = p.Value.Message
		}
	case "end":
		c.progress.State = IndexingDone
		c.indexOnce.Do(func() { close(c.indexingCh) })
	}
}

func percentOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func (c *Client) handleDiagnostics(params json.RawMessage) {
	var p lsptypes.PublishDiagnosticsParams
	if err := json.Unmarshal(params, &p); err != nil {
		return
	}
	c.diagMu.Lock()
	c.diagnostics[p.URI] = p.Diagnostics
	c.diagMu.Unlock()
}

func (c *Client) handleLogMessage(method string, params json.RawMessage) {
	var payload struct {
		Type    int    `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(params, &payload); err != nil {
		return
	}
	c.log.Debug("[clangd %s] %s", method, payload.Message)
}

// Diagnostics returns the last-known diagnostics for uri. Exposed for a
// future dedicated diagnostics tool; analyze_symbol_context does not use
// it (decided in DESIGN.md's Open Question resolutions).
func (c *Client) Diagnostics(uri string) []lsptypes.Diagnostic {
	c.diagMu.Lock()
	defer c.diagMu.Unlock()
	return append([]lsptypes.Diagnostic(nil), c.diagnostics[uri]...)
}

func (c *Client) writeMessage(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.transport.WriteMessage(v)
}

// request sends method/params and blocks for a response, honoring ctx
// cancellation and deadlines.
func (c *Client) request(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	id := strconv.FormatInt(atomic.AddInt64(&c.nextID, 1), 10)

	slot, ok := c.pending.insert(id)
	if !ok {
		return nil, bridgeerr.New(bridgeerr.Busy, "too many outstanding requests")
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		c.pending.remove(id)
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "encoding params for %s", method)
	}

	req := lspframe.Request{Jsonrpc: "2.0", ID: id, Method: method, Params: paramsJSON}
	if err := c.writeMessage(req); err != nil {
		c.pending.remove(id)
		return nil, err
	}

	select {
	case r := <-slot:
		if r.err != nil {
			return nil, r.err
		}
		if r.resp.Error != nil {
			return nil, bridgeerr.New(bridgeerr.Protocol, "clangd returned error for %s: %s", method, r.resp.Error.Message)
		}
		return r.resp.Result, nil

	case <-ctx.Done():
		c.cancelRequest(id)
		if ctx.Err() == context.DeadlineExceeded {
			return nil, bridgeerr.New(bridgeerr.Timeout, "%s timed out", method)
		}
		return nil, bridgeerr.New(bridgeerr.Cancelled, "%s cancelled", method)
	}
}

// cancelRequest sends $/cancelRequest and removes the slot so a late
// response is discarded silently.
func (c *Client) cancelRequest(id string) {
	c.pending.remove(id)
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	_ = c.notify("$/cancelRequest", struct {
		ID int64 `json:"id"`
	}{ID: n})
}

func (c *Client) notify(method string, params interface{}) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return bridgeerr.Wrap(bridgeerr.Malformed, err, "encoding params for %s", method)
	}
	return c.writeMessage(lspframe.Notification{Jsonrpc: "2.0", Method: method, Params: paramsJSON})
}

// initialize drives PreInit -> Initializing -> Ready.
func (c *Client) initialize(ctx context.Context) error {
	c.state.set(Initializing)

	pid := os.Getpid()
	params := lsptypes.InitializeParams{
		ProcessID: &pid,
		RootURI:   c.FileURIFromPath(c.projectRoot),
		Capabilities: lsptypes.ClientCapabilities{
			TextDocument: lsptypes.TextDocumentClientCapabilities{
				Synchronization: lsptypes.TextDocumentSyncClientCapabilities{DidSave: true},
				Hover:           lsptypes.HoverClientCapabilities{ContentFormat: []string{"markdown", "plaintext"}},
				DocumentSymbol:  lsptypes.DocumentSymbolClientCapabilities{HierarchicalDocumentSymbolSupport: true},
				FoldingRange:    lsptypes.FoldingRangeClientCapabilities{RangeLimit: 5000},
				TypeHierarchy:   lsptypes.TypeHierarchyClientCapabilities{},
				CallHierarchy:   lsptypes.CallHierarchyClientCapabilities{},
			},
			Workspace: lsptypes.WorkspaceClientCapabilities{},
		},
	}

	result, err := c.request(ctx, "initialize", params)
	if err != nil {
		return err
	}

	var initResult lsptypes.InitializeResult
	if err := json.Unmarshal(result, &initResult); err != nil {
		return bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding initialize result")
	}
	c.capabilities = &initResult.Capabilities

	if err := c.notify("initialized", struct{}{}); err != nil {
		return err
	}
	c.state.set(Ready)

	// Opening a first source file nudges clangd to begin background
	// indexing; without it workspace/symbol can return nothing.
	// https://github.com/clangd/clangd/discussions/1339
	if first := c.firstSourceFile(); first != "" {
		uri := c.FileURIFromPath(first)
		if err := c.OpenDocument(uri); err != nil {
			c.log.Info("failed to open initial source file %s: %v", first, err)
		}
	} else {
		c.log.Info("no source file found to seed indexing")
	}

	return nil
}

func (c *Client) firstSourceFile() string {
	if c.buildDir == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(c.buildDir, "compile_commands.json"))
	if err != nil {
		return ""
	}
	var entries []struct {
		File string `json:"file"`
	}
	if err := json.Unmarshal(data, &entries); err != nil || len(entries) == 0 {
		return ""
	}
	for _, e := range entries {
		if hasCppSourceExt(e.File) {
			return e.File
		}
	}
	return entries[0].File
}

func hasCppSourceExt(path string) bool {
	switch filepath.Ext(path) {
	case ".cc", ".cpp", ".cxx", ".c++", ".c":
		return true
	default:
		return false
	}
}

// WaitForIndexing blocks until indexing completes or deadline elapses,
// returning whether it completed before the deadline.
func (c *Client) WaitForIndexing(ctx context.Context, deadline time.Duration) (complete bool) {
	select {
	case <-c.indexingCh:
		return true
	case <-time.After(deadline):
		return false
	case <-ctx.Done():
		return false
	}
}

// Progress returns the current indexing snapshot.
func (c *Client) Progress() IndexingProgress {
	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	return c.progress
}

// State returns the current lifecycle state.
func (c *Client) State() State { return c.state.get() }

// Shutdown performs graceful shutdown/exit, then kills the child if it
// doesn't exit within 2 seconds.
func (c *Client) Shutdown(ctx context.Context) error {
	c.state.set(ShuttingDown)
	if _, err := c.request(ctx, "shutdown", lsptypes.ShutdownParams{}); err != nil {
		c.log.Debug("shutdown request failed: %v", err)
	}
	if err := c.notify("exit", lsptypes.ExitParams{}); err != nil {
		c.log.Debug("exit notification failed: %v", err)
	}
	c.transport.GracefulStop(2 * time.Second)
	c.state.set(Dead)
	return nil
}

// Kill forces the child process down immediately.
func (c *Client) Kill() error {
	return c.transport.Kill()
}
