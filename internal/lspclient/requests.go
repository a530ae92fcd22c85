package lspclient

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

// OpenDocument sends textDocument/didOpen if uri isn't already open,
// evicting the least-recently-used document if the LRU cap is exceeded.
func (c *Client) OpenDocument(uri string) error {
	if c.docs.isOpen(uri) {
		return nil
	}

	path := PathFromFileURI(uri)
	content, err := os.ReadFile(path)
	if err != nil {
		return bridgeerr.Wrap(bridgeerr.Io, err, "reading %s", path)
	}

	if err := c.notify("textDocument/didOpen", lsptypes.DidOpenTextDocumentParams{
		TextDocument: lsptypes.TextDocumentItem{
			URI:        uri,
			LanguageID: languageID(path),
			Version:    1,
			Text:       string(content),
		},
	}); err != nil {
		return err
	}

	if evict := c.docs.touch(uri); evict != "" {
		_ = c.CloseDocument(evict)
	}
	return nil
}

// CloseDocument sends textDocument/didClose if uri is currently open.
func (c *Client) CloseDocument(uri string) error {
	if !c.docs.isOpen(uri) {
		return nil
	}
	c.docs.remove(uri)
	return c.notify("textDocument/didClose", lsptypes.DidCloseTextDocumentParams{
		TextDocument: lsptypes.TextDocumentIdentifier{URI: uri},
	})
}

func (c *Client) ensureOpen(uri string) error { return c.OpenDocument(uri) }

// GetDefinition resolves textDocument/definition; clangd may answer with a
// single Location, an array, or null.
func (c *Client) GetDefinition(ctx context.Context, uri string, pos lsptypes.Position) ([]lsptypes.Location, error) {
	if err := c.ensureOpen(uri); err != nil {
		return nil, err
	}
	result, err := c.request(ctx, "textDocument/definition", lsptypes.DefinitionParams{
		TextDocumentPositionParams: lsptypes.TextDocumentPositionParams{
			TextDocument: lsptypes.TextDocumentIdentifier{URI: uri}, Position: pos,
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeLocations(result)
}

// GetDeclaration resolves textDocument/declaration.
func (c *Client) GetDeclaration(ctx context.Context, uri string, pos lsptypes.Position) ([]lsptypes.Location, error) {
	if err := c.ensureOpen(uri); err != nil {
		return nil, err
	}
	result, err := c.request(ctx, "textDocument/declaration", lsptypes.DeclarationParams{
		TextDocumentPositionParams: lsptypes.TextDocumentPositionParams{
			TextDocument: lsptypes.TextDocumentIdentifier{URI: uri}, Position: pos,
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeLocations(result)
}

func decodeLocations(result json.RawMessage) ([]lsptypes.Location, error) {
	if len(result) == 0 || string(result) == "null" {
		return nil, nil
	}
	var locs []lsptypes.Location
	if err := json.Unmarshal(result, &locs); err == nil {
		return locs, nil
	}
	var loc lsptypes.Location
	if err := json.Unmarshal(result, &loc); err == nil {
		return []lsptypes.Location{loc}, nil
	}
	return nil, nil
}

// GetReferences resolves textDocument/references.
func (c *Client) GetReferences(ctx context.Context, uri string, pos lsptypes.Position, includeDeclaration bool) ([]lsptypes.Location, error) {
	if err := c.ensureOpen(uri); err != nil {
		return nil, err
	}
	result, err := c.request(ctx, "textDocument/references", lsptypes.ReferenceParams{
		TextDocumentPositionParams: lsptypes.TextDocumentPositionParams{
			TextDocument: lsptypes.TextDocumentIdentifier{URI: uri}, Position: pos,
		},
		Context: lsptypes.ReferenceContext{IncludeDeclaration: includeDeclaration},
	})
	if err != nil {
		return nil, err
	}
	var locs []lsptypes.Location
	if err := json.Unmarshal(result, &locs); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding references result")
	}
	return locs, nil
}

// GetHover resolves textDocument/hover.
func (c *Client) GetHover(ctx context.Context, uri string, pos lsptypes.Position) (*lsptypes.Hover, error) {
	if err := c.ensureOpen(uri); err != nil {
		return nil, err
	}
	result, err := c.request(ctx, "textDocument/hover", lsptypes.HoverParams{
		TextDocumentPositionParams: lsptypes.TextDocumentPositionParams{
			TextDocument: lsptypes.TextDocumentIdentifier{URI: uri}, Position: pos,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, nil
	}
	var hover lsptypes.Hover
	if err := json.Unmarshal(result, &hover); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding hover result")
	}
	return &hover, nil
}

// GetDocumentSymbols resolves textDocument/documentSymbol.
func (c *Client) GetDocumentSymbols(ctx context.Context, uri string) ([]lsptypes.DocumentSymbol, error) {
	if err := c.ensureOpen(uri); err != nil {
		return nil, err
	}
	result, err := c.request(ctx, "textDocument/documentSymbol", lsptypes.DocumentSymbolParams{
		TextDocument: lsptypes.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		return nil, err
	}
	var symbols []lsptypes.DocumentSymbol
	if err := json.Unmarshal(result, &symbols); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding documentSymbol result")
	}
	return symbols, nil
}

// GetFoldingRanges resolves textDocument/foldingRange.
func (c *Client) GetFoldingRanges(ctx context.Context, uri string) ([]lsptypes.FoldingRange, error) {
	if err := c.ensureOpen(uri); err != nil {
		return nil, err
	}
	result, err := c.request(ctx, "textDocument/foldingRange", lsptypes.FoldingRangeParams{
		TextDocument: lsptypes.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		return nil, err
	}
	var ranges []lsptypes.FoldingRange
	if err := json.Unmarshal(result, &ranges); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding foldingRange result")
	}
	return ranges, nil
}

// WorkspaceSymbolResult wraps the raw matches with the partial_index
// advisory only; callers decide whether to wait for it.
type WorkspaceSymbolResult struct {
	Symbols      []lsptypes.WorkspaceSymbol
	PartialIndex bool
}

// WorkspaceSymbol resolves workspace/symbol, optionally waiting up to
// indexDeadline for indexing to complete first. If the deadline elapses,
// it proceeds anyway and flags the result as partial.
func (c *Client) WorkspaceSymbol(ctx context.Context, query string, indexDeadline time.Duration) (WorkspaceSymbolResult, error) {
	complete := c.WaitForIndexing(ctx, indexDeadline)

	result, err := c.request(ctx, "workspace/symbol", lsptypes.WorkspaceSymbolParams{Query: query})
	if err != nil {
		return WorkspaceSymbolResult{}, err
	}
	var symbols []lsptypes.WorkspaceSymbol
	if err := json.Unmarshal(result, &symbols); err != nil {
		return WorkspaceSymbolResult{}, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding workspace/symbol result")
	}
	return WorkspaceSymbolResult{Symbols: symbols, PartialIndex: !complete}, nil
}

// PrepareTypeHierarchy resolves textDocument/prepareTypeHierarchy.
func (c *Client) PrepareTypeHierarchy(ctx context.Context, uri string, pos lsptypes.Position) ([]lsptypes.TypeHierarchyItem, error) {
	if err := c.ensureOpen(uri); err != nil {
		return nil, err
	}
	result, err := c.request(ctx, "textDocument/prepareTypeHierarchy", lsptypes.TypeHierarchyPrepareParams{
		TextDocumentPositionParams: lsptypes.TextDocumentPositionParams{
			TextDocument: lsptypes.TextDocumentIdentifier{URI: uri}, Position: pos,
		},
	})
	if err != nil {
		return nil, err
	}
	var items []lsptypes.TypeHierarchyItem
	if err := json.Unmarshal(result, &items); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding prepareTypeHierarchy result")
	}
	return items, nil
}

// GetSupertypes resolves typeHierarchy/supertypes.
func (c *Client) GetSupertypes(ctx context.Context, item lsptypes.TypeHierarchyItem) ([]lsptypes.TypeHierarchyItem, error) {
	result, err := c.request(ctx, "typeHierarchy/supertypes", lsptypes.TypeHierarchySupertypesParams{Item: item})
	if err != nil {
		return nil, err
	}
	var items []lsptypes.TypeHierarchyItem
	if err := json.Unmarshal(result, &items); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding supertypes result")
	}
	return items, nil
}

// GetSubtypes resolves typeHierarchy/subtypes.
func (c *Client) GetSubtypes(ctx context.Context, item lsptypes.TypeHierarchyItem) ([]lsptypes.TypeHierarchyItem, error) {
	result, err := c.request(ctx, "typeHierarchy/subtypes", lsptypes.TypeHierarchySubtypesParams{Item: item})
	if err != nil {
		return nil, err
	}
	var items []lsptypes.TypeHierarchyItem
	if err := json.Unmarshal(result, &items); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding subtypes result")
	}
	return items, nil
}

// PrepareCallHierarchy resolves textDocument/prepareCallHierarchy.
func (c *Client) PrepareCallHierarchy(ctx context.Context, uri string, pos lsptypes.Position) ([]lsptypes.CallHierarchyItem, error) {
	if err := c.ensureOpen(uri); err != nil {
		return nil, err
	}
	result, err := c.request(ctx, "textDocument/prepareCallHierarchy", lsptypes.CallHierarchyPrepareParams{
		TextDocumentPositionParams: lsptypes.TextDocumentPositionParams{
			TextDocument: lsptypes.TextDocumentIdentifier{URI: uri}, Position: pos,
		},
	})
	if err != nil {
		return nil, err
	}
	var items []lsptypes.CallHierarchyItem
	if err := json.Unmarshal(result, &items); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding prepareCallHierarchy result")
	}
	return items, nil
}

// GetIncomingCalls resolves callHierarchy/incomingCalls.
func (c *Client) GetIncomingCalls(ctx context.Context, item lsptypes.CallHierarchyItem) ([]lsptypes.CallHierarchyIncomingCall, error) {
	result, err := c.request(ctx, "callHierarchy/incomingCalls", lsptypes.CallHierarchyIncomingCallsParams{Item: item})
	if err != nil {
		return nil, err
	}
	var calls []lsptypes.CallHierarchyIncomingCall
	if err := json.Unmarshal(result, &calls); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding incomingCalls result")
	}
	return calls, nil
}

// GetOutgoingCalls resolves callHierarchy/outgoingCalls.
func (c *Client) GetOutgoingCalls(ctx context.Context, item lsptypes.CallHierarchyItem) ([]lsptypes.CallHierarchyOutgoingCall, error) {
	result, err := c.request(ctx, "callHierarchy/outgoingCalls", lsptypes.CallHierarchyOutgoingCallsParams{Item: item})
	if err != nil {
		return nil, err
	}
	var calls []lsptypes.CallHierarchyOutgoingCall
	if err := json.Unmarshal(result, &calls); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Protocol, err, "decoding outgoingCalls result")
	}
	return calls, nil
}

// OnFilesChanged applies the close/reopen reindex workaround for files
// already open, then notifies clangd of the change set.
func (c *Client) OnFilesChanged(files []string) {
	events := make([]lsptypes.FileEvent, 0, len(files))
	for _, f := range files {
		uri := c.FileURIFromPath(f)
		if c.docs.isOpen(uri) {
			_ = c.CloseDocument(uri)
			_ = c.OpenDocument(uri)
		}
		events = append(events, lsptypes.FileEvent{URI: uri, Type: lsptypes.FileChangeTypeChanged})
	}
	_ = c.notify("workspace/didChangeWatchedFiles", lsptypes.DidChangeWatchedFilesParams{Changes: events})
}
