package analyzer

import (
	"context"

	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

// Callers resolves the immediate incoming call edges for the function at
// uri/pos.
func (a *Analyzer) Callers(ctx context.Context, uri string, pos lsptypes.Position) ([]CallEdge, error) {
	items, err := a.client.PrepareCallHierarchy(ctx, uri, pos)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	calls, err := a.client.GetIncomingCalls(ctx, items[0])
	if err != nil {
		return nil, err
	}
	edges := make([]CallEdge, 0, len(calls))
	for _, c := range calls {
		edges = append(edges, CallEdge{Name: c.From.Name, Location: a.toLocation(c.From.URI, c.From.Range.Start)})
	}
	return edges, nil
}

// Callees resolves the immediate outgoing call edges for the function at
// uri/pos.
func (a *Analyzer) Callees(ctx context.Context, uri string, pos lsptypes.Position) ([]CallEdge, error) {
	items, err := a.client.PrepareCallHierarchy(ctx, uri, pos)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	calls, err := a.client.GetOutgoingCalls(ctx, items[0])
	if err != nil {
		return nil, err
	}
	edges := make([]CallEdge, 0, len(calls))
	for _, c := range calls {
		edges = append(edges, CallEdge{Name: c.To.Name, Location: a.toLocation(c.To.URI, c.To.Range.Start)})
	}
	return edges, nil
}
