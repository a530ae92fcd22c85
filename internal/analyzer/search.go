package analyzer

import (
	"context"
)

// SearchResult is the response shape for the search_symbols MCP tool.
type SearchResult struct {
	Matches      []Candidate `json:"matches"`
	PartialIndex bool        `json:"partial_index,omitempty"`
}

// Search performs a workspace-wide symbol search, optionally filtered by
// kind, capped at limit. Adapted from the reference CLI's Search command.
func (a *Analyzer) Search(ctx context.Context, query string, kindFilter string, limit int) (SearchResult, error) {
	result, err := a.client.WorkspaceSymbol(ctx, query, DefaultIndexDeadline)
	if err != nil {
		return SearchResult{}, err
	}

	matches := make([]Candidate, 0, len(result.Symbols))
	for _, sym := range result.Symbols {
		if kindFilter != "" && sym.Kind.String() != kindFilter {
			continue
		}
		matches = append(matches, Candidate{
			Name:          sym.Name,
			Kind:          sym.Kind.String(),
			Location:      a.toLocation(sym.Location.URI, sym.Location.Range.Start),
			ContainerName: sym.ContainerName,
		})
		if limit > 0 && len(matches) >= limit {
			break
		}
	}

	return SearchResult{Matches: matches, PartialIndex: result.PartialIndex}, nil
}
