package analyzer

import (
	"context"
	"sort"
	"strings"

	"github.com/cppintel/mcp-cpp-bridge/internal/lspclient"
	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

// resolution is the outcome of resolving a user-supplied name: either a
// single settled match, an ambiguous set of candidates, or nothing (with
// near-miss suggestions).
type resolution struct {
	match        *lsptypes.WorkspaceSymbol
	candidates   []Candidate
	suggestions  []string
	partialIndex bool
}

// Resolve implements the resolution order: qualified vs bare name
// dispatch via workspace/symbol, anchor-based disambiguation, exact/local/
// definition tie-breaking, and near-miss suggestions on total failure.
func (a *Analyzer) Resolve(ctx context.Context, query string, anchor *Anchor) (resolution, error) {
	qualified := strings.Contains(query, "::")
	bareName := query
	if qualified {
		if idx := strings.LastIndex(query, "::"); idx >= 0 {
			bareName = query[idx+2:]
		}
	}

	searchResult, err := a.client.WorkspaceSymbol(ctx, bareName, DefaultIndexDeadline)
	if err != nil {
		return resolution{}, err
	}

	var matches []lsptypes.WorkspaceSymbol
	for _, sym := range searchResult.Symbols {
		if qualified {
			if formatQualifiedName(sym) == query {
				matches = append(matches, sym)
			}
			continue
		}
		matches = append(matches, sym)
	}

	if len(matches) == 0 {
		return resolution{
			suggestions:  a.nearMissSuggestions(ctx, bareName),
			partialIndex: searchResult.PartialIndex,
		}, nil
	}

	if len(matches) == 1 {
		return resolution{match: &matches[0], partialIndex: searchResult.PartialIndex}, nil
	}

	// Step 3: anchor-based disambiguation (same file first, then smallest
	// line distance).
	if anchor != nil {
		if best, ok := a.closestToAnchor(matches, *anchor); ok {
			return resolution{match: best, partialIndex: searchResult.PartialIndex}, nil
		}
	}

	// Step 4: exact name > project-local over external > definition over
	// declaration.
	if best := a.bestMatch(matches, bareName); best != nil {
		return resolution{match: best, partialIndex: searchResult.PartialIndex}, nil
	}

	candidates := make([]Candidate, len(matches))
	for i, m := range matches {
		candidates[i] = Candidate{
			Name:          m.Name,
			Kind:          m.Kind.String(),
			Location:      a.toLocation(m.Location.URI, m.Location.Range.Start),
			ContainerName: m.ContainerName,
		}
	}
	return resolution{candidates: candidates, partialIndex: searchResult.PartialIndex}, nil
}

func formatQualifiedName(sym lsptypes.WorkspaceSymbol) string {
	if sym.ContainerName != "" {
		return sym.ContainerName + "::" + sym.Name
	}
	return sym.Name
}

func (a *Analyzer) closestToAnchor(matches []lsptypes.WorkspaceSymbol, anchor Anchor) (*lsptypes.WorkspaceSymbol, bool) {
	anchorPath := lspclient.PathFromFileURI(anchor.URI)

	type scored struct {
		sym       *lsptypes.WorkspaceSymbol
		sameFile  bool
		lineDelta int
	}
	var scoredMatches []scored
	for i := range matches {
		path := lspclient.PathFromFileURI(matches[i].Location.URI)
		delta := matches[i].Location.Range.Start.Line - anchor.Position.Line
		if delta < 0 {
			delta = -delta
		}
		scoredMatches = append(scoredMatches, scored{
			sym:       &matches[i],
			sameFile:  path == anchorPath,
			lineDelta: delta,
		})
	}

	sort.SliceStable(scoredMatches, func(i, j int) bool {
		if scoredMatches[i].sameFile != scoredMatches[j].sameFile {
			return scoredMatches[i].sameFile
		}
		return scoredMatches[i].lineDelta < scoredMatches[j].lineDelta
	})

	if len(scoredMatches) == 0 {
		return nil, false
	}
	// Only trust the anchor if it actually narrows things to one
	// same-file candidate; otherwise fall through to the generic
	// tie-break so an anchor in an unrelated file doesn't silently pick
	// the "least wrong" candidate.
	if !scoredMatches[0].sameFile {
		return nil, false
	}
	return scoredMatches[0].sym, true
}

// bestMatch applies step 4's tie-break (exact name > project-local over
// external > definition over declaration). It returns nil, rather than an
// arbitrary pick, when the top two candidates score identically on all
// three criteria: that's a genuine tie, and the caller reports it as
// Ambiguous instead of silently choosing one.
func (a *Analyzer) bestMatch(matches []lsptypes.WorkspaceSymbol, bareName string) *lsptypes.WorkspaceSymbol {
	type scored struct {
		sym   *lsptypes.WorkspaceSymbol
		score int
	}
	var scoredMatches []scored
	for i := range matches {
		path := lspclient.PathFromFileURI(matches[i].Location.URI)
		score := 0
		if matches[i].Name == bareName {
			score |= 4
		}
		if a.isProjectLocal(path) {
			score |= 2
		}
		if a.isLikelyDefinition(path, matches[i].Location.Range.Start.Line, matches[i].Kind) {
			score |= 1
		}
		scoredMatches = append(scoredMatches, scored{sym: &matches[i], score: score})
	}

	sort.SliceStable(scoredMatches, func(i, j int) bool {
		return scoredMatches[i].score > scoredMatches[j].score
	})

	if len(scoredMatches) == 0 {
		return nil
	}
	if len(scoredMatches) > 1 && scoredMatches[0].score == scoredMatches[1].score {
		return nil
	}
	return scoredMatches[0].sym
}

// isProjectLocal reports whether path lies within the project root rather
// than e.g. a system header outside it.
func (a *Analyzer) isProjectLocal(path string) bool {
	rel := a.client.ToRelativePath(path)
	return !strings.HasPrefix(rel, "..")
}

// nearMissSuggestions retries the search with a short prefix of the query
// to gather a broader candidate pool, then filters by edit distance. This
// is a best-effort approximation: clangd has no "fuzzy name list" API, so
// the analyzer widens the query itself to approximate one.
func (a *Analyzer) nearMissSuggestions(ctx context.Context, bareName string) []string {
	prefixLen := 3
	if len(bareName) < prefixLen {
		prefixLen = len(bareName)
	}
	if prefixLen == 0 {
		return nil
	}

	result, err := a.client.WorkspaceSymbol(ctx, bareName[:prefixLen], DefaultIndexDeadline)
	if err != nil {
		return nil
	}

	names := make([]string, len(result.Symbols))
	for i, sym := range result.Symbols {
		names[i] = sym.Name
	}
	return nearMissNames(bareName, names, NearMissMaxDistance, NearMissCap)
}
