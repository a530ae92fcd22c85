package analyzer

import (
	"context"
	"sync"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

// AnalyzeSymbolContext is the top-level entry point behind the
// analyze_symbol_context MCP tool: it resolves req.Query to a single
// location, then fans out the enrichment steps concurrently, degrading
// individual steps to a Skipped reason rather than failing the whole call.
func (a *Analyzer) AnalyzeSymbolContext(ctx context.Context, req Request) (*Result, error) {
	uri, pos, kind, name, qualifiedName, partial, early, err := a.settle(ctx, req)
	if err != nil {
		return nil, err
	}
	if early != nil {
		return early, nil
	}

	if err := a.client.OpenDocument(uri); err != nil {
		return nil, err
	}

	result := &Result{
		Symbol: Symbol{
			Name:          name,
			QualifiedName: qualifiedName,
			Kind:          kind.String(),
		},
		PartialIndex: partial,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		hover, err := a.client.GetHover(ctx, uri, pos)
		if err != nil || hover == nil {
			return
		}
		parsed := ParseHover(hover.Contents.Value)
		result.Symbol.Type = parsed.ReturnType
		result.Symbol.Documentation = parsed.Documentation
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		decl, def, err := a.DeclarationAndDefinition(ctx, uri, pos, kind)
		if err != nil {
			return
		}
		result.Declaration, result.Definition = decl, def
	}()

	if req.IncludeInheritance && isTypeKind(kind) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			node, err := a.TypeHierarchy(ctx, uri, pos)
			if err != nil {
				result.InheritanceSkipped = skipReason(err)
				return
			}
			result.Inheritance = node
		}()
	}

	if isCallableKind(kind) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			callers, err := a.Callers(ctx, uri, pos)
			if err != nil {
				result.CallersSkipped = skipReason(err)
				return
			}
			result.Callers = callers
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			callees, err := a.Callees(ctx, uri, pos)
			if err != nil {
				result.CalleesSkipped = skipReason(err)
				return
			}
			result.Callees = callees
		}()
	}

	if req.IncludeUsagePatterns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			usages, err := a.UsageExamples(ctx, uri, pos, name, req.MaxUsageExamples)
			if err != nil {
				result.UsagesSkipped = skipReason(err)
				return
			}
			result.Usages = usages
		}()
	}

	if isTypeKind(kind) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			members, err := a.PublicInterface(ctx, uri, pos)
			if err != nil {
				return
			}
			result.PublicInterface = members
		}()
	}

	wg.Wait()
	return result, nil
}

// settle resolves req into a single location, or returns a non-nil Result
// early if the input was ambiguous or not found. Both the ambiguous and the
// not-found branches are reported as successful calls (err == nil) carrying
// their respective fields, per §4.5 step 5: a miss is an advisory result
// with suggestions, not a hard failure.
func (a *Analyzer) settle(ctx context.Context, req Request) (uri string, pos lsptypes.Position, kind lsptypes.SymbolKind, name, qualifiedName string, partial bool, early *Result, err error) {
	if locURI, locPos, ok := a.parseLocationString(req.Query); ok {
		return locURI, locPos, lsptypes.SymbolKindFunction, req.Query, req.Query, false, nil, nil
	}

	res, rerr := a.Resolve(ctx, req.Query, req.Anchor)
	if rerr != nil {
		return "", lsptypes.Position{}, 0, "", "", false, nil, rerr
	}

	if res.match == nil && len(res.candidates) == 0 {
		return "", lsptypes.Position{}, 0, "", "", false, &Result{
			NotFound:     true,
			Suggestions:  res.suggestions,
			PartialIndex: res.partialIndex,
		}, nil
	}

	if res.match == nil {
		return "", lsptypes.Position{}, 0, "", "", false, &Result{
			Ambiguous:    true,
			Candidates:   res.candidates,
			PartialIndex: res.partialIndex,
		}, nil
	}

	m := res.match
	return m.Location.URI, m.Location.Range.Start, m.Kind, m.Name, formatQualifiedName(*m), res.partialIndex, nil, nil
}

func skipReason(err error) string {
	if kind, ok := bridgeerr.Of(err); ok {
		return kind.String()
	}
	return "error"
}
