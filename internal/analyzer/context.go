package analyzer

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/cppintel/mcp-cpp-bridge/internal/lspclient"
	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

var sourceFileExt = regexp.MustCompile(`\.(cc|cpp|cxx|c\+\+|c)$`)

// hasBody reports whether a function/method declaration at startLine is
// immediately followed by an opening brace, i.e. it is itself a
// definition. Adapted from the reference CLI's Show command.
func hasBody(path string, startLine int) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	lines := strings.Split(string(content), "\n")
	end := startLine + 5
	if end > len(lines) {
		end = len(lines)
	}
	for i := startLine; i < end; i++ {
		if strings.Contains(lines[i], "{") {
			return true, nil
		}
	}
	return false, nil
}

// isLikelyDefinition combines the source-file-extension heuristic with a
// brace scan: a function symbol located in a .cpp/.cc file is almost
// always a definition, and in a header is a definition only if it has an
// inline body.
func (a *Analyzer) isLikelyDefinition(path string, startLine int, kind lsptypes.SymbolKind) bool {
	if !isCallableKind(kind) {
		return true
	}
	if sourceFileExt.MatchString(strings.ToLower(path)) {
		return true
	}
	body, _ := hasBody(path, startLine)
	return body
}

func isCallableKind(kind lsptypes.SymbolKind) bool {
	return kind == lsptypes.SymbolKindFunction || kind == lsptypes.SymbolKindMethod || kind == lsptypes.SymbolKindConstructor
}

func isTypeKind(kind lsptypes.SymbolKind) bool {
	return kind == lsptypes.SymbolKindClass || kind == lsptypes.SymbolKindStruct || kind == lsptypes.SymbolKindInterface
}

// findCommentStart scans upward from startLine for a contiguous run of
// comment lines, returning the line the excerpt should actually start at.
func findCommentStart(lines []string, startLine int) int {
	commentStart := startLine
	floor := startLine - CommentScanLines
	if floor < 0 {
		floor = 0
	}
	for j := startLine - 1; j >= floor; j-- {
		if j >= len(lines) {
			continue
		}
		line := strings.TrimSpace(lines[j])
		switch {
		case strings.HasPrefix(line, "//"), strings.HasPrefix(line, "/*"), strings.HasPrefix(line, "*"), line == "*/":
			commentStart = j
		case line == "":
			// keep scanning through blank lines inside a comment run
		default:
			return commentStart
		}
	}
	return commentStart
}

// excerptBounds picks the [start, end] line range (0-based, inclusive) to
// show for a declaration/definition location, using folding ranges to
// find the enclosing body the way the reference CLI's Show command does.
func excerptBounds(kind lsptypes.SymbolKind, isDefinition bool, startLine int, lines []string, foldingRanges []lsptypes.FoldingRange) (start, end int) {
	commentStart := findCommentStart(lines, startLine)
	lastLine := len(lines) - 1

	switch {
	case isCallableKind(kind) && isDefinition:
		start = commentStart
		var best *lsptypes.FoldingRange
		bestSize := -1
		for i := range foldingRanges {
			fr := &foldingRanges[i]
			if fr.StartLine >= startLine-1 && fr.StartLine <= startLine+5 {
				size := fr.EndLine - fr.StartLine
				if size > bestSize {
					best = fr
					bestSize = size
				}
			}
		}
		if best != nil {
			end = min(best.EndLine+1, lastLine)
		} else {
			end = min(startLine+50, lastLine)
		}
	case isCallableKind(kind) && !isDefinition:
		start = commentStart
		end = startLine
	case isTypeKind(kind), kind == lsptypes.SymbolKindEnum:
		start = commentStart
		var body *lsptypes.FoldingRange
		for i := range foldingRanges {
			fr := &foldingRanges[i]
			if fr.StartLine >= startLine && fr.StartLine <= startLine+2 {
				body = fr
				break
			}
		}
		if body != nil {
			end = min(body.EndLine, lastLine)
		} else {
			end = min(startLine+100, lastLine)
		}
	default:
		start = commentStart
		end = startLine
	}

	if start < 0 {
		start = 0
	}
	if end > lastLine {
		end = lastLine
	}
	return start, end
}

// buildExcerpt reads path and renders the [start, end] line range as a
// fenced code block.
func buildExcerpt(path string, start, end int) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	lines := strings.Split(string(content), "\n")
	if start > end || start >= len(lines) {
		return "", nil
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	var b strings.Builder
	b.WriteString("```cpp\n")
	b.WriteString(strings.Join(lines[start:end+1], "\n"))
	b.WriteString("\n```")
	return b.String(), nil
}

// DeclarationAndDefinition resolves both halves of a symbol (declaration
// and, if different, definition) with source excerpts, the way the
// reference CLI's Show command displays both sides of a C++ split.
func (a *Analyzer) DeclarationAndDefinition(ctx context.Context, uri string, pos lsptypes.Position, kind lsptypes.SymbolKind) (decl *Excerpt, def *Excerpt, err error) {
	path := lspclient.PathFromFileURI(uri)
	isDef := a.isLikelyDefinition(path, pos.Line, kind)

	primary, err := a.excerptAt(ctx, uri, pos, kind, isDef)
	if err != nil {
		return nil, nil, err
	}
	if isDef {
		def = primary
	} else {
		decl = primary
	}

	if !isCallableKind(kind) {
		return decl, def, nil
	}

	locs, lerr := a.client.GetDefinition(ctx, uri, pos)
	if lerr != nil || len(locs) == 0 {
		return decl, def, nil
	}
	for _, loc := range locs {
		otherPath := lspclient.PathFromFileURI(loc.URI)
		if otherPath == path && loc.Range.Start.Line == pos.Line {
			continue
		}
		otherIsDef := isDef
		if isDef {
			otherIsDef = false
		} else {
			body, _ := hasBody(otherPath, loc.Range.Start.Line)
			otherIsDef = body
		}
		excerpt, eerr := a.excerptAt(ctx, loc.URI, loc.Range.Start, kind, otherIsDef)
		if eerr != nil {
			continue
		}
		if otherIsDef {
			def = excerpt
		} else {
			decl = excerpt
		}
		break
	}
	return decl, def, nil
}

func (a *Analyzer) excerptAt(ctx context.Context, uri string, pos lsptypes.Position, kind lsptypes.SymbolKind, isDefinition bool) (*Excerpt, error) {
	path := lspclient.PathFromFileURI(uri)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")

	foldingRanges, _ := a.client.GetFoldingRanges(ctx, uri)
	start, end := excerptBounds(kind, isDefinition, pos.Line, lines, foldingRanges)

	code, err := buildExcerpt(path, start, end)
	if err != nil {
		return nil, err
	}
	return &Excerpt{
		Location:     a.toLocation(uri, pos),
		IsDefinition: isDefinition,
		Code:         code,
	}, nil
}
