package analyzer

import (
	"context"
	"os"
	"strings"

	"github.com/cppintel/mcp-cpp-bridge/internal/lspclient"
	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

// UsageExamples extracts up to limit usage examples for the symbol at
// uri/pos: each reference's source line plus UsageContextLines of
// surrounding context, heuristically classified.
func (a *Analyzer) UsageExamples(ctx context.Context, uri string, pos lsptypes.Position, symbolName string, limit int) ([]UsageExample, error) {
	if limit <= 0 {
		limit = DefaultMaxUsageExamples
	}
	if limit > MaxUsageExamplesCap {
		limit = MaxUsageExamplesCap
	}

	locations, err := a.client.GetReferences(ctx, uri, pos, true)
	if err != nil {
		return nil, err
	}

	var examples []UsageExample
	fileCache := make(map[string][]string)
	for _, loc := range locations {
		if len(examples) >= limit {
			break
		}
		path := lspclient.PathFromFileURI(loc.URI)
		lines, ok := fileCache[path]
		if !ok {
			content, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			lines = strings.Split(string(content), "\n")
			fileCache[path] = lines
		}

		line := loc.Range.Start.Line
		if line < 0 || line >= len(lines) {
			continue
		}

		start := line - UsageContextLines
		if start < 0 {
			start = 0
		}
		end := line + UsageContextLines
		if end >= len(lines) {
			end = len(lines) - 1
		}

		examples = append(examples, UsageExample{
			Location:       a.toLocation(loc.URI, loc.Range.Start),
			Snippet:        strings.TrimSpace(lines[line]),
			Context:        append([]string(nil), lines[start:end+1]...),
			Classification: classifyReference(lines[line], loc.Range.Start.Character, symbolName),
		})
	}
	return examples, nil
}

// classifyReference heuristically classifies a reference occurrence:
// identifier-only, call expression (followed by "("), instantiation
// ("new" immediately before it, or a make_* name), or other.
func classifyReference(line string, col int, symbolName string) string {
	if col < 0 || col > len(line) {
		return "other"
	}

	before := strings.TrimRight(line[:col], " \t")
	after := line[col:]
	if idx := strings.Index(after, symbolName); idx == 0 {
		after = after[len(symbolName):]
	}
	after = strings.TrimLeft(after, " \t")

	if strings.HasSuffix(before, "new") {
		return "instantiation"
	}
	if strings.HasPrefix(symbolName, "make_") {
		return "instantiation"
	}
	if strings.HasPrefix(after, "(") {
		return "call"
	}
	if symbolName != "" {
		return "identifier"
	}
	return "other"
}
