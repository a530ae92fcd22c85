package analyzer

import (
	"strconv"
	"strings"

	"github.com/cppintel/mcp-cpp-bridge/internal/lspclient"
	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

// toLocation converts an LSP file URI + 0-based position into a
// project-relative, 1-based Location for display.
func (a *Analyzer) toLocation(uri string, pos lsptypes.Position) Location {
	return Location{
		Path:   a.client.ToRelativePath(lspclient.PathFromFileURI(uri)),
		Line:   pos.Line + 1,
		Column: pos.Character + 1,
	}
}

// parseLocationString parses a "file:line:column" string, resolving file
// against the project root if relative. This is the path/location parsing
// duality; ok is false if input isn't shaped like a location at all.
func (a *Analyzer) parseLocationString(input string) (uri string, pos lsptypes.Position, ok bool) {
	parts := strings.Split(input, ":")
	if len(parts) < 3 {
		return "", lsptypes.Position{}, false
	}

	file := parts[0]
	if len(parts) > 3 {
		file = strings.Join(parts[:len(parts)-2], ":")
	}

	line, err1 := strconv.Atoi(parts[len(parts)-2])
	col, err2 := strconv.Atoi(parts[len(parts)-1])
	if err1 != nil || err2 != nil {
		return "", lsptypes.Position{}, false
	}

	uri = a.client.FileURIFromPath(file)
	return uri, lsptypes.Position{Line: line - 1, Character: col - 1}, true
}
