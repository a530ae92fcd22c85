package analyzer

import (
	"context"
	"strings"

	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

// PublicInterface extracts the public members of the class/struct at
// uri/pos by walking document symbols and sniffing each member's access
// level from its hover text, adapted from the reference CLI's Interface
// command.
func (a *Analyzer) PublicInterface(ctx context.Context, uri string, pos lsptypes.Position) ([]InterfaceMember, error) {
	symbols, err := a.client.GetDocumentSymbols(ctx, uri)
	if err != nil {
		return nil, err
	}

	target := findEnclosingType(symbols, pos)
	if target == nil {
		return nil, nil
	}

	members := make([]InterfaceMember, 0, len(target.Children))
	for _, child := range target.Children {
		hover, err := a.client.GetHover(ctx, uri, child.SelectionRange.Start)
		if err != nil || hover == nil {
			continue
		}
		parsed := ParseHover(hover.Contents.Value)
		access := resolveAccess(parsed.AccessLevel, hover.Contents.Value)
		if access != "public" {
			continue
		}

		signature := parsed.Signature
		if signature == "" {
			signature = formatSymbolSignature(child)
		}

		members = append(members, InterfaceMember{
			Signature:     signature,
			Documentation: parsed.Documentation,
			Access:        access,
		})
	}
	return members, nil
}

// findEnclosingType returns the innermost class/struct document symbol
// whose range contains pos.
func findEnclosingType(symbols []lsptypes.DocumentSymbol, pos lsptypes.Position) *lsptypes.DocumentSymbol {
	for i := range symbols {
		s := &symbols[i]
		if pos.Line < s.Range.Start.Line || pos.Line > s.Range.End.Line {
			continue
		}
		if isTypeKind(s.Kind) {
			return s
		}
		if found := findEnclosingType(s.Children, pos); found != nil {
			return found
		}
	}
	return nil
}

// resolveAccess falls back to C++'s default access (public for struct,
// private for class) when the hover text doesn't name one explicitly.
func resolveAccess(parsed, hoverText string) string {
	if parsed != "" {
		return parsed
	}
	content := strings.ToLower(hoverText)
	switch {
	case strings.Contains(content, "public:"), strings.Contains(content, "public "):
		return "public"
	case strings.Contains(content, "protected:"), strings.Contains(content, "protected "):
		return "protected"
	case strings.Contains(content, "private:"), strings.Contains(content, "private "):
		return "private"
	case strings.Contains(content, "struct"):
		return "public"
	default:
		return "private"
	}
}

// formatSymbolSignature builds a fallback signature string from a document
// symbol when hover parsing didn't yield one.
func formatSymbolSignature(symbol lsptypes.DocumentSymbol) string {
	signature := symbol.Name
	if symbol.Detail != "" {
		if strings.Contains(symbol.Detail, "(") {
			signature = symbol.Detail
		} else {
			signature = symbol.Detail + " " + symbol.Name
		}
	}
	if symbol.Kind == lsptypes.SymbolKindConstructor && !strings.Contains(signature, "constructor") {
		signature = "constructor " + signature
	}
	return signature
}
