package analyzer

import "strings"

// ParsedHover is the structured form of a clangd hover response, adapted
// from the reference CLI's clangd_parse.go: clangd returns a markdown blob
// with a fenced code-block signature, an access-level line, a "→" return
// type, a "Parameters:" section, and free-text documentation.
type ParsedHover struct {
	Signature     string
	AccessLevel   string
	ReturnType    string
	Modifiers     []string
	ParametersText string
	Documentation string
}

// ParseHover extracts structured fields from a clangd hover markdown
// payload. It degrades gracefully: any section it can't find is simply
// left empty rather than erroring.
func ParseHover(content string) ParsedHover {
	var hv ParsedHover

	if codeBlock, ok := extractCodeBlock(content); ok {
		parseCodeBlock(codeBlock, &hv)
	}

	var descLines []string
	inParameters := false
	for _, raw := range strings.Split(content, "\n") {
		if strings.HasPrefix(raw, "```") {
			break
		}
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || line == "---":
			continue
		case strings.HasPrefix(line, "###"), strings.HasPrefix(line, "provided by"):
			continue
		case strings.HasPrefix(line, "Type:"):
			continue
		case strings.HasPrefix(line, "Size:"), strings.HasPrefix(line, "Offset:"), strings.Contains(line, "alignment"):
			continue
		case strings.HasPrefix(line, "→"):
			if hv.ReturnType == "" {
				hv.ReturnType = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "→")), "`")
			}
			continue
		case strings.HasPrefix(line, "Parameters:"):
			inParameters = true
			hv.ParametersText = "Parameters:"
			continue
		case inParameters && strings.HasPrefix(line, "-"):
			hv.ParametersText += "\n  " + line
			continue
		case inParameters:
			inParameters = false
		}
		if strings.HasPrefix(line, "@") || line != "" {
			descLines = append(descLines, line)
		}
	}
	hv.Documentation = strings.TrimSpace(strings.Join(descLines, " "))
	return hv
}

// extractCodeBlock pulls the first fenced code block out of a markdown
// hover payload, stripping the language tag line if present.
func extractCodeBlock(content string) (string, bool) {
	start := strings.Index(content, "```")
	if start < 0 {
		return "", false
	}
	rest := content[start+3:]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	block := strings.TrimSpace(rest[:end])
	if nl := strings.Index(block, "\n"); nl >= 0 {
		firstLine := block[:nl]
		if firstLine == "cpp" || firstLine == "c" {
			block = block[nl+1:]
		}
	}
	return strings.TrimSpace(block), true
}

// parseCodeBlock walks the signature code block, pulling out an access
// specifier line if present and the signature that follows it.
func parseCodeBlock(block string, hv *ParsedHover) {
	lines := strings.Split(block, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "// In ") {
			continue
		}

		if line == "public:" || line == "private:" || line == "protected:" {
			hv.AccessLevel = strings.TrimSuffix(line, ":")
			continue
		}
		for _, lvl := range []string{"public", "private", "protected"} {
			if prefix := lvl + ": "; strings.HasPrefix(line, prefix) {
				hv.AccessLevel = lvl
				line = strings.TrimPrefix(line, prefix)
			}
		}

		if hv.Signature == "" && line != "" && !strings.HasSuffix(line, ":") {
			sig, _ := readCompleteSignature(lines, i, line)
			hv.Signature = formatSignature(sig)
			hv.Modifiers = extractModifiers(sig)
			hv.ParametersText = extractParameters(sig)
			return
		}
	}
}

// readCompleteSignature joins continuation lines until parentheses
// balance, handling multi-line signatures clangd sometimes emits for long
// templates.
func readCompleteSignature(lines []string, startIdx int, firstLine string) (string, int) {
	if !strings.Contains(firstLine, "(") || hasBalancedParens(firstLine) {
		return firstLine, startIdx
	}
	full := firstLine
	last := startIdx
	for i := startIdx + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "// ") {
			continue
		}
		full += " " + line
		last = i
		if hasBalancedParens(full) {
			break
		}
	}
	return full, last
}

func hasBalancedParens(s string) bool {
	depth := 0
	for _, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// extractModifiers pulls recognized C++ declaration modifiers out of a
// signature line.
func extractModifiers(line string) []string {
	var mods []string
	if parenIdx := strings.LastIndex(line, ")"); parenIdx >= 0 {
		after := line[parenIdx:]
		if strings.Contains(after, " const") {
			mods = append(mods, "const")
		}
	}
	keywords := map[string]bool{
		"virtual": true, "static": true, "override": true,
		"inline": true, "explicit": true, "noexcept": true,
	}
	for _, word := range strings.Fields(line) {
		clean := strings.Trim(word, "(),;")
		if keywords[clean] {
			mods = append(mods, clean)
		}
	}
	switch {
	case strings.Contains(line, "= 0"):
		mods = append(mods, "pure virtual")
	case strings.Contains(line, "= delete"):
		mods = append(mods, "deleted")
	case strings.Contains(line, "= default"):
		mods = append(mods, "defaulted")
	}
	return mods
}

func extractParameters(signature string) string {
	parenIdx := strings.Index(signature, "(")
	if parenIdx < 0 {
		return ""
	}
	closeIdx := strings.Index(signature[parenIdx:], ")")
	if closeIdx <= 0 {
		return ""
	}
	paramStr := strings.TrimSpace(signature[parenIdx+1 : parenIdx+closeIdx])
	if paramStr == "" || paramStr == "void" {
		return ""
	}
	var b strings.Builder
	b.WriteString("Parameters:")
	for _, p := range strings.Split(paramStr, ",") {
		b.WriteString("\n  - `")
		b.WriteString(strings.TrimSpace(p))
		b.WriteString("`")
	}
	return b.String()
}

// formatSignature normalizes "&"/"*" placement so they sit against the
// type rather than the identifier, matching common C++ style.
func formatSignature(signature string) string {
	if strings.Contains(signature, "\n") {
		return signature
	}
	normalized := strings.ReplaceAll(signature, " &", "&")
	normalized = strings.ReplaceAll(normalized, " *", "*")

	var b strings.Builder
	for i := 0; i < len(normalized); i++ {
		ch := normalized[i]
		b.WriteByte(ch)
		if (ch == '&' || ch == '*') && i+1 < len(normalized) && isIdentifierByte(normalized[i+1]) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func isIdentifierByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_'
}
