package index

import "github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"

// decodeSymbols parses the symb chunk: a varint count followed by that
// many fixed-shape symbol records. The symbol record layout does not
// vary by format version (only reference and include-graph records do,
// so no strategy dispatch is needed here.
func decodeSymbols(payload []byte, strings *stringTable) ([]Symbol, error) {
	c := newCursor(payload)
	count, err := c.varint()
	if err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading symb chunk count")
	}

	symbols := make([]Symbol, 0, count)
	for i := uint32(0); i < count; i++ {
		sym, err := decodeSymbol(c, strings)
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding symbol %d", i)
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}

func decodeSymbol(c *cursor, strings *stringTable) (Symbol, error) {
	id, err := c.symbolID()
	if err != nil {
		return Symbol{}, err
	}
	name, err := c.str(strings)
	if err != nil {
		return Symbol{}, err
	}
	scope, err := c.str(strings)
	if err != nil {
		return Symbol{}, err
	}
	kindByte, err := c.byte()
	if err != nil {
		return Symbol{}, err
	}

	declPath, err := c.str(strings)
	if err != nil {
		return Symbol{}, err
	}
	declStart, err := c.position()
	if err != nil {
		return Symbol{}, err
	}
	declEnd, err := c.position()
	if err != nil {
		return Symbol{}, err
	}

	hasDef, err := c.byte()
	if err != nil {
		return Symbol{}, err
	}

	sym := Symbol{
		ID:          id,
		Name:        name,
		Scope:       scope,
		Kind:        SymbolKind(kindByte),
		Declaration: Location{Path: declPath, Start: declStart, End: declEnd},
	}

	if hasDef != 0 {
		defPath, err := c.str(strings)
		if err != nil {
			return Symbol{}, err
		}
		defStart, err := c.position()
		if err != nil {
			return Symbol{}, err
		}
		defEnd, err := c.position()
		if err != nil {
			return Symbol{}, err
		}
		sym.HasDefinition = true
		sym.Definition = Location{Path: defPath, Start: defStart, End: defEnd}
	}

	sym.Type, err = c.str(strings)
	if err != nil {
		return Symbol{}, err
	}
	sym.Documentation, err = c.str(strings)
	if err != nil {
		return Symbol{}, err
	}
	sym.Container, err = c.symbolID()
	if err != nil {
		return Symbol{}, err
	}

	return sym, nil
}
