package index

import "github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"

// decodeRefs parses the refs chunk: a varint group count, then per group
// a SymbolID and a varint ref count, then that many version-dispatched
// reference records.
func decodeRefs(payload []byte, strings *stringTable, strat strategy) (map[SymbolID][]Reference, error) {
	c := newCursor(payload)
	groupCount, err := c.varint()
	if err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading refs chunk group count")
	}

	out := make(map[SymbolID][]Reference, groupCount)
	for g := uint32(0); g < groupCount; g++ {
		sym, err := c.symbolID()
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading refs group %d symbol id", g)
		}
		refCount, err := c.varint()
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading refs group %d count", g)
		}

		refs := make([]Reference, 0, refCount)
		for i := uint32(0); i < refCount; i++ {
			ref, err := strat.decodeRef(c, strings)
			if err != nil {
				return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding ref %d of group %d", i, g)
			}
			ref.Symbol = sym
			refs = append(refs, ref)
		}
		out[sym] = refs
	}
	return out, nil
}
