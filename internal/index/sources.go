package index

import "github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"

// decodeSources parses the srcs chunk: the include graph. A varint count
// of source-file entries, each carrying a path, an 8-byte content/path
// digest, an is-TU flag, and a varint count of version-dispatched
// IncludeHeader edges.
func decodeSources(payload []byte, strings *stringTable, strat strategy) ([]SourceFile, error) {
	c := newCursor(payload)
	count, err := c.varint()
	if err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading srcs chunk count")
	}

	sources := make([]SourceFile, 0, count)
	for i := uint32(0); i < count; i++ {
		path, err := c.str(strings)
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding source %d path", i)
		}
		digestBytes, err := c.bytes(8)
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding source %d digest", i)
		}
		isTU, err := c.byte()
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding source %d TU flag", i)
		}
		includeCount, err := c.varint()
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding source %d include count", i)
		}

		includes := make([]IncludeHeader, 0, includeCount)
		for j := uint32(0); j < includeCount; j++ {
			inc, err := strat.decodeIncludeHeader(c, strings)
			if err != nil {
				return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decoding source %d include %d", i, j)
			}
			includes = append(includes, inc)
		}

		var digest [8]byte
		copy(digest[:], digestBytes)
		sources = append(sources, SourceFile{Path: path, Digest: digest, IsTU: isTU != 0, Includes: includes})
	}
	return sources, nil
}
