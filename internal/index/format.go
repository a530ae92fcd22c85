package index

import "github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"

// MinSupportedVersion and MaxSupportedVersion bound the version set this
// parser understands. Anything outside this range is UnsupportedVersion,
// never best-effort parsed.
const (
	MinSupportedVersion = 12
	MaxSupportedVersion = 20
)

// strategy is the capability set the parser dispatches on exactly once,
// at the meta chunk: {parse-ref, parse-include-header,
// select-hash-function}. The four variants below cover versions 12,
// 13-17, 18, and 19-20.
type strategy interface {
	// decodeRef reads one reference record. Versions before 13 carry no
	// container id.
	decodeRef(c *cursor, strings *stringTable) (Reference, error)
	// decodeIncludeHeader reads one include-graph edge. Version 18+
	// packs the reference count and directive kind into a single varint;
	// earlier versions carry only the reference count.
	decodeIncludeHeader(c *cursor, strings *stringTable) (IncludeHeader, error)
	// hashPath returns the 16-hex-character path hash used to derive
	// {basename}.{hash}.idx filenames.
	hashPath(path string) string
}

// strategyFor selects the parsing strategy for a meta-chunk version,
// rejecting anything outside the supported set with Unsupported.
func strategyFor(version uint32) (strategy, error) {
	switch {
	case version == 12:
		return v12Strategy{}, nil
	case version >= 13 && version <= 17:
		return v13to17Strategy{}, nil
	case version == 18:
		return v18Strategy{}, nil
	case version >= 19 && version <= 20:
		return v19to20Strategy{}, nil
	default:
		return nil, bridgeerr.New(bridgeerr.Unsupported, "unsupported index format version %d", version)
	}
}

func readRefLocation(c *cursor, strings *stringTable) (byte, Location, error) {
	kind, err := c.byte()
	if err != nil {
		return 0, Location{}, err
	}
	path, err := c.str(strings)
	if err != nil {
		return 0, Location{}, err
	}
	start, err := c.position()
	if err != nil {
		return 0, Location{}, err
	}
	end, err := c.position()
	if err != nil {
		return 0, Location{}, err
	}
	return kind, Location{Path: path, Start: start, End: end}, nil
}

// v12Strategy: kind + location only, no container id, xxHash64 paths.
type v12Strategy struct{}

func (v12Strategy) decodeRef(c *cursor, strings *stringTable) (Reference, error) {
	kind, loc, err := readRefLocation(c, strings)
	if err != nil {
		return Reference{}, err
	}
	return Reference{Kind: kind, Location: loc}, nil
}

func (v12Strategy) decodeIncludeHeader(c *cursor, strings *stringTable) (IncludeHeader, error) {
	return decodeIncludeHeaderSeparate(c, strings)
}

func (v12Strategy) hashPath(path string) string { return hashPathXXH64(path) }

// v13to17Strategy: + an 8-byte container id per reference.
type v13to17Strategy struct{}

func (v13to17Strategy) decodeRef(c *cursor, strings *stringTable) (Reference, error) {
	kind, loc, err := readRefLocation(c, strings)
	if err != nil {
		return Reference{}, err
	}
	container, err := c.symbolID()
	if err != nil {
		return Reference{}, err
	}
	return Reference{Kind: kind, Location: loc, Container: container}, nil
}

func (v13to17Strategy) decodeIncludeHeader(c *cursor, strings *stringTable) (IncludeHeader, error) {
	return decodeIncludeHeaderSeparate(c, strings)
}

func (v13to17Strategy) hashPath(path string) string { return hashPathXXH64(path) }

// v18Strategy: same ref shape as 13-17, but the include graph packs
// references-count and directive-kind into one varint.
type v18Strategy struct{ v13to17Strategy }

func (v18Strategy) decodeIncludeHeader(c *cursor, strings *stringTable) (IncludeHeader, error) {
	return decodeIncludeHeaderPacked(c, strings)
}

// v19to20Strategy: same packed include graph as v18, but paths/content
// are hashed with XXH3-64 instead of xxHash64.
type v19to20Strategy struct{ v13to17Strategy }

func (v19to20Strategy) decodeIncludeHeader(c *cursor, strings *stringTable) (IncludeHeader, error) {
	return decodeIncludeHeaderPacked(c, strings)
}

func (v19to20Strategy) hashPath(path string) string { return hashPathXXH3(path) }

func decodeIncludeHeaderSeparate(c *cursor, strings *stringTable) (IncludeHeader, error) {
	header, err := c.str(strings)
	if err != nil {
		return IncludeHeader{}, err
	}
	refs, err := c.varint()
	if err != nil {
		return IncludeHeader{}, err
	}
	return IncludeHeader{Header: header, References: int(refs)}, nil
}

func decodeIncludeHeaderPacked(c *cursor, strings *stringTable) (IncludeHeader, error) {
	header, err := c.str(strings)
	if err != nil {
		return IncludeHeader{}, err
	}
	packed, err := c.varint()
	if err != nil {
		return IncludeHeader{}, err
	}
	return IncludeHeader{Header: header, References: int(packed >> 2), Directive: int(packed & 0x3)}, nil
}
