package index

import "github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"

// decodeCompileCommand parses the optional cmdl chunk: a working
// directory string index, then a varint argv count and that many string
// indices.
func decodeCompileCommand(payload []byte, strings *stringTable) (*CompileCommand, error) {
	c := newCursor(payload)
	dir, err := c.str(strings)
	if err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading cmdl chunk directory")
	}
	argc, err := c.varint()
	if err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading cmdl chunk argc")
	}
	args := make([]string, 0, argc)
	for i := uint32(0); i < argc; i++ {
		a, err := c.str(strings)
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading cmdl chunk arg %d", i)
		}
		args = append(args, a)
	}
	return &CompileCommand{Directory: dir, Args: args}, nil
}
