package index

import (
	"encoding/binary"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
)

// cursor is a forward-only byte reader used across every chunk decoder.
// It keeps decoding code free of manual offset bookkeeping.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte) *cursor { return &cursor{buf: buf} }

func (c *cursor) remaining() int { return len(c.buf) - c.pos }

func (c *cursor) atEnd() bool { return c.pos >= len(c.buf) }

func (c *cursor) bytes(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, bridgeerr.New(bridgeerr.Malformed, "unexpected end of chunk, wanted %d bytes, have %d", n, c.remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) byte() (byte, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) uint64() (uint64, error) {
	b, err := c.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) varint() (uint32, error) {
	v, n, err := getVarint(c.buf[c.pos:])
	if err != nil {
		return 0, err
	}
	c.pos += n
	return v, nil
}

func (c *cursor) symbolID() (SymbolID, error) {
	b, err := c.bytes(symbolIDSize)
	if err != nil {
		return SymbolID{}, err
	}
	var id SymbolID
	copy(id[:], b)
	return id, nil
}

func (c *cursor) position() (position, error) {
	v, err := c.uint32()
	if err != nil {
		return position{}, err
	}
	return unpackPosition(v), nil
}

// str resolves a varint string-table index straight to its string value.
func (c *cursor) str(t *stringTable) (string, error) {
	idx, err := c.varint()
	if err != nil {
		return "", err
	}
	return t.Get(idx)
}
