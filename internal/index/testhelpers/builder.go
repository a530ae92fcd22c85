// Package testhelpers synthesizes minimal, valid clangd .idx byte streams
// in memory, so internal/index's tests never need checked-in binary
// fixtures. It re-implements the wire-level primitives independently of
// internal/index itself (varint encoding, position packing, RIFF chunk
// framing) so a bug shared between encoder and decoder can't hide a test
// failure.
package testhelpers

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
)

// PutVarint appends v using the 7-bit little-endian continuation
// encoding clangd uses for its varints.
func PutVarint(buf []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			buf = append(buf, b|0x80)
		} else {
			return append(buf, b)
		}
	}
}

// PackPosition packs (line, col) into the line<<12|col layout clangd uses.
func PackPosition(line, col int) uint32 {
	return uint32(line)<<12 | uint32(col)&0xfff
}

// StringTable accumulates strings and hands back varint indices, so
// builder code can refer to strings by index the way the real format
// does. Index 0 is always the empty string.
type StringTable struct {
	strs []string
}

// NewStringTable returns a table pre-seeded with the empty string at
// index 0.
func NewStringTable() *StringTable {
	return &StringTable{strs: []string{""}}
}

// Add registers s (if not already present) and returns its index.
func (t *StringTable) Add(s string) uint32 {
	for i, existing := range t.strs {
		if existing == s {
			return uint32(i)
		}
	}
	t.strs = append(t.strs, s)
	return uint32(len(t.strs) - 1)
}

// Encode builds the stri chunk payload: a 4-byte uncompressed-size prefix
// (0 for uncompressed) followed by concatenated NUL-terminated strings.
// compressed selects the zlib-compressed encoding instead.
func (t *StringTable) Encode(compressed bool) []byte {
	var raw bytes.Buffer
	for _, s := range t.strs {
		raw.WriteString(s)
		raw.WriteByte(0)
	}

	if !compressed {
		out := make([]byte, 4)
		binary.LittleEndian.PutUint32(out, 0)
		return append(out, raw.Bytes()...)
	}

	var compressedBuf bytes.Buffer
	zw := zlib.NewWriter(&compressedBuf)
	zw.Write(raw.Bytes())
	zw.Close()

	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(raw.Len()))
	return append(out, compressedBuf.Bytes()...)
}

// Builder assembles a complete RIFF/CdIx container from named chunk
// payloads.
type Builder struct {
	chunks []namedChunk
}

type namedChunk struct {
	id      string
	payload []byte
}

// NewBuilder returns an empty container builder.
func NewBuilder() *Builder { return &Builder{} }

// Chunk adds a named chunk with the given payload.
func (b *Builder) Chunk(id string, payload []byte) *Builder {
	b.chunks = append(b.chunks, namedChunk{id: id, payload: payload})
	return b
}

// Meta adds a meta chunk declaring the given format version.
func (b *Builder) Meta(version uint32) *Builder {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, version)
	return b.Chunk("meta", payload)
}

// Bytes renders the full RIFF/CdIx container.
func (b *Builder) Bytes() []byte {
	var body bytes.Buffer
	for _, c := range b.chunks {
		var idBytes [4]byte
		copy(idBytes[:], c.id)
		body.Write(idBytes[:])

		size := make([]byte, 4)
		binary.LittleEndian.PutUint32(size, uint32(len(c.payload)))
		body.Write(size)

		body.Write(c.payload)
		if len(c.payload)%2 == 1 {
			body.WriteByte(0)
		}
	}

	var out bytes.Buffer
	out.WriteString("RIFF")
	totalSize := make([]byte, 4)
	binary.LittleEndian.PutUint32(totalSize, uint32(4+body.Len())) // "CdIx" + chunks
	out.Write(totalSize)
	out.WriteString("CdIx")
	out.Write(body.Bytes())
	return out.Bytes()
}
