package index

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
)

// maxCompressionRatio is the sanity cap: a stri chunk
// claiming to decompress to more than 1032x its compressed size is
// rejected as a zip-bomb rather than trusted.
const maxCompressionRatio = 1032

// stringTable is the deduplicated string pool every other chunk indexes
// into via varints. Index 0 is always the empty string.
type stringTable struct {
	offsets []int  // start offset of each string within data
	data    []byte // raw concatenated NUL-terminated bytes
}

// decodeStringTable parses the stri chunk: a 4-byte
// uncompressed-size prefix, then either raw NUL-terminated strings
// (size==0) or a zlib stream decompressing to exactly that many bytes.
func decodeStringTable(payload []byte) (*stringTable, error) {
	if len(payload) < 4 {
		return nil, bridgeerr.New(bridgeerr.Malformed, "stri chunk too small for size prefix")
	}
	uncompressedSize := binary.LittleEndian.Uint32(payload[:4])
	body := payload[4:]

	var raw []byte
	if uncompressedSize == 0 {
		raw = body
	} else {
		if len(body) > 0 && uint64(uncompressedSize) > uint64(len(body))*maxCompressionRatio {
			return nil, bridgeerr.New(bridgeerr.Malformed,
				"stri chunk claims to decompress %d compressed bytes into %d bytes, exceeding the %dx sanity cap",
				len(body), uncompressedSize, maxCompressionRatio)
		}
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "opening zlib stream for stri chunk")
		}
		defer zr.Close()

		out := make([]byte, 0, uncompressedSize)
		buf := bytes.NewBuffer(out)
		n, err := io.CopyN(buf, zr, int64(uncompressedSize)+1)
		if err != nil && err != io.EOF {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "decompressing stri chunk")
		}
		if n != int64(uncompressedSize) {
			return nil, bridgeerr.New(bridgeerr.Malformed,
				"stri chunk decompressed to %d bytes, expected %d", n, uncompressedSize)
		}
		raw = buf.Bytes()
	}

	return buildStringTable(raw)
}

// buildStringTable indexes the NUL-terminated strings in raw by their
// start offsets, so index 0 resolves to the first (conventionally empty)
// string.
func buildStringTable(raw []byte) (*stringTable, error) {
	t := &stringTable{data: raw}
	start := 0
	for i, b := range raw {
		if b == 0 {
			t.offsets = append(t.offsets, start)
			start = i + 1
		}
	}
	if start != len(raw) {
		return nil, bridgeerr.New(bridgeerr.Malformed, "string table not NUL-terminated")
	}
	if len(t.offsets) == 0 {
		return nil, bridgeerr.New(bridgeerr.Malformed, "string table has no entries")
	}
	return t, nil
}

// Len reports the number of entries in the table.
func (t *stringTable) Len() int { return len(t.offsets) }

// Get resolves idx to its string value. Invariant (testable property #4):
// 0 <= idx < Len() for every index the parser emits, and idx 0 is "".
func (t *stringTable) Get(idx uint32) (string, error) {
	if int(idx) >= len(t.offsets) {
		return "", bridgeerr.New(bridgeerr.Malformed, "string index %d out of range (table has %d entries)", idx, len(t.offsets))
	}
	start := t.offsets[idx]
	end := len(t.data) - 1 // exclude this string's own NUL terminator
	if next := int(idx) + 1; next < len(t.offsets) {
		end = t.offsets[next] - 1 // exclude the NUL terminator
	}
	return string(t.data[start:end]), nil
}
