// Package index decodes clangd's on-disk RIFF-framed binary index files
// the standalone leaf consumed directly by tool handlers when
// LSP latency is unacceptable or clangd is unavailable.
package index

import (
	"encoding/binary"
	"io"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
)

// riffType is the 4-byte type tag clangd stamps on its index containers.
const riffType = "CdIx"

// chunk is one named, padded chunk from the RIFF container.
type chunk struct {
	id      string
	payload []byte
}

// readContainer validates the RIFF/CdIx header and reads every chunk into
// memory. Chunk sizes are even-padded.
func readContainer(r io.Reader) ([]chunk, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading RIFF magic")
	}
	if string(magic[:]) != "RIFF" {
		return nil, bridgeerr.New(bridgeerr.Malformed, "bad RIFF magic %q", magic)
	}

	var totalSize uint32
	if err := binary.Read(r, binary.LittleEndian, &totalSize); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading RIFF size")
	}

	var typeTag [4]byte
	if _, err := io.ReadFull(r, typeTag[:]); err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading RIFF type tag")
	}
	if string(typeTag[:]) != riffType {
		return nil, bridgeerr.New(bridgeerr.Malformed, "unexpected RIFF type %q, want %q", typeTag, riffType)
	}

	var chunks []chunk
	for {
		var id [4]byte
		_, err := io.ReadFull(r, id[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading chunk id")
		}

		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading chunk %q size", id)
		}

		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading chunk %q payload", id)
		}
		chunks = append(chunks, chunk{id: string(id[:]), payload: payload})

		if size%2 == 1 {
			var pad [1]byte
			if _, err := io.ReadFull(r, pad[:]); err != nil {
				return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading chunk %q padding", id)
			}
		}
	}

	return chunks, nil
}

// find returns the first chunk with the given id, or nil if absent.
func find(chunks []chunk, id string) []byte {
	for _, c := range chunks {
		if c.id == id {
			return c.payload
		}
	}
	return nil
}

// errMissingChunk builds the MissingChunk{name} error from spec's failure
// taxonomy.
func errMissingChunk(name string) error {
	return bridgeerr.New(bridgeerr.NotFound, "missing mandatory chunk %q", name)
}
