package index

import (
	"encoding/hex"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
)

// symbolIDSize is the fixed width of a clangd SymbolID: a truncated SHA-1
// of a Unified Symbol Resolution string.
const symbolIDSize = 8

// SymbolID is an opaque 8-byte identifier. Equality is byte-wise; the
// parser never reconstructs the source USR.
type SymbolID [symbolIDSize]byte

// IsZero reports whether id is the all-zero sentinel used for "no
// container" in relation/reference records.
func (id SymbolID) IsZero() bool { return id == SymbolID{} }

func (id SymbolID) String() string { return hex.EncodeToString(id[:]) }

func readSymbolID(buf []byte) (SymbolID, []byte, error) {
	if len(buf) < symbolIDSize {
		return SymbolID{}, nil, bridgeerr.New(bridgeerr.Malformed, "truncated symbol id")
	}
	var id SymbolID
	copy(id[:], buf[:symbolIDSize])
	return id, buf[symbolIDSize:], nil
}
