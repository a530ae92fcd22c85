package index

import (
	"bytes"
	"io"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
)

// Parse decodes a complete clangd .idx file. meta and stri are mandatory;
// refs/rela/srcs/cmdl are optional and simply absent from the result when
// not present. Any error aborts parsing of the whole file; there is no
// partial result.
func Parse(r io.Reader) (*File, error) {
	chunks, err := readContainer(r)
	if err != nil {
		return nil, err
	}

	metaPayload := find(chunks, "meta")
	if metaPayload == nil {
		return nil, errMissingChunk("meta")
	}
	if len(metaPayload) < 4 {
		return nil, bridgeerr.New(bridgeerr.Malformed, "meta chunk too small")
	}
	version := newCursor(metaPayload)
	versionNum, err := version.uint32()
	if err != nil {
		return nil, bridgeerr.Wrap(bridgeerr.Malformed, err, "reading meta chunk version")
	}

	strat, err := strategyFor(versionNum)
	if err != nil {
		return nil, err
	}

	striPayload := find(chunks, "stri")
	if striPayload == nil {
		return nil, errMissingChunk("stri")
	}
	strings, err := decodeStringTable(striPayload)
	if err != nil {
		return nil, err
	}

	symbolsPayload := find(chunks, "symb")
	var symbols []Symbol
	if symbolsPayload != nil {
		symbols, err = decodeSymbols(symbolsPayload, strings)
		if err != nil {
			return nil, err
		}
	}

	var references map[SymbolID][]Reference
	if refsPayload := find(chunks, "refs"); refsPayload != nil {
		references, err = decodeRefs(refsPayload, strings, strat)
		if err != nil {
			return nil, err
		}
	}

	var relations []Relation
	if relaPayload := find(chunks, "rela"); relaPayload != nil {
		relations, err = decodeRelations(relaPayload)
		if err != nil {
			return nil, err
		}
	}

	var sources []SourceFile
	if srcsPayload := find(chunks, "srcs"); srcsPayload != nil {
		sources, err = decodeSources(srcsPayload, strings, strat)
		if err != nil {
			return nil, err
		}
	}

	var compileCmd *CompileCommand
	if cmdlPayload := find(chunks, "cmdl"); cmdlPayload != nil {
		compileCmd, err = decodeCompileCommand(cmdlPayload, strings)
		if err != nil {
			return nil, err
		}
	}

	return &File{
		Version:     int(versionNum),
		Symbols:     symbols,
		References:  references,
		Relations:   relations,
		Sources:     sources,
		CompileCmd:  compileCmd,
		StringCount: strings.Len(),
	}, nil
}

// ParseBytes is a convenience wrapper around Parse for in-memory buffers.
func ParseBytes(data []byte) (*File, error) {
	return Parse(bytes.NewReader(data))
}

// SymbolByID returns the symbol with the given id, and whether it was
// found. Used by relation/reference resolution (testable property #... the
// container of any reference either is zero or resolves within the
// symbol table, per scenario S6).
func (f *File) SymbolByID(id SymbolID) (Symbol, bool) {
	for _, s := range f.Symbols {
		if s.ID == id {
			return s, true
		}
	}
	return Symbol{}, false
}
