package index

import (
	"testing"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
	"github.com/cppintel/mcp-cpp-bridge/internal/index/testhelpers"
)

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	data := testhelpers.NewBuilder().
		Meta(7).
		Chunk("stri", testhelpers.NewStringTable().Encode(false)).
		Bytes()

	_, err := ParseBytes(data)
	if err == nil {
		t.Fatalf("expected UnsupportedVersion error for version 7")
	}
	kind, ok := bridgeerr.Of(err)
	if !ok || kind != bridgeerr.Unsupported {
		t.Fatalf("got kind %v, want Unsupported", kind)
	}
}

func TestParseRejectsMissingMeta(t *testing.T) {
	data := testhelpers.NewBuilder().
		Chunk("stri", testhelpers.NewStringTable().Encode(false)).
		Bytes()

	if _, err := ParseBytes(data); err == nil {
		t.Fatalf("expected error for missing meta chunk")
	}
}

func TestParseRejectsMissingStri(t *testing.T) {
	data := testhelpers.NewBuilder().Meta(18).Bytes()

	if _, err := ParseBytes(data); err == nil {
		t.Fatalf("expected error for missing stri chunk")
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := append([]byte("JUNK"), testhelpers.NewBuilder().Meta(18).Bytes()[4:]...)
	if _, err := ParseBytes(data); err == nil {
		t.Fatalf("expected error for bad RIFF magic")
	}
}

// buildV18Fixture constructs a minimal but complete v18 index: one class
// symbol, one free function with a single reference back to the class,
// and a compressed string table, mirroring scenario S6.
func buildV18Fixture(t *testing.T) ([]byte, [8]byte, [8]byte) {
	t.Helper()

	strs := testhelpers.NewStringTable()

	var classID, funcID [8]byte
	classID[0] = 0xAA
	funcID[0] = 0xBB

	symbols := testhelpers.EncodeSymbols(strs, []testhelpers.Symbol{
		{
			ID: classID, Name: "Widget", Scope: "app",
			Kind:          5, // class
			DeclPath:      "widget.h",
			DeclStart:     testhelpers.PackPosition(10, 0),
			DeclEnd:       testhelpers.PackPosition(10, 12),
			HasDefinition: true,
			DefPath:       "widget.cpp",
			DefStart:      testhelpers.PackPosition(20, 0),
			DefEnd:        testhelpers.PackPosition(40, 1),
			Type:          "class Widget",
			Documentation: "A widget.",
		},
		{
			ID: funcID, Name: "process", Scope: "app",
			Kind:      12, // function
			DeclPath:  "widget.h",
			DeclStart: testhelpers.PackPosition(50, 0),
			DeclEnd:   testhelpers.PackPosition(50, 20),
			Type:      "void process()",
			Container: classID,
		},
	})

	refGroup := testhelpers.EncodeRefGroup(strs, funcID, []testhelpers.Reference{
		{Kind: 1, Path: "main.cpp", Start: testhelpers.PackPosition(5, 4), End: testhelpers.PackPosition(5, 11), Container: classID},
	})
	refs := testhelpers.EncodeRefsChunk(1, refGroup)

	data := testhelpers.NewBuilder().
		Meta(18).
		Chunk("stri", strs.Encode(true)).
		Chunk("symb", symbols).
		Chunk("refs", refs).
		Bytes()

	return data, classID, funcID
}

func TestParseV18RoundTrip(t *testing.T) {
	data, classID, funcID := buildV18Fixture(t)

	file, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if file.Version != 18 {
		t.Fatalf("Version = %d, want 18", file.Version)
	}
	if len(file.Symbols) != 2 {
		t.Fatalf("len(Symbols) = %d, want 2", len(file.Symbols))
	}
	if file.StringCount == 0 {
		t.Fatalf("expected a non-empty string table")
	}

	widget, ok := file.SymbolByID(classID)
	if !ok || widget.Name != "Widget" || widget.QualifiedName() != "app::Widget" {
		t.Fatalf("Widget symbol decoded incorrectly: %+v (ok=%v)", widget, ok)
	}
	if !widget.HasDefinition || widget.Definition.Path != "widget.cpp" {
		t.Fatalf("expected Widget to have a definition in widget.cpp, got %+v", widget.Definition)
	}

	refs, ok := file.References[funcID]
	if !ok || len(refs) != 1 {
		t.Fatalf("expected exactly one reference to process(), got %+v (ok=%v)", refs, ok)
	}
	ref := refs[0]
	if ref.Location.Path != "main.cpp" {
		t.Fatalf("reference path = %q, want main.cpp", ref.Location.Path)
	}
	// Every reference's container must resolve within the symbol table
	// (scenario S6's invariant), or be the zero SymbolID.
	if !ref.Container.IsZero() {
		if _, ok := file.SymbolByID(ref.Container); !ok {
			t.Fatalf("reference container %v does not resolve to a known symbol", ref.Container)
		}
	}

	// Idempotence of decode∘decode (testable property #3): parsing the
	// same bytes twice yields the same logical content.
	file2, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("second Parse: %v", err)
	}
	if len(file2.Symbols) != len(file.Symbols) || len(file2.References) != len(file.References) {
		t.Fatalf("second parse produced different shape: %+v vs %+v", file2, file)
	}
}

func TestParseUncompressedStringTable(t *testing.T) {
	strs := testhelpers.NewStringTable()
	strs.Add("foo")
	strs.Add("bar")

	data := testhelpers.NewBuilder().
		Meta(12).
		Chunk("stri", strs.Encode(false)).
		Bytes()

	file, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if file.StringCount != 3 { // "", "foo", "bar"
		t.Fatalf("StringCount = %d, want 3", file.StringCount)
	}
}

func TestStringTableEmptyStringAtIndexZero(t *testing.T) {
	raw, err := buildStringTable([]byte{0, 'a', 'b', 0})
	if err != nil {
		t.Fatalf("buildStringTable: %v", err)
	}
	s, err := raw.Get(0)
	if err != nil || s != "" {
		t.Fatalf("Get(0) = (%q, %v), want empty string", s, err)
	}
	s, err = raw.Get(1)
	if err != nil || s != "ab" {
		t.Fatalf("Get(1) = (%q, %v), want \"ab\"", s, err)
	}
}

func TestStringTableOutOfRangeRejected(t *testing.T) {
	raw, err := buildStringTable([]byte{0})
	if err != nil {
		t.Fatalf("buildStringTable: %v", err)
	}
	if _, err := raw.Get(1); err == nil {
		t.Fatalf("expected an error for an out-of-range string index")
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 16383, 16384, 2097151, 1<<32 - 1}
	for _, v := range values {
		buf := putVarint(nil, v)
		if len(buf) < 1 || len(buf) > 5 {
			t.Fatalf("encode(%d) used %d bytes, want 1-5", v, len(buf))
		}
		got, n, err := getVarint(buf)
		if err != nil {
			t.Fatalf("getVarint(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip for %d produced %d", v, got)
		}
		if n != len(buf) {
			t.Fatalf("getVarint consumed %d bytes, want %d", n, len(buf))
		}
	}
}

func TestPositionPackRoundTrip(t *testing.T) {
	cases := []position{
		{Line: 0, Col: 0},
		{Line: 1, Col: 4},
		{Line: (1 << 20) - 1, Col: (1 << 12) - 1},
		{Line: 12345, Col: 67},
	}
	for _, p := range cases {
		got := unpackPosition(packPosition(p))
		if got != p {
			t.Fatalf("round trip for %+v produced %+v", p, got)
		}
	}
}
