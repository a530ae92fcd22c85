package lsptypes

import (
	"encoding/json"
	"testing"
)

func TestSymbolKindStringKnownAndUnknown(t *testing.T) {
	if got := SymbolKindClass.String(); got != "Class" {
		t.Fatalf("SymbolKindClass.String() = %q, want %q", got, "Class")
	}
	if got := SymbolKind(0).String(); got != "Unknown" {
		t.Fatalf("SymbolKind(0).String() = %q, want %q", got, "Unknown")
	}
}

func TestVersionedTextDocumentIdentifierEmbedsURI(t *testing.T) {
	v := VersionedTextDocumentIdentifier{
		TextDocumentIdentifier: TextDocumentIdentifier{URI: "file:///a.cpp"},
		Version:                3,
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var round map[string]interface{}
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if round["uri"] != "file:///a.cpp" {
		t.Fatalf("uri = %v, want %q", round["uri"], "file:///a.cpp")
	}
	if round["version"] != float64(3) {
		t.Fatalf("version = %v, want 3", round["version"])
	}
}

func TestTextDocumentContentChangeEventOmitsNilRange(t *testing.T) {
	ev := TextDocumentContentChangeEvent{Text: "hello"}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var round map[string]interface{}
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := round["range"]; ok {
		t.Fatalf("expected range to be omitted, got %v", round["range"])
	}
	if _, ok := round["rangeLength"]; ok {
		t.Fatalf("expected rangeLength to be omitted, got %v", round["rangeLength"])
	}
}

func TestHoverRoundTrip(t *testing.T) {
	h := Hover{
		Contents: MarkupContent{Kind: "markdown", Value: "```cpp\nvoid f()\n```"},
		Range: &Range{
			Start: Position{Line: 1, Character: 2},
			End:   Position{Line: 1, Character: 10},
		},
	}
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got Hover
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Contents.Value != h.Contents.Value {
		t.Fatalf("Contents.Value = %q, want %q", got.Contents.Value, h.Contents.Value)
	}
	if got.Range == nil || got.Range.Start.Line != 1 {
		t.Fatalf("Range = %+v, want Start.Line = 1", got.Range)
	}
}
