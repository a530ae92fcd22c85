package analyzer

import "testing"

func TestClassifyReferenceCall(t *testing.T) {
	line := "    widget.process(42);"
	col := 11 // index of 'p' in "process"
	if got := classifyReference(line, col, "process"); got != "call" {
		t.Fatalf("classifyReference() = %q, want %q", got, "call")
	}
}

func TestClassifyReferenceInstantiation(t *testing.T) {
	line := "auto w = new Widget();"
	col := 13 // index of 'W' in "Widget"
	if got := classifyReference(line, col, "Widget"); got != "instantiation" {
		t.Fatalf("classifyReference() = %q, want %q", got, "instantiation")
	}
}

func TestClassifyReferenceMakeFunction(t *testing.T) {
	line := "auto w = make_widget();"
	col := 9
	if got := classifyReference(line, col, "make_widget"); got != "instantiation" {
		t.Fatalf("classifyReference() = %q, want %q", got, "instantiation")
	}
}

func TestClassifyReferenceIdentifier(t *testing.T) {
	line := "return widget;"
	col := 7
	if got := classifyReference(line, col, "widget"); got != "identifier" {
		t.Fatalf("classifyReference() = %q, want %q", got, "identifier")
	}
}

func TestClassifyReferenceOutOfRangeColumnIsOther(t *testing.T) {
	if got := classifyReference("short", 99, "short"); got != "other" {
		t.Fatalf("classifyReference() = %q, want %q", got, "other")
	}
}
