package analyzer

import "github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"

// Location is a 1-based, display-ready source position, relative to the
// project root where possible.
type Location struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Symbol is the resolved identifier, shaped for MCP
// responses rather than internal plumbing.
type Symbol struct {
	Name          string `json:"name"`
	QualifiedName string `json:"qualified_name"`
	Kind          string `json:"kind"`
	Type          string `json:"type,omitempty"`
	Documentation string `json:"documentation,omitempty"`
}

// Excerpt pairs a location with a formatted code block, the supplemented
// declaration/definition pairing.
type Excerpt struct {
	Location     Location `json:"location"`
	IsDefinition bool     `json:"is_definition"`
	Code         string   `json:"code"`
}

// HierarchyNode is one node of the complete (not single-level) type
// hierarchy, built recursively.
type HierarchyNode struct {
	Name       string          `json:"name"`
	Detail     string          `json:"detail,omitempty"`
	Location   Location        `json:"location"`
	Supertypes []HierarchyNode `json:"supertypes,omitempty"`
	Subtypes   []HierarchyNode `json:"subtypes,omitempty"`
}

// CallEdge is one caller or callee in the call hierarchy.
type CallEdge struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

// UsageExample is one heuristically classified reference, per the
// usage-extraction rule.
type UsageExample struct {
	Location       Location `json:"location"`
	Snippet        string   `json:"snippet"`
	Context        []string `json:"context"`
	Classification string   `json:"classification"` // identifier | call | instantiation | other
}

// InterfaceMember is one public member surfaced by the public-interface
// extraction.
type InterfaceMember struct {
	Signature     string `json:"signature"`
	Documentation string `json:"documentation,omitempty"`
	Access        string `json:"access"`
}

// Candidate is one unresolved or rejected symbol-search match, surfaced
// when resolution is ambiguous or fails outright.
type Candidate struct {
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Location      Location `json:"location"`
	ContainerName string   `json:"container_name,omitempty"`
}

// Anchor is the optional file/position hint used to disambiguate between
// multiple same-name candidates.
type Anchor struct {
	URI      string
	Position lsptypes.Position
}

// Request is the input to AnalyzeSymbolContext.
type Request struct {
	// Query is either a bare/qualified symbol name or a "file:line:column"
	// location string (the path/location parsing duality feature).
	Query string

	Anchor *Anchor

	IncludeUsagePatterns bool
	MaxUsageExamples      int
	IncludeInheritance    bool
}

// Result is the aggregate answer to analyze_symbol_context. Enrichment
// steps that fail non-fatally leave their value empty and set the matching
// *Skipped reason instead of failing the call.
type Result struct {
	Symbol Symbol `json:"symbol"`

	Declaration *Excerpt `json:"declaration,omitempty"`
	Definition  *Excerpt `json:"definition,omitempty"`

	Inheritance        *HierarchyNode `json:"inheritance,omitempty"`
	InheritanceSkipped string         `json:"inheritance_skipped,omitempty"`

	Callers        []CallEdge `json:"callers,omitempty"`
	CallersSkipped string     `json:"callers_skipped,omitempty"`
	Callees        []CallEdge `json:"callees,omitempty"`
	CalleesSkipped string     `json:"callees_skipped,omitempty"`

	Usages        []UsageExample `json:"usages,omitempty"`
	UsagesSkipped string         `json:"usages_skipped,omitempty"`

	PublicInterface []InterfaceMember `json:"public_interface,omitempty"`

	// Ambiguous is set when resolution could not settle on one candidate;
	// Candidates lists what it found instead and enrichment is skipped.
	Ambiguous  bool        `json:"ambiguous,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`

	// NotFound is set when resolution found no candidate at all;
	// Suggestions lists near-miss names (edit distance <= 2, capped at 5)
	// instead of failing the call outright.
	NotFound    bool     `json:"not_found,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`

	PartialIndex bool `json:"partial_index,omitempty"`
}
