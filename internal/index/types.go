package index

// Location is a (path, range) pair resolved from the string table.
type Location struct {
	Path  string
	Start position
	End   position
}

// SymbolKind mirrors the clangd/LSP symbol kind vocabulary used inside
// index records. Kept distinct from lsptypes.SymbolKind so this package
// has no dependency on the LSP wire types.
type SymbolKind int

// Symbol is one resolved identifier decoded from a symb record.
type Symbol struct {
	ID            SymbolID
	Name          string
	Scope         string // enclosing namespace/class qualifier, "" at top level
	Kind          SymbolKind
	Declaration   Location
	HasDefinition bool
	Definition    Location
	Type          string
	Documentation string
	Container     SymbolID // zero SymbolID if this symbol has no container
}

// QualifiedName joins Scope and Name the C++ way.
func (s Symbol) QualifiedName() string {
	if s.Scope == "" {
		return s.Name
	}
	return s.Scope + "::" + s.Name
}

// Reference is one use-site of a symbol. Container is the zero SymbolID
// for format version 12, which predates container tracking.
type Reference struct {
	Symbol    SymbolID
	Kind      byte
	Location  Location
	Container SymbolID
}

// RelationPredicate enumerates the triples clangd's index records (base
// class, override, etc).
type RelationPredicate byte

const (
	RelationBaseOf RelationPredicate = iota
	RelationOverriddenBy
)

// Relation is one subject-predicate-object triple.
type Relation struct {
	Subject   SymbolID
	Predicate RelationPredicate
	Object    SymbolID
}

// IncludeHeader is one edge of the include graph: a header referenced
// some number of times, optionally tagged with the preprocessor
// directive that pulled it in.
type IncludeHeader struct {
	Header     string
	References int
	Directive  int
}

// SourceFile is one compiled translation unit's include-graph entry.
type SourceFile struct {
	Path      string
	Digest    [8]byte
	IsTU      bool
	Includes  []IncludeHeader
}

// CompileCommand is the compile invocation recorded for the indexed TU.
type CompileCommand struct {
	Directory string
	Args      []string
}

// File is the fully decoded logical content of one .idx artifact
// for one translation unit.
type File struct {
	Version     int
	Symbols     []Symbol
	References  map[SymbolID][]Reference
	Relations   []Relation
	Sources     []SourceFile
	CompileCmd  *CompileCommand
	StringCount int
}
