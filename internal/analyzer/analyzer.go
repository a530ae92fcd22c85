// Package analyzer implements the Symbol Analyzer façade: it
// composes multiple clangd round trips (workspace symbol search, hover,
// definition, references, type hierarchy, call hierarchy) into a single
// aggregate answer, disambiguating overloads by source location and
// degrading gracefully when an individual enrichment step fails.
package analyzer

import (
	"time"

	"github.com/cppintel/mcp-cpp-bridge/internal/logger"
	"github.com/cppintel/mcp-cpp-bridge/internal/lspclient"
)

const (
	// DefaultMaxUsageExamples is how many usage examples are extracted
	// when the caller doesn't specify a limit.
	DefaultMaxUsageExamples = 10
	// MaxUsageExamplesCap is the hard ceiling on usage examples per call.
	MaxUsageExamplesCap = 100
	// UsageContextLines is how many lines of source are included on each
	// side of a usage reference.
	UsageContextLines = 2

	// NearMissMaxDistance is the maximum edit distance for a symbol name
	// to be offered as a "did you mean" suggestion.
	NearMissMaxDistance = 2
	// NearMissCap bounds the number of suggestions returned.
	NearMissCap = 5

	// TypeHierarchyDepthCap prevents runaway recursion building the
	// subtype tree (also guards against cyclic template instantiations
	// clangd occasionally reports).
	TypeHierarchyDepthCap = 20

	// DefaultIndexDeadline is how long workspace/symbol waits for
	// indexing to reach Done before proceeding with a partial index.
	DefaultIndexDeadline = 3 * time.Second

	// CommentScanLines bounds how far above a declaration the analyzer
	// looks for a preceding comment block.
	CommentScanLines = 50
)

// Analyzer composes lspclient calls into a single aggregate result per
// symbol query. It holds no state of its own beyond the session it wraps.
type Analyzer struct {
	client *lspclient.Client
	log    logger.Logger
}

// New returns an Analyzer driving the given session.
func New(client *lspclient.Client, log logger.Logger) *Analyzer {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &Analyzer{client: client, log: log}
}
