// Package bridgeerr defines the error taxonomy shared by every layer of the
// bridge, from the process transport up through the MCP tool handlers.
package bridgeerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error without tying callers to a specific message
// format. Callers should match kinds with errors.Is, never string content.
type Kind int

const (
	// NotFound means a path, symbol, or chunk was absent.
	NotFound Kind = iota
	// Unsupported means an index version, protocol method, or CMake
	// feature was not understood.
	Unsupported
	// Malformed means a RIFF structure, JSON-RPC body, or CMake cache
	// could not be parsed.
	Malformed
	// Protocol means clangd violated an LSP invariant (bad response
	// shape, missing id).
	Protocol
	// ChildGone means the clangd child process exited unexpectedly.
	ChildGone
	// Timeout means a per-request deadline elapsed.
	Timeout
	// Cancelled means the caller, or session death, cancelled a request.
	Cancelled
	// Busy means a backpressure limit was hit.
	Busy
	// Io means a transport or filesystem error occurred.
	Io
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Unsupported:
		return "unsupported"
	case Malformed:
		return "malformed"
	case Protocol:
		return "protocol"
	case ChildGone:
		return "child_gone"
	case Timeout:
		return "timeout"
	case Cancelled:
		return "cancelled"
	case Busy:
		return "busy"
	case Io:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the bridge's typed error. Core failures are mostly reported as
// an *Error so handlers can build the {success, error} MCP envelope without
// string sniffing; some paths (such as lspframe's reader at end of stream)
// return the underlying io error unwrapped.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, bridgeerr.NotFound) work by comparing kinds
// through a sentinel wrapper, since Kind itself is not an error.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds an *Error with no wrapped cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around an existing error, keeping it reachable via
// errors.Unwrap.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// sentinel returns a zero-message *Error of the given kind, suitable only
// as an errors.Is comparison target (Sentinel(NotFound), etc).
func sentinel(kind Kind) *Error { return &Error{Kind: kind} }

var (
	// SentinelNotFound etc. are comparison targets for errors.Is.
	SentinelNotFound    = sentinel(NotFound)
	SentinelUnsupported = sentinel(Unsupported)
	SentinelMalformed   = sentinel(Malformed)
	SentinelProtocol    = sentinel(Protocol)
	SentinelChildGone   = sentinel(ChildGone)
	SentinelTimeout     = sentinel(Timeout)
	SentinelCancelled   = sentinel(Cancelled)
	SentinelBusy        = sentinel(Busy)
	SentinelIo          = sentinel(Io)
)

// Of reports the Kind of err if it is, or wraps, a *Error, plus whether one
// was found.
func Of(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
