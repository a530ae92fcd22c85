package lspclient

import (
	"sync"

	"github.com/cppintel/mcp-cpp-bridge/internal/lspframe"
)

// pendingHighWater is the backpressure limit: new request
// submissions fail with Busy once this many requests are outstanding.
const pendingHighWater = 1024

// pendingResult is delivered to a waiter exactly once: either a response
// or an error (ChildGone/Cancelled/Timeout).
type pendingResult struct {
	resp *lspframe.Response
	err  error
}

// pendingTable is the session's pending-request map. It is accessed by
// requesting goroutines (insert), the reader goroutine (remove + deliver),
// and cancellation paths (remove), so a mutex protects it.
type pendingTable struct {
	mu    sync.Mutex
	slots map[string]chan pendingResult
}

func newPendingTable() *pendingTable {
	return &pendingTable{slots: make(map[string]chan pendingResult)}
}

// insert creates a one-shot slot for id. Returns false if the table is at
// the backpressure limit.
func (t *pendingTable) insert(id string) (chan pendingResult, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.slots) >= pendingHighWater {
		return nil, false
	}
	ch := make(chan pendingResult, 1)
	t.slots[id] = ch
	return ch, true
}

// deliver routes a response to its waiter, dropping unknown ids.
func (t *pendingTable) deliver(id string, result pendingResult) (delivered bool) {
	t.mu.Lock()
	ch, ok := t.slots[id]
	if ok {
		delete(t.slots, id)
	}
	t.mu.Unlock()
	if !ok {
		return false
	}
	ch <- result
	return true
}

// remove drops the slot for id without delivering anything (used by
// cancellation, where a late response must be discarded silently).
func (t *pendingTable) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.slots, id)
}

// drainWithError resolves every outstanding waiter with err, used when the
// session dies (spec property #2).
func (t *pendingTable) drainWithError(err error) {
	t.mu.Lock()
	slots := t.slots
	t.slots = make(map[string]chan pendingResult)
	t.mu.Unlock()

	for _, ch := range slots {
		ch <- pendingResult{err: err}
	}
}

func (t *pendingTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}
