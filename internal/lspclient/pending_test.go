package lspclient

import (
	"errors"
	"testing"

	"github.com/cppintel/mcp-cpp-bridge/internal/lspframe"
)

func TestPendingTableDeliverRoutesToWaiter(t *testing.T) {
	table := newPendingTable()
	ch, ok := table.insert("1")
	if !ok {
		t.Fatalf("insert() ok = false, want true")
	}

	resp := &lspframe.Response{ID: float64(1)}
	if delivered := table.deliver("1", pendingResult{resp: resp}); !delivered {
		t.Fatalf("deliver() = false, want true")
	}

	got := <-ch
	if got.resp != resp {
		t.Fatalf("waiter received %v, want %v", got.resp, resp)
	}
	if table.len() != 0 {
		t.Fatalf("len() = %d, want 0 after delivery", table.len())
	}
}

func TestPendingTableDeliverUnknownIDIsNoop(t *testing.T) {
	table := newPendingTable()
	if delivered := table.deliver("missing", pendingResult{}); delivered {
		t.Fatalf("deliver() for unknown id = true, want false")
	}
}

func TestPendingTableRemoveDropsSlotSilently(t *testing.T) {
	table := newPendingTable()
	table.insert("1")
	table.remove("1")
	if table.len() != 0 {
		t.Fatalf("len() = %d, want 0 after remove", table.len())
	}
	if delivered := table.deliver("1", pendingResult{}); delivered {
		t.Fatalf("deliver() after remove = true, want false")
	}
}

func TestPendingTableInsertRejectsAtHighWater(t *testing.T) {
	table := newPendingTable()
	for i := 0; i < pendingHighWater; i++ {
		if _, ok := table.insert(string(rune(i))); !ok {
			t.Fatalf("insert() rejected before reaching high water, at %d", i)
		}
	}
	if _, ok := table.insert("overflow"); ok {
		t.Fatalf("insert() at high water = true, want false")
	}
}

func TestPendingTableDrainWithErrorResolvesAllWaiters(t *testing.T) {
	table := newPendingTable()
	ch1, _ := table.insert("1")
	ch2, _ := table.insert("2")

	wantErr := errors.New("child gone")
	table.drainWithError(wantErr)

	for _, ch := range []chan pendingResult{ch1, ch2} {
		got := <-ch
		if got.err != wantErr {
			t.Fatalf("waiter err = %v, want %v", got.err, wantErr)
		}
	}
	if table.len() != 0 {
		t.Fatalf("len() = %d, want 0 after drain", table.len())
	}
}
