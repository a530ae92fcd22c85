package lspclient

import "testing"

func TestDocSetTouchEvictsLeastRecentlyUsed(t *testing.T) {
	d := newDocSet(2)

	if evict := d.touch("a"); evict != "" {
		t.Fatalf("touch(a) evicted %q, want none", evict)
	}
	if evict := d.touch("b"); evict != "" {
		t.Fatalf("touch(b) evicted %q, want none", evict)
	}
	// touching "a" again makes "b" the least-recently-used entry.
	if evict := d.touch("a"); evict != "" {
		t.Fatalf("re-touch(a) evicted %q, want none", evict)
	}
	if evict := d.touch("c"); evict != "b" {
		t.Fatalf("touch(c) evicted %q, want %q", evict, "b")
	}
	if d.isOpen("b") {
		t.Fatalf("expected b to be evicted")
	}
	if !d.isOpen("a") || !d.isOpen("c") {
		t.Fatalf("expected a and c to remain open")
	}
}

func TestDocSetDefaultsCapWhenNonPositive(t *testing.T) {
	d := newDocSet(0)
	if d.cap != DefaultOpenDocumentCap {
		t.Fatalf("cap = %d, want %d", d.cap, DefaultOpenDocumentCap)
	}
}

func TestDocSetRemove(t *testing.T) {
	d := newDocSet(4)
	d.touch("a")
	d.remove("a")
	if d.isOpen("a") {
		t.Fatalf("expected a to no longer be open after remove")
	}
}

func TestDocSetAllReturnsMostRecentFirst(t *testing.T) {
	d := newDocSet(4)
	d.touch("a")
	d.touch("b")
	d.touch("c")

	got := d.all()
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("all() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("all() = %v, want %v", got, want)
		}
	}
}
