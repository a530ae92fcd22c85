package lspclient

import "testing"

func TestStateStringNames(t *testing.T) {
	cases := map[State]string{
		PreInit:      "pre_init",
		Initializing: "initializing",
		Ready:        "ready",
		ShuttingDown: "shutting_down",
		Dead:         "dead",
		State(99):    "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}

func TestStateMachineGetSet(t *testing.T) {
	m := &stateMachine{}
	if got := m.get(); got != PreInit {
		t.Fatalf("zero-value state = %v, want %v", got, PreInit)
	}
	m.set(Ready)
	if got := m.get(); got != Ready {
		t.Fatalf("get() = %v, want %v", got, Ready)
	}
}

func TestStateMachineAcceptsRequestsOnlyWhenReady(t *testing.T) {
	m := &stateMachine{}
	for _, s := range []State{PreInit, Initializing, ShuttingDown, Dead} {
		m.set(s)
		if m.acceptsRequests() {
			t.Errorf("acceptsRequests() in state %v = true, want false", s)
		}
	}
	m.set(Ready)
	if !m.acceptsRequests() {
		t.Fatalf("acceptsRequests() in state Ready = false, want true")
	}
}
