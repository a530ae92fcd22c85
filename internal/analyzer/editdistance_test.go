package analyzer

import "testing"

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"Widget", "Widget", 0},
		{"Widget", "Wigdet", 2},
		{"process", "procces", 2},
		{"Scene", "Scene2", 1},
	}
	for _, c := range cases {
		if got := editDistance(c.a, c.b); got != c.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNearMissNamesFiltersByDistanceAndSortsClosestFirst(t *testing.T) {
	candidates := []string{"processInput", "process", "procces", "unrelated", "process"}
	got := nearMissNames("porcess", candidates, 2, 5)

	if len(got) == 0 {
		t.Fatalf("expected at least one near-miss, got none")
	}
	if got[0] != "process" && got[0] != "procces" {
		t.Fatalf("expected closest match first, got %v", got)
	}
	for _, name := range got {
		if name == "unrelated" {
			t.Fatalf("unrelated name should exceed max distance, got %v", got)
		}
	}
}

func TestNearMissNamesRespectsLimit(t *testing.T) {
	candidates := []string{"ab", "ac", "ad", "ae", "af", "ag"}
	got := nearMissNames("aa", candidates, 2, 3)
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
}

func TestNearMissNamesDedupes(t *testing.T) {
	got := nearMissNames("foo", []string{"fon", "fon", "fon"}, 2, 5)
	if len(got) != 1 {
		t.Fatalf("expected duplicates to collapse, got %v", got)
	}
}
