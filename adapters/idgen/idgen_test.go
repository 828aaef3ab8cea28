package idgen

import "testing"

func TestUUIDUnique(t *testing.T) {
	g := UUID{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.New()
		if id == "" {
			t.Fatal("empty ID")
		}
		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}
		seen[id] = true
	}
}

func TestSequential(t *testing.T) {
	g := NewSequential("rec")

	if got := g.New(); got != "rec-1" {
		t.Errorf("first ID = %q, want rec-1", got)
	}
	if got := g.New(); got != "rec-2" {
		t.Errorf("second ID = %q, want rec-2", got)
	}
}
