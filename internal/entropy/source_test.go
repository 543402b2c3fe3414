package entropy

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSequenceCycles(t *testing.T) {
	s := NewSequence(0.1, 0.9)
	want := []float64{0.1, 0.9, 0.1, 0.9}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Fatalf("draw %d = %v, want %v", i, got, w)
		}
	}
	if s.Draws() != 4 {
		t.Errorf("Draws() = %d, want 4", s.Draws())
	}
}

func TestSequenceIntn(t *testing.T) {
	tests := []struct {
		f    float64
		n    int
		want int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{0.99, 10, 9},
		{1.0, 10, 9},
		{0.5, 1, 0},
	}
	for _, tt := range tests {
		if got := NewSequence(tt.f).Intn(tt.n); got != tt.want {
			t.Errorf("Intn(%d) with %v = %d, want %d", tt.n, tt.f, got, tt.want)
		}
	}
}

func TestIntRangeBounds(t *testing.T) {
	src := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := IntRange(src, 3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("IntRange(3, 7) = %d, out of range", v)
		}
	}
	if got := IntRange(NewSequence(0), -5, -2); got != -5 {
		t.Errorf("IntRange(-5, -2) low draw = %d, want -5", got)
	}
	if got := IntRange(NewSequence(0.999), -5, -2); got != -2 {
		t.Errorf("IntRange(-5, -2) high draw = %d, want -2", got)
	}
	if got := IntRange(src, 4, 4); got != 4 {
		t.Errorf("IntRange(4, 4) = %d, want 4", got)
	}
}

func TestChance(t *testing.T) {
	if !Chance(NewSequence(0.29), 0.3) {
		t.Error("0.29 < 0.3 should succeed")
	}
	if Chance(NewSequence(0.3), 0.3) {
		t.Error("0.3 < 0.3 should fail")
	}
}

func TestSampleDistinct(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	src := NewSeeded(11)
	for i := 0; i < 200; i++ {
		got := Sample(src, items, 3)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		seen := map[string]bool{}
		for _, g := range got {
			if seen[g] {
				t.Fatalf("duplicate %q in %v", g, got)
			}
			seen[g] = true
		}
	}
	if items[0] != "a" || items[4] != "e" {
		t.Errorf("Sample modified its input: %v", items)
	}
	if got := Sample(src, items, 9); len(got) != 5 {
		t.Errorf("oversized sample len = %d, want 5", len(got))
	}
}

func TestSampleZeroDrawsTakesPrefix(t *testing.T) {
	got := Sample(NewSequence(0), []int{1, 2, 3, 4}, 2)
	if got[0] != 1 || got[1] != 2 {
		t.Errorf("Sample = %v, want [1 2]", got)
	}
}

func TestShuffleKeepsElements(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	Shuffle(NewSeeded(3), items)
	sum := 0
	for _, v := range items {
		sum += v
	}
	if sum != 21 {
		t.Errorf("shuffled sum = %d, want 21", sum)
	}
}

func TestNilClientFallsBack(t *testing.T) {
	var c *Client
	for i := 0; i < 100; i++ {
		f := c.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, out of [0,1)", f)
		}
	}
	if NewClient("") != nil {
		t.Error("NewClient with empty key should be nil")
	}
}

func TestClientUsesPool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"random":{"data":[0.25,0.25,0.25,0.25,0.25,0.25,0.25,0.25,0.25,0.25,0.25,0.25]}}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("key")
	c.endpoint = srv.URL
	if got := c.Float64(); got != 0.25 {
		t.Errorf("Float64() = %v, want 0.25 from pool", got)
	}
	if got := c.Intn(8); got != 2 {
		t.Errorf("Intn(8) = %d, want 2", got)
	}
}

func TestNewSeedNonZero(t *testing.T) {
	if NewSeed() == 0 {
		t.Error("NewSeed() returned 0")
	}
}

func TestClientFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("key")
	c.endpoint = srv.URL
	for i := 0; i < 20; i++ {
		if f := c.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, out of [0,1)", f)
		}
	}
}
