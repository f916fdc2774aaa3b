//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
	"time"
)

func TestNewStreamDeterminism(t *testing.T) {
	s1 := NewStream(4242)
	s2 := NewStream(4242)

	// Same seed should produce same sequence
	for i := 0; i < 100; i++ {
		v1 := s1.Float64()
		v2 := s2.Float64()
		if v1 != v2 {
			t.Fatalf("Same seed produced different values at draw %d: %v != %v", i, v1, v2)
		}
	}
}

func TestStreamDifferentSeeds(t *testing.T) {
	s1 := NewStream(1)
	s2 := NewStream(2)

	same := 0
	for i := 0; i < 100; i++ {
		if s1.Float64() == s2.Float64() {
			same++
		}
	}
	if same == 100 {
		t.Error("Different seeds produced identical sequences")
	}
}

func TestIntRange(t *testing.T) {
	s := NewStream(1)
	for i := 0; i < 1000; i++ {
		v := s.IntRange(5, 10)
		if v < 5 || v > 10 {
			t.Fatalf("IntRange(5, 10) produced %d", v)
		}
	}
}

func TestIntRangeDegenerate(t *testing.T) {
	s := NewStream(1)
	if v := s.IntRange(7, 7); v != 7 {
		t.Errorf("IntRange(7, 7) = %d, want 7", v)
	}
	if v := s.IntRange(7, 3); v != 7 {
		t.Errorf("IntRange(7, 3) = %d, want min", v)
	}
}

func TestUniform(t *testing.T) {
	s := NewStream(1)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("Uniform(10, 20) produced %v", v)
		}
	}
}

func TestLogUniform(t *testing.T) {
	s := NewStream(1)
	for i := 0; i < 1000; i++ {
		v := s.LogUniform(5, 500)
		if v < 5 || v >= 500 {
			t.Fatalf("LogUniform(5, 500) produced %v", v)
		}
	}
}

func TestLogNormalPositive(t *testing.T) {
	s := NewStream(1)
	for i := 0; i < 1000; i++ {
		if v := s.LogNormal(1.2, 0.5); v <= 0 {
			t.Fatalf("LogNormal produced non-positive %v", v)
		}
	}
}

func TestBernoulliExtremes(t *testing.T) {
	s := NewStream(1)
	for i := 0; i < 100; i++ {
		if s.Bernoulli(0) {
			t.Fatal("Bernoulli(0) returned true")
		}
		if !s.Bernoulli(1) {
			t.Fatal("Bernoulli(1) returned false")
		}
	}
}

func TestWeightedIndex(t *testing.T) {
	s := NewStream(1)
	weights := []float64{0, 1, 0}
	for i := 0; i < 100; i++ {
		if idx := s.WeightedIndex(weights); idx != 1 {
			t.Fatalf("WeightedIndex chose zero-weight index %d", idx)
		}
	}
}

func TestWeightedIndexProportions(t *testing.T) {
	s := NewStream(42)
	weights := []float64{0.7, 0.2, 0.1}
	counts := make([]int, 3)
	n := 10000
	for i := 0; i < n; i++ {
		counts[s.WeightedIndex(weights)]++
	}
	// Loose bounds; a broken sampler would miss these by a wide margin
	if counts[0] < n/2 {
		t.Errorf("weight 0.7 drew only %d of %d", counts[0], n)
	}
	if counts[2] > n/4 {
		t.Errorf("weight 0.1 drew %d of %d", counts[2], n)
	}
}

func TestWeightedIndexZeroTotal(t *testing.T) {
	s := NewStream(1)
	if idx := s.WeightedIndex([]float64{0, 0}); idx != 0 {
		t.Errorf("zero-total weights returned %d, want 0", idx)
	}
}

func TestDateBetween(t *testing.T) {
	s := NewStream(1)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		d := s.DateBetween(start, end)
		if d.Before(start) || d.After(end) {
			t.Fatalf("DateBetween produced %v outside [%v, %v]", d, start, end)
		}
	}
}

func TestDateBetweenSameDay(t *testing.T) {
	s := NewStream(1)
	day := time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC)
	if d := s.DateBetween(day, day); !d.Equal(day) {
		t.Errorf("DateBetween(d, d) = %v, want %v", d, day)
	}
}

func TestShufflePreservesElements(t *testing.T) {
	s := NewStream(9)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	s.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("Shuffle lost elements: %v", items)
	}
}

func TestChoose(t *testing.T) {
	s := NewStream(1)
	items := []string{"a", "b", "c"}
	for i := 0; i < 100; i++ {
		v := Choose(s, items)
		if v != "a" && v != "b" && v != "c" {
			t.Fatalf("Choose returned %q", v)
		}
	}
}

func TestChooseEmpty(t *testing.T) {
	s := NewStream(1)
	if v := Choose(s, []string{}); v != "" {
		t.Errorf("Choose on empty slice returned %q", v)
	}
}

func TestChooseWeighted(t *testing.T) {
	s := NewStream(1)
	items := []string{"x", "y"}
	for i := 0; i < 100; i++ {
		if v := ChooseWeighted(s, items, []float64{0, 1}); v != "y" {
			t.Fatalf("ChooseWeighted chose zero-weight item %q", v)
		}
	}
}
