package sapling

import "testing"

func TestRandSameSeedSameStream(t *testing.T) {
	a := NewRand("seed #123")
	b := NewRand("seed #123")
	for i := 0; i < 1000; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("draw %d: %v != %v for identical seeds", i, va, vb)
		}
	}
}

func TestRandDifferentSeedsDiverge(t *testing.T) {
	a := NewRand("seed #123")
	b := NewRand("seed #124")
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same > 1 {
		t.Errorf("%d/100 identical draws across different seeds", same)
	}
}

func TestRandFloat64HalfOpen(t *testing.T) {
	r := NewRand("bounds")
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d: %v outside [0, 1)", i, v)
		}
	}
}

func TestRandFloatRange(t *testing.T) {
	r := NewRand("range")
	for i := 0; i < 1000; i++ {
		v := r.FloatRange(-2.5, 3.5)
		if v < -2.5 || v >= 3.5 {
			t.Fatalf("draw %d: %v outside [-2.5, 3.5)", i, v)
		}
	}
}

func TestRandIntRange(t *testing.T) {
	r := NewRand("ints")
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.IntRange(2, 4)
		if v < 2 || v > 4 {
			t.Fatalf("draw %d: %d outside [2, 4]", i, v)
		}
		seen[v] = true
	}
	for want := 2; want <= 4; want++ {
		if !seen[want] {
			t.Errorf("value %d never drawn", want)
		}
	}
}

func TestRandIntRangeDegenerate(t *testing.T) {
	r := NewRand("degenerate")
	if got := r.IntRange(7, 7); got != 7 {
		t.Errorf("IntRange(7, 7) = %d, want 7", got)
	}
	if got := r.IntRange(7, 3); got != 7 {
		t.Errorf("IntRange(7, 3) = %d, want 7 (min wins)", got)
	}
}

func TestRandChanceExtremes(t *testing.T) {
	r := NewRand("chance")
	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) hit")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) missed")
		}
	}
}

func TestRangeRandom(t *testing.T) {
	r := NewRand("range-type")
	rg := Range{0.65, 0.9}
	for i := 0; i < 1000; i++ {
		v := rg.Random(r)
		if v < 0.65 || v > 0.9 {
			t.Fatalf("draw %d: %v outside [0.65, 0.9]", i, v)
		}
	}
}
