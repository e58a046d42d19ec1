package sim

import (
	"math/rand"
	"testing"
)

func TestClampedNormal_WithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := clampedNormal(rng, 5.5, 2.0, 1, 10)
		if v < 1 || v > 10 {
			t.Fatalf("clampedNormal produced %v outside [1,10]", v)
		}
	}
}

func TestClampedNormal_DegenerateRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if v := clampedNormal(rng, 5, 2, 3, 3); v != 3 {
		t.Errorf("degenerate range returned %v, want 3", v)
	}
}

func TestUniformInt_Inclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		v := uniformInt(rng, 3, 8)
		if v < 3 || v > 8 {
			t.Fatalf("uniformInt produced %d outside [3,8]", v)
		}
		seen[v] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected all 6 values in [3,8] over 2000 draws, saw %d", len(seen))
	}
}

func TestPoisson_NonNegativeAndDeterministic(t *testing.T) {
	rng1 := rand.New(rand.NewSource(3))
	rng2 := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		a := poisson(rng1, 0.5)
		b := poisson(rng2, 0.5)
		if a < 0 {
			t.Fatalf("poisson produced negative count %d", a)
		}
		if a != b {
			t.Fatalf("same-seed poisson draws diverged: %d vs %d", a, b)
		}
	}
}

func TestPoisson_NonPositiveLambda(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	if v := poisson(rng, 0); v != 0 {
		t.Errorf("poisson(0) = %d, want 0", v)
	}
	if v := poisson(rng, -1); v != 0 {
		t.Errorf("poisson(-1) = %d, want 0", v)
	}
}

func TestPoisson_MeanRoughlyLambda(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	total := 0
	const n = 20000
	for i := 0; i < n; i++ {
		total += poisson(rng, 2.0)
	}
	mean := float64(total) / n
	if mean < 1.8 || mean > 2.2 {
		t.Errorf("poisson(2.0) sample mean = %v, want near 2.0", mean)
	}
}

func TestWeightedChoice_RespectsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	counts := make([]int, 3)
	for i := 0; i < 10000; i++ {
		counts[weightedChoice(rng, []float64{0.8, 0.15, 0.05})]++
	}
	if !(counts[0] > counts[1] && counts[1] > counts[2]) {
		t.Errorf("weighted counts not ordered by weight: %v", counts)
	}
}

func TestWeightedChoice_DegenerateWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	if idx := weightedChoice(rng, []float64{0, 0, 0}); idx != 0 {
		t.Errorf("all-zero weights returned %d, want 0", idx)
	}
}

func TestBernoulli_Extremes(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for i := 0; i < 100; i++ {
		if bernoulli(rng, 0) {
			t.Fatal("bernoulli(0) returned true")
		}
		if !bernoulli(rng, 1) {
			t.Fatal("bernoulli(1) returned false")
		}
		if !bernoulli(rng, 1.25) {
			t.Fatal("bernoulli above 1 must always return true")
		}
	}
}
