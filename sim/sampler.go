package sim

import (
	"math"
	"math/rand"
)

// Low-level draw helpers shared by the agent factories and the opening
// generator. All of them take an explicit *rand.Rand so every draw is
// attributable to one PartitionedRNG subsystem.

// clampedNormal draws from Normal(mean, stdDev) and clamps into [lo, hi].
func clampedNormal(rng *rand.Rand, mean, stdDev, lo, hi float64) float64 {
	if lo == hi {
		return lo
	}
	val := rng.NormFloat64()*stdDev + mean
	return math.Min(hi, math.Max(lo, val))
}

// uniformInt draws an integer uniformly from [lo, hi] inclusive.
func uniformInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// poisson draws from Poisson(lambda) via Knuth's product-of-uniforms method.
// Fine for the small rates used here (lambda <= ~5); returns 0 for
// non-positive lambda.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// weightedChoice returns an index drawn according to the given weights.
// Weights need not sum to one. Degenerate input (no positive weight)
// returns 0.
func weightedChoice(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	u := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if u < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// bernoulli draws true with probability p (clamped to [0,1]).
func bernoulli(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}
