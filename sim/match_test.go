package sim

import (
	"math"
	"testing"
)

func TestMatchQuality_ExactFormula(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		dept      Department
		want      float64
	}{
		{
			name:      "perfect fit above standards",
			candidate: Candidate{ResearchFocus: 5, Productivity: 8, PrestigeOrigin: 10, PostdocDuration: 0},
			dept:      Department{ResearchOrientation: 5, SearchStandards: 6},
			// 1.0*1 + 0.3 + 0 = 1.3
			want: 1.3,
		},
		{
			name:      "below standards zeroes the fit term",
			candidate: Candidate{ResearchFocus: 5, Productivity: 4, PrestigeOrigin: 5, PostdocDuration: 1},
			dept:      Department{ResearchOrientation: 5, SearchStandards: 6},
			// 1.0*0 + 0.15 + 0.1 = 0.25
			want: 0.25,
		},
		{
			name:      "research distance reduces fit",
			candidate: Candidate{ResearchFocus: 2, Productivity: 7, PrestigeOrigin: 1, PostdocDuration: 0},
			dept:      Department{ResearchOrientation: 8, SearchStandards: 5},
			// (1 - 6/10)*1 + 0.03 + 0 = 0.43
			want: 0.43,
		},
		{
			name:      "postdoc bonus capped at 0.3",
			candidate: Candidate{ResearchFocus: 5, Productivity: 8, PrestigeOrigin: 1, PostdocDuration: 7},
			dept:      Department{ResearchOrientation: 5, SearchStandards: 6},
			// 1.0*1 + 0.03 + min(0.7, 0.3) = 1.33
			want: 1.33,
		},
		{
			name:      "zero prestige and no postdoc can score zero",
			candidate: Candidate{ResearchFocus: 1, Productivity: 3, PrestigeOrigin: 0, PostdocDuration: 0},
			dept:      Department{ResearchOrientation: 8, SearchStandards: 5},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchQuality(&tt.candidate, &tt.dept)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MatchQuality = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchQuality_NotBoundedToUnitInterval(t *testing.T) {
	c := &Candidate{ResearchFocus: 5, Productivity: 10, PrestigeOrigin: 10, PostdocDuration: 5}
	d := &Department{ResearchOrientation: 5, SearchStandards: 4}
	if got := MatchQuality(c, d); got <= 1.0 {
		t.Errorf("expected score above 1.0 with max bonuses, got %v", got)
	}
}

func TestScorePool_MatchesPerPairFormula(t *testing.T) {
	// The batch path must match per-pair scoring for every candidate.
	rng := newRandFromSeed(99)
	pool, err := NewCandidateCohort(rng, 1, 200, 2000)
	if err != nil {
		t.Fatal(err)
	}
	d := NewDepartment(rng, 1, 15)

	scores := ScorePool(pool, d)
	if len(scores) != len(pool) {
		t.Fatalf("ScorePool returned %d scores for %d candidates", len(scores), len(pool))
	}
	for i, c := range pool {
		if want := MatchQuality(c, d); scores[i] != want {
			t.Fatalf("candidate %d: batch score %v != per-pair score %v", c.ID, scores[i], want)
		}
	}
}

func TestScorePool_EmptyPool(t *testing.T) {
	d := &Department{ResearchOrientation: 5, SearchStandards: 5}
	if scores := ScorePool(nil, d); len(scores) != 0 {
		t.Errorf("expected empty scores for empty pool, got %d", len(scores))
	}
}
