package sim

import "math"

// MatchQuality scores one candidate against one department. The result is
// not bounded to [0,1]: the prestige and postdoc bonuses are additive on top
// of the bounded research-fit term.
//
//	research_fit     = 1 - |focus - orientation| / 10
//	productivity_fit = 1 if productivity >= search_standards else 0
//	prestige_bonus   = (prestige_origin / 10) * 0.3
//	postdoc_bonus    = min(postdoc_duration * 0.1, 0.3)
//	score            = research_fit*productivity_fit + prestige_bonus + postdoc_bonus
func MatchQuality(c *Candidate, d *Department) float64 {
	researchFit := 1.0 - math.Abs(float64(c.ResearchFocus-d.ResearchOrientation))/10.0

	productivityFit := 0.0
	if c.Productivity >= d.SearchStandards {
		productivityFit = 1.0
	}

	prestigeBonus := float64(c.PrestigeOrigin) / 10.0 * 0.3
	postdocBonus := math.Min(float64(c.PostdocDuration)*0.1, 0.3)

	return researchFit*productivityFit + prestigeBonus + postdocBonus
}

// ScorePool evaluates one department against an arbitrary-size candidate set,
// returning one score per candidate in input order. It is a thin loop over
// MatchQuality so the batch path can never drift from the per-pair formula.
func ScorePool(pool []*Candidate, d *Department) []float64 {
	scores := make([]float64, len(pool))
	for i, c := range pool {
		scores[i] = MatchQuality(c, d)
	}
	return scores
}
