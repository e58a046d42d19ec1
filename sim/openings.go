package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Market liquidity constants for opening generation.
const (
	retirementProbabilityFloor = 0.01
	recessionMobilityFactor    = 0.7
	growthOpeningsLambda       = 0.1
	baselineTurnoverLambda     = 0.5
)

// RecessionEffects bundles the attrition adjustments applied inside the
// recession window. Callers may pass nil to GenerateOpenings to get the
// defaults.
type RecessionEffects struct {
	// RetirementDelayFactor scales each faculty member's retirement risk
	// during the recession. Values below 1 delay retirements.
	RetirementDelayFactor float64
}

// DefaultRecessionEffects returns the baseline recession adjustment.
func DefaultRecessionEffects() *RecessionEffects {
	return &RecessionEffects{RetirementDelayFactor: defaultRetirementDelayFactor}
}

// GenerateOpenings turns faculty attrition draws into a per-department
// vacancy table for one year.
//
// Every faculty member's status is recomputed in place: first a retirement
// Bernoulli with probability max(0.01, risk * retirementFactor), then, for
// the non-retiring, a mobility Bernoulli with the rank mobility risk (scaled
// by 0.7 in a recession). Natural openings are the retiring+moving count per
// department; outside a recession each department also draws growth openings
// ~ Poisson(0.1); every department always draws baseline turnover openings
// ~ Poisson(0.5).
//
// inRecession must already reflect scenario gating: when a scenario disables
// recession effects, the caller passes false even inside the window.
//
// The returned table has exactly one entry per department in the roster,
// zero-filled for departments with no attrition, all counts >= 0.
func GenerateOpenings(rng *rand.Rand, faculty []*Faculty, departments []*Department, year int, inRecession bool, effects *RecessionEffects) map[int]int {
	if effects == nil {
		effects = DefaultRecessionEffects()
	}

	retirementFactor := 1.0
	mobilityFactor := 1.0
	if inRecession {
		retirementFactor = effects.RetirementDelayFactor
		mobilityFactor = recessionMobilityFactor
	}

	// Explicit zero-fill: every department appears in the result even if no
	// faculty member leaves it.
	openings := make(map[int]int, len(departments))
	for _, d := range departments {
		openings[d.ID] = 0
	}

	for _, f := range faculty {
		p := f.RetirementRisk * retirementFactor
		if p < retirementProbabilityFloor {
			p = retirementProbabilityFloor
		}
		if bernoulli(rng, p) {
			f.Status = FacultyRetiring
			openings[f.DepartmentID]++
			continue
		}
		if bernoulli(rng, f.MobilityRisk*mobilityFactor) {
			f.Status = FacultyMoving
			openings[f.DepartmentID]++
			continue
		}
		f.Status = FacultyStaying
	}

	for _, d := range departments {
		if !inRecession {
			openings[d.ID] += poisson(rng, growthOpeningsLambda)
		}
		openings[d.ID] += poisson(rng, baselineTurnoverLambda)
	}

	logrus.Debugf("[year %d] generated openings for %d departments (recession=%v)", year, len(departments), inRecession)
	return openings
}
