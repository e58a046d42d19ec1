package sim

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

// hireThreshold is the match quality above which a search always succeeds,
// regardless of the department's failure tolerance.
const hireThreshold = 0.8

// Placement records one candidate hired by one department.
type Placement struct {
	CandidateID  int
	DepartmentID int
	Score        float64
}

// MarketResult is the outcome of one year's hiring market.
type MarketResult struct {
	Placements     []Placement
	Remaining      []*Candidate // unplaced job seekers, still available next year
	FailedSearches int          // total openings that went unfilled this year
}

// ResolveHiringMarket allocates job-seeking candidates to department openings
// for one year.
//
// Departments are processed in ascending department-ID order. This is an
// explicit priority policy, not an accident of iteration: earlier departments
// get first pick of the shrinking candidate pool. Zero-opening departments
// are skipped and consume no candidates; once the pool empties, processing
// stops entirely.
//
// For each department, all remaining candidates are scored with the effective
// search standards (scenario or recession inflation applied per call, never
// written back to the department record). Non-positive scores are discarded;
// the rest are ranked by score descending with candidate-ID-ascending
// tie-break. A search succeeds when the top score reaches hireThreshold or a
// uniform draw exceeds the failure tolerance; otherwise the department's full
// opening count is added to the failed-search tally and no candidates are
// consumed. On success the department hires min(openings, positives),
// top-scored first, and the hires leave the shared pool.
//
// The openings table must carry one entry per department; a missing entry is
// an invariant violation and returns an error rather than being coerced.
// Callers apply status updates back onto the authoritative candidate table.
func ResolveHiringMarket(rng *rand.Rand, seekers []*Candidate, departments []*Department, openings map[int]int, year int, inRecessionWindow bool, scenario *Scenario) (*MarketResult, error) {
	scenarioActive := scenario != nil && scenario.recessionEffectsEnabled() && inRecessionWindow

	ordered := make([]*Department, len(departments))
	copy(ordered, departments)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	pool := make([]*Candidate, len(seekers))
	copy(pool, seekers)

	result := &MarketResult{}

	for _, d := range ordered {
		count, ok := openings[d.ID]
		if !ok {
			return nil, fmt.Errorf("openings table missing department %d", d.ID)
		}
		if count < 0 {
			return nil, fmt.Errorf("department %d has negative openings %d", d.ID, count)
		}
		if count == 0 {
			continue
		}
		if len(pool) == 0 {
			break
		}

		// Effective hiring posture for this department this year.
		effective := *d
		if scenarioActive {
			effective.SearchStandards = d.SearchStandards * scenario.standardsInflation()
			effective.SearchFailureTolerance = scenario.failureTolerance()
		} else if scenario == nil && inRecessionWindow {
			effective.SearchStandards = d.SearchStandards * defaultSearchStandardsInflation
		}

		scores := ScorePool(pool, &effective)

		type ranked struct {
			candidate *Candidate
			score     float64
		}
		var positives []ranked
		for i, s := range scores {
			if s > 0 {
				positives = append(positives, ranked{pool[i], s})
			}
		}

		if len(positives) == 0 {
			result.FailedSearches += count
			continue
		}

		// Pool is in ascending candidate-ID order, so the stable sort keeps
		// the lower ID first on score ties.
		sort.SliceStable(positives, func(i, j int) bool {
			return positives[i].score > positives[j].score
		})

		topQuality := positives[0].score
		if topQuality < hireThreshold && rng.Float64() <= effective.SearchFailureTolerance {
			// Department walks away despite a qualified pool.
			result.FailedSearches += count
			continue
		}

		hires := count
		if len(positives) < hires {
			hires = len(positives)
		}

		hired := make(map[int]bool, hires)
		for i := 0; i < hires; i++ {
			result.Placements = append(result.Placements, Placement{
				CandidateID:  positives[i].candidate.ID,
				DepartmentID: d.ID,
				Score:        positives[i].score,
			})
			hired[positives[i].candidate.ID] = true
		}

		remaining := pool[:0]
		for _, c := range pool {
			if !hired[c.ID] {
				remaining = append(remaining, c)
			}
		}
		pool = remaining

		logrus.Debugf("[year %d] department %d hired %d of %d openings (top score %.3f)", year, d.ID, hires, count, topQuality)
	}

	result.Remaining = pool
	return result, nil
}
