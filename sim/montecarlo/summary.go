package montecarlo

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/faculty-sim/faculty-sim/sim"
)

// ScenarioSummary aggregates the runs of one scenario arm.
type ScenarioSummary struct {
	Scenario   string
	Runs       int
	FailedRuns int

	MeanPlacementsPerYear float64
	MeanFailedSearches    float64 // per year, averaged over runs
	MeanPlacementRate     float64 // placements / seekers, pooled per run
	StdDevPlacementRate   float64
	MeanTransitionRate    float64 // faculty outcomes / candidates ever created
}

// Summarize computes per-scenario aggregate statistics from a batch.
// Failed runs are counted but contribute no statistics. Safe for nil or
// empty batches. Output is sorted by scenario name for stable reporting.
func Summarize(br *BatchResult) []ScenarioSummary {
	if br == nil {
		return nil
	}

	type accumulator struct {
		runs, failed    int
		placementsYear  []float64
		failedSearches  []float64
		placementRates  []float64
		transitionRates []float64
	}
	byScenario := make(map[string]*accumulator)

	for _, run := range br.Runs {
		acc := byScenario[run.Scenario]
		if acc == nil {
			acc = &accumulator{}
			byScenario[run.Scenario] = acc
		}
		acc.runs++
		if run.Err != nil || run.Result == nil {
			acc.failed++
			continue
		}

		placements, failedSearches, seekers := 0, 0, 0
		for _, row := range run.Result.YearlyStats {
			placements += row.PlacementsMade
			failedSearches += row.FailedSearches
			seekers += row.CandidatesSeeking
		}
		years := len(run.Result.YearlyStats)
		if years > 0 {
			acc.placementsYear = append(acc.placementsYear, float64(placements)/float64(years))
			acc.failedSearches = append(acc.failedSearches, float64(failedSearches)/float64(years))
		}
		if seekers > 0 {
			acc.placementRates = append(acc.placementRates, float64(placements)/float64(seekers))
		}
		if run.Result.TotalCandidates > 0 {
			faculty := 0
			for _, o := range run.Result.CandidateOutcomes {
				if o.CareerOutcome == sim.StatusFaculty {
					faculty++
				}
			}
			acc.transitionRates = append(acc.transitionRates, float64(faculty)/float64(run.Result.TotalCandidates))
		}
	}

	summaries := make([]ScenarioSummary, 0, len(byScenario))
	for name, acc := range byScenario {
		s := ScenarioSummary{
			Scenario:   name,
			Runs:       acc.runs,
			FailedRuns: acc.failed,
		}
		if len(acc.placementsYear) > 0 {
			s.MeanPlacementsPerYear = stat.Mean(acc.placementsYear, nil)
			s.MeanFailedSearches = stat.Mean(acc.failedSearches, nil)
		}
		if len(acc.placementRates) > 0 {
			s.MeanPlacementRate = stat.Mean(acc.placementRates, nil)
			if len(acc.placementRates) > 1 {
				s.StdDevPlacementRate = stat.StdDev(acc.placementRates, nil)
			}
		}
		if len(acc.transitionRates) > 0 {
			s.MeanTransitionRate = stat.Mean(acc.transitionRates, nil)
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Scenario < summaries[j].Scenario })
	return summaries
}

// PrintSummaries writes a plain-text batch report.
func PrintSummaries(w io.Writer, summaries []ScenarioSummary) {
	fmt.Fprintln(w, "=== Batch Summary ===")
	for _, s := range summaries {
		fmt.Fprintf(w, "scenario %-22s runs=%d failed=%d placements/yr=%.1f failed-searches/yr=%.1f placement-rate=%.4f (sd %.4f) transition-rate=%.4f\n",
			s.Scenario, s.Runs, s.FailedRuns, s.MeanPlacementsPerYear, s.MeanFailedSearches, s.MeanPlacementRate, s.StdDevPlacementRate, s.MeanTransitionRate)
	}
}
