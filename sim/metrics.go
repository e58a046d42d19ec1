package sim

import (
	"fmt"
	"io"
)

// YearlyStats is one row of the per-year statistics table.
type YearlyStats struct {
	Year              int
	TotalOpenings     int // sum of openings across departments
	CandidatesSeeking int // job seekers that entered the market this year
	PlacementsMade    int
	FailedSearches    int
}

// OutcomeRecord is one row of the per-candidate outcome table, appended
// exactly once at the year a candidate reaches a terminal status.
type OutcomeRecord struct {
	CandidateID   int
	CohortYear    int
	CareerOutcome CandidateStatus
	OutcomeYear   int
}

// Result is the boundary contract of a single run: two append-only tables
// consumed verbatim by downstream aggregation, plus the total number of
// candidates ever created (terminal outcomes + still-active pool).
type Result struct {
	YearlyStats       []YearlyStats
	CandidateOutcomes []OutcomeRecord
	TotalCandidates   int
}

// Metrics accumulates the run's output tables. Owned by the Simulator;
// rows are append-only.
type Metrics struct {
	Yearly   []YearlyStats
	Outcomes []OutcomeRecord

	TotalCandidatesCreated int
}

// NewMetrics returns an empty Metrics accumulator sized for the run horizon.
func NewMetrics(simulationYears int) *Metrics {
	return &Metrics{
		Yearly: make([]YearlyStats, 0, simulationYears),
	}
}

// RecordYear appends one yearly statistics row.
func (m *Metrics) RecordYear(row YearlyStats) {
	m.Yearly = append(m.Yearly, row)
}

// RecordOutcome appends one terminal candidate outcome.
func (m *Metrics) RecordOutcome(c *Candidate, year int) {
	m.Outcomes = append(m.Outcomes, OutcomeRecord{
		CandidateID:   c.ID,
		CohortYear:    c.CohortYear,
		CareerOutcome: c.CareerOutcome,
		OutcomeYear:   year,
	})
}

// Result packages the accumulated tables for the caller.
func (m *Metrics) Result() *Result {
	return &Result{
		YearlyStats:       m.Yearly,
		CandidateOutcomes: m.Outcomes,
		TotalCandidates:   m.TotalCandidatesCreated,
	}
}

// Print displays aggregated run statistics.
func (m *Metrics) Print(w io.Writer) {
	totalOpenings, totalPlacements, totalFailed, totalSeeking := 0, 0, 0, 0
	for _, row := range m.Yearly {
		totalOpenings += row.TotalOpenings
		totalPlacements += row.PlacementsMade
		totalFailed += row.FailedSearches
		totalSeeking += row.CandidatesSeeking
	}

	facultyOutcomes, altCareerOutcomes := 0, 0
	for _, o := range m.Outcomes {
		switch o.CareerOutcome {
		case StatusFaculty:
			facultyOutcomes++
		case StatusAltCareer:
			altCareerOutcomes++
		}
	}

	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Years simulated      : %d\n", len(m.Yearly))
	fmt.Fprintf(w, "Candidates created   : %d\n", m.TotalCandidatesCreated)
	fmt.Fprintf(w, "Total openings       : %d\n", totalOpenings)
	fmt.Fprintf(w, "Placements made      : %d\n", totalPlacements)
	fmt.Fprintf(w, "Failed searches      : %d\n", totalFailed)
	fmt.Fprintf(w, "Faculty outcomes     : %d\n", facultyOutcomes)
	fmt.Fprintf(w, "Alt-career outcomes  : %d\n", altCareerOutcomes)
	if m.TotalCandidatesCreated > 0 {
		rate := float64(facultyOutcomes) / float64(m.TotalCandidatesCreated)
		fmt.Fprintf(w, "PhD-to-faculty rate  : %.4f\n", rate)
	}
}
