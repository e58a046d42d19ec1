package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Candidate lifecycle transition constants.
const (
	postdocEntryBaseProbability = 0.4
	postdocReturnProbability    = 0.6

	// Academia-exit hazard: base rate plus a per-year penalty once a
	// candidate has been on the market more than two years, capped.
	academiaExitBase       = 0.10
	academiaExitPerYear    = 0.05
	academiaExitCap        = 0.50
	academiaExitGraceYears = 2

	// Productivity boost for candidates returning from a postdoc.
	postdocBoostMean   = 0.5
	postdocBoostStdDev = 0.3
)

// recessionPostdocMultiplier is the flat postdoc-entry inflation applied in a
// recession year when no scenario is supplied.
const recessionPostdocMultiplier = 1.3

// Simulator drives one simulation run: a bounded loop, one iteration per
// simulated year. It owns the candidate pool, faculty roster, department
// roster, RNG partition, and output tables from initialization to completion.
type Simulator struct {
	cfg      RunConfig
	scenario *Scenario
	rng      *PartitionedRNG

	Pool        []*Candidate
	Faculty     []*Faculty
	Departments []*Department
	Metrics     *Metrics

	nextCandidateID int
}

// NewSimulator validates the configuration, initializes the department and
// faculty populations, and returns a Simulator ready to Run. Configuration
// errors surface here, before any simulation year executes.
func NewSimulator(cfg RunConfig, scenario *Scenario) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	if scenario != nil {
		if err := scenario.Validate(); err != nil {
			return nil, fmt.Errorf("invalid scenario: %w", err)
		}
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	agentsRNG := rng.ForSubsystem(SubsystemAgents)

	departments := NewDepartmentRoster(agentsRNG, cfg.NumDepartments, cfg.AvgDeptSize)
	faculty := NewFacultyRoster(agentsRNG, departments)

	return &Simulator{
		cfg:             cfg,
		scenario:        scenario,
		rng:             rng,
		Departments:     departments,
		Faculty:         faculty,
		Metrics:         NewMetrics(cfg.SimulationYears),
		nextCandidateID: 1,
	}, nil
}

// Run executes the full simulation horizon. A run is atomic: it either
// completes every configured year or fails as a whole with no partial result.
func (s *Simulator) Run() (*Result, error) {
	for i := 0; i < s.cfg.SimulationYears; i++ {
		year := s.cfg.StartYear + i
		if err := s.simulateYear(year); err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
	}
	logrus.Infof("simulation ended after %d years, %d candidates created", s.cfg.SimulationYears, s.Metrics.TotalCandidatesCreated)
	return s.Metrics.Result(), nil
}

// recessionEffectsActive reports whether recession adjustments apply in the
// given year, honoring scenario gating.
func (s *Simulator) recessionEffectsActive(year int) bool {
	return s.cfg.InRecessionWindow(year) && s.scenario.recessionEffectsEnabled()
}

// postdocEntryMultiplier resolves the postdoc-entry inflation for a year:
// the scenario's multiplier when its effects apply, a flat 1.3x in an
// unscenarioed recession year, 1.0x otherwise.
func (s *Simulator) postdocEntryMultiplier(year int) float64 {
	if !s.cfg.InRecessionWindow(year) {
		return 1.0
	}
	if s.scenario != nil {
		if !s.scenario.recessionEffectsEnabled() {
			return 1.0
		}
		return s.scenario.postdocMultiplier()
	}
	return recessionPostdocMultiplier
}

// simulateYear advances the model by one year. Step order matters: it fixes
// which candidates are eligible for hiring and which year an event is
// attributed to.
func (s *Simulator) simulateYear(year int) error {
	agentsRNG := s.rng.ForSubsystem(SubsystemAgents)
	transitionsRNG := s.rng.ForSubsystem(SubsystemTransitions)
	attritionRNG := s.rng.ForSubsystem(SubsystemAttrition)
	marketRNG := s.rng.ForSubsystem(SubsystemMarket)

	// 1. New graduate cohort, IDs continuing from the run-scoped counter.
	cohort, err := NewCandidateCohort(agentsRNG, s.nextCandidateID, s.cfg.AnnualPhDCohort, year)
	if err != nil {
		return err
	}
	s.nextCandidateID += len(cohort)
	s.Metrics.TotalCandidatesCreated += len(cohort)

	// 2. Lifecycle transitions for the existing pool.
	s.applyTransitions(transitionsRNG, year)

	// 3. Merge the new cohort into the pool.
	s.Pool = append(s.Pool, cohort...)

	// 4. Openings from faculty attrition.
	effects := &RecessionEffects{RetirementDelayFactor: s.scenario.retirementDelayFactor()}
	openings := GenerateOpenings(attritionRNG, s.Faculty, s.Departments, year, s.recessionEffectsActive(year), effects)

	totalOpenings := 0
	for _, n := range openings {
		if n < 0 {
			return fmt.Errorf("negative openings count %d", n)
		}
		totalOpenings += n
	}

	// 5. Hiring market against the job-seeking subset.
	var seekers []*Candidate
	for _, c := range s.Pool {
		if c.Status == StatusJobSeeking {
			seekers = append(seekers, c)
		}
	}

	market, err := ResolveHiringMarket(marketRNG, seekers, s.Departments, openings, year, s.cfg.InRecessionWindow(year), s.scenario)
	if err != nil {
		return err
	}

	// 6. Apply placements back onto the authoritative pool.
	placed := make(map[int]bool, len(market.Placements))
	for _, p := range market.Placements {
		placed[p.CandidateID] = true
	}
	for _, c := range s.Pool {
		if placed[c.ID] {
			c.Status = StatusFaculty
			c.CareerOutcome = StatusFaculty
			s.Metrics.RecordOutcome(c, year)
		}
	}

	// 7. Yearly statistics row.
	s.Metrics.RecordYear(YearlyStats{
		Year:              year,
		TotalOpenings:     totalOpenings,
		CandidatesSeeking: len(seekers),
		PlacementsMade:    len(market.Placements),
		FailedSearches:    market.FailedSearches,
	})

	// 8. Prune terminal candidates; they play no further role.
	active := s.Pool[:0]
	for _, c := range s.Pool {
		if !c.Status.Terminal() {
			active = append(active, c)
		}
	}
	s.Pool = active

	logrus.Infof("[year %d] openings=%d seekers=%d placed=%d failed=%d pool=%d",
		year, totalOpenings, len(seekers), len(market.Placements), market.FailedSearches, len(s.Pool))
	return nil
}

// applyTransitions runs the yearly candidate lifecycle draws over the
// existing pool, in order: postdoc entry, academia exit, postdoc return.
// The three transitions are mutually exclusive per candidate per year: a
// candidate entering a postdoc this year is evaluated for neither exit nor
// return, and a returning candidate cannot re-enter in the same year.
func (s *Simulator) applyTransitions(rng *rand.Rand, year int) {
	if len(s.Pool) == 0 {
		return
	}

	multiplier := s.postdocEntryMultiplier(year)
	pEnter := postdocEntryBaseProbability * multiplier
	if pEnter > 1 {
		pEnter = 1
	}

	for _, c := range s.Pool {
		c.YearsSincePhD = year - c.CohortYear
		if c.YearsSincePhD < 0 {
			c.YearsSincePhD = 0
		}
	}

	entered := make(map[int]bool)

	// Postdoc entry: job seekers only.
	for _, c := range s.Pool {
		if c.Status != StatusJobSeeking {
			continue
		}
		if bernoulli(rng, pEnter) {
			c.Status = StatusPostdoc
			entered[c.ID] = true
		}
	}

	// Academia exit: job seekers that did not just enter a postdoc.
	for _, c := range s.Pool {
		if c.Status != StatusJobSeeking {
			continue
		}
		if bernoulli(rng, academiaExitProbability(c.YearsSincePhD)) {
			c.Status = StatusAltCareer
			c.CareerOutcome = StatusAltCareer
			s.Metrics.RecordOutcome(c, year)
		}
	}

	// Postdoc return: candidates already in postdoc before this year.
	for _, c := range s.Pool {
		if c.Status != StatusPostdoc || entered[c.ID] {
			continue
		}
		if bernoulli(rng, postdocReturnProbability) {
			c.Status = StatusJobSeeking
			boost := rng.NormFloat64()*postdocBoostStdDev + postdocBoostMean
			c.Productivity += boost
			if c.Productivity > 10 {
				c.Productivity = 10
			}
		}
	}

	// Anyone spending this year in a postdoc accrues a year of duration,
	// including the entry year.
	for _, c := range s.Pool {
		if c.Status == StatusPostdoc {
			c.PostdocDuration++
		}
	}
}

// academiaExitProbability is the yearly hazard of leaving for an alternative
// career while job seeking.
func academiaExitProbability(yearsSincePhD int) float64 {
	p := academiaExitBase
	if extra := yearsSincePhD - academiaExitGraceYears; extra > 0 {
		p += academiaExitPerYear * float64(extra)
	}
	if p > academiaExitCap {
		p = academiaExitCap
	}
	return p
}

// RunOneSimulation is the engine's sole entry point: it constructs a
// Simulator from the configuration and runs it to completion. Deterministic
// given identical cfg and scenario.
func RunOneSimulation(cfg RunConfig, scenario *Scenario) (*Result, error) {
	s, err := NewSimulator(cfg, scenario)
	if err != nil {
		return nil, err
	}
	return s.Run()
}
