package sim

import (
	"fmt"
	"math/rand"
)

// === Candidate ===

// CandidateStatus is the lifecycle state of a job-market candidate.
// "faculty" and "alt_career" are terminal: a candidate reaching either is
// logged once in the outcome table and removed from the active pool at the
// end of that year.
type CandidateStatus string

const (
	StatusJobSeeking CandidateStatus = "job_seeking"
	StatusPostdoc    CandidateStatus = "postdoc"
	StatusAltCareer  CandidateStatus = "alt_career"
	StatusFaculty    CandidateStatus = "faculty"
)

// Terminal reports whether the status removes the candidate from the pool.
func (s CandidateStatus) Terminal() bool {
	return s == StatusFaculty || s == StatusAltCareer
}

// Candidate is a PhD graduate on the job market. Created once at cohort
// entry, mutated every year it remains active, removed the year it reaches a
// terminal status.
type Candidate struct {
	ID                  int
	CohortYear          int
	ResearchFocus       int     // 1..10
	TeachingOrientation int     // 1..10
	Productivity        float64 // 1..10, clamped normal; boosted on postdoc return
	PrestigeOrigin      int     // 1..10, categorical, skewed toward 1
	Publications        int     // Poisson-distributed, >= 0
	YearsSincePhD       int     // current_year - CohortYear, recomputed yearly
	Status              CandidateStatus
	PostdocDuration     int             // total years spent in postdoc, never resets
	CareerOutcome       CandidateStatus // empty until a terminal transition
}

// Distribution constants for candidate construction. The prestige weights
// skew doctoral origin heavily toward low-prestige programs.
const publicationsLambda = 2.0

var prestigeOriginWeights = []float64{0.30, 0.20, 0.15, 0.10, 0.08, 0.06, 0.04, 0.03, 0.02, 0.02}

// NewCandidate constructs a single candidate with randomized attributes.
// All draws come from the supplied rng; the caller owns ID assignment.
func NewCandidate(rng *rand.Rand, id, cohortYear int) *Candidate {
	return &Candidate{
		ID:                  id,
		CohortYear:          cohortYear,
		ResearchFocus:       uniformInt(rng, 1, 10),
		TeachingOrientation: uniformInt(rng, 1, 10),
		Productivity:        clampedNormal(rng, 5.5, 2.0, 1, 10),
		PrestigeOrigin:      weightedChoice(rng, prestigeOriginWeights) + 1,
		Publications:        poisson(rng, publicationsLambda),
		YearsSincePhD:       0,
		Status:              StatusJobSeeking,
	}
}

// NewCandidateCohort constructs n candidates sharing a cohort year, with
// sequential IDs starting at startID and independent per-record draws.
// The cohort year is a required discriminator: a zero value is rejected
// rather than silently producing a cohort that predates the simulation.
func NewCandidateCohort(rng *rand.Rand, startID, n, cohortYear int) ([]*Candidate, error) {
	if cohortYear <= 0 {
		return nil, fmt.Errorf("candidate cohort requires a cohort year, got %d", cohortYear)
	}
	if n < 0 {
		return nil, fmt.Errorf("cohort size must be >= 0, got %d", n)
	}
	cohort := make([]*Candidate, 0, n)
	for i := 0; i < n; i++ {
		cohort = append(cohort, NewCandidate(rng, startID+i, cohortYear))
	}
	return cohort, nil
}

// === Faculty ===

// Rank is a faculty member's academic rank.
type Rank string

const (
	RankAssistant Rank = "assistant"
	RankAssociate Rank = "associate"
	RankFull      Rank = "full"
)

// TenureStatus is derived from rank: assistants are on the tenure track,
// everyone else is tenured.
type TenureStatus string

const (
	TenureTrack TenureStatus = "tenure_track"
	Tenured     TenureStatus = "tenured"
)

// FacultyStatus is the per-year attrition outcome, recomputed by the opening
// generator each year.
type FacultyStatus string

const (
	FacultyStaying  FacultyStatus = "staying"
	FacultyRetiring FacultyStatus = "retiring"
	FacultyMoving   FacultyStatus = "moving"
)

// Faculty is a sitting faculty member. The roster is created once at
// simulation initialization and does not grow: openings are a derived market
// signal, not a roster mutation.
type Faculty struct {
	ID              int
	DepartmentID    int
	Rank            Rank
	TenureStatus    TenureStatus
	Age             int
	YearsInPosition int
	RetirementRisk  float64
	MobilityRisk    float64
	Status          FacultyStatus
}

var rankMixWeights = []float64{0.35, 0.30, 0.35} // assistant, associate, full

// Rank-conditioned attribute ranges.
var (
	rankAgeRange      = map[Rank][2]int{RankAssistant: {28, 35}, RankAssociate: {35, 50}, RankFull: {45, 68}}
	rankPositionRange = map[Rank][2]int{RankAssistant: {0, 6}, RankAssociate: {0, 12}, RankFull: {0, 20}}
	rankMobilityRisk  = map[Rank]float64{RankAssistant: 0.15, RankAssociate: 0.08, RankFull: 0.03}
)

// retirementRisk implements max(0.02, (age-55)*0.05).
func retirementRisk(age int) float64 {
	risk := float64(age-55) * 0.05
	if risk < 0.02 {
		return 0.02
	}
	return risk
}

// NewFaculty constructs a single faculty member attached to a department.
func NewFaculty(rng *rand.Rand, id, departmentID int) *Faculty {
	ranks := []Rank{RankAssistant, RankAssociate, RankFull}
	rank := ranks[weightedChoice(rng, rankMixWeights)]

	tenure := Tenured
	if rank == RankAssistant {
		tenure = TenureTrack
	}

	ageRange := rankAgeRange[rank]
	age := uniformInt(rng, ageRange[0], ageRange[1])
	posRange := rankPositionRange[rank]

	return &Faculty{
		ID:              id,
		DepartmentID:    departmentID,
		Rank:            rank,
		TenureStatus:    tenure,
		Age:             age,
		YearsInPosition: uniformInt(rng, posRange[0], posRange[1]),
		RetirementRisk:  retirementRisk(age),
		MobilityRisk:    rankMobilityRisk[rank],
		Status:          FacultyStaying,
	}
}

// NewFacultyRoster populates every department with Size faculty members,
// assigning sequential faculty IDs across the whole roster.
func NewFacultyRoster(rng *rand.Rand, departments []*Department) []*Faculty {
	var roster []*Faculty
	nextID := 1
	for _, d := range departments {
		for i := 0; i < d.Size; i++ {
			roster = append(roster, NewFaculty(rng, nextID, d.ID))
			nextID++
		}
	}
	return roster
}

// === Department ===

// Department is a hiring unit. Openings are not stored on the record: they
// are recomputed fresh each year by GenerateOpenings and carried in a
// per-year table.
type Department struct {
	ID                     int
	PrestigeRank           int     // 1..100
	Size                   int     // faculty roster size, >= 5
	ResearchOrientation    int     // 3..8
	BudgetConstraint       float64 // 1.0 baseline
	SearchStandards        float64 // 4..7 productivity threshold
	SearchFailureTolerance float64 // probability of walking away from a qualified pool
}

// NewDepartment constructs a single department. Size is a clamped normal
// around avgSize with a hard floor of 5.
func NewDepartment(rng *rand.Rand, id, avgSize int) *Department {
	maxSize := float64(2 * avgSize)
	if maxSize < 5 {
		maxSize = 5
	}
	size := int(clampedNormal(rng, float64(avgSize), 3.0, 5, maxSize) + 0.5)

	return &Department{
		ID:                     id,
		PrestigeRank:           uniformInt(rng, 1, 100),
		Size:                   size,
		ResearchOrientation:    uniformInt(rng, 3, 8),
		BudgetConstraint:       1.0,
		SearchStandards:        4.0 + rng.Float64()*3.0,
		SearchFailureTolerance: 0.1 + rng.Float64()*0.2,
	}
}

// NewDepartmentRoster constructs n departments with IDs 1..n. The ascending
// ID order doubles as the hiring market's priority order, so roster
// construction fixes which departments get first pick.
func NewDepartmentRoster(rng *rand.Rand, n, avgSize int) []*Department {
	roster := make([]*Department, 0, n)
	for i := 1; i <= n; i++ {
		roster = append(roster, NewDepartment(rng, i, avgSize))
	}
	return roster
}
