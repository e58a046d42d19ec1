package sim

import "fmt"

// Default global constants. Every one of them is overridable per run through
// RunConfig; the engine never reads ambient process state.
const (
	DefaultSimulationYears = 20
	DefaultStartYear       = 2000
	DefaultRecessionStart  = 2008
	DefaultRecessionEnd    = 2012
	DefaultAnnualPhDCohort = 300
	DefaultNumDepartments  = 150
	DefaultAvgDeptSize     = 15
)

// RunConfig groups the parameters of a single simulation run.
// A RunConfig is immutable once handed to NewSimulator.
type RunConfig struct {
	Seed            int64 // master seed for the run's PartitionedRNG
	SimulationYears int   // number of simulated years (must be > 0)
	StartYear       int   // calendar year of the first iteration
	RecessionStart  int   // first year of the recession window (inclusive)
	RecessionEnd    int   // last year of the recession window (inclusive)
	AnnualPhDCohort int   // new graduates per year (0 = no new entrants)
	NumDepartments  int   // hiring departments (0 = no demand side)
	AvgDeptSize     int   // mean faculty roster size per department
}

// DefaultRunConfig returns a RunConfig populated with the package defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Seed:            42,
		SimulationYears: DefaultSimulationYears,
		StartYear:       DefaultStartYear,
		RecessionStart:  DefaultRecessionStart,
		RecessionEnd:    DefaultRecessionEnd,
		AnnualPhDCohort: DefaultAnnualPhDCohort,
		NumDepartments:  DefaultNumDepartments,
		AvgDeptSize:     DefaultAvgDeptSize,
	}
}

// Validate checks the configuration before any simulation year executes.
// Zero-valued AnnualPhDCohort and NumDepartments are legal and produce
// well-formed (possibly empty) outputs; negative populations, non-positive
// horizons, and an inverted recession window are configuration errors.
func (c RunConfig) Validate() error {
	if c.SimulationYears <= 0 {
		return fmt.Errorf("SimulationYears must be > 0, got %d", c.SimulationYears)
	}
	if c.StartYear <= 0 {
		return fmt.Errorf("StartYear must be > 0, got %d", c.StartYear)
	}
	if c.RecessionStart > c.RecessionEnd {
		return fmt.Errorf("inverted recession window: start %d > end %d", c.RecessionStart, c.RecessionEnd)
	}
	if c.AnnualPhDCohort < 0 {
		return fmt.Errorf("AnnualPhDCohort must be >= 0, got %d", c.AnnualPhDCohort)
	}
	if c.NumDepartments < 0 {
		return fmt.Errorf("NumDepartments must be >= 0, got %d", c.NumDepartments)
	}
	if c.AvgDeptSize <= 0 {
		return fmt.Errorf("AvgDeptSize must be > 0, got %d", c.AvgDeptSize)
	}
	return nil
}

// InRecessionWindow reports whether year falls inside the inclusive
// recession window. Scenario gating is applied by the caller, not here.
func (c RunConfig) InRecessionWindow(year int) bool {
	return year >= c.RecessionStart && year <= c.RecessionEnd
}
