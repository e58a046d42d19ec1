// Package sim provides the core discrete-time simulation engine for the
// academic labor market model.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - agents.go: Candidate, Faculty, and Department records and their factories
//   - market.go: the per-year hiring market resolver
//   - simulator.go: the year loop that drives pool updates, openings, and hiring
//
// # Architecture
//
// The sim package owns a single simulation run from initialization to
// completion. A run is strictly sequential: each year's step depends on the
// mutated state of the previous year. Batch execution across seeds and
// scenarios lives in sim/montecarlo, which treats runs as independent tasks.
//
// All randomness flows through a PartitionedRNG seeded per run (rng.go), so
// two runs with the same RunConfig and Scenario produce identical YearlyStats
// and OutcomeRecord tables regardless of scheduling.
//
// The engine's boundary contract is RunOneSimulation, which returns a Result
// holding two append-only tables: per-year statistics and per-candidate
// terminal outcomes. Downstream aggregation, plotting, and export consume
// those tables verbatim and are out of scope here.
package sim
