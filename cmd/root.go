package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/faculty-sim/faculty-sim/sim"
	"github.com/faculty-sim/faculty-sim/sim/montecarlo"
)

var (
	// CLI flags for the simulation run configuration
	seed           int64  // Seed for all randomized draws in a run
	years          int    // Number of simulated years
	startYear      int    // Calendar year of the first iteration
	recessionStart int    // First recession year (inclusive)
	recessionEnd   int    // Last recession year (inclusive)
	cohortSize     int    // New PhD graduates per year
	numDepartments int    // Hiring departments
	avgDeptSize    int    // Mean faculty roster size per department
	scenarioFlag   string // Preset name or YAML file path
	logLevel       string // Log verbosity level

	// CLI flags for batch mode
	runsPerScenario int      // Monte Carlo repetitions per scenario
	workers         int      // Max concurrent runs (0 = GOMAXPROCS)
	scenarioNames   []string // Scenario arms for the batch
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "facsim",
	Short: "Agent-based simulator of the academic labor market",
}

// setupLogging parses the --log flag and configures logrus.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveScenario maps a --scenario value to a Scenario: empty means no
// scenario, a preset name wins over a file path, anything else is loaded
// as YAML.
func resolveScenario(value string) *sim.Scenario {
	if value == "" {
		return nil
	}
	if s, ok := sim.PresetScenario(value); ok {
		return s
	}
	s, err := sim.LoadScenario(value)
	if err != nil {
		logrus.Fatalf("Could not resolve scenario %q: %v", value, err)
	}
	return s
}

func runConfigFromFlags() sim.RunConfig {
	cfg := sim.DefaultRunConfig()
	cfg.Seed = seed
	cfg.SimulationYears = years
	cfg.StartYear = startYear
	cfg.RecessionStart = recessionStart
	cfg.RecessionEnd = recessionEnd
	cfg.AnnualPhDCohort = cohortSize
	cfg.NumDepartments = numDepartments
	cfg.AvgDeptSize = avgDeptSize
	return cfg
}

// runCmd executes a single simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation and print its metrics",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg := runConfigFromFlags()
		scenario := resolveScenario(scenarioFlag)

		startTime := time.Now()
		s, err := sim.NewSimulator(cfg, scenario)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if _, err := s.Run(); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		s.Metrics.Print(os.Stdout)

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// batchCmd executes a Monte Carlo batch across scenarios and seeds
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a Monte Carlo batch across scenarios and seeds",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		spec := montecarlo.Spec{
			Config:          runConfigFromFlags(),
			RunsPerScenario: runsPerScenario,
			BaseSeed:        seed,
			Workers:         workers,
		}
		for _, name := range scenarioNames {
			spec.Scenarios = append(spec.Scenarios, resolveScenario(name))
		}
		if len(spec.Scenarios) == 0 {
			spec.Scenarios = []*sim.Scenario{nil}
		}

		// Interrupt cancels not-yet-started runs; in-flight runs complete.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now()
		result, err := montecarlo.Run(ctx, spec)
		if err != nil {
			logrus.Fatalf("Batch failed: %v", err)
		}
		montecarlo.PrintSummaries(os.Stdout, montecarlo.Summarize(result))

		logrus.Infof("Batch complete in %v.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, batchCmd} {
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for all randomized draws")
		c.Flags().IntVar(&years, "years", sim.DefaultSimulationYears, "Number of simulated years")
		c.Flags().IntVar(&startYear, "start-year", sim.DefaultStartYear, "Calendar year of the first iteration")
		c.Flags().IntVar(&recessionStart, "recession-start", sim.DefaultRecessionStart, "First recession year (inclusive)")
		c.Flags().IntVar(&recessionEnd, "recession-end", sim.DefaultRecessionEnd, "Last recession year (inclusive)")
		c.Flags().IntVar(&cohortSize, "cohort", sim.DefaultAnnualPhDCohort, "New PhD graduates per year")
		c.Flags().IntVar(&numDepartments, "departments", sim.DefaultNumDepartments, "Number of hiring departments")
		c.Flags().IntVar(&avgDeptSize, "avg-dept-size", sim.DefaultAvgDeptSize, "Mean faculty roster size per department")
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}

	runCmd.Flags().StringVar(&scenarioFlag, "scenario", "", "Scenario preset name or YAML file path")

	batchCmd.Flags().IntVar(&runsPerScenario, "runs", 30, "Monte Carlo repetitions per scenario")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "Max concurrent runs (0 = number of CPUs)")
	batchCmd.Flags().StringSliceVar(&scenarioNames, "scenarios", nil, "Scenario preset names or YAML file paths")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
}
