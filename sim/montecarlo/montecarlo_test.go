package montecarlo

import (
	"context"
	"reflect"
	"testing"

	"github.com/faculty-sim/faculty-sim/sim"
)

func batchConfig() sim.RunConfig {
	cfg := sim.DefaultRunConfig()
	cfg.SimulationYears = 3
	cfg.AnnualPhDCohort = 20
	cfg.NumDepartments = 8
	return cfg
}

func TestRun_DeterministicAcrossInvocations(t *testing.T) {
	spec := Spec{
		Config:          batchConfig(),
		Scenarios:       []*sim.Scenario{sim.ScenarioBaseline(), sim.ScenarioLongPostdocs()},
		RunsPerScenario: 4,
		BaseSeed:        7,
		Workers:         2,
	}

	r1, err := Run(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Run(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}

	if len(r1.Runs) != 8 {
		t.Fatalf("runs = %d, want 8", len(r1.Runs))
	}
	for i := range r1.Runs {
		if r1.Runs[i].Seed != r2.Runs[i].Seed {
			t.Fatalf("run %d seed differs between invocations", i)
		}
		if !reflect.DeepEqual(r1.Runs[i].Result, r2.Runs[i].Result) {
			t.Fatalf("run %d result differs between invocations (scheduling leaked into output)", i)
		}
	}

	if !reflect.DeepEqual(Summarize(r1), Summarize(r2)) {
		t.Error("summaries differ between identical batches")
	}
}

func TestRun_SeedsAreDistinctPerRun(t *testing.T) {
	spec := Spec{
		Config:          batchConfig(),
		Scenarios:       []*sim.Scenario{nil},
		RunsPerScenario: 6,
		BaseSeed:        1,
	}
	result, err := Run(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[int64]bool)
	for _, run := range result.Runs {
		if seen[run.Seed] {
			t.Fatalf("seed %d reused across runs", run.Seed)
		}
		seen[run.Seed] = true
	}
}

func TestRun_FailedRunDoesNotAbortSiblings(t *testing.T) {
	bad := &sim.Scenario{Name: "broken", RetirementDelayFactor: -1}
	spec := Spec{
		Config:          batchConfig(),
		Scenarios:       []*sim.Scenario{bad, sim.ScenarioBaseline()},
		RunsPerScenario: 3,
		BaseSeed:        5,
	}

	result, err := Run(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Runs) != 6 {
		t.Fatalf("runs = %d, want 6", len(result.Runs))
	}

	for _, run := range result.Runs {
		switch run.Scenario {
		case "broken":
			if run.Err == nil {
				t.Errorf("broken scenario run (seed %d) did not fail", run.Seed)
			}
		case "baseline":
			if run.Err != nil {
				t.Errorf("baseline run (seed %d) failed alongside broken sibling: %v", run.Seed, run.Err)
			}
			if run.Result == nil {
				t.Errorf("baseline run (seed %d) missing result", run.Seed)
			}
		default:
			t.Errorf("unexpected scenario label %q", run.Scenario)
		}
	}
}

func TestRun_CancelledContextSkipsPendingRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	spec := Spec{
		Config:          batchConfig(),
		Scenarios:       []*sim.Scenario{nil},
		RunsPerScenario: 4,
		BaseSeed:        3,
		Workers:         1,
	}

	result, err := Run(ctx, spec)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Runs) != 4 {
		t.Fatalf("runs = %d, want 4 slots even when cancelled", len(result.Runs))
	}
	for _, run := range result.Runs {
		if run.Err == nil {
			t.Errorf("run with seed %d executed despite cancelled context", run.Seed)
		}
	}
}

func TestSpec_Validate(t *testing.T) {
	valid := Spec{Config: batchConfig(), Scenarios: []*sim.Scenario{nil}, RunsPerScenario: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noScenarios := valid
	noScenarios.Scenarios = nil
	if err := noScenarios.Validate(); err == nil {
		t.Error("expected error for empty scenario list")
	}

	zeroRuns := valid
	zeroRuns.RunsPerScenario = 0
	if err := zeroRuns.Validate(); err == nil {
		t.Error("expected error for zero runs per scenario")
	}

	badConfig := valid
	badConfig.Config.SimulationYears = -1
	if err := badConfig.Validate(); err == nil {
		t.Error("expected error for invalid run config")
	}

	negWorkers := valid
	negWorkers.Workers = -2
	if err := negWorkers.Validate(); err == nil {
		t.Error("expected error for negative workers")
	}
}
