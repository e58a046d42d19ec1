package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario field defaults. An empty Scenario behaves like the baseline
// recession: retirements delayed, standards inflated, postdocs stretched.
const (
	defaultRetirementDelayFactor     = 0.5
	defaultSearchStandardsInflation  = 1.2
	defaultPostdocDurationMultiplier = 1.3
	defaultSearchFailureTolerance    = 0.2
)

// Scenario is an immutable named bundle of counterfactual multipliers applied
// inside the recession window. All fields are optional in YAML; zero/nil
// fields take the documented defaults. Pointer fields distinguish "absent"
// from legitimate zero/false values.
//
// Loaded from YAML via LoadScenario(path) or constructed from a preset.
type Scenario struct {
	Name                      string   `yaml:"name"`
	RetirementDelayFactor     float64  `yaml:"retirement_delay_factor,omitempty"`
	SearchStandardsInflation  float64  `yaml:"search_standards_inflation,omitempty"`
	PostdocDurationMultiplier float64  `yaml:"postdoc_duration_multiplier,omitempty"`
	SearchFailureTolerance    *float64 `yaml:"search_failure_tolerance,omitempty"`
	ApplyRecessionEffects     *bool    `yaml:"apply_recession_effects,omitempty"`
	TestFactor                string   `yaml:"test_factor,omitempty"` // informational label
}

// Validate checks scenario fields. Multipliers must be positive when set
// (zero means "use the default"); the failure tolerance must be a
// probability.
func (s *Scenario) Validate() error {
	if s.RetirementDelayFactor < 0 {
		return fmt.Errorf("scenario %q: retirement_delay_factor must be positive when set, got %v", s.Name, s.RetirementDelayFactor)
	}
	if s.SearchStandardsInflation < 0 {
		return fmt.Errorf("scenario %q: search_standards_inflation must be positive when set, got %v", s.Name, s.SearchStandardsInflation)
	}
	if s.PostdocDurationMultiplier < 0 {
		return fmt.Errorf("scenario %q: postdoc_duration_multiplier must be positive when set, got %v", s.Name, s.PostdocDurationMultiplier)
	}
	if s.SearchFailureTolerance != nil {
		if t := *s.SearchFailureTolerance; t < 0 || t > 1 {
			return fmt.Errorf("scenario %q: search_failure_tolerance must be in [0,1], got %v", s.Name, t)
		}
	}
	return nil
}

// recessionEffectsEnabled reports whether recession-window adjustments apply.
// A nil Scenario and an unset field both mean "enabled".
func (s *Scenario) recessionEffectsEnabled() bool {
	if s == nil || s.ApplyRecessionEffects == nil {
		return true
	}
	return *s.ApplyRecessionEffects
}

func (s *Scenario) retirementDelayFactor() float64 {
	if s == nil || s.RetirementDelayFactor == 0 {
		return defaultRetirementDelayFactor
	}
	return s.RetirementDelayFactor
}

func (s *Scenario) standardsInflation() float64 {
	if s == nil || s.SearchStandardsInflation == 0 {
		return defaultSearchStandardsInflation
	}
	return s.SearchStandardsInflation
}

func (s *Scenario) postdocMultiplier() float64 {
	if s == nil || s.PostdocDurationMultiplier == 0 {
		return defaultPostdocDurationMultiplier
	}
	return s.PostdocDurationMultiplier
}

func (s *Scenario) failureTolerance() float64 {
	if s == nil || s.SearchFailureTolerance == nil {
		return defaultSearchFailureTolerance
	}
	return *s.SearchFailureTolerance
}

// LoadScenario reads a Scenario from a YAML file. Unknown keys are rejected
// so a typoed multiplier name cannot silently fall back to its default.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Built-in scenario presets for common counterfactual experiments.
// Each returns a valid Scenario ready for use with RunOneSimulation.

// ScenarioBaseline is the default post-2008 dynamics: delayed retirements,
// inflated search standards, longer postdocs.
func ScenarioBaseline() *Scenario {
	return &Scenario{Name: "baseline"}
}

// ScenarioDelayedRetirement strengthens the retirement delay (factor 0.3),
// testing whether seniors holding positions explains the placement drop.
func ScenarioDelayedRetirement() *Scenario {
	return &Scenario{
		Name:                  "delayed-retirement",
		RetirementDelayFactor: 0.3,
		TestFactor:            "retirement_delay",
	}
}

// ScenarioInflatedStandards raises department search standards by 1.5x
// during the recession window.
func ScenarioInflatedStandards() *Scenario {
	return &Scenario{
		Name:                     "inflated-standards",
		SearchStandardsInflation: 1.5,
		TestFactor:               "search_standards",
	}
}

// ScenarioLongPostdocs doubles the postdoc-entry pressure during the
// recession window.
func ScenarioLongPostdocs() *Scenario {
	return &Scenario{
		Name:                      "long-postdocs",
		PostdocDurationMultiplier: 2.0,
		TestFactor:                "postdoc_duration",
	}
}

// ScenarioRiskAverseSearch overrides the search failure tolerance to 0.5:
// departments walk away from half of qualified pools.
func ScenarioRiskAverseSearch() *Scenario {
	tol := 0.5
	return &Scenario{
		Name:                   "risk-averse-search",
		SearchFailureTolerance: &tol,
		TestFactor:             "search_failure_tolerance",
	}
}

// ScenarioNoRecessionEffects disables every recession-window adjustment.
// Used as the control arm: the recession years behave like ordinary years.
func ScenarioNoRecessionEffects() *Scenario {
	off := false
	return &Scenario{
		Name:                  "no-recession-effects",
		ApplyRecessionEffects: &off,
		TestFactor:            "control",
	}
}

// PresetScenario looks up a built-in scenario by name.
func PresetScenario(name string) (*Scenario, bool) {
	switch name {
	case "baseline":
		return ScenarioBaseline(), true
	case "delayed-retirement":
		return ScenarioDelayedRetirement(), true
	case "inflated-standards":
		return ScenarioInflatedStandards(), true
	case "long-postdocs":
		return ScenarioLongPostdocs(), true
	case "risk-averse-search":
		return ScenarioRiskAverseSearch(), true
	case "no-recession-effects":
		return ScenarioNoRecessionEffects(), true
	}
	return nil, false
}

// PresetScenarioNames lists the built-in scenario names in stable order.
func PresetScenarioNames() []string {
	return []string{
		"baseline",
		"delayed-retirement",
		"inflated-standards",
		"long-postdocs",
		"risk-averse-search",
		"no-recession-effects",
	}
}
