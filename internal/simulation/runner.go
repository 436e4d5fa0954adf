package simulation

import (
	"math/rand/v2"
	"testing"

	"github.com/tryfinity/resonance"
	"github.com/tryfinity/resonance/internal/constants"
	"github.com/tryfinity/resonance/internal/vecmath"
)

// Runner executes stabilization scenarios against a real resonance.Node.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()

	dims := scenario.Dimensions
	if dims == 0 {
		dims = constants.DefaultDimensions
	}
	steps := scenario.Steps
	if steps == 0 {
		steps = constants.DefaultSteps
	}
	factor := constants.DefaultFactor
	if scenario.Factor != nil {
		factor = *scenario.Factor
	}

	rng := rand.New(rand.NewPCG(scenario.Seed, 0))

	// Phase 1: Construct the node.
	var node *resonance.Node
	var err error
	if scenario.Start != nil {
		node, err = resonance.NewFromComponents(scenario.Start)
		if err != nil {
			r.t.Fatalf("Run(%s): NewFromComponents: %v", scenario.Name, err)
		}
		dims = node.Dimensions()
	} else {
		node, err = resonance.New(dims, rng)
		if err != nil {
			r.t.Fatalf("Run(%s): New: %v", scenario.Name, err)
		}
	}

	// Phase 2: Resolve the fixed source, when no per-step function is given.
	fixedSource := scenario.Source
	if fixedSource == nil && scenario.SourceFn == nil {
		fixedSource = randomVector(rng, dims)
	}

	// Phase 3: Run steps.
	result := SimulationResult{
		Scenario: scenario,
		Start:    node.Components(),
		Steps:    make([]StepSnapshot, 0, steps),
	}

	for step := 0; step < steps; step++ {
		source := fixedSource
		if scenario.SourceFn != nil {
			source = scenario.SourceFn(step)
		}

		before := node.Components()
		coherence, err := node.Coherence(source)
		if err != nil {
			r.t.Fatalf("Run(%s): step %d: Coherence: %v", scenario.Name, step, err)
		}
		stability := 1.0 - vecmath.Clamp(coherence, constants.CoherenceClipMin, constants.CoherenceClipMax)/2.0

		if err := node.Stabilize(source, factor); err != nil {
			r.t.Fatalf("Run(%s): step %d: Stabilize: %v", scenario.Name, step, err)
		}

		after := node.Components()
		result.Steps = append(result.Steps, StepSnapshot{
			Step:         step,
			Components:   after,
			Source:       source,
			Coherence:    coherence,
			Stability:    stability,
			Displacement: vecmath.Displacement(before, after),
		})
	}

	result.Final = node.Components()
	return result
}

// randomVector draws a vector with each component uniform in [-1, 1).
func randomVector(rng *rand.Rand, dims int) []float64 {
	v := make([]float64, dims)
	for i := range v {
		v[i] = rng.Float64()*2.0 - 1.0
	}
	return v
}
