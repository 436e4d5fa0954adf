package simulation

// Scenario defines a complete stabilization experiment.
type Scenario struct {
	Name string

	// Dimensions is the node dimensionality. 0 means the package default (11).
	// Ignored when Start is set.
	Dimensions int

	// Seed seeds the RNG used for random construction and random sources.
	Seed uint64

	// Start, when non-nil, is the node's exact starting vector, bypassing
	// random construction. Use this for scenarios that need deterministic
	// starting alignment.
	Start []float64

	// Source is the fixed target vector used for every step. When nil and
	// SourceFn is nil, a random in-range source is drawn once from the
	// seeded RNG and held fixed.
	Source []float64

	// SourceFn, when non-nil, is called with the step index to produce that
	// step's source, overriding Source. Use this for drifting-target
	// scenarios.
	SourceFn func(step int) []float64

	// Factor, when non-nil, overrides the default step size (0.1).
	// A pointer so that an explicit zero factor is distinguishable from unset.
	Factor *float64

	// Steps is the number of stabilization ticks. 0 means the package
	// default (50).
	Steps int
}

// StepSnapshot captures the node's state after one stabilization step.
type StepSnapshot struct {
	Step int

	// Components is the node vector after the step.
	Components []float64

	// Source is the target vector the step was driven toward.
	Source []float64

	// Coherence is the raw dot product between node and source before the
	// step was applied.
	Coherence float64

	// Stability is the damping multiplier derived from clipped coherence,
	// in [0.5, 1.0].
	Stability float64

	// Displacement is the L2 distance the node moved during the step.
	Displacement float64
}

// SimulationResult holds the collected outcome of a scenario run.
type SimulationResult struct {
	Scenario Scenario

	// Start is the node vector before any step ran.
	Start []float64

	// Steps are the per-step snapshots, one per tick.
	Steps []StepSnapshot

	// Final is the node vector after the last step.
	Final []float64
}
