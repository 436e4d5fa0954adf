package simulation

import (
	"testing"

	"github.com/tryfinity/resonance/internal/constants"
	"github.com/tryfinity/resonance/internal/vecmath"
)

// AssertInBounds asserts that every component of every snapshot lies in
// [-1, 1].
func AssertInBounds(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, snap := range result.Steps {
		for i, c := range snap.Components {
			if c < constants.ComponentMin || c > constants.ComponentMax {
				t.Errorf("AssertInBounds: step %d: component %d = %v outside [-1, 1]", snap.Step, i, c)
			}
		}
	}
}

// AssertApproaches asserts that the final vector ends within maxDistance of
// the scenario's fixed source. Only valid for fixed-source scenarios.
func AssertApproaches(t *testing.T, result SimulationResult, maxDistance float64) {
	t.Helper()
	if len(result.Steps) == 0 {
		t.Error("AssertApproaches: no steps recorded")
		return
	}
	source := result.Steps[len(result.Steps)-1].Source
	d := vecmath.Displacement(result.Final, source)
	if d > maxDistance {
		t.Errorf("AssertApproaches: final distance to source %.6f > %.6f", d, maxDistance)
	}
}

// AssertMonotoneApproach asserts that the distance to the fixed source never
// increases across steps. Holds for any factor in [0, 1], since each step
// scales the remaining per-component gap by at most 1.
func AssertMonotoneApproach(t *testing.T, result SimulationResult) {
	t.Helper()
	if len(result.Steps) == 0 {
		t.Error("AssertMonotoneApproach: no steps recorded")
		return
	}
	source := result.Steps[len(result.Steps)-1].Source
	prev := vecmath.Displacement(result.Start, source)
	for _, snap := range result.Steps {
		d := vecmath.Displacement(snap.Components, source)
		if d > prev+1e-12 {
			t.Errorf("AssertMonotoneApproach: step %d: distance grew %.9f -> %.9f", snap.Step, prev, d)
		}
		prev = d
	}
}

// AssertNeverExactlyReaches asserts that the node ends strictly short of the
// fixed source. The stability factor never drops below 0.5, so convergence
// is asymptotic: movement continues but the source is never reached exactly.
func AssertNeverExactlyReaches(t *testing.T, result SimulationResult) {
	t.Helper()
	if len(result.Steps) == 0 {
		t.Error("AssertNeverExactlyReaches: no steps recorded")
		return
	}
	source := result.Steps[len(result.Steps)-1].Source
	if d := vecmath.Displacement(result.Final, source); d == 0 {
		t.Error("AssertNeverExactlyReaches: node reached the source exactly")
	}
}

// AssertStabilityRange asserts that every step's stability factor lies in
// [0.5, 1.0].
func AssertStabilityRange(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, snap := range result.Steps {
		if snap.Stability < constants.StabilityFloor || snap.Stability > 1.0 {
			t.Errorf("AssertStabilityRange: step %d: stability %.6f outside [%.1f, 1.0]",
				snap.Step, snap.Stability, constants.StabilityFloor)
		}
	}
}
