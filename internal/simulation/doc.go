// Package simulation provides a multi-step test harness for validating
// the dynamics of node stabilization.
//
// The simulation exercises the real resonance.Node — no mocks. Scenarios are
// Go builders that construct seeded nodes and drive configurable numbers of
// stabilization steps against a fixed or per-step source vector, capturing
// per-step snapshots for property-based assertions.
//
// Usage:
//
//	func TestApproach(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:   "approach",
//	        Start:  []float64{0, 0, 0},
//	        Source: []float64{1, 1, 1},
//	        Steps:  100,
//	    })
//	    simulation.AssertInBounds(t, result)
//	    simulation.AssertApproaches(t, result, 0.1)
//	}
package simulation
