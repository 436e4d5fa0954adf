// Package constants provides named constants used throughout the resonance codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Node geometry constants
const (
	// DefaultDimensions is the dimensionality of a node vector when the
	// caller does not specify one. The resonance space is 11-dimensional.
	DefaultDimensions = 11

	// ComponentMin is the lower bound of every node component.
	ComponentMin = -1.0

	// ComponentMax is the upper bound of every node component.
	ComponentMax = 1.0
)

// Stabilization constants
const (
	// DefaultFactor is the nominal step size for a stabilization update.
	DefaultFactor = 0.1

	// CoherenceClipMin is the floor applied to raw coherence before the
	// stability factor is derived. Negative alignment contributes nothing.
	CoherenceClipMin = 0.0

	// CoherenceClipMax is the ceiling applied to raw coherence. Dot products
	// above 1 are treated identically to a coherence of exactly 1.
	CoherenceClipMax = 1.0

	// StabilityFloor is the minimum stability factor. A fully aligned node
	// still moves at half the nominal step size, so convergence is
	// asymptotic rather than exact.
	StabilityFloor = 0.5
)

// Simulation defaults
const (
	// DefaultSteps is the number of stabilization ticks a simulation runs.
	DefaultSteps = 50

	// DefaultNodeCount is the number of independent nodes a simulation drives.
	DefaultNodeCount = 1
)
