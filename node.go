// Package resonance implements the bounded-state stabilization primitive for
// resonance nodes. A node holds a fixed-length vector with every component in
// [-1, 1] and is iteratively pulled toward a caller-supplied source vector,
// with the pull damped by how aligned the node already is with that source.
package resonance

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/tryfinity/resonance/internal/constants"
	"github.com/tryfinity/resonance/internal/vecmath"
)

// ErrInvalidConfiguration is returned when a node cannot be constructed from
// the given parameters.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrDimensionMismatch is returned when a source vector's length differs from
// the node's dimensionality. The node is left unmodified.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Node is a point in resonance space: a fixed-length vector whose components
// always lie in [-1, 1]. A node owns its components exclusively; nothing is
// shared between nodes, so independent nodes may be updated in parallel
// without synchronization.
type Node struct {
	components []float64
}

// New creates a node of the given dimensionality with each component drawn
// independently and uniformly from [-1, 1). The random source is injected so
// construction is reproducible under a fixed seed; a nil rng falls back to
// the package-level generator.
func New(dims int, rng *rand.Rand) (*Node, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("%w: dimensionality must be positive, got %d", ErrInvalidConfiguration, dims)
	}

	uniform := rand.Float64
	if rng != nil {
		uniform = rng.Float64
	}

	components := make([]float64, dims)
	for i := range components {
		components[i] = uniform()*2.0 - 1.0
	}
	return &Node{components: components}, nil
}

// NewFromComponents creates a node from an explicit starting vector.
// The slice is copied, so the caller retains ownership of its argument.
// Components outside [-1, 1] are rejected rather than clamped: the bounds
// invariant must hold by construction, not by silent correction.
func NewFromComponents(components []float64) (*Node, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: at least one component required", ErrInvalidConfiguration)
	}
	for i, c := range components {
		if math.IsNaN(c) || c < constants.ComponentMin || c > constants.ComponentMax {
			return nil, fmt.Errorf("%w: component %d = %v outside [%v, %v]",
				ErrInvalidConfiguration, i, c, constants.ComponentMin, constants.ComponentMax)
		}
	}

	copied := make([]float64, len(components))
	copy(copied, components)
	return &Node{components: copied}, nil
}

// Stabilize pulls the node one step toward the source vector.
//
// The raw coherence (dot product of node and source) is clipped to [0, 1] and
// mapped to a stability factor in [0.5, 1.0]: a poorly aligned node takes the
// full nominal step, a well aligned node takes half. Each component then moves
// by (source - component) * stability * factor and is re-clamped to [-1, 1].
//
// Because the stability factor never drops below 0.5, repeated stabilization
// approaches the source asymptotically and never reaches it exactly. Factor
// values outside [0, 1] amplify beyond the documented intent; they are the
// caller's responsibility and are not validated.
//
// Returns ErrDimensionMismatch, leaving the node unmodified, when the source
// length differs from the node's dimensionality.
func (n *Node) Stabilize(source []float64, factor float64) error {
	if len(source) != len(n.components) {
		return fmt.Errorf("%w: source has %d components, node has %d",
			ErrDimensionMismatch, len(source), len(n.components))
	}

	coherence := vecmath.Dot(n.components, source)
	clipped := vecmath.Clamp(coherence, constants.CoherenceClipMin, constants.CoherenceClipMax)
	stability := 1.0 - clipped/2.0

	for i, c := range n.components {
		step := (source[i] - c) * stability * factor
		n.components[i] = vecmath.Clamp(c+step, constants.ComponentMin, constants.ComponentMax)
	}
	return nil
}

// Coherence returns the raw dot product between the node and the source.
// The value is an unbounded similarity signal: it is not normalized to
// [-1, 1], since its magnitude scales with dimensionality. The node is not
// mutated.
func (n *Node) Coherence(source []float64) (float64, error) {
	if len(source) != len(n.components) {
		return 0, fmt.Errorf("%w: source has %d components, node has %d",
			ErrDimensionMismatch, len(source), len(n.components))
	}
	return vecmath.Dot(n.components, source), nil
}

// Components returns a copy of the node's vector.
func (n *Node) Components() []float64 {
	copied := make([]float64, len(n.components))
	copy(copied, n.components)
	return copied
}

// Dimensions returns the node's dimensionality.
func (n *Node) Dimensions() int {
	return len(n.components)
}

// Mean returns the arithmetic mean of the node's components, a cheap summary
// used for logging and display.
func (n *Node) Mean() float64 {
	return vecmath.Mean(n.components)
}
