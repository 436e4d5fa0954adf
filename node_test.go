package resonance

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tryfinity/resonance/internal/constants"
	"github.com/tryfinity/resonance/internal/vecmath"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		dims    int
		wantErr bool
	}{
		{"default dimensionality", constants.DefaultDimensions, false},
		{"single dimension", 1, false},
		{"large dimensionality", 256, false},
		{"zero dimensions", 0, true},
		{"negative dimensions", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(1, 2))
			node, err := New(tt.dims, rng)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Fatalf("New(%d) error = %v, want ErrInvalidConfiguration", tt.dims, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d) error = %v", tt.dims, err)
			}
			if node.Dimensions() != tt.dims {
				t.Errorf("Dimensions() = %d, want %d", node.Dimensions(), tt.dims)
			}
			for i, c := range node.Components() {
				if c < constants.ComponentMin || c > constants.ComponentMax {
					t.Errorf("component %d = %v outside [-1, 1]", i, c)
				}
			}
		})
	}
}

func TestNew_Reproducible(t *testing.T) {
	a, err := New(11, rand.New(rand.NewPCG(42, 0)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b, err := New(11, rand.New(rand.NewPCG(42, 0)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ac, bc := a.Components(), b.Components()
	for i := range ac {
		if ac[i] != bc[i] {
			t.Fatalf("component %d differs across identically seeded constructions: %v vs %v", i, ac[i], bc[i])
		}
	}
}

func TestNew_NilRNG(t *testing.T) {
	node, err := New(5, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i, c := range node.Components() {
		if c < constants.ComponentMin || c > constants.ComponentMax {
			t.Errorf("component %d = %v outside [-1, 1]", i, c)
		}
	}
}

func TestNewFromComponents(t *testing.T) {
	tests := []struct {
		name       string
		components []float64
		wantErr    bool
	}{
		{"valid vector", []float64{0.5, -0.5, 0.0}, false},
		{"boundary values", []float64{-1.0, 1.0}, false},
		{"empty vector", []float64{}, true},
		{"nil vector", nil, true},
		{"component above range", []float64{0.0, 1.1}, true},
		{"component below range", []float64{-1.5, 0.0}, true},
		{"NaN component", []float64{math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewFromComponents(tt.components)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Fatalf("NewFromComponents() error = %v, want ErrInvalidConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFromComponents() error = %v", err)
			}
			got := node.Components()
			for i := range tt.components {
				if got[i] != tt.components[i] {
					t.Errorf("component %d = %v, want %v", i, got[i], tt.components[i])
				}
			}
		})
	}
}

func TestNewFromComponents_CopiesInput(t *testing.T) {
	input := []float64{0.1, 0.2, 0.3}
	node, err := NewFromComponents(input)
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}

	input[0] = -0.9
	if got := node.Components()[0]; got != 0.1 {
		t.Errorf("node shares storage with caller: component 0 = %v, want 0.1", got)
	}
}

func TestStabilize_ConcreteStep(t *testing.T) {
	// Zero coherence: stability factor 1.0, full nominal step.
	node, err := NewFromComponents([]float64{0.0, 0.0, 0.0})
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}

	if err := node.Stabilize([]float64{1.0, 1.0, 1.0}, 0.1); err != nil {
		t.Fatalf("Stabilize() error = %v", err)
	}

	for i, c := range node.Components() {
		if c != 0.1 {
			t.Errorf("component %d = %v, want exactly 0.1", i, c)
		}
	}
}

func TestStabilize_PartialAlignment(t *testing.T) {
	// Coherence 0.95 gives stability factor 0.525; no clamping triggers.
	node, err := NewFromComponents([]float64{0.95, 0.0})
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}

	if err := node.Stabilize([]float64{1.0, 1.0}, 1.0); err != nil {
		t.Fatalf("Stabilize() error = %v", err)
	}

	got := node.Components()
	want := []float64{0.97625, 0.525}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStabilize_ZeroFactor(t *testing.T) {
	start := []float64{0.3, -0.7, 0.1}
	node, err := NewFromComponents(start)
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}

	if err := node.Stabilize([]float64{1.0, 1.0, 1.0}, 0.0); err != nil {
		t.Fatalf("Stabilize() error = %v", err)
	}

	for i, c := range node.Components() {
		if c != start[i] {
			t.Errorf("component %d = %v, want unchanged %v", i, c, start[i])
		}
	}
}

func TestStabilize_ClampSaturation(t *testing.T) {
	tests := []struct {
		name   string
		start  []float64
		source []float64
		factor float64
		want   []float64
	}{
		{
			// coherence 0.95 -> stability 0.525; both raw results overshoot 1.0
			name:   "overshoot saturates at upper bound",
			start:  []float64{0.95, 0.0},
			source: []float64{1.0, 1.0},
			factor: 5.0,
			want:   []float64{1.0, 1.0},
		},
		{
			// coherence -0.95 clips to 0 -> stability 1.0; raw result is far below -1
			name:   "overshoot saturates at lower bound",
			start:  []float64{0.0, 0.95},
			source: []float64{-1.0, -1.0},
			factor: 5.0,
			want:   []float64{-1.0, -1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewFromComponents(tt.start)
			if err != nil {
				t.Fatalf("NewFromComponents() error = %v", err)
			}
			if err := node.Stabilize(tt.source, tt.factor); err != nil {
				t.Fatalf("Stabilize() error = %v", err)
			}
			got := node.Components()
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("component %d = %v, want saturated %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStabilize_DimensionMismatch(t *testing.T) {
	start := []float64{0.2, -0.4}
	node, err := NewFromComponents(start)
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}

	err = node.Stabilize([]float64{1.0, 1.0, 1.0}, 0.1)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Stabilize() error = %v, want ErrDimensionMismatch", err)
	}

	// The failed call must leave the node untouched.
	for i, c := range node.Components() {
		if c != start[i] {
			t.Errorf("component %d = %v, want unchanged %v", i, c, start[i])
		}
	}
}

func TestStabilize_BoundsInvariant(t *testing.T) {
	// Random drive with factors well outside [0, 1]: no sequence of updates
	// may push any component out of [-1, 1].
	rng := rand.New(rand.NewPCG(7, 13))
	factors := []float64{0.0, 0.1, 0.5, 1.0, 2.5, 10.0, -0.3}

	for trial := 0; trial < 20; trial++ {
		node, err := New(constants.DefaultDimensions, rng)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		for step := 0; step < 100; step++ {
			source := make([]float64, constants.DefaultDimensions)
			for i := range source {
				source[i] = rng.Float64()*2.0 - 1.0
			}
			factor := factors[step%len(factors)]
			if err := node.Stabilize(source, factor); err != nil {
				t.Fatalf("trial %d step %d: Stabilize() error = %v", trial, step, err)
			}
			for i, c := range node.Components() {
				if c < constants.ComponentMin || c > constants.ComponentMax {
					t.Fatalf("trial %d step %d: component %d = %v outside [-1, 1]", trial, step, i, c)
				}
			}
		}
	}
}

func TestStabilize_DampingOrder(t *testing.T) {
	// An anti-aligned node (coherence clipped to 0, stability 1.0) must move
	// at least as far per step as a well-aligned node (coherence >= 1,
	// stability 0.5) toward the same source with the same factor.
	source := []float64{1.0, 1.0}

	antiAligned, err := NewFromComponents([]float64{-0.5, -0.5}) // dot = -1
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}
	aligned, err := NewFromComponents([]float64{0.5, 0.5}) // dot = 1
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}

	antiBefore := antiAligned.Components()
	alignedBefore := aligned.Components()

	if err := antiAligned.Stabilize(source, 0.1); err != nil {
		t.Fatalf("Stabilize() error = %v", err)
	}
	if err := aligned.Stabilize(source, 0.1); err != nil {
		t.Fatalf("Stabilize() error = %v", err)
	}

	antiMoved := vecmath.Displacement(antiBefore, antiAligned.Components())
	alignedMoved := vecmath.Displacement(alignedBefore, aligned.Components())

	if antiMoved < alignedMoved {
		t.Errorf("anti-aligned displacement %v < aligned displacement %v", antiMoved, alignedMoved)
	}
}

func TestCoherence(t *testing.T) {
	node, err := NewFromComponents([]float64{0.5, -0.5})
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}

	got, err := node.Coherence([]float64{1.0, 1.0})
	if err != nil {
		t.Fatalf("Coherence() error = %v", err)
	}
	if got != 0.0 {
		t.Errorf("Coherence() = %v, want 0", got)
	}

	if _, err := node.Coherence([]float64{1.0}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Coherence() with short source error = %v, want ErrDimensionMismatch", err)
	}
}

func TestComponents_ReturnsCopy(t *testing.T) {
	node, err := NewFromComponents([]float64{0.5, 0.5})
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}

	node.Components()[0] = -1.0
	if got := node.Components()[0]; got != 0.5 {
		t.Errorf("mutating the returned slice changed the node: component 0 = %v, want 0.5", got)
	}
}

func TestMean(t *testing.T) {
	node, err := NewFromComponents([]float64{-0.5, 0.0, 0.5, 1.0})
	if err != nil {
		t.Fatalf("NewFromComponents() error = %v", err)
	}
	if got := node.Mean(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Mean() = %v, want 0.25", got)
	}
}
