// Package optim implements gradient-based parameter updates: plain SGD, SGD
// with momentum, and Adam.
//
// Optimizers keep their per-parameter auxiliary state (velocities, moment
// estimates) in maps keyed by the parameter name, so layers stay free of
// optimizer-specific fields and optimizers can be swapped without touching
// the network.
package optim

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidConfig is wrapped by constructor errors for out-of-range
// hyperparameters.
var ErrInvalidConfig = errors.New("optim: invalid configuration")

// Param is one trainable parameter matrix together with its current gradient.
// Name must be stable across steps; it keys the optimizer state. Grad may be
// nil for parameters that have not seen a backward pass yet, those are
// skipped.
type Param struct {
	Name  string
	Value *mat.Dense
	Grad  *mat.Dense
}

// Optimizer updates parameter values in place from their gradients.
// Step must not be called concurrently on shared parameters.
type Optimizer interface {
	Step(params []Param)
	// Reset drops all per-parameter state, as if freshly constructed.
	Reset()
}
