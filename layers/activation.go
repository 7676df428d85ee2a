package layers

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Activation identifies one of the supported element-wise activation functions.
type Activation int

const (
	Identity Activation = iota
	Sigmoid
	ReLU
	Tanh
)

// ErrUnknownActivation is returned by ParseActivation for unrecognized names.
var ErrUnknownActivation = errors.New("layers: unknown activation")

func (a Activation) String() string {
	switch a {
	case Identity:
		return "identity"
	case Sigmoid:
		return "sigmoid"
	case ReLU:
		return "relu"
	case Tanh:
		return "tanh"
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}

// ParseActivation maps a case-insensitive name to an Activation.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(name) {
	case "identity", "linear":
		return Identity, nil
	case "sigmoid":
		return Sigmoid, nil
	case "relu":
		return ReLU, nil
	case "tanh":
		return Tanh, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
}

// Apply evaluates the activation at z.
func (a Activation) Apply(z float64) float64 {
	switch a {
	case Identity:
		return z
	case Sigmoid:
		return sigmoid(z)
	case ReLU:
		return math.Max(0, z)
	case Tanh:
		return math.Tanh(z)
	}
	panic("layers: invalid activation")
}

// Derivative evaluates the activation derivative. z is the pre-activation
// value and y the matching forward output Apply(z); sigmoid and tanh use y so
// the exponential is not recomputed, relu uses the sign of z. The relu
// derivative at z == 0 is 0 by convention.
func (a Activation) Derivative(z, y float64) float64 {
	switch a {
	case Identity:
		return 1
	case Sigmoid:
		return y * (1 - y)
	case ReLU:
		if z > 0 {
			return 1
		}
		return 0
	case Tanh:
		return 1 - y*y
	}
	panic("layers: invalid activation")
}

// sigmoid branches on the sign of z so that exp is only ever taken of a
// non-positive value, avoiding overflow for large |z|
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
