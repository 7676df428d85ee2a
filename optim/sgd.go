package optim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SGD is stochastic gradient descent with optional momentum.
//
// Without momentum the update is param -= lr * grad. With momentum the
// velocity accumulates the scaled gradient,
//
//	v = momentum*v + lr*grad
//	param -= v
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[string]*mat.Dense
}

// NewSGD creates an SGD optimizer. The learning rate must be positive and
// momentum must lie in [0, 1).
func NewSGD(lr, momentum float64) (*SGD, error) {
	if lr <= 0 {
		return nil, fmt.Errorf("%w: learning rate must be positive, got %v", ErrInvalidConfig, lr)
	}
	if momentum < 0 || momentum >= 1 {
		return nil, fmt.Errorf("%w: momentum must be in [0, 1), got %v", ErrInvalidConfig, momentum)
	}
	return &SGD{
		lr:         lr,
		momentum:   momentum,
		velocities: make(map[string]*mat.Dense),
	}, nil
}

// Step applies one SGD update to every parameter that carries a gradient.
func (s *SGD) Step(params []Param) {
	for _, p := range params {
		if p.Grad == nil {
			continue
		}
		r, c := p.Grad.Dims()
		scaled := mat.NewDense(r, c, nil)
		scaled.Scale(s.lr, p.Grad)

		if s.momentum == 0 {
			p.Value.Sub(p.Value, scaled)
			continue
		}

		v, ok := s.velocities[p.Name]
		if !ok {
			v = scaled
			s.velocities[p.Name] = v
		} else {
			v.Scale(s.momentum, v)
			v.Add(v, scaled)
		}
		p.Value.Sub(p.Value, v)
	}
}

// Reset clears all velocities.
func (s *SGD) Reset() {
	s.velocities = make(map[string]*mat.Dense)
}

// LearningRate returns the configured step size.
func (s *SGD) LearningRate() float64 { return s.lr }
