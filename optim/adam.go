package optim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// AdamConfig holds the Adam hyperparameters. Zero fields take the usual
// defaults: LR 0.001, Beta1 0.9, Beta2 0.999, Epsilon 1e-8.
type AdamConfig struct {
	LR      float64
	Beta1   float64
	Beta2   float64
	Epsilon float64
}

// Adam is the adaptive moment estimation optimizer (Kingma & Ba, 2014).
//
//	m = beta1*m + (1-beta1)*grad
//	v = beta2*v + (1-beta2)*grad^2
//	param -= lr * mhat / (sqrt(vhat) + eps)
//
// with mhat, vhat the step-count bias-corrected moments. The step count is
// shared by all parameters of a Step call so bias correction stays consistent
// across the whole network.
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int
	m     map[string]*mat.Dense
	v     map[string]*mat.Dense
}

// NewAdam creates an Adam optimizer, applying defaults for zero fields and
// rejecting out-of-range values.
func NewAdam(cfg AdamConfig) (*Adam, error) {
	if cfg.LR == 0 {
		cfg.LR = 0.001
	}
	if cfg.Beta1 == 0 {
		cfg.Beta1 = 0.9
	}
	if cfg.Beta2 == 0 {
		cfg.Beta2 = 0.999
	}
	if cfg.Epsilon == 0 {
		cfg.Epsilon = 1e-8
	}
	if cfg.LR < 0 {
		return nil, fmt.Errorf("%w: learning rate must be positive, got %v", ErrInvalidConfig, cfg.LR)
	}
	if cfg.Beta1 < 0 || cfg.Beta1 >= 1 || cfg.Beta2 < 0 || cfg.Beta2 >= 1 {
		return nil, fmt.Errorf("%w: betas must be in [0, 1), got %v and %v", ErrInvalidConfig, cfg.Beta1, cfg.Beta2)
	}
	if cfg.Epsilon < 0 {
		return nil, fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidConfig, cfg.Epsilon)
	}
	return &Adam{
		lr:    cfg.LR,
		beta1: cfg.Beta1,
		beta2: cfg.Beta2,
		eps:   cfg.Epsilon,
		m:     make(map[string]*mat.Dense),
		v:     make(map[string]*mat.Dense),
	}, nil
}

// Step applies one Adam update to every parameter that carries a gradient.
// The shared step count increments once per call.
func (a *Adam) Step(params []Param) {
	a.t++
	bc1 := 1 - math.Pow(a.beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.beta2, float64(a.t))

	for _, p := range params {
		if p.Grad == nil {
			continue
		}
		r, c := p.Grad.Dims()

		m, ok := a.m[p.Name]
		if !ok {
			m = mat.NewDense(r, c, nil)
			a.m[p.Name] = m
		}
		v, ok := a.v[p.Name]
		if !ok {
			v = mat.NewDense(r, c, nil)
			a.v[p.Name] = v
		}

		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				g := p.Grad.At(i, j)
				mij := a.beta1*m.At(i, j) + (1-a.beta1)*g
				vij := a.beta2*v.At(i, j) + (1-a.beta2)*g*g
				m.Set(i, j, mij)
				v.Set(i, j, vij)

				mhat := mij / bc1
				vhat := vij / bc2
				p.Value.Set(i, j, p.Value.At(i, j)-a.lr*mhat/(math.Sqrt(vhat)+a.eps))
			}
		}
	}
}

// Reset clears the moment estimates and the step count.
func (a *Adam) Reset() {
	a.t = 0
	a.m = make(map[string]*mat.Dense)
	a.v = make(map[string]*mat.Dense)
}

// LearningRate returns the configured step size.
func (a *Adam) LearningRate() float64 { return a.lr }

// Timestep returns the number of Step calls so far.
func (a *Adam) Timestep() int { return a.t }
