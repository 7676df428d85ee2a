package training

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ldsec/ffnn/layers"
	"github.com/ldsec/ffnn/loss"
	"github.com/ldsec/ffnn/network"
	"github.com/ldsec/ffnn/optim"
)

// ErrInvalidConfig is wrapped by settings and trainer construction errors.
var ErrInvalidConfig = errors.New("training: invalid configuration")

// LayerSettings describes one dense layer in a settings file.
type LayerSettings struct {
	In         int
	Out        int
	Activation string
}

// Settings is the TOML-decodable description of a network and its training
// run.
//
//	epochs = 100
//	batchsize = 10
//	shuffle = true
//	seed = 1
//	loss = "mse"
//	optimizer = "sgd"
//	learnrate = 0.5
//
//	[[layers]]
//	in = 2
//	out = 4
//	activation = "sigmoid"
type Settings struct {
	Epochs    int
	BatchSize int
	Shuffle   bool
	Seed      int64

	Loss      string
	Optimizer string
	LearnRate float64
	Momentum  float64
	Beta1     float64
	Beta2     float64
	Epsilon   float64

	Layers []LayerSettings
}

// LoadSettings decodes settings from a TOML file.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("training: decoding %s: %w", path, err)
	}
	return s, nil
}

// ParseSettings decodes settings from a TOML string.
func ParseSettings(config string) (*Settings, error) {
	s := &Settings{}
	if _, err := toml.Decode(config, s); err != nil {
		return nil, fmt.Errorf("training: decoding settings: %w", err)
	}
	return s, nil
}

// BuildNetwork constructs the network described by the layer sections.
func (s *Settings) BuildNetwork() (*network.Network, error) {
	if len(s.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers configured", ErrInvalidConfig)
	}
	ls := make([]*layers.Dense, len(s.Layers))
	for i, lc := range s.Layers {
		act, err := layers.ParseActivation(lc.Activation)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %v", ErrInvalidConfig, i, err)
		}
		l, err := layers.NewDense(lc.In, lc.Out, act)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %v", ErrInvalidConfig, i, err)
		}
		ls[i] = l
	}
	return network.New(ls...)
}

// BuildOptimizer constructs the configured optimizer.
func (s *Settings) BuildOptimizer() (optim.Optimizer, error) {
	switch strings.ToLower(s.Optimizer) {
	case "sgd":
		return optim.NewSGD(s.LearnRate, s.Momentum)
	case "adam":
		return optim.NewAdam(optim.AdamConfig{
			LR:      s.LearnRate,
			Beta1:   s.Beta1,
			Beta2:   s.Beta2,
			Epsilon: s.Epsilon,
		})
	}
	return nil, fmt.Errorf("%w: unknown optimizer %q", ErrInvalidConfig, s.Optimizer)
}

// BuildTrainer constructs the trainer: loss and optimizer resolved by name,
// loop parameters validated.
func (s *Settings) BuildTrainer() (*Trainer, error) {
	l, err := loss.ParseLoss(s.Loss)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	opt, err := s.BuildOptimizer()
	if err != nil {
		return nil, err
	}
	return NewTrainer(Config{
		Epochs:    s.Epochs,
		BatchSize: s.BatchSize,
		Shuffle:   s.Shuffle,
		Seed:      s.Seed,
	}, l, opt)
}
