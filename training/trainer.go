// Package training runs the epoch/batch loop: shuffling, forward, loss,
// backward, optimizer step, and per-epoch validation.
package training

import (
	"fmt"
	"math/rand"

	"github.com/ldsec/ffnn/loss"
	"github.com/ldsec/ffnn/network"
	"github.com/ldsec/ffnn/optim"
	"github.com/ldsec/ffnn/utils"
	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"
)

// Config holds the training-loop parameters.
type Config struct {
	Epochs    int
	BatchSize int
	// Shuffle reshuffles the sample order uniformly at random before every
	// epoch; the permutation sequence is reproducible given Seed.
	Shuffle bool
	Seed    int64
}

// EpochRecord is the per-epoch record handed to the logging collaborator.
// ValidLoss is only meaningful when Valid is true.
type EpochRecord struct {
	Epoch     int
	TrainLoss float64
	ValidLoss float64
	Valid     bool
}

// Trainer drives the training of a network with a fixed loss and optimizer.
//
// Stop, if set, is checked once after every epoch and ends the run early when
// it returns true.
type Trainer struct {
	cfg  Config
	loss loss.Loss
	opt  optim.Optimizer

	Stop func(EpochRecord) bool
}

// NewTrainer creates a trainer, rejecting non-positive epoch or batch counts.
func NewTrainer(cfg Config, l loss.Loss, opt optim.Optimizer) (*Trainer, error) {
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("%w: epochs must be positive, got %d", ErrInvalidConfig, cfg.Epochs)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, cfg.BatchSize)
	}
	if opt == nil {
		return nil, fmt.Errorf("%w: optimizer is required", ErrInvalidConfig)
	}
	return &Trainer{cfg: cfg, loss: l, opt: opt}, nil
}

// Run trains net on the training matrices. Rows are samples. validX/validY
// may be nil; when present a forward-only validation loss is recorded after
// every epoch. The returned history holds one record per completed epoch.
//
// Errors from layers or the loss abort the current epoch and propagate to the
// caller. Non-finite losses from diverging training are recorded as-is so the
// caller can detect them.
func (t *Trainer) Run(net *network.Network, trainX, trainY, validX, validY *mat.Dense) (*History, error) {
	n, _ := trainX.Dims()
	ny, _ := trainY.Dims()
	if n != ny {
		return nil, fmt.Errorf("training: inputs have %d rows, targets have %d", n, ny)
	}
	if (validX == nil) != (validY == nil) {
		return nil, fmt.Errorf("training: validation inputs and targets must both be present or both nil")
	}

	rng := rand.New(rand.NewSource(t.cfg.Seed))
	history := &History{}

	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		var order []int
		if t.cfg.Shuffle {
			order = rng.Perm(n)
		} else {
			order = make([]int, n)
			for i := range order {
				order[i] = i
			}
		}

		epochLoss := 0.
		for start := 0; start < n; start += t.cfg.BatchSize {
			end := start + t.cfg.BatchSize
			if end > n {
				end = n // final partial batch is trained on, not dropped
			}
			idx := order[start:end]
			batchX := utils.SelectRows(trainX, idx)
			batchY := utils.SelectRows(trainY, idx)

			pred := net.Forward(batchX)
			epochLoss += t.loss.Compute(pred, batchY) * float64(end-start)

			if err := net.Backward(t.loss.Gradient(pred, batchY)); err != nil {
				return history, err
			}
			t.opt.Step(net.Parameters())
		}

		rec := EpochRecord{Epoch: epoch, TrainLoss: epochLoss / float64(n)}
		if validX != nil {
			rec.ValidLoss = t.loss.Compute(net.Forward(validX), validY)
			rec.Valid = true
			log.Lvlf2("epoch %d/%d: train loss %.6f, validation loss %.6f",
				epoch, t.cfg.Epochs, rec.TrainLoss, rec.ValidLoss)
		} else {
			log.Lvlf2("epoch %d/%d: train loss %.6f", epoch, t.cfg.Epochs, rec.TrainLoss)
		}
		history.Records = append(history.Records, rec)

		if t.Stop != nil && t.Stop(rec) {
			log.Lvlf2("stop condition met after epoch %d", epoch)
			break
		}
	}
	return history, nil
}
