package training

import (
	"github.com/montanaflynn/stats"
)

// History is the finite, append-only record of one training run.
type History struct {
	Records []EpochRecord
}

// TrainLosses returns the per-epoch training losses in order.
func (h *History) TrainLosses() []float64 {
	out := make([]float64, len(h.Records))
	for i, r := range h.Records {
		out[i] = r.TrainLoss
	}
	return out
}

// ValidLosses returns the per-epoch validation losses in order, or nil when
// the run had no validation data.
func (h *History) ValidLosses() []float64 {
	var out []float64
	for _, r := range h.Records {
		if r.Valid {
			out = append(out, r.ValidLoss)
		}
	}
	return out
}

// Summary condenses a history into a few aggregate numbers.
type Summary struct {
	Epochs         int
	MeanTrainLoss  float64
	MinTrainLoss   float64
	FinalTrainLoss float64
}

// Summary computes aggregate loss statistics over the run.
func (h *History) Summary() (Summary, error) {
	losses := h.TrainLosses()
	mean, err := stats.Mean(losses)
	if err != nil {
		return Summary{}, err
	}
	min, err := stats.Min(losses)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Epochs:         len(h.Records),
		MeanTrainLoss:  mean,
		MinTrainLoss:   min,
		FinalTrainLoss: losses[len(losses)-1],
	}, nil
}
