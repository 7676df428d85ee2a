// Package eval computes classification metrics from predictions against
// one-hot (or single-column binary) target matrices.
package eval

import (
	"errors"

	"github.com/ldsec/ffnn/utils"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidInput is returned when predictions and targets have mismatched
// shapes.
var ErrInvalidInput = errors.New("eval: predictions and targets do not match")

// ClassMetrics holds the confusion counts and derived scores for one class.
type ClassMetrics struct {
	Class     int
	TP        int
	FP        int
	FN        int
	Precision float64
	Recall    float64
	F1        float64
}

// Metrics summarizes classification quality. Precision, Recall and F1 are
// macro-averages over the classes; all values are fractions in [0, 1].
type Metrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	PerClass  []ClassMetrics
}

// Classify maps each output row to a class index: the argmax over the columns,
// or a 0.5 threshold for a single-column binary output.
func Classify(pred *mat.Dense) []int {
	r, c := pred.Dims()
	classes := make([]int, r)
	if c == 1 {
		for i := 0; i < r; i++ {
			if pred.At(i, 0) >= 0.5 {
				classes[i] = 1
			}
		}
		return classes
	}
	for i := 0; i < r; i++ {
		classes[i] = utils.ArgmaxRow(pred, i)
	}
	return classes
}

// Evaluate computes accuracy and per-class precision/recall/F1 with macro
// averages. Predictions and targets must have identical shapes; targets are
// classified by the same argmax/threshold rule as predictions.
func Evaluate(pred, targets *mat.Dense) (Metrics, error) {
	pr, pc := pred.Dims()
	tr, tc := targets.Dims()
	if pr != tr || pc != tc {
		return Metrics{}, ErrInvalidInput
	}

	predicted := Classify(pred)
	truth := Classify(targets)

	nclasses := pc
	if nclasses == 1 {
		nclasses = 2
	}

	m := Metrics{PerClass: make([]ClassMetrics, nclasses)}
	correct := 0
	for i := range predicted {
		if predicted[i] == truth[i] {
			correct++
			m.PerClass[truth[i]].TP++
		} else {
			m.PerClass[predicted[i]].FP++
			m.PerClass[truth[i]].FN++
		}
	}
	m.Accuracy = float64(correct) / float64(len(predicted))

	precisions := make([]float64, nclasses)
	recalls := make([]float64, nclasses)
	fscores := make([]float64, nclasses)
	for k := range m.PerClass {
		cm := &m.PerClass[k]
		cm.Class = k
		cm.Precision = ratio(cm.TP, cm.TP+cm.FP)
		cm.Recall = ratio(cm.TP, cm.TP+cm.FN)
		if cm.Precision+cm.Recall > 0 {
			cm.F1 = 2 * cm.Precision * cm.Recall / (cm.Precision + cm.Recall)
		}
		precisions[k] = cm.Precision
		recalls[k] = cm.Recall
		fscores[k] = cm.F1
	}
	m.Precision = utils.Mean(precisions)
	m.Recall = utils.Mean(recalls)
	m.F1 = utils.Mean(fscores)

	return m, nil
}

// Accuracy is a convenience wrapper returning only the accuracy fraction.
func Accuracy(pred, targets *mat.Dense) (float64, error) {
	m, err := Evaluate(pred, targets)
	if err != nil {
		return 0, err
	}
	return m.Accuracy, nil
}

// classes with an empty denominator score 0
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
