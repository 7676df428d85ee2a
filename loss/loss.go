// Package loss implements the loss functions used to train a network, each as
// a compute/gradient pair averaged over the batch dimension so that gradient
// magnitudes do not depend on the batch size.
package loss

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ldsec/ffnn/utils"
	"gonum.org/v1/gonum/mat"
)

// Loss identifies one of the supported loss functions.
type Loss int

const (
	// MSE is the mean squared error, for regression.
	MSE Loss = iota
	// CrossEntropy is -mean(sum(target*log(pred))) with the general gradient,
	// for predictions that are already probabilities.
	CrossEntropy
	// SoftmaxCrossEntropy applies a row-wise softmax to the predictions
	// (logits) and uses the combined softmax/cross-entropy gradient.
	SoftmaxCrossEntropy
	// BinaryCrossEntropy is the binary cross-entropy for single-output
	// probabilities, with predictions clamped away from 0 and 1.
	BinaryCrossEntropy
)

// epsilon keeps log arguments strictly positive
const epsilon = 1e-15

// ErrUnknownLoss is returned by ParseLoss for unrecognized names.
var ErrUnknownLoss = errors.New("loss: unknown loss")

func (l Loss) String() string {
	switch l {
	case MSE:
		return "mse"
	case CrossEntropy:
		return "crossentropy"
	case SoftmaxCrossEntropy:
		return "softmax-crossentropy"
	case BinaryCrossEntropy:
		return "binary-crossentropy"
	}
	return fmt.Sprintf("Loss(%d)", int(l))
}

// ParseLoss maps a case-insensitive name to a Loss.
func ParseLoss(name string) (Loss, error) {
	switch strings.ToLower(name) {
	case "mse", "meansquarederror":
		return MSE, nil
	case "crossentropy", "cross-entropy":
		return CrossEntropy, nil
	case "softmax-crossentropy", "softmaxcrossentropy":
		return SoftmaxCrossEntropy, nil
	case "binary-crossentropy", "binarycrossentropy", "bce":
		return BinaryCrossEntropy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLoss, name)
}

// Compute returns the scalar loss of pred against target, averaged over the
// batch (row) dimension. Panics with mat.ErrShape if the shapes differ.
func (l Loss) Compute(pred, target *mat.Dense) float64 {
	r, c := checkShapes(pred, target)
	n := float64(r)

	switch l {
	case MSE:
		sum := 0.
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				diff := pred.At(i, j) - target.At(i, j)
				sum += diff * diff
			}
		}
		return sum / n

	case CrossEntropy:
		sum := 0.
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				sum -= target.At(i, j) * math.Log(pred.At(i, j)+epsilon)
			}
		}
		return sum / n

	case SoftmaxCrossEntropy:
		sum := 0.
		for i := 0; i < r; i++ {
			s := utils.Softmax(pred.RawRowView(i))
			for j := 0; j < c; j++ {
				sum -= target.At(i, j) * math.Log(s[j]+epsilon)
			}
		}
		return sum / n

	case BinaryCrossEntropy:
		sum := 0.
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				p := clamp(pred.At(i, j))
				t := target.At(i, j)
				sum -= t*math.Log(p) + (1-t)*math.Log(1-p)
			}
		}
		return sum / n
	}
	panic("loss: invalid loss")
}

// Gradient returns the gradient of Compute with respect to pred, with the
// same shape as pred. Panics with mat.ErrShape if the shapes differ.
func (l Loss) Gradient(pred, target *mat.Dense) *mat.Dense {
	r, c := checkShapes(pred, target)
	n := float64(r)
	grad := mat.NewDense(r, c, nil)

	switch l {
	case MSE:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				grad.Set(i, j, 2*(pred.At(i, j)-target.At(i, j))/n)
			}
		}

	case CrossEntropy:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				grad.Set(i, j, -target.At(i, j)/(pred.At(i, j)+epsilon)/n)
			}
		}

	case SoftmaxCrossEntropy:
		for i := 0; i < r; i++ {
			s := utils.Softmax(pred.RawRowView(i))
			for j := 0; j < c; j++ {
				grad.Set(i, j, (s[j]-target.At(i, j))/n)
			}
		}

	case BinaryCrossEntropy:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				p := clamp(pred.At(i, j))
				t := target.At(i, j)
				grad.Set(i, j, (-t/p+(1-t)/(1-p))/n)
			}
		}

	default:
		panic("loss: invalid loss")
	}
	return grad
}

func checkShapes(pred, target *mat.Dense) (r, c int) {
	r, c = pred.Dims()
	tr, tc := target.Dims()
	if tr != r || tc != c {
		panic(mat.ErrShape)
	}
	return r, c
}

func clamp(p float64) float64 {
	if p < epsilon {
		return epsilon
	}
	if p > 1-epsilon {
		return 1 - epsilon
	}
	return p
}
