package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAccuracyArgmax(t *testing.T) {
	pred := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 0,
	})
	targets := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		0, 1,
	})

	acc, err := Accuracy(pred, targets)
	require.NoError(t, err)
	assert.InDelta(t, 2./3., acc, 1e-12)
}

func TestEvaluateSampleCountMismatch(t *testing.T) {
	pred := mat.NewDense(3, 2, nil)
	targets := mat.NewDense(2, 2, nil)

	_, err := Evaluate(pred, targets)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidInput, err)
}

func TestEvaluateColumnMismatch(t *testing.T) {
	pred := mat.NewDense(2, 3, nil)
	targets := mat.NewDense(2, 2, nil)

	_, err := Evaluate(pred, targets)
	require.Error(t, err)
}

func TestClassifyBinaryThreshold(t *testing.T) {
	pred := mat.NewDense(4, 1, []float64{0.1, 0.5, 0.49, 0.99})
	assert.Equal(t, []int{0, 1, 0, 1}, Classify(pred))
}

func TestClassifyArgmax(t *testing.T) {
	pred := mat.NewDense(2, 3, []float64{
		0.2, 0.5, 0.3,
		0.7, 0.1, 0.2,
	})
	assert.Equal(t, []int{1, 0}, Classify(pred))
}

func TestEvaluatePerClassMetrics(t *testing.T) {
	// predictions: class 0, 0, 1, 1; truth: 0, 1, 1, 1
	pred := mat.NewDense(4, 2, []float64{
		0.9, 0.1,
		0.8, 0.2,
		0.3, 0.7,
		0.4, 0.6,
	})
	targets := mat.NewDense(4, 2, []float64{
		1, 0,
		0, 1,
		0, 1,
		0, 1,
	})

	m, err := Evaluate(pred, targets)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, m.Accuracy, 1e-12)

	// class 0: tp=1 fp=1 fn=0 -> precision 1/2, recall 1
	c0 := m.PerClass[0]
	assert.Equal(t, 1, c0.TP)
	assert.Equal(t, 1, c0.FP)
	assert.Equal(t, 0, c0.FN)
	assert.InDelta(t, 0.5, c0.Precision, 1e-12)
	assert.InDelta(t, 1.0, c0.Recall, 1e-12)

	// class 1: tp=2 fp=0 fn=1 -> precision 1, recall 2/3
	c1 := m.PerClass[1]
	assert.Equal(t, 2, c1.TP)
	assert.Equal(t, 0, c1.FP)
	assert.Equal(t, 1, c1.FN)
	assert.InDelta(t, 1.0, c1.Precision, 1e-12)
	assert.InDelta(t, 2./3., c1.Recall, 1e-12)

	// macro averages
	assert.InDelta(t, 0.75, m.Precision, 1e-12)
	assert.InDelta(t, (1+2./3.)/2, m.Recall, 1e-12)
}

func TestEvaluateEmptyClassScoresZero(t *testing.T) {
	// nobody predicted class 2 and it never occurs: precision/recall/F1 are 0
	pred := mat.NewDense(2, 3, []float64{
		1, 0, 0,
		0, 1, 0,
	})
	targets := mat.NewDense(2, 3, []float64{
		1, 0, 0,
		0, 1, 0,
	})

	m, err := Evaluate(pred, targets)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Accuracy)
	assert.Equal(t, 0.0, m.PerClass[2].Precision)
	assert.Equal(t, 0.0, m.PerClass[2].F1)
}
