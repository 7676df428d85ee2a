package network

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ldsec/ffnn/layers"
	"github.com/ldsec/ffnn/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func mustDense(t *testing.T, in, out int, act layers.Activation) *layers.Dense {
	t.Helper()
	l, err := layers.NewDense(in, out, act)
	require.NoError(t, err)
	return l
}

func TestNewRejectsNonChainingDims(t *testing.T) {
	_, err := New(
		mustDense(t, 3, 5, layers.Sigmoid),
		mustDense(t, 4, 2, layers.Sigmoid),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New()
	require.Error(t, err)
}

func TestForwardChainsLayers(t *testing.T) {
	rand.Seed(10)
	l1 := mustDense(t, 2, 3, layers.Tanh)
	l2 := mustDense(t, 3, 1, layers.Sigmoid)
	net, err := New(l1, l2)
	require.NoError(t, err)

	input := mat.NewDense(5, 2, utils.FillNorm(10, 0, 1))
	out := net.Forward(input)

	r, c := out.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 1, c)

	// same result as chaining by hand
	manual := l2.Forward(l1.Forward(input))
	assert.True(t, mat.EqualApprox(manual, out, 1e-15))

	assert.Equal(t, 2, net.InDim())
	assert.Equal(t, 1, net.OutDim())
}

func TestBackwardFillsAllLayerGradients(t *testing.T) {
	rand.Seed(11)
	l1 := mustDense(t, 2, 3, layers.Sigmoid)
	l2 := mustDense(t, 3, 2, layers.Identity)
	net, err := New(l1, l2)
	require.NoError(t, err)

	out := net.Forward(mat.NewDense(4, 2, utils.FillNorm(8, 0, 1)))
	grad := mat.NewDense(4, 2, nil)
	grad.Scale(2, out)
	require.NoError(t, net.Backward(grad))

	for i, l := range net.Layers() {
		gw, gb := l.Gradients()
		require.NotNil(t, gw, "layer %d weight gradient", i)
		require.NotNil(t, gb, "layer %d bias gradient", i)
	}
}

func TestBackwardBeforeForward(t *testing.T) {
	net, err := New(mustDense(t, 2, 1, layers.Sigmoid))
	require.NoError(t, err)

	err = net.Backward(mat.NewDense(1, 1, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, layers.ErrNoForwardPass))
}

func TestParametersStableNamesAndOrder(t *testing.T) {
	rand.Seed(12)
	net, err := New(
		mustDense(t, 2, 3, layers.Sigmoid),
		mustDense(t, 3, 1, layers.Sigmoid),
	)
	require.NoError(t, err)

	params := net.Parameters()
	require.Len(t, params, 4)
	assert.Equal(t, "dense0.weight", params[0].Name)
	assert.Equal(t, "dense0.bias", params[1].Name)
	assert.Equal(t, "dense1.weight", params[2].Name)
	assert.Equal(t, "dense1.bias", params[3].Name)

	// values are the live layer matrices, not copies
	assert.True(t, params[0].Value == net.Layers()[0].GetWeights())

	// gradients are nil before the first backward pass
	assert.Nil(t, params[0].Grad)
}
