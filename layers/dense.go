package layers

import (
	"errors"
	"fmt"

	"github.com/ldsec/ffnn/utils"
	"gonum.org/v1/gonum/mat"
)

// ErrNoForwardPass is returned by Backward when no forward pass has been run
// on the layer yet.
var ErrNoForwardPass = errors.New("layers: backward called before forward")

// Dense is a fully connected layer with an element-wise activation.
//
// The layer owns its weight and bias matrices; they are read by Forward and
// Backward and mutated only through the optimizer (via the gradient accessors)
// or SetWeights/SetBias. Forward caches the batch it saw, so a Dense instance
// must not be shared between concurrently processed batches.
type Dense struct {
	in, out int
	weights *mat.Dense // in x out
	bias    *mat.Dense // 1 x out
	act     Activation

	lastInput  *mat.Dense // nsamples x in
	u          *mat.Dense // nsamples x out, before activation
	lastOutput *mat.Dense // nsamples x out

	gradWeights *mat.Dense // in x out
	gradBias    *mat.Dense // 1 x out
}

// NewDense creates an in x out fully connected layer. Weights are drawn
// uniformly from (-1, 1) scaled by 1/sqrt(in), biases start at zero.
func NewDense(in, out int, act Activation) (*Dense, error) {
	if in < 1 || out < 1 {
		return nil, fmt.Errorf("layers: dense dimensions must be positive, got %dx%d", in, out)
	}
	return &Dense{
		in:      in,
		out:     out,
		weights: mat.NewDense(in, out, utils.WeightsInit(in*out, float64(in))),
		bias:    mat.NewDense(1, out, nil),
		act:     act,
	}, nil
}

// Forward computes activation(input*W + bias) for a batch of nsamples rows,
// remembering the input and the pre-activation for the next Backward call.
func (d *Dense) Forward(input *mat.Dense) *mat.Dense {
	nsamples, _ := input.Dims()

	d.lastInput = mat.DenseCopyOf(input)

	u := mat.NewDense(nsamples, d.out, nil)
	u.Mul(input, d.weights)
	utils.AddBiasRow(u, u, d.bias)
	d.u = u

	output := mat.NewDense(nsamples, d.out, nil)
	output.Apply(utils.ToApply(d.act.Apply), u)
	d.lastOutput = output

	return output
}

// Backward backpropagates gradOutput (nsamples x out, the loss gradient with
// respect to this layer's output) through the layer. It stores the weight and
// bias gradients for the optimizer and returns the gradient with respect to
// the layer input. gradOutput is left untouched.
//
// Backward must follow a Forward call on the same batch.
func (d *Dense) Backward(gradOutput *mat.Dense) (*mat.Dense, error) {
	if d.lastInput == nil {
		return nil, ErrNoForwardPass
	}
	nsamples, _ := gradOutput.Dims()

	delta := mat.NewDense(nsamples, d.out, nil)
	delta.Apply(func(i, j int, v float64) float64 {
		return v * d.act.Derivative(d.u.At(i, j), d.lastOutput.At(i, j))
	}, gradOutput)

	gw := mat.NewDense(d.in, d.out, nil)
	gw.Mul(d.lastInput.T(), delta)
	d.gradWeights = gw
	d.gradBias = utils.ColSums(delta)

	gradInput := mat.NewDense(nsamples, d.in, nil)
	gradInput.Mul(delta, d.weights.T())
	return gradInput, nil
}

// InDim returns the input width of the layer.
func (d *Dense) InDim() int { return d.in }

// OutDim returns the output width of the layer.
func (d *Dense) OutDim() int { return d.out }

// ActivationFn returns the layer's activation.
func (d *Dense) ActivationFn() Activation { return d.act }

// Gradients returns the weight and bias gradients computed by the last
// Backward call, nil before the first one.
func (d *Dense) Gradients() (gradWeights, gradBias *mat.Dense) {
	return d.gradWeights, d.gradBias
}

func (d *Dense) GetWeights() *mat.Dense {
	return d.weights
}

func (d *Dense) GetBias() *mat.Dense {
	return d.bias
}

// SetWeights replaces the weight matrix, rejecting mismatched shapes.
func (d *Dense) SetWeights(w *mat.Dense) error {
	r, c := w.Dims()
	if r != d.in || c != d.out {
		return fmt.Errorf("layers: weights must be %dx%d, got %dx%d", d.in, d.out, r, c)
	}
	d.weights.Copy(w)
	return nil
}

// SetBias replaces the bias row, rejecting mismatched shapes.
func (d *Dense) SetBias(b *mat.Dense) error {
	r, c := b.Dims()
	if r != 1 || c != d.out {
		return fmt.Errorf("layers: bias must be 1x%d, got %dx%d", d.out, r, c)
	}
	d.bias.Copy(b)
	return nil
}

// GetWeightsBinary returns the weight matrix in gonum's binary encoding, for
// persistence by the caller.
func (d *Dense) GetWeightsBinary() ([]byte, error) {
	return d.weights.MarshalBinary()
}

// LoadWeightsBinary restores weights previously written by GetWeightsBinary.
func (d *Dense) LoadWeightsBinary(data []byte) error {
	w := new(mat.Dense)
	if err := w.UnmarshalBinary(data); err != nil {
		return err
	}
	return d.SetWeights(w)
}

// GetBiasBinary returns the bias row in gonum's binary encoding.
func (d *Dense) GetBiasBinary() ([]byte, error) {
	return d.bias.MarshalBinary()
}

// LoadBiasBinary restores a bias row previously written by GetBiasBinary.
func (d *Dense) LoadBiasBinary(data []byte) error {
	b := new(mat.Dense)
	if err := b.UnmarshalBinary(data); err != nil {
		return err
	}
	return d.SetBias(b)
}
