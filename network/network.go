// Package network composes dense layers into a feed-forward model and
// orchestrates the full forward and backward passes.
package network

import (
	"errors"
	"fmt"

	"github.com/ldsec/ffnn/layers"
	"github.com/ldsec/ffnn/optim"
	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch is wrapped by New when consecutive layers do not chain.
var ErrDimensionMismatch = errors.New("network: layer dimensions do not chain")

// Network is an ordered sequence of dense layers whose dimensions chain.
type Network struct {
	layers []*layers.Dense
}

// New builds a network from the given layers, checking that every layer's
// output width equals the next layer's input width.
func New(ls ...*layers.Dense) (*Network, error) {
	if len(ls) == 0 {
		return nil, errors.New("network: at least one layer is required")
	}
	for i := 1; i < len(ls); i++ {
		if ls[i-1].OutDim() != ls[i].InDim() {
			return nil, fmt.Errorf("%w: layer %d outputs %d, layer %d expects %d",
				ErrDimensionMismatch, i-1, ls[i-1].OutDim(), i, ls[i].InDim())
		}
	}
	return &Network{layers: ls}, nil
}

// InDim returns the input width of the first layer.
func (n *Network) InDim() int { return n.layers[0].InDim() }

// OutDim returns the output width of the last layer.
func (n *Network) OutDim() int { return n.layers[len(n.layers)-1].OutDim() }

// Layers returns the ordered layers, for persistence and inspection.
func (n *Network) Layers() []*layers.Dense { return n.layers }

// Forward runs the batch through every layer in order and returns the final
// output.
func (n *Network) Forward(input *mat.Dense) *mat.Dense {
	out := input
	for _, l := range n.layers {
		out = l.Forward(out)
	}
	return out
}

// Backward propagates the loss gradient through the layers in reverse order.
// The gradient with respect to the original input is discarded; each layer's
// weight and bias gradients remain available through the layer afterwards.
func (n *Network) Backward(lossGradient *mat.Dense) error {
	grad := lossGradient
	for i := len(n.layers) - 1; i >= 0; i-- {
		var err error
		grad, err = n.layers[i].Backward(grad)
		if err != nil {
			return fmt.Errorf("network: layer %d: %w", i, err)
		}
	}
	return nil
}

// Parameters returns the ordered parameter list for the optimizer: weight
// then bias per layer, under the stable names dense<i>.weight and
// dense<i>.bias.
func (n *Network) Parameters() []optim.Param {
	params := make([]optim.Param, 0, 2*len(n.layers))
	for i, l := range n.layers {
		gw, gb := l.Gradients()
		params = append(params,
			optim.Param{Name: fmt.Sprintf("dense%d.weight", i), Value: l.GetWeights(), Grad: gw},
			optim.Param{Name: fmt.Sprintf("dense%d.bias", i), Value: l.GetBias(), Grad: gb},
		)
	}
	return params
}
