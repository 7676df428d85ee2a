package main

import (
	"fmt"

	"github.com/ldsec/ffnn/eval"
	"github.com/ldsec/ffnn/training"
	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"
)

const settings = `
epochs = 5000
batchsize = 1
shuffle = true
seed = 1
loss = "mse"
optimizer = "sgd"
learnrate = 0.5

[[layers]]
in = 2
out = 4
activation = "sigmoid"

[[layers]]
in = 4
out = 1
activation = "sigmoid"
`

// Trains a small feed-forward network on the XOR dataset and reports the
// resulting metrics.
func main() {
	log.SetDebugVisible(1)

	s, err := training.ParseSettings(settings)
	if err != nil {
		log.Fatal(err)
	}

	net, err := s.BuildNetwork()
	if err != nil {
		log.Fatal(err)
	}
	trainer, err := s.BuildTrainer()
	if err != nil {
		log.Fatal(err)
	}

	inputs := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	targets := mat.NewDense(4, 1, []float64{0, 1, 1, 0})

	history, err := trainer.Run(net, inputs, targets, nil, nil)
	if err != nil {
		log.Fatal(err)
	}

	summary, err := history.Summary()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("trained %d epochs, final loss %.4f (min %.4f, mean %.4f)\n",
		summary.Epochs, summary.FinalTrainLoss, summary.MinTrainLoss, summary.MeanTrainLoss)

	metrics, err := eval.Evaluate(net.Forward(inputs), targets)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("accuracy: %.2f, precision: %.2f, recall: %.2f, fscore: %.2f\n",
		metrics.Accuracy, metrics.Precision, metrics.Recall, metrics.F1)
}
