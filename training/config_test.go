package training

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/ldsec/ffnn/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSettings = `
epochs = 10
batchsize = 2
shuffle = true
seed = 42
loss = "mse"
optimizer = "sgd"
learnrate = 0.5
momentum = 0.9

[[layers]]
in = 2
out = 4
activation = "sigmoid"

[[layers]]
in = 4
out = 1
activation = "sigmoid"
`

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings(testSettings)
	require.NoError(t, err)

	assert.Equal(t, 10, s.Epochs)
	assert.Equal(t, 2, s.BatchSize)
	assert.True(t, s.Shuffle)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, "mse", s.Loss)
	assert.Equal(t, 0.9, s.Momentum)
	require.Len(t, s.Layers, 2)
	assert.Equal(t, 4, s.Layers[0].Out)
	assert.Equal(t, "sigmoid", s.Layers[1].Activation)
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "ffnn")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "train.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(testSettings), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Epochs)

	_, err = LoadSettings(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestBuildNetwork(t *testing.T) {
	s, err := ParseSettings(testSettings)
	require.NoError(t, err)

	net, err := s.BuildNetwork()
	require.NoError(t, err)
	assert.Equal(t, 2, net.InDim())
	assert.Equal(t, 1, net.OutDim())
}

func TestBuildNetworkUnknownActivation(t *testing.T) {
	s, err := ParseSettings(testSettings)
	require.NoError(t, err)
	s.Layers[0].Activation = "softplus"

	_, err = s.BuildNetwork()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestBuildNetworkNoLayers(t *testing.T) {
	s := &Settings{}
	_, err := s.BuildNetwork()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestBuildOptimizer(t *testing.T) {
	s, err := ParseSettings(testSettings)
	require.NoError(t, err)

	opt, err := s.BuildOptimizer()
	require.NoError(t, err)
	sgd, ok := opt.(*optim.SGD)
	require.True(t, ok)
	assert.InDelta(t, 0.5, sgd.LearningRate(), 1e-12)

	s.Optimizer = "adam"
	s.LearnRate = 0.001
	opt, err = s.BuildOptimizer()
	require.NoError(t, err)
	adam, ok := opt.(*optim.Adam)
	require.True(t, ok)
	assert.InDelta(t, 0.001, adam.LearningRate(), 1e-12)
}

func TestBuildOptimizerUnknownName(t *testing.T) {
	s, err := ParseSettings(testSettings)
	require.NoError(t, err)
	s.Optimizer = "rmsprop"

	_, err = s.BuildOptimizer()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestBuildOptimizerInvalidLearnRate(t *testing.T) {
	s, err := ParseSettings(testSettings)
	require.NoError(t, err)
	s.LearnRate = -1

	_, err = s.BuildOptimizer()
	require.Error(t, err)
	assert.True(t, errors.Is(err, optim.ErrInvalidConfig))
}

func TestBuildTrainer(t *testing.T) {
	s, err := ParseSettings(testSettings)
	require.NoError(t, err)

	_, err = s.BuildTrainer()
	require.NoError(t, err)
}

func TestBuildTrainerUnknownLoss(t *testing.T) {
	s, err := ParseSettings(testSettings)
	require.NoError(t, err)
	s.Loss = "hinge"

	_, err = s.BuildTrainer()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
