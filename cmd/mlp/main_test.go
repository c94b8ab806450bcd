package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/network"
	"github.com/born-ml/mlp/tensor"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&buf, "json")
	require.NoError(t, err)
	logger.Info("hello", "epoch", 1)
	assert.Contains(t, buf.String(), `"epoch":1`)

	_, err = newLogger(&buf, "xml")
	assert.Error(t, err)
}

func TestParseOptimizer(t *testing.T) {
	kind, err := parseOptimizer("sgd")
	require.NoError(t, err)
	assert.Equal(t, network.OptimizerSGD, kind)

	_, err = parseOptimizer("rmsprop")
	assert.Error(t, err)
}

func TestBuildXOR(t *testing.T) {
	x, y, err := xorData()
	require.NoError(t, err)

	net, err := buildXOR(network.Config{Seed: 1}, x, y)
	require.NoError(t, err)
	assert.Equal(t, 4, net.NumStages())
	assert.Equal(t, 17, net.Summary().TotalParameters)
	assert.Equal(t, network.StateBuilt, net.State())

	_, err = net.TrainStep(x, y)
	require.NoError(t, err)

	_, err = buildXOR(network.Config{Seed: 1}, x, tensor.Zeros(tensor.Shape{4, 2}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

// The shipped defaults must train: Kaiming init, the default seed and the
// default learning rate over 100 epochs.
func TestBuildXOR_DefaultsTrain(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "text")
	require.NoError(t, err)

	x, y, err := xorData()
	require.NoError(t, err)

	net, err := buildXOR(network.Config{LearningRate: 0.001, Seed: defaultSeed, Logger: logger}, x, y)
	require.NoError(t, err)

	// The default seed starts dead, so a later seed is chosen.
	assert.Greater(t, net.Config().Seed, uint64(defaultSeed))
	assert.Contains(t, buf.String(), "requested_seed=42")

	flow, err := net.HasGradientFlow(x, y)
	require.NoError(t, err)
	require.True(t, flow)

	history, err := net.Train(x, y, 100, false)
	require.NoError(t, err)
	require.Len(t, history, 100)
	assert.Less(t, history[99], history[0])
}

func TestRunDemo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runDemo(&buf, 42))
	assert.Contains(t, buf.String(), "Arange: ")
	assert.Contains(t, buf.String(), "ReLU: ")
}
