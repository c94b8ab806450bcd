package network_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/mlp/internal/network"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/tensor"
)

func mustFromSlice(t *testing.T, data []float64, shape tensor.Shape) *tensor.NDArray {
	t.Helper()
	a, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return a
}

func xorData(t *testing.T) (x, y *tensor.NDArray) {
	t.Helper()
	x = mustFromSlice(t, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	}, tensor.Shape{4, 2})
	y = mustFromSlice(t, []float64{0, 1, 1, 0}, tensor.Shape{4, 1})
	return x, y
}

// xorNetwork builds Dense(2,4) -> Dense(4,1) -> ReLU -> Sigmoid.
func xorNetwork(t *testing.T, cfg network.Config) *network.Network {
	t.Helper()
	net := network.New(cfg)
	require.NoError(t, net.AddDense(2, 4, true))
	require.NoError(t, net.AddDense(4, 1, true))
	net.AddReLU()
	net.AddSigmoid()
	return net
}

// setXORWeights puts every unit in its active region: W1 = 0.5, b1 = 0.5,
// W2 = 0.25, b2 = 0, so the initial outputs are sigmoid(0.5), sigmoid(1),
// sigmoid(1), sigmoid(1.5).
func setXORWeights(t *testing.T, net *network.Network) {
	t.Helper()
	hidden, err := net.Dense(0)
	require.NoError(t, err)
	require.NoError(t, hidden.SetWeight(tensor.Full(tensor.Shape{4, 2}, 0.5)))
	require.NoError(t, hidden.SetBias(tensor.Full(tensor.Shape{4}, 0.5)))

	output, err := net.Dense(1)
	require.NoError(t, err)
	require.NoError(t, output.SetWeight(tensor.Full(tensor.Shape{1, 4}, 0.25)))
	require.NoError(t, output.SetBias(tensor.Zeros(tensor.Shape{1})))
}

func TestNetwork_XORLossDecreases(t *testing.T) {
	x, y := xorData(t)
	net := xorNetwork(t, network.Config{LearningRate: 0.01, Seed: 42})
	setXORWeights(t, net)

	history, err := net.Train(x, y, 100, false)
	require.NoError(t, err)
	require.Len(t, history, 100)

	assert.InDelta(t, 0.8255, history[0], 1e-3)
	assert.Less(t, history[99], history[0])
	for _, loss := range history {
		assert.False(t, math.IsNaN(loss))
	}
	assert.Equal(t, network.StateOptimized, net.State())
}

func TestNetwork_TrainDeterministic(t *testing.T) {
	x, y := xorData(t)

	a := xorNetwork(t, network.Config{LearningRate: 0.01, Seed: 7})
	b := xorNetwork(t, network.Config{LearningRate: 0.01, Seed: 7})

	ha, err := a.Train(x, y, 20, false)
	require.NoError(t, err)
	hb, err := b.Train(x, y, 20, false)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
}

func TestNetwork_Predict(t *testing.T) {
	x, _ := xorData(t)
	net := xorNetwork(t, network.Config{Seed: 3})

	p1, err := net.Predict(x)
	require.NoError(t, err)
	p2, err := net.Predict(x)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{4, 1}, p1.Shape())
	assert.True(t, p1.Equal(p2))
	for _, v := range p1.Data() {
		assert.True(t, v >= 0 && v <= 1, "prediction %v outside [0, 1]", v)
	}

	// Mutating a returned prediction must not leak into the network.
	p1.Fill(-1)
	p3, err := net.Predict(x)
	require.NoError(t, err)
	assert.True(t, p2.Equal(p3))
}

func TestNetwork_PredictLeavesPendingStep(t *testing.T) {
	x, y := xorData(t)
	batch := mustFromSlice(t, []float64{1, 1, 0, 1}, tensor.Shape{2, 2})

	interleaved := xorNetwork(t, network.Config{LearningRate: 0.01, Seed: 9})
	setXORWeights(t, interleaved)
	plain := xorNetwork(t, network.Config{LearningRate: 0.01, Seed: 9})
	setXORWeights(t, plain)

	// Predict between Forward and Backward keeps the cached batch.
	pred, err := interleaved.Forward(x)
	require.NoError(t, err)
	_, err = interleaved.Predict(batch)
	require.NoError(t, err)
	assert.Equal(t, network.StateForwarded, interleaved.State())
	require.NoError(t, interleaved.Backward(pred, y))

	// Predict between Backward and Optimize keeps the pending update.
	_, err = interleaved.Predict(batch)
	require.NoError(t, err)
	assert.Equal(t, network.StateBackpropagated, interleaved.State())
	require.NoError(t, interleaved.Optimize())

	_, err = plain.TrainStep(x, y)
	require.NoError(t, err)

	for i := 0; i < plain.NumDense(); i++ {
		want, err := plain.Dense(i)
		require.NoError(t, err)
		got, err := interleaved.Dense(i)
		require.NoError(t, err)
		assert.Equal(t, want.Weight().Data(), got.Weight().Data(), "dense %d weight", i)
		assert.Equal(t, want.Bias().Data(), got.Bias().Data(), "dense %d bias", i)
	}

	fresh := xorNetwork(t, network.Config{Seed: 9})
	_, err = fresh.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, network.StateBuilt, fresh.State())
	assert.ErrorIs(t, fresh.Optimize(), nn.ErrNoBackward)

	_, err = fresh.Predict(tensor.Zeros(tensor.Shape{4, 3}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = fresh.Predict(nil)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

// Seed 42 with Kaiming init leaves the output Dense non-positive on every
// XOR row, so the trailing ReLU blocks all gradient.
func TestNetwork_DeadOutputDetected(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	x, y := xorData(t)

	dead := xorNetwork(t, network.Config{Seed: 42, Logger: logger, LogEvery: 50})
	flow, err := dead.HasGradientFlow(x, y)
	require.NoError(t, err)
	assert.False(t, flow)
	assert.Equal(t, network.StateBuilt, dead.State())

	history, err := dead.Train(x, y, 100, true)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, history[0], 1e-12)
	assert.InDelta(t, math.Ln2, history[99], 1e-12)
	assert.Equal(t, 1, strings.Count(buf.String(), "no gradient reaches any dense layer"))
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	live := xorNetwork(t, network.Config{Seed: 42, Logger: logger, LogEvery: 50})
	setXORWeights(t, live)
	flow, err = live.HasGradientFlow(x, y)
	require.NoError(t, err)
	assert.True(t, flow)

	layer, err := live.Dense(0)
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 8), layer.WeightGrad().Data(), "gradients are zeroed afterwards")
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, layer.Weight().Data())

	_, err = live.Train(x, y, 10, true)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "no gradient reaches")

	_, err = live.HasGradientFlow(x, tensor.Zeros(tensor.Shape{1, 4}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, network.StateBuilt, live.State())
}

func TestNetwork_StateMachine(t *testing.T) {
	x, y := xorData(t)
	net := xorNetwork(t, network.Config{Seed: 1})
	assert.Equal(t, network.StateBuilt, net.State())

	err := net.Backward(tensor.Zeros(tensor.Shape{4, 1}), y)
	assert.ErrorIs(t, err, nn.ErrNoForward)

	err = net.Optimize()
	assert.ErrorIs(t, err, nn.ErrNoBackward)

	pred, err := net.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, network.StateForwarded, net.State())

	err = net.Optimize()
	assert.ErrorIs(t, err, nn.ErrNoBackward)

	require.NoError(t, net.Backward(pred, y))
	assert.Equal(t, network.StateBackpropagated, net.State())

	err = net.Backward(pred, y)
	assert.ErrorIs(t, err, nn.ErrNoForward)

	require.NoError(t, net.Optimize())
	assert.Equal(t, network.StateOptimized, net.State())

	err = net.Optimize()
	assert.ErrorIs(t, err, nn.ErrNoBackward)
}

func TestNetwork_AddStageResetsState(t *testing.T) {
	x, _ := xorData(t)
	net := network.New(network.Config{Seed: 1})
	require.NoError(t, net.AddDense(2, 2, true))

	_, err := net.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, network.StateForwarded, net.State())

	net.AddSigmoid()
	assert.Equal(t, network.StateBuilt, net.State())
}

func TestNetwork_AddDenseErrors(t *testing.T) {
	net := network.New(network.Config{})

	assert.ErrorIs(t, net.AddDense(0, 4, true), network.ErrInvalidSize)
	assert.ErrorIs(t, net.AddDense(2, -1, true), network.ErrInvalidSize)
	assert.Equal(t, 0, net.NumStages())

	require.NoError(t, net.AddDense(2, 4, true))
	net.AddReLU()
	assert.ErrorIs(t, net.AddDense(3, 1, true), tensor.ErrShapeMismatch)
	assert.Equal(t, 2, net.NumStages())
	assert.Equal(t, 1, net.NumDense())
}

func TestNetwork_ForwardErrors(t *testing.T) {
	net := xorNetwork(t, network.Config{})

	_, err := net.Forward(tensor.Zeros(tensor.Shape{4, 3}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, network.StateBuilt, net.State())

	_, err = net.Forward(nil)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = net.TrainStep(tensor.Zeros(tensor.Shape{4, 2}), tensor.Zeros(tensor.Shape{1, 4}))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = net.Train(tensor.Zeros(tensor.Shape{4, 2}), tensor.Zeros(tensor.Shape{4, 1}), -1, false)
	assert.ErrorIs(t, err, network.ErrInvalidSize)
}

func TestNetwork_GradientsMatchFiniteDifferences(t *testing.T) {
	net := network.New(network.Config{Seed: 11})
	require.NoError(t, net.AddDense(2, 3, true))
	net.AddReLU()
	require.NoError(t, net.AddDense(3, 1, true))
	net.AddSigmoid()

	x := mustFromSlice(t, []float64{0.3, -0.7, 1.2, 0.4, -0.5, 0.9}, tensor.Shape{3, 2})
	y := mustFromSlice(t, []float64{1, 0, 1}, tensor.Shape{3, 1})
	bce := nn.NewBCELoss()

	// Back-propagated gradients are those of the summed per-element loss.
	totalLoss := func() float64 {
		pred, err := net.Forward(x)
		require.NoError(t, err)
		perElement, err := bce.Forward(pred, y)
		require.NoError(t, err)
		return perElement.Sum()
	}

	pred, err := net.Forward(x)
	require.NoError(t, err)
	require.NoError(t, net.Backward(pred, y))

	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	for i := 0; i < net.NumDense(); i++ {
		layer, err := net.Dense(i)
		require.NoError(t, err)

		for _, p := range layer.Parameters() {
			analytic := p.Grad().Clone()
			values := p.Value().Data()
			for k := range values {
				orig := values[k]
				numeric := fd.Derivative(func(v float64) float64 {
					values[k] = v
					return totalLoss()
				}, orig, settings)
				values[k] = orig

				assert.InDelta(t, numeric, analytic.Data()[k], 1e-5,
					"dense %d %s[%d]", i, p.Name(), k)
			}
		}
	}
}

func TestNetwork_CheckFinite(t *testing.T) {
	build := func(checkFinite bool) (*network.Network, *nn.Dense) {
		net := network.New(network.Config{Seed: 1, CheckFinite: checkFinite})
		require.NoError(t, net.AddDense(1, 1, true))
		net.AddSigmoid()
		layer, err := net.Dense(0)
		require.NoError(t, err)
		require.NoError(t, layer.SetWeight(mustFromSlice(t, []float64{math.NaN()}, tensor.Shape{1, 1})))
		return net, layer
	}
	x := mustFromSlice(t, []float64{1}, tensor.Shape{1, 1})
	y := mustFromSlice(t, []float64{1}, tensor.Shape{1, 1})

	strict, layer := build(true)
	loss, err := strict.TrainStep(x, y)
	assert.ErrorIs(t, err, tensor.ErrNumericDegeneracy)
	assert.True(t, math.IsNaN(loss))
	assert.Equal(t, []float64{0}, layer.Bias().Data(), "parameters must be untouched")

	lenient, _ := build(false)
	loss, err = lenient.TrainStep(x, y)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(loss))
}

func TestNetwork_VerboseLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	x, y := xorData(t)
	net := xorNetwork(t, network.Config{Seed: 5, Logger: logger, LogEvery: 5})

	_, err := net.Train(x, y, 10, true)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "training progress"))
	assert.Contains(t, out, "epoch=5 ")
	assert.Contains(t, out, "epoch=10 ")
	assert.Contains(t, out, "epochs=10")
	assert.Contains(t, out, "loss=")

	buf.Reset()
	_, err = net.Train(x, y, 10, false)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestNetwork_Config(t *testing.T) {
	cfg := network.DefaultConfig()
	assert.InDelta(t, 0.001, cfg.LearningRate, 1e-15)
	assert.InDelta(t, 0.9, cfg.Beta1, 1e-15)
	assert.InDelta(t, 0.999, cfg.Beta2, 1e-15)
	assert.InDelta(t, 1e-8, cfg.Epsilon, 1e-20)
	assert.Equal(t, 10, cfg.LogEvery)
	assert.NotNil(t, cfg.Logger)
	assert.Equal(t, network.OptimizerAdam, cfg.Optimizer)

	net := network.New(network.Config{Optimizer: network.OptimizerSGD, LearningRate: 0.1})
	require.NoError(t, net.AddDense(2, 1, true))

	opt, err := net.Optimizer(0)
	require.NoError(t, err)
	assert.IsType(t, &optim.SGD{}, opt)
	assert.InDelta(t, 0.1, opt.LR(), 1e-15)

	_, err = net.Optimizer(1)
	assert.ErrorIs(t, err, tensor.ErrIndexOutOfRange)
	_, err = net.Dense(-1)
	assert.ErrorIs(t, err, tensor.ErrIndexOutOfRange)
}

func TestNetwork_SGDTrains(t *testing.T) {
	x, y := xorData(t)
	net := xorNetwork(t, network.Config{Optimizer: network.OptimizerSGD, LearningRate: 0.01})
	setXORWeights(t, net)

	history, err := net.Train(x, y, 50, false)
	require.NoError(t, err)
	assert.Less(t, history[49], history[0])
}

func TestNetwork_Summary(t *testing.T) {
	net := xorNetwork(t, network.Config{})
	summary := net.Summary()

	assert.Equal(t, 4, summary.NumStages())
	assert.Equal(t, 2, summary.NumDense)
	assert.Equal(t, 17, summary.TotalParameters)

	require.Len(t, summary.Stages, 4)
	assert.Equal(t, network.StageSummary{Name: "Dense(2 -> 4)", OutputWidth: 4, Parameters: 12}, summary.Stages[0])
	assert.Equal(t, network.StageSummary{Name: "Dense(4 -> 1)", OutputWidth: 1, Parameters: 5}, summary.Stages[1])
	assert.Equal(t, network.StageSummary{Name: "ReLU", OutputWidth: 1}, summary.Stages[2])
	assert.Equal(t, network.StageSummary{Name: "Sigmoid", OutputWidth: 1}, summary.Stages[3])

	text := summary.String()
	assert.Contains(t, text, "Total stages: 4")
	assert.Contains(t, text, "Dense layers: 2")
	assert.Contains(t, text, "Dense(2 -> 4)")
	assert.Contains(t, text, "Total parameters: 17")

	stages := net.Stages()
	assert.Equal(t, network.StageDense, stages[0].Kind())
	assert.Equal(t, 1, stages[1].DenseIndex())
	assert.Equal(t, -1, stages[2].DenseIndex())
	assert.Equal(t, "ReLU", stages[2].Activation().Name())
	assert.Nil(t, stages[0].Activation())
	assert.Equal(t, "Dense[1]", stages[1].String())
}

func TestStateAndKindStrings(t *testing.T) {
	assert.Equal(t, "built", network.StateBuilt.String())
	assert.Equal(t, "forwarded", network.StateForwarded.String())
	assert.Equal(t, "backpropagated", network.StateBackpropagated.String())
	assert.Equal(t, "optimized", network.StateOptimized.String())
	assert.Equal(t, "Sigmoid", network.StageSigmoid.String())
	assert.Equal(t, "sgd", network.OptimizerSGD.String())
	assert.Equal(t, "adam", network.OptimizerAdam.String())
}
