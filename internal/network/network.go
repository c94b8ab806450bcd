// Package network assembles Dense layers and activations into a trainable
// feed-forward classifier.
//
// A Network is an ordered list of stages. Dense stages own a layer and an
// optimizer; ReLU and Sigmoid stages are parameter-free. Training is
// full-batch with binary cross-entropy:
//
//	net := network.New(network.Config{LearningRate: 0.01, Seed: 42})
//	_ = net.AddDense(2, 4, true)
//	_ = net.AddDense(4, 1, true)
//	net.AddReLU()
//	net.AddSigmoid()
//
//	history, err := net.Train(X, y, 100, true)
//	predictions, err := net.Predict(X)
//
// A Network is not safe for concurrent use.
package network

import (
	"log/slog"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/tensor"
)

// ErrInvalidSize is returned for non-positive layer sizes and epoch counts.
var ErrInvalidSize = errors.New("invalid size")

// Network is a sequential feed-forward network trained with binary cross-entropy.
type Network struct {
	cfg    Config
	src    *tensor.Source
	logger *slog.Logger

	stages     []Stage
	dense      []*nn.Dense
	optimizers []optim.Optimizer // one per Dense layer, same index
	loss       nn.BCELoss

	// activations[0] is the network input and activations[i+1] the output of
	// stage i. preActivations[i] is the input of stage i.
	activations    []*tensor.NDArray
	preActivations []*tensor.NDArray

	state State
}

// New creates an empty network. Zero Config fields take their defaults.
func New(cfg Config) *Network {
	cfg = cfg.withDefaults()
	return &Network{
		cfg:    cfg,
		src:    tensor.NewSource(cfg.Seed),
		logger: cfg.Logger,
		loss:   nn.NewBCELoss(),
	}
}

// AddDense appends a Dense layer and the optimizer that will update it.
//
// When a Dense layer already exists, inFeatures must equal the width the
// pipeline produces at this point.
func (n *Network) AddDense(inFeatures, outFeatures int, useBias bool) error {
	if inFeatures <= 0 || outFeatures <= 0 {
		return errors.Wrapf(ErrInvalidSize, "add dense: features must be positive, got in=%d out=%d",
			inFeatures, outFeatures)
	}
	if width := n.outputWidth(); width != 0 && width != inFeatures {
		return errors.Wrapf(tensor.ErrShapeMismatch, "add dense: previous stage produces %d features, layer expects %d",
			width, inFeatures)
	}

	n.dense = append(n.dense, nn.NewDense(inFeatures, outFeatures, useBias, n.src))
	n.optimizers = append(n.optimizers, n.cfg.newOptimizer())
	n.appendStage(denseStage(len(n.dense) - 1))
	return nil
}

// AddReLU appends a ReLU activation stage.
func (n *Network) AddReLU() {
	n.appendStage(activationStage(StageReLU, nn.NewReLU()))
}

// AddSigmoid appends a Sigmoid activation stage.
func (n *Network) AddSigmoid() {
	n.appendStage(activationStage(StageSigmoid, nn.NewSigmoid()))
}

func (n *Network) appendStage(s Stage) {
	n.stages = append(n.stages, s)
	n.resetCaches()
}

func (n *Network) resetCaches() {
	n.activations = n.activations[:0]
	n.preActivations = n.preActivations[:0]
	n.state = StateBuilt
}

// outputWidth returns the feature count of the last Dense layer, 0 if none.
func (n *Network) outputWidth() int {
	if len(n.dense) == 0 {
		return 0
	}
	return n.dense[len(n.dense)-1].OutFeatures()
}

// Forward runs input through every stage and returns the final output.
//
// The caches are rebuilt from scratch. On error they are discarded and the
// network returns to StateBuilt.
func (n *Network) Forward(input *tensor.NDArray) (*tensor.NDArray, error) {
	n.resetCaches()

	output, err := n.run("network forward", input, true)
	if err != nil {
		n.resetCaches()
		return nil, err
	}

	n.state = StateForwarded
	return output.Clone(), nil
}

// run feeds input through the stages. When record is set, every stage input
// and output is kept for Backward and Dense layers cache their inputs.
func (n *Network) run(op string, input *tensor.NDArray, record bool) (*tensor.NDArray, error) {
	if input == nil {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "%s: nil input", op)
	}

	current := input.Clone()
	if record {
		n.activations = append(n.activations, current)
	}

	for i, s := range n.stages {
		if record {
			n.preActivations = append(n.preActivations, current)
		}

		if s.kind == StageDense {
			layer := n.dense[s.denseIndex]
			forward := layer.Infer
			if record {
				forward = layer.Forward
			}
			out, err := forward(current)
			if err != nil {
				return nil, errors.WithMessagef(err, "%s: stage %d (%s)", op, i, s)
			}
			current = out
		} else {
			current = s.activation.Forward(current)
		}

		if record {
			n.activations = append(n.activations, current)
		}
	}
	return current, nil
}

// Backward back-propagates the BCE gradient of predictions against targets
// through every stage in reverse, leaving fresh gradients in each Dense layer.
//
// Requires a preceding Forward whose output is predictions.
func (n *Network) Backward(predictions, targets *tensor.NDArray) error {
	if n.state != StateForwarded {
		return errors.Wrapf(nn.ErrNoForward, "network backward: state is %s", n.state)
	}

	grad, err := n.loss.Backward(predictions, targets)
	if err != nil {
		return errors.WithMessage(err, "network backward")
	}

	for i := len(n.stages) - 1; i >= 0; i-- {
		s := n.stages[i]

		if s.kind == StageDense {
			grad, err = n.dense[s.denseIndex].Backward(grad)
			if err != nil {
				return errors.WithMessagef(err, "network backward: stage %d (%s)", i, s)
			}
			continue
		}

		cached := n.preActivations[i]
		if s.activation.Input() == nn.PostActivation {
			cached = n.activations[i+1]
		}
		if err := grad.MulInPlace(s.activation.Backward(cached)); err != nil {
			return errors.WithMessagef(err, "network backward: stage %d (%s)", i, s)
		}
	}

	n.state = StateBackpropagated
	return nil
}

// Optimize applies each Dense layer's optimizer to its weights and bias.
//
// Requires a preceding Backward.
func (n *Network) Optimize() error {
	if n.state != StateBackpropagated {
		return errors.Wrapf(nn.ErrNoBackward, "network optimize: state is %s", n.state)
	}

	for i, d := range n.dense {
		if err := n.optimizers[i].Update(d.Weight(), d.WeightGrad(), d.Bias(), d.BiasGrad()); err != nil {
			return errors.WithMessagef(err, "network optimize: dense %d", i)
		}
	}

	n.state = StateOptimized
	return nil
}

// ZeroGrad resets the gradients of every Dense layer.
func (n *Network) ZeroGrad() {
	for _, d := range n.dense {
		d.ZeroGrad()
	}
}

// TrainStep runs one full step: ZeroGrad, Forward, loss, Backward, Optimize.
// It returns the mean BCE loss computed before the update.
func (n *Network) TrainStep(input, targets *tensor.NDArray) (float64, error) {
	n.ZeroGrad()

	predictions, err := n.Forward(input)
	if err != nil {
		return 0, err
	}

	loss, err := n.loss.Mean(predictions, targets)
	if err != nil {
		return 0, errors.WithMessage(err, "train step")
	}
	if n.cfg.CheckFinite && (math.IsNaN(loss) || math.IsInf(loss, 0)) {
		return loss, errors.Wrapf(tensor.ErrNumericDegeneracy, "train step: loss is %v", loss)
	}

	if err := n.Backward(predictions, targets); err != nil {
		return loss, err
	}
	if err := n.Optimize(); err != nil {
		return loss, err
	}
	return loss, nil
}

// Train runs TrainStep on the full batch for the given number of epochs and
// returns the loss of every epoch. When verbose, progress is logged every
// Config.LogEvery epochs.
//
// When verbose and the first epoch leaves every Dense gradient at zero, a
// warning is logged: the output is dead and further epochs change nothing.
//
// On error the history up to the failing epoch is returned with the error.
func (n *Network) Train(input, targets *tensor.NDArray, epochs int, verbose bool) ([]float64, error) {
	if epochs < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "train: negative epochs %d", epochs)
	}

	history := make([]float64, 0, epochs)
	for epoch := 0; epoch < epochs; epoch++ {
		loss, err := n.TrainStep(input, targets)
		if err != nil {
			return history, errors.WithMessagef(err, "epoch %d/%d", epoch+1, epochs)
		}
		history = append(history, loss)

		if verbose && epoch == 0 && len(n.dense) > 0 && !n.gradientsNonZero() {
			n.logger.Warn("no gradient reaches any dense layer, loss cannot improve",
				slog.Int("epoch", epoch+1),
				slog.Float64("loss", loss),
			)
		}

		if verbose && (epoch+1)%n.cfg.LogEvery == 0 {
			n.logger.Info("training progress",
				slog.Int("epoch", epoch+1),
				slog.Int("epochs", epochs),
				slog.Float64("loss", loss),
			)
		}
	}
	return history, nil
}

// Predict computes the network output for input. It leaves parameters,
// gradients, caches and State untouched, so it may run between Forward,
// Backward and Optimize without disturbing a pending step.
func (n *Network) Predict(input *tensor.NDArray) (*tensor.NDArray, error) {
	return n.run("network predict", input, false)
}

// HasGradientFlow reports whether a forward and backward pass over input and
// targets yields a non-zero gradient in any Dense layer. A network whose
// trailing ReLU is inactive for every sample gets none and cannot train.
//
// Parameters are not updated. Gradients are zeroed and the network is left
// in StateBuilt.
func (n *Network) HasGradientFlow(input, targets *tensor.NDArray) (bool, error) {
	n.ZeroGrad()
	defer func() {
		n.ZeroGrad()
		n.resetCaches()
	}()

	predictions, err := n.Forward(input)
	if err != nil {
		return false, err
	}
	if err := n.Backward(predictions, targets); err != nil {
		return false, err
	}
	return n.gradientsNonZero(), nil
}

func (n *Network) gradientsNonZero() bool {
	nonZero := func(v float64) bool { return v != 0 }
	for _, d := range n.dense {
		for _, p := range d.Parameters() {
			if floats.Count(nonZero, p.Grad().Data()) > 0 {
				return true
			}
		}
	}
	return false
}

// Stages returns a copy of the stage list.
func (n *Network) Stages() []Stage {
	stages := make([]Stage, len(n.stages))
	copy(stages, n.stages)
	return stages
}

// NumStages returns the number of stages.
func (n *Network) NumStages() int {
	return len(n.stages)
}

// NumDense returns the number of Dense layers.
func (n *Network) NumDense() int {
	return len(n.dense)
}

// Dense returns the i-th Dense layer in insertion order.
func (n *Network) Dense(i int) (*nn.Dense, error) {
	if i < 0 || i >= len(n.dense) {
		return nil, errors.Wrapf(tensor.ErrIndexOutOfRange, "dense layer %d (have %d)", i, len(n.dense))
	}
	return n.dense[i], nil
}

// Optimizer returns the optimizer attached to the i-th Dense layer.
func (n *Network) Optimizer(i int) (optim.Optimizer, error) {
	if i < 0 || i >= len(n.optimizers) {
		return nil, errors.Wrapf(tensor.ErrIndexOutOfRange, "optimizer %d (have %d)", i, len(n.optimizers))
	}
	return n.optimizers[i], nil
}

// State returns the current train-step state.
func (n *Network) State() State {
	return n.state
}

// Config returns the effective configuration, defaults included.
func (n *Network) Config() Config {
	return n.cfg
}
