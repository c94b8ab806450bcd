package network

import (
	"fmt"

	"github.com/born-ml/mlp/internal/nn"
)

// StageKind identifies the variant of a pipeline stage.
type StageKind int

const (
	// StageDense is a fully connected layer with its own optimizer.
	StageDense StageKind = iota
	// StageReLU applies max(0, x).
	StageReLU
	// StageSigmoid applies the logistic function.
	StageSigmoid
)

// String returns the stage kind name.
func (k StageKind) String() string {
	switch k {
	case StageDense:
		return "Dense"
	case StageReLU:
		return "ReLU"
	case StageSigmoid:
		return "Sigmoid"
	default:
		return "Unknown"
	}
}

// Stage is one step of the network's forward pipeline.
//
// A Dense stage refers to a layer by index; activation stages carry the
// stateless activation they apply. Stages are only created by the Network.
type Stage struct {
	kind       StageKind
	denseIndex int           // index into Network.dense, -1 for activations
	activation nn.Activation // nil for Dense stages
}

func denseStage(index int) Stage {
	return Stage{kind: StageDense, denseIndex: index}
}

func activationStage(kind StageKind, act nn.Activation) Stage {
	return Stage{kind: kind, denseIndex: -1, activation: act}
}

// Kind returns the stage variant.
func (s Stage) Kind() StageKind {
	return s.kind
}

// DenseIndex returns the Dense layer index, or -1 for activation stages.
func (s Stage) DenseIndex() int {
	return s.denseIndex
}

// Activation returns the activation applied by this stage, or nil for Dense stages.
func (s Stage) Activation() nn.Activation {
	return s.activation
}

// String implements fmt.Stringer.
func (s Stage) String() string {
	if s.kind == StageDense {
		return fmt.Sprintf("Dense[%d]", s.denseIndex)
	}
	return s.kind.String()
}

// State tracks where the network is in the train-step cycle.
//
//	Built -> Forwarded -> Backpropagated -> Optimized -> Forwarded -> ...
//
// Forward is accepted from any state. Backward requires Forwarded and
// Optimize requires Backpropagated.
type State int

const (
	// StateBuilt means no valid forward caches exist.
	StateBuilt State = iota
	// StateForwarded means caches hold the latest forward pass.
	StateForwarded
	// StateBackpropagated means every Dense layer holds fresh gradients.
	StateBackpropagated
	// StateOptimized means the gradients were consumed by an optimizer step.
	StateOptimized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StateForwarded:
		return "forwarded"
	case StateBackpropagated:
		return "backpropagated"
	case StateOptimized:
		return "optimized"
	default:
		return "unknown"
	}
}
