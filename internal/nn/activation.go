package nn

import (
	"math"

	"github.com/born-ml/mlp/internal/tensor"
)

// CacheSource names the forward-pass array an activation's Backward consumes.
type CacheSource int

const (
	// PreActivation is the input the activation received during forward.
	PreActivation CacheSource = iota
	// PostActivation is the output the activation produced during forward.
	PostActivation
)

// String returns a human-readable name for the cache source.
func (c CacheSource) String() string {
	switch c {
	case PreActivation:
		return "pre-activation"
	case PostActivation:
		return "post-activation"
	default:
		return "unknown"
	}
}

// Activation is a stateless, parameter-free element-wise transform.
//
// Backward returns the local derivative, not the upstream gradient times the
// derivative; the caller multiplies it element-wise into the gradient flowing
// back. Which cached array Backward expects is declared by Input, since ReLU
// needs the pre-activation x while Sigmoid is cheapest in terms of its output y.
type Activation interface {
	// Name returns the activation name used in summaries.
	Name() string

	// Forward applies the activation element-wise.
	Forward(x *tensor.NDArray) *tensor.NDArray

	// Backward returns the local derivative given the cached array named by Input.
	Backward(cached *tensor.NDArray) *tensor.NDArray

	// Input reports which cached forward array Backward expects.
	Input() CacheSource
}

// ReLU is a Rectified Linear Unit activation.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU struct{}

// NewReLU creates a new ReLU activation.
func NewReLU() ReLU {
	return ReLU{}
}

// Name implements Activation.
func (ReLU) Name() string { return "ReLU" }

// Forward applies f(x) = max(0, x). Negative zero maps to zero.
func (ReLU) Forward(x *tensor.NDArray) *tensor.NDArray {
	return tensor.Apply(x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Backward returns 1 where x > 0 and 0 elsewhere (including x == 0).
// x is the pre-activation input.
func (ReLU) Backward(x *tensor.NDArray) *tensor.NDArray {
	return tensor.Apply(x, func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
}

// Input implements Activation.
func (ReLU) Input() CacheSource { return PreActivation }

// Sigmoid is a logistic activation.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
//
// Sigmoid squashes values to the range (0, 1), making it the usual output
// activation for binary classification.
type Sigmoid struct{}

// NewSigmoid creates a new Sigmoid activation.
func NewSigmoid() Sigmoid {
	return Sigmoid{}
}

// Name implements Activation.
func (Sigmoid) Name() string { return "Sigmoid" }

// Forward applies σ(x) = 1 / (1 + exp(-x)).
func (Sigmoid) Forward(x *tensor.NDArray) *tensor.NDArray {
	return tensor.Apply(x, func(v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	})
}

// Backward returns y * (1 - y), where y is the sigmoid output.
func (Sigmoid) Backward(y *tensor.NDArray) *tensor.NDArray {
	return tensor.Apply(y, func(v float64) float64 {
		return v * (1 - v)
	})
}

// Input implements Activation.
func (Sigmoid) Input() CacheSource { return PostActivation }
