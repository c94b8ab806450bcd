package nn

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/tensor"
)

// bceEpsilon bounds predictions away from 0 and 1 before taking logs.
const bceEpsilon = 1e-7

// BCELoss computes binary cross-entropy.
//
// Per element, with p = clamp(y_pred, eps, 1-eps):
//
//	Loss     = -(y*log(p) + (1-y)*log(1-p))
//	Gradient = (p - y) / (p*(1-p))
//
// The clamp keeps log and the division finite for saturated predictions, at
// the cost of a slightly biased gradient near 0 and 1.
//
// Example:
//
//	criterion := nn.NewBCELoss()
//	perElement, err := criterion.Forward(predictions, targets)
//	loss, err := criterion.Mean(predictions, targets)
type BCELoss struct{}

// NewBCELoss creates a new binary cross-entropy loss function.
func NewBCELoss() BCELoss {
	return BCELoss{}
}

// Forward returns the per-element loss with the same shape as predictions.
func (BCELoss) Forward(predictions, targets *tensor.NDArray) (*tensor.NDArray, error) {
	return bceMap("bce forward", predictions, targets, func(p, y float64) float64 {
		return -(y*math.Log(p) + (1-y)*math.Log(1-p))
	})
}

// Backward returns dLoss/dPrediction per element, the seed of back-propagation.
func (BCELoss) Backward(predictions, targets *tensor.NDArray) (*tensor.NDArray, error) {
	return bceMap("bce backward", predictions, targets, func(p, y float64) float64 {
		return (p - y) / (p * (1 - p))
	})
}

// Mean returns the per-element loss averaged over every element.
func (l BCELoss) Mean(predictions, targets *tensor.NDArray) (float64, error) {
	perElement, err := l.Forward(predictions, targets)
	if err != nil {
		return 0, err
	}
	return perElement.Mean(), nil
}

func bceMap(op string, predictions, targets *tensor.NDArray, fn func(p, y float64) float64) (*tensor.NDArray, error) {
	if !predictions.SameShape(targets) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "%s: predictions %v vs targets %v",
			op, predictions.Shape(), targets.Shape())
	}

	out := tensor.ZerosLike(predictions)
	pred, target, dst := predictions.Data(), targets.Data(), out.Data()
	for i := range dst {
		p := math.Max(bceEpsilon, math.Min(1-bceEpsilon, pred[i]))
		dst[i] = fn(p, target[i])
	}
	return out, nil
}
