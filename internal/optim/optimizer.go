// Package optim implements the parameter update rules applied to Dense layers.
//
// This package provides:
//   - Optimizer interface: one Update call per layer per training step
//   - Adam: Adaptive Moment Estimation
//   - SGD: plain gradient descent with optional momentum
//
// An optimizer instance belongs to exactly one layer. Its state buffers are
// shaped on the first Update and every later call must pass arrays of the
// same shapes.
//
// Example usage:
//
//	opt := optim.NewAdam(optim.AdamConfig{LR: 0.01})
//
//	for epoch := range epochs {
//	    // forward + backward fill layer.WeightGrad() and layer.BiasGrad()
//	    if err := opt.Update(layer.Weight(), layer.WeightGrad(), layer.Bias(), layer.BiasGrad()); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Update modifies weight (and bias, when non-nil) in place from the matching
// gradients. bias and biasGrad must be both nil or both non-nil. Shapes are
// validated before anything is mutated, so a failed Update leaves the
// parameters and the optimizer state untouched.
type Optimizer interface {
	// Update applies one optimization step to a layer's parameters.
	Update(weight, weightGrad, bias, biasGrad *tensor.NDArray) error

	// LR returns the current learning rate.
	LR() float64

	// SetLR updates the learning rate.
	//
	// Useful for learning rate scheduling during training.
	SetLR(lr float64)
}

// checkUpdate validates an Update call against the state buffers allocated
// by earlier calls. weightState is nil until the first successful Update.
func checkUpdate(op string, weight, weightGrad, bias, biasGrad, weightState, biasState *tensor.NDArray) error {
	if err := checkPair(op, "weight", weight, weightGrad, weightState); err != nil {
		return err
	}

	if (bias == nil) != (biasGrad == nil) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "%s: bias %v vs bias grad %v",
			op, bias.Shape(), biasGrad.Shape())
	}
	if weightState != nil && (bias != nil) != (biasState != nil) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "%s: bias presence changed since first update", op)
	}
	if bias == nil {
		return nil
	}
	return checkPair(op, "bias", bias, biasGrad, biasState)
}

func checkPair(op, name string, param, grad, state *tensor.NDArray) error {
	if !param.SameShape(grad) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "%s: %s %v vs gradient %v",
			op, name, param.Shape(), grad.Shape())
	}
	if state != nil && !state.SameShape(param) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "%s: %s %v vs optimizer state %v",
			op, name, param.Shape(), state.Shape())
	}
	return nil
}
