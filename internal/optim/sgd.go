package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/mlp/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	lr       float64
	momentum float64

	velW, velB *tensor.NDArray // allocated on the first Update when momentum > 0
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// Update applies one gradient descent step to weight and, when present, bias.
func (s *SGD) Update(weight, weightGrad, bias, biasGrad *tensor.NDArray) error {
	if err := checkUpdate("sgd update", weight, weightGrad, bias, biasGrad, s.velW, s.velB); err != nil {
		return err
	}

	if s.momentum == 0 {
		floats.AddScaled(weight.Data(), -s.lr, weightGrad.Data())
		if bias != nil {
			floats.AddScaled(bias.Data(), -s.lr, biasGrad.Data())
		}
		return nil
	}

	if s.velW == nil {
		s.velW = tensor.ZerosLike(weight)
		if bias != nil {
			s.velB = tensor.ZerosLike(bias)
		}
	}
	s.updateWithMomentum(weight, weightGrad, s.velW)
	if bias != nil {
		s.updateWithMomentum(bias, biasGrad, s.velB)
	}
	return nil
}

// updateWithMomentum performs velocity = momentum*velocity + grad, param -= lr*velocity.
func (s *SGD) updateWithMomentum(param, grad, velocity *tensor.NDArray) {
	vel := velocity.Data()
	floats.Scale(s.momentum, vel)
	floats.Add(vel, grad.Data())
	floats.AddScaled(param.Data(), -s.lr, vel)
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

var (
	_ Optimizer = (*Adam)(nil)
	_ Optimizer = (*SGD)(nil)
)
