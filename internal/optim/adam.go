package optim

import (
	"math"

	"github.com/born-ml/mlp/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Weight and bias keep independent moment buffers but share the timestep,
// which advances once per Update call.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Beta1: 0.9,
//	    Beta2: 0.999,
//	    Eps:   1e-8,
//	})
//	err := optimizer.Update(layer.Weight(), layer.WeightGrad(), layer.Bias(), layer.BiasGrad())
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int // Timestep for bias correction

	mW, vW *tensor.NDArray // weight moments, nil until the first Update
	mB, vB *tensor.NDArray // bias moments, nil when the layer has no bias
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64 // Learning rate (default: 0.001)
	Beta1 float64 // First moment decay (default: 0.9)
	Beta2 float64 // Second moment decay (default: 0.999)
	Eps   float64 // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Zero fields take the defaults:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Beta1,
		beta2: config.Beta2,
		eps:   config.Eps,
	}
}

// Update performs a single Adam step on weight and, when present, bias.
//
// Moment buffers are allocated on the first call.
func (a *Adam) Update(weight, weightGrad, bias, biasGrad *tensor.NDArray) error {
	if err := checkUpdate("adam update", weight, weightGrad, bias, biasGrad, a.mW, a.mB); err != nil {
		return err
	}

	if a.mW == nil {
		a.mW = tensor.ZerosLike(weight)
		a.vW = tensor.ZerosLike(weight)
		if bias != nil {
			a.mB = tensor.ZerosLike(bias)
			a.vB = tensor.ZerosLike(bias)
		}
	}

	a.t++
	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))

	a.updateParameter(weight, weightGrad, a.mW, a.vW, biasCorrection1, biasCorrection2)
	if bias != nil {
		a.updateParameter(bias, biasGrad, a.mB, a.vB, biasCorrection1, biasCorrection2)
	}
	return nil
}

// updateParameter performs the Adam update for a single array.
func (a *Adam) updateParameter(param, grad, m, v *tensor.NDArray, biasCorrection1, biasCorrection2 float64) {
	paramData := param.Data()
	gradData := grad.Data()
	mData := m.Data()
	vData := v.Data()

	for i := range paramData {
		g := gradData[i]

		mData[i] = a.beta1*mData[i] + (1-a.beta1)*g
		vData[i] = a.beta2*vData[i] + (1-a.beta2)*g*g

		mHat := mData[i] / biasCorrection1
		vHat := vData[i] / biasCorrection2

		paramData[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
	}
}

// LR returns the current learning rate.
func (a *Adam) LR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// Step returns the number of updates applied so far.
func (a *Adam) Step() int {
	return a.t
}
