// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and value.
func NewParameter(name string, value *tensor.NDArray) *Parameter {
	return nn.NewParameter(name, value)
}

// Ordering errors.
var (
	ErrNoForward  = nn.ErrNoForward
	ErrNoBackward = nn.ErrNoBackward
)

// Layers

// Dense represents a fully connected layer.
type Dense = nn.Dense

// NewDense creates a new Dense layer with Kaiming-normal weights.
//
// Example:
//
//	layer := nn.NewDense(784, 128, true, tensor.NewSource(42))
//	output, err := layer.Forward(input) // [batch, 784] -> [batch, 128]
func NewDense(inFeatures, outFeatures int, useBias bool, src *tensor.Source) *Dense {
	return nn.NewDense(inFeatures, outFeatures, useBias, src)
}

// Activations

// Activation is a stateless element-wise transform with a local derivative.
type Activation = nn.Activation

// CacheSource names the forward array an activation's Backward consumes.
type CacheSource = nn.CacheSource

// Cache sources.
const (
	PreActivation  CacheSource = nn.PreActivation
	PostActivation CacheSource = nn.PostActivation
)

// ReLU represents the ReLU activation function.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation.
func NewReLU() ReLU {
	return nn.NewReLU()
}

// Sigmoid represents the Sigmoid activation function.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a new Sigmoid activation.
func NewSigmoid() Sigmoid {
	return nn.NewSigmoid()
}

// Loss

// BCELoss represents binary cross-entropy loss.
type BCELoss = nn.BCELoss

// NewBCELoss creates a new binary cross-entropy loss.
func NewBCELoss() BCELoss {
	return nn.NewBCELoss()
}

// Initialization

// XavierUniform draws from U(±sqrt(6/(fan_in+fan_out))).
func XavierUniform(shape tensor.Shape, src *tensor.Source) *tensor.NDArray {
	return nn.XavierUniform(shape, src)
}

// XavierNormal draws from N(0, 2/(fan_in+fan_out)).
func XavierNormal(shape tensor.Shape, src *tensor.Source) *tensor.NDArray {
	return nn.XavierNormal(shape, src)
}

// KaimingUniform draws from U(±sqrt(6/fan_in)).
func KaimingUniform(shape tensor.Shape, src *tensor.Source) *tensor.NDArray {
	return nn.KaimingUniform(shape, src)
}

// KaimingNormal draws from N(0, 2/fan_in).
func KaimingNormal(shape tensor.Shape, src *tensor.Source) *tensor.NDArray {
	return nn.KaimingNormal(shape, src)
}
