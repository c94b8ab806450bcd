// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the update rules for Dense layer parameters.
//
// # Overview
//
// This package contains:
//   - Adam: Adaptive Moment Estimation with bias correction
//   - SGD: gradient descent with optional momentum
//   - Optimizer interface for custom optimizers
//
// Each optimizer instance serves a single layer; its state buffers are
// shaped by the first Update call.
//
// # Basic Usage
//
//	optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.001})
//
//	for epoch := range 10 {
//	    // forward and backward fill the layer gradients
//	    err := optimizer.Update(layer.Weight(), layer.WeightGrad(), layer.Bias(), layer.BiasGrad())
//	}
package optim
