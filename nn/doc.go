// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the building blocks of a feed-forward network.
//
// # Overview
//
// This package contains:
//   - Dense: fully connected layer with hand-derived gradients
//   - ReLU, Sigmoid: element-wise activations
//   - BCELoss: binary cross-entropy with clamped predictions
//   - Xavier and Kaiming weight initializers
//
// Layers keep the input of their latest Forward and consume it in Backward,
// so Forward and Backward alternate one-to-one.
//
// # Basic Usage
//
//	src := tensor.NewSource(42)
//	layer := nn.NewDense(2, 1, true, src)
//	criterion := nn.NewBCELoss()
//
//	logits, err := layer.Forward(x)
//	pred := nn.NewSigmoid().Forward(logits)
//	loss, err := criterion.Mean(pred, y)
package nn
