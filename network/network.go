// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package network provides a trainable feed-forward binary classifier.
//
// Example:
//
//	net := network.New(network.Config{LearningRate: 0.01, Seed: 42})
//	_ = net.AddDense(2, 4, true)
//	_ = net.AddDense(4, 1, true)
//	net.AddReLU()
//	net.AddSigmoid()
//
//	fmt.Println(net.Summary())
//	history, err := net.Train(X, y, 100, true)
//	predictions, err := net.Predict(X)
package network

import (
	"github.com/born-ml/mlp/internal/network"
)

// Network is a sequential feed-forward network trained with binary cross-entropy.
type Network = network.Network

// Config holds configuration for a Network.
type Config = network.Config

// OptimizerKind selects the per-layer update rule.
type OptimizerKind = network.OptimizerKind

// Optimizer kinds.
const (
	OptimizerAdam OptimizerKind = network.OptimizerAdam
	OptimizerSGD  OptimizerKind = network.OptimizerSGD
)

// Stage is one step of the forward pipeline.
type Stage = network.Stage

// StageKind identifies the variant of a stage.
type StageKind = network.StageKind

// Stage kinds.
const (
	StageDense   StageKind = network.StageDense
	StageReLU    StageKind = network.StageReLU
	StageSigmoid StageKind = network.StageSigmoid
)

// State tracks where the network is in the train-step cycle.
type State = network.State

// States.
const (
	StateBuilt          State = network.StateBuilt
	StateForwarded      State = network.StateForwarded
	StateBackpropagated State = network.StateBackpropagated
	StateOptimized      State = network.StateOptimized
)

// Summary is a structural description of a network.
type Summary = network.Summary

// StageSummary describes one stage of a network.
type StageSummary = network.StageSummary

// ErrInvalidSize is returned for non-positive layer sizes and epoch counts.
var ErrInvalidSize = network.ErrInvalidSize

// New creates an empty network. Zero Config fields take their defaults.
func New(cfg Config) *Network {
	return network.New(cfg)
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return network.DefaultConfig()
}
