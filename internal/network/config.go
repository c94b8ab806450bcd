package network

import (
	"log/slog"

	"github.com/born-ml/mlp/internal/optim"
)

// OptimizerKind selects the update rule the network attaches to each Dense layer.
type OptimizerKind int

const (
	// OptimizerAdam attaches an Adam optimizer per Dense layer (default).
	OptimizerAdam OptimizerKind = iota
	// OptimizerSGD attaches plain gradient descent (with optional momentum).
	OptimizerSGD
)

// String returns the lower-case optimizer name.
func (k OptimizerKind) String() string {
	switch k {
	case OptimizerAdam:
		return "adam"
	case OptimizerSGD:
		return "sgd"
	default:
		return "unknown"
	}
}

// Config holds configuration for a Network.
//
// Zero fields take the defaults listed next to them.
type Config struct {
	LearningRate float64 // Learning rate for every layer optimizer (default: 0.001)
	Beta1        float64 // Adam first moment decay (default: 0.9)
	Beta2        float64 // Adam second moment decay (default: 0.999)
	Epsilon      float64 // Adam numerical stability term (default: 1e-8)
	Momentum     float64 // SGD momentum factor (default: 0)

	Optimizer OptimizerKind // Update rule (default: OptimizerAdam)

	// Seed drives Dense weight initialization. Two networks built with the
	// same seed and the same sequence of AddDense calls start identical.
	Seed uint64

	Logger   *slog.Logger // Training progress logger (default: slog.Default())
	LogEvery int          // Log every N epochs when Train is verbose (default: 10)

	// CheckFinite makes TrainStep fail with ErrNumericDegeneracy when the loss
	// is NaN or infinite, before any parameter is touched. Off by default:
	// non-finite values then propagate silently.
	CheckFinite bool
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.LearningRate == 0 {
		c.LearningRate = 0.001
	}
	if c.Beta1 == 0 {
		c.Beta1 = 0.9
	}
	if c.Beta2 == 0 {
		c.Beta2 = 0.999
	}
	if c.Epsilon == 0 {
		c.Epsilon = 1e-8
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 10
	}
	return c
}

// newOptimizer builds the per-layer optimizer described by the config.
func (c Config) newOptimizer() optim.Optimizer {
	if c.Optimizer == OptimizerSGD {
		return optim.NewSGD(optim.SGDConfig{
			LR:       c.LearningRate,
			Momentum: c.Momentum,
		})
	}
	return optim.NewAdam(optim.AdamConfig{
		LR:    c.LearningRate,
		Beta1: c.Beta1,
		Beta2: c.Beta2,
		Eps:   c.Epsilon,
	})
}
