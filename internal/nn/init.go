package nn

import (
	"math"

	"github.com/born-ml/mlp/internal/tensor"
)

// fans returns (fan_in, fan_out) for a weight shape laid out as
// [fan_out, fan_in]. Rank-1 shapes use the single dimension for both.
func fans(shape tensor.Shape) (fanIn, fanOut int) {
	if len(shape) == 0 {
		return 1, 1
	}
	fanOut = shape[0]
	fanIn = shape[0]
	if len(shape) >= 2 {
		fanIn = shape[1]
	}
	return fanIn, fanOut
}

// XavierUniform (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers
// and suits sigmoid/tanh networks.
func XavierUniform(shape tensor.Shape, src *tensor.Source) *tensor.NDArray {
	fanIn, fanOut := fans(shape)
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.Uniform(shape, -bound, bound, src)
}

// XavierNormal draws from N(0, 2/(fan_in + fan_out)).
func XavierNormal(shape tensor.Shape, src *tensor.Source) *tensor.NDArray {
	fanIn, fanOut := fans(shape)
	std := math.Sqrt(2.0 / float64(fanIn+fanOut))
	return tensor.Normal(shape, 0, std, src)
}

// KaimingUniform (He) draws from U(-sqrt(6/fan_in), sqrt(6/fan_in)).
func KaimingUniform(shape tensor.Shape, src *tensor.Source) *tensor.NDArray {
	fanIn, _ := fans(shape)
	bound := math.Sqrt(6.0 / float64(fanIn))
	return tensor.Uniform(shape, -bound, bound, src)
}

// KaimingNormal (He) initialization for weights.
//
// Draws from N(0, 2/fan_in), the usual choice for layers followed by ReLU.
// This is the default initialization of Dense weights.
func KaimingNormal(shape tensor.Shape, src *tensor.Source) *tensor.NDArray {
	fanIn, _ := fans(shape)
	std := math.Sqrt(2.0 / float64(fanIn))
	return tensor.Normal(shape, 0, std, src)
}
