package tensor

import (
	"math"

	"github.com/pkg/errors"
)

// maxArangeLen bounds the element count Arange will allocate.
const maxArangeLen = 1 << 31

// Zeros creates an array filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4})
func Zeros(shape Shape) *NDArray {
	return New(shape)
}

// Ones creates an array filled with ones.
func Ones(shape Shape) *NDArray {
	return Full(shape, 1)
}

// Full creates an array filled with a specific value.
//
// Example:
//
//	t := tensor.Full(tensor.Shape{3, 3}, 3.14)
func Full(shape Shape, value float64) *NDArray {
	t := New(shape)
	t.Fill(value)
	return t
}

// ZerosLike creates a zero-filled array with the same shape as t.
func ZerosLike(t *NDArray) *NDArray {
	return New(t.shape)
}

// OnesLike creates a one-filled array with the same shape as t.
func OnesLike(t *NDArray) *NDArray {
	return Full(t.shape, 1)
}

// Rand creates an array with values uniformly distributed in [0, 1).
func Rand(shape Shape, src *Source) *NDArray {
	return Uniform(shape, 0, 1, src)
}

// Randn creates an array with values from the standard normal distribution.
func Randn(shape Shape, src *Source) *NDArray {
	return Normal(shape, 0, 1, src)
}

// RandLike creates a Rand array with the same shape as t.
func RandLike(t *NDArray, src *Source) *NDArray {
	return Rand(t.shape, src)
}

// RandnLike creates a Randn array with the same shape as t.
func RandnLike(t *NDArray, src *Source) *NDArray {
	return Randn(t.shape, src)
}

// Uniform creates an array with values uniformly distributed in [low, high).
func Uniform(shape Shape, low, high float64, src *Source) *NDArray {
	dist := src.uniform(low, high)
	t := New(shape)
	for i := range t.data {
		t.data[i] = dist.Rand()
	}
	return t
}

// Normal creates an array with values drawn from N(mean, std²).
func Normal(shape Shape, mean, std float64, src *Source) *NDArray {
	dist := src.normal(mean, std)
	t := New(shape)
	for i := range t.data {
		t.data[i] = dist.Rand()
	}
	return t
}

// Arange creates a 1-D array with values from start to end (exclusive) by step.
//
// Example:
//
//	t, _ := tensor.Arange(0, 10, 2) // [0 2 4 6 8]
func Arange(start, end, step float64) (*NDArray, error) {
	for _, v := range []float64{start, end, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrNumericDegeneracy, "arange: start=%v end=%v step=%v", start, end, step)
		}
	}
	if step <= 0 {
		return nil, errors.Errorf("arange: step must be positive, got %v", step)
	}

	count := math.Ceil((end - start) / step)
	if count <= 0 {
		return New(Shape{0}), nil
	}
	if count > maxArangeLen {
		return nil, errors.Errorf("arange: %v elements exceeds limit %d", count, maxArangeLen)
	}

	t := New(Shape{int(count)})
	for i := range t.data {
		t.data[i] = start + float64(i)*step
	}
	return t, nil
}

// Linspace creates a 1-D array of steps evenly spaced values over [start, end].
func Linspace(start, end float64, steps int) (*NDArray, error) {
	if steps < 0 {
		return nil, errors.Errorf("linspace: steps must be non-negative, got %d", steps)
	}
	t := New(Shape{steps})
	switch steps {
	case 0:
	case 1:
		t.data[0] = start
	default:
		delta := (end - start) / float64(steps-1)
		for i := range t.data {
			t.data[i] = start + float64(i)*delta
		}
	}
	return t, nil
}

// Eye creates an n×n identity matrix.
func Eye(n int) *NDArray {
	t := New(Shape{n, n})
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t
}

// Diag creates a square matrix with values on its diagonal.
func Diag(values []float64) *NDArray {
	n := len(values)
	t := New(Shape{n, n})
	for i, v := range values {
		t.data[i*n+i] = v
	}
	return t
}
