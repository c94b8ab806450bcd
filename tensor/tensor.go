// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/mlp/internal/tensor"
)

// Type aliases for public API

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// NDArray is a strided, row-major multi-dimensional array of float64.
type NDArray = tensor.NDArray

// Source is a seeded random number source for the random factories.
type Source = tensor.Source

// Sentinel errors.
var (
	ErrShapeMismatch     = tensor.ErrShapeMismatch
	ErrIndexOutOfRange   = tensor.ErrIndexOutOfRange
	ErrNumericDegeneracy = tensor.ErrNumericDegeneracy
)

// Construction

// New creates a zero-filled array. Panics on a negative dimension.
func New(shape Shape) *NDArray {
	return tensor.New(shape)
}

// FromSlice creates an array from a copy of data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice(data []float64, shape Shape) (*NDArray, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates an array filled with zeros.
func Zeros(shape Shape) *NDArray {
	return tensor.Zeros(shape)
}

// Ones creates an array filled with ones.
func Ones(shape Shape) *NDArray {
	return tensor.Ones(shape)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64) *NDArray {
	return tensor.Full(shape, value)
}

// ZerosLike creates a zero-filled array with the shape of t.
func ZerosLike(t *NDArray) *NDArray {
	return tensor.ZerosLike(t)
}

// OnesLike creates a one-filled array with the shape of t.
func OnesLike(t *NDArray) *NDArray {
	return tensor.OnesLike(t)
}

// Arange returns values from start (inclusive) to end (exclusive) by step.
func Arange(start, end, step float64) (*NDArray, error) {
	return tensor.Arange(start, end, step)
}

// Linspace returns steps evenly spaced values from start to end inclusive.
func Linspace(start, end float64, steps int) (*NDArray, error) {
	return tensor.Linspace(start, end, steps)
}

// Eye creates an n×n identity matrix.
func Eye(n int) *NDArray {
	return tensor.Eye(n)
}

// Diag creates a square matrix with values on the diagonal.
func Diag(values []float64) *NDArray {
	return tensor.Diag(values)
}

// Random

// NewSource creates a random source seeded with seed.
func NewSource(seed uint64) *Source {
	return tensor.NewSource(seed)
}

// Rand draws from U(0, 1).
func Rand(shape Shape, src *Source) *NDArray {
	return tensor.Rand(shape, src)
}

// Randn draws from N(0, 1).
func Randn(shape Shape, src *Source) *NDArray {
	return tensor.Randn(shape, src)
}

// Uniform draws from U(low, high).
func Uniform(shape Shape, low, high float64, src *Source) *NDArray {
	return tensor.Uniform(shape, low, high, src)
}

// Normal draws from N(mean, std²).
func Normal(shape Shape, mean, std float64, src *Source) *NDArray {
	return tensor.Normal(shape, mean, std, src)
}

// Arithmetic

// Add returns a + b element-wise. Shapes must be equal.
func Add(a, b *NDArray) (*NDArray, error) {
	return tensor.Add(a, b)
}

// Sub returns a - b element-wise. Shapes must be equal.
func Sub(a, b *NDArray) (*NDArray, error) {
	return tensor.Sub(a, b)
}

// Mul returns a * b element-wise. Shapes must be equal.
func Mul(a, b *NDArray) (*NDArray, error) {
	return tensor.Mul(a, b)
}

// Div returns a / b element-wise. Shapes must be equal.
func Div(a, b *NDArray) (*NDArray, error) {
	return tensor.Div(a, b)
}

// AddScalar returns t + s.
func AddScalar(t *NDArray, s float64) *NDArray {
	return tensor.AddScalar(t, s)
}

// SubScalar returns t - s.
func SubScalar(t *NDArray, s float64) *NDArray {
	return tensor.SubScalar(t, s)
}

// MulScalar returns t * s.
func MulScalar(t *NDArray, s float64) *NDArray {
	return tensor.MulScalar(t, s)
}

// DivScalar returns t / s.
func DivScalar(t *NDArray, s float64) *NDArray {
	return tensor.DivScalar(t, s)
}

// ScalarSub returns s - t.
func ScalarSub(s float64, t *NDArray) *NDArray {
	return tensor.ScalarSub(s, t)
}

// ScalarDiv returns s / t.
func ScalarDiv(s float64, t *NDArray) *NDArray {
	return tensor.ScalarDiv(s, t)
}

// Math

// Exp returns e^t element-wise.
func Exp(t *NDArray) *NDArray {
	return tensor.Exp(t)
}

// Sqrt returns √t element-wise.
func Sqrt(t *NDArray) *NDArray {
	return tensor.Sqrt(t)
}

// Log returns ln(t) element-wise.
func Log(t *NDArray) *NDArray {
	return tensor.Log(t)
}

// Square returns t² element-wise.
func Square(t *NDArray) *NDArray {
	return tensor.Square(t)
}

// Clamp limits every element to [lo, hi].
func Clamp(t *NDArray, lo, hi float64) *NDArray {
	return tensor.Clamp(t, lo, hi)
}

// Apply maps fn over every element.
func Apply(t *NDArray, fn func(float64) float64) *NDArray {
	return tensor.Apply(t, fn)
}
