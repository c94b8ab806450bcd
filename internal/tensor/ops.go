package tensor

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// In-place compound operations.
//
// Array-array forms require identical shapes; there is no broadcasting between
// arrays. Scalar forms apply the scalar to every element.

// AddInPlace performs t += other element-wise.
func (t *NDArray) AddInPlace(other *NDArray) error {
	if !t.SameShape(other) {
		return shapeMismatch("add", t.shape, shapeOf(other))
	}
	floats.Add(t.data, other.data)
	return nil
}

// SubInPlace performs t -= other element-wise.
func (t *NDArray) SubInPlace(other *NDArray) error {
	if !t.SameShape(other) {
		return shapeMismatch("sub", t.shape, shapeOf(other))
	}
	floats.Sub(t.data, other.data)
	return nil
}

// MulInPlace performs t *= other element-wise.
func (t *NDArray) MulInPlace(other *NDArray) error {
	if !t.SameShape(other) {
		return shapeMismatch("mul", t.shape, shapeOf(other))
	}
	floats.Mul(t.data, other.data)
	return nil
}

// DivInPlace performs t /= other element-wise.
// Division by zero follows IEEE 754 (Inf or NaN).
func (t *NDArray) DivInPlace(other *NDArray) error {
	if !t.SameShape(other) {
		return shapeMismatch("div", t.shape, shapeOf(other))
	}
	floats.Div(t.data, other.data)
	return nil
}

// AddScalarInPlace performs t += s.
func (t *NDArray) AddScalarInPlace(s float64) {
	floats.AddConst(s, t.data)
}

// SubScalarInPlace performs t -= s.
func (t *NDArray) SubScalarInPlace(s float64) {
	floats.AddConst(-s, t.data)
}

// MulScalarInPlace performs t *= s.
func (t *NDArray) MulScalarInPlace(s float64) {
	floats.Scale(s, t.data)
}

// DivScalarInPlace performs t /= s.
func (t *NDArray) DivScalarInPlace(s float64) {
	for i := range t.data {
		t.data[i] /= s
	}
}

// Neg returns -t as a new array.
func (t *NDArray) Neg() *NDArray {
	out := t.Clone()
	floats.Scale(-1, out.data)
	return out
}

// Sum returns the sum of all elements.
func (t *NDArray) Sum() float64 {
	return floats.Sum(t.data)
}

// Mean returns the arithmetic mean of all elements (NaN for an empty array).
func (t *NDArray) Mean() float64 {
	if len(t.data) == 0 {
		return math.NaN()
	}
	return floats.Sum(t.data) / float64(len(t.data))
}

// Array-array arithmetic.

// Add returns a + b element-wise.
func Add(a, b *NDArray) (*NDArray, error) {
	return binary("add", a, b, (*NDArray).AddInPlace)
}

// Sub returns a - b element-wise.
func Sub(a, b *NDArray) (*NDArray, error) {
	return binary("sub", a, b, (*NDArray).SubInPlace)
}

// Mul returns a * b element-wise (Hadamard product).
func Mul(a, b *NDArray) (*NDArray, error) {
	return binary("mul", a, b, (*NDArray).MulInPlace)
}

// Div returns a / b element-wise.
func Div(a, b *NDArray) (*NDArray, error) {
	return binary("div", a, b, (*NDArray).DivInPlace)
}

// Scalar arithmetic. These broadcast s across every element.

// AddScalar returns t + s. Also serves s + t.
func AddScalar(t *NDArray, s float64) *NDArray {
	out := t.Clone()
	out.AddScalarInPlace(s)
	return out
}

// SubScalar returns t - s.
func SubScalar(t *NDArray, s float64) *NDArray {
	out := t.Clone()
	out.SubScalarInPlace(s)
	return out
}

// MulScalar returns t * s. Also serves s * t.
func MulScalar(t *NDArray, s float64) *NDArray {
	out := t.Clone()
	out.MulScalarInPlace(s)
	return out
}

// DivScalar returns t / s.
func DivScalar(t *NDArray, s float64) *NDArray {
	out := t.Clone()
	out.DivScalarInPlace(s)
	return out
}

// ScalarSub returns s - t.
func ScalarSub(s float64, t *NDArray) *NDArray {
	return unary(t, func(x float64) float64 { return s - x })
}

// ScalarDiv returns s / t.
func ScalarDiv(s float64, t *NDArray) *NDArray {
	return unary(t, func(x float64) float64 { return s / x })
}

// Unary math. No domain checks: log and sqrt of non-positive values yield NaN/-Inf.

// Exp returns e^t element-wise.
func Exp(t *NDArray) *NDArray {
	return unary(t, math.Exp)
}

// Sqrt returns the element-wise square root.
func Sqrt(t *NDArray) *NDArray {
	return unary(t, math.Sqrt)
}

// Log returns the element-wise natural logarithm.
func Log(t *NDArray) *NDArray {
	return unary(t, math.Log)
}

// Square returns t*t element-wise.
func Square(t *NDArray) *NDArray {
	return unary(t, func(x float64) float64 { return x * x })
}

// Clamp limits every element to [lo, hi].
func Clamp(t *NDArray, lo, hi float64) *NDArray {
	return unary(t, func(x float64) float64 { return math.Max(lo, math.Min(hi, x)) })
}

// Apply returns fn applied to every element.
func Apply(t *NDArray, fn func(float64) float64) *NDArray {
	return unary(t, fn)
}

// AllFinite reports whether no element is NaN or ±Inf.
func (t *NDArray) AllFinite() bool {
	for _, v := range t.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func unary(t *NDArray, fn func(float64) float64) *NDArray {
	out := New(t.shape)
	for i, v := range t.data {
		out.data[i] = fn(v)
	}
	return out
}

func binary(op string, a, b *NDArray, inPlace func(dst, src *NDArray) error) (*NDArray, error) {
	if !a.SameShape(b) {
		return nil, shapeMismatch(op, shapeOf(a), shapeOf(b))
	}
	out := a.Clone()
	if err := inPlace(out, b); err != nil {
		return nil, err
	}
	return out, nil
}

func shapeOf(t *NDArray) Shape {
	if t == nil {
		return nil
	}
	return t.shape
}
