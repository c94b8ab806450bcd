package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// A Parameter pairs a value with a gradient accumulator of the same shape.
// The gradient always exists; ZeroGrad resets it to zeros instead of
// dropping it so its shape keeps mirroring the value.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightArray)
//	w := weight.Value()
//	g := weight.Grad() // zeros until a backward pass writes into it
type Parameter struct {
	name  string
	value *tensor.NDArray
	grad  *tensor.NDArray
}

// NewParameter creates a new trainable parameter with a zeroed gradient.
func NewParameter(name string, value *tensor.NDArray) *Parameter {
	return &Parameter{
		name:  name,
		value: value,
		grad:  tensor.ZerosLike(value),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter array. Updates through it are visible to the owner.
func (p *Parameter) Value() *tensor.NDArray {
	return p.value
}

// Grad returns the gradient accumulator.
func (p *Parameter) Grad() *tensor.NDArray {
	return p.grad
}

// Set copies values into the parameter. The shape must match.
func (p *Parameter) Set(values *tensor.NDArray) error {
	if !p.value.SameShape(values) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "set %s: expected %v, got %v",
			p.name, p.value.Shape(), values.Shape())
	}
	copy(p.value.Data(), values.Data())
	return nil
}

// ZeroGrad resets the gradient to zeros.
func (p *Parameter) ZeroGrad() {
	p.grad.Fill(0)
}

// NumElements returns the number of scalar values in the parameter.
func (p *Parameter) NumElements() int {
	return p.value.NumElements()
}
