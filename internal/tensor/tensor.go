package tensor

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// NDArray is a strided, row-major multi-dimensional array of float64.
//
// The flat buffer always holds exactly Shape().NumElements() values and the
// strides are always derived from the shape. Arithmetic functions return new
// arrays; mutation happens only through Set/SetFlat and the *InPlace methods.
//
// Example:
//
//	a := tensor.New(tensor.Shape{2, 3})
//	_ = a.Set(5, 1, 2)
//	v, _ := a.At(1, 2) // 5
type NDArray struct {
	shape   Shape
	strides []int
	data    []float64
}

// New creates a zero-filled array with the given shape.
// Panics if the shape has a negative dimension.
func New(shape Shape) *NDArray {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	return &NDArray{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    make([]float64, shape.NumElements()),
	}
}

// FromSlice creates an array from a Go slice.
// The slice is copied into the array's memory.
func FromSlice(data []float64, shape Shape) (*NDArray, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(ErrShapeMismatch, err.Error())
	}
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	t := New(shape)
	copy(t.data, data)
	return t, nil
}

// Shape returns a copy of the array's shape. A nil array has a nil shape.
func (t *NDArray) Shape() Shape {
	if t == nil {
		return nil
	}
	return t.shape.Clone()
}

// Strides returns a copy of the array's row-major strides.
func (t *NDArray) Strides() []int {
	strides := make([]int, len(t.strides))
	copy(strides, t.strides)
	return strides
}

// Dims returns the number of dimensions.
func (t *NDArray) Dims() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *NDArray) NumElements() int {
	return len(t.data)
}

// Data returns the flat buffer.
//
// WARNING: the slice aliases the array; writes through it modify the array.
func (t *NDArray) Data() []float64 {
	return t.data
}

// FlattenIndex converts a multi-index into a flat buffer offset using the strides.
func (t *NDArray) FlattenIndex(indices ...int) (int, error) {
	if len(indices) != len(t.shape) {
		return 0, errors.Wrapf(ErrIndexOutOfRange,
			"expected %d indices, got %d", len(t.shape), len(indices))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			return 0, errors.Wrapf(ErrIndexOutOfRange,
				"index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i])
		}
		offset += idx * t.strides[i]
	}
	return offset, nil
}

// At returns the element at the given indices.
func (t *NDArray) At(indices ...int) (float64, error) {
	offset, err := t.FlattenIndex(indices...)
	if err != nil {
		return 0, err
	}
	return t.data[offset], nil
}

// Set sets the element at the given indices.
func (t *NDArray) Set(value float64, indices ...int) error {
	offset, err := t.FlattenIndex(indices...)
	if err != nil {
		return err
	}
	t.data[offset] = value
	return nil
}

// AtFlat returns the element at flat offset i.
func (t *NDArray) AtFlat(i int) (float64, error) {
	if i < 0 || i >= len(t.data) {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "flat index %d (size %d)", i, len(t.data))
	}
	return t.data[i], nil
}

// SetFlat sets the element at flat offset i.
func (t *NDArray) SetFlat(i int, value float64) error {
	if i < 0 || i >= len(t.data) {
		return errors.Wrapf(ErrIndexOutOfRange, "flat index %d (size %d)", i, len(t.data))
	}
	t.data[i] = value
	return nil
}

// Clone creates a deep copy of the array.
func (t *NDArray) Clone() *NDArray {
	c := New(t.shape)
	copy(c.data, t.data)
	return c
}

// Fill sets every element to value.
func (t *NDArray) Fill(value float64) {
	for i := range t.data {
		t.data[i] = value
	}
}

// Equal reports whether both arrays have the same shape and bitwise-equal elements.
// NaN elements never compare equal.
func (t *NDArray) Equal(other *NDArray) bool {
	if other == nil || !t.shape.Equal(other.shape) {
		return false
	}
	return floats.Equal(t.data, other.data)
}

// SameShape reports whether other has exactly the same shape.
func (t *NDArray) SameShape(other *NDArray) bool {
	return t != nil && other != nil && t.shape.Equal(other.shape)
}

// GoString implements fmt.GoStringer for %#v.
func (t *NDArray) GoString() string {
	return fmt.Sprintf("tensor.NDArray{shape: %v, data: %v}", t.shape, t.data)
}
