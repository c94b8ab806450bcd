package tensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStrides(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  []int
	}{
		{"scalar", Shape{}, []int{}},
		{"vector", Shape{5}, []int{1}},
		{"matrix", Shape{2, 3}, []int{3, 1}},
		{"rank3", Shape{4, 2, 3}, []int{6, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.ComputeStrides())
			assert.Equal(t, tt.want, New(tt.shape).Strides())
		})
	}
}

func TestNew_ZeroFilled(t *testing.T) {
	a := New(Shape{2, 3})

	assert.Equal(t, 6, a.NumElements())
	assert.Equal(t, 2, a.Dims())
	for _, v := range a.Data() {
		assert.Zero(t, v)
	}
}

func TestNew_ShapeIsCopied(t *testing.T) {
	shape := Shape{2, 2}
	a := New(shape)
	shape[0] = 7

	assert.Equal(t, Shape{2, 2}, a.Shape())

	got := a.Shape()
	got[1] = 9
	assert.Equal(t, Shape{2, 2}, a.Shape(), "Shape() must return a copy")
}

func TestFromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	a, err := FromSlice(data, Shape{2, 3})
	require.NoError(t, err)

	data[0] = 100
	v, err := a.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "FromSlice must copy its input")
}

func TestFromSlice_LengthMismatch(t *testing.T) {
	_, err := FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestFromSlice_NegativeDim(t *testing.T) {
	_, err := FromSlice(nil, Shape{-1})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFlattenIndex(t *testing.T) {
	a := New(Shape{2, 3})

	off, err := a.FlattenIndex(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, off)

	off, err = a.FlattenIndex(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, off)

	b := New(Shape{4, 2, 3})
	off, err = b.FlattenIndex(3, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3*6+1*3+2, off)
}

func TestFlattenIndex_OutOfRange(t *testing.T) {
	a := New(Shape{2, 3})

	tests := []struct {
		name    string
		indices []int
	}{
		{"row too large", []int{2, 0}},
		{"col too large", []int{0, 3}},
		{"negative", []int{-1, 0}},
		{"too few", []int{1}},
		{"too many", []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.FlattenIndex(tt.indices...)
			require.ErrorIs(t, err, ErrIndexOutOfRange)

			_, err = a.At(tt.indices...)
			require.ErrorIs(t, err, ErrIndexOutOfRange)

			require.ErrorIs(t, a.Set(1, tt.indices...), ErrIndexOutOfRange)
		})
	}
}

func TestSetAt(t *testing.T) {
	a := New(Shape{2, 3})
	require.NoError(t, a.Set(7.5, 1, 1))

	v, err := a.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)

	flat, err := a.AtFlat(4)
	require.NoError(t, err)
	assert.Equal(t, 7.5, flat)
}

func TestFlatAccess(t *testing.T) {
	a := New(Shape{3})
	require.NoError(t, a.SetFlat(2, 4))

	v, err := a.AtFlat(2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	_, err = a.AtFlat(3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.ErrorIs(t, a.SetFlat(-1, 0), ErrIndexOutOfRange)
}

func TestScalarArray(t *testing.T) {
	s := New(Shape{})
	assert.Equal(t, 1, s.NumElements())

	require.NoError(t, s.Set(3))
	v, err := s.At()
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestClone_IsDeep(t *testing.T) {
	a, err := FromSlice([]float64{1, 2}, Shape{2})
	require.NoError(t, err)

	c := a.Clone()
	require.NoError(t, c.SetFlat(0, 9))

	v, _ := a.AtFlat(0)
	assert.Equal(t, 1.0, v)
	assert.False(t, a.Equal(c))
}

func TestEqual(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	b, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	c, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{4})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "same data, different shape")
	assert.False(t, a.Equal(nil))
}

func TestString(t *testing.T) {
	v, _ := FromSlice([]float64{1, 2.5}, Shape{2})
	assert.Equal(t, "NDArray(shape=[2], data=[1.0000, 2.5000])", v.String())

	m, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	assert.Equal(t, "NDArray(shape=[2, 2], data=\n[[1.0000, 2.0000],\n [3.0000, 4.0000]])", m.String())

	big := Ones(Shape{2, 3, 2})
	assert.Contains(t, big.String(), ", ...]")
}
