// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for n-dimensional float64 arrays.
//
// # Overview
//
// NDArray is a dense, row-major array with value semantics: arithmetic
// returns new arrays and mutation happens only through Set, SetFlat and the
// *InPlace methods. Element-wise operations between arrays require equal
// shapes; only scalars broadcast.
//
// # Basic Usage
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	y := tensor.Ones(tensor.Shape{2, 2})
//	z, err := tensor.Add(x, y)   // [[2, 3], [4, 5]]
//	w := tensor.MulScalar(z, 2)  // [[4, 6], [8, 10]]
//
// # Random Arrays
//
// Random factories take an explicit Source so results are reproducible:
//
//	src := tensor.NewSource(42)
//	noise := tensor.Randn(tensor.Shape{3, 3}, src)
//
// # Errors
//
// Failing operations return errors wrapping ErrShapeMismatch or
// ErrIndexOutOfRange; test them with errors.Is.
package tensor
