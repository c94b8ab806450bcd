package tensor

import "github.com/pkg/errors"

// Common errors.
//
// Callers match them with errors.Is; the returned errors wrap them with the
// operation name and the offending shapes or indices.
var (
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNumericDegeneracy = errors.New("non-finite value")
)

// shapeMismatch wraps ErrShapeMismatch for a binary operation.
func shapeMismatch(op string, a, b Shape) error {
	return errors.Wrapf(ErrShapeMismatch, "%s: %v vs %v", op, a, b)
}
