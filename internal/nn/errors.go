package nn

import "github.com/pkg/errors"

// Ordering errors. Backward consumes what the latest Forward cached, and an
// optimizer step consumes what the latest Backward accumulated.
var (
	ErrNoForward  = errors.New("backward called without a preceding forward")
	ErrNoBackward = errors.New("optimize called without a preceding backward")
)
