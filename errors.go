package spinhalf

import "github.com/pkg/errors"

// Failure signals raised by the basis and embedding routines.
var (
	// ErrSizeMismatch reports an operator or vector of incompatible dimension.
	ErrSizeMismatch = errors.New("size mismatch")
	// ErrOutOfBounds reports an invalid chain size, site, or magnetization.
	ErrOutOfBounds = errors.New("out of bounds")
)
