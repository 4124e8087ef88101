package translate

import "errors"

var (
	// ErrUnsupportedOperation is returned for a composite object kind that
	// has no expansion.
	ErrUnsupportedOperation = errors.New("unsupported composite operation")

	// ErrInvalidTable is returned for a piecewise-linear table that has
	// fewer than 3 points or mismatched x/y counts.
	ErrInvalidTable = errors.New("invalid piecewise-linear table")
)
