package engine

import "errors"

var (
	// ErrInvalidOperand is returned when a vector argument has a NaN or
	// infinite component
	ErrInvalidOperand = errors.New("vector operand must have finite components")

	// ErrInvalidConstruction is returned by NewActor for non-finite vectors
	// or a size that is not positive on both axes
	ErrInvalidConstruction = errors.New("actor requires finite vectors and a positive size")

	// ErrInvalidArgument is returned when a required actor argument is nil
	ErrInvalidArgument = errors.New("actor argument is required")
)
