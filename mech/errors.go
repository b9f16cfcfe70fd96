package mech

import "errors"

// Domain errors shared across the simulation pipeline.
var (
	// ErrInvalidParameters indicates a non-positive step size or horizon,
	// or mismatched coordinate/velocity tuple shapes. Rejected before any
	// computation starts.
	ErrInvalidParameters = errors.New("mech: invalid parameters")

	// ErrDegenerateSystem indicates a singular effective-mass matrix during
	// equation-of-motion derivation. Fatal; never retried.
	ErrDegenerateSystem = errors.New("mech: degenerate system (singular mass matrix)")

	// ErrNumericalInstability indicates the adaptive integration substep
	// collapsed below the minimum while trying to meet the error tolerance.
	// Aborts the run; samples already observed remain valid.
	ErrNumericalInstability = errors.New("mech: numerical instability (step size below minimum)")
)
