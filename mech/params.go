package mech

import "fmt"

// Default physical constants for the reduced-arity entry points.
const (
	DefaultMass1   = 1.0
	DefaultMass2   = 3.0
	DefaultLength1 = 1.0
	DefaultLength2 = 0.9
	DefaultGravity = 9.8
)

// Params are the immutable physical constants of a two-link pendulum.
// Shared read-only across all components; never mutated during a run.
type Params struct {
	M1, M2 float64
	L1, L2 float64
	G      float64
}

func DefaultParams() Params {
	return Params{
		M1: DefaultMass1, M2: DefaultMass2,
		L1: DefaultLength1, L2: DefaultLength2,
		G: DefaultGravity,
	}
}

func (p Params) Validate() error {
	if p.M1 <= 0 || p.M2 <= 0 {
		return fmt.Errorf("%w: masses must be positive (m1=%g, m2=%g)",
			ErrInvalidParameters, p.M1, p.M2)
	}
	if p.L1 <= 0 || p.L2 <= 0 {
		return fmt.Errorf("%w: lengths must be positive (l1=%g, l2=%g)",
			ErrInvalidParameters, p.L1, p.L2)
	}
	return nil
}
