package mech

import (
	"fmt"
	"math"
)

// State is a point in extended phase space: time, generalized coordinates,
// and generalized velocities. Q and QDot always have the same length.
type State struct {
	T    float64
	Q    []float64
	QDot []float64
}

// NewState builds a state at t=0 from coordinate and velocity slices.
func NewState(q, qdot []float64) State {
	return State{Q: q, QDot: qdot}
}

func (s State) Clone() State {
	c := State{T: s.T, Q: make([]float64, len(s.Q)), QDot: make([]float64, len(s.QDot))}
	copy(c.Q, s.Q)
	copy(c.QDot, s.QDot)
	return c
}

// Dof returns the number of generalized coordinates.
func (s State) Dof() int { return len(s.Q) }

// Validate rejects states with mismatched coordinate/velocity shapes or
// non-finite entries.
func (s State) Validate() error {
	if len(s.Q) == 0 {
		return fmt.Errorf("%w: empty coordinate tuple", ErrInvalidParameters)
	}
	if len(s.Q) != len(s.QDot) {
		return fmt.Errorf("%w: %d coordinates vs %d velocities",
			ErrInvalidParameters, len(s.Q), len(s.QDot))
	}
	if !s.IsFinite() {
		return fmt.Errorf("%w: non-finite state entry", ErrInvalidParameters)
	}
	return nil
}

func (s State) IsFinite() bool {
	if math.IsNaN(s.T) || math.IsInf(s.T, 0) {
		return false
	}
	for _, v := range s.Q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	for _, v := range s.QDot {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
