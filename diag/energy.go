// Package diag derives diagnostic observables from a Lagrangian and from
// pairs of trajectories: energy drift for integrator fidelity, and a
// logarithmic phase-divergence series for chaos detection.
package diag

import (
	"github.com/san-kum/pendlab/ad"
	"github.com/san-kum/pendlab/mech"
)

// EnergyFn derives the total-energy observable from a Lagrangian through the
// Legendre transform E = sum_i qdot_i dL/dqdot_i - L. For a kinetic-minus-
// potential Lagrangian this is kinetic plus potential energy.
func EnergyFn(l mech.Lagrangian) func(mech.State) float64 {
	return func(s mech.State) float64 {
		t := ad.Const(s.T)

		e := 0.0
		var value float64
		for i := range s.QDot {
			q := ad.Consts(s.Q)
			qdot := ad.Consts(s.QDot)
			qdot[i] = ad.Var1(s.QDot[i])
			r := l(t, q, qdot)
			e += s.QDot[i] * r.D1
			value = r.Re
		}
		return e - value
	}
}

// NewDriftMonitor returns the energy drift observable relative to an initial
// state: state -> energy(state) - energy(initial). For an exact derivation
// and a tight integrator tolerance it stays near machine epsilon.
func NewDriftMonitor(energy func(mech.State) float64, x0 mech.State) func(mech.State) float64 {
	e0 := energy(x0)
	return func(s mech.State) float64 {
		return energy(s) - e0
	}
}
