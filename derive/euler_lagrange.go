// Package derive turns a Lagrangian into equations of motion.
//
// The Euler-Lagrange condition d/dt(dL/dqdot) - dL/dq = 0 is an implicit
// second-order system. Expanding the total time derivative along a path
// q(t) gives
//
//	M(q,qdot) qddot = dL/dq - C(q,qdot) qdot - d2L/dt dqdot
//
// with M = d2L/dqdot dqdot (the effective mass matrix) and
// C_ij = d2L/dq_j dqdot_i. All partials are exact, extracted from the
// Lagrangian by hyper-dual seeding; nothing is finite-differenced.
package derive

import (
	"fmt"

	"github.com/san-kum/pendlab/ad"
	"github.com/san-kum/pendlab/mech"
)

// RHS is an explicit first-order state-derivative function. The returned
// state holds the derivative (1, qdot, qddot) with the time slot fixed at 1.
type RHS func(s mech.State) (mech.State, error)

// partials evaluates every derivative of the Lagrangian the Euler-Lagrange
// system needs at one state: the position gradient, the mass matrix, the
// position-velocity coupling matrix, and the explicit time dependence.
func partials(l mech.Lagrangian, s mech.State) (grad []float64, mass, cor [][]float64, tdep []float64) {
	n := s.Dof()
	t := ad.Const(s.T)

	grad = make([]float64, n)
	tdep = make([]float64, n)
	mass = make([][]float64, n)
	cor = make([][]float64, n)

	for i := 0; i < n; i++ {
		q := ad.Consts(s.Q)
		qdot := ad.Consts(s.QDot)
		q[i] = ad.Var1(s.Q[i])
		grad[i] = l(t, q, qdot).D1
	}

	for i := 0; i < n; i++ {
		mass[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			q := ad.Consts(s.Q)
			qdot := ad.Consts(s.QDot)
			if i == j {
				qdot[i] = ad.Var12(s.QDot[i])
			} else {
				qdot[i] = ad.Var1(s.QDot[i])
				qdot[j] = ad.Var2(s.QDot[j])
			}
			mass[i][j] = l(t, q, qdot).D12
		}
	}
	// The mass matrix is symmetric; mirror the lower triangle.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			mass[i][j] = mass[j][i]
		}
	}

	for i := 0; i < n; i++ {
		cor[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			q := ad.Consts(s.Q)
			qdot := ad.Consts(s.QDot)
			qdot[i] = ad.Var1(s.QDot[i])
			q[j] = ad.Var2(s.Q[j])
			cor[i][j] = l(t, q, qdot).D12
		}
	}

	for i := 0; i < n; i++ {
		q := ad.Consts(s.Q)
		qdot := ad.Consts(s.QDot)
		qdot[i] = ad.Var1(s.QDot[i])
		tdep[i] = l(ad.Var2(s.T), q, qdot).D12
	}

	return grad, mass, cor, tdep
}

// StateDerivative converts a Lagrangian into an explicit state-derivative
// function by solving the Euler-Lagrange system for the accelerations at
// each evaluation point. It fails with ErrDegenerateSystem when the
// effective mass matrix is singular.
func StateDerivative(l mech.Lagrangian) RHS {
	return func(s mech.State) (mech.State, error) {
		if err := s.Validate(); err != nil {
			return mech.State{}, err
		}

		n := s.Dof()
		grad, mass, cor, tdep := partials(l, s)

		b := make([]float64, n)
		for i := 0; i < n; i++ {
			b[i] = grad[i] - tdep[i]
			for j := 0; j < n; j++ {
				b[i] -= cor[i][j] * s.QDot[j]
			}
		}

		qddot, err := solve(mass, b)
		if err != nil {
			return mech.State{}, fmt.Errorf("state derivative at t=%g: %w", s.T, err)
		}

		d := mech.State{T: 1, Q: make([]float64, n), QDot: qddot}
		copy(d.Q, s.QDot)
		return d, nil
	}
}

// Residual returns the componentwise Euler-Lagrange residual
// d/dt(dL/dqdot) - dL/dq evaluated along a path whose acceleration at the
// state is qddot. A true trajectory of the system makes it vanish.
func Residual(l mech.Lagrangian) func(s mech.State, qddot []float64) []float64 {
	return func(s mech.State, qddot []float64) []float64 {
		n := s.Dof()
		grad, mass, cor, tdep := partials(l, s)

		res := make([]float64, n)
		for i := 0; i < n; i++ {
			res[i] = tdep[i] - grad[i]
			for j := 0; j < n; j++ {
				res[i] += mass[i][j]*qddot[j] + cor[i][j]*s.QDot[j]
			}
		}
		return res
	}
}
