// Package symbolic renders the two-link pendulum's Lagrangian and
// Euler-Lagrange equations as symbolic expressions for display and
// typesetting. The numeric pipeline never goes through here; it uses exact
// automatic differentiation instead. This is the presentation branch only.
package symbolic

import (
	gosymbol "github.com/njchilds90/gosymbol"
)

// Symbol names. Angles are generalized coordinates (theta2 relative to the
// first link), omegas their velocities, alphas their accelerations along
// the path.
var (
	coordNames = []string{"theta1", "theta2"}
	velNames   = []string{"omega1", "omega2"}
	accNames   = []string{"alpha1", "alpha2"}
)

// Equation is one rendered Euler-Lagrange component.
type Equation struct {
	Coordinate string
	Text       string
	LaTeX      string
}

// lagrangian builds the symbolic two-link Lagrangian with symbolic physical
// constants m1, m2, l1, l2, g:
//
//	L = 1/2 m1 l1^2 w1^2
//	  + 1/2 m2 (l1^2 w1^2 + l2^2 (w1+w2)^2 + 2 l1 l2 w1 (w1+w2) cos(th2))
//	  + (m1+m2) g l1 cos(th1) + m2 g l2 cos(th1+th2)
func lagrangian() gosymbol.Expr {
	th1 := gosymbol.S("theta1")
	th2 := gosymbol.S("theta2")
	w1 := gosymbol.S("omega1")
	w2 := gosymbol.S("omega2")
	m1 := gosymbol.S("m1")
	m2 := gosymbol.S("m2")
	l1 := gosymbol.S("l1")
	l2 := gosymbol.S("l2")
	g := gosymbol.S("g")

	half := gosymbol.F(1, 2)
	two := gosymbol.N(2)
	wSum := gosymbol.AddOf(w1, w2)

	ke1 := gosymbol.MulOf(half, m1, gosymbol.PowOf(l1, two), gosymbol.PowOf(w1, two))

	v2sq := gosymbol.AddOf(
		gosymbol.MulOf(gosymbol.PowOf(l1, two), gosymbol.PowOf(w1, two)),
		gosymbol.MulOf(gosymbol.PowOf(l2, two), gosymbol.PowOf(wSum, two)),
		gosymbol.MulOf(two, l1, l2, w1, wSum, gosymbol.CosOf(th2)),
	)
	ke2 := gosymbol.MulOf(half, m2, v2sq)

	pe := gosymbol.AddOf(
		gosymbol.MulOf(gosymbol.AddOf(m1, m2), g, l1, gosymbol.CosOf(th1)),
		gosymbol.MulOf(m2, g, l2, gosymbol.CosOf(gosymbol.AddOf(th1, th2))),
	)

	return gosymbol.AddOf(ke1, ke2, pe)
}

// totalTimeDerivative expands d/dt along the path by the chain rule through
// q(t) and qdot(t): dF/dt = sum_i dF/dth_i w_i + sum_i dF/dw_i a_i.
func totalTimeDerivative(f gosymbol.Expr) gosymbol.Expr {
	terms := make([]gosymbol.Expr, 0, len(coordNames)+len(velNames))
	for i, name := range coordNames {
		terms = append(terms, gosymbol.MulOf(gosymbol.Diff(f, name), gosymbol.S(velNames[i])))
	}
	for i, name := range velNames {
		terms = append(terms, gosymbol.MulOf(gosymbol.Diff(f, name), gosymbol.S(accNames[i])))
	}
	return gosymbol.AddOf(terms...)
}

// EulerLagrange returns the componentwise variational condition
// d/dt(dL/dw_i) - dL/dth_i = 0 of the two-link pendulum, rendered as text
// and LaTeX.
func EulerLagrange() []Equation {
	l := lagrangian()

	out := make([]Equation, 0, len(coordNames))
	for i, name := range coordNames {
		residual := gosymbol.AddOf(
			totalTimeDerivative(gosymbol.Diff(l, velNames[i])),
			gosymbol.MulOf(gosymbol.N(-1), gosymbol.Diff(l, name)),
		)
		eq := gosymbol.Eq(residual, gosymbol.N(0))
		out = append(out, Equation{
			Coordinate: name,
			Text:       eq.String(),
			LaTeX:      eq.LaTeX(),
		})
	}
	return out
}

// LagrangianText renders the Lagrangian itself.
func LagrangianText() (text, latex string) {
	l := lagrangian()
	return gosymbol.String(l), gosymbol.LaTeX(l)
}
