package mech

import "github.com/san-kum/pendlab/ad"

// Lagrangian is a scalar function of the generalized state, evaluated over
// hyper-dual numbers so callers can extract exact partial derivatives by
// seeding its arguments. Constructed once per parameter set and reused for
// the whole run; holds no internal state.
type Lagrangian func(t ad.Num, q, qdot []ad.Num) ad.Num

// At evaluates the Lagrangian numerically at a state.
func (l Lagrangian) At(s State) float64 {
	return l(ad.Const(s.T), ad.Consts(s.Q), ad.Consts(s.QDot)).Re
}

// Lift composes a function of rectangular state with a coordinate change:
// the generalized (t, q, qdot) is mapped to rectangular positions through
// the transform and to rectangular velocities through the transform's total
// time derivative, computed by tangent arithmetic rather than symbolic
// chain-rule expansion.
func Lift(rect func(pos, vel [4]ad.Num) ad.Num, trans Transform) Lagrangian {
	return func(t ad.Num, q, qdot []ad.Num) ad.Num {
		tan := make([]Tangent, len(q))
		for i := range q {
			tan[i] = Tangent{X: q[i], V: qdot[i]}
		}
		r := trans(tan)
		var pos, vel [4]ad.Num
		for i := range r {
			pos[i], vel[i] = r[i].X, r[i].V
		}
		return rect(pos, vel)
	}
}

// BuildLagrangian builds the generalized-coordinate Lagrangian of a two-link
// pendulum by lifting the rectangular kinetic-minus-potential energy through
// the angle transform.
func BuildLagrangian(p Params) Lagrangian {
	return Lift(RectLagrangian(p.M1, p.M2, p.G), NewTransform(p.L1, p.L2))
}

// BuildDoubleDouble builds the Lagrangian of two independent two-link
// pendulums evolving side by side: a four-coordinate system whose sub-states
// are decoupled and share only the time coordinate.
func BuildDoubleDouble(a, b Params) Lagrangian {
	la := BuildLagrangian(a)
	lb := BuildLagrangian(b)
	return func(t ad.Num, q, qdot []ad.Num) ad.Num {
		return la(t, q[:2], qdot[:2]).Add(lb(t, q[2:], qdot[2:]))
	}
}
