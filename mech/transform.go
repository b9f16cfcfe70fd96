package mech

import "github.com/san-kum/pendlab/ad"

// Tangent carries a quantity and its total time derivative along a path.
// Both components live in the hyper-dual ring, so partial derivatives taken
// by an outer caller keep flowing through tangent arithmetic. This is the
// "generalized-to-rectangular state lift": feeding Tangent{q_i, qdot_i} into
// a coordinate map yields the map's value in X and its chain-rule time
// derivative in V.
type Tangent struct {
	X ad.Num
	V ad.Num
}

func (a Tangent) Add(b Tangent) Tangent {
	return Tangent{a.X.Add(b.X), a.V.Add(b.V)}
}

func (a Tangent) Sub(b Tangent) Tangent {
	return Tangent{a.X.Sub(b.X), a.V.Sub(b.V)}
}

func (a Tangent) Mul(b Tangent) Tangent {
	return Tangent{a.X.Mul(b.X), a.X.Mul(b.V).Add(a.V.Mul(b.X))}
}

func (a Tangent) Scale(k float64) Tangent {
	return Tangent{a.X.Scale(k), a.V.Scale(k)}
}

func SinT(a Tangent) Tangent {
	return Tangent{ad.Sin(a.X), ad.Cos(a.X).Mul(a.V)}
}

func CosT(a Tangent) Tangent {
	return Tangent{ad.Cos(a.X), ad.Sin(a.X).Neg().Mul(a.V)}
}

// Transform maps generalized coordinates (with velocities attached as
// tangents) to the rectangular coordinates of the two bobs, in the order
// x1, y1, x2, y2.
type Transform func(q []Tangent) [4]Tangent

// NewTransform returns the two-link angle-to-rectangular map. The second
// angle is measured relative to the first link:
//
//	x1 = l1 sin(th1)            y1 = -l1 cos(th1)
//	x2 = x1 + l2 sin(th1+th2)   y2 = y1 - l2 cos(th1+th2)
func NewTransform(l1, l2 float64) Transform {
	return func(q []Tangent) [4]Tangent {
		th1, th2 := q[0], q[1]
		x1 := SinT(th1).Scale(l1)
		y1 := CosT(th1).Scale(-l1)
		sum := th1.Add(th2)
		x2 := x1.Add(SinT(sum).Scale(l2))
		y2 := y1.Sub(CosT(sum).Scale(l2))
		return [4]Tangent{x1, y1, x2, y2}
	}
}

// Positions evaluates bob positions and rectangular velocities numerically.
func (p Params) Positions(s State) (pos, vel [4]float64) {
	trans := NewTransform(p.L1, p.L2)
	tan := make([]Tangent, len(s.Q))
	for i := range s.Q {
		tan[i] = Tangent{X: ad.Const(s.Q[i]), V: ad.Const(s.QDot[i])}
	}
	r := trans(tan)
	for i := range r {
		pos[i] = r[i].X.Re
		vel[i] = r[i].V.Re
	}
	return pos, vel
}
