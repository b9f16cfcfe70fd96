package mech

import "github.com/san-kum/pendlab/ad"

// NewKinetic returns the kinetic energy of the two bobs as a function of
// rectangular velocities: 1/2 m1 (vx1^2 + vy1^2) + 1/2 m2 (vx2^2 + vy2^2).
func NewKinetic(m1, m2 float64) func(vel [4]ad.Num) ad.Num {
	return func(vel [4]ad.Num) ad.Num {
		t1 := vel[0].Sqr().Add(vel[1].Sqr()).Scale(0.5 * m1)
		t2 := vel[2].Sqr().Add(vel[3].Sqr()).Scale(0.5 * m2)
		return t1.Add(t2)
	}
}

// NewPotential returns the gravitational potential energy as a function of
// rectangular positions: m1 g y1 + m2 g y2.
func NewPotential(m1, m2, g float64) func(pos [4]ad.Num) ad.Num {
	return func(pos [4]ad.Num) ad.Num {
		return pos[1].Scale(m1 * g).Add(pos[3].Scale(m2 * g))
	}
}

// RectLagrangian is kinetic minus potential energy over rectangular state.
func RectLagrangian(m1, m2, g float64) func(pos, vel [4]ad.Num) ad.Num {
	ke := NewKinetic(m1, m2)
	pe := NewPotential(m1, m2, g)
	return func(pos, vel [4]ad.Num) ad.Num {
		return ke(vel).Sub(pe(pos))
	}
}
