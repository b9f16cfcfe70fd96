// Package pendlab derives equations of motion for two-link pendulum systems
// from a symbolic Lagrangian and integrates them into sampled trajectories
// with derived diagnostics.
//
// The pipeline: a coordinate transform and an energy model compose into a
// generalized-coordinate Lagrangian (mech), the Euler-Lagrange operator
// turns it into an explicit state-derivative function with exact automatic
// derivatives (derive), an adaptive driver integrates it on a fixed output
// grid (ode), and post-processing maps samples into flat records with
// energy-drift and phase-divergence diagnostics (record, diag).
package pendlab

import (
	"github.com/san-kum/pendlab/derive"
	"github.com/san-kum/pendlab/mech"
	"github.com/san-kum/pendlab/ode"
	"github.com/san-kum/pendlab/record"
)

// Convenience aliases so programmatic callers rarely need the subpackages.
type (
	Params     = mech.Params
	State      = mech.State
	Trajectory = ode.Trajectory
	Sample     = ode.Sample
	Record     = record.Record
)

// Re-exported error taxonomy.
var (
	ErrInvalidParameters    = mech.ErrInvalidParameters
	ErrDegenerateSystem     = mech.ErrDegenerateSystem
	ErrNumericalInstability = mech.ErrNumericalInstability
)

// BuildLagrangian returns the generalized-coordinate Lagrangian of a
// two-link pendulum with the given masses, link lengths, and gravity.
func BuildLagrangian(mass1, mass2, length1, length2, gravity float64) mech.Lagrangian {
	return mech.BuildLagrangian(mech.Params{
		M1: mass1, M2: mass2, L1: length1, L2: length2, G: gravity,
	})
}

// Run integrates a two-link pendulum released at rest from the given joint
// angles, sampling every step from t=0 to the horizon.
func Run(step, horizon, length1, length2, mass1, mass2, gravity, theta1, theta2 float64, opts ...ode.Option) (*Trajectory, error) {
	p := Params{M1: mass1, M2: mass2, L1: length1, L2: length2, G: gravity}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rhs := derive.StateDerivative(mech.BuildLagrangian(p))
	x0 := mech.NewState([]float64{theta1, theta2}, []float64{0, 0})
	return ode.Evolve(rhs, x0, step, horizon, opts...)
}

// RunDefault is Run with the standard constant set: masses 1.0 and 3.0 kg,
// lengths 1.0 and 0.9 m, gravity 9.8 m/s^2.
func RunDefault(step, horizon, theta1, theta2 float64, opts ...ode.Option) (*Trajectory, error) {
	p := mech.DefaultParams()
	return Run(step, horizon, p.L1, p.L2, p.M1, p.M2, p.G, theta1, theta2, opts...)
}

// TransformData maps a trajectory into per-sample records using the given
// physical parameters.
func TransformData(traj *Trajectory, p Params) []Record {
	return record.Transform(traj, p)
}
