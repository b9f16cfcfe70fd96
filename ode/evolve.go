// Package ode integrates a derived state-derivative function over a fixed
// horizon with fixed-output-interval sampling. Substeps between output
// samples are adaptive Dormand-Prince RK45, controlled by an error
// tolerance; the output grid itself never moves.
package ode

import (
	"fmt"
	"math"

	"github.com/san-kum/pendlab/derive"
	"github.com/san-kum/pendlab/mech"
)

// Default numerical constants for a run.
const (
	DefaultEpsilon = 1e-13
	DefaultMinStep = 1e-12
)

// Options tune one integration run.
type Options struct {
	// Epsilon is the local error tolerance for adaptive substeps.
	Epsilon float64
	// MinStep is the smallest substep the controller may take before the
	// run aborts with ErrNumericalInstability.
	MinStep float64
	// Observe, if set, is invoked exactly once per output sample, in
	// increasing time order, starting with the initial state at t=0.
	Observe func(t float64, s mech.State)
}

type Option func(*Options)

func WithEpsilon(eps float64) Option {
	return func(o *Options) { o.Epsilon = eps }
}

func WithMinStep(h float64) Option {
	return func(o *Options) { o.MinStep = h }
}

func WithObserver(fn func(t float64, s mech.State)) Option {
	return func(o *Options) { o.Observe = fn }
}

// Sample is one observed point of a trajectory.
type Sample struct {
	T     float64
	State mech.State
}

// Trajectory is the ordered, append-only sequence of samples produced by one
// run. It is populated during integration and read-only afterwards.
type Trajectory struct {
	samples []Sample
}

func (tr *Trajectory) Len() int          { return len(tr.samples) }
func (tr *Trajectory) At(i int) Sample   { return tr.samples[i] }
func (tr *Trajectory) Samples() []Sample { return tr.samples }
func (tr *Trajectory) Last() Sample      { return tr.samples[len(tr.samples)-1] }

// Evolve integrates dState/dt = rhs(State) from t=0 to t=horizon, sampling
// at every multiple of step. The first sample is the initial state exactly;
// the last is the grid point at or immediately preceding the horizon.
//
// On ErrNumericalInstability the trajectory collected so far is returned
// alongside the error; samples already delivered to the observer remain
// valid. ErrDegenerateSystem from the derivation aborts before any sample
// is produced.
func Evolve(rhs derive.RHS, x0 mech.State, step, horizon float64, opts ...Option) (*Trajectory, error) {
	o := Options{Epsilon: DefaultEpsilon, MinStep: DefaultMinStep}
	for _, opt := range opts {
		opt(&o)
	}

	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %g", mech.ErrInvalidParameters, step)
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %g", mech.ErrInvalidParameters, horizon)
	}
	if o.Epsilon <= 0 {
		return nil, fmt.Errorf("%w: epsilon must be positive, got %g", mech.ErrInvalidParameters, o.Epsilon)
	}
	if err := x0.Validate(); err != nil {
		return nil, err
	}

	// A degenerate configuration must fail before integration begins.
	if _, err := rhs(x0); err != nil {
		return nil, err
	}

	n := x0.Dof()
	f := func(t float64, y []float64) ([]float64, error) {
		d, err := rhs(unflatten(t, y, n))
		if err != nil {
			return nil, err
		}
		return flatten(d), nil
	}

	traj := &Trajectory{}
	emit := func(t float64, y []float64) {
		s := unflatten(t, y, n)
		traj.samples = append(traj.samples, Sample{T: t, State: s})
		if o.Observe != nil {
			o.Observe(t, s)
		}
	}

	start := x0.Clone()
	start.T = 0
	y := flatten(start)
	emit(0, y)

	nOut := int(math.Floor(horizon/step + 1e-9))
	snap := step * 1e-9

	t := 0.0
	h := step

	for k := 1; k <= nOut; k++ {
		target := float64(k) * step

		for t < target-snap {
			hTry := math.Min(h, target-t)

			yNew, errRatio, hNext, err := rk45Step(f, t, y, hTry, o.Epsilon)
			if err != nil {
				return traj, err
			}

			// Overflow inside a stage poisons the error estimate; retreat
			// hard instead of comparing against NaN.
			if math.IsNaN(errRatio) {
				h = hTry * minScale
				if h < o.MinStep {
					return traj, fmt.Errorf("%w: substep %g below minimum %g at t=%g",
						mech.ErrNumericalInstability, h, o.MinStep, t)
				}
				continue
			}

			if errRatio <= 1 {
				t += hTry
				y = yNew
				h = hNext
				continue
			}

			if hNext < o.MinStep {
				return traj, fmt.Errorf("%w: substep %g below minimum %g at t=%g",
					mech.ErrNumericalInstability, hNext, o.MinStep, t)
			}
			h = hNext
		}

		t = target
		emit(t, y)
	}

	return traj, nil
}

// flatten packs a state's coordinates and velocities into one vector.
func flatten(s mech.State) []float64 {
	y := make([]float64, 0, 2*len(s.Q))
	y = append(y, s.Q...)
	return append(y, s.QDot...)
}

// unflatten rebuilds a state from the packed vector.
func unflatten(t float64, y []float64, n int) mech.State {
	s := mech.State{T: t, Q: make([]float64, n), QDot: make([]float64, n)}
	copy(s.Q, y[:n])
	copy(s.QDot, y[n:])
	return s
}
