package diag

import (
	"fmt"
	"sync"

	"github.com/san-kum/pendlab/derive"
	"github.com/san-kum/pendlab/mech"
	"github.com/san-kum/pendlab/ode"
)

// RunPair evolves two runs from nearly identical initial conditions: the
// second starts with coordinate coord perturbed by perturb. The runs share
// no mutable state, so they proceed concurrently. Options are applied to
// both runs, except that any observer is stripped: a single callback fed
// from two concurrent runs would race, and each run keeps its own
// trajectory anyway.
func RunPair(rhs derive.RHS, x0 mech.State, coord int, perturb, step, horizon float64, opts ...ode.Option) (a, b *ode.Trajectory, err error) {
	if coord < 0 || coord >= x0.Dof() {
		return nil, nil, fmt.Errorf("%w: coordinate %d out of range",
			mech.ErrInvalidParameters, coord)
	}

	opts = append(append([]ode.Option{}, opts...), ode.WithObserver(nil))

	xp := x0.Clone()
	xp.Q[coord] += perturb

	var wg sync.WaitGroup
	var errA, errB error

	wg.Add(2)
	go func() {
		defer wg.Done()
		a, errA = ode.Evolve(rhs, x0, step, horizon, opts...)
	}()
	go func() {
		defer wg.Done()
		b, errB = ode.Evolve(rhs, xp, step, horizon, opts...)
	}()
	wg.Wait()

	if errA != nil {
		return nil, nil, errA
	}
	if errB != nil {
		return nil, nil, errB
	}
	return a, b, nil
}

// PairDivergence is RunPair followed by Divergence over the same coordinate.
func PairDivergence(rhs derive.RHS, x0 mech.State, coord int, perturb, step, horizon float64, dopts DivergenceOptions, opts ...ode.Option) ([]float64, error) {
	a, b, err := RunPair(rhs, x0, coord, perturb, step, horizon, opts...)
	if err != nil {
		return nil, err
	}
	return Divergence(a, b, coord, dopts)
}
