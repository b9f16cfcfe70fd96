package diag

import (
	"fmt"
	"math"

	"github.com/san-kum/pendlab/mech"
	"github.com/san-kum/pendlab/ode"
)

// Numerical-safety constants for the divergence monitor. The floor is the
// reported log value whenever the angular separation falls below the clamp
// threshold, so a zero separation never produces -Inf. Both are plain
// guards, not physically meaningful values, and can be overridden.
const (
	DefaultClampThreshold = 1e-60
	DefaultFloorLog       = -138.0
)

// DivergenceOptions tune the clamping of the divergence series.
// Zero values select the defaults.
type DivergenceOptions struct {
	Threshold float64
	Floor     float64
}

// Divergence computes, per sample, the natural log of the absolute angular
// difference of coordinate coord between two trajectories, the difference
// wrapped to its principal value. The slope of the resulting series over
// time approximates the largest Lyapunov exponent.
func Divergence(a, b *ode.Trajectory, coord int, opts DivergenceOptions) ([]float64, error) {
	if a.Len() != b.Len() {
		return nil, fmt.Errorf("%w: trajectory lengths differ (%d vs %d)",
			mech.ErrInvalidParameters, a.Len(), b.Len())
	}
	if a.Len() == 0 {
		return nil, fmt.Errorf("%w: empty trajectories", mech.ErrInvalidParameters)
	}
	if coord < 0 || coord >= a.At(0).State.Dof() {
		return nil, fmt.Errorf("%w: coordinate %d out of range",
			mech.ErrInvalidParameters, coord)
	}

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultClampThreshold
	}
	floor := opts.Floor
	if floor == 0 {
		floor = DefaultFloorLog
	}

	out := make([]float64, a.Len())
	for i := range out {
		sep := math.Abs(mech.Wrap(a.At(i).State.Q[coord] - b.At(i).State.Q[coord]))
		if sep < threshold {
			out[i] = floor
		} else {
			out[i] = math.Log(sep)
		}
	}
	return out, nil
}
