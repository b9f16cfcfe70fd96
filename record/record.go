// Package record maps raw sampled states into flat per-sample records for
// external consumers (charting, spreadsheets, storage). Records are derived
// functionally from a state and the fixed physical parameters; they have no
// identity beyond their position in the sequence.
package record

import (
	"github.com/san-kum/pendlab/diag"
	"github.com/san-kum/pendlab/mech"
	"github.com/san-kum/pendlab/ode"
)

// Record is one post-processed trajectory sample. Angles are wrapped to
// their principal value in (-pi, pi]; DEnergy is total energy drift
// relative to the first sample.
type Record struct {
	T         float64 `json:"t"`
	Theta1    float64 `json:"theta1"`
	Theta2    float64 `json:"theta2"`
	ThetaDot1 float64 `json:"thetadot1"`
	ThetaDot2 float64 `json:"thetadot2"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	DEnergy   float64 `json:"d_energy"`
}

// Fields is the column order used by tabular exporters.
var Fields = []string{
	"t", "theta1", "theta2", "thetadot1", "thetadot2",
	"x1", "y1", "x2", "y2", "d_energy",
}

// Row returns the record's values in Fields order.
func (r Record) Row() []float64 {
	return []float64{
		r.T, r.Theta1, r.Theta2, r.ThetaDot1, r.ThetaDot2,
		r.X1, r.Y1, r.X2, r.Y2, r.DEnergy,
	}
}

// Transform maps a trajectory into records using the run's physical
// parameters. Energy drift is measured against the first sample.
func Transform(traj *ode.Trajectory, p mech.Params) []Record {
	if traj.Len() == 0 {
		return nil
	}

	energy := diag.EnergyFn(mech.BuildLagrangian(p))
	drift := diag.NewDriftMonitor(energy, traj.At(0).State)

	out := make([]Record, 0, traj.Len())
	for _, s := range traj.Samples() {
		pos, _ := p.Positions(s.State)
		out = append(out, Record{
			T:         s.T,
			Theta1:    mech.Wrap(s.State.Q[0]),
			Theta2:    mech.Wrap(s.State.Q[1]),
			ThetaDot1: s.State.QDot[0],
			ThetaDot2: s.State.QDot[1],
			X1:        pos[0],
			Y1:        pos[1],
			X2:        pos[2],
			Y2:        pos[3],
			DEnergy:   drift(s.State),
		})
	}
	return out
}
