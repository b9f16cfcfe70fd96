package record

import (
	"math"
	"testing"

	"github.com/san-kum/pendlab/derive"
	"github.com/san-kum/pendlab/mech"
	"github.com/san-kum/pendlab/ode"
)

func TestTransformFields(t *testing.T) {
	p := mech.DefaultParams()
	rhs := derive.StateDerivative(mech.BuildLagrangian(p))
	x0 := mech.NewState([]float64{0.5, -0.2}, []float64{0.1, 0.3})

	traj, err := ode.Evolve(rhs, x0, 0.1, 1.0, ode.WithEpsilon(1e-10))
	if err != nil {
		t.Fatalf("evolve failed: %v", err)
	}

	recs := Transform(traj, p)
	if len(recs) != traj.Len() {
		t.Fatalf("expected %d records, got %d", traj.Len(), len(recs))
	}

	first := recs[0]
	if first.T != 0 {
		t.Errorf("first record t: expected 0, got %f", first.T)
	}
	if first.Theta1 != 0.5 || first.Theta2 != -0.2 {
		t.Errorf("first record angles: got (%f, %f)", first.Theta1, first.Theta2)
	}
	if first.ThetaDot1 != 0.1 || first.ThetaDot2 != 0.3 {
		t.Errorf("first record velocities: got (%f, %f)", first.ThetaDot1, first.ThetaDot2)
	}
	if first.DEnergy != 0 {
		t.Errorf("first record energy drift: expected 0, got %e", first.DEnergy)
	}

	// Positions must match the transform directly.
	pos, _ := p.Positions(x0)
	if first.X1 != pos[0] || first.Y1 != pos[1] || first.X2 != pos[2] || first.Y2 != pos[3] {
		t.Errorf("positions mismatch: record (%f,%f,%f,%f) vs transform %v",
			first.X1, first.Y1, first.X2, first.Y2, pos)
	}
}

func TestTransformWrapsAngles(t *testing.T) {
	p := mech.DefaultParams()
	rhs := derive.StateDerivative(mech.BuildLagrangian(p))
	// Start past pi so the raw integrated coordinate leaves (-pi, pi].
	x0 := mech.NewState([]float64{3 * math.Pi, 0}, []float64{0, 0})

	traj, err := ode.Evolve(rhs, x0, 0.1, 1.0, ode.WithEpsilon(1e-10))
	if err != nil {
		t.Fatalf("evolve failed: %v", err)
	}

	for i, r := range Transform(traj, p) {
		if r.Theta1 <= -math.Pi || r.Theta1 > math.Pi {
			t.Errorf("record %d: theta1 %f not wrapped", i, r.Theta1)
		}
		if r.Theta2 <= -math.Pi || r.Theta2 > math.Pi {
			t.Errorf("record %d: theta2 %f not wrapped", i, r.Theta2)
		}
	}
}

func TestRowMatchesFields(t *testing.T) {
	r := Record{T: 1, Theta1: 2, Theta2: 3, ThetaDot1: 4, ThetaDot2: 5,
		X1: 6, Y1: 7, X2: 8, Y2: 9, DEnergy: 10}

	row := r.Row()
	if len(row) != len(Fields) {
		t.Fatalf("row length %d != fields length %d", len(row), len(Fields))
	}
	for i, v := range row {
		if v != float64(i+1) {
			t.Errorf("row[%d] (%s): expected %d, got %f", i, Fields[i], i+1, v)
		}
	}
}

func TestTransformEmptyTrajectory(t *testing.T) {
	if recs := Transform(&ode.Trajectory{}, mech.DefaultParams()); recs != nil {
		t.Errorf("expected nil for empty trajectory, got %d records", len(recs))
	}
}
