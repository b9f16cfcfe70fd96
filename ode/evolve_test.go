package ode

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pendlab/mech"
)

// oscillator: q'' = -q, solved exactly by cos/sin.
func oscillatorRHS(s mech.State) (mech.State, error) {
	return mech.State{T: 1, Q: []float64{s.QDot[0]}, QDot: []float64{-s.Q[0]}}, nil
}

func TestEvolveSampleGrid(t *testing.T) {
	x0 := mech.NewState([]float64{1}, []float64{0})

	traj, err := Evolve(oscillatorRHS, x0, 0.1, 1.0)
	if err != nil {
		t.Fatalf("evolve failed: %v", err)
	}

	if traj.Len() != 11 {
		t.Fatalf("expected 11 samples, got %d", traj.Len())
	}

	for i, s := range traj.Samples() {
		want := float64(i) * 0.1
		if s.T != want {
			t.Errorf("sample %d: expected t=%f, got %f", i, want, s.T)
		}
	}
}

func TestEvolveFirstSampleIsInitialState(t *testing.T) {
	x0 := mech.NewState([]float64{0.7}, []float64{-0.3})

	traj, err := Evolve(oscillatorRHS, x0, 0.05, 0.5)
	if err != nil {
		t.Fatalf("evolve failed: %v", err)
	}

	first := traj.At(0)
	if first.T != 0 {
		t.Errorf("first sample t: expected 0, got %f", first.T)
	}
	if first.State.Q[0] != 0.7 || first.State.QDot[0] != -0.3 {
		t.Errorf("first sample is not the initial state: %+v", first.State)
	}
}

func TestEvolveHorizonNotMultipleOfStep(t *testing.T) {
	x0 := mech.NewState([]float64{1}, []float64{0})

	traj, err := Evolve(oscillatorRHS, x0, 0.3, 1.0)
	if err != nil {
		t.Fatalf("evolve failed: %v", err)
	}

	last := traj.Last()
	if last.T > 1.0 || 1.0-last.T > 0.3 {
		t.Errorf("last sample at %f not within one step of horizon 1.0", last.T)
	}
}

func TestEvolveAccuracy(t *testing.T) {
	x0 := mech.NewState([]float64{1}, []float64{0})

	traj, err := Evolve(oscillatorRHS, x0, 0.1, 10.0, WithEpsilon(1e-13))
	if err != nil {
		t.Fatalf("evolve failed: %v", err)
	}

	for _, s := range traj.Samples() {
		wantQ := math.Cos(s.T)
		wantW := -math.Sin(s.T)
		if math.Abs(s.State.Q[0]-wantQ) > 1e-9 {
			t.Errorf("t=%f: q expected %.12f, got %.12f", s.T, wantQ, s.State.Q[0])
		}
		if math.Abs(s.State.QDot[0]-wantW) > 1e-9 {
			t.Errorf("t=%f: qdot expected %.12f, got %.12f", s.T, wantW, s.State.QDot[0])
		}
	}
}

func TestEvolveObserverExactlyOncePerSample(t *testing.T) {
	x0 := mech.NewState([]float64{1}, []float64{0})

	var times []float64
	traj, err := Evolve(oscillatorRHS, x0, 0.1, 1.0,
		WithObserver(func(tt float64, s mech.State) {
			times = append(times, tt)
		}))
	if err != nil {
		t.Fatalf("evolve failed: %v", err)
	}

	if len(times) != traj.Len() {
		t.Fatalf("observer saw %d samples, trajectory has %d", len(times), traj.Len())
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Errorf("observations out of order: t[%d]=%f after t[%d]=%f",
				i, times[i], i-1, times[i-1])
		}
	}
}

func TestEvolveDeterminism(t *testing.T) {
	x0 := mech.NewState([]float64{0.9}, []float64{0.2})

	a, err := Evolve(oscillatorRHS, x0, 0.1, 5.0)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := Evolve(oscillatorRHS, x0, 0.1, 5.0)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if a.Len() != b.Len() {
		t.Fatalf("run lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		sa, sb := a.At(i), b.At(i)
		if sa.T != sb.T || sa.State.Q[0] != sb.State.Q[0] || sa.State.QDot[0] != sb.State.QDot[0] {
			t.Errorf("sample %d differs between identical runs", i)
		}
	}
}

func TestEvolveInvalidParameters(t *testing.T) {
	x0 := mech.NewState([]float64{1}, []float64{0})

	tests := []struct {
		name    string
		x0      mech.State
		step    float64
		horizon float64
		opts    []Option
	}{
		{"zero step", x0, 0, 1.0, nil},
		{"negative step", x0, -0.1, 1.0, nil},
		{"zero horizon", x0, 0.1, 0, nil},
		{"negative horizon", x0, 0.1, -1, nil},
		{"zero epsilon", x0, 0.1, 1.0, []Option{WithEpsilon(0)}},
		{"shape mismatch", mech.State{Q: []float64{1}, QDot: []float64{1, 2}}, 0.1, 1.0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evolve(oscillatorRHS, tt.x0, tt.step, tt.horizon, tt.opts...)
			if !errors.Is(err, mech.ErrInvalidParameters) {
				t.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}

func TestEvolveDegenerateAbortsBeforeSamples(t *testing.T) {
	bad := func(s mech.State) (mech.State, error) {
		return mech.State{}, mech.ErrDegenerateSystem
	}

	observed := 0
	traj, err := Evolve(bad, mech.NewState([]float64{1}, []float64{0}), 0.1, 1.0,
		WithObserver(func(tt float64, s mech.State) { observed++ }))

	if !errors.Is(err, mech.ErrDegenerateSystem) {
		t.Errorf("expected ErrDegenerateSystem, got %v", err)
	}
	if traj != nil {
		t.Error("expected nil trajectory on degenerate system")
	}
	if observed != 0 {
		t.Errorf("observer called %d times before integration", observed)
	}
}

func TestEvolveInstabilityKeepsPartialResults(t *testing.T) {
	// q' = 1 + q^2 solves to tan(t) and blows up at pi/2; the adaptive
	// substep must collapse below the minimum before the horizon.
	blowup := func(s mech.State) (mech.State, error) {
		return mech.State{T: 1, Q: []float64{1 + s.Q[0]*s.Q[0]}, QDot: []float64{0}}, nil
	}

	traj, err := Evolve(blowup, mech.NewState([]float64{0}, []float64{0}), 0.1, 2.0)

	if !errors.Is(err, mech.ErrNumericalInstability) {
		t.Fatalf("expected ErrNumericalInstability, got %v", err)
	}
	if traj == nil || traj.Len() < 2 {
		t.Fatal("expected partial samples before the blow-up")
	}
	for _, s := range traj.Samples() {
		if s.T >= math.Pi/2 {
			t.Errorf("sample at t=%f past the singularity", s.T)
		}
		if math.Abs(s.State.Q[0]-math.Tan(s.T)) > 1e-6*(1+math.Abs(math.Tan(s.T))) {
			t.Errorf("t=%f: expected tan(t)=%f, got %f", s.T, math.Tan(s.T), s.State.Q[0])
		}
	}
}
