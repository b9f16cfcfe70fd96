package ode

import "math"

// Dormand-Prince RK45 coefficients.
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// Step-size controller constants.
const (
	safety   = 0.9
	minScale = 0.2
	maxScale = 10.0
)

// vecFn is the flattened ODE right-hand side y' = f(t, y).
type vecFn func(t float64, y []float64) ([]float64, error)

// rk45Step takes one embedded Dormand-Prince step of size h. It returns the
// candidate state, the error-to-tolerance ratio (accept when <= 1), and the
// controller's suggestion for the next substep size.
func rk45Step(f vecFn, t float64, y []float64, h, tol float64) (yNew []float64, errRatio, hNext float64, err error) {
	n := len(y)

	k1, err := f(t, y)
	if err != nil {
		return nil, 0, 0, err
	}

	stage := make([]float64, n)
	for i := 0; i < n; i++ {
		stage[i] = y[i] + h*b21*k1[i]
	}
	k2, err := f(t+a2*h, stage)
	if err != nil {
		return nil, 0, 0, err
	}

	for i := 0; i < n; i++ {
		stage[i] = y[i] + h*(b31*k1[i]+b32*k2[i])
	}
	k3, err := f(t+a3*h, stage)
	if err != nil {
		return nil, 0, 0, err
	}

	for i := 0; i < n; i++ {
		stage[i] = y[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4, err := f(t+a4*h, stage)
	if err != nil {
		return nil, 0, 0, err
	}

	for i := 0; i < n; i++ {
		stage[i] = y[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5, err := f(t+a5*h, stage)
	if err != nil {
		return nil, 0, 0, err
	}

	for i := 0; i < n; i++ {
		stage[i] = y[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6, err := f(t+h, stage)
	if err != nil {
		return nil, 0, 0, err
	}

	yNew = make([]float64, n)
	for i := 0; i < n; i++ {
		yNew[i] = y[i] + h*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7, err := f(t+h, yNew)
	if err != nil {
		return nil, 0, 0, err
	}

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := h * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(y[i]) + math.Abs(h*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	errRatio = errMax / tol
	if errRatio > 1 {
		hNext = h * math.Max(minScale, safety*math.Pow(errRatio, -0.25))
	} else if errRatio > 0 {
		hNext = h * math.Min(maxScale, safety*math.Pow(errRatio, -0.2))
	} else {
		hNext = h * maxScale
	}

	return yNew, errRatio, hNext, nil
}
