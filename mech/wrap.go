package mech

import "math"

// Wrap reduces an angle to its principal value in (-pi, pi]. Idempotent, and
// Wrap(theta + 2*pi*k) == Wrap(theta) for integer k up to rounding.
func Wrap(theta float64) float64 {
	w := math.Mod(theta+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}
	return w - math.Pi
}
