package derive

import (
	"fmt"
	"math"

	"github.com/san-kum/pendlab/mech"
)

// singularTol is the relative pivot threshold below which the mass matrix
// is treated as singular.
const singularTol = 1e-12

// solve solves a*x = b by Gaussian elimination with partial pivoting.
// The inputs are clobbered. Returns ErrDegenerateSystem when a pivot
// degenerates relative to the largest matrix entry.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)

	scale := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			scale = math.Max(scale, math.Abs(a[i][j]))
		}
	}
	if scale == 0 {
		return nil, fmt.Errorf("%w: zero mass matrix", mech.ErrDegenerateSystem)
	}

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) <= singularTol*scale {
			return nil, fmt.Errorf("%w: pivot %d vanished", mech.ErrDegenerateSystem, col)
		}
		if pivot != col {
			a[pivot], a[col] = a[col], a[pivot]
			b[pivot], b[col] = b[col], b[pivot]
		}

		for row := col + 1; row < n; row++ {
			f := a[row][col] / a[col][col]
			if f == 0 {
				continue
			}
			for k := col; k < n; k++ {
				a[row][k] -= f * a[col][k]
			}
			b[row] -= f * b[col]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * x[j]
		}
		x[i] = sum / a[i][i]
	}
	return x, nil
}
