package ad

import "math"

// Num is a second-order hyper-dual number. Re carries the function value,
// D1 and D2 carry first partial derivatives along two independent seed
// directions, and D12 carries the mixed second partial along both.
//
// Evaluating a function built from Num arithmetic with one input seeded in
// D1 and another seeded in D2 yields the exact value, both first partials,
// and the mixed second partial in a single pass. There is no truncation
// error: the arithmetic implements the chain rule directly.
type Num struct {
	Re, D1, D2, D12 float64
}

// Const lifts a plain float into the hyper-dual ring with zero derivative parts.
func Const(v float64) Num { return Num{Re: v} }

// Var1 seeds v as the differentiation variable for the D1 slot.
func Var1(v float64) Num { return Num{Re: v, D1: 1} }

// Var2 seeds v as the differentiation variable for the D2 slot.
func Var2(v float64) Num { return Num{Re: v, D2: 1} }

// Var12 seeds v in both slots. D12 of the result is then the plain second
// derivative with respect to v.
func Var12(v float64) Num { return Num{Re: v, D1: 1, D2: 1} }

func (a Num) Add(b Num) Num {
	return Num{a.Re + b.Re, a.D1 + b.D1, a.D2 + b.D2, a.D12 + b.D12}
}

func (a Num) Sub(b Num) Num {
	return Num{a.Re - b.Re, a.D1 - b.D1, a.D2 - b.D2, a.D12 - b.D12}
}

func (a Num) Mul(b Num) Num {
	return Num{
		a.Re * b.Re,
		a.Re*b.D1 + a.D1*b.Re,
		a.Re*b.D2 + a.D2*b.Re,
		a.Re*b.D12 + a.D1*b.D2 + a.D2*b.D1 + a.D12*b.Re,
	}
}

func (a Num) Div(b Num) Num {
	inv := 1.0 / b.Re
	inv2 := inv * inv
	return a.Mul(Num{
		inv,
		-b.D1 * inv2,
		-b.D2 * inv2,
		(2*b.D1*b.D2*inv - b.D12) * inv2,
	})
}

func (a Num) Neg() Num { return Num{-a.Re, -a.D1, -a.D2, -a.D12} }

// Scale multiplies by a plain constant.
func (a Num) Scale(k float64) Num {
	return Num{k * a.Re, k * a.D1, k * a.D2, k * a.D12}
}

// Sqr is a*a with one multiplication saved on the value part.
func (a Num) Sqr() Num { return a.Mul(a) }

// chain applies a univariate function with known first and second derivative
// at a.Re.
func (a Num) chain(f, df, ddf float64) Num {
	return Num{
		f,
		df * a.D1,
		df * a.D2,
		df*a.D12 + ddf*a.D1*a.D2,
	}
}

func Sin(a Num) Num {
	s, c := math.Sincos(a.Re)
	return a.chain(s, c, -s)
}

func Cos(a Num) Num {
	s, c := math.Sincos(a.Re)
	return a.chain(c, -s, -c)
}

func Exp(a Num) Num {
	e := math.Exp(a.Re)
	return a.chain(e, e, e)
}

func Sqrt(a Num) Num {
	r := math.Sqrt(a.Re)
	return a.chain(r, 0.5/r, -0.25/(r*r*r))
}

// Consts lifts a float slice into hyper-dual constants.
func Consts(vs []float64) []Num {
	out := make([]Num, len(vs))
	for i, v := range vs {
		out[i] = Const(v)
	}
	return out
}
