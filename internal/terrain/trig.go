package terrain

import "math"

// Worm headings use a fixed polynomial sine, not libm, so a seed walks the same path on every
// platform. The polynomial is SIN 2922 from Hart's "Computer Approximations", evaluated on
// [0, pi/6] and folded out to the full circle. Explicit float64 conversions keep products from
// being fused into multiply-adds.

const pi32 = float32(math.Pi)

var (
	pi64     float64 = math.Pi
	invTwoPi         = 1.0 / (2.0 * pi64)
)

var sinCoefficients = [...]float64{
	.52359877559829885532,
	-.2392459620393377657e-1,
	.32795319441392666e-3,
	-.214071970654441e-5,
	.815113605169e-8,
	-.2020852964e-10,
}

// sinSixth computes sin(pi/6 * x) for x in [0, 1].
func sinSixth(x float64) float64 {
	p := sinCoefficients[len(sinCoefficients)-1]
	x2 := x * x
	for i := len(sinCoefficients) - 2; i >= 0; i-- {
		p = float64(p*x2) + sinCoefficients[i]
	}
	return p * x
}

// sinQuarter computes sin(2*pi*x) for x in [0, 0.25] via the triple-angle identity.
func sinQuarter(x float64) float64 {
	s := sinSixth(x * 4.0)
	return s * (3.0 - float64(4.0*s*s))
}

// sinTurn computes sin(2*pi*x) for x in [0, 1].
func sinTurn(x float64) float64 {
	switch {
	case x < 0.25:
		return sinQuarter(x)
	case x < 0.5:
		return sinQuarter(0.5 - x)
	case x < 0.75:
		return -sinQuarter(x - 0.5)
	default:
		return -sinQuarter(1.0 - x)
	}
}

// floorTurns floors x the way the walk code always has: negative integers drop by one.
func floorTurns(x float64) float64 {
	if x >= 0 {
		return float64(int32(x))
	}
	return float64(int32(x) - 1)
}

func sinF(x float32) float32 {
	turns := float64(x) * invTwoPi
	return float32(sinTurn(turns - floorTurns(turns)))
}

func cosF(x float32) float32 {
	turns := float64(float64(x)*invTwoPi) + 0.25
	return float32(sinTurn(turns - floorTurns(turns)))
}

// floorF returns the largest integer not above v.
func floorF(v float32) int {
	i := int(v)
	if float32(i) > v {
		return i - 1
	}
	return i
}
