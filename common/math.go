package common

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVector interpolates between a and b with t clamped to [0,1].
func LerpVector(a, b cp.Vector, t float64) cp.Vector {
	t = Clamp01(t)
	return cp.Vector{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ClampMagnitude shortens v to at most max length.
func ClampMagnitude(v cp.Vector, max float64) cp.Vector {
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return v.Mult(max / l)
}

// MoveTowards returns the step from current toward target, never longer than maxStep.
func MoveTowards(current, target cp.Vector, maxStep float64) cp.Vector {
	return current.Add(ClampMagnitude(target.Sub(current), maxStep))
}

// AngleFromUp returns the unsigned angle in degrees between straight up and n.
func AngleFromUp(n cp.Vector) float64 {
	l := n.Length()
	if l == 0 {
		return 0
	}
	cos := Clamp(n.Y/l, -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// InsideUnitCircle returns a uniformly distributed point in the unit disc.
func InsideUnitCircle(rng *rand.Rand) cp.Vector {
	r := math.Sqrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi
	return cp.Vector{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// RandRange returns a value in [lo, hi).
func RandRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
