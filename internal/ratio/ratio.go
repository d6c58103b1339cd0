// Package ratio computes the effective rotor/stator ratio shown in export
// annotations.
package ratio

import (
	"math"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/kinematics"
)

// MaxDenominator bounds the fraction search.
const MaxDenominator = 1000

// Circumferences returns (rotor, stator) perimeters for g.
func Circumferences(g config.Gear) (rotor, stator float64) {
	return kinematics.RotorEllipse(g).Circumference(), kinematics.StatorEllipse(g).Circumference()
}

// Of returns rotor circumference over stator circumference.
func Of(g config.Gear) float64 {
	rotor, stator := Circumferences(g)
	return rotor / stator
}

// Best returns the fraction n/d with 1 ≤ d ≤ maxDen minimising |x - n/d|.
// Ties go to the smallest denominator, which is also the reduced form.
func Best(x float64, maxDen int) config.Fraction {
	best := config.Fraction{Num: int(math.Round(x)), Den: 1}
	bestErr := math.Abs(x - best.Float())
	for d := 2; d <= maxDen; d++ {
		n := int(math.Round(x * float64(d)))
		if err := math.Abs(x - float64(n)/float64(d)); err < bestErr {
			best, bestErr = config.Fraction{Num: n, Den: d}, err
		}
	}
	return best
}

// Effective prefers the stored hint and falls back to searching the
// circumference ratio. hinted reports which was used.
func Effective(g config.Gear) (f config.Fraction, hinted bool) {
	if g.Ratio != nil {
		return *g.Ratio, true
	}
	return Best(Of(g), MaxDenominator), false
}

// Lobes is the number of petals the closed curve has: the reduced
// denominator of the ratio.
func Lobes(f config.Fraction) int {
	return f.Den / gcd(f.Num, f.Den)
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}
