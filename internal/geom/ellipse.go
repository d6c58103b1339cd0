package geom

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// circumferenceNodes is the Gauss-Legendre node count used for perimeter
// integration. The integrand is smooth and periodic, so this is far past
// double precision for any aspect the UI can produce.
const circumferenceNodes = 128

// Ellipse is an origin-centred, axis-aligned ellipse parameterised
// counter-clockwise as (A·cos θ, B·sin θ).
type Ellipse struct {
	A, B float64
}

// Scaled returns the ellipse obtained by squashing a circle of the given
// radius along one axis: sx scales X, sy scales Y.
func Scaled(radius, sx, sy float64) Ellipse {
	return Ellipse{A: radius * sx, B: radius * sy}
}

func (e Ellipse) Point(theta float64) Vec {
	s, c := math.Sincos(theta)
	return Vec{X: e.A * c, Y: e.B * s}
}

// Tangent is the parametric derivative dP/dθ.
func (e Ellipse) Tangent(theta float64) Vec {
	s, c := math.Sincos(theta)
	return Vec{X: -e.A * s, Y: e.B * c}
}

// Speed is |dP/dθ|, the arc length traversed per unit of parameter.
func (e Ellipse) Speed(theta float64) float64 {
	return e.Tangent(theta).Len()
}

func (e Ellipse) MaxRadius() float64 { return math.Max(math.Abs(e.A), math.Abs(e.B)) }

func (e Ellipse) IsCircle(tol float64) bool {
	if e.A == 0 {
		return e.B == 0
	}
	return math.Abs(e.B/e.A-1) <= tol
}

// Circumference integrates Speed over one full turn.
func (e Ellipse) Circumference() float64 {
	if e.A == e.B {
		return 2 * math.Pi * math.Abs(e.A)
	}
	return quad.Fixed(e.Speed, 0, 2*math.Pi, circumferenceNodes, nil, 0)
}
