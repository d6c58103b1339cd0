package geom

import "math"

// Vec is a point or direction in world space.
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func Polar(r, angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{X: r * c, Y: r * s}
}

func (v Vec) Add(o Vec) Vec       { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{X: v.X * f, Y: v.Y * f} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) Angle() float64      { return math.Atan2(v.Y, v.X) }
func (v Vec) Dist(o Vec) float64  { return v.Sub(o).Len() }
func (v Vec) Mid(o Vec) Vec       { return Vec{X: (v.X + o.X) / 2, Y: (v.Y + o.Y) / 2} }

func (v Vec) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec) Rotate(angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Bounds is an axis-aligned box. The zero value is empty.
type Bounds struct {
	Min, Max Vec
	nonEmpty bool
}

func (b Bounds) Empty() bool { return !b.nonEmpty }

// Extend grows the box to include p.
func (b Bounds) Extend(p Vec) Bounds {
	if !b.nonEmpty {
		return Bounds{Min: p, Max: p, nonEmpty: true}
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	return b
}

// Radius returns the half-size of the smallest origin-centred square
// containing b.
func (b Bounds) Radius() float64 {
	if !b.nonEmpty {
		return 0
	}
	return math.Max(
		math.Max(math.Abs(b.Min.X), math.Abs(b.Max.X)),
		math.Max(math.Abs(b.Min.Y), math.Abs(b.Max.Y)),
	)
}
