package kinematics

import (
	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/geom"
)

// Exact is the closed-form hypotrochoid for a circular rotor inside a
// circular stator. The motion uses the nominal radii; aspects within the
// circular tolerance only show up in the drawn outlines.
type Exact struct {
	StatorR, RotorR, Offset float64

	stator, rotor geom.Ellipse
}

func NewExact(g config.Gear) *Exact {
	return &Exact{
		StatorR: g.StatorRadius,
		RotorR:  g.RotorRadius,
		Offset:  g.PenOffset,
		stator:  StatorEllipse(g),
		rotor:   RotorEllipse(g),
	}
}

func (e *Exact) Step(s State, dt float64) (State, Pose) {
	next := State{T: s.T + dt}
	p := e.PoseAt(next)
	next.U = next.T * e.StatorR / e.RotorR
	next.Phi = p.Phi
	return next, p
}

// PoseAt depends only on s.T.
func (e *Exact) PoseAt(s State) Pose {
	phi := s.T * (1 - e.StatorR/e.RotorR)
	center := geom.Polar(e.StatorR-e.RotorR, s.T)
	return Pose{
		Pen:     center.Add(geom.Polar(e.Offset, phi)),
		Center:  center,
		Contact: geom.Polar(e.StatorR, s.T),
		Phi:     phi,
	}
}

func (e *Exact) Stator() geom.Ellipse { return e.stator }
func (e *Exact) Rotor() geom.Ellipse  { return e.rotor }
func (e *Exact) PenOffset() float64   { return e.Offset }
func (e *Exact) Mode() Mode           { return ModeExact }
func (e *Exact) sealed()              {}
