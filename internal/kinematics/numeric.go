package kinematics

import (
	"math"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/dynamo"
	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/integrators"
)

// minRotorSpeed keeps du/dt finite when the rotor is nearly flat.
const minRotorSpeed = 1e-9

// rolling is the no-slip constraint du/dt = |S'(t)| / |Q'(u)| as a
// one-dimensional system over x = [u].
type rolling struct {
	stator, rotor geom.Ellipse
}

func (r *rolling) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{r.stator.Speed(t) / math.Max(r.rotor.Speed(x[0]), minRotorSpeed)}
}

func (r *rolling) StateDim() int { return 1 }

// Numeric integrates the rolling constraint for elliptical curves.
type Numeric struct {
	sys   *rolling
	integ dynamo.Integrator
	d     float64
}

func NewNumeric(g config.Gear) *Numeric {
	return &Numeric{
		sys:   &rolling{stator: StatorEllipse(g), rotor: RotorEllipse(g)},
		integ: integrators.NewRK4(),
		d:     g.PenOffset,
	}
}

func (n *Numeric) Step(s State, dt float64) (State, Pose) {
	x := n.integ.Step(n.sys, dynamo.State{s.U}, s.T, dt)
	next := State{T: s.T + dt, U: x[0], Phi: s.Phi}
	p := n.PoseAt(next)
	next.Phi = p.Phi
	return next, p
}

// PoseAt rebuilds world geometry from (T, U). In internal rolling the two
// tangents at the contact point are parallel, so the rotor rotation is the
// stator tangent angle minus the rotor's local tangent angle. The result is
// unwrapped to stay within π of s.Phi.
func (n *Numeric) PoseAt(s State) Pose {
	contact := n.sys.stator.Point(s.T)
	alpha := n.sys.stator.Tangent(s.T).Angle()
	beta := n.sys.rotor.Tangent(s.U).Angle()
	phi := unwrap(alpha-beta, s.Phi)

	center := contact.Sub(n.sys.rotor.Point(s.U).Rotate(phi))
	return Pose{
		Pen:     center.Add(geom.Polar(n.d, phi)),
		Center:  center,
		Contact: contact,
		Phi:     phi,
	}
}

func (n *Numeric) Stator() geom.Ellipse { return n.sys.stator }
func (n *Numeric) Rotor() geom.Ellipse  { return n.sys.rotor }
func (n *Numeric) PenOffset() float64   { return n.d }
func (n *Numeric) Mode() Mode           { return ModeNumeric }
func (n *Numeric) sealed()              {}

// unwrap returns the angle congruent to a (mod 2π) closest to ref.
func unwrap(a, ref float64) float64 {
	return a + 2*math.Pi*math.Round((ref-a)/(2*math.Pi))
}
