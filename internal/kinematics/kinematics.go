package kinematics

import (
	"math"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/geom"
)

// CircularTolerance is how far an aspect may stray from 1 and still be
// treated as a circle.
const CircularTolerance = 0.005

type Mode int

const (
	ModeExact Mode = iota
	ModeNumeric
)

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// State is the simulation state: stator angle T, rotor parameter U and
// rotor rotation Phi. The zero value is the start of a trace.
type State struct {
	T, U, Phi float64
}

// Pose is the world geometry at a given State.
type Pose struct {
	Pen     geom.Vec
	Center  geom.Vec
	Contact geom.Vec
	Phi     float64
}

// Kinematics is implemented by Exact and Numeric only.
type Kinematics interface {
	Step(s State, dt float64) (State, Pose)
	PoseAt(s State) Pose
	Stator() geom.Ellipse
	Rotor() geom.Ellipse
	PenOffset() float64
	Mode() Mode
	sealed()
}

// IsCircular reports whether both aspects are within CircularTolerance of 1.
func IsCircular(g config.Gear) bool {
	return math.Abs(g.StatorAspect-1) <= CircularTolerance &&
		math.Abs(g.RotorAspect-1) <= CircularTolerance
}

// Select returns the variant for g. Callers re-select on configuration
// change, never per step.
func Select(g config.Gear) Kinematics {
	if IsCircular(g) {
		return NewExact(g)
	}
	return NewNumeric(g)
}

// StatorEllipse and RotorEllipse apply the aspect convention documented on
// config.Gear.
func StatorEllipse(g config.Gear) geom.Ellipse {
	return geom.Scaled(g.StatorRadius, g.StatorAspect, 1)
}

func RotorEllipse(g config.Gear) geom.Ellipse {
	return geom.Scaled(g.RotorRadius, 1, g.RotorAspect)
}
