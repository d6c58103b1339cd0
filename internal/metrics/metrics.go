// Package metrics observes a run pose by pose and summarises it.
package metrics

import (
	"math"

	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/kinematics"
)

type Metric interface {
	Name() string
	Observe(s kinematics.State, p kinematics.Pose)
	Value() float64
	Reset()
}

// Emit adapts metrics to the engine's per-step callback.
func Emit(ms ...Metric) func(kinematics.State, kinematics.Pose) {
	return func(s kinematics.State, p kinematics.Pose) {
		for _, m := range ms {
			m.Observe(s, p)
		}
	}
}

// PenRadius tracks the pen's distance from the stator centre.
type PenRadius struct {
	name    string
	max     bool
	value   float64
	samples int
}

func NewMaxRadius() *PenRadius { return &PenRadius{name: "pen_radius_max", max: true} }
func NewMinRadius() *PenRadius { return &PenRadius{name: "pen_radius_min"} }

func (r *PenRadius) Name() string { return r.name }

func (r *PenRadius) Observe(_ kinematics.State, p kinematics.Pose) {
	d := p.Pen.Len()
	switch {
	case r.samples == 0:
		r.value = d
	case r.max:
		r.value = math.Max(r.value, d)
	default:
		r.value = math.Min(r.value, d)
	}
	r.samples++
}

func (r *PenRadius) Value() float64 { return r.value }

func (r *PenRadius) Reset() {
	r.value = 0
	r.samples = 0
}

// Slip is the relative mismatch between arc length travelled on the
// stator and on the rotor. Rolling without slipping keeps it near zero.
type Slip struct {
	name          string
	stator, rotor geom.Ellipse
	prev          kinematics.State
	samples       int
	statorArc     float64
	rotorArc      float64
}

func NewSlip(k kinematics.Kinematics) *Slip {
	return &Slip{name: "slip", stator: k.Stator(), rotor: k.Rotor()}
}

func (s *Slip) Name() string { return s.name }

func (s *Slip) Observe(st kinematics.State, _ kinematics.Pose) {
	if s.samples > 0 {
		// Trapezoid rule over the step.
		dt := st.T - s.prev.T
		du := st.U - s.prev.U
		s.statorArc += 0.5 * (s.stator.Speed(s.prev.T) + s.stator.Speed(st.T)) * dt
		s.rotorArc += 0.5 * (s.rotor.Speed(s.prev.U) + s.rotor.Speed(st.U)) * du
	}
	s.prev = st
	s.samples++
}

func (s *Slip) Value() float64 {
	if s.statorArc == 0 {
		return 0
	}
	return math.Abs(s.statorArc-s.rotorArc) / math.Abs(s.statorArc)
}

func (s *Slip) Reset() {
	s.prev = kinematics.State{}
	s.samples = 0
	s.statorArc = 0
	s.rotorArc = 0
}

// Closure is the distance from the latest pen position back to the first.
// It approaches zero when the curve closes.
type Closure struct {
	name        string
	first, last geom.Vec
	samples     int
}

func NewClosure() *Closure { return &Closure{name: "closure"} }

func (c *Closure) Name() string { return c.name }

func (c *Closure) Observe(_ kinematics.State, p kinematics.Pose) {
	if c.samples == 0 {
		c.first = p.Pen
	}
	c.last = p.Pen
	c.samples++
}

func (c *Closure) Value() float64 { return c.first.Dist(c.last) }

func (c *Closure) Reset() {
	c.first, c.last = geom.Vec{}, geom.Vec{}
	c.samples = 0
}
