package kinematics

import "github.com/san-kum/spirograph/internal/config"

// Engine advances a State by fixed virtual sub-steps of Dt radians of
// stator angle.
type Engine struct {
	kin Kinematics
	dt  float64
}

func NewEngine(g config.Gear, dt float64) *Engine {
	return &Engine{kin: Select(g), dt: dt}
}

// Reconfigure re-selects the variant for a new gear. The caller's State is
// kept; only the geometry changes.
func (e *Engine) Reconfigure(g config.Gear, dt float64) {
	e.kin = Select(g)
	e.dt = dt
}

func (e *Engine) Kinematics() Kinematics { return e.kin }
func (e *Engine) Dt() float64            { return e.dt }

// Advance performs n sub-steps from s, calling emit after each, and returns
// the final state.
func (e *Engine) Advance(s State, n int, emit func(State, Pose)) State {
	for i := 0; i < n; i++ {
		var p Pose
		s, p = e.kin.Step(s, e.dt)
		if emit != nil {
			emit(s, p)
		}
	}
	return s
}

// Trajectory runs n sub-steps from the zero State and returns every pose.
func (e *Engine) Trajectory(n int) []Pose {
	out := make([]Pose, 0, n)
	e.Advance(State{}, n, func(_ State, p Pose) {
		out = append(out, p)
	})
	return out
}
