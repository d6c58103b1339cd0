// Package kinematics advances a rotor rolling without slipping inside a
// stator and reports where the pen is.
//
// Two variants implement [Kinematics]:
//
//   - [Exact]: both curves are circles; the pen follows the closed-form
//     hypotrochoid and stepping is O(1) with no drift.
//   - [Numeric]: at least one curve is an ellipse; the rotor parameter is
//     found by integrating du/dt = |S'(t)| / |Q'(u)| with RK4 and the
//     rotor pose is rebuilt from the contact point and tangents.
//
// [Select] picks the variant once per gear configuration. [State] values
// are passed into and returned from every step; nothing is retained
// between calls except integrator scratch space.
//
// # Example
//
//	eng := kinematics.NewEngine(cfg.Gear, cfg.Playback.Dt)
//	s := kinematics.State{}
//	s = eng.Advance(s, 1000, func(s kinematics.State, p kinematics.Pose) {
//		store.Append(s, p.Pen)
//	})
package kinematics
