// Package dynamo provides the ODE primitives the kinematics engine builds on.
//
//   - [State]: vector representing integrator state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//
// The rolling-without-slipping constraint of an elliptical rotor is a
// one-dimensional [System]; see package kinematics.
package dynamo
