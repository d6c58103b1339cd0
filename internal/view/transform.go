// Package view maps world coordinates to device pixels and turns pointer
// gestures into pan and zoom.
package view

import (
	"math"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/kinematics"
)

const (
	KMin = 0.05
	KMax = 40.0

	// FitPadding is the share of the viewport half-size used by Reset.
	FitPadding = 0.9
)

// Viewport is the size of the drawing surface in device pixels.
type Viewport struct {
	W, H float64
}

func (v Viewport) Center() geom.Vec { return geom.V(v.W/2, v.H/2) }
func (v Viewport) Valid() bool      { return v.W > 0 && v.H > 0 }

// Transform places world point w at Center + (X, Y) + w·K on screen.
type Transform struct {
	X, Y float64
	K    float64
}

func Identity() Transform {
	return Transform{K: 1}
}

func (t Transform) Offset() geom.Vec { return geom.V(t.X, t.Y) }

// Origin is where the world origin lands on screen.
func (t Transform) Origin(vp Viewport) geom.Vec {
	return vp.Center().Add(t.Offset())
}

func (t Transform) WorldToScreen(vp Viewport, w geom.Vec) geom.Vec {
	return t.Origin(vp).Add(w.Scale(t.K))
}

func (t Transform) ScreenToWorld(vp Viewport, s geom.Vec) geom.Vec {
	return s.Sub(t.Origin(vp)).Scale(1 / t.K)
}

func clampK(k float64) float64 {
	return math.Max(KMin, math.Min(KMax, k))
}

// ZoomAt scales by factor, clamped to [KMin, KMax], keeping the world point
// under anchor fixed.
func (t *Transform) ZoomAt(vp Viewport, anchor geom.Vec, factor float64) {
	if !(factor > 0) {
		return
	}
	world := t.ScreenToWorld(vp, anchor)
	t.K = clampK(t.K * factor)
	off := anchor.Sub(vp.Center()).Sub(world.Scale(t.K))
	t.X, t.Y = off.X, off.Y
}

func (t *Transform) Pan(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

// Pinch zooms by the ratio of successive pointer distances about the
// current midpoint.
func (t *Transform) Pinch(vp Viewport, prev, cur [2]geom.Vec) {
	d0 := prev[0].Dist(prev[1])
	d1 := cur[0].Dist(cur[1])
	if d0 == 0 || d1 == 0 {
		return
	}
	t.ZoomAt(vp, cur[0].Mid(cur[1]), d1/d0)
}

// Reset fits a disc of the given world radius into the viewport and
// centres the origin.
func (t *Transform) Reset(vp Viewport, extent float64) {
	t.X, t.Y = 0, 0
	if !vp.Valid() || !(extent > 0) {
		t.K = 1
		return
	}
	t.K = clampK(FitPadding * math.Min(vp.W, vp.H) / 2 / extent)
}

// Extent is the world radius Reset should fit: the largest of the trace,
// the stator and the region the rotor and pen can sweep.
func Extent(g config.Gear, trace geom.Bounds) float64 {
	stator := kinematics.StatorEllipse(g)
	rotor := kinematics.RotorEllipse(g)
	rotorMin := math.Min(math.Abs(rotor.A), math.Abs(rotor.B))
	sweep := math.Abs(stator.MaxRadius()-rotorMin) + math.Max(rotor.MaxRadius(), g.PenOffset)
	return math.Max(trace.Radius(), math.Max(stator.MaxRadius(), sweep))
}
