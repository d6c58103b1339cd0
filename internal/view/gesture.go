package view

import (
	"math"

	"github.com/san-kum/spirograph/internal/geom"
)

// WheelStep is the zoom factor per wheel notch.
const WheelStep = 1.1

type PointerID int

// Phase is one of Idle, Dragging or Pinching.
type Phase interface {
	phase() string
}

type Idle struct{}

type Dragging struct {
	Pointer PointerID
	Last    geom.Vec
}

type Pinching struct {
	Pointers [2]PointerID
	Pos      [2]geom.Vec
}

func (Idle) phase() string     { return "idle" }
func (Dragging) phase() string { return "dragging" }
func (Pinching) phase() string { return "pinching" }

// PhaseName is the lowercase name of p, for logs and the status line.
func PhaseName(p Phase) string { return p.phase() }

// Gestures is the pointer state machine. It owns no transform; every event
// takes the transform and viewport it should act on.
type Gestures struct {
	phase Phase
}

func NewGestures() *Gestures {
	return &Gestures{phase: Idle{}}
}

func (g *Gestures) Phase() Phase { return g.phase }

func (g *Gestures) Down(id PointerID, p geom.Vec) {
	switch s := g.phase.(type) {
	case Idle:
		g.phase = Dragging{Pointer: id, Last: p}
	case Dragging:
		if s.Pointer == id {
			g.phase = Dragging{Pointer: id, Last: p}
			return
		}
		g.phase = Pinching{Pointers: [2]PointerID{s.Pointer, id}, Pos: [2]geom.Vec{s.Last, p}}
	case Pinching:
		// A third pointer is ignored.
	}
}

func (g *Gestures) Move(t *Transform, vp Viewport, id PointerID, p geom.Vec) {
	switch s := g.phase.(type) {
	case Dragging:
		if s.Pointer != id {
			return
		}
		t.Pan(p.X-s.Last.X, p.Y-s.Last.Y)
		g.phase = Dragging{Pointer: id, Last: p}
	case Pinching:
		i := s.index(id)
		if i < 0 {
			return
		}
		next := s
		next.Pos[i] = p
		t.Pinch(vp, s.Pos, next.Pos)
		g.phase = next
	}
}

func (g *Gestures) Up(id PointerID) {
	switch s := g.phase.(type) {
	case Dragging:
		if s.Pointer == id {
			g.phase = Idle{}
		}
	case Pinching:
		i := s.index(id)
		if i < 0 {
			return
		}
		other := 1 - i
		g.phase = Dragging{Pointer: s.Pointers[other], Last: s.Pos[other]}
	}
}

// Cancel drops any gesture in progress, e.g. when the pointer leaves the
// surface.
func (g *Gestures) Cancel() {
	g.phase = Idle{}
}

// Wheel zooms about p by WheelStep per notch; positive notches zoom in.
func (g *Gestures) Wheel(t *Transform, vp Viewport, p geom.Vec, notches float64) {
	t.ZoomAt(vp, p, math.Pow(WheelStep, notches))
}

func (s Pinching) index(id PointerID) int {
	for i, pid := range s.Pointers {
		if pid == id {
			return i
		}
	}
	return -1
}
