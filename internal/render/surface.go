package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/kinematics"
)

// ErrSurfaceUnavailable means a frame could not be started. The frame is
// dropped and the next tick tries again.
var ErrSurfaceUnavailable = errors.New("render: surface unavailable")

// Frame describes one pass over a surface: its pixel size, background, and
// the world-to-screen mapping (screen = Origin + world·Scale). Density
// multiplies nominal stroke widths and overlay sizes; zero means 1.
type Frame struct {
	Width, Height int
	Background    color.Color
	Origin        geom.Vec
	Scale         float64
	Density       float64
}

func (f Frame) density() float64 {
	if f.Density > 0 {
		return f.Density
	}
	return 1
}

type Stroke struct {
	Color color.Color
	Width float64
}

// Overlay is the gear drawing for a single pose.
type Overlay struct {
	Stator    geom.Ellipse
	Rotor     geom.Ellipse
	PenOffset float64
	Pose      kinematics.Pose

	StatorColor color.Color
	RotorColor  color.Color
	AccentColor color.Color
}

type Surface interface {
	BeginFrame(f Frame) error
	DrawPolyline(pts []geom.Vec, s Stroke) error
	DrawOverlay(o Overlay) error
	EndFrame() (image.Image, error)
}

// Hex parses a #rrggbb colour.
func Hex(s string) color.Color {
	return gg.Hex(s).Color()
}

// DrawScene draws a trace and, if o is non-nil, an overlay on a surface
// that is already inside a frame.
func DrawScene(s Surface, pts []geom.Vec, stroke Stroke, o *Overlay) error {
	if err := s.DrawPolyline(pts, stroke); err != nil {
		return err
	}
	if o != nil {
		return s.DrawOverlay(*o)
	}
	return nil
}
