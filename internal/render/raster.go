package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/san-kum/spirograph/internal/geom"
	"golang.org/x/image/font/gofont/goregular"
)

// Nominal overlay sizes in device pixels.
const (
	statorWidth   = 1.5
	rotorWidth    = 1.5
	spokeWidth    = 1.0
	armWidth      = 2.0
	holderRadius  = 7.0
	penTipRadius  = 2.5
	contactRadius = 4.0
)

var fontSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Raster is a Surface backed by a gg software context. It reuses its pixel
// buffer across frames while the size is unchanged.
type Raster struct {
	ctx     *gg.Context
	frame   Frame
	inFrame bool
	faces   map[float64]text.Face
}

func NewRaster() *Raster {
	return &Raster{faces: make(map[float64]text.Face)}
}

func (r *Raster) BeginFrame(f Frame) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrSurfaceUnavailable, f.Width, f.Height)
	}
	if !(f.Scale > 0) {
		return fmt.Errorf("%w: scale %g", ErrSurfaceUnavailable, f.Scale)
	}
	if r.ctx == nil || r.ctx.Width() != f.Width || r.ctx.Height() != f.Height {
		if r.ctx != nil {
			_ = r.ctx.Close()
		}
		r.ctx = gg.NewContext(f.Width, f.Height)
	}
	if f.Background == nil {
		f.Background = color.Black
	}
	r.frame = f
	r.inFrame = true

	r.ctx.Identity()
	r.ctx.ClearWithColor(gg.FromColor(f.Background))
	r.ctx.Translate(f.Origin.X, f.Origin.Y)
	r.ctx.Scale(f.Scale, f.Scale)
	r.ctx.SetLineCap(gg.LineCapRound)
	r.ctx.SetLineJoin(gg.LineJoinRound)
	return nil
}

// px converts a nominal pixel length to world units for the current frame.
func (r *Raster) px(v float64) float64 {
	return v * r.frame.density() / r.frame.Scale
}

func (r *Raster) DrawPolyline(pts []geom.Vec, s Stroke) error {
	if !r.inFrame {
		return fmt.Errorf("%w: draw outside frame", ErrSurfaceUnavailable)
	}
	switch len(pts) {
	case 0:
		return nil
	case 1:
		r.ctx.SetColor(s.Color)
		r.ctx.DrawCircle(pts[0].X, pts[0].Y, r.px(s.Width/2))
		return r.ctx.Fill()
	}
	r.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.ctx.LineTo(p.X, p.Y)
	}
	r.ctx.SetColor(s.Color)
	r.ctx.SetLineWidth(r.px(s.Width))
	return r.ctx.Stroke()
}

func (r *Raster) strokeWith(col color.Color, width float64) error {
	r.ctx.SetColor(col)
	r.ctx.SetLineWidth(r.px(width))
	return r.ctx.Stroke()
}

func (r *Raster) fillWith(col color.Color) error {
	r.ctx.SetColor(col)
	return r.ctx.Fill()
}

func (r *Raster) DrawOverlay(o Overlay) error {
	if !r.inFrame {
		return fmt.Errorf("%w: draw outside frame", ErrSurfaceUnavailable)
	}
	c := r.ctx
	p := o.Pose

	c.DrawEllipse(0, 0, o.Stator.A, o.Stator.B)
	if err := r.strokeWith(o.StatorColor, statorWidth); err != nil {
		return err
	}

	c.Push()
	c.Translate(p.Center.X, p.Center.Y)
	c.Rotate(p.Phi)
	c.DrawEllipse(0, 0, o.Rotor.A, o.Rotor.B)
	err := r.strokeWith(o.RotorColor, rotorWidth)
	if err == nil {
		c.DrawLine(-o.Rotor.A, 0, o.Rotor.A, 0)
		c.DrawLine(0, -o.Rotor.B, 0, o.Rotor.B)
		err = r.strokeWith(o.RotorColor, spokeWidth)
	}
	c.Pop()
	if err != nil {
		return err
	}

	c.DrawLine(p.Center.X, p.Center.Y, p.Pen.X, p.Pen.Y)
	if err := r.strokeWith(o.RotorColor, armWidth); err != nil {
		return err
	}

	c.DrawCircle(p.Pen.X, p.Pen.Y, r.px(holderRadius))
	if err := r.fillWith(o.RotorColor); err != nil {
		return err
	}
	c.DrawCircle(p.Pen.X, p.Pen.Y, r.px(penTipRadius))
	if err := r.fillWith(o.AccentColor); err != nil {
		return err
	}

	c.DrawCircle(p.Contact.X, p.Contact.Y, r.px(contactRadius))
	return r.strokeWith(o.AccentColor, spokeWidth)
}

func (r *Raster) face(size float64) (text.Face, error) {
	size = math.Round(size*4) / 4
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	src, err := fontSource()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	f := src.Face(size)
	r.faces[size] = f
	return f, nil
}

// MeasureText returns the advance width and line height of s at size
// pixels.
func (r *Raster) MeasureText(s string, size float64) (w, h float64, err error) {
	f, err := r.face(size)
	if err != nil {
		return 0, 0, err
	}
	w, h = text.Measure(s, f)
	return w, h, nil
}

// DrawText draws s in screen space with its top-left corner at p.
func (r *Raster) DrawText(s string, p geom.Vec, size float64, col color.Color) error {
	if !r.inFrame {
		return fmt.Errorf("%w: draw outside frame", ErrSurfaceUnavailable)
	}
	f, err := r.face(size)
	if err != nil {
		return err
	}
	r.ctx.Push()
	r.ctx.Identity()
	r.ctx.SetFont(f)
	r.ctx.SetColor(col)
	r.ctx.DrawString(s, p.X, p.Y+f.Metrics().Ascent)
	r.ctx.Pop()
	return nil
}

// FillRect fills a screen-space rectangle.
func (r *Raster) FillRect(x, y, w, h float64, col color.Color) error {
	if !r.inFrame {
		return fmt.Errorf("%w: draw outside frame", ErrSurfaceUnavailable)
	}
	r.ctx.Push()
	r.ctx.Identity()
	r.ctx.DrawRectangle(x, y, w, h)
	err := r.fillWith(col)
	r.ctx.Pop()
	return err
}

func (r *Raster) EndFrame() (image.Image, error) {
	if !r.inFrame {
		return nil, fmt.Errorf("%w: no frame in progress", ErrSurfaceUnavailable)
	}
	r.inFrame = false
	r.ctx.ClearPath()
	return r.ctx.Image(), nil
}

// EncodePNG writes the last finished frame as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.ctx == nil || r.inFrame {
		return fmt.Errorf("%w: no finished frame", ErrSurfaceUnavailable)
	}
	return r.ctx.EncodePNG(w)
}

// Close releases the gg context.
func (r *Raster) Close() error {
	if r.ctx == nil {
		return nil
	}
	err := r.ctx.Close()
	r.ctx = nil
	return err
}
