// Package export renders a trace to a standalone high-resolution PNG,
// independent of the live viewport's size.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/kinematics"
	"github.com/san-kum/spirograph/internal/render"
	"github.com/san-kum/spirograph/internal/theme"
	"github.com/san-kum/spirograph/internal/view"
)

const (
	TargetWidth = 3000
	Product     = "spirograph"
	Watermark   = "spirograph · rolling ellipses"

	// Text sizes and margins as fractions of the target width.
	panelFont  = 1.0 / 110
	footerFont = 1.0 / 90
	marginFrac = 1.0 / 60
)

var ErrNoViewport = errors.New("export: source viewport is empty")

// Request is everything needed to reproduce the live picture offscreen.
type Request struct {
	Points   []geom.Vec
	Gear     config.Gear
	Pen      config.Pen
	View     view.Transform
	Viewport view.Viewport
	Theme    theme.Theme
	Annotate bool
}

// FromCompositor captures the live trace, geometry and view.
func FromCompositor(c *render.Compositor, th theme.Theme, annotate bool) Request {
	return Request{
		Points:   c.Store().Snapshot().Points,
		Gear:     c.Gear(),
		Pen:      c.Pen(),
		View:     *c.Transform(),
		Viewport: c.Viewport(),
		Theme:    th,
		Annotate: annotate,
	}
}

type Image struct {
	Width, Height int
	PNG           []byte
}

// Renderer owns an offscreen raster separate from the live surface.
type Renderer struct {
	raster *render.Raster
	width  int
}

func NewRenderer() *Renderer {
	return &Renderer{raster: render.NewRaster(), width: TargetWidth}
}

// WithWidth overrides the target width.
func (r *Renderer) WithWidth(w int) *Renderer {
	if w > 0 {
		r.width = w
	}
	return r
}

// Render draws the request at the target width. The live translate and
// scale are reused, multiplied by target/source width.
func (r *Renderer) Render(req Request) (*Image, error) {
	if !req.Viewport.Valid() {
		return nil, ErrNoViewport
	}
	s := float64(r.width) / req.Viewport.W
	h := int(math.Round(req.Viewport.H * s))
	if h < 1 {
		h = 1
	}

	th := req.Theme
	if th.Name == "" {
		th = theme.Dark
	}
	frame := render.Frame{
		Width:      r.width,
		Height:     h,
		Background: render.Hex(string(th.Background)),
		Origin:     req.View.Origin(req.Viewport).Scale(s),
		Scale:      req.View.K * s,
		Density:    s,
	}
	if err := r.raster.BeginFrame(frame); err != nil {
		return nil, err
	}

	var overlay *render.Overlay
	if req.Annotate {
		o := render.NewOverlay(kinematics.Select(req.Gear), kinematics.State{}, th)
		overlay = &o
	}
	if err := render.DrawScene(r.raster, req.Points, render.TraceStroke(req.Pen, th), overlay); err != nil {
		_, _ = r.raster.EndFrame()
		return nil, fmt.Errorf("draw trace: %w", err)
	}
	if req.Annotate {
		if err := r.drawPanel(panelLines(req.Gear, req.Pen, th), th, h); err != nil {
			_, _ = r.raster.EndFrame()
			return nil, fmt.Errorf("draw panel: %w", err)
		}
	}
	if err := r.drawFooter(th, h); err != nil {
		_, _ = r.raster.EndFrame()
		return nil, fmt.Errorf("draw watermark: %w", err)
	}
	if _, err := r.raster.EndFrame(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.raster.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &Image{Width: r.width, Height: h, PNG: buf.Bytes()}, nil
}

func (r *Renderer) drawPanel(lines []string, th theme.Theme, height int) error {
	size := float64(r.width) * panelFont
	margin := float64(r.width) * marginFrac
	pad := size * 0.8
	gap := size * 0.35

	var w, h float64
	heights := make([]float64, len(lines))
	for i, l := range lines {
		lw, lh, err := r.raster.MeasureText(l, size)
		if err != nil {
			return err
		}
		w = math.Max(w, lw)
		heights[i] = lh
		h += lh
	}
	h += gap * float64(len(lines)-1)

	bw, bh := w+2*pad, h+2*pad
	x := margin
	y := float64(height) - margin - bh
	if err := r.raster.FillRect(x, y, bw, bh, withAlpha(render.Hex(string(th.Panel)), 0xe0)); err != nil {
		return err
	}

	col := render.Hex(string(th.Text))
	ty := y + pad
	for i, l := range lines {
		if err := r.raster.DrawText(l, geom.V(x+pad, ty), size, col); err != nil {
			return err
		}
		ty += heights[i] + gap
	}
	return nil
}

func (r *Renderer) drawFooter(th theme.Theme, h int) error {
	size := float64(r.width) * footerFont
	w, lh, err := r.raster.MeasureText(Watermark, size)
	if err != nil {
		return err
	}
	margin := float64(r.width) * marginFrac / 2
	p := geom.V((float64(r.width)-w)/2, float64(h)-margin-lh)
	return r.raster.DrawText(Watermark, p, size, render.Hex(string(th.Muted)))
}

func (r *Renderer) Close() error {
	return r.raster.Close()
}

func withAlpha(c color.Color, a uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}

// Filename is <product>-<timestamp>[-with-data].png.
func Filename(t time.Time, annotated bool) string {
	suffix := ""
	if annotated {
		suffix = "-with-data"
	}
	return fmt.Sprintf("%s-%s%s.png", Product, t.Format("20060102-150405"), suffix)
}
