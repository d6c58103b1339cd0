package render

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/kinematics"
	"github.com/san-kum/spirograph/internal/theme"
	"github.com/san-kum/spirograph/internal/trace"
	"github.com/san-kum/spirograph/internal/view"
)

const (
	// Below StrideScale pixels per world unit the trace is decimated to
	// every FarStride-th point.
	StrideScale = 0.25
	FarStride   = 5
)

// Compositor owns the live surface and drives one frame per Tick.
type Compositor struct {
	engine  *kinematics.Engine
	store   *trace.Store
	surface Surface
	logger  *slog.Logger

	gear config.Gear
	pen  config.Pen
	vp   view.Viewport
	view view.Transform

	dropped int
}

func NewCompositor(cfg *config.Config, store *trace.Store, surface Surface, logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compositor{
		engine:  kinematics.NewEngine(cfg.Gear, cfg.Playback.Dt),
		store:   store,
		surface: surface,
		logger:  logger,
		gear:    cfg.Gear,
		pen:     cfg.Pen,
		view:    view.Identity(),
	}
}

// Configure applies a new gear, pen and step size. The trace and
// simulation state are kept.
func (c *Compositor) Configure(cfg *config.Config) {
	if cfg.Gear != c.gear || cfg.Playback.Dt != c.engine.Dt() {
		c.engine.Reconfigure(cfg.Gear, cfg.Playback.Dt)
		c.logger.Debug("gear reconfigured",
			"mode", c.engine.Kinematics().Mode().String(),
			"stator", cfg.Gear.StatorRadius, "rotor", cfg.Gear.RotorRadius)
	}
	c.gear = cfg.Gear
	c.pen = cfg.Pen
}

func (c *Compositor) Engine() *kinematics.Engine { return c.engine }
func (c *Compositor) Store() *trace.Store        { return c.store }
func (c *Compositor) Gear() config.Gear          { return c.gear }
func (c *Compositor) Pen() config.Pen            { return c.pen }
func (c *Compositor) Viewport() view.Viewport    { return c.vp }
func (c *Compositor) Transform() *view.Transform { return &c.view }
func (c *Compositor) Dropped() int               { return c.dropped }

// Resize records the surface size in pixels. Repeating the same size is a
// no-op.
func (c *Compositor) Resize(w, h int) {
	vp := view.Viewport{W: float64(w), H: float64(h)}
	if vp == c.vp {
		return
	}
	first := !c.vp.Valid()
	c.vp = vp
	if first {
		c.ResetView()
	}
}

// ResetView fits the current trace and gears into the viewport.
func (c *Compositor) ResetView() {
	c.view.Reset(c.vp, view.Extent(c.gear, c.store.Snapshot().Bounds))
}

// Clear empties the trace and rewinds the simulation together.
func (c *Compositor) Clear() {
	c.store.Clear()
}

// Advance runs n engine sub-steps from the stored state and appends one
// point per sub-step.
func (c *Compositor) Advance(n int) {
	if n <= 0 {
		return
	}
	pts := make([]geom.Vec, 0, n)
	s := c.engine.Advance(c.store.State(), n, func(_ kinematics.State, p kinematics.Pose) {
		pts = append(pts, p.Pen)
	})
	c.store.AppendBatch(s, pts)
}

// Tick advances the engine if playing and redraws everything. A surface
// failure drops this frame only and is reported wrapped in
// ErrSurfaceUnavailable. Until the first valid Resize nothing advances or
// draws, so the trace starts at t=0 in a fitted view.
func (c *Compositor) Tick(pb config.Playback) (image.Image, error) {
	if !c.vp.Valid() {
		return nil, fmt.Errorf("viewport %gx%g not sized: %w", c.vp.W, c.vp.H, ErrSurfaceUnavailable)
	}
	if pb.Playing {
		c.Advance(pb.SubSteps())
	}

	th := theme.Get(pb.Theme)
	snap := c.store.Snapshot()
	frame := Frame{
		Width:      int(c.vp.W),
		Height:     int(c.vp.H),
		Background: Hex(string(th.Background)),
		Origin:     c.view.Origin(c.vp),
		Scale:      c.view.K,
	}
	if err := c.surface.BeginFrame(frame); err != nil {
		c.dropped++
		c.logger.Debug("frame dropped", "err", err, "dropped", c.dropped)
		return nil, fmt.Errorf("begin frame: %w", err)
	}

	pts := snap.Points
	if c.view.K < StrideScale {
		pts = Decimate(pts, FarStride)
	}

	var overlay *Overlay
	if pb.ShowGears {
		o := NewOverlay(c.engine.Kinematics(), snap.State, th)
		overlay = &o
	}
	if err := DrawScene(c.surface, pts, TraceStroke(c.pen, th), overlay); err != nil {
		_, _ = c.surface.EndFrame()
		return nil, fmt.Errorf("draw: %w", err)
	}
	return c.surface.EndFrame()
}

// TraceStroke is the pen stroke: the configured colour, or the theme's.
func TraceStroke(pen config.Pen, th theme.Theme) Stroke {
	col := string(th.Trace)
	if pen.Color != "" {
		col = pen.Color
	}
	w := pen.Width
	if !(w > 0) {
		w = config.DefaultPenWidth
	}
	return Stroke{Color: Hex(col), Width: w}
}

// NewOverlay builds the gear overlay for state s.
func NewOverlay(k kinematics.Kinematics, s kinematics.State, th theme.Theme) Overlay {
	return Overlay{
		Stator:      k.Stator(),
		Rotor:       k.Rotor(),
		PenOffset:   k.PenOffset(),
		Pose:        k.PoseAt(s),
		StatorColor: Hex(string(th.Stator)),
		RotorColor:  Hex(string(th.Rotor)),
		AccentColor: Hex(string(th.Accent)),
	}
}

// Decimate keeps every stride-th point and always the last one.
func Decimate(pts []geom.Vec, stride int) []geom.Vec {
	if stride <= 1 || len(pts) <= 2 {
		return pts
	}
	out := make([]geom.Vec, 0, len(pts)/stride+2)
	for i := 0; i < len(pts); i += stride {
		out = append(out, pts[i])
	}
	if (len(pts)-1)%stride != 0 {
		out = append(out, pts[len(pts)-1])
	}
	return out
}
