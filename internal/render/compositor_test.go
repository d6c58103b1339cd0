package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/theme"
	"github.com/san-kum/spirograph/internal/trace"
	"github.com/san-kum/spirograph/internal/view"
)

type recordingSurface struct {
	failNext int
	frames   []Frame
	lines    [][]geom.Vec
	strokes  []Stroke
	overlays []Overlay
	ended    int
}

func (s *recordingSurface) BeginFrame(f Frame) error {
	if s.failNext > 0 {
		s.failNext--
		return ErrSurfaceUnavailable
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *recordingSurface) DrawPolyline(pts []geom.Vec, st Stroke) error {
	s.lines = append(s.lines, pts)
	s.strokes = append(s.strokes, st)
	return nil
}

func (s *recordingSurface) DrawOverlay(o Overlay) error {
	s.overlays = append(s.overlays, o)
	return nil
}

func (s *recordingSurface) EndFrame() (image.Image, error) {
	s.ended++
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func newTestCompositor(surface Surface) (*Compositor, *config.Config) {
	cfg := config.DefaultConfig()
	c := NewCompositor(cfg, trace.New(), surface, nil)
	c.Resize(400, 300)
	return c, cfg
}

func TestDecimate(t *testing.T) {
	pts := make([]geom.Vec, 12)
	for i := range pts {
		pts[i] = geom.V(float64(i), 0)
	}

	got := Decimate(pts, 5)
	want := []float64{0, 5, 10, 11}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i, x := range want {
		if got[i].X != x {
			t.Errorf("point %d: expected x=%v, got %v", i, x, got[i].X)
		}
	}

	// Last point already on the stride is not duplicated.
	if got := Decimate(pts[:11], 5); len(got) != 3 || got[2].X != 10 {
		t.Errorf("unexpected decimation %v", got)
	}
	if got := Decimate(pts, 1); len(got) != len(pts) {
		t.Errorf("stride 1 should keep all points")
	}
}

func TestTickAdvancesWhenPlaying(t *testing.T) {
	surf := &recordingSurface{}
	c, cfg := newTestCompositor(surf)

	if _, err := c.Tick(cfg.Playback); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if got, want := c.Store().Len(), cfg.Playback.SubSteps(); got != want {
		t.Errorf("expected %d points, got %d", want, got)
	}
	if len(surf.lines[0]) != cfg.Playback.SubSteps() {
		t.Errorf("expected full trace drawn, got %d points", len(surf.lines[0]))
	}
	if len(surf.overlays) != 1 {
		t.Errorf("expected overlay drawn")
	}

	pb := cfg.Playback
	pb.Playing = false
	pb.ShowGears = false
	if _, err := c.Tick(pb); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if got := c.Store().Len(); got != cfg.Playback.SubSteps() {
		t.Errorf("paused tick appended points: %d", got)
	}
	if len(surf.overlays) != 1 {
		t.Errorf("overlay drawn with gears hidden")
	}
	if surf.ended != 2 {
		t.Errorf("expected 2 completed frames, got %d", surf.ended)
	}
}

func TestTickSpeedMultipliesSubSteps(t *testing.T) {
	c, cfg := newTestCompositor(&recordingSurface{})
	pb := cfg.Playback
	pb.Speed = 3

	if _, err := c.Tick(pb); err != nil {
		t.Fatal(err)
	}
	if got := c.Store().Len(); got != 3*cfg.Playback.StepsPerTick {
		t.Errorf("expected %d points, got %d", 3*cfg.Playback.StepsPerTick, got)
	}
}

func TestTickWaitsForViewport(t *testing.T) {
	surf := &recordingSurface{}
	cfg := config.DefaultConfig()
	c := NewCompositor(cfg, trace.New(), surf, nil)

	for range 3 {
		_, err := c.Tick(cfg.Playback)
		if !errors.Is(err, ErrSurfaceUnavailable) {
			t.Fatalf("expected ErrSurfaceUnavailable before resize, got %v", err)
		}
	}
	if c.Store().Len() != 0 {
		t.Errorf("trace advanced before the viewport was sized: %d points", c.Store().Len())
	}
	if len(surf.frames) != 0 || c.Dropped() != 0 {
		t.Errorf("expected no frames and no drops, got %d frames %d dropped", len(surf.frames), c.Dropped())
	}

	c.Resize(400, 300)
	if _, err := c.Tick(cfg.Playback); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if got, want := c.Store().Len(), cfg.Playback.SubSteps(); got != want {
		t.Errorf("expected %d points, got %d", want, got)
	}
	if got, want := c.Store().State().T, float64(cfg.Playback.SubSteps())*cfg.Playback.Dt; math.Abs(got-want) > 1e-9 {
		t.Errorf("expected the trace to start at t=0 (t=%g after one tick), got %g", want, got)
	}
}

func TestSurfaceFailureDropsOnlyThatFrame(t *testing.T) {
	surf := &recordingSurface{failNext: 1}
	c, cfg := newTestCompositor(surf)

	_, err := c.Tick(cfg.Playback)
	if !errors.Is(err, ErrSurfaceUnavailable) {
		t.Fatalf("expected ErrSurfaceUnavailable, got %v", err)
	}
	if c.Dropped() != 1 {
		t.Errorf("expected 1 dropped frame, got %d", c.Dropped())
	}

	if _, err := c.Tick(cfg.Playback); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(surf.lines) != 1 || len(surf.lines[0]) != 2*cfg.Playback.SubSteps() {
		t.Errorf("expected retry to draw the whole trace")
	}
}

func TestFarZoomStridesButKeepsFinalPoint(t *testing.T) {
	surf := &recordingSurface{}
	c, cfg := newTestCompositor(surf)
	c.Advance(103)
	c.Transform().K = StrideScale / 2

	pb := cfg.Playback
	pb.Playing = false
	if _, err := c.Tick(pb); err != nil {
		t.Fatal(err)
	}

	drawn := surf.lines[0]
	all := c.Store().Snapshot().Points
	if len(drawn) >= len(all) {
		t.Errorf("expected decimated trace, got %d of %d points", len(drawn), len(all))
	}
	if drawn[len(drawn)-1] != all[len(all)-1] {
		t.Error("final point missing from decimated trace")
	}
}

func TestClearResetsTrace(t *testing.T) {
	c, cfg := newTestCompositor(&recordingSurface{})
	if _, err := c.Tick(cfg.Playback); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	snap := c.Store().Snapshot()
	if snap.Len() != 0 || snap.State.T != 0 {
		t.Errorf("clear left %d points at t=%f", snap.Len(), snap.State.T)
	}
}

func TestResizeIsIdempotent(t *testing.T) {
	c, _ := newTestCompositor(&recordingSurface{})
	fitted := *c.Transform()
	if fitted.K == 1 {
		t.Fatal("expected first resize to fit the view")
	}

	c.Transform().Pan(10, 10)
	c.Resize(400, 300)
	if got := *c.Transform(); got.X != 10 || got.Y != 10 {
		t.Errorf("same-size resize changed the transform: %+v", got)
	}
	if c.Viewport() != (view.Viewport{W: 400, H: 300}) {
		t.Errorf("unexpected viewport %+v", c.Viewport())
	}
}

func TestConfigureKeepsTrace(t *testing.T) {
	c, cfg := newTestCompositor(&recordingSurface{})
	c.Advance(50)

	next := *cfg
	next.Gear.StatorAspect = 0.7
	c.Configure(&next)

	if c.Engine().Kinematics().Mode().String() != "numeric" {
		t.Error("expected numeric mode after reconfigure")
	}
	if c.Store().Len() != 50 {
		t.Errorf("reconfigure lost points: %d", c.Store().Len())
	}
}

func TestTraceStroke(t *testing.T) {
	cfg := config.DefaultConfig()
	st := TraceStroke(config.Pen{Color: "#ff0000", Width: 0}, themeFor(cfg))
	r, g, b, _ := st.Color.RGBA()
	if r>>8 != 0xff || g != 0 || b != 0 {
		t.Errorf("expected red pen, got %v", st.Color)
	}
	if st.Width != config.DefaultPenWidth {
		t.Errorf("expected default width, got %f", st.Width)
	}
}

func TestRasterFrame(t *testing.T) {
	c, cfg := newTestCompositor(NewRaster())
	img, err := c.Tick(cfg.Playback)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("expected 400x300, got %v", b)
	}
	bg := color.NRGBAModel.Convert(Hex(string(themeFor(cfg).Background))).(color.NRGBA)
	got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	if got != bg {
		t.Errorf("expected background %v in the corner, got %v", bg, got)
	}
}

func TestRasterRejectsEmptySurface(t *testing.T) {
	r := NewRaster()
	err := r.BeginFrame(Frame{Width: 0, Height: 100, Scale: 1})
	if !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("expected ErrSurfaceUnavailable, got %v", err)
	}
	if _, err := r.EndFrame(); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("expected EndFrame without frame to fail, got %v", err)
	}
}

// Stroke weight must not depend on zoom.
func TestRasterStrokeWidthIsScreenConstant(t *testing.T) {
	coverage := func(scale float64) int {
		r := NewRaster()
		defer r.Close()
		f := Frame{Width: 60, Height: 60, Background: color.White, Origin: geom.V(30, 30), Scale: scale}
		if err := r.BeginFrame(f); err != nil {
			t.Fatal(err)
		}
		half := 25 / scale
		if err := r.DrawPolyline([]geom.Vec{geom.V(-half, 0), geom.V(half, 0)}, Stroke{Color: color.Black, Width: 4}); err != nil {
			t.Fatal(err)
		}
		img, err := r.EndFrame()
		if err != nil {
			t.Fatal(err)
		}
		n := 0
		for y := 0; y < 60; y++ {
			if r, _, _, _ := img.At(30, y).RGBA(); r < 0x8000 {
				n++
			}
		}
		return n
	}

	near, far := coverage(1), coverage(6)
	if near == 0 {
		t.Fatal("line not drawn")
	}
	if d := near - far; d < -1 || d > 1 {
		t.Errorf("line weight changed with zoom: %d px at k=1, %d px at k=6", near, far)
	}
}

func themeFor(cfg *config.Config) theme.Theme {
	return theme.Get(cfg.Playback.Theme)
}
