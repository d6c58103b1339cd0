// Package batch runs headless simulations and renders them to images,
// one goroutine per job.
package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/dynamo"
	"github.com/san-kum/spirograph/internal/export"
	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/kinematics"
	"github.com/san-kum/spirograph/internal/metrics"
	"github.com/san-kum/spirograph/internal/theme"
	"github.com/san-kum/spirograph/internal/trace"
	"github.com/san-kum/spirograph/internal/view"
)

// checkEvery is how many sub-steps run between context checks.
const checkEvery = 1024

type Job struct {
	Name     string
	Config   *config.Config
	Steps    int
	Viewport view.Viewport
	Annotate bool
}

type Result struct {
	Name    string
	Image   *export.Image
	Points  int
	Metrics map[string]float64
}

// Simulate advances a fresh store by steps sub-steps from rest.
func Simulate(ctx context.Context, cfg *config.Config, steps int) (*trace.Store, map[string]float64, error) {
	if steps < 0 {
		return nil, nil, fmt.Errorf("steps must be non-negative, got %d", steps)
	}
	eng := kinematics.NewEngine(cfg.Gear, cfg.Playback.Dt)
	ms := []metrics.Metric{
		metrics.NewMinRadius(),
		metrics.NewMaxRadius(),
		metrics.NewSlip(eng.Kinematics()),
		metrics.NewClosure(),
	}
	observe := metrics.Emit(ms...)

	store := trace.New()
	for done := 0; done < steps; {
		select {
		case <-ctx.Done():
			return store, nil, ctx.Err()
		default:
		}

		n := min(checkEvery, steps-done)
		pts := make([]geom.Vec, 0, n)
		st := eng.Advance(store.State(), n, func(s kinematics.State, p kinematics.Pose) {
			observe(s, p)
			pts = append(pts, p.Pen)
		})
		store.AppendBatch(st, pts)
		done += n
		if last := pts[len(pts)-1]; !last.IsValid() {
			return store, nil, fmt.Errorf("after %d steps: %w", done, dynamo.ErrInvalidState)
		}
	}

	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
	}
	return store, values, nil
}

// NewRequest fits the whole trace and gears into vp and builds an export
// request for it.
func NewRequest(cfg *config.Config, store *trace.Store, vp view.Viewport, annotate bool) export.Request {
	snap := store.Snapshot()
	tr := view.Identity()
	tr.Reset(vp, view.Extent(cfg.Gear, snap.Bounds))
	return export.Request{
		Points:   snap.Points,
		Gear:     cfg.Gear,
		Pen:      cfg.Pen,
		View:     tr,
		Viewport: vp,
		Theme:    theme.Get(cfg.Playback.Theme),
		Annotate: annotate,
	}
}

// Run renders every job concurrently at the given export width. Results
// keep the order of jobs. The first error wins.
func Run(ctx context.Context, jobs []Job, width int) ([]Result, error) {
	results := make([]Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()
			results[idx], errs[idx] = runOne(ctx, job, width)
		}(i, job)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", jobs[i].Name, err)
		}
	}
	return results, nil
}

func runOne(ctx context.Context, job Job, width int) (Result, error) {
	if err := job.Config.Validate(); err != nil {
		return Result{}, err
	}
	store, values, err := Simulate(ctx, job.Config, job.Steps)
	if err != nil {
		return Result{}, err
	}

	// gg contexts are not shared between goroutines.
	r := export.NewRenderer().WithWidth(width)
	defer r.Close()
	img, err := r.Render(NewRequest(job.Config, store, job.Viewport, job.Annotate))
	if err != nil {
		return Result{}, err
	}
	return Result{Name: job.Name, Image: img, Points: store.Len(), Metrics: values}, nil
}
