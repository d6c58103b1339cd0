package export

import (
	"fmt"
	"log/slog"
	"time"
)

// Saver persists an encoded image under name and returns where it went.
type Saver interface {
	Save(name string, data []byte) (string, error)
}

// Exporter renders a request and hands the PNG to a Saver.
type Exporter struct {
	renderer *Renderer
	saver    Saver
	logger   *slog.Logger
	now      func() time.Time
}

func NewExporter(r *Renderer, s Saver, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{renderer: r, saver: s, logger: logger, now: time.Now}
}

// WithClock replaces the timestamp source used for filenames.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

func (e *Exporter) Export(req Request) (string, error) {
	start := time.Now()
	img, err := e.renderer.Render(req)
	if err != nil {
		return "", fmt.Errorf("render export: %w", err)
	}
	name := Filename(e.now(), req.Annotate)
	loc, err := e.saver.Save(name, img.PNG)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	e.logger.Info("exported",
		"path", loc,
		"size", fmt.Sprintf("%dx%d", img.Width, img.Height),
		"points", len(req.Points),
		"annotated", req.Annotate,
		"elapsed", time.Since(start))
	return loc, nil
}
