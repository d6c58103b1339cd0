package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/spirograph/internal/batch"
	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/export"
	"github.com/san-kum/spirograph/internal/kinematics"
	"github.com/san-kum/spirograph/internal/logging"
	"github.com/san-kum/spirograph/internal/metrics"
	"github.com/san-kum/spirograph/internal/ratio"
	"github.com/san-kum/spirograph/internal/render"
	"github.com/san-kum/spirograph/internal/storage"
	"github.com/san-kum/spirograph/internal/trace"
	"github.com/san-kum/spirograph/internal/view"
	"github.com/san-kum/spirograph/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	preset       string
	themeName    string
	outDir       string
	logLevel     string
	logFile      string
	steps        int
	profSteps    int
	galleryWidth int
	annotate     bool
	viewW        int
	viewH        int
	traceCSV     bool
	statorR      float64
	rotorR       float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "spirograph",
		Short:        "rolling-ellipse spirograph simulator",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&themeName, "theme", "", "colour theme (dark, light, blueprint)")
	pf.Float64Var(&statorR, "stator", 0, "override the stator radius R (drops any ratio hint)")
	pf.Float64Var(&rotorR, "rotor", 0, "override the rotor radius r (drops any ratio hint)")
	pf.StringVar(&outDir, "out", ".", "directory for exported images")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "also write JSON logs to this file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate in the terminal",
		RunE:  runLive,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "simulate headlessly and export a PNG",
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&steps, "steps", 20000, "number of sub-steps to simulate")
	renderCmd.Flags().BoolVar(&annotate, "annotate", false, "add the gear overlay and data panel")
	renderCmd.Flags().IntVar(&viewW, "view-width", 1000, "source viewport width in pixels")
	renderCmd.Flags().IntVar(&viewH, "view-height", 1000, "source viewport height in pixels")
	renderCmd.Flags().BoolVar(&traceCSV, "trace-csv", false, "also save the trace points as CSV")

	galleryCmd := &cobra.Command{
		Use:   "gallery",
		Short: "render every preset concurrently",
		RunE:  runGallery,
	}
	galleryCmd.Flags().IntVar(&steps, "steps", 20000, "number of sub-steps per preset")
	galleryCmd.Flags().BoolVar(&annotate, "annotate", false, "add the gear overlay and data panel")
	galleryCmd.Flags().IntVar(&viewW, "view-width", 1000, "source viewport width in pixels")
	galleryCmd.Flags().IntVar(&viewH, "view-height", 1000, "source viewport height in pixels")
	galleryCmd.Flags().IntVar(&galleryWidth, "width", 1200, "image width in pixels")

	ratioCmd := &cobra.Command{
		Use:   "ratio",
		Short: "print the effective rotor/stator ratio",
		RunE:  runRatio,
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the pen's distance from the centre",
		RunE:  runProfile,
	}
	profileCmd.Flags().IntVar(&profSteps, "steps", 5000, "number of sub-steps to simulate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list gear presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liveCmd, renderCmd, galleryCmd, ratioCmd, profileCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the preset and flags. Radius
// flags apply after the preset so "--preset classic --rotor 48" edits the
// preset's rotor.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		cfg.Gear = p.Gear
	}
	cfg.ApplyOverrides(statorR, rotorR, themeName)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(console io.Writer) (*slog.Logger, io.Closer, error) {
	return logging.New(logging.Options{Level: logLevel, Console: console, File: logFile})
}

func runLive(cmd *cobra.Command, args []string) error {
	// The terminal belongs to bubbletea; log to the file only.
	logger, closer, err := setupLogging(nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	surface := render.NewRaster()
	defer surface.Close()
	comp := render.NewCompositor(cfg, trace.New(), surface, logger)

	renderer := export.NewRenderer()
	defer renderer.Close()
	exp := export.NewExporter(renderer, storage.New(outDir), logger)

	m := viz.NewModel(cfg, comp, exp, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("live view closed", "points", comp.Store().Len(), "dropped_frames", comp.Dropped())
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	logger, closer, err := setupLogging(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, values, err := batch.Simulate(cmd.Context(), cfg, steps)
	if err != nil {
		return err
	}
	logger.Debug("simulated", "steps", steps, "t", store.State().T, "slip", values["slip"])

	vp := view.Viewport{W: float64(viewW), H: float64(viewH)}
	saver := storage.New(outDir)
	renderer := export.NewRenderer()
	defer renderer.Close()
	exp := export.NewExporter(renderer, saver, logger)

	loc, err := exp.Export(batch.NewRequest(cfg, store, vp, annotate))
	if err != nil {
		return err
	}
	fmt.Println(loc)

	if traceCSV {
		name := filepath.Base(loc)
		name = name[:len(name)-len(filepath.Ext(name))] + ".csv"
		csvPath, err := saver.SaveTrace(name, store.Snapshot().Points)
		if err != nil {
			return fmt.Errorf("save trace: %w", err)
		}
		fmt.Println(csvPath)
	}
	return nil
}

func runGallery(cmd *cobra.Command, args []string) error {
	logger, closer, err := setupLogging(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	base, err := loadConfig()
	if err != nil {
		return err
	}

	vp := view.Viewport{W: float64(viewW), H: float64(viewH)}
	var jobs []batch.Job
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		cfg.Pen = base.Pen
		cfg.Playback = base.Playback
		jobs = append(jobs, batch.Job{Name: name, Config: cfg, Steps: steps, Viewport: vp, Annotate: annotate})
	}

	start := time.Now()
	results, err := batch.Run(cmd.Context(), jobs, galleryWidth)
	if err != nil {
		return err
	}

	saver := storage.New(outDir)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPOINTS\tSLIP\tCLOSURE\tFILE")
	for _, r := range results {
		loc, err := saver.Save(fmt.Sprintf("%s-%s.png", export.Product, r.Name), r.Image.PNG)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.2e\t%.3f\t%s\n", r.Name, r.Points, r.Metrics["slip"], r.Metrics["closure"], loc)
	}
	logger.Info("gallery rendered", "presets", len(results), "elapsed", time.Since(start))
	return w.Flush()
}

func runRatio(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g := cfg.Gear
	rotor, stator := ratio.Circumferences(g)
	f, hinted := ratio.Effective(g)
	best := ratio.Best(ratio.Of(g), ratio.MaxDenominator)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "stator circumference\t%.4f\n", stator)
	fmt.Fprintf(w, "rotor circumference\t%.4f\n", rotor)
	fmt.Fprintf(w, "ratio\t%.6f\n", ratio.Of(g))
	fmt.Fprintf(w, "best fraction\t%s\n", best)
	if hinted {
		fmt.Fprintf(w, "preset ratio\t%s\n", f)
	}
	fmt.Fprintf(w, "lobes\t%d\n", ratio.Lobes(f))
	fmt.Fprintf(w, "mode\t%s\n", kinematics.Select(g).Mode())
	return w.Flush()
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if profSteps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", profSteps)
	}

	eng := kinematics.NewEngine(cfg.Gear, cfg.Playback.Dt)
	summary := []metrics.Metric{
		metrics.NewMinRadius(),
		metrics.NewMaxRadius(),
		metrics.NewSlip(eng.Kinematics()),
		metrics.NewClosure(),
	}
	observe := metrics.Emit(summary...)

	const samples = 160
	stride := max(profSteps/samples, 1)
	data := make([]float64, 0, samples+1)
	i := 0
	eng.Advance(kinematics.State{}, profSteps, func(s kinematics.State, p kinematics.Pose) {
		observe(s, p)
		if i%stride == 0 {
			data = append(data, p.Pen.Len())
		}
		i++
	})

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("pen radius over %d sub-steps (dt=%g)", profSteps, cfg.Playback.Dt)),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mode\t%s\n", eng.Kinematics().Mode())
	for _, m := range summary {
		fmt.Fprintf(w, "%s\t%.6g\n", m.Name(), m.Value())
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tR\tr\td\tASPECTS\tRATIO")
	for _, name := range config.ListPresets() {
		g := config.GetPreset(name).Gear
		f, _ := ratio.Effective(g)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g/%g\t%s\n",
			name, g.StatorRadius, g.RotorRadius, g.PenOffset, g.StatorAspect, g.RotorAspect, f)
	}
	return w.Flush()
}
