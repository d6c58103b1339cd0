package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/export"
	"github.com/san-kum/spirograph/internal/geom"
	"github.com/san-kum/spirograph/internal/ratio"
	"github.com/san-kum/spirograph/internal/render"
	"github.com/san-kum/spirograph/internal/theme"
	"github.com/san-kum/spirograph/internal/view"
)

const (
	FrameInterval = time.Second / 60
	// Rows reserved below the canvas for the status and help lines.
	chromeRows = 2
	panStep    = 24.0
	mousePtr   = view.PointerID(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea model for the live view. Update is the only place
// the simulation advances.
type Model struct {
	cfg      *config.Config
	comp     *render.Compositor
	exporter *export.Exporter
	gestures *view.Gestures
	canvas   *Canvas
	logger   *slog.Logger

	width, height int
	preset        string
	notice        string
	showHelp      bool
}

func NewModel(cfg *config.Config, comp *render.Compositor, exp *export.Exporter, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		cfg:      cfg,
		comp:     comp,
		exporter: exp,
		gestures: view.NewGestures(),
		canvas:   NewCanvas(0, 0),
		logger:   logger,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		m.frame()
		return m, tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.canvas.Resize(w, h-chromeRows)
	m.comp.Resize(m.canvas.PixelSize())
}

func (m *Model) frame() {
	img, err := m.comp.Tick(m.cfg.Playback)
	if err != nil {
		// Dropped frame; keep showing the previous one.
		return
	}
	m.canvas.Rasterize(img, render.Hex(string(m.theme().Background)))
}

func (m Model) theme() theme.Theme { return theme.Get(m.cfg.Playback.Theme) }

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pb := &m.cfg.Playback
	t := m.comp.Transform()
	vp := m.comp.Viewport()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		pb.Playing = !pb.Playing
	case "c":
		m.comp.Clear()
		m.notice = "cleared"
	case "e":
		m.export(false)
	case "E":
		m.export(true)
	case "t":
		pb.Theme = theme.Next(pb.Theme).Name
	case "p":
		m.nextPreset()
	case "g":
		pb.ShowGears = !pb.ShowGears
	case "[":
		pb.SetSpeed(pb.Speed - 1)
	case "]":
		pb.SetSpeed(pb.Speed + 1)
	case "+", "=":
		m.gestures.Wheel(t, vp, vp.Center(), 1)
	case "-", "_":
		m.gestures.Wheel(t, vp, vp.Center(), -1)
	case "left", "h":
		t.Pan(panStep, 0)
	case "right", "l":
		t.Pan(-panStep, 0)
	case "up", "k":
		t.Pan(0, panStep)
	case "down", "j":
		t.Pan(0, -panStep)
	case "0":
		m.comp.ResetView()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// cellCenter maps a terminal cell to the raster pixel at its centre.
func cellCenter(x, y int) geom.Vec {
	return geom.V(float64(x*2)+1, float64(y*4)+2)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	t := m.comp.Transform()
	vp := m.comp.Viewport()
	p := cellCenter(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.gestures.Wheel(t, vp, p, 1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.gestures.Wheel(t, vp, p, -1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.gestures.Down(mousePtr, p)
	case msg.Action == tea.MouseActionMotion:
		m.gestures.Move(t, vp, mousePtr, p)
	case msg.Action == tea.MouseActionRelease:
		m.gestures.Up(mousePtr)
	}
}

func (m *Model) export(annotate bool) {
	if m.exporter == nil {
		m.notice = "export unavailable"
		return
	}
	loc, err := m.exporter.Export(export.FromCompositor(m.comp, m.theme(), annotate))
	if err != nil {
		m.logger.Error("export failed", "err", err)
		m.notice = "export failed: " + err.Error()
		return
	}
	m.notice = "saved " + loc
}

func (m *Model) nextPreset() {
	names := config.ListPresets()
	next := names[0]
	for i, n := range names {
		if n == m.preset {
			next = names[(i+1)%len(names)]
			break
		}
	}
	p := config.GetPreset(next)
	m.preset = next
	m.cfg.Gear = p.Gear
	m.comp.Configure(m.cfg)
	m.comp.Clear()
	m.comp.ResetView()
	m.notice = "preset " + next
}

func (m Model) View() string {
	st := newStyles(m.theme())
	if m.showHelp {
		return st.helpBox.Render(helpText)
	}

	pb := m.cfg.Playback
	status := st.paused.Render("❚❚ PAUSED")
	if pb.Playing {
		status = st.playing.Render("▶ PLAYING")
	}

	f, _ := ratio.Effective(m.comp.Gear())
	snap := m.comp.Store().Snapshot()
	field := func(label, value string) string {
		return st.label.Render(label+" ") + st.value.Render(value)
	}
	parts := []string{
		status,
		field("speed", fmt.Sprintf("x%d", max(pb.Speed, 1))),
		field("ratio", f.String()),
		field("mode", m.comp.Engine().Kinematics().Mode().String()),
		field("zoom", fmt.Sprintf("%.2f", m.comp.Transform().K)),
		field("points", fmt.Sprintf("%d", snap.Len())),
	}
	if m.notice != "" {
		parts = append(parts, st.notice.Render(m.notice))
	}

	var s strings.Builder
	s.WriteString(st.canvas.Render(m.canvas.String()))
	s.WriteString("\n")
	s.WriteString(strings.Join(parts, "  "))
	s.WriteString("\n")
	s.WriteString(st.help.Render("SP:Play C:Clear E:Export T:Theme P:Preset G:Gears [ ]:Speed ?:Help Q:Quit"))
	if m.width <= 0 {
		return s.String()
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(s.String())
}

const helpText = `KEYBOARD SHORTCUTS

Space    Play/Pause
C        Clear trace
E        Export PNG
Shift+E  Export PNG with data panel
T        Cycle themes
P        Next preset
G        Show/hide gears
[ ]      Slower/faster
+ -      Zoom
Arrows   Pan
0        Fit to view
?        Toggle this help
Q        Quit

Mouse wheel zooms, left drag pans.`
