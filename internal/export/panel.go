package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/spirograph/internal/config"
	"github.com/san-kum/spirograph/internal/kinematics"
	"github.com/san-kum/spirograph/internal/ratio"
	"github.com/san-kum/spirograph/internal/theme"
)

// panelLines lists the ratio, geometry and pen styling shown on an
// annotated export.
func panelLines(g config.Gear, pen config.Pen, th theme.Theme) []string {
	f, hinted := ratio.Effective(g)
	source := fmt.Sprintf("≈ %.5f", ratio.Of(g))
	if hinted {
		source = "preset"
	}

	col := pen.Color
	if col == "" {
		col = string(th.Trace)
	}
	width := pen.Width
	if !(width > 0) {
		width = config.DefaultPenWidth
	}

	return []string{
		fmt.Sprintf("ratio  %s  (%s)", f, source),
		fmt.Sprintf("lobes  %d", ratio.Lobes(f)),
		fmt.Sprintf("stator  R %s  aspect %s", num(g.StatorRadius), num(g.StatorAspect)),
		fmt.Sprintf("rotor   r %s  aspect %s", num(g.RotorRadius), num(g.RotorAspect)),
		fmt.Sprintf("pen     d %s  width %s  %s", num(g.PenOffset), num(width), strings.ToLower(col)),
		fmt.Sprintf("mode    %s  theme %s", kinematics.Select(g).Mode(), th.Name),
	}
}

func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
