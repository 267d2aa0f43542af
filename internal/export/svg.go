package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/viewport"
)

type SVGOptions struct {
	Width, Height   int
	Margins         viewport.Margins
	ReferenceColor  string
	PathColor       string
	BackgroundColor string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:           640,
		Height:          600,
		Margins:         viewport.Margins{Left: 40, Right: 20, Top: 20, Bottom: 60},
		ReferenceColor:  "#5f87af",
		PathColor:       "#00ff00",
		BackgroundColor: "#0a0a0a",
	}
}

// TrajectoryToSVG plots the reference trajectory dashed and the simulated
// path solid, fitted together the same way the interactive view fits them.
// The last point of path gets an impact marker.
func TrajectoryToSVG(reference, path []kinematics.Vec2, opts SVGOptions) string {
	if len(reference) == 0 && len(path) == 0 {
		return ""
	}

	area := viewport.Rect{W: float64(opts.Width), H: float64(opts.Height)}
	all := make([]kinematics.Vec2, 0, len(reference)+len(path))
	all = append(all, reference...)
	all = append(all, path...)
	tf := viewport.Compute(all, area, opts.Margins)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.BackgroundColor))

	// ground and vertical axis through the world origin
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444444" stroke-width="1"/>
`, opts.Margins.Left, tf.Origin.Y, area.W-opts.Margins.Right, tf.Origin.Y))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444444" stroke-width="1"/>
`, tf.Origin.X, opts.Margins.Top, tf.Origin.X, area.H-opts.Margins.Bottom))

	if len(reference) > 1 {
		writePath(&sb, tf.Project(reference), opts.ReferenceColor, ` stroke-dasharray="4 3"`)
	}
	if len(path) > 1 {
		writePath(&sb, tf.Project(path), opts.PathColor, "")
	}
	if len(path) > 0 {
		p := tf.WorldToScreen(path[len(path)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, p.X, p.Y, opts.PathColor))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writePath(sb *strings.Builder, pts []kinematics.Vec2, color, extra string) {
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"%s d="M`, color, extra))
	for i, p := range pts {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}
	sb.WriteString("\"/>\n")
}
