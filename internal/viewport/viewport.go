// Package viewport fits world-space points into a plot area and maps them
// to screen coordinates.
//
// Screen Y grows downward while world Y grows upward, so the mapping flips
// the vertical axis. The fit always frames the world origin.
package viewport

import (
	"math"

	"github.com/san-kum/trajsim/internal/kinematics"
)

const (
	// DefaultScale is used when there is nothing to frame.
	DefaultScale = 6.0
	// MinScale keeps tiny extents from zooming past one pixel per meter.
	MinScale = 1.0

	extentEpsilon = 1e-6
)

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether a screen point lies inside the rectangle.
func (r Rect) Contains(p kinematics.Vec2) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Margins are insets from the plot edges in pixels.
type Margins struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// Usable returns the plot size left after margins.
func (m Margins) Usable(area Rect) (w, h float64) {
	return area.W - (m.Left + m.Right), area.H - (m.Top + m.Bottom)
}

// Transform maps world coordinates to screen pixels.
type Transform struct {
	Origin kinematics.Vec2 `json:"origin"`
	Scale  float64         `json:"scale"`
}

// Default is the transform used when no points are of interest: world origin
// at the bottom-left of the usable area.
func Default(area Rect, m Margins) Transform {
	return Transform{
		Origin: kinematics.Vec2{X: area.X + m.Left, Y: area.Bottom() - m.Bottom},
		Scale:  DefaultScale,
	}
}

// Compute fits points, plus the world origin, into area.
// The bounding box corner (minX, maxY) lands on the top-left margin.
func Compute(points []kinematics.Vec2, area Rect, m Margins) Transform {
	if len(points) == 0 {
		return Default(area, m)
	}

	minX, maxX, minY, maxY := 0.0, 0.0, 0.0, 0.0
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	width := math.Max(extentEpsilon, maxX-minX)
	height := math.Max(extentEpsilon, maxY-minY)

	usableW, usableH := m.Usable(area)
	scale := math.Max(MinScale, math.Min(usableW/width, usableH/height))

	return Transform{
		Origin: kinematics.Vec2{
			X: area.X + m.Left - minX*scale,
			Y: area.Y + m.Top + maxY*scale,
		},
		Scale: scale,
	}
}

// WorldToScreen maps a world point given an origin and scale.
func WorldToScreen(origin kinematics.Vec2, scale, x, y float64) (px, py float64) {
	return origin.X + x*scale, origin.Y - y*scale
}

func (t Transform) WorldToScreen(p kinematics.Vec2) kinematics.Vec2 {
	x, y := WorldToScreen(t.Origin, t.Scale, p.X, p.Y)
	return kinematics.Vec2{X: x, Y: y}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (t Transform) ScreenToWorld(p kinematics.Vec2) kinematics.Vec2 {
	return kinematics.Vec2{
		X: (p.X - t.Origin.X) / t.Scale,
		Y: (t.Origin.Y - p.Y) / t.Scale,
	}
}

// Project maps every point to screen space.
func (t Transform) Project(points []kinematics.Vec2) []kinematics.Vec2 {
	if len(points) == 0 {
		return nil
	}
	out := make([]kinematics.Vec2, len(points))
	for i, p := range points {
		out[i] = t.WorldToScreen(p)
	}
	return out
}
