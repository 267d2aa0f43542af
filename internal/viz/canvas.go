package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/trajsim/internal/kinematics"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Ink tags which layer last touched a cell so it can be colored.
type Ink uint8

const (
	InkNone Ink = iota
	InkAxis
	InkRange
	InkReference
	InkTrailFaint
	InkTrailMid
	InkTrail
	InkProjectile
	InkVector
	InkLanding
)

// Canvas is a braille dot grid. Coordinates are sub-pixels; the canvas
// holds (Width*2) x (Height*4) of them.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Inks          [][]Ink

	pen Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w x h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Inks = make([][]Ink, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Inks[i] = make([]Ink, w)
	}
	c.Clear()
}

// SubPixels returns the drawable size in dots.
func (c *Canvas) SubPixels() (w, h int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) SetPen(ink Ink) { c.pen = ink }

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Inks[row][col] = c.pen
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Inks[i][j] = InkNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Polyline joins consecutive screen points. Points far outside the canvas
// are skipped rather than rasterised.
func (c *Canvas) Polyline(pts []kinematics.Vec2) {
	if len(pts) == 1 {
		x, y, ok := c.dot(pts[0])
		if ok {
			c.Set(x, y)
		}
		return
	}
	for i := 1; i < len(pts); i++ {
		x0, y0, ok0 := c.dot(pts[i-1])
		x1, y1, ok1 := c.dot(pts[i])
		if ok0 && ok1 {
			c.DrawLine(x0, y0, x1, y1)
		}
	}
}

// Marker draws a small plus centred on p.
func (c *Canvas) Marker(p kinematics.Vec2) {
	x, y, ok := c.dot(p)
	if !ok {
		return
	}
	c.Set(x, y)
	c.Set(x-1, y)
	c.Set(x+1, y)
	c.Set(x, y-1)
	c.Set(x, y+1)
}

// Arrow draws a shaft from one point to another with a two-stroke head of
// the given length at the tip.
func (c *Canvas) Arrow(from, to kinematics.Vec2, head float64) {
	c.Polyline([]kinematics.Vec2{from, to})
	d := to.Sub(from)
	if d.IsZero() {
		return
	}
	a := math.Atan2(d.Y, d.X)
	for _, spread := range []float64{-arrowSpread, arrowSpread} {
		wing := kinematics.Vec2{
			X: to.X - head*math.Cos(a+spread),
			Y: to.Y - head*math.Sin(a+spread),
		}
		c.Polyline([]kinematics.Vec2{to, wing})
	}
}

// arrowSpread is the half-angle of an arrowhead in radians.
const arrowSpread = 0.5

func (c *Canvas) dot(p kinematics.Vec2) (int, int, bool) {
	w, h := c.SubPixels()
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return 0, 0, false
	}
	if p.X < -float64(w) || p.X > 2*float64(w) || p.Y < -float64(h) || p.Y > 2*float64(h) {
		return 0, 0, false
	}
	return int(math.Round(p.X)), int(math.Round(p.Y)), true
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors each cell by the ink that last touched it. Runs of the same
// ink share one style call.
func (c *Canvas) Render(styles map[Ink]lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Inks[i][j] == c.Inks[i][start] {
				continue
			}
			seg := string(row[start:j])
			if st, ok := styles[c.Inks[i][start]]; ok {
				seg = st.Render(seg)
			}
			b.WriteString(seg)
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
