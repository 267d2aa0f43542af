package viz

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/projectile"
	"github.com/san-kum/trajsim/internal/session"
	"github.com/san-kum/trajsim/internal/viewport"
)

const (
	panelWidth      = 44
	historyCapacity = 600
	// maxFrameDelta caps the wall time fed to one step after a stall.
	maxFrameDelta = 0.25

	minPlotWidth  = 20
	minPlotHeight = 8

	// in sub-pixels
	rangeTick = 2
	arrowHead = 4.0
)

const (
	inputVI = iota
	inputVF
	noFocus = -1
)

type TickMsg time.Time

// Options configures a new Model.
type Options struct {
	Settings     session.Settings
	InitialSpeed float64
	FinalSpeed   *float64
	Angle        float64
	Multiplier   float64
	FPS          int
	Theme        string
}

// Model is the interactive view: text inputs for the speeds, a braille plot
// of the current frame and a status panel.
type Model struct {
	sess   *session.Session
	frame  session.Frame
	canvas *Canvas
	theme  Theme

	inputs []textinput.Model
	focus  int

	fps      int
	lastTick time.Time

	speedHistory []float64
	message      string
	showHelp     bool
}

func NewModel(opts Options) Model {
	sess := session.New(opts.Settings)
	sess.SetAngle(opts.Angle)
	if opts.Multiplier > 0 {
		sess.SetMultiplier(opts.Multiplier)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}

	area := opts.Settings.Area
	m := Model{
		sess:         sess,
		canvas:       NewCanvas(int(area.W)/2, int(area.H)/4),
		theme:        GetTheme(opts.Theme),
		inputs:       []textinput.Model{newSpeedInput("initial speed"), newSpeedInput("final speed (opt)")},
		focus:        noFocus,
		fps:          fps,
		speedHistory: make([]float64, 0, historyCapacity),
	}

	if opts.InitialSpeed > 0 {
		m.inputs[inputVI].SetValue(formatSpeed(opts.InitialSpeed))
	}
	if opts.FinalSpeed != nil {
		m.inputs[inputVF].SetValue(formatSpeed(*opts.FinalSpeed))
	}
	m.applyInputs()
	return m
}

func newSpeedInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 10
	ti.Width = 18
	ti.Prompt = ""
	return ti
}

func formatSpeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Run starts the interactive program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.sess.Scroll(1)
		case tea.MouseButtonWheelDown:
			m.sess.Scroll(-1)
		}
		m.frame = m.sess.Frame()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus != noFocus {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			return m, m.focusInput(inputVI)
		case "?":
			m.showHelp = !m.showHelp
		case "c":
			m.theme = NextTheme(m.theme.Name)
		default:
			if cmd, ok := KeyCommand(msg.String()); ok {
				m.apply(cmd)
			}
		}
	case TickMsg:
		now := time.Time(msg)
		m.frame = m.sess.Step(frameDelta(m.lastTick, now))
		m.lastTick = now
		if m.frame.Sim.Status == projectile.Running {
			m.speedHistory = append(m.speedHistory, m.frame.Sim.Speed)
			if len(m.speedHistory) > historyCapacity {
				m.speedHistory = m.speedHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// KeyCommand maps a key to a session command.
func KeyCommand(key string) (session.Command, bool) {
	switch key {
	case " ":
		return session.Launch, true
	case "p":
		return session.TogglePause, true
	case "r":
		return session.Stop, true
	case "v":
		return session.ToggleVectors, true
	case "t":
		return session.ToggleTrail, true
	case "+", "=":
		return session.SpeedUp, true
	case "-", "_":
		return session.SlowDown, true
	case "up", "k":
		return session.AngleUp, true
	case "down", "j":
		return session.AngleDown, true
	}
	return 0, false
}

func (m *Model) apply(cmd session.Command) {
	err := m.sess.Apply(cmd)
	switch {
	case errors.Is(err, kinematics.ErrInvalidSpeed):
		m.message = "enter a positive initial speed to launch"
	case err != nil:
		m.message = err.Error()
	case cmd == session.Launch:
		m.message = ""
		m.speedHistory = m.speedHistory[:0]
		st := m.sess.Simulation().Snapshot()
		log.Debug("launch", "angle", m.sess.Angle(), "impact", st.HasImpact, "t", st.ImpactTime)
	}
	m.frame = m.sess.Frame()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m, m.focusInput((m.focus + 1) % len(m.inputs))
	case "shift+tab":
		return m, m.focusInput((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case "esc", "enter":
		m.blurInputs()
		return m, nil
	}

	if msg.Type == tea.KeyRunes && !numeric(msg.Runes) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.applyInputs()
	return m, cmd
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.blurInputs()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = noFocus
}

// applyInputs pushes the text fields into the session. Empty or unparsable
// fields count as missing.
func (m *Model) applyInputs() {
	m.sess.SetInputs(parseSpeed(m.inputs[inputVI].Value()), parseSpeed(m.inputs[inputVF].Value()))
	m.frame = m.sess.Frame()
}

func parseSpeed(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func numeric(rs []rune) bool {
	for _, r := range rs {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

// frameDelta is the wall time between ticks in seconds, zero on the first
// tick and capped at maxFrameDelta.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() {
		return 0
	}
	dt := now.Sub(prev).Seconds()
	if dt < 0 {
		return 0
	}
	return min(dt, maxFrameDelta)
}

// resize fits the plot into the terminal next to the panel.
func (m *Model) resize(width, height int) {
	w := max(width-panelWidth-1-canvasStyle.GetHorizontalFrameSize(), minPlotWidth)
	h := max(height-canvasStyle.GetVerticalFrameSize()-1, minPlotHeight)
	m.canvas.Resize(w, h)

	cw, ch := m.canvas.SubPixels()
	m.sess.SetLayout(viewport.Rect{W: float64(cw), H: float64(ch)}, m.sess.Settings().Margins)
	m.frame = m.sess.Frame()
}

// draw renders the current frame onto the canvas.
func (m *Model) draw() {
	c, f := m.canvas, m.frame
	c.Clear()

	c.SetPen(InkAxis)
	mg := m.sess.Settings().Margins
	left, right := px(f.Area.X+mg.Left), px(f.Area.Right()-mg.Right)
	top, bottom := px(f.Area.Y+mg.Top), px(f.Area.Bottom()-mg.Bottom)
	ox, oy := px(f.Origin.X), px(f.Origin.Y)
	c.DrawLine(left, oy, right, oy)
	c.DrawLine(ox, top, ox, bottom)

	if f.HasSolution() {
		// range guide along the ground from launch to landing
		c.SetPen(InkRange)
		lx := px(f.Landing.X)
		c.DrawLine(ox, oy, lx, oy)
		c.DrawLine(ox, oy-rangeTick, ox, oy+rangeTick)
		c.DrawLine(lx, oy-rangeTick, lx, oy+rangeTick)

		c.SetPen(InkReference)
		c.Polyline(f.Trajectory)
		c.SetPen(InkLanding)
		c.Marker(f.Landing)
	}
	if f.ShowTrail && len(f.Trail) > 0 {
		if len(f.Trail) == 1 {
			c.SetPen(InkTrail)
			c.Polyline(f.Trail)
		}
		for i := 1; i < len(f.Trail); i++ {
			c.SetPen(trailInk(i, len(f.Trail)))
			c.Polyline(f.Trail[i-1 : i+1])
		}
	}
	if f.ShowVector {
		c.SetPen(InkVector)
		c.Arrow(f.Projectile, f.VectorTip, arrowHead)
	}
	if f.ShowProjectile {
		c.SetPen(InkProjectile)
		c.Marker(f.Projectile)
	}
}

// trailInk fades the trail by age: segment i of n points, oldest first.
func trailInk(i, n int) Ink {
	age := float64(i) / float64(n)
	switch {
	case age <= 1.0/3:
		return InkTrailFaint
	case age <= 2.0/3:
		return InkTrailMid
	}
	return InkTrail
}

func px(v float64) int { return int(math.Round(v)) }

func statusLine(s projectile.Status) string {
	switch s {
	case projectile.Running:
		return StatusRunning.Render(s.String())
	case projectile.Paused:
		return StatusPaused.Render(s.String())
	}
	return StatusStopped.Render(s.String())
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme.InkStyles()))

	f := m.frame
	var s strings.Builder
	s.WriteString(headerStyle.Render("TRAJSIM") + "\n")
	s.WriteString(statusLine(f.Sim.Status) + "\n\n")

	for i, label := range []string{"vi (m/s)", "vf (m/s)"} {
		l := labelStyle.Render(label)
		if i == m.focus {
			l = focusedInput.Width(12).Render(label)
		}
		s.WriteString(l + m.inputs[i].View() + "\n")
	}
	s.WriteString(row("Angle", fmt.Sprintf("%.1f°", f.Angle)))
	s.WriteString(row("Sim speed", fmt.Sprintf("x%.2f", f.Multiplier)))

	errStyle := lipgloss.NewStyle().Foreground(m.theme.Error)
	warnStyle := lipgloss.NewStyle().Foreground(m.theme.Warning)
	switch {
	case !f.HasInput():
		s.WriteString(warnStyle.Render("enter an initial speed") + "\n")
	case f.SolutionErr != nil:
		s.WriteString(row("Δy", fmt.Sprintf("%.2f m", f.Params.DeltaY())))
		s.WriteString(errStyle.Render("target height unreachable") + "\n")
	default:
		s.WriteString(row("Δy", fmt.Sprintf("%.2f m", f.Solution.DeltaY)))
		s.WriteString(row("Flight", fmt.Sprintf("%.2f s", f.Solution.TimeOfFlight)))
		s.WriteString(row("Range", fmt.Sprintf("%.2f m", f.Solution.Range)))
	}

	s.WriteString("\n")
	st := f.Sim
	s.WriteString(row("Time", fmt.Sprintf("%.2fs", st.Elapsed)))
	s.WriteString(row("Position", fmt.Sprintf("(%.2f, %.2f)", st.Position.X, st.Position.Y)))
	s.WriteString(row("Velocity", fmt.Sprintf("(%.2f, %.2f)", st.Velocity.X, st.Velocity.Y)))
	s.WriteString(row("Speed", fmt.Sprintf("%.2f m/s", st.Speed)))
	if st.HasImpact {
		s.WriteString(labelStyle.Render("Progress") + ProgressBar(st.Elapsed/st.ImpactTime, 20) + "\n")
	}

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.message != "" {
		s.WriteString(errStyle.Render(m.message) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Launch P:Pause R:Stop Q:Quit\nV:Vectors T:Trail +/-:Speed\n↑↓/Wheel:Angle Tab:Inputs ?:Help"))
	panelView := panelStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space     - Launch                  ║
║  P         - Pause/Resume            ║
║  R         - Stop                    ║
║  Up/K      - Raise angle             ║
║  Down/J    - Lower angle             ║
║  Wheel     - Turn angle              ║
║  +/-       - Simulation speed        ║
║  V         - Toggle velocity vector  ║
║  T         - Toggle trail            ║
║  Tab       - Edit speeds (Esc done)  ║
║  C         - Cycle colors            ║
║  Q         - Quit                    ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
