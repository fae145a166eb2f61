// Package tui is the interactive explorer: pick a preset, tweak the
// frame, run the analysis, then watch the modes sway and scan the
// response curves.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/engine"
	"github.com/san-kum/shearlab/internal/metrics"
	"github.com/san-kum/shearlab/internal/report"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var presetInfo = map[string]string{
	"bare":       "undamped frame",
	"tuned":      "tuned absorber on the roof",
	"random":     "seeded random absorbers",
	"soft-story": "weak ground story",
}

type screen int

const (
	screenMenu screen = iota
	screenConfig
	screenResults
)

type resultView int

const (
	viewSway resultView = iota
	viewResponse
)

type model struct {
	screen  screen
	cursor  int
	presets []string

	selected    string
	base        *config.Config
	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string
	runErr      error

	run    *engine.Result
	shapes [][]float64
	peaks  []metrics.Peak

	view    resultView
	mode    int
	dof     int
	paused  bool
	phase   float64
	field   swayField
	history []float64

	width  int
	height int
}

func NewApp() *model {
	return &model{
		screen:  screenMenu,
		presets: config.ListPresets(),
		params:  map[string]float64{},
		field:   newSwayField(60, 5.0, 0.6),
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen != screenResults {
			return m, nil
		}
		if !m.paused && m.view == viewSway && m.run != nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenConfig:
		return m.configKey(msg)
	case screenResults:
		return m.resultsKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.base = config.GetPreset(m.selected)
		m.loadParams()
		m.paramCursor = 0
		m.screen = screenConfig
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(m.editBuf, "%f", &val)
			m.params[m.paramNames[m.paramCursor]] = val
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.screen = screenMenu
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%.2f", m.params[m.paramNames[m.paramCursor]])
	case "left", "h":
		name := m.paramNames[m.paramCursor]
		m.params[name] -= paramStep(name)
	case "right", "l":
		name := m.paramNames[m.paramCursor]
		m.params[name] += paramStep(name)
	case "s":
		m.start()
		if m.runErr == nil {
			m.screen = screenResults
			return m, tea.Batch(tea.ClearScreen, tick())
		}
	}
	return m, nil
}

func (m model) resultsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.screen = screenConfig
		return m, tea.ClearScreen
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "v":
		if m.view == viewSway {
			m.view = viewResponse
		} else {
			m.view = viewSway
		}
		return m, tea.ClearScreen
	case " ", "p":
		m.paused = !m.paused
	case "up", "k":
		if m.view == viewSway && m.mode > 0 {
			m.mode--
		}
		if m.view == viewResponse && m.dof > 0 {
			m.dof--
		}
	case "down", "j":
		if m.view == viewSway && m.mode < len(m.shapes)-1 {
			m.mode++
		}
		if m.view == viewResponse && m.run != nil && m.dof < len(m.run.Response.Displacements)-1 {
			m.dof++
		}
	case "r":
		m.phase = 0
		m.field = newSwayField(60, 5.0, 0.6)
		if m.run != nil {
			m.field.resize(m.run.DOF)
		}
		m.history = m.history[:0]
		m.paused = false
	}
	return m, nil
}

func paramStep(name string) float64 {
	switch name {
	case "floors":
		return 1
	case "mass":
		return 500
	case "stiffness":
		return 1e5
	case "damping":
		return 0.005
	case "step":
		return 0.1
	default:
		return 5
	}
}

func (m *model) loadParams() {
	m.paramNames = []string{"floors", "mass", "stiffness", "damping", "start", "end", "step"}
	m.params = map[string]float64{
		"floors":    float64(m.base.Floors),
		"mass":      m.base.FloorMass,
		"stiffness": m.base.Stiffness,
		"damping":   m.base.DampingRatio,
		"start":     m.base.Sweep.StartRad,
		"end":       m.base.Sweep.EndRad,
		"step":      m.base.Sweep.StepRad,
	}
	m.runErr = nil
}

// start builds a configuration from the edited parameters and runs the
// full analysis. A zero stiffness keeps the preset's own resolution,
// geometry or per-story list.
func (m *model) start() {
	cfg := m.base.Clone()
	if f := int(m.params["floors"]); f >= 1 {
		cfg.Floors = f
	}
	cfg.FloorMass = m.params["mass"]
	if k := m.params["stiffness"]; k > 0 {
		cfg.Stiffness = k
		cfg.Stiffnesses = nil
	}
	cfg.DampingRatio = m.params["damping"]
	cfg.Sweep.StartRad = m.params["start"]
	cfg.Sweep.EndRad = m.params["end"]
	cfg.Sweep.StepRad = m.params["step"]

	eng, err := engine.New(cfg)
	if err != nil {
		m.runErr = err
		return
	}
	run, err := eng.Run()
	if err != nil {
		m.runErr = err
		return
	}

	m.runErr = nil
	m.run = run
	m.shapes = make([][]float64, len(run.Modes))
	for i, mode := range run.Modes {
		m.shapes[i] = mode.Normalized()
	}
	m.peaks = metrics.PeakResponse(run.Response)
	m.mode = 0
	m.dof = len(run.Response.Displacements) - 1
	m.view = viewSway
	m.paused = false
	m.phase = 0
	m.field = newSwayField(60, 5.0, 0.6)
	m.field.resize(run.DOF)
	m.history = make([]float64, 0, 60)
}

func (m *model) advance() {
	m.phase += 0.09
	shape := m.shapes[m.mode]
	s := math.Sin(m.phase)

	targets := make([]float64, len(shape))
	for i, v := range shape {
		targets[i] = v * s
	}
	m.field.follow(targets)

	roof := m.field.pos[m.run.Floors-1]
	m.history = append(m.history, roof)
	if len(m.history) > 60 {
		m.history = m.history[1:]
	}
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenConfig:
		return m.viewConfig()
	case screenResults:
		return m.viewResults()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("s h e a r l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(presetInfo[m.selected]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 32)) + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%12.2f", m.params[name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%12s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", name)) + dim.Render(val) + "\n")
		}
	}

	if m.runErr != nil {
		b.WriteString("\n      " + yellow.Render(m.runErr.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s analyze  esc back") + "\n")

	return b.String()
}

func (m model) viewResults() string {
	if m.run == nil {
		return ""
	}
	if m.view == viewResponse {
		return m.viewResponse()
	}
	return m.viewSway()
}

func (m model) viewResponse() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n   %s %s  %s\n\n",
		green.Render("●"), cyan.Render(m.selected),
		dim.Render(fmt.Sprintf("f1 %.2f hz  α %.4f  β %.2e", m.run.Modes[0].Hz, m.run.Alpha, m.run.Beta))))

	cw := m.width - 14
	if cw < 40 {
		cw = 40
	}
	ch := m.height - 12
	if ch < 8 {
		ch = 8
	}
	chart := report.ASCIIFRF(m.run.Response, m.dof, m.run.Floors, cw, ch)
	for _, line := range strings.Split(chart, "\n") {
		b.WriteString("   " + line + "\n")
	}

	p := m.peaks[m.dof]
	b.WriteString(fmt.Sprintf("\n   %s %s\n",
		dim.Render("peak"),
		white.Render(fmt.Sprintf("%.3e m at %.2f rad/s (%.2f hz)", p.Value, p.Omega, p.Hz))))

	b.WriteString("\n" + dim.Render("   ↑↓ curve  tab sway  q back") + "\n")

	return b.String()
}

func (m model) viewSway() string {
	cw := m.width - 6
	ch := m.height - 10
	if cw < 50 {
		cw = 50
	}
	if ch < 14 {
		ch = 14
	}

	canvas := make([][]rune, ch)
	for i := range canvas {
		canvas[i] = make([]rune, cw)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	m.drawBuilding(canvas, cw, ch)

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("swaying")
	if m.paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	mode := m.run.Modes[m.mode]
	b.WriteString(fmt.Sprintf("\n   %s %s  mode %s  %s  %s\n\n",
		statusIcon, cyan.Render(m.selected),
		white.Render(fmt.Sprintf("%d/%d", m.mode+1, len(m.shapes))),
		magenta.Render(fmt.Sprintf("%.2f hz", mode.Hz)),
		statusText))

	for _, row := range canvas {
		b.WriteString("   " + string(row) + "\n")
	}

	if len(m.history) > 1 {
		b.WriteString("\n")
		for i, line := range strings.Split(waveform(m.history, 30, 2), "\n") {
			tag := "    "
			if i == 0 {
				tag = dim.Render("roof")
			}
			b.WriteString("   " + tag + " " + cyan.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + dim.Render("   ↑↓ mode  tab response  space pause  r reset  q back") + "\n")

	return b.String()
}

// drawBuilding stacks the floor slabs over the ground line, offset by
// the animated mode displacement, absorbers riding beside their floor.
func (m model) drawBuilding(canvas [][]rune, w, h int) {
	n := m.run.Floors
	gy := h - 2

	for x := 1; x < w-1; x++ {
		set(canvas, x, gy+1, '▀', w, h)
	}

	storyH := (gy - 1) / n
	if storyH < 2 {
		storyH = 2
	}
	sway := float64(w) / 4
	cx := w / 2

	px, py := cx, gy
	for f := 0; f < n; f++ {
		y := gy - (f+1)*storyH
		if y < 1 {
			y = 1
		}
		x := cx + int(m.field.pos[f]*sway)
		drawLine(canvas, w, h, px, py, x, y, '·')
		for dx := -3; dx <= 3; dx++ {
			set(canvas, x+dx, y, '█', w, h)
		}
		px, py = x, y
	}

	for j, a := range m.run.Absorbers {
		idx := n + j
		if idx >= len(m.field.pos) {
			break
		}
		y := gy - a.Floor*storyH + 1
		x := cx + int(m.field.pos[idx]*sway)
		set(canvas, x, y, '◉', w, h)
	}
}

func set(canvas [][]rune, x, y int, c rune, w, h int) {
	if x >= 0 && x < w && y >= 0 && y < h {
		canvas[y][x] = c
	}
}

func drawLine(canvas [][]rune, w, h, x1, y1, x2, y2 int, c rune) {
	dx := intAbs(x2 - x1)
	dy := intAbs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		set(canvas, x1, y1, c, w, h)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Run starts the interactive explorer.
func Run() error {
	p := tea.NewProgram(NewApp(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
