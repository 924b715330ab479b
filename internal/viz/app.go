package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/armkin/internal/kinematics"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	title   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	keyHint = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

var (
	markerSizes = []float64{4, 6, 8, 10, 14, 20}
	linkWidths  = []float64{1, 2, 4, 6, 8, 12}
)

const (
	angleStep  = math.Pi / 36
	lengthStep = 0.1
	orbitStep  = 0.1
	sliderCols = 24
)

// App is the interactive arm viewer. Every input change recomputes the
// whole pose from the current lengths and angles.
type App struct {
	initLengths, initAngles []float64
	lengths, angles         []float64
	dim                     kinematics.Dimension
	style                   Style
	cam                     Camera
	cursor                  int
	pos                     kinematics.Positions
	err                     error
	width, height           int
}

func NewApp(lengths, angles []float64, dim kinematics.Dimension, style Style) App {
	m := App{
		initLengths: append([]float64(nil), lengths...),
		initAngles:  append([]float64(nil), angles...),
		lengths:     append([]float64(nil), lengths...),
		angles:      append([]float64(nil), angles...),
		dim:         dim,
		style:       style,
		cam:         *NewCamera(),
		width:       80,
		height:      32,
	}
	m.recompute()
	return m
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	n := len(m.angles)
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "left", "h":
		m.angles = adjust(m.angles, m.cursor, -angleStep)
	case "right", "l":
		m.angles = adjust(m.angles, m.cursor, angleStep)
	case "+", "=":
		m.lengths = adjust(m.lengths, m.cursor, lengthStep)
	case "-", "_":
		m.lengths = adjust(m.lengths, m.cursor, -lengthStep)
	case "c":
		m.style = m.style.WithLinkColor(NextColor(m.style.LinkColor))
	case "o":
		m.style = m.style.WithJointColor(NextColor(m.style.JointColor))
	case "m":
		m.style = m.style.WithMarkerSize(nextSize(markerSizes, m.style.MarkerSize))
	case "w":
		m.style = m.style.WithLinkWidth(nextSize(linkWidths, m.style.LinkWidth))
	case "g":
		m.style = m.style.WithGrid(!m.style.ShowGrid)
	case "v":
		if m.dim == kinematics.Spatial {
			m.dim = kinematics.Planar
		} else {
			m.dim = kinematics.Spatial
		}
	case "a":
		m.cam.RotateY(-orbitStep)
	case "d":
		m.cam.RotateY(orbitStep)
	case "s":
		m.cam.RotateX(orbitStep)
	case "x":
		m.cam.RotateX(-orbitStep)
	case "z":
		m.cam.ZoomIn()
	case "Z":
		m.cam.ZoomOut()
	case "r":
		m.lengths = append([]float64(nil), m.initLengths...)
		m.angles = append([]float64(nil), m.initAngles...)
		m.cam = *NewCamera()
	default:
		return m, nil
	}
	m.recompute()
	return m, nil
}

// adjust returns a copy of vals with vals[i] shifted by delta, so earlier
// model values never share a backing array with later ones.
func adjust(vals []float64, i int, delta float64) []float64 {
	out := append([]float64(nil), vals...)
	if i >= 0 && i < len(out) {
		out[i] += delta
	}
	return out
}

func nextSize(sizes []float64, current float64) float64 {
	for _, s := range sizes {
		if s > current {
			return s
		}
	}
	return sizes[0]
}

func (m *App) recompute() {
	m.pos, m.err = kinematics.Solve(m.lengths, m.angles, m.dim)
}

// Positions returns the pose currently on screen.
func (m App) Positions() kinematics.Positions { return m.pos }

// Style returns the style currently in effect.
func (m App) Style() Style { return m.style }

func (m App) View() string {
	var b strings.Builder
	heading := "ARMKIN"
	if m.style.Title != "" {
		heading = strings.ToUpper(m.style.Title)
	}
	b.WriteString("\n  " + title.Render(heading) + "  " + dim.Render(fmt.Sprintf("%d links · %s", len(m.lengths), m.dim)) + "\n\n")

	if m.err != nil {
		b.WriteString("  " + red.Render(m.err.Error()) + "\n")
		return b.String()
	}

	c := NewCanvas(m.canvasSize())
	reach := ChainReach(m.lengths)
	if m.dim == kinematics.Spatial {
		cam := m.cam
		DrawSpatial(c, m.pos, reach, &cam, m.style)
	} else {
		DrawPlanar(c, m.pos, reach, m.style)
	}
	b.WriteString(indent(c.Render(InkStyles(m.style)), "  "))
	b.WriteString("\n")

	for i := range m.angles {
		deg := m.angles[i] * 180 / math.Pi
		row := fmt.Sprintf("joint %-2d %s %8.1f°  len %6.2f", i, slider(m.angles[i]), deg, m.lengths[i])
		if i == m.cursor {
			b.WriteString("  " + cyan.Render("▸ ") + white.Bold(true).Render(row) + "\n")
		} else {
			b.WriteString("    " + dim.Render(row) + "\n")
		}
	}

	tip := m.pos.Tip()
	b.WriteString("\n  " + dim.Render("tip ") + magenta.Render(fmt.Sprintf("(%.3f, %.3f, %.3f)", tip.X, tip.Y, tip.Z)))
	b.WriteString(dim.Render(fmt.Sprintf("  reach %.3f", m.pos.Reach())) + "\n")
	b.WriteString("  " + dimmer.Render(fmt.Sprintf("link %s  joint %s  marker %.0f  width %.0f", m.style.LinkColor, m.style.JointColor, m.style.MarkerSize, m.style.LinkWidth)) + "\n\n")

	hints := [][2]string{{"j/k", "joint"}, {"h/l", "angle"}, {"+/-", "length"}, {"c/o", "colors"}, {"m/w", "sizes"}, {"v", "2d/3d"}, {"r", "reset"}, {"q", "quit"}}
	b.WriteString("  ")
	for _, h := range hints {
		b.WriteString(keyHint.Render(h[0]) + dimmer.Render(" "+h[1]+"  "))
	}
	b.WriteString("\n")
	return b.String()
}

func (m App) canvasSize() (int, int) {
	w := m.width - 4
	h := m.height - len(m.angles) - 10
	return max(w, 20), max(h, 8)
}

// slider draws the angle wrapped to (-180°, 180°] as a bar position.
func slider(angle float64) string {
	a := math.Remainder(angle, 2*math.Pi)
	pos := int(math.Round((a + math.Pi) / (2 * math.Pi) * float64(sliderCols-1)))
	pos = min(max(pos, 0), sliderCols-1)
	return "[" + strings.Repeat("─", pos) + "●" + strings.Repeat("─", sliderCols-1-pos) + "]"
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}

// Run starts the viewer on the alternate screen and blocks until quit.
func Run(app App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
