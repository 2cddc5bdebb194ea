package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/keypad"
	"github.com/san-kum/skidsteer/internal/session"
	"github.com/san-kum/skidsteer/internal/viz"
)

const (
	historySize = 60
	barWidth    = 40
)

var (
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the interactive drive screen. Key presses are looked up in the
// keypad map and applied through the session runner.
type Model struct {
	runner *session.Runner
	keys   keypad.Map
	theme  viz.Theme
	logger *zap.Logger

	left     []float64
	right    []float64
	recent   []drive.Symbol
	fault    error
	showHelp bool
	quitting bool

	width int
}

func New(runner *session.Runner, keys keypad.Map, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keys == nil {
		keys = keypad.Default()
	}
	return &Model{
		runner: runner,
		keys:   keys,
		theme:  viz.ThemeConsole,
		logger: logger,
		left:   make([]float64, 0, historySize),
		right:  make([]float64, 0, historySize),
		width:  80,
	}
}

func (m *Model) SetTheme(t viz.Theme) { m.theme = t }

// Trace returns everything driven so far.
func (m *Model) Trace() *session.Trace { return m.runner.Trace() }

// Fault is the consistency error that halted the session, if any.
func (m *Model) Fault() error { return m.fault }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "t":
		m.theme = viz.NextTheme(m.theme)
		return m, nil
	}

	sym, ok := m.keys.Lookup(key)
	if !ok || m.fault != nil {
		return m, nil
	}
	step, err := m.runner.Step(sym)
	if err != nil {
		if errors.Is(err, drive.ErrInternalConsistency) {
			m.fault = err
		}
		m.logger.Warn("command failed", zap.String("key", key), zap.Error(err))
		return m, nil
	}
	m.record(step)
	return m, nil
}

func (m *Model) record(s session.Step) {
	m.left = appendBounded(m.left, float64(s.Left))
	m.right = appendBounded(m.right, float64(s.Right))
	m.recent = append(m.recent, s.Symbol)
	if len(m.recent) > 10 {
		m.recent = m.recent[len(m.recent)-10:]
	}
}

func appendBounded(vals []float64, v float64) []float64 {
	vals = append(vals, v)
	if len(vals) > historySize {
		vals = vals[len(vals)-historySize:]
	}
	return vals
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	ctrl := m.runner.Controller()
	limits := ctrl.Limits()
	left, right := ctrl.Speeds()
	motion := ctrl.Motion()
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Title)

	var b strings.Builder
	b.WriteString(title.Render("skidsteer"))
	b.WriteString(dim.Render("  " + limits.String()))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s %s\n", white.Render("L"), m.theme.SpeedBar(left-limits.Min, limits.Span(), barWidth), white.Render(fmt.Sprintf("%6d", left)))
	fmt.Fprintf(&b, "%s %s %s\n\n", white.Render("R"), m.theme.SpeedBar(right-limits.Min, limits.Span(), barWidth), white.Render(fmt.Sprintf("%6d", right)))

	b.WriteString(viz.MetricLabel.Render("motion  "))
	b.WriteString(m.theme.MotionStyle(motion).Render(motion.String()))
	b.WriteString("\n")

	spark := min(historySize, max(m.width-10, 10))
	b.WriteString(viz.MetricLabel.Render("left    "))
	b.WriteString(dim.Render(viz.SparklineChart(m.left, spark)))
	b.WriteString("\n")
	b.WriteString(viz.MetricLabel.Render("right   "))
	b.WriteString(dim.Render(viz.SparklineChart(m.right, spark)))
	b.WriteString("\n")

	if len(m.recent) > 0 {
		names := make([]string, len(m.recent))
		for i, s := range m.recent {
			names[i] = s.String()
		}
		b.WriteString(viz.MetricLabel.Render("recent  "))
		b.WriteString(yellow.Render(strings.Join(names, " ")))
		b.WriteString("\n")
	}

	if m.fault != nil {
		b.WriteString("\n")
		b.WriteString(red.Render("halted: " + m.fault.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(viz.Panel.Render(m.keys.Help()))
		b.WriteString("\n")
	}
	b.WriteString(viz.KeyHint.Render("? keys  t theme  q quit"))
	b.WriteString("\n")
	return b.String()
}
