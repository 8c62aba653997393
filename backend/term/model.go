// Package term hosts a vflow container in a bubbletea program. Cells are
// measured in glyphs, so one pixel of the engine is one terminal row or
// column.
package term

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/vflow"
)

// Styles colors the terminal host.
type Styles struct {
	Anchor lipgloss.Style
	Header lipgloss.Style
	Bar    lipgloss.Style
	Status lipgloss.Style
}

// DefaultStyles returns the stock terminal palette.
func DefaultStyles() Styles {
	return Styles{
		Anchor: lipgloss.NewStyle().Reverse(true),
		Header: lipgloss.NewStyle().Bold(true).Underline(true),
		Bar:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Status: lipgloss.NewStyle().Faint(true),
	}
}

// Model is a tea.Model around one Surface. The bubbletea event loop is the
// layout tick: every Update ends by flushing the scheduler, so any number of
// list mutations and navigation calls in one message cost one layout pass.
//
// Usage:
//
//	sched := vflow.NewScheduler()
//	list := vflow.NewListView(items, vflow.CellMetrics(1, 1, 0), vflow.WithScheduler(sched))
//	m := term.New(term.ListSurface[string]{List: list}, sched)
//	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
type Model struct {
	surface Surface
	sched   *vflow.Scheduler
	nav     *vflow.Navigator
	bar     *vflow.ScrollBar
	input   *vflow.InputState
	styles  Styles
	logger  *slog.Logger

	width, height int
	title         string
}

// New creates a model. Options: OptWheelStep (rows per notch, default 3),
// OptLogger and OptMinThumb (in rows, default 1).
func New(s Surface, sched *vflow.Scheduler, opts ...vflow.Option) *Model {
	if sched == nil {
		sched = vflow.NewScheduler()
	}
	opts = append([]vflow.Option{
		vflow.WithWheelStep(3),
		vflow.WithOpt(vflow.OptMinThumb, 1.0),
	}, opts...)

	logger := vflow.ApplyAndGet(opts, vflow.OptLogger)
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		surface: s,
		sched:   sched,
		nav:     vflow.NewNavigator(s.Target(), opts...),
		bar:     vflow.NewScrollBar(s.Target(), opts...),
		input:   vflow.NewInputState(),
		styles:  DefaultStyles(),
		logger:  logger,
	}
	if b, ok := s.(Binder); ok {
		b.Bind(m.nav)
	}
	return m
}

// SetStyles replaces the palette.
func (m *Model) SetStyles(s Styles) { m.styles = s }

// SetTitle sets the text shown on the status line.
func (m *Model) SetTitle(title string) { m.title = title }

// Navigator exposes the model's navigator, e.g. to add bindings.
func (m *Model) Navigator() *vflow.Navigator { return m.nav }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.input.Reset()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.surface.Resize(float64(m.cols()), float64(m.bodyRows()))
		m.logger.Debug("terminal resized", "cols", m.cols(), "rows", m.bodyRows())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		if k := keyOf(msg); k != vflow.KeyNone {
			m.input.PressKey(k)
			m.nav.Handle(m.input)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	m.sched.Flush()
	m.surface.Layout()
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.input.SetMouseWheel(0, 1)
		m.nav.Handle(m.input)
		return
	case tea.MouseButtonWheelDown:
		m.input.SetMouseWheel(0, -1)
		m.nav.Handle(m.input)
		return
	}

	track := float64(m.trackRows())
	pos := float64(msg.Y - m.headerRows())
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && msg.X == m.cols() && pos >= 0 && pos < track {
			m.bar.Press(pos, track)
		}
	case tea.MouseActionMotion:
		if m.bar.Dragging() {
			m.bar.DragTo(pos, track)
		}
	case tea.MouseActionRelease:
		m.bar.Release()
	}
}

// cols leaves the last column to the scrollbar.
func (m *Model) cols() int { return max(m.width-1, 0) }

// bodyRows leaves the last row to the status line.
func (m *Model) bodyRows() int { return max(m.height-1, 0) }

func (m *Model) headerRows() int {
	if m.surface.Header(m.cols()) != "" {
		return 1
	}
	return 0
}

func (m *Model) trackRows() int { return max(m.bodyRows()-m.headerRows(), 0) }

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	cols := m.cols()

	var b strings.Builder
	if header := m.surface.Header(cols); header != "" {
		b.WriteString(m.styles.Header.Render(padRight(header, cols)))
		b.WriteByte('\n')
	}

	rows := m.trackRows()
	screen := make([]string, rows)
	marks := make([]int, rows)
	m.surface.Paint(screen, marks, cols)

	var bar []string
	if m.bar.Needed() {
		bar = m.bar.Glyphs(rows)
	}
	anchor := m.nav.Anchor()
	for y := range screen {
		line := padRight(screen[y], cols)
		if anchor >= 0 && marks[y] == anchor {
			line = m.styles.Anchor.Render(line)
		}
		b.WriteString(line)
		if bar != nil {
			b.WriteString(m.styles.Bar.Render(bar[y]))
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.styles.Status.Render(vflow.TruncateText(m.status(), m.width)))
	return b.String()
}

func (m *Model) status() string {
	count := m.surface.Target().CellCount()
	s := fmt.Sprintf("%d/%d", m.nav.Anchor()+1, count)
	if m.title != "" {
		s = m.title + "  " + s
	}
	return s + "  ↑↓ PgUp PgDn Home End · q quit"
}

func padRight(s string, cols int) string {
	if w := vflow.TextWidth(s); w < cols {
		return s + strings.Repeat(" ", cols-w)
	}
	return s
}

var teaKeys = map[tea.KeyType]vflow.Key{
	tea.KeyUp:     vflow.KeyUp,
	tea.KeyDown:   vflow.KeyDown,
	tea.KeyLeft:   vflow.KeyLeft,
	tea.KeyRight:  vflow.KeyRight,
	tea.KeyPgUp:   vflow.KeyPageUp,
	tea.KeyPgDown: vflow.KeyPageDown,
	tea.KeyHome:   vflow.KeyHome,
	tea.KeyEnd:    vflow.KeyEnd,
	tea.KeyEnter:  vflow.KeyEnter,
	tea.KeySpace:  vflow.KeySpace,
}

// vi-style aliases
var runeKeys = map[string]vflow.Key{
	"k": vflow.KeyUp,
	"j": vflow.KeyDown,
	"h": vflow.KeyLeft,
	"l": vflow.KeyRight,
	"g": vflow.KeyHome,
	"G": vflow.KeyEnd,
}

func keyOf(msg tea.KeyMsg) vflow.Key {
	if k, ok := teaKeys[msg.Type]; ok {
		return k
	}
	if msg.Type == tea.KeyRunes {
		if k, ok := runeKeys[msg.String()]; ok {
			return k
		}
	}
	return vflow.KeyNone
}
