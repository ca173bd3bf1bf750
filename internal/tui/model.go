// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"log/slog"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/countdown/internal/config"
	"github.com/jmylchreest/countdown/internal/controller"
	"github.com/jmylchreest/countdown/internal/countdown"
)

// Toggle glyphs.
const (
	GlyphStart = "▶"
	GlyphStop  = "■"
)

const maxBarWidth = 40

// dispatchMsg carries a tick callback onto the update loop.
type dispatchMsg struct {
	fn func()
}

// screen is the controller's Display. It is shared by pointer so every
// copy of Model sees the same state.
type screen struct {
	readout string
	running bool
}

func (s *screen) SetReadout(text string) {
	s.readout = text
}

func (s *screen) SetRunning(running bool) {
	s.running = running
}

// Model is the main TUI model.
type Model struct {
	cfg    *config.Config
	ctrl   *controller.Controller
	screen *screen

	// Components
	help     help.Model
	progress progress.Model

	width int
	keys  KeyMap
}

// New creates a new TUI model. Ticks from opts.Source must be delivered to
// the program as dispatch messages (see Dispatcher).
func New(cfg *config.Config, opts controller.Options) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &screen{}
	h := help.New()

	m := Model{
		cfg:    cfg,
		screen: s,
		ctrl:   controller.New(s, opts),
		help:   h,
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(maxBarWidth),
		),
		keys: DefaultKeyMap(),
	}

	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("countdown")
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case dispatchMsg:
		msg.fn()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = min(maxBarWidth, max(msg.Width-4, 0))
		return m, nil

	case tea.FocusMsg:
		m.ctrl.Show()
		return m, nil

	case tea.BlurMsg:
		if m.cfg.TUI.ReleaseOnBlur {
			m.ctrl.Hide()
		}
		return m, nil

	case tea.ResumeMsg:
		m.ctrl.Show()
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Suspend):
		m.ctrl.Hide()
		return m, tea.Suspend
	}

	return m, nil
}

// Readout returns the displayed M:SS text.
func (m Model) Readout() string {
	return m.screen.readout
}

// Glyph returns the toggle glyph for the current state.
func (m Model) Glyph() string {
	if m.screen.running {
		return GlyphStop
	}
	return GlyphStart
}

// Controller returns the controller driving this model.
func (m Model) Controller() *controller.Controller {
	return m.ctrl
}

// View renders the TUI.
func (m Model) View() string {
	glyphStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))
	if m.screen.running {
		glyphStyle = glyphStyle.Foreground(lipgloss.Color("9"))
	}

	readoutStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	line := glyphStyle.Render(m.Glyph()) + readoutStyle.Render(m.screen.readout)
	body := lipgloss.JoinVertical(lipgloss.Left,
		line,
		"",
		m.progress.ViewAs(m.ctrl.Progress()),
	)

	s := boxStyle.Render(body)
	if m.cfg.TUI.ShowHelp {
		s += "\n" + m.help.View(m.keys)
	}
	return s + "\n"
}

// Dispatcher forwards tick callbacks to a running program. It is created
// before the program so the tick source can be built first.
type Dispatcher struct {
	program atomic.Pointer[tea.Program]
}

// Attach sets the program messages are sent to.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.program.Store(p)
}

// Dispatch sends fn to the program's update loop. Calls before Attach are
// dropped.
func (d *Dispatcher) Dispatch(fn func()) {
	if p := d.program.Load(); p != nil {
		p.Send(dispatchMsg{fn: fn})
	}
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config   *config.Config
	Alarm    controller.Alarm
	Notifier controller.Notifier
	Logger   *slog.Logger
}

// Run starts the TUI with the given options. The alarm is shown before the
// program starts and released on every exit path.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var dispatcher Dispatcher
	ticker := countdown.NewTicker(dispatcher.Dispatch)

	m := New(cfg, controller.Options{
		Source:   ticker,
		Alarm:    opts.Alarm,
		Notifier: opts.Notifier,
		Logger:   opts.Logger,
	})

	programOpts := []tea.ProgramOption{tea.WithReportFocus()}
	if cfg.TUI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, programOpts...)
	dispatcher.Attach(p)

	m.ctrl.Show()
	defer m.ctrl.Close()

	_, err := p.Run()
	return err
}
