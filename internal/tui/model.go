// Package tui is a terminal front end for the surface controller. It binds
// the same controller.Controller the browser uses and paints its ViewModel
// with bubbletea.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/page"
)

// Field is a focusable control.
type Field int

const (
	FieldSurfaceType Field = iota
	FieldResolution
	FieldOrder
	FieldColormap
	FieldGenerate
	fieldCount
)

// Output persists a rendered plot or image and returns where it went.
type Output func(content controller.Content) (string, error)

// Messages
type submitDoneMsg struct{ err error }
type writtenMsg struct {
	path string
	err  error
}

// Model represents the terminal controller state
type Model struct {
	ctrl   *controller.Controller
	bridge *bridge
	unbind func()
	output Output
	ctx    context.Context

	// last model painted by the controller
	vm controller.ViewModel

	focus   Field
	order   textinput.Model
	spinner spinner.Model
	help    help.Model

	quitting bool

	lastPath string
	writeErr error
}

// NewModel binds a terminal view to ctrl. out may be nil.
func NewModel(ctx context.Context, ctrl *controller.Controller, out Output) Model {
	order := textinput.New()
	order.Placeholder = "1"
	order.CharLimit = 4
	order.Width = 6
	order.SetValue(strconv.Itoa(ctrl.State().Order))

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	b := newBridge()
	m := Model{
		ctrl:    ctrl,
		bridge:  b,
		output:  out,
		ctx:     ctx,
		order:   order,
		spinner: s,
		help:    help.New(),
		vm:      ctrl.Model(),
	}
	m.unbind = ctrl.Bind(b)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.wait, m.spinner.Tick, textinput.Blink)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case renderMsg:
		m.vm = msg.next
		cmds := []tea.Cmd{m.bridge.wait}
		if msg.next.Renders != msg.prev.Renders {
			cmds = append(cmds, m.write(msg.next.Content))
		}
		return m, tea.Batch(cmds...)

	case submitDoneMsg:
		// errors are already on screen via the view model
		return m, nil

	case writtenMsg:
		m.lastPath, m.writeErr = msg.path, msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == FieldOrder {
		var cmd tea.Cmd
		m.order, cmd = m.order.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Quit):
		m.quitting = true
		m.unbind()
		m.bridge.close()
		return m, tea.Quit

	case key.Matches(msg, DefaultKeyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Up):
		return m.moveFocus(-1), nil

	case key.Matches(msg, DefaultKeyMap.Down):
		return m.moveFocus(1), nil

	case key.Matches(msg, DefaultKeyMap.Generate):
		return m, m.submit()
	}

	switch m.focus {
	case FieldSurfaceType:
		if d := direction(msg); d != 0 {
			m.ctrl.ToggleConditionalOptions(string(page.SurfaceTypes[cycle(m.surfaceIndex(), d, len(page.SurfaceTypes))].Value))
		}
	case FieldResolution:
		if d := m.resolutionStep(msg); d != 0 {
			m.ctrl.UpdateResolutionLabel(strconv.Itoa(clamp(m.ctrl.State().Resolution+d, page.MinResolution, page.MaxResolution)))
		}
	case FieldColormap:
		if d := direction(msg); d != 0 {
			m.ctrl.SelectColormap(page.Colormaps[cycle(m.colormapIndex(), d, len(page.Colormaps))])
		}
	case FieldOrder:
		var cmd tea.Cmd
		m.order, cmd = m.order.Update(msg)
		m.ctrl.SetOrder(m.order.Value())
		return m, cmd
	}
	return m, nil
}

// submit runs one request off the event loop.
func (m Model) submit() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return submitDoneMsg{err: ctrl.SubmitAndRender(ctx)}
	}
}

func (m Model) write(content controller.Content) tea.Cmd {
	if m.output == nil || (content.Kind != controller.ContentPlot && content.Kind != controller.ContentImage) {
		return nil
	}
	out := m.output
	return func() tea.Msg {
		path, err := out(content)
		return writtenMsg{path: path, err: err}
	}
}

// moveFocus steps focus by d, skipping the order field while it is hidden.
func (m Model) moveFocus(d int) Model {
	next := m.focus
	for {
		next = Field(cycle(int(next), d, int(fieldCount)))
		if next != FieldOrder || m.vm.OptionsVisible {
			break
		}
	}
	m.focus = next
	if m.focus == FieldOrder {
		m.order.Focus()
	} else {
		m.order.Blur()
	}
	return m
}

// Focus returns the focused field.
func (m Model) Focus() Field { return m.focus }

// ViewModel returns the last painted view model.
func (m Model) ViewModel() controller.ViewModel { return m.vm }

func (m Model) surfaceIndex() int {
	current := m.ctrl.State().SurfaceType
	for i, t := range page.SurfaceTypes {
		if t.Value == current {
			return i
		}
	}
	return 0
}

func (m Model) colormapIndex() int {
	current := m.ctrl.State().Colormap
	for i, name := range page.Colormaps {
		if name == current {
			return i
		}
	}
	// names outside the list cycle from the start
	return 0
}

func (m Model) resolutionStep(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, DefaultKeyMap.PageUp):
		return 10
	case key.Matches(msg, DefaultKeyMap.PageDown):
		return -10
	}
	return direction(msg)
}

func direction(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, DefaultKeyMap.Left):
		return -1
	case key.Matches(msg, DefaultKeyMap.Right):
		return 1
	}
	return 0
}

func cycle(i, d, n int) int {
	return ((i+d)%n + n) % n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
