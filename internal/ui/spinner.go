package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user aborts a spinner with q, esc or ctrl+c.
var ErrCanceled = errors.New("operation canceled")

// RunSpinner runs a minimal Bubble Tea spinner while executing the given action.
// The UI exits when the action completes and returns the action's error.
// When interactive is false the action runs directly with no UI, which keeps
// piped output and tests clean.
func RunSpinner(ctx context.Context, title string, interactive bool, action func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !interactive {
		return action(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newSpinnerModel(ctx, title, action)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if fm, ok := final.(*spinnerModel); ok && fm.err != nil {
		return fm.err
	}
	return m.err
}

type actionDoneMsg struct{ err error }

type spinnerModel struct {
	title  string
	spin   spinner.Model
	doneCh chan error
	done   bool
	err    error
	style  lipgloss.Style
}

func newSpinnerModel(ctx context.Context, title string, action func(ctx context.Context) error) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &spinnerModel{
		title:  title,
		spin:   s,
		doneCh: make(chan error, 1),
		style:  lipgloss.NewStyle().Padding(0, 1),
	}

	go func() {
		m.doneCh <- action(ctx)
	}()

	return m
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForCompletion)
}

func (m *spinnerModel) waitForCompletion() tea.Msg {
	return actionDoneMsg{err: <-m.doneCh}
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.err = ErrCanceled
			m.done = true
			return m, tea.Quit
		}
	case actionDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return m.style.Render("✗ " + m.title + " (" + m.err.Error() + ")\n")
		}
		return m.style.Render("✓ " + m.title + "\n")
	}
	return m.style.Render(m.spin.View() + " " + m.title)
}
