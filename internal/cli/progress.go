package cli

import (
	"context"
	"io"

	"github.com/alexanderramin/kanri/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type workDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StylePurple
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return "  " + m.spinner.View() + " " + formatter.Dim(m.message)
}

// withSpinner runs work while a spinner is drawn on out. Without a
// terminal the work simply runs. Interrupting the spinner cancels ctx.
func withSpinner(ctx context.Context, interactive bool, out io.Writer, message string, work func(ctx context.Context) error) error {
	if !interactive {
		return work(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))

	done := make(chan error, 1)
	go func() {
		err := work(ctx)
		done <- err
		p.Send(workDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
	}
	return <-done
}
