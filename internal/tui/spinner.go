// pattern: Imperative Shell
package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"gitahead/internal/events"
)

// progressModel is the bubbletea model behind the spinner indicator.
type progressModel struct {
	spinner  spinner.Model
	styles   *Styles
	last     events.ProgressMsg
	finished bool
}

func newProgressModel(styles *Styles) progressModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.AccentStyle()
	return progressModel{spinner: s, styles: styles}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case events.ProgressMsg:
		m.last = msg
		return m, nil

	case events.DrainedMsg:
		m.finished = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}
	if m.last.Total == 0 {
		return m.spinner.View() + " "
	}
	return m.spinner.View() + " " + m.styles.InfoStyle().Render(counterLine(m.last)) + " "
}

// spinnerProgress runs progressModel in its own tea.Program.
type spinnerProgress struct {
	program *tea.Program
	done    chan struct{}
}

func newSpinnerProgress(w io.Writer, styles *Styles) *spinnerProgress {
	p := tea.NewProgram(newProgressModel(styles),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	sp := &spinnerProgress{program: p, done: make(chan struct{})}
	go func() {
		defer close(sp.done)
		_, _ = p.Run()
	}()
	return sp
}

func (s *spinnerProgress) Update(msg events.ProgressMsg) {
	s.program.Send(msg)
}

// Finish stops the spinner and waits until its line is cleared.
func (s *spinnerProgress) Finish(msg events.DrainedMsg) {
	s.program.Send(msg)
	<-s.done
}
