// pattern: Imperative Shell
package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"gitahead/internal/config"
	"gitahead/internal/events"
)

// projectNameWidth caps the project name shown next to the counter.
const projectNameWidth = 40

// Progress displays scan progress while the orchestrator drains.
type Progress interface {
	Update(msg events.ProgressMsg)
	Finish(msg events.DrainedMsg)
}

// NewProgress returns the indicator for mode. The spinner needs a
// terminal and falls back to the plain counter otherwise.
func NewProgress(mode string, w io.Writer, styles *Styles) Progress {
	switch mode {
	case config.ProgressNone:
		return nopProgress{}
	case config.ProgressSpinner:
		if IsTerminal(w) {
			return newSpinnerProgress(w, styles)
		}
	}
	return &plainProgress{w: w}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopProgress struct{}

func (nopProgress) Update(events.ProgressMsg) {}
func (nopProgress) Finish(events.DrainedMsg)  {}

// plainProgress rewrites a single "done/total project " line. The trailing
// space keeps a credential prompt from git readable.
type plainProgress struct {
	w io.Writer
}

func (p *plainProgress) Update(msg events.ProgressMsg) {
	fmt.Fprintf(p.w, "\r%s%s ", ansi.EraseEntireLine, counterLine(msg))
}

func (p *plainProgress) Finish(events.DrainedMsg) {
	fmt.Fprintf(p.w, "\r%s", ansi.EraseEntireLine)
}

func counterLine(msg events.ProgressMsg) string {
	return fmt.Sprintf("%d/%d %s", msg.Done(), msg.Total, ansi.Truncate(msg.Project, projectNameWidth, "…"))
}
