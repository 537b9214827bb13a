// pattern: Functional Core

// Package report renders a finished scan as the human-readable summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitahead/internal/status"
	"gitahead/internal/tui"
)

// MaxLineWidth is the display width at which git output lines are cut.
const MaxLineWidth = 200

const (
	infoIcon      = "ℹ️ "
	attentionIcon = "❎  "
	okIcon        = "✅  "
)

// Options controls what the report shows.
type Options struct {
	SkipUntracked  bool
	MaxFiles       int
	GroupByProject bool
	Theme          string
}

// Render writes the report for agg to w. Colors follow w's capabilities.
func Render(w io.Writer, agg *status.Aggregate, opts Options) error {
	_, err := io.WriteString(w, Format(agg, opts, tui.NewStyles(opts.Theme, w)))
	return err
}

// Format builds the report text.
func Format(agg *status.Aggregate, opts Options, styles *tui.Styles) string {
	r := &renderer{b: &strings.Builder{}, opts: opts, styles: styles}
	r.skipped(agg)
	r.failures(agg)

	attention := agg.NeedsAttention(opts.SkipUntracked)
	if len(attention) == 0 {
		r.blank()
		r.line(styles.SuccessStyle().Render(okIcon + "All projects are up to date"))
		return r.b.String()
	}

	if opts.GroupByProject {
		r.grouped(agg, attention)
	} else {
		r.flat(agg)
	}
	return r.b.String()
}

type renderer struct {
	b      *strings.Builder
	opts   Options
	styles *tui.Styles
}

func (r *renderer) blank() {
	r.b.WriteByte('\n')
}

func (r *renderer) line(s string) {
	r.b.WriteString(s)
	r.b.WriteByte('\n')
}

// summary prints "label: a, b, c" when names is non-empty.
func (r *renderer) summary(style lipgloss.Style, label string, names []string) {
	if len(names) == 0 {
		return
	}
	r.blank()
	r.line(style.Render(label+":") + " " + strings.Join(names, ", "))
}

func (r *renderer) skipped(agg *status.Aggregate) {
	muted := r.styles.MutedStyle()
	r.summary(muted, infoIcon+"Skipped symbolic links", agg.WithError(status.SymbolicLink))
	r.summary(muted, infoIcon+"Skipped non-git directories", agg.WithError(status.NoVCSRoot))
	r.summary(muted, infoIcon+"Skipped non-directories", agg.WithError(status.NotADirectory))
}

func (r *renderer) failures(agg *status.Aggregate) {
	warn := r.styles.WarningStyle()
	fail := r.styles.ErrorStyle()
	r.summary(warn, attentionIcon+"Failed git fetching projects", agg.WithWarning(status.FetchFailed))
	r.summary(fail, attentionIcon+"Failed git branch status checking", agg.WithError(status.BranchCheckFailed))
	r.summary(fail, attentionIcon+"Failed git commit status checking", agg.WithError(status.StatusCheckFailed))
	r.summary(fail, attentionIcon+"Internal errors while inspecting", agg.WithError(status.InternalError))
}

func (r *renderer) grouped(agg *status.Aggregate, attention []string) {
	r.blank()
	r.line(r.styles.WarningStyle().Render(attentionIcon + "Some projects needs attention"))

	for _, name := range attention {
		o, _ := agg.Get(name)
		r.blank()
		r.line("  - " + r.styles.ProjectStyle().Render(name))
		if o.Unpushed != nil {
			r.line("    - Unpushed changes")
			r.items("      - ", truncateAll(o.Unpushed.AheadLines))
		}
		if o.Uncommitted != nil {
			r.line("    - Uncommitted changes")
			r.items("      - ", CapFiles(truncateAll(o.Uncommitted.Lines), r.opts.MaxFiles))
		}
		if o.Untracked != nil && !r.opts.SkipUntracked {
			r.line("    - Untracked files")
			r.items("      - ", CapFiles(truncateAll(o.Untracked.Lines), r.opts.MaxFiles))
		}
	}
}

func (r *renderer) flat(agg *status.Aggregate) {
	unpushed := agg.Filter(func(o status.Outcome) bool { return o.Unpushed != nil })
	r.category(agg, "Unpushed changes in projects", unpushed, func(o status.Outcome) []string {
		return truncateAll(o.Unpushed.AheadLines)
	})

	uncommitted := agg.Filter(func(o status.Outcome) bool { return o.Uncommitted != nil })
	r.category(agg, "Uncommitted changes in projects", uncommitted, func(o status.Outcome) []string {
		return CapFiles(truncateAll(o.Uncommitted.Lines), r.opts.MaxFiles)
	})

	if r.opts.SkipUntracked {
		return
	}
	untracked := agg.Filter(func(o status.Outcome) bool { return o.Untracked != nil })
	r.category(agg, "Untracked files in projects", untracked, func(o status.Outcome) []string {
		return CapFiles(truncateAll(o.Untracked.Lines), r.opts.MaxFiles)
	})
}

func (r *renderer) category(agg *status.Aggregate, label string, names []string, lines func(status.Outcome) []string) {
	if len(names) == 0 {
		return
	}
	r.blank()
	r.line(r.styles.WarningStyle().Render(attentionIcon + label + ":"))
	for _, name := range names {
		o, _ := agg.Get(name)
		r.line("  - " + r.styles.ProjectStyle().Render(name))
		r.items("    - ", lines(o))
	}
}

func (r *renderer) items(prefix string, lines []string) {
	for _, l := range lines {
		r.line(prefix + l)
	}
}

// Truncate cuts s to MaxLineWidth display cells, ending in "...".
func Truncate(s string) string {
	return ansi.Truncate(s, MaxLineWidth, "...")
}

func truncateAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = Truncate(l)
	}
	return out
}

// CapFiles keeps the first limit lines and replaces the rest with a count.
func CapFiles(lines []string, limit int) []string {
	if limit < 1 || len(lines) <= limit {
		return lines
	}
	out := make([]string, 0, limit+1)
	out = append(out, lines[:limit]...)
	return append(out, fmt.Sprintf("... and %d more", len(lines)-limit))
}
