package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gitahead/internal/status"
)

func aggregate(t *testing.T, names []string, outcomes map[string]status.Outcome) *status.Aggregate {
	t.Helper()
	agg := status.NewAggregate(names)
	for _, name := range names {
		if err := agg.Set(name, outcomes[name]); err != nil {
			t.Fatal(err)
		}
	}
	agg.Freeze()
	return agg
}

func render(t *testing.T, agg *status.Aggregate, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, agg, opts); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

const aheadLine = "* main abc1234 [origin/main: ahead 2] wip"

func TestRender_Grouped(t *testing.T) {
	agg := aggregate(t, []string{"a", "b", "c"}, map[string]status.Outcome{
		"a": {Warnings: []status.ErrorCode{status.FetchFailed}, Unpushed: &status.Unpushed{AheadLines: []string{aheadLine}}},
		"b": status.Failed(status.NotADirectory),
	})

	got := render(t, agg, Options{MaxFiles: 5, GroupByProject: true})
	want := `
ℹ️ Skipped non-directories: b

❎  Failed git fetching projects: a

❎  Some projects needs attention

  - a
    - Unpushed changes
      - * main abc1234 [origin/main: ahead 2] wip
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_AllUpToDate(t *testing.T) {
	agg := aggregate(t, []string{"link", "plain", "clean", "scratch"}, map[string]status.Outcome{
		"link":    status.Failed(status.SymbolicLink),
		"plain":   status.Failed(status.NoVCSRoot),
		"scratch": {Untracked: &status.Lines{Lines: []string{"?? notes.txt"}}},
	})

	got := render(t, agg, Options{MaxFiles: 5, GroupByProject: true, SkipUntracked: true})
	want := `
ℹ️ Skipped symbolic links: link

ℹ️ Skipped non-git directories: plain

✅  All projects are up to date
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_FailureSections(t *testing.T) {
	agg := aggregate(t, []string{"br", "st", "boom"}, map[string]status.Outcome{
		"br":   status.Failed(status.BranchCheckFailed),
		"st":   status.Failed(status.StatusCheckFailed),
		"boom": status.Failed(status.InternalError),
	})

	got := render(t, agg, Options{MaxFiles: 5, GroupByProject: true})
	want := `
❎  Failed git branch status checking: br

❎  Failed git commit status checking: st

❎  Internal errors while inspecting: boom

✅  All projects are up to date
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_GroupedCapsFileLists(t *testing.T) {
	var files []string
	for _, f := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		files = append(files, " M "+f+".go")
	}
	agg := aggregate(t, []string{"web"}, map[string]status.Outcome{
		"web": {
			Uncommitted: &status.Lines{Lines: files},
			Untracked:   &status.Lines{Lines: []string{"?? tmp/"}},
		},
	})

	got := render(t, agg, Options{MaxFiles: 3, GroupByProject: true})
	want := `
❎  Some projects needs attention

  - web
    - Uncommitted changes
      -  M a.go
      -  M b.go
      -  M c.go
      - ... and 4 more
    - Untracked files
      - ?? tmp/
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Flat(t *testing.T) {
	agg := aggregate(t, []string{"api", "web"}, map[string]status.Outcome{
		"api": {Unpushed: &status.Unpushed{AheadLines: []string{aheadLine}}, Untracked: &status.Lines{Lines: []string{"?? x"}}},
		"web": {Uncommitted: &status.Lines{Lines: []string{" M index.html"}}},
	})

	got := render(t, agg, Options{MaxFiles: 5})
	want := `
❎  Unpushed changes in projects:
  - api
    - * main abc1234 [origin/main: ahead 2] wip

❎  Uncommitted changes in projects:
  - web
    -  M index.html

❎  Untracked files in projects:
  - api
    - ?? x
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}

	skipped := render(t, agg, Options{MaxFiles: 5, SkipUntracked: true})
	if strings.Contains(skipped, "Untracked") {
		t.Errorf("SkipUntracked output still lists untracked files:\n%s", skipped)
	}
}

func TestTruncate(t *testing.T) {
	short := strings.Repeat("x", MaxLineWidth)
	if got := Truncate(short); got != short {
		t.Errorf("Truncate() changed a line of exactly %d cells", MaxLineWidth)
	}

	long := strings.Repeat("y", MaxLineWidth+50)
	got := Truncate(long)
	want := strings.Repeat("y", MaxLineWidth-3) + "..."
	if got != want {
		t.Errorf("Truncate() = %d chars ending %q, want %d chars", len(got), got[len(got)-5:], len(want))
	}
}

func TestCapFiles(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		limit int
		want  []string
	}{
		{name: "under limit", lines: []string{"a", "b"}, limit: 5, want: []string{"a", "b"}},
		{name: "at limit", lines: []string{"a", "b"}, limit: 2, want: []string{"a", "b"}},
		{name: "over limit", lines: []string{"a", "b", "c", "d"}, limit: 2, want: []string{"a", "b", "... and 2 more"}},
		{name: "no limit", lines: []string{"a", "b"}, limit: 0, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, CapFiles(tt.lines, tt.limit)); diff != "" {
				t.Errorf("CapFiles() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
