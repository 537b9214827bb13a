// pattern: Functional Core

// Package status holds the per-project inspection outcome and the ordered
// aggregate a scan produces.
package status

// ErrorCode classifies why a project could not be (fully) inspected.
type ErrorCode string

const (
	// Classification stage: the entry is not inspected at all.
	NotADirectory ErrorCode = "not-a-directory"
	SymbolicLink  ErrorCode = "symbolic-link"
	NoVCSRoot     ErrorCode = "no-vcs-root"

	// Pipeline stage. FetchFailed is advisory and only ever appears in
	// Outcome.Warnings once later stages succeed.
	FetchFailed       ErrorCode = "fetch-failed"
	BranchCheckFailed ErrorCode = "branch-check-failed"
	StatusCheckFailed ErrorCode = "status-check-failed"

	// InternalError marks a unit that panicked; the scan carries on.
	InternalError ErrorCode = "internal-error"
)

// Classification reports whether the code is produced before any git
// command runs.
func (c ErrorCode) Classification() bool {
	switch c {
	case NotADirectory, SymbolicLink, NoVCSRoot:
		return true
	}
	return false
}

// Unpushed lists `git branch -vv` lines whose tracking info says "ahead".
type Unpushed struct {
	AheadLines []string `json:"aheadLines"`
}

// Lines holds raw porcelain status lines.
type Lines struct {
	Lines []string `json:"lines"`
}

// Outcome is the terminal record for one project.
//
// A nil field means "nothing found"; whether a stage ran at all is told by
// ErrorCode. Warnings carries advisory failures that did not stop the
// pipeline.
type Outcome struct {
	ErrorCode   ErrorCode   `json:"errorCode,omitempty"`
	Warnings    []ErrorCode `json:"warnings,omitempty"`
	Unpushed    *Unpushed   `json:"unpushed,omitempty"`
	Uncommitted *Lines      `json:"uncommitted,omitempty"`
	Untracked   *Lines      `json:"untracked,omitempty"`
}

// Failed returns an outcome carrying only the given code.
func Failed(code ErrorCode) Outcome {
	return Outcome{ErrorCode: code}
}

// HasWarning reports whether code was recorded as an advisory failure.
func (o Outcome) HasWarning(code ErrorCode) bool {
	for _, w := range o.Warnings {
		if w == code {
			return true
		}
	}
	return false
}

// NeedsAttention reports whether the project has local work that is not
// safely on a remote. Untracked files count unless skipUntracked is set.
func (o Outcome) NeedsAttention(skipUntracked bool) bool {
	if o.Unpushed != nil || o.Uncommitted != nil {
		return true
	}
	return o.Untracked != nil && !skipUntracked
}
