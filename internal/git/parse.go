// pattern: Functional Core

package git

import (
	"regexp"
	"strings"
)

// aheadRe matches the bracketed tracking info of `git branch -vv` when it
// mentions "ahead", e.g. "[origin/main: ahead 2, behind 1]".
var aheadRe = regexp.MustCompile(`(?i)\[[^\]]*ahead[^\]]*\]`)

// untrackedPrefix marks untracked paths in porcelain v1 status output.
const untrackedPrefix = "??"

// WorkingTree is the parsed porcelain status of a checkout.
type WorkingTree struct {
	Untracked   []string
	Uncommitted []string
}

// Clean reports whether nothing was listed.
func (w WorkingTree) Clean() bool {
	return len(w.Untracked) == 0 && len(w.Uncommitted) == 0
}

// ParseAheadLines returns the lines of `git branch -vv` output whose
// tracking info contains "ahead", in their original order.
func ParseAheadLines(output string) []string {
	var lines []string
	for _, line := range splitLines(output) {
		if aheadRe.MatchString(line) {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParseStatus partitions `git status --porcelain=1` output. Empty lines are
// dropped; everything not starting with "??" counts as uncommitted.
func ParseStatus(output string) WorkingTree {
	var wt WorkingTree
	for _, line := range splitLines(output) {
		if strings.HasPrefix(line, untrackedPrefix) {
			wt.Untracked = append(wt.Untracked, line)
		} else {
			wt.Uncommitted = append(wt.Uncommitted, line)
		}
	}
	return wt
}

// splitLines returns the non-empty lines of s. A trailing carriage return
// is stripped; leading whitespace is kept because porcelain status uses it.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
