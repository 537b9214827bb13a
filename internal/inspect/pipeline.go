// pattern: Imperative Shell

// Package inspect runs the ordered per-project checks and turns their
// results into a single status.Outcome.
package inspect

import (
	"context"

	"gitahead/internal/discovery"
	"gitahead/internal/git"
	"gitahead/internal/logging"
	"gitahead/internal/status"
)

// GitClient is the subset of *git.Client the pipeline needs.
type GitClient interface {
	Fetch(ctx context.Context, dir string) error
	AheadBranches(ctx context.Context, dir string) ([]string, error)
	Status(ctx context.Context, dir string) (git.WorkingTree, error)
}

// Options tune a pipeline run.
type Options struct {
	SkipFetch bool // Inspect local state only; never contact remotes
}

// Inspector runs the pipeline for one project at a time. It holds no
// per-project state and is safe for concurrent use.
type Inspector struct {
	git    GitClient
	logger *logging.ScopedLogger
	opts   Options
}

// New creates an Inspector.
func New(client GitClient, logs logging.LoggerProvider, opts Options) *Inspector {
	logger := logging.NopLogger()
	if logs != nil {
		logger = logs.For("inspect")
	}
	return &Inspector{git: client, logger: logger, opts: opts}
}

// phase is a pipeline state. Transitions:
//
//	pending -> classified | fatal
//	classified -> fetched | fetchFailed
//	fetched, fetchFailed -> unpushedChecked | fatal
//	unpushedChecked -> statusChecked | fatal
//	statusChecked, fatal -> done
type phase int

const (
	pending phase = iota
	classified
	fetched
	fetchFailed
	unpushedChecked
	statusChecked
	fatal
	done
)

var phaseNames = [...]string{
	pending:         "pending",
	classified:      "classified",
	fetched:         "fetched",
	fetchFailed:     "fetch-failed",
	unpushedChecked: "unpushed-checked",
	statusChecked:   "status-checked",
	fatal:           "fatal",
	done:            "done",
}

func (p phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// run is the mutable state of one Inspect call.
type run struct {
	root    string
	name    string
	dir     string
	phase   phase
	outcome status.Outcome
	logger  *logging.ScopedLogger
}

// Inspect classifies root/name and, when eligible, runs fetch, the
// unpushed check and the status check in that order.
//
// A fetch failure is recorded as a warning and the pipeline continues.
// A failed branch or status check replaces everything gathered so far with
// a single error code and stops.
func (i *Inspector) Inspect(ctx context.Context, root, name string) status.Outcome {
	r := &run{
		root:   root,
		name:   name,
		phase:  pending,
		logger: i.logger.With("project", name),
	}

	for r.phase != done {
		next := i.step(ctx, r)
		r.logger.Debug("pipeline transition", "from", r.phase.String(), "to", next.String())
		r.phase = next
	}

	return r.outcome
}

func (i *Inspector) step(ctx context.Context, r *run) phase {
	switch r.phase {
	case pending:
		c := discovery.Classify(r.root, r.name)
		if !c.Eligible {
			r.outcome = c.Outcome()
			return fatal
		}
		r.dir = c.Path
		return classified

	case classified:
		if i.opts.SkipFetch {
			return fetched
		}
		if err := i.git.Fetch(ctx, r.dir); err != nil {
			r.logger.Warn("fetch failed, inspecting local state only", "error", err)
			r.outcome.Warnings = append(r.outcome.Warnings, status.FetchFailed)
			return fetchFailed
		}
		return fetched

	case fetched, fetchFailed:
		lines, err := i.git.AheadBranches(ctx, r.dir)
		if err != nil {
			r.logger.Warn("branch check failed", "error", err)
			r.outcome = status.Failed(status.BranchCheckFailed)
			return fatal
		}
		if len(lines) > 0 {
			r.outcome.Unpushed = &status.Unpushed{AheadLines: lines}
		}
		return unpushedChecked

	case unpushedChecked:
		wt, err := i.git.Status(ctx, r.dir)
		if err != nil {
			r.logger.Warn("status check failed", "error", err)
			r.outcome = status.Failed(status.StatusCheckFailed)
			return fatal
		}
		if len(wt.Untracked) > 0 {
			r.outcome.Untracked = &status.Lines{Lines: wt.Untracked}
		}
		if len(wt.Uncommitted) > 0 {
			r.outcome.Uncommitted = &status.Lines{Lines: wt.Uncommitted}
		}
		return statusChecked

	case fatal:
		r.logger.Debug("project skipped", "code", string(r.outcome.ErrorCode))
		return done
	}

	return done
}
