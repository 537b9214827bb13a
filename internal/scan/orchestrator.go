// pattern: Imperative Shell

// Package scan fans project inspections out over a bounded worker pool and
// collects their outcomes into a status.Aggregate.
package scan

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"gitahead/internal/discovery"
	"gitahead/internal/events"
	"gitahead/internal/logging"
	"gitahead/internal/status"
)

// Inspector produces the outcome for one project. *inspect.Inspector
// implements it.
type Inspector interface {
	Inspect(ctx context.Context, root, name string) status.Outcome
}

// Config configures an Orchestrator.
type Config struct {
	Root string
	// Concurrency caps simultaneously running projects. Zero or less runs
	// every project at once.
	Concurrency int
	Inspector   Inspector
	// OnStarted, when set, is called once the project list is known.
	OnStarted func(events.StartedMsg)
	// OnProgress, when set, is called after every finished project.
	OnProgress func(events.ProgressMsg)
	// OnDrained, when set, is called once after the last project.
	OnDrained func(events.DrainedMsg)
	Logs      logging.LoggerProvider
}

// Orchestrator runs one scan.
type Orchestrator struct {
	cfg    Config
	logger *logging.ScopedLogger
}

// New creates an Orchestrator.
func New(cfg Config) *Orchestrator {
	logger := logging.NopLogger()
	if cfg.Logs != nil {
		logger = cfg.Logs.For("scan")
	}
	return &Orchestrator{cfg: cfg, logger: logger.With("root", cfg.Root)}
}

// completion is what a unit hands to the aggregator.
type completion struct {
	name    string
	outcome status.Outcome
}

// Scan enumerates the root and inspects every entry. The only error is an
// unreadable root.
func (o *Orchestrator) Scan(ctx context.Context) (*status.Aggregate, error) {
	names, err := discovery.Enumerate(o.cfg.Root)
	if err != nil {
		return nil, err
	}
	return o.Run(ctx, names), nil
}

// Run inspects names in FIFO order with at most Config.Concurrency units in
// flight and returns the frozen aggregate.
//
// Every name gets exactly one outcome. A panicking unit is recorded as
// status.InternalError and does not affect the others.
func (o *Orchestrator) Run(ctx context.Context, names []string) *status.Aggregate {
	agg := status.NewAggregate(names)
	names = agg.Names()
	total := len(names)

	limit := o.cfg.Concurrency
	if limit < 1 {
		limit = max(total, 1)
	}
	o.logger.Info("scan started", "projects", total, "concurrency", limit)
	if o.cfg.OnStarted != nil {
		o.cfg.OnStarted(events.StartedMsg{Total: total})
	}

	results := make(chan completion)
	collected := make(chan struct{})

	// Single owner of agg and the remaining counter.
	go func() {
		defer close(collected)
		remaining := total
		for c := range results {
			if err := agg.Set(c.name, c.outcome); err != nil {
				o.logger.Error("dropping outcome", "project", c.name, "error", err)
				continue
			}
			remaining--
			o.logger.Debug("project finished", "project", c.name, "remaining", remaining, "code", string(c.outcome.ErrorCode))
			if o.cfg.OnProgress != nil {
				o.cfg.OnProgress(events.ProgressMsg{Project: c.name, Remaining: remaining, Total: total})
			}
		}
	}()

	var g errgroup.Group
	g.SetLimit(limit)
	for _, name := range names {
		g.Go(func() error {
			results <- completion{name: name, outcome: o.inspect(ctx, name)}
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	<-collected

	agg.Freeze()
	o.logger.Info("scan drained", "projects", total)
	if o.cfg.OnDrained != nil {
		o.cfg.OnDrained(events.DrainedMsg{Total: total})
	}
	return agg
}

// inspect runs one unit, converting a panic into an outcome.
func (o *Orchestrator) inspect(ctx context.Context, name string) (out status.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("inspection panicked", "project", name, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			out = status.Failed(status.InternalError)
		}
	}()
	return o.cfg.Inspector.Inspect(ctx, o.cfg.Root, name)
}
