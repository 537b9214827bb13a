// pattern: Imperative Shell

package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gitahead/internal/logging"
	"gitahead/internal/process"
)

// ErrCommandFailed is returned when a git command exits non-zero or cannot
// be started.
var ErrCommandFailed = errors.New("git command failed")

// Executor runs git with args in dir and returns its stdout.
// It must return an error for non-zero exits and spawn failures alike.
type Executor func(ctx context.Context, dir string, args []string) (string, error)

var (
	fetchArgs  = []string{"fetch", "--all"}
	branchArgs = []string{"branch", "-vv"}
	statusArgs = []string{"status", "--porcelain=1"}
)

// Client runs the fixed git commands a project inspection needs.
type Client struct {
	exec Executor
}

// NewClient creates a Client that runs binary through a process.Runner.
// timeout bounds every single command; zero disables it.
func NewClient(binary string, timeout time.Duration, logger *logging.ScopedLogger) *Client {
	return &Client{exec: ProcessExecutor(process.NewRunner(logger), binary, timeout)}
}

// NewClientWithExecutor creates a Client with the given executor (for testing).
func NewClientWithExecutor(exec Executor) *Client {
	return &Client{exec: exec}
}

// ProcessExecutor adapts a process.Runner to an Executor.
func ProcessExecutor(runner *process.Runner, binary string, timeout time.Duration) Executor {
	return func(ctx context.Context, dir string, args []string) (string, error) {
		res, err := runner.Run(ctx, process.Config{
			Name:    "git " + args[0],
			Binary:  binary,
			Args:    args,
			Dir:     dir,
			Timeout: timeout,
		})
		if err != nil {
			return "", fmt.Errorf("git %s: %w: %w", strings.Join(args, " "), ErrCommandFailed, err)
		}
		if !res.Success() {
			return res.Stdout, fmt.Errorf("git %s exited with code %d: %w", strings.Join(args, " "), res.ExitCode, ErrCommandFailed)
		}
		return res.Stdout, nil
	}
}

// Fetch updates remote refs for every remote.
func (c *Client) Fetch(ctx context.Context, dir string) error {
	_, err := c.exec(ctx, dir, fetchArgs)
	return err
}

// AheadBranches lists local branches that are ahead of their upstream.
// A nil slice means none are.
func (c *Client) AheadBranches(ctx context.Context, dir string) ([]string, error) {
	out, err := c.exec(ctx, dir, branchArgs)
	if err != nil {
		return nil, err
	}
	return ParseAheadLines(out), nil
}

// Status returns the working tree state split into untracked and other
// (staged or modified) entries.
func (c *Client) Status(ctx context.Context, dir string) (WorkingTree, error) {
	out, err := c.exec(ctx, dir, statusArgs)
	if err != nil {
		return WorkingTree{}, err
	}
	return ParseStatus(out), nil
}
