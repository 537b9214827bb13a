// pattern: Imperative Shell

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"gitahead/internal/logging"
)

// ErrSpawn is returned when the binary could not be started at all.
var ErrSpawn = errors.New("process could not be started")

// Config describes a single child process invocation.
type Config struct {
	Name    string        // Short label used in logs (e.g. "fetch")
	Binary  string        // Executable looked up on PATH
	Args    []string      // Arguments passed to Binary
	Dir     string        // Working directory
	Timeout time.Duration // Zero means no limit beyond ctx
}

// Result is what a finished process left behind.
type Result struct {
	ExitCode int
	Stdout   string
}

// Success reports a zero exit status.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner starts processes, captures their stdout and forwards stderr
// lines to the logger.
type Runner struct {
	logger *logging.ScopedLogger
}

// NewRunner creates a Runner. A nil logger discards process output.
func NewRunner(logger *logging.ScopedLogger) *Runner {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Runner{logger: logger}
}

// Run executes cfg and waits for it to exit.
//
// A non-zero exit is reported through Result.ExitCode with a nil error.
// The error is set only when the process could not be started or was cut
// short by ctx; ExitCode is then -1.
func (r *Runner) Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cfg.Binary, cfg.Args...) //#nosec G204 -- binary and args come from fixed command tables
	cmd.Dir = cfg.Dir

	logger := r.logger.With("process", cfg.Name, "dir", cfg.Dir)

	var stdout bytes.Buffer
	stderr := &lineLogger{logger: logger}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	// Children such as ssh may keep the pipes open after git is killed.
	cmd.WaitDelay = time.Second

	logger.Debug("starting process", "binary", cfg.Binary, "args", fmt.Sprintf("%v", cfg.Args))

	if err := cmd.Start(); err != nil {
		logger.Warn("failed to start process", "error", err)
		return Result{ExitCode: -1}, fmt.Errorf("%s: %w: %w", cfg.Name, ErrSpawn, err)
	}

	err := cmd.Wait()
	stderr.flush()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn("process interrupted", "error", ctxErr)
			return Result{ExitCode: -1, Stdout: stdout.String()}, fmt.Errorf("%s: %w", cfg.Name, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			logger.Debug("process exited", "exit_code", code)
			return Result{ExitCode: code, Stdout: stdout.String()}, nil
		}
		logger.Warn("process wait failed", "error", err)
		return Result{ExitCode: -1, Stdout: stdout.String()}, fmt.Errorf("%s: %w", cfg.Name, err)
	}

	logger.Debug("process exited cleanly")
	return Result{ExitCode: 0, Stdout: stdout.String()}, nil
}

// lineLogger forwards each complete line written to it as a debug entry.
type lineLogger struct {
	logger *logging.ScopedLogger
	buf    []byte
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.buf = append(l.buf, p...)
	for {
		i := bytes.IndexByte(l.buf, '\n')
		if i < 0 {
			break
		}
		l.emit(string(l.buf[:i]))
		l.buf = l.buf[i+1:]
	}
	return len(p), nil
}

func (l *lineLogger) flush() {
	if len(l.buf) > 0 {
		l.emit(string(l.buf))
		l.buf = nil
	}
}

func (l *lineLogger) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if line != "" {
		l.logger.Debug(line, "stream", "stderr")
	}
}
