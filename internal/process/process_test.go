package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitahead/internal/logging"
)

func testRunner(t *testing.T) (*Runner, *logging.TestLogManager) {
	t.Helper()
	lm := logging.NewTestLogManager(100)
	t.Cleanup(func() { _ = lm.Close() })
	return NewRunner(lm.For("process")), lm
}

func TestRunner_CapturesStdout(t *testing.T) {
	r, _ := testRunner(t)

	res, err := r.Run(context.Background(), Config{
		Name:   "echo",
		Binary: "sh",
		Args:   []string{"-c", "printf 'one\\ntwo\\n'"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Success() {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if res.Stdout != "one\ntwo\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
}

func TestRunner_NonZeroExitIsNotAnError(t *testing.T) {
	r, _ := testRunner(t)

	res, err := r.Run(context.Background(), Config{
		Name:   "fail",
		Binary: "sh",
		Args:   []string{"-c", "echo partial; exit 3"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.ExitCode != 3 || res.Success() {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Stdout != "partial\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
}

func TestRunner_StderrGoesToLogger(t *testing.T) {
	r, lm := testRunner(t)

	if _, err := r.Run(context.Background(), Config{
		Name:   "warn",
		Binary: "sh",
		Args:   []string{"-c", "echo 'Password for origin:' >&2"},
	}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	found := false
	for _, entry := range lm.Drain() {
		if entry.Message == "Password for origin:" && entry.Fields["stream"] == "stderr" {
			found = true
		}
	}
	if !found {
		t.Error("stderr line was not logged")
	}
}

func TestRunner_WorkingDirectory(t *testing.T) {
	r, _ := testRunner(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	res, err := r.Run(context.Background(), Config{Name: "ls", Binary: "ls", Dir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "marker" {
		t.Errorf("Stdout = %q, want marker", res.Stdout)
	}
}

func TestRunner_SpawnFailure(t *testing.T) {
	r, _ := testRunner(t)

	res, err := r.Run(context.Background(), Config{
		Name:   "missing",
		Binary: "definitely-not-a-real-binary-git-ahead",
	})
	if !errors.Is(err, ErrSpawn) {
		t.Fatalf("Run() error = %v, want ErrSpawn", err)
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
}

func TestRunner_Timeout(t *testing.T) {
	r, _ := testRunner(t)

	start := time.Now()
	res, err := r.Run(context.Background(), Config{
		Name:    "sleeper",
		Binary:  "sleep",
		Args:    []string{"60"},
		Timeout: 100 * time.Millisecond,
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want deadline exceeded", err)
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout did not stop the process")
	}
}

func TestRunner_NilLogger(t *testing.T) {
	r := NewRunner(nil)
	if _, err := r.Run(context.Background(), Config{Name: "true", Binary: "true"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
