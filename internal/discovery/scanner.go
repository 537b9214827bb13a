// pattern: Imperative Shell

package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"gitahead/internal/status"
)

// VCSRoot is the marker directory every inspectable project must contain.
const VCSRoot = ".git"

// Classification is the result of gating one directory entry.
type Classification struct {
	Name     string
	Path     string
	Eligible bool
	Code     status.ErrorCode // Set when Eligible is false
}

// Outcome returns the terminal outcome for an ineligible entry.
func (c Classification) Outcome() status.Outcome {
	return status.Failed(c.Code)
}

// Enumerate lists the entry names directly under root in os.ReadDir
// order (sorted by name).
// It does not descend into subdirectories. An unreadable root is the only
// error a scan cannot recover from.
func Enumerate(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading scan root: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// Classify decides whether root/name should be inspected. It never follows
// symbolic links and never fails: every probe error becomes an outcome code.
//
// The link test runs before the directory test because Lstat never reports
// a link as a directory.
func Classify(root, name string) Classification {
	c := Classification{Name: name, Path: filepath.Join(root, name)}

	info, err := os.Lstat(c.Path)
	switch {
	case err != nil:
		c.Code = status.NoVCSRoot
	case info.Mode()&os.ModeSymlink != 0:
		c.Code = status.SymbolicLink
	case !info.IsDir():
		c.Code = status.NotADirectory
	case !HasVCSRoot(c.Path):
		c.Code = status.NoVCSRoot
	default:
		c.Eligible = true
	}
	return c
}

// HasVCSRoot reports whether dir contains a .git directory.
// A .git file (worktree or submodule pointer) does not count.
func HasVCSRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, VCSRoot))
	return err == nil && info.IsDir()
}
