// pattern: Imperative Shell
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

const (
	lockFileName  = "git-ahead.lock"
	ownerFileName = "git-ahead.owner"
)

// ErrAlreadyRunning is returned by Lock when another scan holds the lock.
var ErrAlreadyRunning = errors.New("another git-ahead scan is already running")

// Lock acquires an exclusive file lock so that two scans never prompt for
// credentials at the same time. Returns the flock handle (caller must defer
// Cleanup) or an error wrapping ErrAlreadyRunning.
func Lock(dataDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	lockPath := filepath.Join(dataDir, lockFileName)
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		if owner := Owner(dataDir); owner != "" {
			return nil, fmt.Errorf("%w (scanning %s)", ErrAlreadyRunning, owner)
		}
		return nil, ErrAlreadyRunning
	}
	return fl, nil
}

// WriteOwner records the scan root of the instance holding the lock.
func WriteOwner(dataDir, root string) error {
	ownerPath := filepath.Join(dataDir, ownerFileName)
	return os.WriteFile(ownerPath, []byte(root), 0600)
}

// Owner returns the scan root recorded by the lock holder, or "" if none.
func Owner(dataDir string) string {
	data, err := os.ReadFile(filepath.Join(dataDir, ownerFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Cleanup removes the owner file and releases the file lock.
func Cleanup(dataDir string, fl *flock.Flock) {
	ownerPath := filepath.Join(dataDir, ownerFileName)
	_ = os.Remove(ownerPath)
	if fl != nil {
		_ = fl.Unlock()
	}
}
