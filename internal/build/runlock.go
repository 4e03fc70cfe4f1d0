package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hdlforge/bob/internal/constants"
	boberrors "github.com/hdlforge/bob/internal/errors"
	"github.com/hdlforge/bob/internal/flock"
)

// runLockFileName is the lock file guarding a working directory's build tree.
const runLockFileName = "run.lock"

// RunLock holds the exclusive per-directory run lock for the lifetime of a
// build. Two concurrent runs against one working directory would race
// buildroot's and genimage's output trees.
type RunLock struct {
	file *os.File
}

// AcquireRunLock takes the exclusive run lock for workDir, creating the
// .bob data directory if needed. Returns ErrRunLockHeld when another run
// already holds it.
func AcquireRunLock(workDir string) (*RunLock, error) {
	dataDir := filepath.Join(workDir, constants.BobHome)
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dataDir, runLockFileName)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //nolint:gosec // Path derived from the run's working directory
	if err != nil {
		return nil, fmt.Errorf("failed to open run lock file: %w", err)
	}

	if err := flock.Exclusive(file.Fd()); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s", boberrors.ErrRunLockHeld, workDir)
	}

	return &RunLock{file: file}, nil
}

// Release unlocks and closes the lock file. Safe to call once per lock.
func (l *RunLock) Release() {
	if l == nil || l.file == nil {
		return
	}
	_ = flock.Unlock(l.file.Fd())
	_ = l.file.Close()
	l.file = nil
}
