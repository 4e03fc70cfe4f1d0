package build

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell utilities")
	}
}

func TestDefaultCommandRunner_Success(t *testing.T) {
	skipOnWindows(t)
	r := &DefaultCommandRunner{}

	stdout, stderr, exitCode, err := r.Run(context.Background(), t.TempDir(), []string{"echo", "hello"})
	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "hello\n", stdout)
	assert.Empty(t, stderr)
}

func TestDefaultCommandRunner_NonzeroExit(t *testing.T) {
	skipOnWindows(t)
	r := &DefaultCommandRunner{}

	_, _, exitCode, err := r.Run(context.Background(), t.TempDir(), []string{"false"})
	require.NoError(t, err)
	assert.NotEqual(t, 0, exitCode)
}

func TestDefaultCommandRunner_CapturesStderr(t *testing.T) {
	skipOnWindows(t)
	r := &DefaultCommandRunner{}

	stdout, stderr, exitCode, err := r.Run(context.Background(), t.TempDir(), []string{"sh", "-c", "echo oops >&2; exit 3"})
	require.NoError(t, err)
	assert.Equal(t, 3, exitCode)
	assert.Empty(t, stdout)
	assert.Equal(t, "oops\n", stderr)
}

func TestDefaultCommandRunner_RunsInWorkDir(t *testing.T) {
	skipOnWindows(t)
	r := &DefaultCommandRunner{}
	dir := t.TempDir()

	stdout, _, exitCode, err := r.Run(context.Background(), dir, []string{"pwd"})
	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout, dir)
}

func TestDefaultCommandRunner_MissingBinary(t *testing.T) {
	r := &DefaultCommandRunner{}

	_, _, exitCode, err := r.Run(context.Background(), t.TempDir(), []string{"definitely-not-a-binary-bob"})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode)
}

func TestDefaultCommandRunner_EmptyArgv(t *testing.T) {
	r := &DefaultCommandRunner{}

	_, _, _, err := r.Run(context.Background(), t.TempDir(), nil)
	require.Error(t, err)
}

func TestDefaultCommandRunner_InterruptLetsCommandFinish(t *testing.T) {
	skipOnWindows(t)
	r := &DefaultCommandRunner{}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	stdout, _, exitCode, err := r.Run(ctx, t.TempDir(), []string{"sh", "-c", "sleep 0.3; echo done"})
	require.NoError(t, err, "a started command runs to completion despite cancellation")
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "done\n", stdout)
	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond, "the command was not killed early")
}

func TestDefaultCommandRunner_CanceledBeforeStart(t *testing.T) {
	skipOnWindows(t)
	r := &DefaultCommandRunner{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	marker := t.TempDir() + "/ran"
	_, _, _, err := r.Run(ctx, t.TempDir(), []string{"touch", marker})
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, marker, "no process starts under a canceled context")
}

func TestDefaultCommandRunner_DeadlineKillsCommand(t *testing.T) {
	skipOnWindows(t)
	r := &DefaultCommandRunner{}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, _, err := r.Run(ctx, t.TempDir(), []string{"sleep", "5"})
	require.ErrorIs(t, err, context.DeadlineExceeded, "a deadline is the explicit opt-in to killing")
	assert.Less(t, time.Since(start), 3*time.Second)
}
