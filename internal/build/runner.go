package build

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/hdlforge/bob/internal/ctxutil"
	boberrors "github.com/hdlforge/bob/internal/errors"
)

// CommandRunner executes one expanded command as an external process.
// The interface exists so tests can inject mock implementations.
type CommandRunner interface {
	// Run executes argv with the process working directory fixed to workDir,
	// capturing standard output and standard error separately. A nonzero
	// exit status is reported through exitCode, not err; err covers spawn
	// failures and context cancellation.
	Run(ctx context.Context, workDir string, argv []string) (stdout, stderr string, exitCode int, err error)
}

// DefaultCommandRunner implements CommandRunner using os/exec.
//
// Commands run argv-style without a shell: the expander already produced
// fully tokenized command lines, so no further word splitting or quoting
// applies.
//
// Context cancellation never kills a started process unless the context
// carries a deadline. Build tools are not safely interruptible mid-write,
// so an interrupt lets the in-flight command finish and only prevents the
// next one from starting. The per-command timeout is the explicit opt-in
// to killing: it arrives here as a context deadline.
type DefaultCommandRunner struct{}

// Run executes the command and waits for it to exit.
func (r *DefaultCommandRunner) Run(ctx context.Context, workDir string, argv []string) (stdout, stderr string, exitCode int, err error) {
	if len(argv) == 0 {
		return "", "", 0, boberrors.ErrCommandFailed
	}
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", "", 0, err
	}

	var cmd *exec.Cmd
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		cmd = exec.CommandContext(ctx, argv[0], argv[1:]...) //#nosec G204 -- argv comes from expanded build templates, the tool's purpose
	} else {
		cmd = exec.Command(argv[0], argv[1:]...) //#nosec G204 -- argv comes from expanded build templates, the tool's purpose
	}
	cmd.Dir = workDir

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		// A deadline kill surfaces as the context error, not as a command
		// exit result.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout, stderr, -1, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Nonzero exit is a result, not a runner error.
			return stdout, stderr, exitErr.ExitCode(), nil
		}
		return stdout, stderr, 1, err
	}

	return stdout, stderr, 0, nil
}

// Ensure DefaultCommandRunner implements CommandRunner.
var _ CommandRunner = (*DefaultCommandRunner)(nil)
