package build

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hdlforge/bob/internal/ctxutil"
	"github.com/hdlforge/bob/internal/domain"
	boberrors "github.com/hdlforge/bob/internal/errors"
	"github.com/hdlforge/bob/internal/part"
)

// Status is the engine's run lifecycle state.
type Status string

// Engine lifecycle states. The only transitions are
// Idle -> Planning -> Running -> Succeeded | Failed, with Planning able to
// fail directly when expansion finds a configuration error.
const (
	StatusIdle      Status = "idle"
	StatusPlanning  Status = "planning"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Watcher observes a run for its duration. Watch must return once the run
// state reports completion or failure. The progress monitor implements this.
type Watcher interface {
	Watch(ctx context.Context)
}

// Config holds the engine's collaborators and settings.
type Config struct {
	// Registry resolves part types during planning.
	Registry *part.Registry

	// Runner executes expanded commands. Defaults to DefaultCommandRunner.
	Runner CommandRunner

	// Watcher, if set, is started when execution begins and joined before
	// Run returns.
	Watcher Watcher

	// WorkDir is the working directory for every command and the implicit
	// {_pwd} value.
	WorkDir string

	// CommandTimeout bounds each individual command. Zero means no limit,
	// which matches build tools that legitimately run for hours.
	CommandTimeout time.Duration

	// Logger receives run progress and captured command output.
	Logger zerolog.Logger
}

// Engine walks a BuildPlan project by project. Concurrent run groups are
// dispatched as independent tasks and joined before proceeding; sequential
// run groups execute in declared order on the engine's own goroutine. The
// first failure stops the run from advancing past the current group, but
// already-started sibling tasks always finish: external build processes are
// not safely interruptible mid-write.
type Engine struct {
	registry *part.Registry
	expander *part.Expander
	runner   CommandRunner
	watcher  Watcher
	state    *RunState
	logger   zerolog.Logger
	workDir  string
	timeout  time.Duration

	mu     sync.Mutex
	status Status
}

// New creates an engine from config, applying defaults for optional fields.
func New(cfg Config) *Engine {
	runner := cfg.Runner
	if runner == nil {
		runner = &DefaultCommandRunner{}
	}
	return &Engine{
		registry: cfg.Registry,
		expander: part.NewExpander(cfg.WorkDir, cfg.Logger),
		runner:   runner,
		watcher:  cfg.Watcher,
		state:    NewRunState(),
		logger:   cfg.Logger,
		workDir:  cfg.WorkDir,
		timeout:  cfg.CommandTimeout,
		status:   StatusIdle,
	}
}

// State returns the shared run state, for wiring a progress monitor.
func (e *Engine) State() *RunState {
	return e.state
}

// SetWatcher attaches a watcher after construction. A watcher usually needs
// the engine's run state first, so it cannot exist before the engine does.
// Must not be called once Run has started.
func (e *Engine) SetWatcher(w Watcher) {
	e.watcher = w
}

// Status returns the engine's current lifecycle state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) setStatus(s Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = s
}

// Run expands the specification and executes the resulting plan.
//
// Expansion errors (unknown parts, unresolved placeholders) fail the run
// before any process starts. During execution the first command failure
// marks the shared state failed and stops the engine from starting further
// groups or projects; the returned error names the failing command.
func (e *Engine) Run(ctx context.Context, buildSpec *domain.Spec) error {
	e.setStatus(StatusPlanning)

	plan, err := e.expander.Expand(buildSpec, e.registry)
	if err != nil {
		e.setStatus(StatusFailed)
		return err
	}

	e.state.SetTotal(plan.CommandCount())
	e.setStatus(StatusRunning)

	var wg sync.WaitGroup
	if e.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.watcher.Watch(ctx)
		}()
	}

	runErr := e.runPlan(ctx, plan)
	if runErr != nil {
		// The flag is normally already set by the failing task; setting it
		// here also releases the watcher on context cancellation.
		e.state.MarkFailed()
	}
	wg.Wait()

	if runErr != nil {
		e.setStatus(StatusFailed)
		return runErr
	}
	e.setStatus(StatusSucceeded)
	return nil
}

// runPlan executes every project in plan order.
func (e *Engine) runPlan(ctx context.Context, plan *domain.BuildPlan) error {
	for _, project := range plan.Projects {
		if err := ctxutil.Canceled(ctx); err != nil {
			return err
		}

		e.state.SetProject(project.Project)
		e.logger.Info().Str("project", project.Project).Msg("starting build for project")

		for _, group := range project.Groups {
			if err := e.runGroup(ctx, project.Project, group); err != nil {
				return err
			}
		}
	}
	return nil
}

// runGroup executes one run group according to its scheduling discipline.
func (e *Engine) runGroup(ctx context.Context, project string, group domain.GroupPlan) error {
	switch group.Kind {
	case domain.RunGroupConcurrent:
		return e.runConcurrent(ctx, project, group.Parts)
	case domain.RunGroupSequential:
		return e.runSequential(ctx, project, group.Parts)
	default:
		e.logger.Warn().
			Str("project", project).
			Str("run_group", group.Kind.String()).
			Msg("run group kind is not a valid selection, skipping")
		return nil
	}
}

// runConcurrent dispatches every part's command list as an independent task
// and joins them all before deciding how to proceed. Goroutines return nil
// so a failing task never cancels its siblings; failures land in the shared
// state instead.
func (e *Engine) runConcurrent(ctx context.Context, project string, parts []domain.PartCommands) error {
	var g errgroup.Group

	for _, cmds := range parts {
		g.Go(func() error {
			if err := e.runSequence(ctx, cmds); err != nil {
				e.logger.Error().Err(err).Str("project", project).Msg("concurrent task failed, letting siblings finish")
			}
			return nil
		})
	}

	_ = g.Wait()

	if e.state.Failed() {
		return fmt.Errorf("%w: project %s concurrent group", boberrors.ErrRunFailed, project)
	}
	return nil
}

// runSequential executes part command lists one at a time in declared order,
// stopping the project at the first failure.
func (e *Engine) runSequential(ctx context.Context, project string, parts []domain.PartCommands) error {
	for _, cmds := range parts {
		if err := e.runSequence(ctx, cmds); err != nil {
			return boberrors.Wrapf(err, "project %s sequential group", project)
		}
	}
	return nil
}

// runSequence executes one expanded command list in strict order. This inner
// ordering holds even inside a concurrent group: concurrency applies across
// command lists, never within one. On success each command's captured output
// is logged line by line and the completed counter incremented; on failure
// the captured error stream is logged line by line, the shared failure flag
// set, and the rest of the list skipped.
//
// An interrupt never kills the in-flight command; it is checked between
// commands so the current one finishes and the next never starts.
func (e *Engine) runSequence(ctx context.Context, cmds domain.PartCommands) error {
	for _, cmd := range cmds {
		if err := ctxutil.Canceled(ctx); err != nil {
			return err
		}

		cmdLine := strings.Join(cmd, " ")
		e.logger.Info().Str("command", cmdLine).Msg("executing command")

		stdout, stderr, exitCode, err := e.runCommand(ctx, cmd)
		switch {
		case errors.Is(err, context.Canceled):
			// Interrupted: not a command failure.
			return err
		case errors.Is(err, context.DeadlineExceeded):
			logLines(e.logger, zerolog.ErrorLevel, stderr)
			e.state.MarkFailed()
			return fmt.Errorf("%w: %s after %s", boberrors.ErrCommandTimeout, cmdLine, e.timeout)
		case err != nil:
			logLines(e.logger, zerolog.ErrorLevel, stderr)
			e.state.MarkFailed()
			return fmt.Errorf("%w: %s: %w", boberrors.ErrCommandFailed, cmdLine, err)
		case exitCode != 0:
			logLines(e.logger, zerolog.ErrorLevel, stderr)
			e.state.MarkFailed()
			return fmt.Errorf("%w: %s: exit code %d", boberrors.ErrCommandFailed, cmdLine, exitCode)
		}

		logLines(e.logger, zerolog.DebugLevel, stdout)
		e.state.CommandDone()
		e.logger.Info().Str("command", cmdLine).Msg("completed command")
	}
	return nil
}

// runCommand runs one command, applying the per-command timeout if set.
func (e *Engine) runCommand(ctx context.Context, cmd domain.ExpandedCommand) (stdout, stderr string, exitCode int, err error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.runner.Run(ctx, e.workDir, cmd)
}

// logLines emits captured process output one line at a time, skipping blanks.
func logLines(logger zerolog.Logger, level zerolog.Level, output string) {
	for _, line := range strings.Split(output, "\n") {
		if len(line) > 0 {
			logger.WithLevel(level).Msg(line)
		}
	}
}
