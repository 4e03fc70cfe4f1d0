// Package cli provides the command-line interface for bob.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hdlforge/bob/internal/build"
	"github.com/hdlforge/bob/internal/config"
	"github.com/hdlforge/bob/internal/constants"
	"github.com/hdlforge/bob/internal/ctxutil"
	"github.com/hdlforge/bob/internal/part"
	"github.com/hdlforge/bob/internal/progress"
	"github.com/hdlforge/bob/internal/spec"
)

// buildOptions holds flags specific to the build command.
type buildOptions struct {
	// Project restricts the run to a single named project.
	Project string
}

// AddBuildCommand adds the build command to the root command.
func AddBuildCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newBuildCmd(flags))
}

func newBuildCmd(flags *GlobalFlags) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build [spec-file]",
		Short: "Run the builds a project specification declares",
		Long: `Read a YAML project specification, expand each project's part
templates into concrete commands, and execute them in the declared
concurrent and sequential groups.

The specification file defaults to ` + constants.DefaultSpecFile + ` in the
current directory.

Examples:
  bob build
  bob build boards.yml
  bob build --project zynq-eval boards.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specFile := constants.DefaultSpecFile
			if len(args) == 1 {
				specFile = args[0]
			}
			return runBuild(cmd.Context(), specFile, opts, flags, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "build only the named project")

	return cmd
}

// runBuild loads configuration and the specification, assembles the engine
// with its progress monitor, and executes the run.
func runBuild(ctx context.Context, specFile string, opts *buildOptions, flags *GlobalFlags, w io.Writer) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	logger := GetLogger()
	out := progress.NewOutput(w, flags.Output)

	cfg, err := config.Load(logger.WithContext(ctx))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load config, using defaults")
		if !flags.Quiet {
			out.Warning("failed to load config, using defaults: " + err.Error())
		}
		cfg = config.DefaultConfig()
	}

	registry := part.DefaultRegistry()
	if cfg.Parts.File != "" {
		if err := part.LoadFile(registry, cfg.Parts.File); err != nil {
			return err
		}
		logger.Debug().Str("file", cfg.Parts.File).Msg("custom part templates loaded")
	}

	buildSpec, err := spec.Load(specFile)
	if err != nil {
		return err
	}
	if buildSpec, err = spec.Select(buildSpec, opts.Project); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	lock, err := build.AcquireRunLock(workDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	engine := build.New(build.Config{
		Registry:       registry,
		WorkDir:        workDir,
		CommandTimeout: cfg.Execution.CommandTimeout,
		Logger:         logger,
	})

	// The progress bar writes to stdout only in interactive text mode;
	// JSON and quiet runs rely on the structured log instead.
	if flags.Output == OutputText && !flags.Quiet {
		monitor := progress.NewMonitor(engine.State(), cfg.Progress.PollInterval, cfg.Progress.BarWidth, w)
		engine.SetWatcher(monitor)
	}

	logger.Info().Str("spec", specFile).Msg("starting build run")
	if err := engine.Run(ctx, buildSpec); err != nil {
		logger.Error().Err(err).Msg("build run failed")
		if !flags.Quiet {
			out.Error(err)
		}
		return err
	}

	logger.Info().Str("spec", specFile).Msg("build run succeeded")
	if !flags.Quiet {
		done, total, _, _ := engine.State().Progress()
		out.Success(fmt.Sprintf("build complete: %d/%d commands", done, total))
	}
	return nil
}
