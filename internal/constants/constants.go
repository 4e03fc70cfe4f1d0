// Package constants provides centralized constant values used throughout bob.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by bob for organizing data.
const (
	// BobHome is the hidden directory name where bob stores all its data.
	// This directory is created in the user's home directory.
	BobHome = ".bob"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "bob.log"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before a log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of rotated log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum number of days to retain rotated log files.
	LogMaxAgeDays = 30

	// LogCompress controls whether rotated log files are gzip compressed.
	LogCompress = true
)

// Build specification defaults.
const (
	// DefaultSpecFile is the project specification file read when no
	// positional argument is given to the build command.
	DefaultSpecFile = "bob.yml"
)

// Progress display defaults.
const (
	// DefaultPollInterval is how often the progress monitor samples the
	// shared run state.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultBarWidth is the default width of the progress bar in cells.
	DefaultBarWidth = 40
)

// Implicit placeholder names injected into every part invocation's
// parameters before substitution. These mirror the spec-file surface, so
// they keep the leading underscore naming.
const (
	// PlaceholderProjectName is replaced by the name of the project being built.
	PlaceholderProjectName = "_project_name"

	// PlaceholderWorkDir is replaced by the orchestrator's working directory.
	PlaceholderWorkDir = "_pwd"
)
