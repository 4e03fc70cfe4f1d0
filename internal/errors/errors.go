// Package errors provides centralized error handling for bob.
//
// This package defines sentinel errors used for programmatic error
// categorization throughout the application. All error types can be checked
// using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrUnknownPart indicates a project declared a part type that has no
	// registered command templates. Detected during plan expansion, before
	// any command runs.
	ErrUnknownPart = errors.New("no build rule for part")

	// ErrUnresolvedPlaceholder indicates a command template references a
	// placeholder that is absent from the merged parameter map. Detected
	// during plan expansion, before any command runs.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrInvalidSelector indicates the requested single-project filter names
	// a project that does not exist in the specification.
	ErrInvalidSelector = errors.New("project does not exist")

	// ErrCommandFailed indicates an external build command exited nonzero.
	ErrCommandFailed = errors.New("command failed")

	// ErrUnknownRunGroup indicates a run-group kind that is neither
	// concurrent nor sequential. Non-fatal; such groups are skipped.
	ErrUnknownRunGroup = errors.New("unknown run group kind")

	// ErrPartNil indicates a nil part template was provided to the registry.
	ErrPartNil = errors.New("part template cannot be nil")

	// ErrPartNameEmpty indicates a part template has an empty name.
	ErrPartNameEmpty = errors.New("part template name is required")

	// ErrPartDuplicate indicates a part template with the same name already exists.
	ErrPartDuplicate = errors.New("part template already registered")

	// ErrSpecFileMissing indicates the project specification file does not exist.
	ErrSpecFileMissing = errors.New("spec file not found")

	// ErrSpecParse indicates the project specification file has invalid YAML syntax
	// or an unexpected document shape.
	ErrSpecParse = errors.New("spec parse error")

	// ErrSpecEmpty indicates the specification contains no projects.
	ErrSpecEmpty = errors.New("no projects in spec")

	// ErrPartsFileMissing indicates a configured custom parts file does not exist.
	ErrPartsFileMissing = errors.New("parts file not found")

	// ErrPartsFileParse indicates a custom parts file has invalid YAML syntax.
	ErrPartsFileParse = errors.New("parts file parse error")

	// ErrConfigNil indicates a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidProgress indicates an invalid progress configuration value.
	ErrConfigInvalidProgress = errors.New("invalid progress configuration")

	// ErrConfigInvalidExecution indicates an invalid execution configuration value.
	ErrConfigInvalidExecution = errors.New("invalid execution configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrRunFailed indicates the build run finished in the failed state.
	ErrRunFailed = errors.New("build run failed")

	// ErrRunLockHeld indicates another run already holds the working
	// directory's run lock.
	ErrRunLockHeld = errors.New("another build is already running in this directory")

	// ErrCommandTimeout indicates a command exceeded its timeout duration.
	ErrCommandTimeout = errors.New("command timeout exceeded")
)
