package main

import (
	"errors"
	"os"

	mdrich "github.com/alnah/go-mdrich"
	"github.com/alnah/go-mdrich/internal/config"
	"github.com/alnah/go-mdrich/internal/fileutil"
)

// Exit codes for the mdrich CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or rule set
	ExitIO      = 3 // File not found, permission denied
	ExitCheck   = 4 // fmt --check found files not in normal form
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrCheckFailed) {
		return ExitCheck
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateOutputDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, fileutil.ErrNotMarkdown) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrDuplicateRule) ||
		errors.Is(err, mdrich.ErrUnknownTransformer) ||
		errors.Is(err, mdrich.ErrInvalidTransformer) ||
		errors.Is(err, mdrich.ErrDuplicateTag) ||
		errors.Is(err, mdrich.ErrMissingDependency) ||
		errors.Is(err, mdrich.ErrPatternCompile) {
		return ExitUsage
	}

	return ExitGeneral
}
