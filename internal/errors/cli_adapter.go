package errors

import (
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if pe, ok := err.(*PublishError); ok {
		return a.exitCodeFromPublish(pe)
	}

	return 1
}

// exitCodeFromPublish maps PublishError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromPublish(err *PublishError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryAuth:
		return 5 // Auth error
	case CategoryNetwork, CategoryGit:
		return 8 // External system error
	case CategoryGenerator, CategoryContent, CategoryFileSystem:
		return 11 // Pipeline error
	case CategoryDaemon, CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// Report logs the error with structured fields at the appropriate level.
func (a *CLIErrorAdapter) Report(err error) {
	if err == nil {
		return
	}
	pe, ok := err.(*PublishError)
	if !ok {
		a.logger.Error("command failed", "error", err.Error())
		return
	}
	attrs := []any{"category", string(pe.Category), "error", pe.Message}
	if pe.Cause != nil && a.verbose {
		attrs = append(attrs, "cause", pe.Cause.Error())
	}
	for k, v := range pe.Context {
		attrs = append(attrs, k, v)
	}
	switch pe.Severity {
	case SeverityWarning:
		a.logger.Warn("command failed", attrs...)
	default:
		a.logger.Error("command failed", attrs...)
	}
}
