package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pass-The-Butter/willow/internal/organogram"
	"github.com/Pass-The-Butter/willow/internal/types"
)

// Exit code constants for the CLI
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitInvalidInput indicates a malformed task path or other bad input
	ExitInvalidInput = 2
	// ExitNotFound indicates an addressed domain, component or task does not exist
	ExitNotFound = 3
	// ExitCancelled indicates the operation was cancelled
	ExitCancelled = 4
	// ExitTimeout indicates the operation timed out
	ExitTimeout = 5
	// ExitConfigError indicates a configuration error
	ExitConfigError = 10
	// ExitDatabaseError indicates the graph store could not be reached or refused the request
	ExitDatabaseError = 12
)

// CLIError represents a CLI-specific error with an exit code
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WrapError creates a new CLIError wrapping an existing error
func WrapError(code int, message string, err error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewCLIError creates a new CLIError with the given code and message
func NewCLIError(code int, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// HandleError prints err to the command's error output and returns the exit code for it.
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		cmd.PrintErrln("Operation cancelled")
		return ExitCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		cmd.PrintErrln("Operation timed out")
		return ExitTimeout
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		cmd.PrintErrln("Error:", cliErr.Message)
		if cliErr.Cause != nil && verbose(cmd) {
			cmd.PrintErrln("Cause:", cliErr.Cause)
		}
		return cliErr.Code
	}

	cmd.PrintErrln("Error:", err)
	return ExitCodeFor(err)
}

// ExitCodeFor maps domain and infrastructure errors to exit codes.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeout
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}

	switch {
	case errors.Is(err, organogram.ErrInvalidPath):
		return ExitInvalidInput
	case errors.Is(err, organogram.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, organogram.ErrStoreUnavailable):
		return ExitDatabaseError
	}

	code := string(types.GetErrorCode(err))
	switch {
	case code == string(organogram.ErrCodeInvalidInput):
		return ExitInvalidInput
	case strings.HasPrefix(code, "CONFIG_"):
		return ExitConfigError
	case strings.HasPrefix(code, "GRAPH_"):
		return ExitDatabaseError
	}
	return ExitError
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	return types.IsRetryable(err)
}

func verbose(cmd *cobra.Command) bool {
	flag := cmd.Flag("verbose")
	return flag != nil && flag.Changed
}

// IsVerbose checks if verbose mode is enabled via environment variable or flag.
// Used by panic recovery before cobra has parsed flags.
func IsVerbose() bool {
	if os.Getenv("WILLOW_VERBOSE") != "" {
		return true
	}

	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}

	return false
}
