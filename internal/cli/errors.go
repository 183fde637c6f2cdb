package cli

import "fmt"

// ExitError represents a command failure with a specific exit code.
//
// This error type allows the Cobra RunE function to signal non-zero exit
// codes without calling os.Exit() directly, enabling testable CLI behavior.
// When the build fails, it returns NewExitError(code), which propagates up
// to [RunWithDeps] where [IsExitError] extracts the code for [ExecuteResult].
//
// Testability benefit: tests can assert on exit codes without process
// termination. The [Execute] function handles the actual os.Exit() call.
type ExitError struct {
	// Code is the exit code to return to the shell.
	// Convention: 0 = success, 1 = general error.
	Code int
}

// Error implements the error interface, returning a string in the format
// "exit status N" where N is the exit code. This format matches the standard
// os/exec ExitError format for consistency with subprocess exit messages.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
//
// Use this in the RunE function to signal failure after the cause has
// already been reported to the user:
//
//	if err != nil {
//	    printer.Failf("%v", err)
//	    return NewExitError(1)
//	}
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError checks if an error is an [ExitError] and extracts its exit code.
//
// Returns (code, true) if err is an *ExitError, allowing the caller to handle
// the specific exit code. Returns (0, false) for nil or non-ExitError errors.
func IsExitError(err error) (int, bool) {
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code, true
	}
	return 0, false
}
