package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failed (invalid backup, unknown request, ...)
	ExitCommandError = 2 // Command error (bad config, storage unreachable, ...)
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope for command output.
type CLIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// Success prints data as a JSON envelope, or text via the render func.
func (f *OutputFormatter) Success(data interface{}, render func(io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	if render != nil {
		render(f.Writer)
		return nil
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

func newFormatter(opts *RootOptions, w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: w}
}
