package errors

import (
	"fmt"
	"io"
)

// RecoveryAction represents the type of recovery action
type RecoveryAction string

const (
	RecoveryActionNone  RecoveryAction = "NONE"
	RecoveryActionAbort RecoveryAction = "ABORT"
	RecoveryActionLog   RecoveryAction = "LOG"
)

// ErrorHandler decides what the process does with an error that reached the top level
type ErrorHandler interface {
	// Handle reports err and returns the action the caller must take
	Handle(err error) RecoveryAction
}

// FatalErrorHandler aborts on every error. Script runs use it.
type FatalErrorHandler struct {
	out io.Writer
}

// NewFatalErrorHandler creates a handler that reports to out and aborts
func NewFatalErrorHandler(out io.Writer) *FatalErrorHandler {
	return &FatalErrorHandler{out: out}
}

// Handle reports err and asks the caller to abort
func (h *FatalErrorHandler) Handle(err error) RecoveryAction {
	if err == nil {
		return RecoveryActionNone
	}
	Report(h.out, err)
	return RecoveryActionAbort
}

// ReportingErrorHandler reports errors and lets the caller continue. The REPL uses it.
type ReportingErrorHandler struct {
	out io.Writer
}

// NewReportingErrorHandler creates a handler that reports to out and continues
func NewReportingErrorHandler(out io.Writer) *ReportingErrorHandler {
	return &ReportingErrorHandler{out: out}
}

// Handle reports err and asks the caller to keep going
func (h *ReportingErrorHandler) Handle(err error) RecoveryAction {
	if err == nil {
		return RecoveryActionNone
	}
	Report(h.out, err)
	return RecoveryActionLog
}

// FormatRuntimeError renders err the way the interpreter reports fatal conditions
func FormatRuntimeError(err error) string {
	if execErr, ok := AsExecutionError(err); ok {
		if execErr.Type == ErrorTypeInvocation {
			return execErr.Message
		}
		return "Runtime Error: " + execErr.Message
	}
	return "Runtime Error: " + err.Error()
}

// Report writes the one-line error report for err
func Report(w io.Writer, err error) {
	if err == nil || w == nil {
		return
	}
	fmt.Fprintln(w, FormatRuntimeError(err))
}

// ExitCode maps the outcome of a run to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
