package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "SYNTAX"
	ErrorTypeRuntime    ErrorType = "RUNTIME"
	ErrorTypeInvocation ErrorType = "INVOCATION"
	ErrorTypeSystem     ErrorType = "SYSTEM"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityWarning ErrorSeverity = "WARNING"
	SeverityError   ErrorSeverity = "ERROR"
	SeverityFatal   ErrorSeverity = "FATAL"
)

// Error codes, one per kind of fatal condition
const (
	CodeSyntax         = "SYNTAX_ERROR"
	CodeUnknownCommand = "UNKNOWN_COMMAND"
	CodeUnknownOp      = "UNKNOWN_OPERATOR"
	CodeUninitialized  = "UNINITIALIZED_VARIABLE"
	CodeTypeMismatch   = "TYPE_MISMATCH"
	CodeInvocation     = "INVOCATION_ERROR"
	CodeFileNotFound   = "FILE_NOT_FOUND"
)

// ExecutionError represents a structured error with detailed information
type ExecutionError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Line      int                    `json:"line,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Severity  ErrorSeverity          `json:"severity"`
	Type      ErrorType              `json:"type"`
	Cause     error                  `json:"-"`
}

// Error implements the error interface
func (e *ExecutionError) Error() string {
	var builder strings.Builder

	// Format: [TYPE][CODE] message
	builder.WriteString(fmt.Sprintf("[%s][%s] %s", e.Type, e.Code, e.Message))
	if e.Line > 0 {
		builder.WriteString(fmt.Sprintf(" line %d", e.Line))
	}

	return builder.String()
}

// Unwrap returns the underlying error
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *ExecutionError) Is(target error) bool {
	if other, ok := target.(*ExecutionError); ok {
		return e.Code == other.Code && e.Type == other.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *ExecutionError) WithContext(key string, value interface{}) *ExecutionError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithLine records the source line the error was raised on. An already
// recorded line is kept, so the innermost caller wins.
func (e *ExecutionError) WithLine(line int) *ExecutionError {
	if e.Line == 0 {
		e.Line = line
	}
	return e
}

// Wrap wraps another error
func (e *ExecutionError) Wrap(err error) *ExecutionError {
	e.Cause = err
	return e
}

func newError(errorType ErrorType, code, message string) *ExecutionError {
	return &ExecutionError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Severity:  SeverityFatal,
		Type:      errorType,
		Context:   make(map[string]interface{}),
	}
}

// NewSyntaxError creates an error for a malformed statement
func NewSyntaxError(message string) *ExecutionError {
	return newError(ErrorTypeSyntax, CodeSyntax, message)
}

// NewUnknownCommandError creates an error for a statement whose first token is not recognised
func NewUnknownCommandError(command string) *ExecutionError {
	return newError(ErrorTypeSyntax, CodeUnknownCommand, fmt.Sprintf("Unknown command '%s'", command)).
		WithContext("command", command)
}

// NewUnknownOperatorError creates an error for an unsupported assignment operator
func NewUnknownOperatorError(operator string) *ExecutionError {
	return newError(ErrorTypeSyntax, CodeUnknownOp, "Unknown operator: "+operator).
		WithContext("operator", operator)
}

// NewUninitializedError creates an error for a read of a variable that has no value
func NewUninitializedError(name string) *ExecutionError {
	return newError(ErrorTypeRuntime, CodeUninitialized, fmt.Sprintf("Variable '%s' not initialized.", name)).
		WithContext("variable", name)
}

// NewTypeMismatchError creates an error for integer-only arithmetic on non-integer values
func NewTypeMismatchError() *ExecutionError {
	return newError(ErrorTypeRuntime, CodeTypeMismatch, "Invalid operation for non-integer values.")
}

// NewInvocationError creates an error for a bad command line
func NewInvocationError(message string) *ExecutionError {
	return newError(ErrorTypeInvocation, CodeInvocation, message)
}

// NewFileNotFoundError creates an error for a script file that cannot be opened
func NewFileNotFoundError(path string, cause error) *ExecutionError {
	return newError(ErrorTypeInvocation, CodeFileNotFound, "Sorry, file not found for "+path).
		WithContext("path", path).
		Wrap(cause)
}

// NewSystemError creates a new system error
func NewSystemError(code, message string) *ExecutionError {
	e := newError(ErrorTypeSystem, code, message)
	e.Severity = SeverityError
	return e
}

// Sentinels for errors.Is comparisons; only Code and Type take part in matching.
var (
	ErrSyntax         = &ExecutionError{Code: CodeSyntax, Type: ErrorTypeSyntax}
	ErrUnknownCommand = &ExecutionError{Code: CodeUnknownCommand, Type: ErrorTypeSyntax}
	ErrUnknownOp      = &ExecutionError{Code: CodeUnknownOp, Type: ErrorTypeSyntax}
	ErrUninitialized  = &ExecutionError{Code: CodeUninitialized, Type: ErrorTypeRuntime}
	ErrTypeMismatch   = &ExecutionError{Code: CodeTypeMismatch, Type: ErrorTypeRuntime}
	ErrFileNotFound   = &ExecutionError{Code: CodeFileNotFound, Type: ErrorTypeInvocation}
)

// IsExecutionError checks if an error is an ExecutionError
func IsExecutionError(err error) bool {
	_, ok := AsExecutionError(err)
	return ok
}

// AsExecutionError converts an error to ExecutionError if possible
func AsExecutionError(err error) (*ExecutionError, bool) {
	for err != nil {
		if execErr, ok := err.(*ExecutionError); ok {
			return execErr, true
		}
		wrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = wrapper.Unwrap()
	}
	return nil, false
}
