package errors

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionError_Messages(t *testing.T) {
	cases := []struct {
		err  *ExecutionError
		want string
	}{
		{NewUnknownCommandError("GOTO"), "Unknown command 'GOTO'"},
		{NewUnknownOperatorError("/="), "Unknown operator: /="},
		{NewUninitializedError("x"), "Variable 'x' not initialized."},
		{NewTypeMismatchError(), "Invalid operation for non-integer values."},
		{NewFileNotFoundError("a.zpm", os.ErrNotExist), "Sorry, file not found for a.zpm"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.Message)
	}
}

func TestExecutionError_Is(t *testing.T) {
	err := NewUninitializedError("x")
	assert.True(t, goerrors.Is(err, ErrUninitialized))
	assert.False(t, goerrors.Is(err, ErrTypeMismatch))

	wrapped := fmt.Errorf("running: %w", err)
	assert.True(t, goerrors.Is(wrapped, ErrUninitialized))

	execErr, ok := AsExecutionError(wrapped)
	require.True(t, ok)
	assert.Same(t, err, execErr)

	_, ok = AsExecutionError(goerrors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsExecutionError(nil))
}

func TestExecutionError_WithLine(t *testing.T) {
	err := NewSyntaxError("Invalid FOR loop syntax").WithLine(3)
	assert.Equal(t, "[SYNTAX][SYNTAX_ERROR] Invalid FOR loop syntax line 3", err.Error())

	err.WithLine(9)
	assert.Equal(t, 3, err.Line, "the first recorded line wins")
}

func TestExecutionError_Unwrap(t *testing.T) {
	err := NewFileNotFoundError("a.zpm", os.ErrNotExist)
	assert.True(t, goerrors.Is(err, os.ErrNotExist))
	assert.True(t, goerrors.Is(err, ErrFileNotFound))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, NewTypeMismatchError().WithLine(2))
	Report(&buf, NewFileNotFoundError("gone.zpm", nil))
	Report(&buf, goerrors.New("disk on fire"))
	Report(&buf, nil)

	assert.Equal(t,
		"Runtime Error: Invalid operation for non-integer values.\n"+
			"Sorry, file not found for gone.zpm\n"+
			"Runtime Error: disk on fire\n",
		buf.String())
}

func TestErrorHandlers(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, RecoveryActionAbort, NewFatalErrorHandler(&buf).Handle(NewUninitializedError("x")))
	assert.Equal(t, RecoveryActionLog, NewReportingErrorHandler(&buf).Handle(NewUninitializedError("y")))
	assert.Equal(t, RecoveryActionNone, NewFatalErrorHandler(&buf).Handle(nil))
	assert.Equal(t, "Runtime Error: Variable 'x' not initialized.\nRuntime Error: Variable 'y' not initialized.\n", buf.String())

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(NewSyntaxError("x")))
}
