package main

import (
	"bytes"
	goerrors "errors"
	"testing"

	"zpm/errors"
	"zpm/logging"
	"zpm/runtime"
	"zpm/runtime/native"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchMode(t *testing.T) {
	newRT := func(t *testing.T, out *bytes.Buffer) runtime.LanguageRuntime {
		rt := native.NewNativeRuntime(runtime.Options{Output: out})
		require.NoError(t, rt.Initialize())
		return rt
	}

	t.Run("error carries the line number", func(t *testing.T) {
		var out bytes.Buffer
		path := writeScript(t, "x = 1\n\n\nPRINT y\nPRINT x\n")
		err := BatchMode(newRT(t, &out), path, logging.NewNopLogger())
		require.Error(t, err)
		assert.True(t, goerrors.Is(err, errors.ErrUninitialized))
		assert.Equal(t, 4, err.(*errors.ExecutionError).Line)
		assert.Empty(t, out.String())
	})

	t.Run("control-only lines are skipped", func(t *testing.T) {
		var out bytes.Buffer
		path := writeScript(t, "x = 1\n\x01\nPRINT x\n")
		require.NoError(t, BatchMode(newRT(t, &out), path, logging.NewNopLogger()))
		assert.Equal(t, "x=1\n", out.String())
	})

	t.Run("missing file", func(t *testing.T) {
		var out bytes.Buffer
		err := BatchMode(newRT(t, &out), "/no/such/file", logging.NewNopLogger())
		require.Error(t, err)
		assert.True(t, goerrors.Is(err, errors.ErrFileNotFound))
	})

	t.Run("long lines", func(t *testing.T) {
		var out bytes.Buffer
		long := make([]byte, 200*1024)
		for i := range long {
			long[i] = 'a'
		}
		path := writeScript(t, "s = "+string(long)+"\nPRINT s\n")
		require.NoError(t, BatchMode(newRT(t, &out), path, logging.NewNopLogger()))
		assert.Equal(t, "s="+string(long)+"\n", out.String())
	})

	t.Run("logs progress", func(t *testing.T) {
		var out, logs bytes.Buffer
		logger := logging.NewDefaultLoggerWithConfig(logging.LoggerConfig{
			Level:      logging.LevelInfo,
			Formatters: []logging.Formatter{logging.NewTextFormatterWithOptions(false, false, true)},
			Writers:    []logging.Writer{logging.NewConsoleWriterWithFile(&logs)},
		})
		path := writeScript(t, "x = 1\n")
		require.NoError(t, BatchMode(newRT(t, &out), path, logger))
		assert.Contains(t, logs.String(), "[INFO] [batch] script opened")
		assert.Contains(t, logs.String(), "statements=1")
	})
}
