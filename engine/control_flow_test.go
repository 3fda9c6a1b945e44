package engine

import (
	goerrors "errors"
	"strings"
	"testing"

	"zpm/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForLoop_Execution(t *testing.T) {
	t.Run("body accumulates through the store", func(t *testing.T) {
		eng, out := newTestEngine(t)
		require.NoError(t, runLines(eng, "x = 0", "FOR 5 x += 2; ENDFOR", "PRINT x"))
		assert.Equal(t, "x=10\n", out.String())
	})

	t.Run("PRINT inside the body", func(t *testing.T) {
		eng, out := newTestEngine(t)
		require.NoError(t, runLines(eng, "i = 0", "FOR 3 i += 1; PRINT i; ENDFOR"))
		assert.Equal(t, "i=1\ni=2\ni=3\n", out.String())
	})

	t.Run("nested loops", func(t *testing.T) {
		eng, out := newTestEngine(t)
		require.NoError(t, runLines(eng, "n = 0", "FOR 3 FOR 4 n += 1 ENDFOR ENDFOR", "PRINT n"))
		assert.Equal(t, "n=12\n", out.String())
	})

	t.Run("empty body", func(t *testing.T) {
		eng, out := newTestEngine(t)
		require.NoError(t, eng.Execute("FOR 3 ENDFOR"))
		assert.Empty(t, out.String())
	})

	t.Run("zero iterations skip errors in the body", func(t *testing.T) {
		eng, _ := newTestEngine(t)
		require.NoError(t, eng.Execute("FOR 0 bogus; PRINT nothing ENDFOR"))
	})

	t.Run("trailing semicolon on the FOR line", func(t *testing.T) {
		eng, out := newTestEngine(t)
		require.NoError(t, runLines(eng, "FOR 2 s += \"ab\"; ENDFOR;", "PRINT s"))
		assert.Equal(t, "s=abab\n", out.String())
	})

	t.Run("error in the body stops the loop", func(t *testing.T) {
		eng, out := newTestEngine(t)
		err := runLines(eng, "i = 0", "FOR 5 i += 1; PRINT i; PRINT nope; ENDFOR")
		require.Error(t, err)
		assert.True(t, goerrors.Is(err, errors.ErrUninitialized))
		assert.Equal(t, "i=1\n", out.String())
		assert.Equal(t, "1/5", err.(*errors.ExecutionError).Context["iteration"])
	})
}

func TestForLoop_SyntaxErrors(t *testing.T) {
	cases := map[string]struct {
		line    string
		message string
	}{
		"missing count":       {"FOR", "Invalid FOR loop syntax"},
		"missing body":        {"FOR 3", "Invalid FOR loop syntax"},
		"missing ENDFOR":      {"FOR 3 x = 1", "Invalid FOR loop syntax"},
		"non numeric count":   {"FOR x y = 1 ENDFOR", "Invalid number of iterations"},
		"negative count":      {"FOR -1 y = 1 ENDFOR", "Invalid number of iterations"},
		"fractional count":    {"FOR 1.5 y = 1 ENDFOR", "Invalid number of iterations"},
		"count out of range":  {"FOR 99999999999 y = 1 ENDFOR", "Invalid number of iterations"},
		"ENDFOR in the count": {"FOR ENDFOR", "Invalid FOR loop syntax"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			eng, _ := newTestEngine(t)
			err := eng.Execute(tc.line)
			require.Error(t, err)
			assert.True(t, goerrors.Is(err, errors.ErrSyntax))
			assert.Equal(t, tc.message, err.(*errors.ExecutionError).Message)
		})
	}
}

func TestForLoop_NestingLimit(t *testing.T) {
	nested := func(levels int) string {
		return strings.Repeat("FOR 1 ", levels) + "x = 1 " + strings.TrimSpace(strings.Repeat("ENDFOR ", levels))
	}

	t.Run("within the limit", func(t *testing.T) {
		var out strings.Builder
		eng := NewExecutionEngineWithConfig(ExecutionEngineConfig{Output: &out, MaxNesting: 3})
		require.NoError(t, eng.Execute(nested(3)))
	})

	t.Run("beyond the limit", func(t *testing.T) {
		var out strings.Builder
		eng := NewExecutionEngineWithConfig(ExecutionEngineConfig{Output: &out, MaxNesting: 3})
		err := eng.Execute(nested(4))
		require.Error(t, err)
		assert.True(t, goerrors.Is(err, errors.ErrSyntax))
		assert.Equal(t, "FOR loops nested too deeply", err.(*errors.ExecutionError).Message)
		_, assigned := eng.Store().Get("x")
		assert.False(t, assigned)
	})
}
