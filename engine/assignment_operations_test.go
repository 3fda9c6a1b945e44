package engine

import (
	goerrors "errors"
	"testing"

	"zpm/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueOf(t *testing.T, e *ExecutionEngine, name string) string {
	t.Helper()
	value, ok := e.Store().Get(name)
	require.True(t, ok, "variable %q should be assigned", name)
	return value
}

func TestAssign_Operators(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		want  string
	}{
		{"plain literal", []string{"x = 42"}, "42"},
		{"quoted literal", []string{`x = "hi"`}, "hi"},
		{"bare word is a literal", []string{"x = hello"}, "hello"},
		{"one layer of quotes", []string{`x = ""hi""`}, `"hi"`},
		{"lone quote", []string{`x = "`}, `"`},
		{"add", []string{"x = 2", "x += 40"}, "42"},
		{"add negative", []string{"x = 2", "x += -5"}, "-3"},
		{"subtract", []string{"x = 10", "x -= 4"}, "6"},
		{"multiply", []string{"x = 6", "x *= 7"}, "42"},
		{"number plus string concatenates", []string{"x = 1", `x += "a"`}, "1a"},
		{"string plus number concatenates", []string{`x = "a"`, "x += 1"}, "a1"},
		{"fresh variable concatenates", []string{"x += 5"}, "5"},
		{"fresh variable twice", []string{"x += 5", "x += 5"}, "10"},
		{"operand from variable", []string{"y = 3", "x = 4", "x *= y"}, "12"},
		{"variable beats literal", []string{`"q" = 9`, `x = "q"`}, "9"},
		{"plus sign is accepted", []string{"x = +5", "x += 1"}, "6"},
		{"addition wraps", []string{"x = 2147483647", "x += 1"}, "-2147483648"},
		{"multiplication wraps", []string{"x = 65536", "x *= 65536"}, "0"},
		{"out of range is text", []string{"x = 2147483648", "x += 1"}, "21474836481"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, _ := newTestEngine(t)
			require.NoError(t, runLines(eng, tc.lines...))
			assert.Equal(t, tc.want, valueOf(t, eng, "x"))
		})
	}
}

func TestAssign_TypeMismatch(t *testing.T) {
	cases := map[string][]string{
		"subtract from absent":   {"x -= 1"},
		"multiply absent":        {"x *= 2"},
		"subtract from string":   {`x = "a"`, "x -= 1"},
		"multiply by string":     {"x = 3", `x *= "b"`},
		"subtract unset operand": {"x = 3", "x -= y"},
	}

	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			eng, _ := newTestEngine(t)
			err := runLines(eng, lines...)
			require.Error(t, err)
			assert.True(t, goerrors.Is(err, errors.ErrTypeMismatch))
		})
	}

	t.Run("state before the error is kept", func(t *testing.T) {
		eng, _ := newTestEngine(t)
		err := runLines(eng, "x = 5", "y = 7", `x -= "a"`)
		require.Error(t, err)
		assert.Equal(t, "5", valueOf(t, eng, "x"))
		assert.Equal(t, "7", valueOf(t, eng, "y"))
	})
}

func TestAssign_UnknownOperator(t *testing.T) {
	eng, _ := newTestEngine(t)
	err := eng.Assign("/=", "x", "1")
	require.Error(t, err)
	assert.True(t, goerrors.Is(err, errors.ErrUnknownOp))
	assert.Equal(t, "Unknown operator: /=", err.(*errors.ExecutionError).Message)
}

func TestAssign_ExtraTokensAreIgnored(t *testing.T) {
	t.Run("unquoted words are truncated", func(t *testing.T) {
		eng, _ := newTestEngine(t)
		require.NoError(t, eng.Execute("x = hello world"))
		assert.Equal(t, "hello", valueOf(t, eng, "x"))
	})

	t.Run("quoted words are truncated too", func(t *testing.T) {
		eng, _ := newTestEngine(t)
		require.NoError(t, eng.Execute(`x = "hello world"`))
		assert.Equal(t, `"hello`, valueOf(t, eng, "x"))
	})

	t.Run("only one trailing semicolon is stripped", func(t *testing.T) {
		eng, _ := newTestEngine(t)
		require.NoError(t, eng.Execute("x = 5;;"))
		assert.Equal(t, "5;", valueOf(t, eng, "x"))
	})
}
