package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatement(t *testing.T) {
	t.Run("assignment keeps the first three tokens", func(t *testing.T) {
		stmt, err := ParseStatement("  total  +=   x  extra words ;")
		require.NoError(t, err)
		assert.Equal(t, StatementAssignment, stmt.Kind)
		assert.Equal(t, "total", stmt.Name)
		assert.Equal(t, "+=", stmt.Operator)
		assert.Equal(t, "x", stmt.Operand)
		assert.Equal(t, "total  +=   x  extra words", stmt.Line)
	})

	t.Run("print", func(t *testing.T) {
		stmt, err := ParseStatement("PRINT\tname")
		require.NoError(t, err)
		assert.Equal(t, StatementPrint, stmt.Kind)
		assert.Equal(t, "name", stmt.Name)
	})

	t.Run("for keeps the whole line", func(t *testing.T) {
		stmt, err := ParseStatement("FOR 2 x = 1 ENDFOR;")
		require.NoError(t, err)
		assert.Equal(t, StatementFor, stmt.Kind)
		assert.Equal(t, "FOR 2 x = 1 ENDFOR", stmt.Line)
	})

	t.Run("keywords win over assignment", func(t *testing.T) {
		stmt, err := ParseStatement("PRINT = 5")
		require.NoError(t, err)
		assert.Equal(t, StatementPrint, stmt.Kind)
		assert.Equal(t, "=", stmt.Name)
	})
}

func TestParseForLoop(t *testing.T) {
	t.Run("body split on semicolons", func(t *testing.T) {
		loop, err := ParseForLoop("FOR 3 a = 1;  ; b += a ;ENDFOR")
		require.NoError(t, err)
		assert.Equal(t, int32(3), loop.Count)
		assert.Equal(t, []string{"a = 1", "b += a"}, loop.Body)
		assert.Empty(t, loop.Trailer)
	})

	t.Run("last ENDFOR closes the loop", func(t *testing.T) {
		loop, err := ParseForLoop(`FOR 1 s = "ENDFOR" ENDFOR PRINT s`)
		require.NoError(t, err)
		assert.Equal(t, []string{`s = "ENDFOR"`}, loop.Body)
		assert.Equal(t, "PRINT s", loop.Trailer)
	})

	t.Run("body whitespace is preserved inside commands", func(t *testing.T) {
		loop, err := ParseForLoop("FOR\t2\tx  =  1 ENDFOR")
		require.NoError(t, err)
		assert.Equal(t, []string{"x  =  1"}, loop.Body)
	})
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "x = 1", Trim("\x01\t x = 1 \r\n"))
	assert.Empty(t, Trim("\x01"))
	assert.Equal(t, "y", Trim(" y\x00"))
}

func TestSplitN(t *testing.T) {
	assert.Equal(t, []string{"FOR", "3", "a  b c"}, splitN("FOR 3 a  b c", 3))
	assert.Equal(t, []string{"FOR", "3"}, splitN("FOR 3", 3))
	assert.Equal(t, []string{"FOR"}, splitN("FOR", 3))
	assert.Nil(t, splitN("", 3))
}
