package lua

import (
	"fmt"
	"strings"

	"zpm/engine"
	"zpm/errors"
)

// Chunk is one source line translated to Lua
type Chunk struct {
	Source string
	// Failures holds the errors raised by zpm_fail, by index
	Failures []error
}

type compiler struct {
	buf        strings.Builder
	indent     int
	failures   []error
	maxNesting int
}

// Compile translates a line into a Lua chunk. Errors in the line's own
// statement are returned at once; errors inside a loop body or after
// ENDFOR become zpm_fail calls that raise only when reached.
func Compile(line string, maxNesting int) (*Chunk, error) {
	if maxNesting <= 0 {
		maxNesting = engine.DefaultMaxNesting
	}
	c := &compiler{maxNesting: maxNesting}

	stmt, err := engine.ParseStatement(line)
	if err != nil {
		return nil, err
	}

	if stmt.Kind == engine.StatementFor {
		loop, err := engine.ParseForLoop(stmt.Line)
		if err != nil {
			return nil, err
		}
		c.emitLoop(loop, 0)
	} else {
		c.emitStatement(stmt, 0)
	}

	return &Chunk{Source: c.buf.String(), Failures: c.failures}, nil
}

func (c *compiler) writef(format string, args ...interface{}) {
	c.buf.WriteString(strings.Repeat("  ", c.indent))
	fmt.Fprintf(&c.buf, format, args...)
	c.buf.WriteByte('\n')
}

func (c *compiler) fail(err error) {
	c.writef("zpm_fail(%d)", len(c.failures))
	c.failures = append(c.failures, err)
}

func (c *compiler) emitLine(line string, depth int) {
	stmt, err := engine.ParseStatement(line)
	if err != nil {
		c.fail(err)
		return
	}
	c.emitStatement(stmt, depth)
}

func (c *compiler) emitStatement(stmt engine.Statement, depth int) {
	switch stmt.Kind {
	case engine.StatementPrint:
		c.writef("zpm_print(%s)", luaQuote(stmt.Name))

	case engine.StatementFor:
		loop, err := engine.ParseForLoop(stmt.Line)
		if err != nil {
			c.fail(err)
			return
		}
		if depth >= c.maxNesting {
			c.fail(errors.NewSyntaxError("FOR loops nested too deeply").
				WithContext("limit", c.maxNesting))
			return
		}
		c.emitLoop(loop, depth)

	default:
		c.writef("zpm_assign(%s, %s, %s)",
			luaQuote(stmt.Operator), luaQuote(stmt.Name), luaQuote(stmt.Operand))
	}
}

// emitLoop wraps every loop in its own function so register use stays
// flat however deep the nesting goes.
func (c *compiler) emitLoop(loop engine.ForLoop, depth int) {
	c.writef("do")
	c.indent++
	c.writef("local loop = function()")
	c.indent++
	c.writef("for _ = 1, %d do", loop.Count)
	c.indent++
	for _, command := range loop.Body {
		c.emitLine(command, depth+1)
	}
	c.indent--
	c.writef("end")
	c.indent--
	c.writef("end")
	c.writef("loop()")
	c.indent--
	c.writef("end")

	if loop.Trailer != "" {
		c.emitLine(loop.Trailer, depth)
	}
}

// luaQuote renders s as a Lua string literal. Quotes, backslashes and
// bytes outside printable ASCII are written as escapes.
func luaQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '"' || ch == '\\':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case ch < 32 || ch >= 127:
			fmt.Fprintf(&b, "\\%03d", ch)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}
