package runtime

import (
	"bufio"
	"fmt"
	"io"

	"zpm/engine"
	"zpm/errors"
)

// MaxLineLength bounds a single source line
const MaxLineLength = 16 * 1024 * 1024

// ScriptStats counts what ExecuteScript consumed
type ScriptStats struct {
	Lines      int
	Statements int
}

// ExecuteScript runs every non-blank line of r on rt in order. It stops at
// the first error, which carries the line number it occurred on.
func ExecuteScript(rt LanguageRuntime, r io.Reader) (ScriptStats, error) {
	var stats ScriptStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()
		if engine.Trim(line) == "" {
			continue
		}

		if err := rt.ExecuteLine(line); err != nil {
			if execErr, ok := errors.AsExecutionError(err); ok {
				return stats, execErr.WithLine(stats.Lines)
			}
			return stats, err
		}
		stats.Statements++
	}

	if err := scanner.Err(); err != nil {
		return stats, errors.NewSystemError("READ_ERROR", fmt.Sprintf("error reading script: %v", err)).Wrap(err)
	}
	return stats, nil
}
