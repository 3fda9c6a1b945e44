package engine

import (
	"fmt"

	"zpm/errors"
	"zpm/logging"
)

// executeForLoop runs "FOR n body ENDFOR". The body is re-executed from its
// text on every iteration; there is no loop variable. Anything after the
// last ENDFOR runs once, after the loop.
func (e *ExecutionEngine) executeForLoop(line string, depth int) error {
	loop, err := ParseForLoop(line)
	if err != nil {
		return err
	}

	if depth >= e.maxNesting {
		return errors.NewSyntaxError("FOR loops nested too deeply").
			WithContext("limit", e.maxNesting)
	}

	e.logger.Debug("for loop",
		logging.IntField("iterations", int(loop.Count)),
		logging.IntField("commands", len(loop.Body)),
		logging.IntField("depth", depth))

	for i := int32(0); i < loop.Count; i++ {
		for _, command := range loop.Body {
			if err := e.execute(command, depth+1); err != nil {
				if execErr, ok := errors.AsExecutionError(err); ok && execErr.Context["iteration"] == nil {
					execErr.WithContext("iteration", fmt.Sprintf("%d/%d", i+1, loop.Count))
				}
				return err
			}
		}
	}

	if loop.Trailer != "" {
		return e.execute(loop.Trailer, depth)
	}
	return nil
}
