// Package engine executes Z+- statements one line at a time.
package engine

import (
	"fmt"
	"io"

	"zpm/errors"
	"zpm/logging"
	"zpm/store"
)

// ExecutionEngine classifies and runs statements against a variable store.
// It keeps no state of its own between lines apart from the store.
type ExecutionEngine struct {
	vars       *store.Store
	out        io.Writer
	logger     logging.Logger
	maxNesting int
	executed   int
}

// NewExecutionEngine creates an engine with a fresh store printing to stdout
func NewExecutionEngine() *ExecutionEngine {
	return NewExecutionEngineWithConfig(ExecutionEngineConfig{})
}

// NewExecutionEngineWithConfig creates a new execution engine with configuration
func NewExecutionEngineWithConfig(config ExecutionEngineConfig) *ExecutionEngine {
	config = config.withDefaults()
	return &ExecutionEngine{
		vars:       config.Store,
		out:        config.Output,
		logger:     config.Logger.WithComponent("engine"),
		maxNesting: config.MaxNesting,
	}
}

// Store returns the variable store the engine mutates
func (e *ExecutionEngine) Store() *store.Store {
	return e.vars
}

// MaxNesting returns the deepest FOR nesting the engine accepts
func (e *ExecutionEngine) MaxNesting() int {
	return e.maxNesting
}

// StatementsExecuted counts every statement dispatched so far, loop bodies included
func (e *ExecutionEngine) StatementsExecuted() int {
	return e.executed
}

// Execute runs one line of source. Any error is fatal to the run; the
// store keeps whatever was assigned before it.
func (e *ExecutionEngine) Execute(line string) error {
	return e.execute(line, 0)
}

// execute dispatches a line; depth is the number of enclosing FOR loops
func (e *ExecutionEngine) execute(line string, depth int) error {
	stmt, err := ParseStatement(line)
	if err != nil {
		return err
	}

	e.executed++
	e.logger.Debug("dispatch",
		logging.StringField("kind", stmt.Kind.String()),
		logging.StringField("statement", stmt.Line),
		logging.IntField("depth", depth))

	switch stmt.Kind {
	case StatementPrint:
		return e.Print(stmt.Name)
	case StatementFor:
		return e.executeForLoop(stmt.Line, depth)
	default:
		return e.Assign(stmt.Operator, stmt.Name, stmt.Operand)
	}
}

// Print writes "name=value" for an assigned variable
func (e *ExecutionEngine) Print(name string) error {
	value, ok := e.vars.Get(name)
	if !ok {
		return errors.NewUninitializedError(name)
	}

	if _, err := fmt.Fprintf(e.out, "%s=%s\n", name, value); err != nil {
		return errors.NewSystemError("OUTPUT_ERROR", fmt.Sprintf("failed to write output: %v", err)).Wrap(err)
	}
	return nil
}
