package engine

import (
	"io"
	"os"

	"zpm/logging"
	"zpm/store"
)

// DefaultMaxNesting bounds how many FOR loops may enclose one another
const DefaultMaxNesting = 64

// ExecutionEngineConfig contains configuration for the execution engine
type ExecutionEngineConfig struct {
	Store      *store.Store   // Optional: if nil, a fresh store is created
	Output     io.Writer      // Destination of PRINT; defaults to os.Stdout
	Logger     logging.Logger // Optional: if nil, logging is disabled
	MaxNesting int            // Zero or negative means DefaultMaxNesting
}

func (c ExecutionEngineConfig) withDefaults() ExecutionEngineConfig {
	if c.Store == nil {
		c.Store = store.New()
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.Logger == nil {
		c.Logger = logging.NewNopLogger()
	}
	if c.MaxNesting <= 0 {
		c.MaxNesting = DefaultMaxNesting
	}
	return c
}
