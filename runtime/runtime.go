package runtime

import (
	"fmt"
	"io"

	"zpm/engine"
	"zpm/errors"
	"zpm/logging"
	"zpm/store"
)

// LanguageRuntime defines the interface for all execution backends
type LanguageRuntime interface {
	// GetName returns the name the runtime is registered under
	GetName() string

	// Initialize sets up the runtime
	Initialize() error

	// ExecuteLine runs one line of source against the runtime's store
	ExecuteLine(line string) error

	// IsReady checks if the runtime is ready for execution
	IsReady() bool

	// Cleanup releases resources used by the runtime
	Cleanup() error

	// Variables returns the store the runtime mutates
	Variables() *store.Store
}

// Options configures a runtime. Zero values fall back to the engine defaults.
type Options struct {
	Store      *store.Store
	Output     io.Writer
	Logger     logging.Logger
	MaxNesting int
}

// EngineConfig converts the options into an engine configuration
func (o Options) EngineConfig() engine.ExecutionEngineConfig {
	return engine.ExecutionEngineConfig{
		Store:      o.Store,
		Output:     o.Output,
		Logger:     o.Logger,
		MaxNesting: o.MaxNesting,
	}
}

// NewNotReadyError reports a call on a runtime that was never initialized or already cleaned up
func NewNotReadyError(name string) *errors.ExecutionError {
	return errors.NewSystemError("RUNTIME_NOT_INITIALIZED", fmt.Sprintf("%s runtime is not initialized", name)).
		WithContext("runtime", name)
}
