// Package native runs statements directly on the execution engine.
package native

import (
	"zpm/engine"
	"zpm/runtime"
	"zpm/store"
)

// Name is the registry name of the native runtime
const Name = "interp"

// NativeRuntime implements the LanguageRuntime interface on top of engine.ExecutionEngine
type NativeRuntime struct {
	options runtime.Options
	engine  *engine.ExecutionEngine
	ready   bool
}

// NewNativeRuntime creates a new native runtime instance
func NewNativeRuntime(options runtime.Options) *NativeRuntime {
	return &NativeRuntime{options: options}
}

// GetName returns the name of the runtime
func (nr *NativeRuntime) GetName() string {
	return Name
}

// Initialize builds the engine. The store is kept across re-initialization.
func (nr *NativeRuntime) Initialize() error {
	if nr.engine == nil {
		nr.engine = engine.NewExecutionEngineWithConfig(nr.options.EngineConfig())
	}
	nr.ready = true
	return nil
}

// ExecuteLine runs one statement line
func (nr *NativeRuntime) ExecuteLine(line string) error {
	if !nr.IsReady() {
		return runtime.NewNotReadyError(Name)
	}
	return nr.engine.Execute(line)
}

// IsReady checks if the runtime is ready for execution
func (nr *NativeRuntime) IsReady() bool {
	return nr.ready && nr.engine != nil
}

// Cleanup marks the runtime unusable
func (nr *NativeRuntime) Cleanup() error {
	nr.ready = false
	return nil
}

// Variables returns the engine's store, or nil before Initialize
func (nr *NativeRuntime) Variables() *store.Store {
	if nr.engine == nil {
		return nr.options.Store
	}
	return nr.engine.Store()
}

// Engine exposes the underlying engine
func (nr *NativeRuntime) Engine() *engine.ExecutionEngine {
	return nr.engine
}
