// Package lua runs statements by translating them to Lua and executing
// them on an embedded gopher-lua VM.
package lua

import (
	"fmt"
	"sync"

	"zpm/engine"
	"zpm/errors"
	"zpm/logging"
	"zpm/runtime"
	"zpm/store"

	lua "github.com/yuin/gopher-lua"
)

// Name is the registry name of the Lua runtime
const Name = "lua"

// minCallStackSize matches the gopher-lua default
const minCallStackSize = 256

// LuaRuntime implements the LanguageRuntime interface for Lua
type LuaRuntime struct {
	state   *lua.LState
	engine  *engine.ExecutionEngine
	logger  logging.Logger
	options runtime.Options
	ready   bool
	mu      sync.Mutex

	// failures and lastErr belong to the chunk currently running
	failures []error
	lastErr  error
}

// NewLuaRuntime creates a new Lua runtime instance
func NewLuaRuntime(options runtime.Options) *LuaRuntime {
	logger := options.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &LuaRuntime{
		options: options,
		logger:  logger.WithComponent("lua"),
	}
}

// Initialize sets up the Lua state and registers the statement builtins
func (lr *LuaRuntime) Initialize() error {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	if lr.engine == nil {
		lr.engine = engine.NewExecutionEngineWithConfig(lr.options.EngineConfig())
	}

	// Each nested loop is one Lua call frame.
	callStackSize := lr.engine.MaxNesting() + 64
	if callStackSize < minCallStackSize {
		callStackSize = minCallStackSize
	}

	lr.state = lua.NewState(lua.Options{
		CallStackSize: callStackSize,
		SkipOpenLibs:  true,
	})
	lr.registerGoFunctions()

	lr.ready = true
	return nil
}

// registerGoFunctions registers the builtins compiled chunks call into
func (lr *LuaRuntime) registerGoFunctions() {
	lr.state.SetGlobal("zpm_assign", lr.state.NewFunction(func(L *lua.LState) int {
		operator := L.CheckString(1)
		name := L.CheckString(2)
		operand := L.CheckString(3)
		if err := lr.engine.Assign(operator, name, operand); err != nil {
			lr.raise(L, err)
		}
		return 0
	}))

	lr.state.SetGlobal("zpm_print", lr.state.NewFunction(func(L *lua.LState) int {
		if err := lr.engine.Print(L.CheckString(1)); err != nil {
			lr.raise(L, err)
		}
		return 0
	}))

	lr.state.SetGlobal("zpm_fail", lr.state.NewFunction(func(L *lua.LState) int {
		index := L.CheckInt(1)
		if index < 0 || index >= len(lr.failures) {
			L.RaiseError("zpm_fail: no failure recorded at %d", index)
			return 0
		}
		lr.raise(L, lr.failures[index])
		return 0
	}))
}

// raise records err for ExecuteLine and unwinds the Lua stack
func (lr *LuaRuntime) raise(L *lua.LState, err error) {
	lr.lastErr = err
	L.RaiseError("%s", err.Error())
}

// GetName returns the name of the language runtime
func (lr *LuaRuntime) GetName() string {
	return Name
}

// ExecuteLine compiles the line to Lua and runs it
func (lr *LuaRuntime) ExecuteLine(line string) error {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	if !lr.ready || lr.state == nil {
		return runtime.NewNotReadyError(Name)
	}

	chunk, err := Compile(line, lr.engine.MaxNesting())
	if err != nil {
		return err
	}
	lr.logger.Debug("compiled", logging.StringField("chunk", chunk.Source))

	lr.failures = chunk.Failures
	lr.lastErr = nil
	defer func() {
		lr.failures = nil
		lr.lastErr = nil
	}()

	if err := lr.state.DoString(chunk.Source); err != nil {
		if lr.lastErr != nil {
			return lr.lastErr
		}
		return errors.NewSystemError("LUA_ERROR", fmt.Sprintf("error evaluating code: %v", err)).Wrap(err)
	}
	return nil
}

// IsReady checks if the runtime is ready for execution
func (lr *LuaRuntime) IsReady() bool {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.ready && lr.state != nil
}

// Cleanup releases resources used by the runtime
func (lr *LuaRuntime) Cleanup() error {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	if lr.state != nil {
		lr.state.Close()
		lr.state = nil
	}
	lr.ready = false
	return nil
}

// Variables returns the store the builtins write to
func (lr *LuaRuntime) Variables() *store.Store {
	if lr.engine == nil {
		return lr.options.Store
	}
	return lr.engine.Store()
}
