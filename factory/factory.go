package factory

import (
	"fmt"
	"sort"
	"sync"

	"zpm/errors"
	"zpm/runtime"
	"zpm/runtime/lua"
	"zpm/runtime/native"
)

// RuntimeFactory defines the interface for creating execution backends
type RuntimeFactory interface {
	// CreateRuntime creates a new, uninitialized runtime instance
	CreateRuntime(options runtime.Options) (runtime.LanguageRuntime, error)

	// GetName returns the name of the runtime factory
	GetName() string
}

// RuntimeRegistry manages multiple runtime factories
type RuntimeRegistry struct {
	factories map[string]RuntimeFactory
	mutex     sync.RWMutex
}

// NewRuntimeRegistry creates a new, empty runtime registry
func NewRuntimeRegistry() *RuntimeRegistry {
	return &RuntimeRegistry{
		factories: make(map[string]RuntimeFactory),
	}
}

// DefaultRuntimeRegistry returns a registry holding the native and Lua backends
func DefaultRuntimeRegistry() *RuntimeRegistry {
	rr := NewRuntimeRegistry()
	_ = rr.RegisterFactory(NewNativeRuntimeFactory())
	_ = rr.RegisterFactory(NewLuaRuntimeFactory())
	return rr
}

// RegisterFactory registers a runtime factory
func (rr *RuntimeRegistry) RegisterFactory(factory RuntimeFactory) error {
	if factory == nil {
		return errors.NewSystemError("NIL_FACTORY", "factory cannot be nil")
	}

	name := factory.GetName()
	if name == "" {
		return errors.NewSystemError("EMPTY_FACTORY_NAME", "factory name cannot be empty")
	}

	rr.mutex.Lock()
	defer rr.mutex.Unlock()

	if _, exists := rr.factories[name]; exists {
		return errors.NewSystemError("FACTORY_ALREADY_REGISTERED", fmt.Sprintf("factory '%s' is already registered", name))
	}

	rr.factories[name] = factory
	return nil
}

// GetFactory returns a registered factory by name
func (rr *RuntimeRegistry) GetFactory(name string) (RuntimeFactory, error) {
	rr.mutex.RLock()
	defer rr.mutex.RUnlock()

	factory, exists := rr.factories[name]
	if !exists {
		return nil, errors.NewSystemError("FACTORY_NOT_REGISTERED", fmt.Sprintf("factory '%s' is not registered", name)).
			WithContext("available", rr.namesLocked())
	}

	return factory, nil
}

// CreateRuntime creates and initializes a runtime using the named factory
func (rr *RuntimeRegistry) CreateRuntime(name string, options runtime.Options) (runtime.LanguageRuntime, error) {
	factory, err := rr.GetFactory(name)
	if err != nil {
		return nil, err
	}

	rt, err := factory.CreateRuntime(options)
	if err != nil {
		return nil, errors.NewSystemError("RUNTIME_CREATION_FAILED", fmt.Sprintf("failed to create runtime '%s': %v", name, err)).Wrap(err)
	}
	if err := rt.Initialize(); err != nil {
		return nil, errors.NewSystemError("RUNTIME_INIT_FAILED", fmt.Sprintf("failed to initialize runtime '%s': %v", name, err)).Wrap(err)
	}
	return rt, nil
}

// ListFactories returns the sorted names of all registered factories
func (rr *RuntimeRegistry) ListFactories() []string {
	rr.mutex.RLock()
	defer rr.mutex.RUnlock()
	return rr.namesLocked()
}

func (rr *RuntimeRegistry) namesLocked() []string {
	names := make([]string, 0, len(rr.factories))
	for name := range rr.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NativeRuntimeFactory creates native runtime instances
type NativeRuntimeFactory struct{}

// NewNativeRuntimeFactory creates a new native runtime factory
func NewNativeRuntimeFactory() *NativeRuntimeFactory {
	return &NativeRuntimeFactory{}
}

// CreateRuntime creates a new native runtime instance
func (nf *NativeRuntimeFactory) CreateRuntime(options runtime.Options) (runtime.LanguageRuntime, error) {
	return native.NewNativeRuntime(options), nil
}

// GetName returns the name of the factory
func (nf *NativeRuntimeFactory) GetName() string {
	return native.Name
}

// LuaRuntimeFactory creates Lua runtime instances
type LuaRuntimeFactory struct{}

// NewLuaRuntimeFactory creates a new Lua runtime factory
func NewLuaRuntimeFactory() *LuaRuntimeFactory {
	return &LuaRuntimeFactory{}
}

// CreateRuntime creates a new Lua runtime instance
func (lf *LuaRuntimeFactory) CreateRuntime(options runtime.Options) (runtime.LanguageRuntime, error) {
	return lua.NewLuaRuntime(options), nil
}

// GetName returns the name of the factory
func (lf *LuaRuntimeFactory) GetName() string {
	return lua.Name
}
