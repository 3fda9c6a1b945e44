package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// StateSerializer defines the interface for serializing and deserializing the variable store
type StateSerializer interface {
	// Serialize converts a versioned state to bytes
	Serialize(state *VersionedState) ([]byte, error)

	// Deserialize converts bytes back to a versioned state
	Deserialize(data []byte) (*VersionedState, error)

	// GetName returns the name of the serializer
	GetName() string

	// GetVersion returns the version of the serializer
	GetVersion() string

	// SupportsVersion checks if the serializer supports a specific version
	SupportsVersion(version string) bool
}

// VersionedState represents the store snapshot with version information
type VersionedState struct {
	Data    map[string]string `json:"data" yaml:"data"`
	Version string            `json:"version" yaml:"version"`
	Format  string            `json:"format" yaml:"format"`
}

// SerializationError represents an error that occurred during serialization
type SerializationError struct {
	Operation string
	Message   string
	Format    string
	Context   map[string]interface{}
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("[%s serialization error] %s", e.Format, e.Message)
}

// NewSerializationError creates a new serialization error
func NewSerializationError(format, operation, message string) *SerializationError {
	return &SerializationError{
		Format:    format,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *SerializationError) WithContext(key string, value interface{}) *SerializationError {
	e.Context[key] = value
	return e
}

// supportsMajor accepts any version with the same major number as current
func supportsMajor(current, version string) bool {
	major, _, _ := strings.Cut(current, ".")
	return version == current || strings.HasPrefix(version, major+".")
}

// SerializerRegistry manages multiple serializers
type SerializerRegistry struct {
	serializers       map[string]StateSerializer
	defaultSerializer string
}

// NewSerializerRegistry creates a new serializer registry
func NewSerializerRegistry() *SerializerRegistry {
	return &SerializerRegistry{
		serializers:       make(map[string]StateSerializer),
		defaultSerializer: "json",
	}
}

// NewDefaultSerializerRegistry creates a registry with the JSON and YAML serializers
func NewDefaultSerializerRegistry() *SerializerRegistry {
	registry := NewSerializerRegistry()
	_ = registry.RegisterSerializer(NewJSONSerializer())
	_ = registry.RegisterSerializer(NewYAMLSerializer())
	return registry
}

// RegisterSerializer registers a serializer
func (sr *SerializerRegistry) RegisterSerializer(serializer StateSerializer) error {
	name := serializer.GetName()
	if _, exists := sr.serializers[name]; exists {
		return fmt.Errorf("serializer '%s' is already registered", name)
	}

	sr.serializers[name] = serializer
	return nil
}

// GetSerializer returns a serializer by name. An empty name selects the default.
func (sr *SerializerRegistry) GetSerializer(name string) (StateSerializer, error) {
	if name == "" {
		name = sr.defaultSerializer
	}
	serializer, exists := sr.serializers[name]
	if !exists {
		return nil, fmt.Errorf("serializer '%s' not found", name)
	}
	return serializer, nil
}

// ListSerializers returns the sorted names of all registered serializers
func (sr *SerializerRegistry) ListSerializers() []string {
	names := make([]string, 0, len(sr.serializers))
	for name := range sr.serializers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsFormatSupported checks if a format is supported
func (sr *SerializerRegistry) IsFormatSupported(format string) bool {
	_, exists := sr.serializers[format]
	return exists
}

// Dump serializes a store snapshot in the given format
func (sr *SerializerRegistry) Dump(vars map[string]string, format string) ([]byte, error) {
	serializer, err := sr.GetSerializer(format)
	if err != nil {
		return nil, err
	}

	if vars == nil {
		vars = map[string]string{}
	}
	return serializer.Serialize(&VersionedState{
		Data:    vars,
		Version: serializer.GetVersion(),
		Format:  serializer.GetName(),
	})
}

// Load reads a dump written by Dump and returns the variables it holds
func (sr *SerializerRegistry) Load(data []byte, format string) (map[string]string, error) {
	serializer, err := sr.GetSerializer(format)
	if err != nil {
		return nil, err
	}

	state, err := serializer.Deserialize(data)
	if err != nil {
		return nil, err
	}
	if !serializer.SupportsVersion(state.Version) {
		return nil, NewSerializationError(serializer.GetName(), "deserialize",
			fmt.Sprintf("version '%s' not supported", state.Version))
	}
	if state.Data == nil {
		state.Data = map[string]string{}
	}
	return state.Data, nil
}
