package serialization

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// YAMLSerializer implements StateSerializer for YAML format
type YAMLSerializer struct {
	version string
}

// NewYAMLSerializer creates a new YAML serializer
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{
		version: "1.0.0",
	}
}

// Serialize converts the state to YAML
func (ys *YAMLSerializer) Serialize(state *VersionedState) ([]byte, error) {
	if state == nil {
		return nil, NewSerializationError("yaml", "serialize", "state is nil")
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(state); err != nil {
		return nil, NewSerializationError("yaml", "serialize", err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, NewSerializationError("yaml", "serialize", err.Error())
	}

	return buf.Bytes(), nil
}

// Deserialize converts YAML bytes back to a state
func (ys *YAMLSerializer) Deserialize(data []byte) (*VersionedState, error) {
	if len(data) == 0 {
		return nil, NewSerializationError("yaml", "deserialize", "data is empty")
	}

	var state VersionedState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, NewSerializationError("yaml", "deserialize", err.Error())
	}

	return &state, nil
}

// GetName returns the name of the serializer
func (ys *YAMLSerializer) GetName() string {
	return "yaml"
}

// GetVersion returns the version of the serializer
func (ys *YAMLSerializer) GetVersion() string {
	return ys.version
}

// SupportsVersion checks if the serializer supports a specific version
func (ys *YAMLSerializer) SupportsVersion(version string) bool {
	return supportsMajor(ys.version, version)
}
