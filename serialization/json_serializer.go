package serialization

import (
	"encoding/json"
)

// JSONSerializer implements StateSerializer for JSON format
type JSONSerializer struct {
	version string
}

// NewJSONSerializer creates a new JSON serializer
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{
		version: "1.0.0",
	}
}

// Serialize converts the state to indented JSON
func (js *JSONSerializer) Serialize(state *VersionedState) ([]byte, error) {
	if state == nil {
		return nil, NewSerializationError("json", "serialize", "state is nil")
	}

	jsonData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, NewSerializationError("json", "serialize", err.Error())
	}

	return append(jsonData, '\n'), nil
}

// Deserialize converts JSON bytes back to a state
func (js *JSONSerializer) Deserialize(data []byte) (*VersionedState, error) {
	if len(data) == 0 {
		return nil, NewSerializationError("json", "deserialize", "data is empty")
	}

	var state VersionedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, NewSerializationError("json", "deserialize", err.Error())
	}

	return &state, nil
}

// GetName returns the name of the serializer
func (js *JSONSerializer) GetName() string {
	return "json"
}

// GetVersion returns the version of the serializer
func (js *JSONSerializer) GetVersion() string {
	return js.version
}

// SupportsVersion checks if the serializer supports a specific version
func (js *JSONSerializer) SupportsVersion(version string) bool {
	return supportsMajor(js.version, version)
}
