package serialization

import (
	goerrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"zpm/errors"
	"zpm/store"
)

// FormatForPath picks a dump format from a file extension; format wins when set
func FormatForPath(path, format string) string {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// WriteDumpFile writes the variables to path using the default registry
func WriteDumpFile(path, format string, vars map[string]string) error {
	data, err := NewDefaultSerializerRegistry().Dump(vars, FormatForPath(path, format))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDumpFile reads variables back from a file written by WriteDumpFile
func ReadDumpFile(path, format string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewDefaultSerializerRegistry().Load(data, FormatForPath(path, format))
}

// SaveStore writes a snapshot of vars to path
func SaveStore(path, format string, vars *store.Store) error {
	if err := WriteDumpFile(path, format, vars.Snapshot()); err != nil {
		return errors.NewSystemError("DUMP_FAILED", fmt.Sprintf("failed to write state dump: %v", err)).Wrap(err)
	}
	return nil
}

// LoadStore sets every variable held in the dump at path on vars, in name
// order, and returns how many it set. Variables missing from the dump keep
// their values.
func LoadStore(path, format string, vars *store.Store) (int, error) {
	loaded, err := ReadDumpFile(path, format)
	if err != nil {
		if goerrors.Is(err, fs.ErrNotExist) {
			return 0, errors.NewFileNotFoundError(path, err)
		}
		return 0, errors.NewSystemError("LOAD_FAILED", fmt.Sprintf("failed to load state dump: %v", err)).Wrap(err)
	}

	names := make([]string, 0, len(loaded))
	for name := range loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		vars.Set(name, loaded[name])
	}
	return len(names), nil
}
