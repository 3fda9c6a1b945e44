package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"zpm/engine"
	"zpm/logging"

	"gopkg.in/yaml.v3"
)

// configEnvVar names the environment variable consulted when -config is not given
const configEnvVar = "ZPM_CONFIG"

// defaultConfigPath is used when neither -config nor ZPM_CONFIG is set
const defaultConfigPath = "~/.zpm/config.yaml"

// Config represents the application configuration
type Config struct {
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	REPL    REPLConfig    `json:"repl" yaml:"repl"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Output  OutputConfig  `json:"output" yaml:"output"`
}

// EngineConfig contains execution engine configuration
type EngineConfig struct {
	Backend    string `json:"backend" yaml:"backend"`
	Verbose    bool   `json:"verbose" yaml:"verbose"`
	MaxNesting int    `json:"max_nesting" yaml:"max_nesting"`
}

// REPLConfig contains REPL configuration
type REPLConfig struct {
	Prompt      string `json:"prompt" yaml:"prompt"`
	HistorySize int    `json:"history_size" yaml:"history_size"`
	HistoryFile string `json:"history_file" yaml:"history_file"`
	ShowWelcome bool   `json:"show_welcome" yaml:"show_welcome"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

// OutputConfig controls the state dump written after a run
type OutputConfig struct {
	DumpFile   string `json:"dump_file,omitempty" yaml:"dump_file,omitempty"`
	DumpFormat string `json:"dump_format,omitempty" yaml:"dump_format,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Backend:    "interp",
			MaxNesting: engine.DefaultMaxNesting,
		},
		REPL: REPLConfig{
			Prompt:      "zpm> ",
			HistorySize: 1000,
			HistoryFile: "~/.zpm/history",
			ShowWelcome: true,
		},
		Logging: LoggingConfig{
			Level:  "off",
			Format: "text",
		},
	}
}

// ResolveConfigPath picks the configuration file: the flag value, then
// $ZPM_CONFIG, then the default path.
func ResolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv(configEnvVar); env != "" {
		return env
	}
	return defaultConfigPath
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	path = expandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %v", err)
		}
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %v", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	path = expandHome(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON config: %v", err)
		}
	default:
		data, err = yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML config: %v", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}

// Validate rejects values no component can run with
func (c *Config) Validate() error {
	if c.Engine.MaxNesting < 0 {
		return fmt.Errorf("engine.max_nesting must not be negative, got %d", c.Engine.MaxNesting)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	switch c.Output.DumpFormat {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("unknown output.dump_format %q", c.Output.DumpFormat)
	}
	return nil
}

// NewLogger builds the logger described by the logging section. Verbose
// mode lowers the level to debug.
func (c *Config) NewLogger(stderr io.Writer) (*logging.DefaultLogger, error) {
	level := logging.ParseLevel(c.Logging.Level)
	if c.Engine.Verbose && level > logging.LevelDebug {
		level = logging.LevelDebug
	}
	if level == logging.LevelOff {
		return logging.NewNopLogger(), nil
	}

	var writer logging.Writer
	if c.Logging.File != "" {
		fileWriter, err := logging.NewFileWriter(expandHome(c.Logging.File))
		if err != nil {
			return nil, err
		}
		writer = fileWriter
	} else {
		writer = logging.NewConsoleWriterWithFile(stderr)
	}

	return logging.NewDefaultLoggerWithConfig(logging.LoggerConfig{
		Level:      level,
		Formatters: []logging.Formatter{logging.NewFormatter(c.Logging.Format)},
		Writers:    []logging.Writer{writer},
	}), nil
}

// expandHome expands ~ to the user's home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
