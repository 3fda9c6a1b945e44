package main

import (
	"os"
	"path/filepath"
	"testing"

	"zpm/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "interp", cfg.Engine.Backend)
	assert.Equal(t, 64, cfg.Engine.MaxNesting)
	assert.Equal(t, "off", cfg.Logging.Level)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.json", "config"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := DefaultConfig()
			cfg.Engine.Backend = "lua"
			cfg.Engine.MaxNesting = 8
			cfg.Logging.Level = "debug"
			cfg.Output.DumpFile = "state.json"

			require.NoError(t, SaveConfig(cfg, path))
			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("repl:\n  prompt: \"> \"\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "> ", cfg.REPL.Prompt)
	assert.Equal(t, "interp", cfg.Engine.Backend)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad.yaml":     "engine: [",
		"bad.json":     "{",
		"nesting.yaml": "engine:\n  max_nesting: -1\n",
		"dump.yaml":    "output:\n  dump_format: xml\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := LoadConfig(path)
			require.Error(t, err)
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(configEnvVar, "")
	assert.Equal(t, "flag.yaml", ResolveConfigPath("flag.yaml"))
	assert.Equal(t, defaultConfigPath, ResolveConfigPath(""))

	t.Setenv(configEnvVar, "env.yaml")
	assert.Equal(t, "env.yaml", ResolveConfigPath(""))
	assert.Equal(t, "flag.yaml", ResolveConfigPath("flag.yaml"))
}

func TestConfig_NewLogger(t *testing.T) {
	cfg := DefaultConfig()
	logger, err := cfg.NewLogger(os.Stderr)
	require.NoError(t, err)
	assert.Equal(t, logging.LevelOff, logger.GetLevel())

	cfg.Engine.Verbose = true
	logger, err = cfg.NewLogger(os.Stderr)
	require.NoError(t, err)
	assert.Equal(t, logging.LevelDebug, logger.GetLevel())

	cfg = DefaultConfig()
	cfg.Logging.Level = "warning"
	cfg.Logging.File = filepath.Join(t.TempDir(), "zpm.log")
	logger, err = cfg.NewLogger(os.Stderr)
	require.NoError(t, err)
	logger.Warn("hello")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(cfg.Logging.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".zpm", "history"), expandHome("~/.zpm/history"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
