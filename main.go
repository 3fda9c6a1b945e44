package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"zpm/errors"
	"zpm/factory"
	"zpm/logging"
	"zpm/repl"
	"zpm/runtime"
	"zpm/serialization"
	"zpm/store"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole program; it returns the process exit status
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("zpm", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		configPath  = flags.String("config", "", "Path to configuration file (default $ZPM_CONFIG or ~/.zpm/config.yaml)")
		backend     = flags.String("backend", "", "Execution backend (interp, lua)")
		dumpFile    = flags.String("dump", "", "Write the final variable store to this file")
		dumpFormat  = flags.String("dump-format", "", "Dump format (json, yaml); default from the file extension")
		loadFile    = flags.String("load", "", "Seed the variable store from a dump file")
		writeConfig = flags.String("write-config", "", "Write the effective configuration to this file and exit")
		interactive = flags.Bool("i", false, "Start an interactive session")
		verbose     = flags.Bool("verbose", false, "Enable debug logging")
		showVersion = flags.Bool("version", false, "Show version information")
		showHelp    = flags.Bool("help", false, "Show help information")
	)
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Fprintf(stdout, "zpm v%s\n", version)
		return 0
	}
	if *showHelp {
		printHelp(stdout, flags)
		return 0
	}

	cfg, err := LoadConfig(ResolveConfigPath(*configPath))
	if err != nil {
		errors.Report(stderr, errors.NewInvocationError(fmt.Sprintf("Error loading configuration: %v", err)))
		return 1
	}
	applyFlags(cfg, *backend, *dumpFile, *dumpFormat, *verbose)

	if *writeConfig != "" {
		if err := SaveConfig(cfg, *writeConfig); err != nil {
			errors.Report(stderr, errors.NewInvocationError(fmt.Sprintf("Error saving configuration: %v", err)))
			return 1
		}
		return 0
	}

	positional := flags.Args()
	if (*interactive && len(positional) != 0) || (!*interactive && len(positional) != 1) {
		return 1
	}

	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		errors.Report(stderr, errors.NewInvocationError(fmt.Sprintf("Error opening log file: %v", err)))
		return 1
	}
	defer logger.Close()

	vars := store.New()
	if *loadFile != "" {
		path := expandHome(*loadFile)
		n, err := serialization.LoadStore(path, "", vars)
		if err != nil {
			errors.Report(stderr, err)
			return 1
		}
		logger.Info("state loaded",
			logging.StringField("path", path),
			logging.IntField("variables", n))
	}

	if *interactive {
		return runInteractive(cfg, logger, vars, stdin, stdout, stderr)
	}
	return runScript(cfg, logger, vars, positional[0], stdout, stderr)
}

// applyFlags lets command line flags override the loaded configuration
func applyFlags(cfg *Config, backend, dumpFile, dumpFormat string, verbose bool) {
	if backend != "" {
		cfg.Engine.Backend = backend
	}
	if dumpFile != "" {
		cfg.Output.DumpFile = dumpFile
	}
	if dumpFormat != "" {
		cfg.Output.DumpFormat = dumpFormat
	}
	if verbose {
		cfg.Engine.Verbose = true
	}
}

// newRuntime creates the configured backend over vars, printing to out
func newRuntime(cfg *Config, logger logging.Logger, vars *store.Store, out io.Writer) (runtime.LanguageRuntime, error) {
	return factory.DefaultRuntimeRegistry().CreateRuntime(cfg.Engine.Backend, runtime.Options{
		Store:      vars,
		Output:     out,
		Logger:     logger,
		MaxNesting: cfg.Engine.MaxNesting,
	})
}

// runScript executes one file. The dump is written even after a fatal
// error because the store is never rolled back.
func runScript(cfg *Config, logger logging.Logger, vars *store.Store, path string, stdout, stderr io.Writer) int {
	out := bufio.NewWriter(stdout)

	rt, err := newRuntime(cfg, logger, vars, out)
	if err != nil {
		errors.Report(stderr, err)
		return 1
	}
	defer rt.Cleanup()

	runErr := BatchMode(rt, path, logger)
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = errors.NewSystemError("OUTPUT_ERROR", fmt.Sprintf("failed to write output: %v", err))
	}
	errors.NewFatalErrorHandler(stderr).Handle(runErr)

	if err := writeDump(cfg, rt, logger); err != nil {
		errors.Report(stderr, err)
		return 1
	}
	return errors.ExitCode(runErr)
}

// runInteractive starts the REPL on one persistent store
func runInteractive(cfg *Config, logger logging.Logger, vars *store.Store, stdin io.Reader, stdout, stderr io.Writer) int {
	rt, err := newRuntime(cfg, logger, vars, stdout)
	if err != nil {
		errors.Report(stderr, err)
		return 1
	}
	defer rt.Cleanup()

	session := repl.NewREPLWithConfig(repl.REPLConfig{
		Runtime:     rt,
		Input:       stdin,
		Output:      stdout,
		ErrOutput:   stderr,
		Logger:      logger,
		Prompt:      cfg.REPL.Prompt,
		HistoryFile: expandHome(cfg.REPL.HistoryFile),
		HistorySize: cfg.REPL.HistorySize,
		ShowWelcome: cfg.REPL.ShowWelcome,
		Version:     version,
	})
	if err := session.Run(); err != nil {
		errors.Report(stderr, err)
		return 1
	}

	if err := writeDump(cfg, rt, logger); err != nil {
		errors.Report(stderr, err)
		return 1
	}
	return 0
}

// writeDump saves the store when a dump file is configured
func writeDump(cfg *Config, rt runtime.LanguageRuntime, logger logging.Logger) error {
	if cfg.Output.DumpFile == "" {
		return nil
	}

	path := expandHome(cfg.Output.DumpFile)
	vars := rt.Variables()
	if err := serialization.SaveStore(path, cfg.Output.DumpFormat, vars); err != nil {
		return err
	}
	logger.Info("state dumped",
		logging.StringField("path", path),
		logging.IntField("variables", vars.Len()))
	return nil
}

// printHelp displays usage information
func printHelp(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintf(w, "zpm v%s - Z+- interpreter\n\n", version)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  zpm [flags] <file>    Execute a script")
	fmt.Fprintln(w, "  zpm -i [flags]        Start an interactive session")
	fmt.Fprintln(w, "  zpm -write-config <path> [flags]")
	fmt.Fprintln(w, "                        Save the effective configuration")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	flags.SetOutput(w)
	flags.PrintDefaults()
}
