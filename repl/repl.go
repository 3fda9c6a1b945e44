// Package repl runs statements typed one at a time against a single store.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"zpm/engine"
	"zpm/errors"
	"zpm/logging"
	"zpm/runtime"
	"zpm/serialization"

	"github.com/chzyer/readline"
)

// REPLConfig contains configuration for the REPL
type REPLConfig struct {
	Runtime     runtime.LanguageRuntime // Required: an initialized runtime
	Input       io.Reader               // Defaults to os.Stdin
	Output      io.Writer               // Defaults to os.Stdout
	ErrOutput   io.Writer               // Defaults to os.Stderr
	Logger      logging.Logger
	Prompt      string // Main prompt (default: "zpm> ")
	HistoryFile string // Empty disables persistent history
	HistorySize int    // Maximum history size (default: 1000)
	ShowWelcome bool
	Version     string
}

// REPL represents the Read-Eval-Print Loop
type REPL struct {
	runtime      runtime.LanguageRuntime
	input        io.Reader
	output       io.Writer
	errOutput    io.Writer
	logger       logging.Logger
	errorHandler errors.ErrorHandler
	prompt       string
	historyFile  string
	historySize  int
	showWelcome  bool
	version      string
	running      bool
	history      []string
}

// NewREPLWithConfig creates a new REPL instance with configuration
func NewREPLWithConfig(config REPLConfig) *REPL {
	if config.Input == nil {
		config.Input = os.Stdin
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.ErrOutput == nil {
		config.ErrOutput = os.Stderr
	}
	if config.Logger == nil {
		config.Logger = logging.NewNopLogger()
	}
	if config.Prompt == "" {
		config.Prompt = "zpm> "
	}
	if config.HistorySize == 0 {
		config.HistorySize = 1000
	}

	return &REPL{
		runtime:      config.Runtime,
		input:        config.Input,
		output:       config.Output,
		errOutput:    config.ErrOutput,
		logger:       config.Logger.WithComponent("repl"),
		errorHandler: errors.NewReportingErrorHandler(config.ErrOutput),
		prompt:       config.Prompt,
		historyFile:  config.HistoryFile,
		historySize:  config.HistorySize,
		showWelcome:  config.ShowWelcome,
		version:      config.Version,
	}
}

// isInteractive checks if the input is a terminal
func (r *REPL) isInteractive() bool {
	file, ok := r.input.(*os.File)
	if !ok {
		return false
	}
	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Run starts the REPL loop and returns when input ends or :quit is entered
func (r *REPL) Run() error {
	if r.runtime == nil || !r.runtime.IsReady() {
		return errors.NewSystemError("RUNTIME_NOT_INITIALIZED", "REPL needs an initialized runtime")
	}
	r.running = true

	if r.showWelcome {
		r.printWelcome()
	}

	if r.isInteractive() {
		return r.runInteractive()
	}
	return r.runPiped()
}

// runInteractive reads lines with readline, history and completion
func (r *REPL) runInteractive() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt,
		HistoryFile:     r.historyFile,
		HistoryLimit:    r.historySize,
		InterruptPrompt: "^C",
		EOFPrompt:       ":exit",
		AutoComplete:    NewStatementCompleter(r.runtime.Variables()),
		Stdin:           io.NopCloser(r.input),
		Stdout:          r.output,
		Stderr:          r.errOutput,
	})
	if err != nil {
		return errors.NewSystemError("READLINE_INIT_FAILED", fmt.Sprintf("failed to initialize readline: %v", err))
	}
	defer func() {
		if err := rl.Close(); err != nil {
			r.logger.Warn("failed to close readline", logging.Field("error", err))
		}
	}()

	for r.running {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(input) == 0 {
					break
				}
				continue
			}
			if err == io.EOF {
				break
			}
			return errors.NewSystemError("READ_ERROR", fmt.Sprintf("read error: %v", err))
		}
		r.processLine(input)
	}
	return nil
}

// runPiped reads lines from a non-terminal input without prompting
func (r *REPL) runPiped() error {
	scanner := bufio.NewScanner(r.input)
	scanner.Buffer(make([]byte, 0, 64*1024), runtime.MaxLineLength)

	for r.running && scanner.Scan() {
		r.processLine(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return errors.NewSystemError("STDIN_READ_ERROR", fmt.Sprintf("error reading from stdin: %v", err))
	}
	return nil
}

// processLine runs a command or statement. Errors are reported and the session goes on.
func (r *REPL) processLine(input string) {
	line := engine.Trim(input)
	if line == "" {
		return
	}
	r.history = append(r.history, line)

	if strings.HasPrefix(line, ":") {
		if err := r.handleBuiltInCommand(line); err != nil {
			r.errorHandler.Handle(err)
		}
		return
	}

	if err := r.runtime.ExecuteLine(line); err != nil {
		r.logger.ErrorExecution(err)
		r.errorHandler.Handle(err)
	}
}

// handleBuiltInCommand runs a ':' command
func (r *REPL) handleBuiltInCommand(input string) error {
	parts := strings.Fields(input[1:])
	if len(parts) == 0 {
		return errors.NewSystemError("UNKNOWN_REPL_COMMAND", "empty command")
	}

	switch parts[0] {
	case "help", "h":
		r.printHelp()
	case "quit", "q", "exit", "e":
		r.running = false
	case "vars", "v":
		r.printVariables()
	case "history", "hist":
		r.printHistory()
	case "run", "r":
		if len(parts) != 2 {
			return errors.NewSystemError("INVALID_COMMAND", "usage: :run <file-path>")
		}
		return r.runFile(parts[1])
	case "load":
		if len(parts) != 2 {
			return errors.NewSystemError("INVALID_COMMAND", "usage: :load <dump-file>")
		}
		n, err := serialization.LoadStore(parts[1], "", r.runtime.Variables())
		if err != nil {
			return err
		}
		fmt.Fprintf(r.output, "loaded %d variables\n", n)
	case "save":
		if len(parts) != 2 {
			return errors.NewSystemError("INVALID_COMMAND", "usage: :save <dump-file>")
		}
		return serialization.SaveStore(parts[1], "", r.runtime.Variables())
	default:
		return errors.NewSystemError("UNKNOWN_REPL_COMMAND", fmt.Sprintf("unknown command: :%s", parts[0]))
	}
	return nil
}

// runFile executes a script file against the session store, stopping at its first error
func (r *REPL) runFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.NewFileNotFoundError(path, err)
	}
	defer file.Close()

	_, err = runtime.ExecuteScript(r.runtime, file)
	return err
}

// printWelcome displays the welcome message
func (r *REPL) printWelcome() {
	version := ""
	if r.version != "" {
		version = " " + r.version
	}
	fmt.Fprintf(r.output, "zpm%s interactive mode (%s backend)\n", version, r.runtime.GetName())
	fmt.Fprintln(r.output, "Type ':help' for available commands or ':quit' to exit")
}

// printHelp displays help information
func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Statements:")
	fmt.Fprintln(r.output, "  name = value | name += value | name -= value | name *= value")
	fmt.Fprintln(r.output, "  PRINT name")
	fmt.Fprintln(r.output, "  FOR n statement; statement ENDFOR")
	fmt.Fprintln(r.output, "Commands:")
	fmt.Fprintln(r.output, "  :help, :h           - Show this help message")
	fmt.Fprintln(r.output, "  :vars, :v           - List variables")
	fmt.Fprintln(r.output, "  :history, :hist     - Show entered lines")
	fmt.Fprintln(r.output, "  :run <file>, :r     - Execute a script file")
	fmt.Fprintln(r.output, "  :load <file>        - Merge variables from a state dump")
	fmt.Fprintln(r.output, "  :save <file>        - Write the variables to a state dump")
	fmt.Fprintln(r.output, "  :quit, :q, :exit    - Exit the REPL")
}

// printVariables lists the store as sorted name=value lines
func (r *REPL) printVariables() {
	vars := r.runtime.Variables()
	for _, name := range vars.Names() {
		value, _ := vars.Get(name)
		fmt.Fprintf(r.output, "%s=%s\n", name, value)
	}
}

// printHistory shows the lines entered so far
func (r *REPL) printHistory() {
	for i, line := range r.history {
		fmt.Fprintf(r.output, "%4d  %s\n", i+1, line)
	}
}

// History returns the lines entered so far
func (r *REPL) History() []string {
	return r.history
}
