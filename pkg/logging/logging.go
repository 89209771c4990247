// Package logging configures zerolog for morph. Every morph log line carries
// a component, and lines emitted during a generation or test run also carry
// the run id, so one run can be followed through the log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/morph/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Field names shared by every morph logger
const (
	FieldComponent = "component"
	FieldRun       = "run"
	FieldCase      = "case"
	FieldTemplate  = "template"
	FieldOperation = "operation"
)

// Options configures Setup
type Options struct {
	// Verbosity is the -v count: 0 warn, 1 info, 2 debug, 3+ trace
	Verbosity int
	// Console receives human-readable output; nil means stderr
	Console io.Writer
	// LogFile overrides the log file path; empty means the morph state dir
	LogFile string
}

// Level maps a -v count to a zerolog level
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Setup installs the global logger: a console writer plus an append-only
// log file. A log file that cannot be opened is reported and skipped. The
// returned closer releases the file and is never nil.
func Setup(opts Options) io.Closer {
	zerolog.SetGlobalLevel(Level(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}}

	logPath := opts.LogFile
	if logPath == "" {
		logPath = getLogFilePath()
	}
	var closer io.Closer = io.NopCloser(nil)
	file, err := setupLogFile(logPath)
	if err == nil {
		writers = append(writers, file)
		closer = file
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if err != nil {
		log.Warn().Err(err).Str("path", logPath).Msg("Failed to create log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logPath).Msg("Logger initialized")
	return closer
}

// SetupLogger configures the global logger for a -v count, writing to
// stderr and the morph log file
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// GetLogger returns a logger tagged with a component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str(FieldComponent, name).Logger()
}

// WithRun returns a component logger tagged with a generation or test run id
func WithRun(name, runID string) zerolog.Logger {
	return log.With().Str(FieldComponent, name).Str(FieldRun, runID).Logger()
}

// WithCase narrows a run logger to one test case and its directory
func WithCase(logger zerolog.Logger, number int, dir string) zerolog.Logger {
	return logger.With().Int(FieldCase, number).Str("dir", dir).Logger()
}

// WithTemplate tags a logger with the template source being used
func WithTemplate(logger zerolog.Logger, source string) zerolog.Logger {
	return logger.With().Str(FieldTemplate, source).Logger()
}

// getLogFilePath returns the morph log file. MORPH_STATE_DIR wins, then
// XDG_STATE_HOME, read on every call so tests can redirect it.
func getLogFilePath() string {
	if dir := os.Getenv(paths.EnvStateDir); dir != "" {
		return filepath.Join(dir, paths.LogFileName)
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return paths.LogFileName
	}
	return filepath.Join(stateHome, paths.AppDirName, paths.LogFileName)
}

func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogCommand records the CLI command line at debug level
func LogCommand(cmd string, args []string) {
	log.Debug().Str("command", cmd).Strs("args", args).Msg("Executing command")
}

// LogOperationStart logs the start of a pipeline stage and returns a
// function that logs its completion with the elapsed time
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str(FieldOperation, operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str(FieldOperation, operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
