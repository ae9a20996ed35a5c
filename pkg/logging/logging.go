package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/paths"
)

// SetupLogger configures the global logger from the -v count. Output
// goes to the console and, when the state directory is writable, to
// the log file under it.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(verbosityLevel(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}}

	logFile, err := openLogFile()
	if err == nil {
		writers = append(writers, logFile)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if err != nil {
		log.Warn().Err(err).Msg("Log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
}

// verbosityLevel maps the -v count to a zerolog level: warnings by
// default, then info, debug and trace.
func verbosityLevel(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// openLogFile opens the log file for appending, creating the state
// directory if needed. The location comes from the paths package.
func openLogFile() (*os.File, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "locating log file")
	}

	logPath := p.LogFilePath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "creating log directory for %s", logPath)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "opening log file %s", logPath)
	}
	return file, nil
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogCommand records a command line about to be executed
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart records the start of a named operation and returns
// the closer that records its duration.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
