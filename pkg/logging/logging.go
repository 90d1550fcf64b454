// Package logging sets up zerolog for archup. Records go to stderr and
// to an append-only file in the state directory, which is what users
// read after an unattended provisioning run.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/archup/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileName is the file written inside the state directory.
const LogFileName = "archup.log"

// -v count to level; anything past the end is trace.
var levels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
	zerolog.TraceLevel,
}

// Level maps the -v count to a zerolog level.
func Level(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		return levels[len(levels)-1]
	}
	return levels[verbosity]
}

// SetupLogger installs the global logger for the given -v count.
func SetupLogger(verbosity int) {
	level := Level(verbosity)
	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}}

	path := logFilePath()
	file, fileErr := openLogFile(path)
	if fileErr == nil {
		writers = append(writers, file)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")
}

// GetLogger returns the global logger tagged with a component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// logFilePath puts the log next to the lock and last-run record.
func logFilePath() string {
	return filepath.Join(paths.StateDir(), LogFileName)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// LogCommand records an external command before it runs.
func LogCommand(logger zerolog.Logger, name string, args []string, dir string) {
	event := logger.Debug().Str("command", name).Strs("args", args)
	if dir != "" {
		event = event.Str("dir", dir)
	}
	event.Msg("Executing command")
}

// LogOperationStart logs the start of a step-sized operation. Call the
// returned function when it is over.
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
