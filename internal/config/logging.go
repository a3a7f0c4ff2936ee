package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level. Unknown names are Info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// NewLogger builds a console-format logger at the configured level. Colour
// is disabled when writing to a file.
func NewLogger(out io.Writer, level string, noColor bool) zerolog.Logger {
	return newLogger(consoleWriter(out, noColor), level)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogger builds the process logger from settings. Output goes to
// console (coloured) and, when LogFile is set, also to that file without
// colour. A nil console with no LogFile yields a disabled logger. The
// returned Closer releases the log file.
func SetupLogger(s Settings, console io.Writer) (zerolog.Logger, io.Closer, error) {
	if s.LogFile == "" {
		if console == nil {
			return zerolog.Nop(), nopCloser{}, nil
		}
		return NewLogger(console, s.LogLevel, false), nopCloser{}, nil
	}

	file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("error opening log file: %w", err)
	}
	if console == nil {
		return newLogger(consoleWriter(file, true), s.LogLevel), file, nil
	}
	mlw := zerolog.MultiLevelWriter(
		consoleWriter(console, false),
		consoleWriter(file, true),
	)
	return newLogger(mlw, s.LogLevel), file, nil
}
