// Package logging configures the logrus logger shared by the randomizer.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "RANDOMIZER_LOG_LEVEL"

// DefaultLevel keeps routine pool activity out of CLI output.
const DefaultLevel = logrus.WarnLevel

// ResolveLevel picks the log level: flag > RANDOMIZER_LOG_LEVEL env >
// configured value > DefaultLevel. Unparseable values fall through to the
// next source.
func ResolveLevel(flag, configured string) logrus.Level {
	for _, candidate := range []string{flag, os.Getenv(EnvLogLevel), configured} {
		if candidate == "" {
			continue
		}
		if level, err := logrus.ParseLevel(candidate); err == nil {
			return level
		}
	}
	return DefaultLevel
}

// New creates a logger writing text records with full timestamps to w.
func New(level logrus.Level, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(w)
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}
