// Package logging sets up the application loggers: structured JSON for
// machine consumption and human-readable text on stderr.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var structuredLogger *slog.Logger
var humanReadableLogger *slog.Logger

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

// Add trace and fatal level names.
var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

// FileConfig controls the optional rotating log file sink.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

func replaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		levelLabel, exists := levelNames[level]
		if !exists {
			levelLabel = level.String()
		}
		a.Value = slog.StringValue(levelLabel)
	}
	return a
}

// Init initializes the logging system. Structured JSON goes to stdout,
// and to a rotating file when configured; human-readable text goes to
// stderr. The structured logger becomes the slog default.
func Init(level slog.Level, file FileConfig) {
	var structuredOut io.Writer = os.Stdout
	if file.Enabled {
		rotating := &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
		}
		structuredOut = io.MultiWriter(os.Stdout, rotating)
	}

	structuredHandler := slog.NewJSONHandler(structuredOut, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})
	structuredLogger = slog.New(structuredHandler)

	humanReadableHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})
	humanReadableLogger = slog.New(humanReadableHandler)

	slog.SetDefault(structuredLogger)
}

// Structured returns the structured JSON logger.
func Structured() *slog.Logger {
	if structuredLogger == nil {
		Init(slog.LevelInfo, FileConfig{})
	}
	return structuredLogger
}

// Human returns the human-readable logger.
func Human() *slog.Logger {
	if humanReadableLogger == nil {
		Init(slog.LevelInfo, FileConfig{})
	}
	return humanReadableLogger
}

// ForService returns a structured logger tagged with the service name.
func ForService(service string) *slog.Logger {
	return Structured().With("service", service)
}
