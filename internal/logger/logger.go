// Package logger builds the application's logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/DeRuina/timberjack"
	"github.com/sirupsen/logrus"
)

// LogConfig holds configuration for logging
type LogConfig struct {
	Level        string // "debug", "info", "warn", "error"
	FilePath     string // Path to log file; empty disables file output
	RotationTime string // Time-based rotation interval (e.g., "1h", "24h")
	MaxSize      int    // Maximum size in megabytes before rotation
	MaxBackups   int    // Maximum number of old log files to retain
	MaxAge       int    // Maximum number of days to retain old log files
	Compress     bool   // Whether to compress rotated log files
}

// New creates a logger writing to console and, when FilePath is set, to a
// rotating log file. The returned close function releases the file.
func New(config LogConfig, console io.Writer) (*logrus.Logger, func() error, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{console}
	closer := func() error { return nil }

	if config.FilePath != "" {
		dir := filepath.Dir(config.FilePath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, err
			}
		}

		rotation := 24 * time.Hour
		if config.RotationTime != "" {
			rotation, err = time.ParseDuration(config.RotationTime)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid rotation_time: %w", err)
			}
		}

		compression := ""
		if config.Compress {
			compression = "gzip"
		}

		fileWriter := &timberjack.Logger{
			Filename:         config.FilePath,
			MaxSize:          orDefault(config.MaxSize, 10),
			MaxBackups:       orDefault(config.MaxBackups, 3),
			MaxAge:           orDefault(config.MaxAge, 28),
			RotationInterval: rotation,
			Compression:      compression,
			LocalTime:        true,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter.Close
	}

	log.SetOutput(io.MultiWriter(writers...))
	return log, closer, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
