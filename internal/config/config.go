// Package config loads the tool's configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ukaji3/willdo-go/internal/logger"
	"github.com/ukaji3/willdo-go/pkg/willdo"
	"github.com/ukaji3/willdo-go/pkg/willdo/aggregate"
	"github.com/ukaji3/willdo-go/pkg/willdo/parser"
	"github.com/ukaji3/willdo-go/pkg/willdo/writer"
)

// ErrMissingKey indicates required settings absent from the configuration.
var ErrMissingKey = errors.New("missing configuration key")

// requiredKeys must be present in every configuration file.
var requiredKeys = []string{
	"analysis.start_row",
	"analysis.end_row",
	"analysis.daily_task_start_row",
	"analysis.daily_task_end_row",
	"analysis.communication_start_row",
	"analysis.communication_end_row",
	"paths.input_file_path",
	"paths.template_path",
	"paths.output_dir",
}

type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
}

type AnalysisConfig struct {
	StartRow              int `mapstructure:"start_row"`
	EndRow                int `mapstructure:"end_row"`
	DailyTaskStartRow     int `mapstructure:"daily_task_start_row"`
	DailyTaskEndRow       int `mapstructure:"daily_task_end_row"`
	CommunicationStartRow int `mapstructure:"communication_start_row"`
	CommunicationEndRow   int `mapstructure:"communication_end_row"`
}

type PathsConfig struct {
	InputFilePath string `mapstructure:"input_file_path"`
	TemplatePath  string `mapstructure:"template_path"`
	OutputDir     string `mapstructure:"output_dir"`
	CSVDir        string `mapstructure:"csv_dir"` // Optional CSV summaries
}

type LayoutConfig struct {
	DateCell      string `mapstructure:"date_cell"`
	ContentColumn string `mapstructure:"content_column"`
	TimeColumn    string `mapstructure:"time_column"`
	IndexSheet    string `mapstructure:"index_sheet"`
}

type ReportConfig struct {
	Prefix      string `mapstructure:"prefix"`
	ClerkMarker string `mapstructure:"clerk_marker"`
	HeaderRows  int    `mapstructure:"header_rows"` // Template rows above the data
}

type LogConfig struct {
	Level        string `mapstructure:"level"`         // "debug", "info", "warn", "error"
	File         string `mapstructure:"file"`          // Empty logs to stderr only
	RotationTime string `mapstructure:"rotation_time"` // e.g. "24h"
	MaxSize      int    `mapstructure:"max_size"`      // Megabytes before rotation
	MaxBackups   int    `mapstructure:"max_backups"`   // Rotated files kept
	MaxAge       int    `mapstructure:"max_age"`       // Days rotated files are kept
	Compress     bool   `mapstructure:"compress"`      // Gzip rotated files
}

// Load reads the configuration file at configPath. With an empty path,
// config.yaml is searched next to the executable and in the working
// directory. Settings may be overridden by WILLDO_* environment variables,
// e.g. WILLDO_PATHS_OUTPUT_DIR.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		if execPath, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(execPath))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WILLDO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	layout := parser.DefaultLayout()
	v.SetDefault("layout.date_cell", layout.DateCell)
	v.SetDefault("layout.content_column", layout.ContentColumn)
	v.SetDefault("layout.time_column", layout.TimeColumn)
	v.SetDefault("layout.index_sheet", layout.IndexSheet)
	v.SetDefault("report.prefix", writer.DefaultPrefix)
	v.SetDefault("report.clerk_marker", aggregate.DefaultClerkMarker)
	v.SetDefault("report.header_rows", writer.DefaultHeaderRows)
	v.SetDefault("paths.csv_dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.rotation_time", "24h")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, strings.Join(missing, ", "))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Options().Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Options converts the configuration into analysis options.
func (c *Config) Options() willdo.Options {
	return willdo.Options{
		Ranges: parser.RowRanges{
			Tasks:          parser.RowRange{Start: c.Analysis.StartRow, End: c.Analysis.EndRow},
			DailyTasks:     parser.RowRange{Start: c.Analysis.DailyTaskStartRow, End: c.Analysis.DailyTaskEndRow},
			Communications: parser.RowRange{Start: c.Analysis.CommunicationStartRow, End: c.Analysis.CommunicationEndRow},
		},
		Layout: parser.Layout{
			DateCell:      c.Layout.DateCell,
			ContentColumn: c.Layout.ContentColumn,
			TimeColumn:    c.Layout.TimeColumn,
			IndexSheet:    c.Layout.IndexSheet,
		},
		InputPath:    c.Paths.InputFilePath,
		TemplatePath: c.Paths.TemplatePath,
		OutputDir:    c.Paths.OutputDir,
		CSVDir:       c.Paths.CSVDir,
		ReportPrefix: c.Report.Prefix,
		HeaderRows:   c.Report.HeaderRows,
		ClerkMarker:  c.Report.ClerkMarker,
	}
}

// LoggerConfig converts the log section for the logger package.
func (c *Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:        c.Log.Level,
		FilePath:     c.Log.File,
		RotationTime: c.Log.RotationTime,
		MaxSize:      c.Log.MaxSize,
		MaxBackups:   c.Log.MaxBackups,
		MaxAge:       c.Log.MaxAge,
		Compress:     c.Log.Compress,
	}
}
