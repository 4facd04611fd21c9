// Package config provides centralized configuration management for statsbot.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/JonMunkholm/StatsBot/internal/tablefmt"
)

// Config holds all application configuration.
// All settings can be configured via environment variables; CLI flags
// override them.
type Config struct {
	League  LeagueConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// LeagueConfig selects the league data a run folds.
type LeagueConfig struct {
	// Name is the league to compute statistics for
	Name string `env:"STATS_LEAGUE"`

	// DataFile is the JSON export of the league data
	// Supports both STATS_DATA_FILE and DATA_FILE env vars
	DataFile string `env:"STATS_DATA_FILE" envAlt:"DATA_FILE"`

	// SkipSeasons drops the first seasons of the league (default: 0)
	SkipSeasons int `env:"STATS_SKIP_SEASONS" default:"0"`

	// ImportFile is a legacy statistics table seeding the totals
	ImportFile string `env:"STATS_IMPORT_FILE"`

	// KeepImportMemberIDs keeps member ids of imported rows (default: false)
	KeepImportMemberIDs bool `env:"STATS_KEEP_IMPORT_MEMBER_IDS" default:"false"`

	// RunTimeout is the maximum duration of a run (default: 10m)
	RunTimeout time.Duration `env:"STATS_RUN_TIMEOUT" default:"10m"`
}

// OutputConfig holds the layout and location of the written table.
type OutputConfig struct {
	// Folder is where the table is written (default: .)
	Folder string `env:"STATS_OUTPUT_FOLDER" default:"."`

	// File is the table file name (default: AllTimeStats_<league>.csv)
	File string `env:"STATS_OUTPUT_FILE"`

	// Delimiter separates the fields of a line (default: ;)
	Delimiter string `env:"STATS_DELIMITER" default:";"`

	// DecimalPlaces of fixed-point columns (default: 2)
	DecimalPlaces int `env:"STATS_DECIMAL_PLACES" default:"2"`

	// DateLayout is the Go time layout of date columns (default: MM.dd.yyyy)
	DateLayout string `env:"STATS_DATE_LAYOUT" default:"01.02.2006"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Path returns the output file for league.
func (c *OutputConfig) Path(league string) string {
	name := c.File
	if name == "" {
		name = "AllTimeStats_" + league + ".csv"
	}
	return filepath.Join(c.Folder, name)
}

// TableOptions returns the table layout described by c. The delimiter must
// have been validated.
func (c *OutputConfig) TableOptions() tablefmt.Options {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return tablefmt.Options{
		Delimiter: r,
		Format: tablefmt.Format{
			DecimalPlaces: int32(c.DecimalPlaces),
			DateLayout:    c.DateLayout,
		},
	}
}
