package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// FromEnv reads configuration from environment variables without validating
// it, so that command line flags can be applied before Validate.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// loadStruct fills the tagged fields of v, recursing into nested sections.
// A field reads its `env` variable, then `envAlt`, then its `default`.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" || !fieldVal.CanSet() {
			continue
		}

		value := lookupEnv(envName, field.Tag.Get("envAlt"))
		if value == "" {
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

func lookupEnv(name, alt string) string {
	if value := os.Getenv(name); value != "" || alt == "" {
		return value
	}
	return os.Getenv(alt)
}

// setField parses value into field. Durations use time.ParseDuration.
func setField(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Type())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// League validation
	if c.League.DataFile == "" {
		errs = append(errs, "STATS_DATA_FILE is required")
	}
	if c.League.SkipSeasons < 0 {
		errs = append(errs, "STATS_SKIP_SEASONS must be non-negative")
	}
	if c.League.RunTimeout <= 0 {
		errs = append(errs, "STATS_RUN_TIMEOUT must be positive")
	}

	// Output validation
	if utf8.RuneCountInString(c.Output.Delimiter) != 1 {
		errs = append(errs, fmt.Sprintf("STATS_DELIMITER (%q) must be a single character", c.Output.Delimiter))
	} else if r, _ := utf8.DecodeRuneInString(c.Output.Delimiter); r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		errs = append(errs, fmt.Sprintf("STATS_DELIMITER (%q) cannot be used as a delimiter", c.Output.Delimiter))
	}
	if c.Output.DecimalPlaces < 0 || c.Output.DecimalPlaces > 10 {
		errs = append(errs, fmt.Sprintf("STATS_DECIMAL_PLACES (%d) must be 0-10", c.Output.DecimalPlaces))
	}
	if c.Output.DateLayout == "" {
		errs = append(errs, "STATS_DATE_LAYOUT must not be empty")
	}
	if c.Output.Folder == "" {
		errs = append(errs, "STATS_OUTPUT_FOLDER must not be empty")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("League: {Name: %q, DataFile: %q, SkipSeasons: %d, ImportFile: %q}, ",
		c.League.Name, c.League.DataFile, c.League.SkipSeasons, c.League.ImportFile))
	b.WriteString(fmt.Sprintf("Output: {Folder: %q, File: %q, Delimiter: %q, DecimalPlaces: %d}, ",
		c.Output.Folder, c.Output.File, c.Output.Delimiter, c.Output.DecimalPlaces))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
