// Package config defines meetscore configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config with defaults; Load layers file and env on top.
// - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"runtime"
)

// DefaultEvents are scored when no event list is configured.
var DefaultEvents = []string{
	"Women's 100 Freestyle (SCY)",
	"Men's 100 Freestyle (SCY)",
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// ScoreTable is the path of a YAML score table. Empty uses the built-in table.
	ScoreTable string `koanf:"score_table"`

	// Events lists the event display names to score, e.g. "Women's 100 Freestyle (SCY)".
	// Empty means DefaultEvents.
	Events []string `koanf:"events"`

	// ReferenceEvent, when set, scores every event against this description
	// (e.g. "100 Freestyle (SCY)") instead of its own.
	ReferenceEvent string `koanf:"reference_event"`

	// OutputFormat selects the result encoding: text, yaml or json.
	OutputFormat string `koanf:"output_format"`

	// Strict aborts the run on the first event that cannot be scored.
	Strict bool `koanf:"strict"`

	// Concurrency bounds how many events are scored in parallel.
	Concurrency int `koanf:"concurrency"`

	// MetricsFile is a Prometheus textfile written at exit. Empty disables it.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		OutputFormat: "text",
		Concurrency:  runtime.NumCPU(),
	}
}

// EventNames returns the configured events or DefaultEvents.
func (c *Config) EventNames() []string {
	if len(c.Events) == 0 {
		return append([]string(nil), DefaultEvents...)
	}
	return c.Events
}
