// Package config loads the calculator's settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// MaxStackSize bounds parser.stack_capacity and parser.stack_growth.
const MaxStackSize = 1 << 20

// Config represents the calculator's configuration. Every field is optional
// in the file; missing fields keep their defaults.
type Config struct {
	Prompt   string        `yaml:"prompt"`
	Format   string        `yaml:"format"`
	Echo     bool          `yaml:"echo"`
	Color    string        `yaml:"color"`     // auto, always, never
	LogLevel string        `yaml:"log_level"` // debug, info, warn, error
	History  HistoryConfig `yaml:"history"`
	Parser   ParserConfig  `yaml:"parser"`
}

// HistoryConfig configures the history log of evaluated expressions.
type HistoryConfig struct {
	// Path is the history file. Empty disables history.
	Path string `yaml:"path"`
	// Queue is the number of entries that can wait to be written.
	Queue int `yaml:"queue"`
	// Truncate empties the file when the calculator starts.
	Truncate bool `yaml:"truncate"`
}

// ParserConfig configures the parser's stacks.
type ParserConfig struct {
	StackCapacity int `yaml:"stack_capacity"`
	StackGrowth   int `yaml:"stack_growth"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Prompt:   "> ",
		Format:   "%g",
		Color:    ColorAuto,
		LogLevel: "warn",
		History: HistoryConfig{
			Path:     "log.txt",
			Queue:    64,
			Truncate: true,
		},
		Parser: ParserConfig{
			StackCapacity: 10,
			StackGrowth:   32,
		},
	}
}

// Load reads a configuration file over the defaults. A missing file is not an
// error; the result is then the default configuration. An empty path also
// selects the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	if err := cfg.decode(f); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads a configuration document over the defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

// Validate checks that the configuration's values are usable.
func (c *Config) Validate() error {
	var issues []string
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		issues = append(issues, fmt.Sprintf("color must be auto, always or never, not %q", c.Color))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		issues = append(issues, err.Error())
	}
	// A usable format prints exactly one float64 with no fmt error marks.
	if strings.Contains(fmt.Sprintf(c.Format, 1.0), "%!") {
		issues = append(issues, fmt.Sprintf("format %q must have exactly one float verb", c.Format))
	}
	if c.History.Queue < 1 {
		issues = append(issues, fmt.Sprintf("history.queue must be positive, not %d", c.History.Queue))
	}
	if c.Parser.StackCapacity < 0 || c.Parser.StackCapacity > MaxStackSize {
		issues = append(issues, fmt.Sprintf("parser.stack_capacity must be between 0 and %d, not %d", MaxStackSize, c.Parser.StackCapacity))
	}
	if c.Parser.StackGrowth < 1 || c.Parser.StackGrowth > MaxStackSize {
		issues = append(issues, fmt.Sprintf("parser.stack_growth must be between 1 and %d, not %d", MaxStackSize, c.Parser.StackGrowth))
	}
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	return "config: " + strings.Join(e.Issues, "; ")
}

// ParseLevel parses a log level name, ignoring case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
