// Package config provides configuration management for carfilter.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sivchari/carfilter/internal/car"
	"github.com/sivchari/carfilter/internal/filter"
)

// ErrInvalidConfig wraps every semantic validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultFile is the file written by "config init".
const DefaultFile = ".carfilter.yaml"

// Config represents the configuration for carfilter.
type Config struct {
	// General settings
	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty"`

	Generator GeneratorConfig `yaml:"generator,omitempty" json:"generator,omitempty"`
	Filter    FilterConfig    `yaml:"filter,omitempty" json:"filter,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty" json:"output,omitempty"`
	Log       LogConfig       `yaml:"log,omitempty" json:"log,omitempty"`
}

// GeneratorConfig contains random car generation settings.
type GeneratorConfig struct {
	// Count is a pointer so an explicit zero survives default back-filling.
	Count         *int     `yaml:"count,omitempty" json:"count,omitempty"`
	Seed          uint64   `yaml:"seed,omitempty" json:"seed,omitempty"`
	Manufacturers []string `yaml:"manufacturers,omitempty" json:"manufacturers,omitempty"`
	MaxPrice      int      `yaml:"maxPrice,omitempty" json:"maxPrice,omitempty"`
	MinYear       int      `yaml:"minYear,omitempty" json:"minYear,omitempty"`
	MaxYear       int      `yaml:"maxYear,omitempty" json:"maxYear,omitempty"`
}

// FilterConfig contains the default criterion and delivery mode.
type FilterConfig struct {
	Mode      string `yaml:"mode,omitempty" json:"mode,omitempty"`
	Criterion string `yaml:"criterion,omitempty" json:"criterion,omitempty"`
	// Year is only read by the year based criteria.
	Year *int `yaml:"year,omitempty" json:"year,omitempty"`
}

// OutputConfig contains output-related configuration.
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Default returns a config with default values.
func Default() *Config {
	manufacturers := make([]string, 0, len(car.Manufacturers()))
	for _, m := range car.Manufacturers() {
		manufacturers = append(manufacturers, string(m))
	}

	count := 10

	return &Config{
		Generator: GeneratorConfig{
			Count:         &count,
			Manufacturers: manufacturers,
			MaxPrice:      100000,
			MinYear:       1970,
			MaxYear:       2019,
		},
		Filter: FilterConfig{
			Mode:      "R",
			Criterion: "oldest",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from file, falling back to defaults.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	// If no config file specified, try default locations
	if configFile == "" {
		candidates := []string{DefaultFile, ".carfilter.yml", ".carfilter.json"}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				configFile = candidate

				break
			}
		}
	}

	if configFile != "" {
		if err := cfg.loadFromFile(configFile); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if isJSON(filename) {
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}

		return nil
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML config file: %w", err)
	}

	return nil
}

func isJSON(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

// applyDefaults back-fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Generator.Count == nil {
		c.Generator.Count = def.Generator.Count
	}

	if len(c.Generator.Manufacturers) == 0 {
		c.Generator.Manufacturers = def.Generator.Manufacturers
	}

	if c.Generator.MaxPrice == 0 {
		c.Generator.MaxPrice = def.Generator.MaxPrice
	}

	if c.Generator.MinYear == 0 {
		c.Generator.MinYear = def.Generator.MinYear
	}

	if c.Generator.MaxYear == 0 {
		c.Generator.MaxYear = def.Generator.MaxYear
	}

	if c.Filter.Mode == "" {
		c.Filter.Mode = def.Filter.Mode
	}

	if c.Filter.Criterion == "" {
		c.Filter.Criterion = def.Filter.Criterion
	}

	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}

	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Validate reports every semantic problem in the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.Generator.Count != nil && *c.Generator.Count < 0 {
		errs = append(errs, fmt.Errorf("generator.count %d must not be negative", *c.Generator.Count))
	}

	for _, m := range c.Generator.Manufacturers {
		if _, err := car.ParseManufacturer(m); err != nil {
			errs = append(errs, fmt.Errorf("generator.manufacturers: %w", err))
		}
	}

	if c.Generator.MaxPrice <= 0 {
		errs = append(errs, fmt.Errorf("generator.maxPrice %d must be positive", c.Generator.MaxPrice))
	}

	if c.Generator.MaxYear < c.Generator.MinYear {
		errs = append(errs, fmt.Errorf("generator.maxYear %d is before minYear %d", c.Generator.MaxYear, c.Generator.MinYear))
	}

	if _, err := filter.ParseMode(c.Filter.Mode); err != nil {
		errs = append(errs, fmt.Errorf("filter.mode: %w", err))
	}

	if _, err := filter.Parse(c.Filter.Criterion, c.Filter.Year); err != nil {
		errs = append(errs, fmt.Errorf("filter.criterion: %w", err))
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("output.format %q is not one of text, json", c.Output.Format))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Save saves the configuration as YAML, or as JSON for a .json filename.
func (c *Config) Save(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)

	if isJSON(filename) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
