package neat

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config stores everything needed to start a training run.
type Config struct {
	Run      RunConfig
	Settings *Settings
}

// RunConfig holds the parameters of the training loop itself.
type RunConfig struct {
	PopulationSize int     `ini:"population_size" yaml:"population_size"`
	TargetFitness  float64 `ini:"target_fitness" yaml:"target_fitness"`
	MaxGenerations int     `ini:"max_generations" yaml:"max_generations"` // 0 = no limit
	Activation     string  `ini:"activation" yaml:"activation"`           // name in ActivationFunctions
	Workers        int     `ini:"workers" yaml:"workers"`                 // parallel fitness evaluations
	Elitism        bool    `ini:"elitism" yaml:"elitism"`
	Seed           int64   `ini:"seed" yaml:"seed"` // 0 = seed from the clock
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			PopulationSize: 150,
			Activation:     "sigmoid",
			Workers:        1,
		},
		Settings: DefaultSettings(),
	}
}

// LoadConfig loads a configuration file on top of DefaultConfig.
// Files ending in .yaml or .yml are read as YAML, anything else as INI with
// a [Run] section and a [Settings] section keyed by setting name.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	var err error
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		err = loadYAML(filePath, config)
	default:
		err = loadINI(filePath, config)
	}
	if err != nil {
		return nil, err
	}

	config.Run.Activation = cleanIniString(config.Run.Activation)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadINI(filePath string, config *Config) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true, // Allow # comments starting with # or ;
		UnescapeValueCommentSymbols: true, // If # or ; appear in value, treat as value
		Insensitive:                 true,
	}, filePath)
	if err != nil {
		return fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	run := cfg.Section("run")
	if err := run.MapTo(&config.Run); err != nil {
		return fmt.Errorf("failed to map [Run] section: %w", err)
	}

	for _, key := range cfg.Section("settings").Keys() {
		setting, ok := ParseSetting(key.Name())
		if !ok {
			return fmt.Errorf("config error: unknown setting '%s'", key.Name())
		}
		value, err := strconv.ParseFloat(cleanIniString(key.String()), 64)
		if err != nil {
			return fmt.Errorf("config error: %s: %w", setting, err)
		}
		if err := config.Settings.Set(setting, value); err != nil {
			return err
		}
	}
	return nil
}

func loadYAML(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	doc := struct {
		Run      *RunConfig         `yaml:"run"`
		Settings map[string]float64 `yaml:"settings"`
	}{Run: &config.Run}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}

	for name, value := range doc.Settings {
		setting, ok := ParseSetting(name)
		if !ok {
			return fmt.Errorf("config error: unknown setting '%s'", name)
		}
		if err := config.Settings.Set(setting, value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the run parameters and the settings table.
func (c *Config) Validate() error {
	if c.Run.PopulationSize <= 0 {
		return fmt.Errorf("config error: population_size must be positive")
	}
	if c.Run.MaxGenerations < 0 {
		return fmt.Errorf("config error: max_generations cannot be negative")
	}
	if c.Run.Workers < 0 {
		return fmt.Errorf("config error: workers cannot be negative")
	}
	if _, err := GetActivation(c.Run.Activation); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return c.Settings.Validate()
}

// ActivationFunc returns the configured activation function.
func (c *Config) ActivationFunc() (ActivationFunc, error) {
	return GetActivation(c.Run.Activation)
}

// Options turns the configuration into engine options.
func (c *Config) Options() []Option {
	opts := []Option{
		WithSettings(c.Settings.Clone()),
		WithWorkers(c.Run.Workers),
		WithElitism(c.Run.Elitism),
		WithMaxGenerations(c.Run.MaxGenerations),
	}
	if c.Run.Seed != 0 {
		opts = append(opts, WithSeed(c.Run.Seed))
	}
	return opts
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
