package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "glossary.yaml"

// Config represents the application configuration.
type Config struct {
	Input   string        `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Index   IndexConfig   `yaml:"index"`
	Build   BuildConfig   `yaml:"build"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// OutputConfig controls where and how pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`            // Remove stale *.html before publishing
	Staged    *bool  `yaml:"staged,omitempty"` // Render into a workspace and publish only complete runs
}

// IsStaged reports whether output is staged; staging is on unless disabled explicitly.
func (o OutputConfig) IsStaged() bool {
	return o.Staged == nil || *o.Staged
}

// IndexConfig controls the index page.
type IndexConfig struct {
	Title string `yaml:"title"`
}

// BuildConfig holds build behaviour toggles.
type BuildConfig struct {
	VerifyLinks bool `yaml:"verify_links"`
}

// LoggingConfig selects log level and handler format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands, defaults and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return Parse(data)
}

// LoadOrDefault loads configPath, falling back to Default when the file does not exist.
// The boolean reports whether a file was loaded.
func LoadOrDefault(configPath string) (*Config, bool, error) {
	cfg, err := Load(configPath)
	if err == nil {
		return cfg, true, nil
	}
	if errors.HasCategory(err, errors.CategoryNotFound) {
		return Default(), false, nil
	}
	return nil, false, err
}

// Parse decodes YAML after expanding ${VAR} references from the environment.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			Build()
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
