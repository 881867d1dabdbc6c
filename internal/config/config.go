package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces the environment variables (HR_LOGGING_LEVEL, ...).
const envPrefix = "HR"

// AsOfLayout is the wire format of the reference date wherever it crosses a
// configuration or CLI boundary.
const AsOfLayout = "2006-01-02"

// Config represents the complete application configuration. Precedence is
// environment variables, then the config file, then built-in defaults.
type Config struct {
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
}

// PipelineConfig controls the cleaning pipeline itself.
type PipelineConfig struct {
	// AsOf is the reference date for age/tenure/activity computations in
	// "2006-01-02" form. Empty means "today at invocation", resolved once
	// at the orchestration boundary so a run stays internally consistent.
	AsOf        string `yaml:"as_of" envconfig:"AS_OF" validate:"omitempty,datetime=2006-01-02"`
	AgeCeiling  int    `yaml:"age_ceiling" envconfig:"AGE_CEILING" validate:"min=1"`
	Parallelism int    `yaml:"parallelism" envconfig:"PARALLELISM" validate:"min=1"`
}

// AnalyticsConfig controls the aggregate-view layer.
type AnalyticsConfig struct {
	MinimumAge int `yaml:"minimum_age" envconfig:"MINIMUM_AGE" validate:"min=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputFile    string `yaml:"input_file" envconfig:"INPUT_FILE"`
	OutputFile   string `yaml:"output_file" envconfig:"OUTPUT_FILE"`
	FindingsFile string `yaml:"findings_file" envconfig:"FINDINGS_FILE"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" validate:"min=0"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" validate:"min=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			AgeCeiling:  100,
			Parallelism: 1,
		},
		Analytics: AnalyticsConfig{
			MinimumAge: 18,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			InputFile:    "data/raw/Human Resources.csv",
			OutputFile:   "data/processed/cleaned_hr_data.csv",
			FindingsFile: "data/processed/findings.csv",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimitRPS:    100,
			RateLimitBurst:  200,
		},
	}
}

// Load loads configuration from environment variables and an optional
// config.yaml in the working directory.
func Load() (*Config, error) {
	return LoadFrom("config.yaml")
}

// LoadFrom loads configuration with an explicit config file location.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		merge(cfg, fileCfg)
	}

	// Environment variables override both the defaults and the file.
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ResolveAsOf returns the configured reference date, or now truncated to a
// UTC calendar date when none is set.
func (c *Config) ResolveAsOf(now time.Time) (time.Time, error) {
	if c.Pipeline.AsOf == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	asOf, err := time.Parse(AsOfLayout, c.Pipeline.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of date %q: %w", c.Pipeline.AsOf, err)
	}
	return asOf, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge overlays non-zero file values onto the defaults.
func merge(base, file *Config) {
	if file.Pipeline.AsOf != "" {
		base.Pipeline.AsOf = file.Pipeline.AsOf
	}
	if file.Pipeline.AgeCeiling != 0 {
		base.Pipeline.AgeCeiling = file.Pipeline.AgeCeiling
	}
	if file.Pipeline.Parallelism != 0 {
		base.Pipeline.Parallelism = file.Pipeline.Parallelism
	}
	if file.Analytics.MinimumAge != 0 {
		base.Analytics.MinimumAge = file.Analytics.MinimumAge
	}
	if file.Logging.Level != "" {
		base.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		base.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		base.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		base.Logging.FilePath = file.Logging.FilePath
	}
	if file.Paths.InputFile != "" {
		base.Paths.InputFile = file.Paths.InputFile
	}
	if file.Paths.OutputFile != "" {
		base.Paths.OutputFile = file.Paths.OutputFile
	}
	if file.Paths.FindingsFile != "" {
		base.Paths.FindingsFile = file.Paths.FindingsFile
	}
	if file.Server.Port != 0 {
		base.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeout != 0 {
		base.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 {
		base.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if file.Server.IdleTimeout != 0 {
		base.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if file.Server.ShutdownTimeout != 0 {
		base.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if file.Server.RateLimitRPS != 0 {
		base.Server.RateLimitRPS = file.Server.RateLimitRPS
	}
	if file.Server.RateLimitBurst != 0 {
		base.Server.RateLimitBurst = file.Server.RateLimitBurst
	}
}
