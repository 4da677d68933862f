package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alem-hub/enrollment/internal/domain/enrollment"
	"github.com/alem-hub/enrollment/pkg/logger"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig `yaml:"app"`

	// Enrollment rule thresholds
	Rules RulesConfig `yaml:"rules"`

	// Observability
	Observability ObservabilityConfig `yaml:"observability"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string      `yaml:"name"`
	Environment Environment `yaml:"environment"`
	Debug       bool        `yaml:"debug"`

	// Optional dotenv file loaded before environment overrides
	EnvFile string `yaml:"env_file"`
}

// RulesConfig holds the unit-load thresholds applied by the enrollment engine.
type RulesConfig struct {
	LowGPA         float64 `yaml:"low_gpa"`
	LowGPAMaxUnits int     `yaml:"low_gpa_max_units"`
	MidGPA         float64 `yaml:"mid_gpa"`
	MidGPAMaxUnits int     `yaml:"mid_gpa_max_units"`
	MaxUnits       int     `yaml:"max_units"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // json, text
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	p := enrollment.DefaultPolicy()
	return &Config{
		App: AppConfig{
			Name:        "enrollment",
			Environment: EnvDevelopment,
			EnvFile:     ".env",
		},
		Rules: RulesConfig{
			LowGPA:         p.LowGPA,
			LowGPAMaxUnits: p.LowGPAMaxUnits,
			MidGPA:         p.MidGPA,
			MidGPAMaxUnits: p.MidGPAMaxUnits,
			MaxUnits:       p.MaxUnits,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file at path,
// an optional dotenv file and finally environment variables.
// An empty path or a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	envFile := getEnv("APP_ENV_FILE", cfg.App.EnvFile)
	if envFile != "" {
		// variables already set in the environment win over the file
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg.App = loadAppConfig(cfg.App)
	cfg.Rules = loadRulesConfig(cfg.Rules)
	cfg.Observability = loadObservabilityConfig(cfg.Observability)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func loadAppConfig(base AppConfig) AppConfig {
	env := Environment(getEnv("APP_ENV", string(base.Environment)))
	return AppConfig{
		Name:        getEnv("APP_NAME", base.Name),
		Environment: env,
		Debug:       getEnvBool("APP_DEBUG", base.Debug),
		EnvFile:     getEnv("APP_ENV_FILE", base.EnvFile),
	}
}

func loadRulesConfig(base RulesConfig) RulesConfig {
	return RulesConfig{
		LowGPA:         getEnvFloat("RULES_LOW_GPA", base.LowGPA),
		LowGPAMaxUnits: getEnvInt("RULES_LOW_GPA_MAX_UNITS", base.LowGPAMaxUnits),
		MidGPA:         getEnvFloat("RULES_MID_GPA", base.MidGPA),
		MidGPAMaxUnits: getEnvInt("RULES_MID_GPA_MAX_UNITS", base.MidGPAMaxUnits),
		MaxUnits:       getEnvInt("RULES_MAX_UNITS", base.MaxUnits),
	}
}

func loadObservabilityConfig(base ObservabilityConfig) ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:  getEnv("LOG_LEVEL", base.LogLevel),
		LogFormat: getEnv("LOG_FORMAT", base.LogFormat),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Sprintf("APP_ENV %q is not one of development, staging, production", c.App.Environment))
	}

	if err := c.Rules.Policy().Validate(); err != nil {
		errs = append(errs, "rules: "+strings.ReplaceAll(err.Error(), "\n", "; "))
	}

	switch logger.Format(c.Observability.LogFormat) {
	case logger.FormatJSON, logger.FormatText:
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT %q must be json or text", c.Observability.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Policy converts the rules section into an engine policy.
func (r RulesConfig) Policy() enrollment.Policy {
	return enrollment.Policy{
		LowGPA:         r.LowGPA,
		LowGPAMaxUnits: r.LowGPAMaxUnits,
		MidGPA:         r.MidGPA,
		MidGPAMaxUnits: r.MidGPAMaxUnits,
		MaxUnits:       r.MaxUnits,
	}
}

// Logger builds a logger from the observability section. Debug mode forces
// the debug level.
func (c *Config) Logger() *logger.Logger {
	opts := logger.DefaultOptions()
	opts.Level = logger.ParseLevel(c.Observability.LogLevel)
	if c.App.Debug {
		opts.Level = logger.LevelDebug
	}
	opts.Format = logger.Format(c.Observability.LogFormat)
	return logger.New(opts).With(logger.String("app", c.App.Name))
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
