package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	OpenAI     OpenAIConfig
	Advice     AdviceConfig
	Enrichment EnrichmentConfig
	Sheets     SheetsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog file locations
type CatalogConfig struct {
	PrimaryPath  string `mapstructure:"primary_path"`  // enriched catalog
	FallbackPath string `mapstructure:"fallback_path"` // raw import output
}

// OpenAIConfig holds text-generation API configuration
type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AdviceConfig holds style advice generation settings
type AdviceConfig struct {
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
	SampleSize  int     `mapstructure:"sample_size"`
}

// EnrichmentConfig holds tag enrichment settings
type EnrichmentConfig struct {
	MaxTokens         int     `mapstructure:"max_tokens"`
	Temperature       float32 `mapstructure:"temperature"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// SheetsConfig holds spreadsheet import settings
type SheetsConfig struct {
	ID      string        `mapstructure:"id"`
	GID     string        `mapstructure:"gid"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

var validEnvironments = map[string]bool{
	"development": true,
	"test":        true,
	"staging":     true,
	"production":  true,
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stylist/")

	// Environment variable settings
	v.SetEnvPrefix("STYLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindAliases(v); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// bindAliases accepts the unprefixed variable names used in .env files
func bindAliases(v *viper.Viper) error {
	aliases := map[string][]string{
		"openai.api_key": {"STYLIST_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"sheets.id":      {"STYLIST_SHEETS_ID", "GOOGLE_SHEETS_ID"},
		"sheets.gid":     {"STYLIST_SHEETS_GID", "GOOGLE_SHEETS_GID"},
	}
	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Catalog defaults
	v.SetDefault("catalog.primary_path", "catalog_enriched.json")
	v.SetDefault("catalog.fallback_path", "catalog.json")

	// OpenAI defaults
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4")
	v.SetDefault("openai.timeout", "60s")

	// Advice defaults
	v.SetDefault("advice.max_tokens", 400)
	v.SetDefault("advice.temperature", 0.7)
	v.SetDefault("advice.sample_size", 5)

	// Enrichment defaults
	v.SetDefault("enrichment.max_tokens", 200)
	v.SetDefault("enrichment.temperature", 0.3)
	v.SetDefault("enrichment.requests_per_second", 1.0)

	// Sheets defaults
	v.SetDefault("sheets.gid", "0")
	v.SetDefault("sheets.base_url", "https://docs.google.com")
	v.SetDefault("sheets.timeout", "30s")
}

// validate validates the configuration
func validate(config *Config) error {
	if !validEnvironments[config.Server.Environment] {
		return fmt.Errorf("environment must be one of development, test, staging, production, got: %s", config.Server.Environment)
	}

	if config.Catalog.PrimaryPath == "" || config.Catalog.FallbackPath == "" {
		return fmt.Errorf("catalog primary and fallback paths are required")
	}

	if config.OpenAI.Timeout <= 0 {
		return fmt.Errorf("openai timeout must be positive, got: %v", config.OpenAI.Timeout)
	}

	if config.Advice.MaxTokens <= 0 || config.Enrichment.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}

	if config.Advice.SampleSize <= 0 {
		return fmt.Errorf("advice sample size must be positive, got: %d", config.Advice.SampleSize)
	}

	if !validTemperature(config.Advice.Temperature) || !validTemperature(config.Enrichment.Temperature) {
		return fmt.Errorf("temperature must be between 0 and 2")
	}

	if config.Enrichment.RequestsPerSecond <= 0 {
		return fmt.Errorf("enrichment requests per second must be positive, got: %v", config.Enrichment.RequestsPerSecond)
	}

	// A missing OpenAI key is allowed: advice falls back and enrichment uses default tags

	return nil
}

func validTemperature(t float32) bool {
	return t >= 0 && t <= 2
}
