package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/betaseries/betaseries"
)

// ErrMissingAPIKey is returned by Load when no API key is configured
var ErrMissingAPIKey = errors.New("betaseries.api_key must be set to a valid API key")

// env variables bound on top of the automatic BETASERIES_<SECTION>_<KEY> ones
var envBindings = map[string]string{
	"betaseries.api_key":     "BETASERIES_API_KEY",
	"betaseries.token":       "BETASERIES_TOKEN",
	"betaseries.host":        "BETASERIES_HOST",
	"betaseries.api_version": "BETASERIES_API_VERSION",
}

// Load reads and validates the configuration
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Read loads the configuration without validating it. A missing file is only
// an error when configPath is set explicitly.
func Read(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix("BETASERIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, "BETASERIES_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".betaseries"))
		}

		// Check /etc
		v.AddConfigPath("/etc/betaseries/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.BetaSeries.Host = strings.TrimRight(cfg.BetaSeries.Host, "/")

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// BetaSeries defaults
	v.SetDefault("betaseries.host", betaseries.DefaultHost)
	v.SetDefault("betaseries.api_version", betaseries.DefaultAPIVersion)
	v.SetDefault("betaseries.user_agent", "betaseries-cli")
	v.SetDefault("betaseries.timeout", betaseries.DefaultTimeout)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.BetaSeries.APIKey == "" || cfg.BetaSeries.APIKey == "your-api-key-here" {
		return ErrMissingAPIKey
	}

	u, err := url.Parse(cfg.BetaSeries.Host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid betaseries.host: %q", cfg.BetaSeries.Host)
	}

	if cfg.BetaSeries.Timeout < 0 {
		return fmt.Errorf("invalid betaseries.timeout: %s", cfg.BetaSeries.Timeout)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, expression := range cfg.Filter {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.%s: empty expression", name)
		}
	}

	return nil
}
