package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		BetaSeries: BetaSeriesConfig{
			Host:   "https://api.betaseries.com",
			APIKey: "valid-api-key",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "Valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "Missing API key",
			mutate:  func(c *Config) { c.BetaSeries.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "Placeholder API key",
			mutate:  func(c *Config) { c.BetaSeries.APIKey = "your-api-key-here" },
			wantErr: true,
		},
		{
			name:    "Host without scheme",
			mutate:  func(c *Config) { c.BetaSeries.Host = "api.betaseries.com" },
			wantErr: true,
		},
		{
			name:    "Host with unsupported scheme",
			mutate:  func(c *Config) { c.BetaSeries.Host = "ftp://api.betaseries.com" },
			wantErr: true,
		},
		{
			name:    "Plain http host",
			mutate:  func(c *Config) { c.BetaSeries.Host = "http://localhost:8080" },
			wantErr: false,
		},
		{
			name:    "Negative timeout",
			mutate:  func(c *Config) { c.BetaSeries.Timeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "Invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: true,
		},
		{
			name:    "Invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "Empty filter preset",
			mutate:  func(c *Config) { c.Filter = FilterConfig{"broken": " "} },
			wantErr: true,
		},
		{
			name:    "Filter preset",
			mutate:  func(c *Config) { c.Filter = FilterConfig{"public": `not requires("token")`} },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMissingKeySentinel(t *testing.T) {
	cfg := validConfig()
	cfg.BetaSeries.APIKey = ""

	if err := validate(cfg); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("validate() error = %v, want ErrMissingAPIKey", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
betaseries:
  host: https://example.com/
  api_key: file-key
  timeout: 5s
filter:
  members: Category == "members"
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BetaSeries.Host != "https://example.com" {
		t.Errorf("Host = %q", cfg.BetaSeries.Host)
	}
	if cfg.BetaSeries.APIKey != "file-key" {
		t.Errorf("APIKey = %q", cfg.BetaSeries.APIKey)
	}
	if cfg.BetaSeries.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s", cfg.BetaSeries.Timeout)
	}
	if cfg.BetaSeries.APIVersion != "2.4" {
		t.Errorf("APIVersion = %q, want default", cfg.BetaSeries.APIVersion)
	}
	if cfg.BetaSeries.UserAgent != "betaseries-cli" {
		t.Errorf("UserAgent = %q, want default", cfg.BetaSeries.UserAgent)
	}
	if cfg.Filter["members"] != `Category == "members"` {
		t.Errorf("Filter = %v", cfg.Filter)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}

	client := cfg.BetaSeries.ClientConfig()
	if client.APIKey != "file-key" || client.Timeout != 5*time.Second {
		t.Errorf("ClientConfig() = %+v", client)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
betaseries:
  api_key: file-key
`)
	t.Setenv("BETASERIES_API_KEY", "env-key")
	t.Setenv("BETASERIES_TOKEN", "env-token")
	t.Setenv("BETASERIES_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BetaSeries.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.BetaSeries.APIKey)
	}
	if cfg.BetaSeries.Token != "env-token" {
		t.Errorf("Token = %q, want env-token", cfg.BetaSeries.Token)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestReadWithoutKey(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")

	cfg, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.BetaSeries.Host != "https://api.betaseries.com" {
		t.Errorf("Host = %q, want default", cfg.BetaSeries.Host)
	}

	if _, err := Load(path); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Load() error = %v, want ErrMissingAPIKey", err)
	}
}
