package config

import (
	"time"

	"github.com/s0up4200/betaseries/betaseries"
)

// Config represents the complete configuration structure
type Config struct {
	BetaSeries BetaSeriesConfig `mapstructure:"betaseries"`
	Filter     FilterConfig     `mapstructure:"filter"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// BetaSeriesConfig holds BetaSeries API connection details
type BetaSeriesConfig struct {
	Host       string        `mapstructure:"host"`
	APIKey     string        `mapstructure:"api_key"`
	APIVersion string        `mapstructure:"api_version"`
	UserAgent  string        `mapstructure:"user_agent"`
	Token      string        `mapstructure:"token"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// ClientConfig converts the section into the client's settings
func (c BetaSeriesConfig) ClientConfig() betaseries.Config {
	return betaseries.Config{
		Host:       c.Host,
		APIKey:     c.APIKey,
		APIVersion: c.APIVersion,
		UserAgent:  c.UserAgent,
		Token:      c.Token,
		Timeout:    c.Timeout,
	}
}

// FilterConfig maps preset names to endpoint filter expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
