// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	custom_errors "github-dashboard/internal/errors"
)

const (
	ModeRender = "render"
	ModeServe  = "serve"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel    string         `mapstructure:"LOG_LEVEL"`
	Account     string         `mapstructure:"ACCOUNT"`
	APIBaseURL  string         `mapstructure:"API_BASE_URL"`
	GithubToken string         `mapstructure:"GITHUB_TOKEN"`
	Mode        string         `mapstructure:"MODE"`
	OutputPath  string         `mapstructure:"OUTPUT_PATH"`
	ListenAddr  string         `mapstructure:"LISTEN_ADDR"`
	Timezone    string         `mapstructure:"TIMEZONE"`
	Location    *time.Location `mapstructure:"-"`
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"account":     "ACCOUNT",
	"api-base":    "API_BASE_URL",
	"mode":        "MODE",
	"out":         "OUTPUT_PATH",
	"listen-addr": "LISTEN_ADDR",
	"timezone":    "TIMEZONE",
	"log-level":   "LOG_LEVEL",
}

var loginPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// Flags declares the command-line flags LoadConfig understands.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("account", "", "GitHub login whose dashboard is built")
	fs.String("api-base", "", "GitHub REST API base URL")
	fs.String("mode", "", "render (write a page and exit) or serve (HTTP server)")
	fs.String("out", "", "output path of the rendered page")
	fs.String("listen-addr", "", "listen address in serve mode")
	fs.String("timezone", "", "IANA time zone for the hourly heatmap")
	fs.String("log-level", "", "debug, info, warn or error")
	return fs
}

// LoadConfig reads configuration from file, environment variables and flags.
// Flags that were set explicitly win over everything else.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ACCOUNT", "")
	v.SetDefault("API_BASE_URL", "https://api.github.com/")
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("MODE", ModeRender)
	v.SetDefault("OUTPUT_PATH", "dashboard.html")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("TIMEZONE", "Local")

	// Load from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.Account == "" {
		return nil, errors.New("ACCOUNT is a required configuration field")
	}
	if !loginPattern.MatchString(cfg.Account) {
		return nil, &custom_errors.ErrInvalidAccount{Account: cfg.Account}
	}
	if cfg.Mode != ModeRender && cfg.Mode != ModeServe {
		return nil, fmt.Errorf("MODE must be %q or %q, got %q", ModeRender, ModeServe, cfg.Mode)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE must be an IANA time zone name: %w", err)
	}
	cfg.Location = loc

	return &cfg, nil
}
