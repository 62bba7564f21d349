// Package config loads paperimport settings through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/paperimport/core/render"
)

// Keys understood in paperimport.yaml, PAPERIMPORT_* variables and flags.
const (
	KeyTemplate    = "template"
	KeyPaperFolder = "paper_folder"
	KeyFormat      = "format"
	KeyTimeout     = "http.timeout"
	KeyUserAgent   = "http.user_agent"
	KeyLogLevel    = "log_level"
)

// EnvPrefix prefixes environment overrides, e.g. PAPERIMPORT_HTTP_TIMEOUT.
const EnvPrefix = "PAPERIMPORT"

// HTTP configures the page fetcher.
type HTTP struct {
	Timeout   time.Duration
	UserAgent string
}

// Config is the resolved configuration for one run.
type Config struct {
	Template    string
	PaperFolder string
	Format      string
	HTTP        HTTP
	LogLevel    string
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTemplate, render.DefaultTemplate)
	v.SetDefault(KeyPaperFolder, "")
	v.SetDefault(KeyFormat, render.FormatTemplate)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyUserAgent, "")
	v.SetDefault(KeyLogLevel, "info")
}

// Init points v at the config file and the environment. An explicit
// cfgFile wins over the search path ./paperimport.yaml, then
// ~/.config/paperimport/paperimport.yaml. It returns the file in use, or
// "" when none was found.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("paperimport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "paperimport"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Template:    v.GetString(KeyTemplate),
		PaperFolder: v.GetString(KeyPaperFolder),
		Format:      strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		HTTP: HTTP{
			Timeout:   v.GetDuration(KeyTimeout),
			UserAgent: v.GetString(KeyUserAgent),
		},
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
	}

	if cfg.Format == "" {
		cfg.Format = render.FormatTemplate
	}
	if !isFormat(cfg.Format) {
		return Config{}, fmt.Errorf("unknown format %q (want one of %s)", cfg.Format, strings.Join(render.Formats, ", "))
	}
	if cfg.HTTP.Timeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeyTimeout, cfg.HTTP.Timeout)
	}
	if cfg.Format == render.FormatTemplate && strings.TrimSpace(cfg.Template) == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyTemplate)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !logLevels[cfg.LogLevel] {
		return Config{}, fmt.Errorf("unknown %s %q", KeyLogLevel, cfg.LogLevel)
	}

	return cfg, nil
}

func isFormat(f string) bool {
	for _, known := range render.Formats {
		if f == known {
			return true
		}
	}
	return false
}
