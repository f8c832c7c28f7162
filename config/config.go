// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package config holds the settings for serving a CLAMS app over HTTP.
// Settings can be read from a YAML or TOML file; command-line tools
// then override individual fields from flags.
//
//     bind: ":5000"
//     log_level: info
//     log_format: text
//     log_requests: false
//     metrics: true
//     read_timeout: 1m
//     write_timeout: 10m
//     shutdown_timeout: 30s
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Duration is a time.Duration that reads from a string such as "30s"
// in both YAML and TOML files.
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText formats the duration the way time.Duration does.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config describes an app server.
type Config struct {
	// Bind is the [ip]:port the HTTP server listens on.
	Bind string `yaml:"bind" toml:"bind"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format" toml:"log_format"`

	// LogRequests logs every request and response.
	LogRequests bool `yaml:"log_requests" toml:"log_requests"`

	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool `yaml:"metrics" toml:"metrics"`

	ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Bind:            ":5000",
		LogLevel:        "info",
		LogFormat:       "text",
		Metrics:         true,
		ReadTimeout:     Duration(time.Minute),
		WriteTimeout:    Duration(10 * time.Minute),
		ShutdownTimeout: Duration(30 * time.Second),
	}
}

// Load reads a configuration file on top of Default().  The format is
// chosen by file extension: .yaml or .yml for YAML, .toml for TOML.
// Fields the file does not mention keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &cfg)
	case ".toml":
		err = toml.Unmarshal(bytes, &cfg)
	default:
		return cfg, fmt.Errorf("config file %v: unknown format", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("config file %v: %v", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that every field holds a usable value.
func (cfg Config) Validate() error {
	if cfg.Bind == "" {
		return fmt.Errorf("bind address is required")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q must be text or json", cfg.LogFormat)
	}
	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 || cfg.ShutdownTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// Logger builds a logger writing to stderr with the configured level
// and format.
func (cfg Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Level = level
	if cfg.LogFormat == "json" {
		logger.Formatter = &logrus.JSONFormatter{}
	} else {
		logger.Formatter = &logrus.TextFormatter{}
	}
	return logger, nil
}

// RequestLogger returns a debug-level copy of logger for per-request
// logging, or nil if request logging is off.
func (cfg Config) RequestLogger(logger *logrus.Logger) *logrus.Logger {
	if !cfg.LogRequests {
		return nil
	}
	return &logrus.Logger{
		Out:       logger.Out,
		Formatter: logger.Formatter,
		Hooks:     logger.Hooks,
		Level:     logrus.DebugLevel,
	}
}
