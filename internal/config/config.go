package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

// DefaultMaxBodyBytes matches the Jupyter server's default request body
// limit, so the cap only rejects what the hosting server would too.
const DefaultMaxBodyBytes = 100 << 20

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// LogDir holds the event log files. Relative paths are resolved against
	// the working directory at startup.
	LogDir string `json:"logDir" yaml:"logDir"`
	// BasePath prefixes the event route: <BasePath>/jupyterlab-log/log.
	BasePath string `json:"basePath" yaml:"basePath"`
	HTTPAddr string `json:"httpAddr" yaml:"httpAddr"`
	// GRPCAddr enables the gRPC transport when set.
	GRPCAddr string `json:"grpcAddr" yaml:"grpcAddr"`
	// Fsync is "always" or "never".
	Fsync string `json:"fsync" yaml:"fsync"`
	// UTC names files by the UTC date instead of the local one.
	UTC bool `json:"utc" yaml:"utc"`
	// MaxBodyBytes caps request bodies; 0 disables the cap.
	MaxBodyBytes int64 `json:"maxBodyBytes" yaml:"maxBodyBytes"`
	// Token, when set, is required as "Authorization: token <Token>" or
	// ?token=<Token> on the event route.
	Token          string    `json:"token" yaml:"token"`
	MetricsEnabled bool      `json:"metricsEnabled" yaml:"metricsEnabled"`
	Log            LogConfig `json:"log" yaml:"log"`
}

// LogConfig selects the process logger's level, format and outputs.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	// File, when set, adds a file output next to the console.
	File string `json:"file" yaml:"file"`
	// Redact lists field keys whose values are masked in log output.
	Redact []string `json:"redact" yaml:"redact"`
	// Sampling thins repeated messages; nil logs everything.
	Sampling *logpkg.SamplingConfig `json:"sampling,omitempty" yaml:"sampling,omitempty"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		LogDir:         eventlog.DefaultDir,
		BasePath:       "/",
		HTTPAddr:       ":8888",
		Fsync:          "never",
		MaxBodyBytes:   DefaultMaxBodyBytes,
		MetricsEnabled: true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Redact: []string{"token"},
		},
	}
}

// Load reads configuration from a JSON or YAML file (by extension) on top of
// Default(). If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Validate checks values that would otherwise only fail at first use.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.LogDir) == "" {
		errs = append(errs, errors.New("logDir must not be empty"))
	}
	if c.HTTPAddr == "" && c.GRPCAddr == "" {
		errs = append(errs, errors.New("at least one of httpAddr or grpcAddr is required"))
	}
	if _, err := eventlog.ParseFsyncMode(c.Fsync); err != nil {
		errs = append(errs, err)
	}
	if c.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("maxBodyBytes must be >= 0"))
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		errs = append(errs, fmt.Errorf("basePath %q must start with /", c.BasePath))
	}
	if strings.ContainsAny(c.BasePath, " \t{}") {
		errs = append(errs, fmt.Errorf("basePath %q must not contain spaces or braces", c.BasePath))
	}
	return errors.Join(errs...)
}

// FsyncMode returns the parsed Fsync value; call Validate first.
func (c Config) FsyncMode() eventlog.FsyncMode {
	m, _ := eventlog.ParseFsyncMode(c.Fsync)
	return m
}
