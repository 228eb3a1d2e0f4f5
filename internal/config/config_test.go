package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LogDir != ".event_logs" {
		t.Fatalf("default log dir: %q", cfg.LogDir)
	}
	if cfg.BasePath != "/" {
		t.Fatalf("default base path: %q", cfg.BasePath)
	}
	if cfg.FsyncMode() != eventlog.FsyncModeNever {
		t.Fatalf("default fsync should be never")
	}
	if cfg.MaxBodyBytes != 100<<20 {
		t.Fatalf("default body cap should match the Jupyter server's 100MiB, got %d", cfg.MaxBodyBytes)
	}
	if !reflect.DeepEqual(cfg.Log.Redact, []string{"token"}) {
		t.Fatalf("token should be redacted by default: %v", cfg.Log.Redact)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "jlog.json")
	data := []byte(`{"logDir":"/var/log/jlog","basePath":"/user/ana/","fsync":"always","log":{"level":"debug"}}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogDir != "/var/log/jlog" || cfg.BasePath != "/user/ana/" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.FsyncMode() != eventlog.FsyncModeAlways {
		t.Fatalf("expected fsync always")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("log config should overlay defaults: %+v", cfg.Log)
	}
	if cfg.HTTPAddr != ":8888" {
		t.Fatalf("unset keys keep defaults, got %q", cfg.HTTPAddr)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "jlog.yaml")
	data := []byte("logDir: ./logs\ngrpcAddr: 127.0.0.1:50051\nutc: true\nmaxBodyBytes: 4096\nlog:\n  format: json\n")
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogDir != "./logs" || cfg.GRPCAddr != "127.0.0.1:50051" || !cfg.UTC || cfg.MaxBodyBytes != 4096 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadYAMLLogRedactAndSampling(t *testing.T) {
	file := filepath.Join(t.TempDir(), "jlog.yaml")
	data := []byte("log:\n  redact: [token, cookie]\n  sampling:\n    initial: 10\n    thereafter: 100\n")
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Log.Redact, []string{"token", "cookie"}) {
		t.Fatalf("redact: %v", cfg.Log.Redact)
	}
	if cfg.Log.Sampling == nil || cfg.Log.Sampling.Initial != 10 || cfg.Log.Sampling.Thereafter != 100 {
		t.Fatalf("sampling: %+v", cfg.Log.Sampling)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	file := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(file, []byte("logDir: [unterminated"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(file); err == nil {
		t.Fatalf("expected parse error")
	}
	cfg, err := Load("")
	if err != nil || !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("empty path should yield defaults")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	t.Setenv("JLOG_LOG_DIR", "/tmp/events")
	t.Setenv("JLOG_BASE_PATH", "/hub/")
	t.Setenv("JLOG_FSYNC", "always")
	t.Setenv("JLOG_UTC", "true")
	t.Setenv("JLOG_MAX_BODY_BYTES", "2048")
	t.Setenv("JLOG_METRICS", "false")
	t.Setenv("JLOG_LOG_LEVEL", "warn")
	t.Setenv("JLOG_LOG_REDACT", "token, password,")
	FromEnv(&cfg)
	if cfg.LogDir != "/tmp/events" || cfg.BasePath != "/hub/" {
		t.Fatalf("env override paths: %+v", cfg)
	}
	if cfg.FsyncMode() != eventlog.FsyncModeAlways || !cfg.UTC {
		t.Fatalf("env override fsync/utc")
	}
	if cfg.MaxBodyBytes != 2048 || cfg.MetricsEnabled {
		t.Fatalf("env override numbers/bools")
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env override log level")
	}
	if !reflect.DeepEqual(cfg.Log.Redact, []string{"token", "password"}) {
		t.Fatalf("env override redact: %v", cfg.Log.Redact)
	}
}

func TestFromEnvIgnoresUnparsable(t *testing.T) {
	cfg := Default()
	t.Setenv("JLOG_UTC", "maybe")
	t.Setenv("JLOG_MAX_BODY_BYTES", "lots")
	FromEnv(&cfg)
	if cfg.UTC || cfg.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Fatalf("unparsable values must be ignored: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty log dir", func(c *Config) { c.LogDir = " " }},
		{"no listeners", func(c *Config) { c.HTTPAddr = ""; c.GRPCAddr = "" }},
		{"bad fsync", func(c *Config) { c.Fsync = "sometimes" }},
		{"negative body cap", func(c *Config) { c.MaxBodyBytes = -1 }},
		{"relative base path", func(c *Config) { c.BasePath = "user/ana" }},
		{"pattern chars in base path", func(c *Config) { c.BasePath = "/user/{name}" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
