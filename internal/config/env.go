package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays JLOG_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("JLOG_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("JLOG_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv("JLOG_HTTP"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("JLOG_GRPC"); v != "" {
		cfg.GRPCAddr = v
	}
	if v := os.Getenv("JLOG_FSYNC"); v != "" {
		cfg.Fsync = v
	}
	if v := os.Getenv("JLOG_UTC"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UTC = b
		}
	}
	if v := os.Getenv("JLOG_MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("JLOG_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("JLOG_METRICS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MetricsEnabled = b
		}
	}
	if v := os.Getenv("JLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("JLOG_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("JLOG_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("JLOG_LOG_REDACT"); v != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		cfg.Log.Redact = keys
	}
}
