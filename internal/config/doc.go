// Package config provides loading and environment overlay for the
// jupyterlab-log server configuration. It exposes a Default() baseline, a
// file loader for JSON or YAML, and a JLOG_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/jupyterlab-log.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	dir, _ := config.ResolveLogDir(cfg.LogDir)
package config
