// Package log provides the structured logging facade used across the
// jupyterlab-log service.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Internally it is backed by Go's
// standard library slog via a bridge handler that feeds records through a
// formatter and a set of outputs.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("http"))
//	l.Info("server started", log.Str("addr", ":8888"))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config, supporting JSON
// or text formatting and multiple outputs (console, file, null). Redaction of
// selected keys and per-message sampling are applied in the slog handler.
//
// # Interop
//
// To integrate with libraries expecting *log.Logger (net/http's ErrorLog, for
// instance), use ToStdLogger or RedirectStdLog.
package log
