package runtime

import (
	"context"
	"fmt"

	cfgpkg "github.com/behavioral-data/Data-Assistant-Interface/internal/config"
	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
	"github.com/behavioral-data/Data-Assistant-Interface/internal/metrics"
	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
}

// Runtime wires the recorder, its metrics and config for a single instance.
// Both transports share one Runtime, so appends from either go through the
// same per-file locks.
type Runtime struct {
	rec     *eventlog.Recorder
	metrics *metrics.Collector
	config  cfgpkg.Config
	dir     string
}

// Open resolves the log directory and builds the recorder. Nothing is
// created on disk until the first event arrives.
func Open(opts Options) (*Runtime, error) {
	dir, err := cfgpkg.ResolveLogDir(opts.Config.LogDir)
	if err != nil {
		return nil, fmt.Errorf("resolve log dir: %w", err)
	}
	m := metrics.New()
	rec, err := eventlog.New(eventlog.Options{
		Dir:     dir,
		Fsync:   opts.Config.FsyncMode(),
		UTC:     opts.Config.UTC,
		Metrics: m,
		Logger:  opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Runtime{rec: rec, metrics: m, config: opts.Config, dir: dir}, nil
}

// Close releases runtime resources. Files are opened per append, so there is
// nothing to flush.
func (r *Runtime) Close() error { return nil }

// CheckHealth reports whether events can currently be appended.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	return r.rec.CheckHealth(ctx)
}

// Recorder returns the shared event recorder.
func (r *Runtime) Recorder() *eventlog.Recorder { return r.rec }

// Metrics returns the Prometheus collector fed by the recorder.
func (r *Runtime) Metrics() *metrics.Collector { return r.metrics }

// LogDir returns the absolute directory events are written to.
func (r *Runtime) LogDir() string { return r.dir }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
