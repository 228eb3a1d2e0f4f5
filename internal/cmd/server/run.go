package serverrun

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	cfgpkg "github.com/behavioral-data/Data-Assistant-Interface/internal/config"
	"github.com/behavioral-data/Data-Assistant-Interface/internal/runtime"
	grpcserver "github.com/behavioral-data/Data-Assistant-Interface/internal/server/grpc"
	httpserver "github.com/behavioral-data/Data-Assistant-Interface/internal/server/http"
	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

// Addrs holds the bound listener addresses; an empty field means that
// transport is disabled.
type Addrs struct {
	HTTP string
	GRPC string
}

type Options struct {
	Config cfgpkg.Config
	// Logger overrides the logger built from Config.Log.
	Logger logpkg.Logger
	// OnListening is called once every listener is bound.
	OnListening func(Addrs)
}

// Run starts the configured servers and blocks until ctx is cancelled or a
// server fails.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	procLogger := opts.Logger
	if procLogger == nil {
		l, err := buildLogger(cfg.Log)
		if err != nil {
			return err
		}
		procLogger = l
		if c, ok := l.(io.Closer); ok {
			defer func() {
				stdlog.SetOutput(os.Stderr)
				_ = c.Close()
			}()
		}
	}
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{Config: cfg, Logger: procLogger})
	if err != nil {
		return err
	}
	defer rt.Close()
	dir := rt.LogDir()
	if err := rt.CheckHealth(sctx); err != nil {
		procLogger.Warn("log directory is not usable yet", logpkg.Str("dir", dir), logpkg.Err(err))
	}

	var httpLis, grpcLis net.Listener
	if cfg.HTTPAddr != "" {
		if httpLis, err = net.Listen("tcp", cfg.HTTPAddr); err != nil {
			return fmt.Errorf("http listen: %w", err)
		}
	}
	if cfg.GRPCAddr != "" {
		if grpcLis, err = net.Listen("tcp", cfg.GRPCAddr); err != nil {
			if httpLis != nil {
				_ = httpLis.Close()
			}
			return fmt.Errorf("grpc listen: %w", err)
		}
	}

	var addrs Addrs
	if httpLis != nil {
		addrs.HTTP = httpLis.Addr().String()
	}
	if grpcLis != nil {
		addrs.GRPC = grpcLis.Addr().String()
	}
	procLogger.Info("Starting jupyterlab-log server",
		logpkg.Str("http", addrs.HTTP),
		logpkg.Str("grpc", addrs.GRPC),
		logpkg.Str("log_dir", dir),
		logpkg.Str("base_path", cfg.BasePath),
		logpkg.Str("fsync", cfg.FsyncMode().String()),
		logpkg.Bool("utc", cfg.UTC),
		logpkg.Bool("auth", cfg.Token != ""),
	)

	g, gctx := errgroup.WithContext(sctx)
	if httpLis != nil {
		hopts := httpserver.Options{
			BasePath:     cfg.BasePath,
			MaxBodyBytes: cfg.MaxBodyBytes,
			Token:        cfg.Token,
		}
		if cfg.MetricsEnabled {
			hopts.Metrics = rt.Metrics().Handler()
		}
		hsrv := httpserver.New(rt.Recorder(), procLogger, hopts)
		g.Go(func() error {
			if err := hsrv.Serve(gctx, httpLis); err != nil {
				return fmt.Errorf("http: %w", err)
			}
			return nil
		})
	}
	if grpcLis != nil {
		gsrv := grpcserver.New(rt.Recorder(), procLogger, grpcserver.Options{Token: cfg.Token})
		g.Go(func() error {
			if err := gsrv.Serve(gctx, grpcLis); err != nil {
				return fmt.Errorf("grpc: %w", err)
			}
			return nil
		})
	}
	if opts.OnListening != nil {
		opts.OnListening(addrs)
	}

	err = g.Wait()
	procLogger.Info("jupyterlab-log server stopped")
	return err
}

func buildLogger(lc cfgpkg.LogConfig) (logpkg.Logger, error) {
	c := &logpkg.Config{
		Level:    lc.Level,
		Format:   lc.Format,
		Outputs:  []logpkg.OutputConfig{{Type: "console"}},
		Redact:   lc.Redact,
		Sampling: lc.Sampling,
	}
	if lc.File != "" {
		c.Outputs = append(c.Outputs, logpkg.OutputConfig{Type: "file", Path: lc.File})
	}
	l, err := logpkg.ApplyConfig(c)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}
