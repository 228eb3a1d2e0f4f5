package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/behavioral-data/Data-Assistant-Interface/internal/server/http/controllers"
	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

// Options configures the HTTP surface.
type Options struct {
	BasePath     string
	MaxBodyBytes int64
	Token        string
	// Metrics, when non-nil, is served at /metrics.
	Metrics http.Handler
}

type Server struct {
	srv    *http.Server
	lis    net.Listener
	logger logpkg.Logger
}

func New(rec controllers.Recorder, logger logpkg.Logger, opts Options) *Server {
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
	}
	logger = logger.WithComponent("http")

	mux := http.NewServeMux()
	registry := controllers.NewControllerRegistry(rec, logger, controllers.Config{
		BasePath:     opts.BasePath,
		MaxBodyBytes: opts.MaxBodyBytes,
		Token:        opts.Token,
		Metrics:      opts.Metrics,
	})
	registry.RegisterAllRoutes(mux)

	handler := otelhttp.NewHandler(requestID(accessLog(logger, cors(mux))), "jupyterlab-log")
	return &Server{
		logger: logger,
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          logpkg.ToStdLogger(logger, logpkg.WarnLevel),
		},
	}
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is done, then shuts down,
// letting in-flight appends finish.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.lis = l
	s.logger.Info("http listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}
