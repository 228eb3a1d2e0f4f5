package grpcserver

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	jlogv1 "github.com/behavioral-data/Data-Assistant-Interface/api/jupyterlablog/v1"
	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

// Recorder is the part of *eventlog.Recorder the server depends on.
type Recorder interface {
	Record(ctx context.Context, body []byte) (eventlog.Ack, error)
	CheckHealth(ctx context.Context) error
}

// Options configures the gRPC server.
type Options struct {
	// Token, when set, must accompany every Record call as
	// "authorization: token <t>" metadata. Health checks stay open.
	Token string
}

// Server owns the gRPC server instance.
type Server struct {
	rec    Recorder
	logger logpkg.Logger
	grpc   *grpc.Server
	lis    net.Listener
}

// New constructs a gRPC server and registers services. Extra server options
// are applied after the built-in interceptors.
func New(rec Recorder, logger logpkg.Logger, o Options, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
	}
	logger = logger.WithComponent("grpc")
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(
		loggingInterceptor(logger),
		authInterceptor(o.Token),
	)}, opts...)
	s := &Server{rec: rec, logger: logger, grpc: grpc.NewServer(opts...)}
	jlogv1.RegisterEventLoggerServer(s.grpc, &eventLoggerSvc{rec: rec, logger: logger})
	healthpb.RegisterHealthServer(s.grpc, &healthSvc{rec: rec})
	return s
}

// ListenAndServe binds to addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is done, then stops gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.lis = l
	s.logger.Info("grpc listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.grpc.Serve(l) }()
	select {
	case <-ctx.Done():
		s.grpc.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the server and closes the listener.
func (s *Server) Close() {
	if s.grpc != nil {
		s.grpc.GracefulStop()
	}
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func loggingInterceptor(logger logpkg.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("grpc call",
			logpkg.Str("method", info.FullMethod),
			logpkg.Str("code", status.Code(err).String()),
			logpkg.Duration("elapsed", time.Since(start)),
		)
		return resp, err
	}
}
