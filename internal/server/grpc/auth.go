package grpcserver

import (
	"context"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	jlogv1 "github.com/behavioral-data/Data-Assistant-Interface/api/jupyterlablog/v1"
)

// authInterceptor rejects Record calls whose authorization metadata does not
// carry token. An empty token disables the check.
func authInterceptor(token string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if token == "" || info.FullMethod != jlogv1.RecordMethod {
			return handler(ctx, req)
		}
		if subtle.ConstantTimeCompare([]byte(metadataToken(ctx)), []byte(token)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}
		return handler(ctx, req)
	}
}

// metadataToken accepts the same "token <t>" and "bearer <t>" forms as the
// HTTP Authorization header.
func metadataToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, v := range md.Get("authorization") {
		scheme, value, ok := strings.Cut(v, " ")
		if ok && (strings.EqualFold(scheme, "token") || strings.EqualFold(scheme, "bearer")) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
