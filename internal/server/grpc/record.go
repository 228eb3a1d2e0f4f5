package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	jlogv1 "github.com/behavioral-data/Data-Assistant-Interface/api/jupyterlablog/v1"
	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

type eventLoggerSvc struct {
	jlogv1.UnimplementedEventLoggerServer
	rec    Recorder
	logger logpkg.Logger
}

func (s *eventLoggerSvc) Record(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	body, err := protojson.Marshal(in)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "encode event: %v", err)
	}
	ack, err := s.rec.Record(ctx, body)
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{"status": ack.Status, "msg": ack.Msg})
}

func toStatus(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	if eventlog.IsClientError(err) {
		return status.Error(codes.InvalidArgument, eventlog.PublicMessage(err))
	}
	return status.Error(codes.Internal, eventlog.PublicMessage(err))
}
