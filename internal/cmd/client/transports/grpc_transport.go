// Package transports provides pluggable transport implementations for the CLI.
package transports

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	jlogv1 "github.com/behavioral-data/Data-Assistant-Interface/api/jupyterlablog/v1"
)

// GrpcTransport implements EventsTransport over gRPC.
type GrpcTransport struct {
	dial  func(ctx context.Context) (*grpc.ClientConn, error)
	token string
}

// NewGrpcTransport constructs a new GrpcTransport using the provided dialer.
// A non-empty token is sent as "authorization: token <t>" metadata.
func NewGrpcTransport(dial func(ctx context.Context) (*grpc.ClientConn, error), token string) *GrpcTransport {
	return &GrpcTransport{dial: dial, token: token}
}

func (t *GrpcTransport) withClient(ctx context.Context, fn func(cli jlogv1.EventLoggerClient) error) error {
	conn, err := t.dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return fn(jlogv1.NewEventLoggerClient(conn))
}

// Send records an event via gRPC. The event must be a JSON object.
func (t *GrpcTransport) Send(ctx context.Context, event []byte) (Ack, error) {
	in := &structpb.Struct{}
	if err := protojson.Unmarshal(event, in); err != nil {
		return Ack{}, fmt.Errorf("event is not a JSON object: %w", err)
	}
	if t.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "token "+t.token)
	}
	var ack Ack
	err := t.withClient(ctx, func(cli jlogv1.EventLoggerClient) error {
		res, err := cli.Record(ctx, in)
		if err != nil {
			if st, ok := status.FromError(err); ok {
				return &StatusError{Code: st.Code().String(), Message: st.Message()}
			}
			return err
		}
		ack.Status = res.GetFields()["status"].GetStringValue()
		ack.Msg = res.GetFields()["msg"].GetStringValue()
		return nil
	})
	return ack, err
}
