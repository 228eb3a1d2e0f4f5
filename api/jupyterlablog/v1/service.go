// Package jupyterlablogv1 defines the jupyterlablog.v1.EventLogger gRPC
// service. Events travel as google.protobuf.Struct, so no generated message
// types are needed; the descriptor below is what protoc-gen-go-grpc would
// emit for:
//
//	service EventLogger {
//	  rpc Record(google.protobuf.Struct) returns (google.protobuf.Struct);
//	}
package jupyterlablogv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully-qualified gRPC service name.
	ServiceName = "jupyterlablog.v1.EventLogger"
	// RecordMethod is the full method name of EventLogger.Record.
	RecordMethod = "/" + ServiceName + "/Record"
)

// EventLoggerServer is the server API for the EventLogger service.
type EventLoggerServer interface {
	// Record appends one event. The reply carries "status" and "msg".
	Record(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedEventLoggerServer can be embedded for forward compatibility.
type UnimplementedEventLoggerServer struct{}

func (UnimplementedEventLoggerServer) Record(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Record not implemented")
}

// RegisterEventLoggerServer registers srv on s.
func RegisterEventLoggerServer(s grpc.ServiceRegistrar, srv EventLoggerServer) {
	s.RegisterService(&EventLoggerServiceDesc, srv)
}

func recordHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EventLoggerServer).Record(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RecordMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EventLoggerServer).Record(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// EventLoggerServiceDesc is the grpc.ServiceDesc for the EventLogger service.
var EventLoggerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EventLoggerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Record",
			Handler:    recordHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jupyterlablog/v1/eventlog.proto",
}

// EventLoggerClient is the client API for the EventLogger service.
type EventLoggerClient interface {
	Record(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type eventLoggerClient struct {
	cc grpc.ClientConnInterface
}

// NewEventLoggerClient returns a client bound to cc.
func NewEventLoggerClient(cc grpc.ClientConnInterface) EventLoggerClient {
	return &eventLoggerClient{cc: cc}
}

func (c *eventLoggerClient) Record(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RecordMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
