// Package grpcserver hosts the gRPC transport for the event logger. It
// registers jupyterlablog.v1.EventLogger, whose Record method takes an event
// as a google.protobuf.Struct, and the standard grpc.health.v1.Health service
// backed by the recorder's health check.
//
// Example:
//
//	rec, _ := eventlog.New(eventlog.Options{Dir: ".event_logs"})
//	s := grpcserver.New(rec, logger, grpcserver.Options{Token: token})
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":50051")
package grpcserver
