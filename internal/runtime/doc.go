// Package runtime wires the event recorder, its Prometheus collector and the
// resolved configuration into a single instance shared by the HTTP and gRPC
// transports.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{Config: config.Default()})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	_, _ = rt.Recorder().Record(context.Background(), []byte(`{"contextId":"nb"}`))
package runtime
