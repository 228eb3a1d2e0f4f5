// Package httpserver exposes the event logger over HTTP. Events are POSTed to
// <base>/jupyterlab-log/log; /healthz and /metrics sit at the root.
//
// Example:
//
//	rec, _ := eventlog.New(eventlog.Options{Dir: ".event_logs"})
//	s := httpserver.New(rec, logger, httpserver.Options{BasePath: "/"})
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":8888")
package httpserver
