// Package client provides the `jupyterlab-log` command-line client.
//
// The CLI submits events to a running server over HTTP or gRPC. It is
// primarily intended for operators checking a deployment and for scripting
// test traffic.
//
// # Address configuration
//
// The HTTP base URL is read from JLOG_URL (default http://127.0.0.1:8888)
// and the gRPC address from JLOG_GRPC_ADDR (default 127.0.0.1:50051). Both
// can be overridden with --url and --grpc-addr.
//
// Usage
//
//	jupyterlab-log send --context-id nb-42 --data '{"eventName":"cell_run"}'
//
//	jupyterlab-log send --context-id nb-42 --field eventName=save --field user=ana
//
//	# Same event over gRPC
//	jupyterlab-log send --transport grpc --context-id nb-42 --data '{"eventName":"cell_run"}'
//
//	# Server mounted under a Jupyter base URL with a token
//	jupyterlab-log send --base-path /user/ana/ --token "$JUPYTER_TOKEN" --context-id nb-42
package client
