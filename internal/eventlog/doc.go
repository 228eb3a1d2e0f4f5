// Package eventlog implements the event recorder behind the
// jupyterlab-log endpoint.
//
// # Overview
//
// A Recorder accepts the raw bytes of an event (a JSON object carrying a
// "contextId" string), and appends it as one line to a per-context, per-day
// file in its log directory:
//
//	<dir>/logs_<YYYY-MM-DD>_<sanitized contextId>.jsonl
//
// The payload is written verbatim apart from insignificant whitespace, so key
// order and number formatting survive. The file on disk is the only state.
//
// # Concurrency
//
// Each line goes out in a single write on a file opened with O_APPEND.
// Writers inside one process are additionally serialized per path. A failed
// write is reported and never rolled back, because other processes may have
// appended after it. Appends to different files never contend.
//
// # Usage
//
//	rec, _ := eventlog.New(eventlog.Options{Dir: ".event_logs"})
//	ack, err := rec.Record(ctx, []byte(`{"contextId":"nb/cell1","action":"add_comment"}`))
//	if eventlog.IsClientError(err) {
//	    // 400
//	}
package eventlog
