package eventlog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

// Ack is returned for every accepted event.
type Ack struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// OK is the acknowledgement returned by Record on success.
var OK = Ack{Status: "ok", Msg: "done!"}

// Recorder appends events to per-context, per-day JSONL files.
type Recorder struct {
	dir     string
	fsync   FsyncMode
	utc     bool
	now     func() time.Time
	metrics MetricsHook
	logger  logpkg.Logger

	locks keyedMutex
	// openFile opens path for appending; replaced in tests.
	openFile func(path string) (appendFile, error)
}

type appendFile interface {
	Write(p []byte) (int, error)
	Sync() error
	Close() error
}

func openAppend(path string) (appendFile, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// New returns a Recorder writing under opts.Dir. The directory itself is
// created lazily by the first append.
func New(opts Options) (*Recorder, error) {
	if opts.Dir == "" {
		return nil, errors.New("eventlog: Options.Dir is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetrics{}
	}
	if opts.Logger == nil {
		opts.Logger = logpkg.NewLogger()
	}
	return &Recorder{
		dir:     filepath.Clean(opts.Dir),
		fsync:   opts.Fsync,
		utc:     opts.UTC,
		now:     opts.Now,
		metrics: opts.Metrics,
		logger:  opts.Logger.With(logpkg.Component("eventlog")),

		openFile: openAppend,
	}, nil
}

// Dir returns the log directory.
func (r *Recorder) Dir() string { return r.dir }

// PathFor returns the file an event for contextID received at t goes to.
func (r *Recorder) PathFor(t time.Time, contextID string) string {
	if r.utc {
		t = t.UTC()
	}
	return filepath.Join(r.dir, FileName(t, contextID))
}

// Record validates body and appends it as one line to the file for its
// contextId and today's date. All failures are *Error values; only
// KindIOFailure leaves the caller blameless (see IsClientError).
func (r *Recorder) Record(ctx context.Context, body []byte) (Ack, error) {
	start := time.Now()
	ev, err := decodeEvent(body)
	if err != nil {
		r.metrics.ObserveRejected(KindOf(err))
		return Ack{}, err
	}
	if err := ctx.Err(); err != nil {
		return Ack{}, err
	}

	path := r.PathFor(r.now(), ev.contextID)
	if err := r.append(path, ev.line); err != nil {
		r.metrics.ObserveFailure()
		r.logger.Error("append failed",
			logpkg.Str("path", path),
			logpkg.Str("context_id", ev.contextID),
			logpkg.Err(errors.Unwrap(err)),
		)
		return Ack{}, err
	}
	r.metrics.ObserveAppend(time.Since(start), len(ev.line))
	r.logger.Debug("event recorded",
		logpkg.Str("path", path),
		logpkg.Int("bytes", len(ev.line)),
	)
	return OK, nil
}

func (r *Recorder) append(path string, line []byte) (err error) {
	// MkdirAll treats an existing directory as success, so racing callers
	// all pass.
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return ioFailure(r.dir, err)
	}

	unlock := r.locks.Lock(path)
	defer unlock()

	f, err := r.openFile(path)
	if err != nil {
		return ioFailure(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ioFailure(path, cerr)
		}
	}()

	// A single O_APPEND write; a failed write is reported but never rolled
	// back, since other processes may have appended past our offset.
	if _, err := f.Write(line); err != nil {
		return ioFailure(path, err)
	}
	if r.fsync == FsyncModeAlways {
		if err := f.Sync(); err != nil {
			return ioFailure(path, err)
		}
	}
	return nil
}

// CheckHealth reports whether appends can be expected to succeed: the log
// directory, or its nearest existing ancestor, must be a directory. It never
// creates anything.
func (r *Recorder) CheckHealth(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := r.dir
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("eventlog: %s is not a directory", dir)
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("eventlog: stat %s: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return fmt.Errorf("eventlog: no existing ancestor for %s", r.dir)
		}
		dir = parent
	}
}
