package eventlog

import (
	"fmt"
	"strings"
	"time"

	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

// FsyncMode defines durability behavior for appends.
type FsyncMode int

const (
	// FsyncModeNever closes the file after each append and leaves flushing
	// to the OS.
	FsyncModeNever FsyncMode = iota
	// FsyncModeAlways fsyncs the file before the append is acknowledged.
	FsyncModeAlways
)

func (m FsyncMode) String() string {
	switch m {
	case FsyncModeAlways:
		return "always"
	case FsyncModeNever:
		return "never"
	default:
		return fmt.Sprintf("FsyncMode(%d)", int(m))
	}
}

// ParseFsyncMode accepts "always" or "never" (empty means never).
func ParseFsyncMode(s string) (FsyncMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "never":
		return FsyncModeNever, nil
	case "always":
		return FsyncModeAlways, nil
	default:
		return FsyncModeNever, fmt.Errorf("invalid fsync mode %q; use always|never", s)
	}
}

// Options configures a Recorder.
type Options struct {
	// Dir is the log directory. Required.
	Dir string
	// Fsync determines whether appends are fsynced before acknowledging.
	Fsync FsyncMode
	// UTC selects the UTC calendar date for file names instead of local time.
	UTC bool
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
	// Metrics observes appends and rejections. Optional.
	Metrics MetricsHook
	// Logger receives IO failure details. Optional.
	Logger logpkg.Logger
}

// MetricsHook is a minimal hook surface for recorder observations.
type MetricsHook interface {
	ObserveAppend(elapsed time.Duration, bytes int)
	ObserveRejected(kind Kind)
	ObserveFailure()
}

// NoopMetrics is used when no metrics hook is provided.
type NoopMetrics struct{}

func (NoopMetrics) ObserveAppend(time.Duration, int) {}
func (NoopMetrics) ObserveRejected(Kind)             {}
func (NoopMetrics) ObserveFailure()                  {}
