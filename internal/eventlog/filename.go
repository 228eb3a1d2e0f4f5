package eventlog

import (
	"strings"
	"time"
)

const (
	// DefaultDir is the log directory used when none is configured. Relative
	// paths are resolved against the process working directory.
	DefaultDir = ".event_logs"

	fileNamePrefix = "logs_"
	fileNameExt    = ".jsonl"
	dateLayout     = "2006-01-02"
)

// Both separators are replaced on every platform so a file name means the
// same thing wherever the logs are copied.
var contextIDReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")

// SanitizeContextID makes a contextId safe to embed in a file name.
func SanitizeContextID(id string) string {
	return contextIDReplacer.Replace(id)
}

// FileName returns the log file name for contextID on t's calendar date.
func FileName(t time.Time, contextID string) string {
	return fileNamePrefix + t.Format(dateLayout) + "_" + SanitizeContextID(contextID) + fileNameExt
}
