package runtime

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	cfgpkg "github.com/behavioral-data/Data-Assistant-Interface/internal/config"
	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

func quietLogger() logpkg.Logger {
	return logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
}

func TestOpenCloseHealth(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.LogDir = filepath.Join(t.TempDir(), "events")
	rt, err := Open(Options{Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	defer rt.Close()
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	if _, err := os.Stat(cfg.LogDir); !os.IsNotExist(err) {
		t.Fatalf("open must not create the log dir")
	}
	if rt.LogDir() != cfg.LogDir || rt.Config().LogDir != cfg.LogDir {
		t.Fatalf("unexpected dirs %s / %s", rt.LogDir(), rt.Config().LogDir)
	}
}

func TestRecordFeedsMetrics(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.LogDir = t.TempDir()
	rt, err := Open(Options{Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()

	if _, err := rt.Recorder().Record(context.Background(), []byte(`{"contextId":"nb"}`)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := rt.Recorder().Record(context.Background(), []byte(`{}`)); err == nil {
		t.Fatalf("expected rejection")
	}
	got, err := testutil.GatherAndCount(rt.Metrics().Registry(), "jupyterlab_log_events_appended_total")
	if err != nil || got != 1 {
		t.Fatalf("appended series: %d (%v)", got, err)
	}
	matches, _ := filepath.Glob(filepath.Join(cfg.LogDir, "logs_*_nb.jsonl"))
	if len(matches) != 1 {
		t.Fatalf("expected one log file, got %v", matches)
	}
}

func TestOpenRelativeDirIsResolved(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.LogDir = "relative/events"
	rt, err := Open(Options{Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !filepath.IsAbs(rt.LogDir()) {
		t.Fatalf("expected absolute dir, got %s", rt.LogDir())
	}
}
