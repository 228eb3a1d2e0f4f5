package eventlog

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logpkg "github.com/behavioral-data/Data-Assistant-Interface/pkg/log"
)

var fixedNow = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func newTestRecorder(t *testing.T, dir string, opts ...func(*Options)) *Recorder {
	t.Helper()
	o := Options{
		Dir:    dir,
		Now:    func() time.Time { return fixedNow },
		Logger: logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{})),
	}
	for _, fn := range opts {
		fn(&o)
	}
	rec, err := New(o)
	require.NoError(t, err)
	return rec
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNewRequiresDir(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestRecordAppendsLine(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".event_logs")
	rec := newTestRecorder(t, dir)

	body := `{"contextId": "nb/cell1", "action": "add_comment", "text": "hi"}`
	ack, err := rec.Record(context.Background(), []byte(body))
	require.NoError(t, err)
	assert.Equal(t, Ack{Status: "ok", Msg: "done!"}, ack)

	path := filepath.Join(dir, "logs_2024-03-05_nb_cell1.jsonl")
	lines := readLines(t, path)
	require.Len(t, lines, 1)

	var got, want map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	require.NoError(t, json.Unmarshal([]byte(body), &want))
	assert.Equal(t, want, got)
}

func TestRecordPreservesKeyOrderAndNumbers(t *testing.T) {
	dir := t.TempDir()
	rec := newTestRecorder(t, dir)

	body := "{\n  \"zeta\": 1.50,\n  \"contextId\": \"c1\",\n  \"alpha\": [1, 2e3, {\"b\": null, \"a\": true}]\n}"
	_, err := rec.Record(context.Background(), []byte(body))
	require.NoError(t, err)

	lines := readLines(t, filepath.Join(dir, "logs_2024-03-05_c1.jsonl"))
	require.Len(t, lines, 1)
	assert.Equal(t, `{"zeta":1.50,"contextId":"c1","alpha":[1,2e3,{"b":null,"a":true}]}`, lines[0])
}

func TestRecordSequentialSameContext(t *testing.T) {
	dir := t.TempDir()
	rec := newTestRecorder(t, dir)

	first := `{"contextId":"c1","event":"click","n":1}`
	second := `{"contextId":"c1","event":"refresh","n":2}`
	for _, body := range []string{first, second} {
		_, err := rec.Record(context.Background(), []byte(body))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"logs_2024-03-05_c1.jsonl"}, listDir(t, dir))
	lines := readLines(t, filepath.Join(dir, "logs_2024-03-05_c1.jsonl"))
	assert.Equal(t, []string{first, second}, lines)
	for _, l := range lines {
		assert.True(t, json.Valid([]byte(l)))
	}
}

func TestRecordRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind Kind
		is   error
	}{
		{"empty", "", KindEmptyBody, ErrEmptyBody},
		{"whitespace", "   ", KindMalformedPayload, ErrMalformedPayload},
		{"not json", "contextId=c1", KindMalformedPayload, ErrMalformedPayload},
		{"truncated", `{"contextId":"c1"`, KindMalformedPayload, ErrMalformedPayload},
		{"trailing data", `{"contextId":"c1"} {}`, KindMalformedPayload, ErrMalformedPayload},
		{"array", `[{"contextId":"c1"}]`, KindMalformedPayload, ErrMalformedPayload},
		{"string", `"c1"`, KindMalformedPayload, ErrMalformedPayload},
		{"null", `null`, KindMalformedPayload, ErrMalformedPayload},
		{"invalid utf8", "{\"contextId\":\"c\xff\"}", KindMalformedPayload, ErrMalformedPayload},
		{"missing contextId", `{"action":"x"}`, KindMissingField, ErrMissingField},
		{"numeric contextId", `{"contextId":42}`, KindInvalidField, ErrInvalidField},
		{"null contextId", `{"contextId":null}`, KindInvalidField, ErrInvalidField},
		{"object contextId", `{"contextId":{"path":"a"}}`, KindInvalidField, ErrInvalidField},
		{"empty contextId", `{"contextId":""}`, KindInvalidField, ErrInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "logs")
			rec := newTestRecorder(t, dir)

			_, err := rec.Record(context.Background(), []byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.ErrorIs(t, err, tt.is)
			assert.True(t, IsClientError(err))

			_, statErr := os.Stat(dir)
			assert.True(t, errors.Is(statErr, os.ErrNotExist), "no directory or file should be created")
		})
	}
}

func TestRecordSanitizesContextID(t *testing.T) {
	dir := t.TempDir()
	rec := newTestRecorder(t, dir)

	ids := []string{"a/b/c", "../../etc/passwd", `win\path`, "/leading"}
	for _, id := range ids {
		body, err := json.Marshal(map[string]string{"contextId": id})
		require.NoError(t, err)
		_, err = rec.Record(context.Background(), body)
		require.NoError(t, err)
	}

	names := listDir(t, dir)
	assert.ElementsMatch(t, []string{
		"logs_2024-03-05_a_b_c.jsonl",
		"logs_2024-03-05_.._.._etc_passwd.jsonl",
		"logs_2024-03-05_win_path.jsonl",
		"logs_2024-03-05__leading.jsonl",
	}, names)
	for _, n := range names {
		assert.NotContains(t, n, "/")
	}
}

func TestRecordUsesCurrentDate(t *testing.T) {
	dir := t.TempDir()
	now := fixedNow
	rec := newTestRecorder(t, dir, func(o *Options) { o.Now = func() time.Time { return now } })

	_, err := rec.Record(context.Background(), []byte(`{"contextId":"c1"}`))
	require.NoError(t, err)
	now = now.Add(24 * time.Hour)
	_, err = rec.Record(context.Background(), []byte(`{"contextId":"c1"}`))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"logs_2024-03-05_c1.jsonl", "logs_2024-03-06_c1.jsonl"}, listDir(t, dir))
}

func TestPathForUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2024, 3, 6, 7, 0, 0, 0, loc) // 2024-03-05 21:00 UTC

	local := newTestRecorder(t, "/logs")
	assert.Equal(t, filepath.Join("/logs", "logs_2024-03-06_c.jsonl"), local.PathFor(late, "c"))

	utc := newTestRecorder(t, "/logs", func(o *Options) { o.UTC = true })
	assert.Equal(t, filepath.Join("/logs", "logs_2024-03-05_c.jsonl"), utc.PathFor(late, "c"))
}

func TestRecordConcurrentMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".event_logs")
	rec := newTestRecorder(t, dir, func(o *Options) { o.Fsync = FsyncModeAlways })

	const n = 64
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"contextId":"ctx-%d","seq":%d,"pad":%q}`, i%4, i, strings.Repeat("x", 4096))
			_, err := rec.Record(context.Background(), []byte(body))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	names := listDir(t, dir)
	require.Len(t, names, 4)
	seen := map[float64]bool{}
	for _, name := range names {
		for _, line := range readLines(t, filepath.Join(dir, name)) {
			var obj map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &obj), "line must be intact: %.60s", line)
			seen[obj["seq"].(float64)] = true
		}
	}
	assert.Len(t, seen, n)
	assert.Zero(t, rec.locks.size())
}

func TestRecordIOFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	metrics := &countingMetrics{}
	rec := newTestRecorder(t, blocker, func(o *Options) { o.Metrics = metrics })

	_, err := rec.Record(context.Background(), []byte(`{"contextId":"c1"}`))
	require.Error(t, err)
	assert.Equal(t, KindIOFailure, KindOf(err))
	assert.ErrorIs(t, err, ErrIOFailure)
	assert.False(t, IsClientError(err))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, blocker, e.Path)
	assert.Equal(t, 1, metrics.failures)
}

// interleavedFile simulates another process appending to the same file just
// before this writer's own write fails partway through.
type interleavedFile struct {
	*os.File
	other string
}

func (f *interleavedFile) Write(p []byte) (int, error) {
	o, err := os.OpenFile(f.Name(), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	_, err = o.WriteString(f.other)
	o.Close()
	if err != nil {
		return 0, err
	}
	n, _ := f.File.Write(p[:len(p)/2])
	return n, errors.New("disk full")
}

func TestRecordWriteFailureKeepsOtherWriters(t *testing.T) {
	dir := t.TempDir()
	rec := newTestRecorder(t, dir)
	other := `{"contextId":"c1","from":"elsewhere"}` + "\n"
	rec.openFile = func(path string) (appendFile, error) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		return &interleavedFile{File: f, other: other}, nil
	}

	_, err := rec.Record(context.Background(), []byte(`{"contextId":"c1","from":"here"}`))
	require.Error(t, err)
	assert.Equal(t, KindIOFailure, KindOf(err))

	data, err := os.ReadFile(rec.PathFor(fixedNow, "c1"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), other), "other writer's line lost: %q", data)
}

func TestRecordCanceledContext(t *testing.T) {
	dir := t.TempDir()
	rec := newTestRecorder(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rec.Record(ctx, []byte(`{"contextId":"c1"}`))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, listDir(t, dir))
}

func TestRecordMetrics(t *testing.T) {
	metrics := &countingMetrics{}
	rec := newTestRecorder(t, t.TempDir(), func(o *Options) { o.Metrics = metrics })

	_, _ = rec.Record(context.Background(), []byte(`{"contextId":"c1"}`))
	_, _ = rec.Record(context.Background(), nil)
	_, _ = rec.Record(context.Background(), []byte(`{}`))

	assert.Equal(t, 1, metrics.appends)
	assert.Equal(t, len(`{"contextId":"c1"}`)+1, metrics.bytes)
	assert.Equal(t, map[Kind]int{KindEmptyBody: 1, KindMissingField: 1}, metrics.rejected)
}

func TestCheckHealth(t *testing.T) {
	base := t.TempDir()

	missing := newTestRecorder(t, filepath.Join(base, "a", "b"))
	require.NoError(t, missing.CheckHealth(context.Background()))
	_, err := os.Stat(filepath.Join(base, "a"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "health check must not create directories")

	file := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	blocked := newTestRecorder(t, filepath.Join(file, "logs"))
	require.Error(t, blocked.CheckHealth(context.Background()))
}

type countingMetrics struct {
	mu       sync.Mutex
	appends  int
	bytes    int
	failures int
	rejected map[Kind]int
}

func (m *countingMetrics) ObserveAppend(_ time.Duration, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appends++
	m.bytes += n
}

func (m *countingMetrics) ObserveRejected(k Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejected == nil {
		m.rejected = map[Kind]int{}
	}
	m.rejected[k]++
}

func (m *countingMetrics) ObserveFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		body     string
		expected string
	}{
		{"", "no body provided"},
		{`[1]`, "invalid JSON body"},
		{`{"x":1}`, "no contextId provided"},
		{`{"contextId":7}`, "contextId must be a non-empty string"},
	}
	rec := newTestRecorder(t, t.TempDir())
	for _, tt := range tests {
		_, err := rec.Record(context.Background(), []byte(tt.body))
		require.Error(t, err, tt.body)
		assert.Equal(t, tt.expected, PublicMessage(err), tt.body)
	}

	io := ioFailure("/secret/path", os.ErrPermission)
	assert.Equal(t, "failed to record event", PublicMessage(io))
	assert.NotContains(t, PublicMessage(io), "/secret")
}
