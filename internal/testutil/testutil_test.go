package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/divisions"
	domainathletes "github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/snapshots"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesCoverEveryDivision(t *testing.T) {
	seen := make(map[divisions.Division]bool)
	for _, a := range SampleAthletes() {
		if !domainathletes.Validate(a).Valid {
			t.Fatalf("expected valid fixture %+v", a)
		}
		seen[divisions.Classify(a.College).Division] = true
	}
	for _, d := range divisions.AllDivisions() {
		if !seen[d] {
			t.Fatalf("expected a fixture classified as %s", d)
		}
	}
}

func TestNewAthleteService(t *testing.T) {
	svc := NewAthleteService(SampleAthletes())
	if svc.Count() != len(SampleAthletes()) {
		t.Fatalf("expected preloaded athletes, got %d", svc.Count())
	}
	if got := NewAthleteService(nil).Count(); got != 0 {
		t.Fatalf("expected empty service, got %d", got)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", JSONBody(t, map[string]string{"a": "b"}))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestSnippetTruncatesLongBodies(t *testing.T) {
	if got := snippet(strings.Repeat("x", 600)); len(got) != 259 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated snippet, got %d chars", len(got))
	}
	if got := snippet("short"); got != "short" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestSnapshotHelpers(t *testing.T) {
	w := NewTempWriter(t, 5)
	date := time.Now().UTC().Format(time.DateOnly)
	WriteSnapshot(t, w, date)
	data, err := os.ReadFile(SnapshotPath(w, date))
	if err != nil {
		t.Fatalf("expected snapshot file, got %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected snapshot contents")
	}

	snap, err := snapshots.NewFSStore(w.BasePath()).LoadDirectory(date)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snap.Count != len(SampleAthletes()) {
		t.Fatalf("expected %d athletes, got %d", len(SampleAthletes()), snap.Count)
	}
}

func TestWriteSnapshotPayloadHandlesNilWriter(t *testing.T) {
	if err := writeSnapshotPayload(nil, "2024-01-01"); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubRefresher{Err: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); err == nil {
		t.Fatalf("expected listen error")
	}
	_ = e.Shutdown(context.Background())
	if e.Addr() == "" || e.ShutdownCalls != 1 {
		t.Fatalf("unexpected ErrHTTPServer state %+v", e)
	}

	c := &CloseableHTTPServer{}
	if err := c.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
	_ = c.Shutdown(context.Background())
	if c.Addr() == "" || c.ShutdownCalls != 1 {
		t.Fatalf("unexpected CloseableHTTPServer state %+v", c)
	}

	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}
