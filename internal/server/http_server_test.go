package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

type refusingListener struct {
	addr net.Addr
}

func (l *refusingListener) Accept() (net.Conn, error) { return nil, errors.New("listener closed") }
func (l *refusingListener) Close() error              { return nil }
func (l *refusingListener) Addr() net.Addr            { return l.addr }

func TestNetHTTPServerServesOnInjectedListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	s := netHTTPServer{srv: &http.Server{Handler: mux}, listener: ln}

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("expected ok, got %q", body)
	}

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("serve did not return after shutdown")
	}
}

func TestNetHTTPServerReportsListenerFailure(t *testing.T) {
	l := &refusingListener{addr: &net.TCPAddr{IP: net.IPv4zero}}
	s := netHTTPServer{srv: &http.Server{Handler: http.NewServeMux()}, listener: l}

	if err := s.ListenAndServe(); err == nil {
		t.Fatal("expected serve error from refusing listener")
	}
}

func TestNetHTTPServerExposesAddrAndHandler(t *testing.T) {
	handler := http.NewServeMux()
	s := netHTTPServer{srv: &http.Server{Addr: ":4000", Handler: handler}}

	if s.Addr() != ":4000" {
		t.Fatalf("expected :4000, got %q", s.Addr())
	}
	if s.Handler() != handler {
		t.Fatal("expected handler passthrough")
	}
}
