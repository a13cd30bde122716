package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/keywire-go/internal/store"
	"github.com/yndnr/keywire-go/internal/telemetry/logger"
	"github.com/yndnr/keywire-go/internal/telemetry/metric"
)

type fakeConns int

func (f fakeConns) ConnCount() int { return int(f) }

func quietLogger(t *testing.T) logger.Logger {
	t.Helper()

	log, err := logger.New(logger.Config{Level: "error", Format: "json", Output: io.Discard})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func newTestRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()

	st := store.New()
	m := metric.New()
	m.RegisterStore(st)

	router := NewRouter(&RouterConfig{
		Store:     st,
		Conns:     fakeConns(2),
		Metrics:   m,
		Logger:    quietLogger(t),
		StartTime: time.Now().Add(-3 * time.Second),
	})
	return router, st
}

// ============================================================
// Route tests
// ============================================================

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
}

func TestRouter_Stats(t *testing.T) {
	router, st := newTestRouter(t)
	st.Set("a", "1")
	st.Set("b", "2")
	st.Set("c", "3")

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stats")
	if err != nil {
		t.Fatalf("GET /stats: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if body.Status != "running" {
		t.Errorf("Status = %q, want running", body.Status)
	}
	if body.Keys != 3 {
		t.Errorf("Keys = %d, want 3", body.Keys)
	}
	if body.Connections != 2 {
		t.Errorf("Connections = %d, want 2", body.Connections)
	}
	if body.Shards == 0 {
		t.Error("Shards should be reported")
	}
	if body.UptimeSeconds < 3 {
		t.Errorf("UptimeSeconds = %d, want >= 3", body.UptimeSeconds)
	}
	if body.Build.GoVersion == "" {
		t.Error("Build.GoVersion should be set")
	}
}

func TestRouter_Metrics(t *testing.T) {
	router, st := newTestRouter(t)
	st.Set("only", "key")

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "keywire_store_keys 1") {
		t.Errorf("metrics output missing store gauge:\n%s", body)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/health", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

// ============================================================
// Middleware tests
// ============================================================

func TestRequestID_KeepsClientID(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "req-custom-1")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "req-custom-1" {
		t.Errorf("X-Request-ID = %q, want req-custom-1", got)
	}
}

func TestRecover_PanicReturns500(t *testing.T) {
	h := Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}),
		RequestID(), Recover(quietLogger(t)),
	)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "192.0.2.1:5555", nil, "192.0.2.1"},
		{"ipv6 remote addr", "[::1]:8080", nil, "::1"},
		{"x-forwarded-for", "192.0.2.1:5555", map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.1"}, "198.51.100.7"},
		{"x-real-ip", "192.0.2.1:5555", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/stats", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
