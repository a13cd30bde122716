package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewAdminClient_Normalization(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"127.0.0.1:7171", "http://127.0.0.1:7171"},
		{"http://127.0.0.1:7171", "http://127.0.0.1:7171"},
		{"https://admin.example.com", "https://admin.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.server, func(t *testing.T) {
			client := NewAdminClient(tt.server)
			if client.BaseURL() != tt.want {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), tt.want)
			}
		})
	}
}

func TestAdminClient_Get(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	client := NewAdminClient(srv.URL)
	resp, err := client.Get(context.Background(), "/health")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	var body map[string]string
	if err := ParseResponse(resp, &body); err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}

	if gotPath != "/health" {
		t.Errorf("path = %q, want /health", gotPath)
	}
	if !strings.HasPrefix(gotUA, "keywire-cli/") {
		t.Errorf("User-Agent = %q, want keywire-cli prefix", gotUA)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
}

func TestParseResponse_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	resp, err := NewAdminClient(srv.URL).Get(context.Background(), "/stats")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	err = ParseResponse(resp, nil)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want the server's error message", err)
	}
}

func TestParseResponse_ErrorStatusWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := NewAdminClient(srv.URL).Get(context.Background(), "/missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	err = ParseResponse(resp, nil)
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want status code mention", err)
	}
}
