// ABOUTME: Tests for the tracker API client
// ABOUTME: Uses httptest to verify credential attachment and error mapping

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequest_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("secret-token")

	if _, err := c.Request(context.Background(), http.MethodGet, "/projects", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected Bearer secret-token, got %q", gotAuth)
	}
}

func TestRequest_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Request(context.Background(), http.MethodGet, "/projects", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestRequest_TokenChangeAppliesToNextCall(t *testing.T) {
	var headers []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("first")
	c.Request(context.Background(), http.MethodGet, "/projects", nil)
	c.SetToken("second")
	c.Request(context.Background(), http.MethodGet, "/projects", nil)
	c.ClearToken()
	c.Request(context.Background(), http.MethodGet, "/projects", nil)

	expected := []string{"Bearer first", "Bearer second", ""}
	if len(headers) != len(expected) {
		t.Fatalf("expected %d requests, got %d", len(expected), len(headers))
	}
	for i := range expected {
		if headers[i] != expected[i] {
			t.Errorf("request %d: expected %q, got %q", i, expected[i], headers[i])
		}
	}
}

func TestRequest_VersionedBasePath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.Request(context.Background(), http.MethodGet, "/projects", nil)
	if gotPath != "/api/v1/projects" {
		t.Errorf("expected /api/v1/projects, got %q", gotPath)
	}
}

func TestRequest_ErrorDetailExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid email or password"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Request(context.Background(), http.MethodPost, "/auth/login", map[string]string{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.Status)
	}
	if apiErr.Detail != "Invalid email or password" {
		t.Errorf("expected server detail, got %q", apiErr.Detail)
	}
	if !apiErr.IsAuth() {
		t.Error("expected IsAuth to be true for 401")
	}
}

func TestRequest_ErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Request(context.Background(), http.MethodGet, "/projects", nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Error() != "server returned status 500" {
		t.Errorf("unexpected message: %q", apiErr.Error())
	}
}

func TestRequest_NetworkError(t *testing.T) {
	// Closed server: connection refused, no HTTP response.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL)
	_, err := c.Request(context.Background(), http.MethodGet, "/projects", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
}

func TestRequest_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL)
	data, err := c.Request(context.Background(), http.MethodDelete, "/projects/p1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil body for 204, got %q", data)
	}
}

func TestGetJSON_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"p1","name":"Launch"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.GetJSON(context.Background(), "/projects/p1", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "Launch" {
		t.Errorf("expected Launch, got %q", out.Name)
	}
}
