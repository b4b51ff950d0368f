package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSONDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 42}`))
	}))
	defer srv.Close()

	base := NewBaseClient(srv.URL, NewDefaultHTTPClient(time.Second))
	var out struct {
		ID int64 `json:"id"`
	}
	if err := base.DoJSON(context.Background(), http.MethodGet, "/thing", "tok-1", nil, &out, nil); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if out.ID != 42 {
		t.Fatalf("id = %d, want 42", out.ID)
	}
}

func TestDoJSONExtractsMessageFromErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "vehicle already booked"}`))
	}))
	defer srv.Close()

	base := NewBaseClient(srv.URL, NewDefaultHTTPClient(time.Second))
	err := base.DoJSON(context.Background(), http.MethodPost, "/bookings", "tok", map[string]int{"x": 1}, nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "vehicle already booked" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestDoJSONFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	base := NewBaseClient(srv.URL, NewDefaultHTTPClient(time.Second))
	err := base.DoJSON(context.Background(), http.MethodGet, "/x", "", nil, nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if apiErr.Message != "request failed" {
		t.Fatalf("message = %q, want generic fallback", apiErr.Message)
	}
}

func TestUnauthorizedIsDetectable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "token expired"}`))
	}))
	defer srv.Close()

	base := NewBaseClient(srv.URL, NewDefaultHTTPClient(time.Second))
	err := base.DoJSON(context.Background(), http.MethodGet, "/profile/me", "stale", nil, nil, nil)

	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("401 must unwrap to ErrUnauthorized, got %v", err)
	}
}

func TestTransportFailureIsNotAPIError(t *testing.T) {
	base := NewBaseClient("http://127.0.0.1:1", NewDefaultHTTPClient(100*time.Millisecond))
	err := base.DoJSON(context.Background(), http.MethodGet, "/x", "", nil, nil, nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure must not be an APIError: %v", err)
	}
}
