package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingerMock struct {
	err error
}

func (m *pingerMock) Ping(_ context.Context) error {
	return m.err
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", nil)

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}

	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_StorageUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", map[string]Pinger{"storage": &pingerMock{err: nil}})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
}

func TestReady_StorageDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", map[string]Pinger{"storage": &pingerMock{err: errors.New("connection refused")}})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", map[string]Pinger{"storage": &pingerMock{err: nil}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}

	if resp.Version != "v1.0.0" {
		t.Errorf("expected version 'v1.0.0', got %q", resp.Version)
	}

	storageComp, ok := resp.Components["storage"]
	if !ok {
		t.Fatal("expected 'storage' component in response")
	}

	if storageComp.Status != "ok" {
		t.Errorf("expected storage status 'ok', got %q", storageComp.Status)
	}
}

func TestHealth_StorageDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", map[string]Pinger{"storage": &pingerMock{err: errors.New("connection refused")}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}

	storageComp, ok := resp.Components["storage"]
	if !ok {
		t.Fatal("expected 'storage' component in response")
	}

	if storageComp.Status != "down" {
		t.Errorf("expected storage status 'down', got %q", storageComp.Status)
	}
}

func TestHealth_IncludesLatency(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", map[string]Pinger{"storage": &pingerMock{err: nil}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	storageComp, ok := resp.Components["storage"]
	if !ok {
		t.Fatal("expected 'storage' component in response")
	}

	if storageComp.Latency == "" {
		t.Error("expected non-empty latency for storage component")
	}
}

func TestHealth_MultipleComponents(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", map[string]Pinger{
		"storage": &pingerMock{},
		"api":     PingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Components["storage"].Status != "ok" {
		t.Errorf("expected storage ok, got %q", resp.Components["storage"].Status)
	}
	if resp.Components["api"].Status != "down" {
		t.Errorf("expected api down, got %q", resp.Components["api"].Status)
	}
}

func TestReady_NoComponents(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", nil)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
