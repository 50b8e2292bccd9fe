package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cotizaplus/cotiza-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(_ context.Context) error {
	return s.err
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "dev"}}
}

func TestHealthLive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()

	HealthLive(testConfig())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("X-CotizaPlus-Env") != "dev" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-CotizaPlus-Env"))
	}
}

func TestHealthReadyAllUp(t *testing.T) {
	deps := map[string]Pinger{
		"db":    &stubPinger{},
		"redis": &stubPinger{},
	}
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()

	HealthReady(testConfig(), nil, deps)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestHealthReadyDependencyDown(t *testing.T) {
	deps := map[string]Pinger{
		"db":    &stubPinger{},
		"redis": &stubPinger{err: errors.New("connection refused")},
	}
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()

	HealthReady(testConfig(), nil, deps)(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
