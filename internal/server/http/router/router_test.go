package router

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/greenlake/portal/internal/pkg/signature"
	"github.com/greenlake/portal/internal/server/http/handlers"
	testhelpers "github.com/greenlake/portal/internal/test"
)

type healthStub struct {
	err error
}

func (s healthStub) HealthCheck(context.Context) error { return s.err }

func testEngine(verifier *signature.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return Setup(&testhelpers.PortalFacadeStub{}, healthStub{}, verifier, logger)
}

func TestSetupRoutes(t *testing.T) {
	engine := testEngine(signature.NewVerifier("", false))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for healthz, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for orders list, got %d", resp.Code)
	}

	body := []byte(`{"type":"Issue","action":"update","data":{"id":"child-1"}}`)
	req = httptest.NewRequest(http.MethodPost, "/api/webhooks/linear", bytes.NewReader(body))
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for webhook with verification off, got %d", resp.Code)
	}
}

func TestSetupHealthzReportsFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(&testhelpers.PortalFacadeStub{}, healthStub{err: errors.New("db down")}, signature.NewVerifier("", false), logger)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestSetupWebhookSignatureEnforcement(t *testing.T) {
	verifier := signature.NewVerifier("secret", true)
	engine := testEngine(verifier)

	body := []byte(`{"type":"Issue","action":"update","data":{"id":"child-1"}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/linear", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without signature, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/webhooks/linear", bytes.NewReader(body))
	req.Header.Set(signature.Header, "deadbeef")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/webhooks/linear", bytes.NewReader(body))
	req.Header.Set(signature.Header, verifier.Sign(body))
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid signature, got %d", resp.Code)
	}
}

var _ handlers.PortalFacade = (*testhelpers.PortalFacadeStub)(nil)
