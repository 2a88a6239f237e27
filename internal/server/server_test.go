package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fraccalc/internal/calc"
	"github.com/agbru/fraccalc/internal/logging"
	"github.com/agbru/fraccalc/internal/metrics"
)

// testLogger is a minimal logger for testing that implements logging.Logger.
type testLogger struct{}

func newTestLogger() *testLogger                                  { return &testLogger{} }
func (l *testLogger) Info(_ string, _ ...logging.Field)           {}
func (l *testLogger) Error(_ string, _ error, _ ...logging.Field) {}
func (l *testLogger) Debug(_ string, _ ...logging.Field)          {}
func (l *testLogger) Printf(_ string, _ ...any)                   {}
func (l *testLogger) Println(_ ...any)                            {}

func newTestServer() (*Server, *metrics.Metrics) {
	m := metrics.New()
	ev := calc.NewEvaluator(calc.WithRecorder(m))
	return New("127.0.0.1:0", ev, m, newTestLogger()), m
}

// TestServer_handleMetrics tests the /metrics endpoint handler.
func TestServer_handleMetrics(t *testing.T) {
	t.Run("GET returns metrics", func(t *testing.T) {
		s, m := newTestServer()
		m.Observe("add", nil)

		req := httptest.NewRequest("GET", "/metrics", http.NoBody)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `fraccalc_operations_total{op="add"} 1`) {
			t.Error("response should contain fraccalc operation counters")
		}
		if !strings.Contains(body, `fraccalc_requests_total{path="/metrics"} 1`) {
			t.Error("the request itself should be counted")
		}
	})

	for _, method := range []string{"POST", "PUT"} {
		t.Run(method+" returns method not allowed", func(t *testing.T) {
			s, _ := newTestServer()
			req := httptest.NewRequest(method, "/metrics", http.NoBody)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
			}
		})
	}
}

// TestServer_metricsMiddleware tests the metrics tracking middleware.
func TestServer_metricsMiddleware(t *testing.T) {
	s, _ := newTestServer()

	nextCalled := false
	next := func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	}

	handler := s.metricsMiddleware(next)
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if !nextCalled {
		t.Error("next handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestServer_handleHealth(t *testing.T) {
	s, _ := newTestServer()
	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers should be applied to every route")
	}
}

func TestServer_handleEval(t *testing.T) {
	tests := []struct {
		name       string
		expr       string
		wantStatus int
		wantResult string
		wantKind   string
	}{
		{"sum", "1/2 + 1/3", http.StatusOK, "5 / 6", "fraction"},
		{"comparison", "2/4 == 1/2", http.StatusOK, "true", "bool"},
		{"division by zero", "1/2 / 0", http.StatusUnprocessableEntity, "", ""},
		{"malformed", "1/2 ^ 3", http.StatusBadRequest, "", ""},
		{"missing", "", http.StatusBadRequest, "", ""},
		{"too long", strings.Repeat("1", 300), http.StatusRequestEntityTooLarge, "", ""},
		{"large remainder", "100000000000000000 % 7", http.StatusOK, "5", "fraction"},
		{"remainder out of range", "300000000000000 % 200000000000000", http.StatusUnprocessableEntity, "", ""},
		{"integer out of range", "99999999999999999999", http.StatusBadRequest, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer()
			req := httptest.NewRequest("GET", "/eval?expr="+url.QueryEscape(tt.expr), http.NoBody)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp EvalResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
			}
			if resp.Result != tt.wantResult || resp.Kind != tt.wantKind {
				t.Errorf("response = %+v, want result %q kind %q", resp, tt.wantResult, tt.wantKind)
			}
			if tt.wantStatus != http.StatusOK && resp.Error == "" {
				t.Error("error responses should carry a message")
			}
		})
	}
}

func TestServer_handleEval_CanceledRequest(t *testing.T) {
	s, _ := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest("GET", "/eval?expr="+url.QueryEscape("1000000 % 1/3"), http.NoBody).WithContext(ctx)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestServer_Run(t *testing.T) {
	s, _ := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v after cancellation", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestServer_Run_BadAddress(t *testing.T) {
	m := metrics.New()
	s := New("not-an-address", calc.NewEvaluator(), m, newTestLogger())
	if err := s.Run(context.Background()); err == nil {
		t.Error("expected a listen error")
	}
}
