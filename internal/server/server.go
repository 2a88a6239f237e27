// Package server exposes the evaluator and its metrics over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/agbru/fraccalc/internal/calc"
	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/logging"
	"github.com/agbru/fraccalc/internal/metrics"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
	evalTimeout       = 10 * time.Second
)

// Server serves /metrics, /healthz and /eval.
type Server struct {
	addr      string
	evaluator *calc.Evaluator
	metrics   *metrics.Metrics
	logger    logging.Logger
	security  SecurityConfig
	mux       *http.ServeMux
}

// New builds a server listening on addr once Run is called.
func New(addr string, evaluator *calc.Evaluator, m *metrics.Metrics, logger logging.Logger) *Server {
	s := &Server{
		addr:      addr,
		evaluator: evaluator,
		metrics:   m,
		logger:    logger,
		security:  DefaultSecurityConfig(),
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	s.mux.HandleFunc("/healthz", s.wrap(s.handleHealth))
	s.mux.HandleFunc("/eval", s.wrap(s.handleEval))
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(h))
}

// Run serves until ctx is canceled, then shuts down gracefully.
// The listener is bound first so a bad address is reported immediately.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return apperrors.WrapError(err, "metrics server: listen on %s", s.addr)
	}
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if sl, ok := s.logger.(interface{ StdLogger() *log.Logger }); ok {
		srv.ErrorLog = sl.StdLogger()
	}
	s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("metrics server shutdown", err)
			return err
		}
		return nil
	}
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		s.metrics.CountRequest(r.URL.Path)
		next(w, r)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// EvalResponse is the JSON body returned by /eval.
type EvalResponse struct {
	Expr   string `json:"expr"`
	Result string `json:"result,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	expr := r.URL.Query().Get("expr")
	if expr == "" {
		writeJSON(w, http.StatusBadRequest, EvalResponse{Error: "missing expr parameter"})
		return
	}
	if s.security.MaxExprLength > 0 && len(expr) > s.security.MaxExprLength {
		writeJSON(w, http.StatusRequestEntityTooLarge, EvalResponse{Expr: expr, Error: "expression too long"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), evalTimeout)
	defer cancel()
	res, err := s.evaluator.Evaluate(ctx, expr)
	if err != nil {
		status := http.StatusUnprocessableEntity
		switch apperrors.ExitCodeFor(err) {
		case apperrors.ExitErrorInput:
			status = http.StatusBadRequest
		case apperrors.ExitErrorTimeout, apperrors.ExitErrorCanceled:
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, EvalResponse{Expr: expr, Error: err.Error()})
		return
	}

	kind := "fraction"
	if res.IsBool {
		kind = "bool"
	}
	writeJSON(w, http.StatusOK, EvalResponse{Expr: expr, Result: res.String(), Kind: kind})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", http.MethodGet)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
