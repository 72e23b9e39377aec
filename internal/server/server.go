// Package server implements the HTTP API exposing the fence coloring count
// as a service, with Prometheus instrumentation and security middleware.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/fencecalc/internal/fence"
	"github.com/agbru/fencecalc/internal/logging"
	"github.com/agbru/fencecalc/internal/sysmon"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// tracerName identifies the server spans in trace exports.
	tracerName = "fencecalc/server"

	// DefaultRequestTimeout bounds a single count computation.
	DefaultRequestTimeout = 30 * time.Second

	// shutdownGracePeriod is how long in-flight requests get to finish
	// during graceful shutdown.
	shutdownGracePeriod = 10 * time.Second
)

// Server is the HTTP API server. It exposes the count endpoint, a health
// check, and Prometheus metrics.
type Server struct {
	addr     string
	factory  fence.CalculatorFactory
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	timeout  time.Duration

	startTime  time.Time
	httpServer *http.Server
}

// NewServer creates a Server listening on addr, computing counts with
// calculators from the given factory.
//
// Parameters:
//   - addr: The listen address (e.g. ":8080").
//   - factory: The calculator factory used to resolve algorithms.
//   - logger: The structured logger for request and lifecycle events.
//
// Returns:
//   - *Server: The configured server, not yet started.
func NewServer(addr string, factory fence.CalculatorFactory, logger logging.Logger) *Server {
	return &Server{
		addr:      addr,
		factory:   factory,
		metrics:   NewMetrics(),
		logger:    logger,
		security:  DefaultSecurityConfig(),
		timeout:   DefaultRequestTimeout,
		startTime: time.Now(),
	}
}

// routes builds the HTTP mux with all middleware applied.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/count", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleCount)))
	mux.HandleFunc("/healthz", s.metricsMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// Start runs the server until the context is canceled, then shuts down
// gracefully, letting in-flight requests complete.
//
// Parameters:
//   - ctx: The context whose cancellation triggers shutdown.
//
// Returns:
//   - error: A listen error, or nil after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("addr", s.addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// statusRecorder captures the status code written by a handler so the
// metrics middleware can label the request counter.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks in-flight requests, the request counter, and the
// latency histogram for the wrapped handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, strconv.Itoa(rec.status), time.Since(start).Seconds())
	}
}

// countResponse is the JSON body returned by the count endpoint.
type countResponse struct {
	Posts      uint64  `json:"posts"`
	Colors     uint64  `json:"colors"`
	Algorithm  string  `json:"algorithm"`
	Count      string  `json:"count"`
	Digits     int     `json:"digits"`
	LastDigits int     `json:"lastDigits,omitempty"`
	DurationMs float64 `json:"durationMs"`
}

// errorResponse is the JSON body returned on request failures.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends a JSON error body and logs the failure.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// parseUintParam parses a required unsigned query parameter.
func parseUintParam(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be a non-negative integer", name)
	}
	return v, nil
}

// handleCount serves GET /api/v1/count?posts=N&colors=K[&algo=name][&lastDigits=D].
// It counts the valid colorings of N fence posts with K colors where no more
// than two consecutive posts share a color.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}

	posts, err := parseUintParam(r, "posts")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	colors, err := parseUintParam(r, "colors")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if posts > s.security.MaxPostsValue {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("posts exceeds the maximum of %d", s.security.MaxPostsValue))
		return
	}
	if colors > s.security.MaxColorsValue {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("colors exceeds the maximum of %d", s.security.MaxColorsValue))
		return
	}

	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = "matrix"
	}
	calc, err := s.factory.Get(algo)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lastDigits := 0
	if raw := r.URL.Query().Get("lastDigits"); raw != "" {
		lastDigits, err = strconv.Atoi(raw)
		if err != nil || lastDigits < 0 {
			s.writeError(w, http.StatusBadRequest, "lastDigits must be a non-negative integer")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "server.count")
	span.SetAttributes(
		attribute.Int64("fence.posts", int64(posts)),
		attribute.Int64("fence.colors", int64(colors)),
		attribute.String("fence.algorithm", algo),
	)
	defer span.End()

	start := time.Now()
	result, err := s.compute(ctx, calc, posts, colors, lastDigits)
	duration := time.Since(start)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("count failed", err,
			logging.Uint64("posts", posts),
			logging.Uint64("colors", colors),
			logging.String("algorithm", algo))
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		s.writeError(w, status, err.Error())
		return
	}

	countStr := result.String()
	s.logger.Info("count served",
		logging.Uint64("posts", posts),
		logging.Uint64("colors", colors),
		logging.String("algorithm", algo),
		logging.Float64("durationMs", float64(duration.Microseconds())/1000))

	writeJSON(w, http.StatusOK, countResponse{
		Posts:      posts,
		Colors:     colors,
		Algorithm:  algo,
		Count:      countStr,
		Digits:     len(countStr),
		LastDigits: lastDigits,
		DurationMs: float64(duration.Microseconds()) / 1000,
	})
}

// compute runs either the full computation or the modular last-digits mode.
func (s *Server) compute(ctx context.Context, calc fence.Calculator, posts, colors uint64, lastDigits int) (*big.Int, error) {
	if lastDigits > 0 {
		return fence.CountWaysMod(posts, colors, fence.DecimalModulus(lastDigits))
	}
	return calc.Calculate(ctx, nil, 0, posts, colors, fence.Options{})
}

// healthResponse is the JSON body returned by the health endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemPercent    float64 `json:"memPercent"`
}

// handleHealth serves GET /healthz with process liveness and a system
// resource snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}
	stats := sysmon.Sample()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(s.startTime).Seconds(),
		CPUPercent:    stats.CPUPercent,
		MemPercent:    stats.MemPercent,
	})
}

// handleMetrics serves GET /metrics in Prometheus exposition format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Info("rejected non-GET metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}
