// Package http serves the ledger API: a full snapshot on GET /data, named
// mutations on POST /data, derived summaries, and the admin login.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"iuran/internal/amqp"
	"iuran/internal/auth"
	"iuran/internal/core"
	applog "iuran/internal/log"
	"iuran/internal/store"
)

// Ledger is the slice of the record store the handlers need.
type Ledger interface {
	Snapshot(ctx context.Context) (core.Snapshot, error)
	Apply(ctx context.Context, m store.Mutation) (store.Ack, error)
}

// EventPublisher receives an audit event after each successful mutation.
// Publishing is best-effort; a failure never rolls the mutation back.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event *amqp.LedgerEventMessage) error
}

type Server struct {
	http.Server
	ledger        Ledger
	authenticator auth.Authenticator
	publisher     EventPublisher
	rateLimiter   *rateLimiter
	shutdownOnce  sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
// publisher may be nil when AMQP is not configured.
func NewServer(addr string, ledger Ledger, authenticator auth.Authenticator, publisher EventPublisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:        ledger,
		authenticator: authenticator,
		publisher:     publisher,
		rateLimiter:   newRateLimiter(),
	}

	mux.HandleFunc("/data", s.withMiddleware(s.handleData))
	mux.HandleFunc("/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("/login", s.withMiddleware(s.handleLogin))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

// Shutdown stops the server and its cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)
		requestID := generateRequestID()
		ctx := r.Context()

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, ip,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		if r.Method == http.MethodPost && !s.rateLimiter.allow(ip) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, ip, applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, ip)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
