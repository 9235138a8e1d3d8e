package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// headerRequestID carries the request ID. Incoming values are honored so
// clients can correlate their own records with server logs.
const headerRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the request ID stored in ctx, or "" if none is set.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// withRequestID assigns each request an ID and echoes it in the response.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.Must(uuid.NewV7()).String()
		}
		w.Header().Set(headerRequestID, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request after the handler returns.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
			"ip", extractIP(r),
			"request_id", RequestID(r.Context()),
		)
	})
}

// withRateLimit enforces the per-client request budget. It is a no-op when
// rate limiting is disabled.
func (s *Server) withRateLimit(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			handler(w, r)
			return
		}

		ip := extractIP(r)
		result := s.limiter.check(ip)
		if !result.Allowed {
			// Round the retry hint up to whole seconds
			seconds := int((result.RetryAfter + time.Second - 1) / time.Second)
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			s.log.Warn("request rejected",
				"reason", "rate_limit",
				"ip", ip,
				"retry_after", seconds,
				"request_id", RequestID(r.Context()),
			)

			msg := printerFor(r).Sprintf(msgTooMany)
			if strings.HasPrefix(r.URL.Path, "/api/") {
				writeJSON(w, http.StatusTooManyRequests, apiError{Error: msg})
				return
			}
			http.Error(w, msg, http.StatusTooManyRequests)
			return
		}

		handler(w, r)
	}
}

// requirePost rejects non-POST requests before any other processing.
func (s *Server) requirePost(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
