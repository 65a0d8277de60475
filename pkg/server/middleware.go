/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
)

type contextKey string

const (
	contextKeyRequestID  contextKey = "request-id"
	contextKeyAPIVersion contextKey = "api-version"

	requestIDHeader = "X-Request-Id"
)

// RequestID returns the request ID assigned by the middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// APIVersion returns the negotiated API version.
func APIVersion(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyAPIVersion).(string); ok {
		return v
	}
	return DefaultAPIVersion
}

// withMiddleware wraps an API handler: recovery, request ID, version
// negotiation, rate limiting, body limit and access logging.
func (s *Server) withMiddleware(path string, h http.HandlerFunc) http.HandlerFunc {
	next := s.loggingMiddleware(path, s.rateLimitMiddleware(s.bodyLimitMiddleware(h)))
	next = versionMiddleware(next)
	next = requestIDMiddleware(next)
	return recoveryMiddleware(next)
}

func requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)
		next(w, r.WithContext(ctx))
	}
}

func versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := negotiateAPIVersion(r)
		w.Header().Set(apiVersionHeader, v)
		ctx := context.WithValue(r.Context(), contextKeyAPIVersion, v)
		next(w, r.WithContext(ctx))
	}
}

func recoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				panicsRecovered.Inc()
				slog.Error("handler panic", "path", r.URL.Path, "panic", rec)
				WriteError(w, r, http.StatusInternalServerError, apperrors.ErrCodeInternal,
					"internal server error", true, map[string]any{"panic": fmt.Sprint(rec)})
			}
		}()
		next(w, r)
	}
}

func (s *Server) bodyLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
		}
		next(w, r)
	}
}

func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lim := s.limiter(clientKey(r))
		if !lim.Allow() {
			rateLimitRejects.Inc()
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, apperrors.ErrCodeRateLimitExceeded,
				"rate limit exceeded", true, map[string]any{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
				})
			return
		}
		next(w, r)
	}
}

// limiter returns the token bucket for a client, creating it on first use.
func (s *Server) limiter(key string) *rate.Limiter {
	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()

	lim, ok := s.limiters[key]
	if !ok {
		lim = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
		s.limiters[key] = lim
	}
	return lim
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		elapsed := time.Since(start)
		httpRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())

		slog.Debug("request handled",
			"requestID", RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
			"remote_addr", r.RemoteAddr,
		)
	}
}
