/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"
	"time"

	"github.com/NVIDIA/discovery-preflight/pkg/serializer"
)

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Version   string    `json:"version,omitempty" yaml:"version,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s *Server) health(status, reason string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Version:   s.version,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// handleHealth handles GET /health. The process is live whenever it answers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.health("healthy", ""))
}

// handleReady handles GET /ready. It reports 503 before Run starts serving
// and once shutdown has begun.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		serializer.RespondJSON(w, http.StatusServiceUnavailable, s.health("not_ready", "server is not accepting requests"))
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.health("ready", ""))
}
