/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package daemon

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/serializer"
	"github.com/mtaops/statctl/pkg/transport"
)

// Request bodies are small; anything bigger is not a statctl client.
const maxRequestBytes = 1 << 20

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason,omitempty"`
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Node      string   `json:"node"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      name,
		Version:   version,
		Node:      s.config.NodeName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes: []string{
			"POST " + transport.QueryPath,
			"POST " + transport.IncrementPath,
			"GET /health",
			"GET /ready",
			"GET /metrics",
		},
	}

	s.mu.RLock()
	resp.Ready = s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// handleReady handles GET /ready
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		serializer.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "not_ready",
			Timestamp: time.Now(),
			Reason:    "service is initializing",
		})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
	})
}

// handleQuery answers POST /v1/counters/query with the counters
// matching the posted query spec.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"use POST", nil)
		return
	}

	var req transport.QueryRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"malformed query request: "+err.Error(), nil)
		return
	}

	samples := s.registry.Query(req.Spec)
	if samples == nil {
		samples = []counter.Sample{}
	}

	slog.Debug("query answered",
		"requestID", r.Context().Value(contextKeyRequestID),
		"matched", len(samples),
	)

	serializer.RespondJSON(w, http.StatusOK, transport.QueryResponse{
		Node:    s.config.NodeName,
		Samples: samples,
	})
}

// handleIncrement answers POST /v1/counters/incr.
func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"use POST", nil)
		return
	}

	var req transport.IncrementRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"malformed increment request: "+err.Error(), nil)
		return
	}

	if req.Name != "" && len(req.Keys) > 0 {
		s.writeError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"name and keys are mutually exclusive", nil)
		return
	}
	if req.Name == "" && len(req.Keys) == 0 {
		s.writeError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"either name or keys is required", nil)
		return
	}

	delta := req.Delta
	if delta == 0 {
		delta = 1
	}

	var (
		value float64
		err   error
	)
	if req.Name != "" {
		value, err = s.registry.IncrNamed(req.Name, delta)
	} else {
		value, err = s.registry.IncrKeyed(req.Keys, delta)
	}
	if err != nil {
		var serr *errors.StructuredError
		if stderrors.As(err, &serr) {
			s.writeStructuredError(w, r, serr)
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, errors.ErrCodeInternal,
			"increment failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, transport.IncrementResponse{Value: value})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
