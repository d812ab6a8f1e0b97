/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package daemon

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/query"
	"github.com/mtaops/statctl/pkg/transport"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := NewConfig()
	cfg.NodeName = "mta-1"
	cfg.RateLimit = 1000
	cfg.RateLimitBurst = 1000
	s := NewServer(cfg)
	s.SetReady(true)
	ts := httptest.NewServer(s.setupRoutes())
	t.Cleanup(ts.Close)
	return s, ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServerQuery(t *testing.T) {
	s, ts := newTestServer(t)
	s.Registry().IncrNamed("queue-size", 7)

	resp := postJSON(t, ts.URL+transport.QueryPath, transport.QueryRequest{
		Spec: query.Named("queue-size"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("response should carry a request ID")
	}

	var qr transport.QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if qr.Node != "mta-1" {
		t.Errorf("node = %q, want mta-1", qr.Node)
	}
	if len(qr.Samples) != 1 || qr.Samples[0].Value != 7 {
		t.Errorf("samples = %+v, want queue-size=7", qr.Samples)
	}
}

func TestServerQueryListAll(t *testing.T) {
	s, ts := newTestServer(t)
	s.Registry().IncrNamed("queue-size", 1)
	s.Registry().IncrKeyed([]counter.Component{counter.Lit("mail:total"), counter.Lit("eu")}, 5)

	resp := postJSON(t, ts.URL+transport.QueryPath, transport.QueryRequest{
		Spec: query.Named(""),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var qr transport.QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	// queue-size plus the built-in gauges at minimum.
	if len(qr.Samples) < 4 {
		t.Errorf("list-all should include built-ins, got %d samples", len(qr.Samples))
	}
	// Listing named counters never exposes keyed application counters.
	for _, smp := range qr.Samples {
		if smp.Key.Form() == counter.FormKeyed {
			t.Errorf("list-all returned keyed sample %v", smp.Key)
		}
	}
}

func TestServerQueryMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + transport.QueryPath)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
	var er transport.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if er.Error.Code != errors.ErrCodeMethodNotAllowed {
		t.Errorf("code = %s, want %s", er.Error.Code, errors.ErrCodeMethodNotAllowed)
	}
}

func TestServerQueryMalformedBody(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+transport.QueryPath, "application/json",
		bytes.NewReader([]byte(`{"spec": {"form": "nope"}}`)))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var er transport.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if er.Error.Code != errors.ErrCodeInvalidRequest {
		t.Errorf("code = %s, want %s", er.Error.Code, errors.ErrCodeInvalidRequest)
	}
	if er.Error.RequestID == "" {
		t.Error("error body should carry the request ID")
	}
}

func TestServerIncrement(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+transport.IncrementPath, transport.IncrementRequest{
		Name: "hits",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var ir transport.IncrementResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	// Delta omitted defaults to 1.
	if ir.Value != 1 {
		t.Errorf("value = %v, want 1", ir.Value)
	}

	resp = postJSON(t, ts.URL+transport.IncrementPath, transport.IncrementRequest{
		Name:  "hits",
		Delta: 4,
	})
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if ir.Value != 5 {
		t.Errorf("value = %v, want 5", ir.Value)
	}
}

func TestServerIncrementKeyed(t *testing.T) {
	s, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+transport.IncrementPath, transport.IncrementRequest{
		Keys:  []counter.Component{counter.Lit("mail:total"), counter.Lit("eu")},
		Delta: 5,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	samples := s.Registry().Query(query.Keyed(
		query.Literal("mail:total"), query.Literal("eu"), query.Blank()))
	if len(samples) != 1 || samples[0].Value != 5 {
		t.Errorf("keyed increment did not land: %+v", samples)
	}
}

func TestServerIncrementRejectsMixedForms(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+transport.IncrementPath, transport.IncrementRequest{
		Name: "hits",
		Keys: []counter.Component{counter.Lit("a")},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServerRateLimit(t *testing.T) {
	cfg := NewConfig()
	cfg.NodeName = "mta-1"
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	s := NewServer(cfg)
	s.SetReady(true)
	ts := httptest.NewServer(s.setupRoutes())
	defer ts.Close()

	first := postJSON(t, ts.URL+transport.IncrementPath, transport.IncrementRequest{Name: "hits"})
	if first.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.StatusCode)
	}

	second := postJSON(t, ts.URL+transport.IncrementPath, transport.IncrementRequest{Name: "hits"})
	if second.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.StatusCode)
	}
	if second.Header.Get("Retry-After") == "" {
		t.Error("429 should carry Retry-After")
	}
}

func TestServerHealthAndReady(t *testing.T) {
	s, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health status = %d, want 200", resp.StatusCode)
	}

	s.SetReady(false)
	resp, err = http.Get(ts.URL + "/ready")
	if err != nil {
		t.Fatalf("GET /ready: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("/ready while not ready: status = %d, want 503", resp.StatusCode)
	}

	s.SetReady(true)
	resp, err = http.Get(ts.URL + "/ready")
	if err != nil {
		t.Fatalf("GET /ready: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/ready while ready: status = %d, want 200", resp.StatusCode)
	}
}

func TestServerRequestIDPropagation(t *testing.T) {
	_, ts := newTestServer(t)

	body, _ := json.Marshal(transport.QueryRequest{Spec: query.Named("")})
	req, err := http.NewRequest(http.MethodPost, ts.URL+transport.QueryPath, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	const id = "d2f1f8a0-9c1b-4b3e-8a4e-2f0c8d9e1a2b"
	req.Header.Set("X-Request-Id", id)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-Id"); got != id {
		t.Errorf("request ID not propagated: got %q, want %q", got, id)
	}
}

func TestResponseWriterStatusIsWriteOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusTooManyRequests)
	rw.WriteHeader(http.StatusOK)
	if _, err := rw.Write([]byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if rw.Status() != http.StatusTooManyRequests {
		t.Errorf("recorded status = %d, want 429", rw.Status())
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("written status = %d, want 429", rec.Code)
	}
}
