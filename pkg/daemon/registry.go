/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package daemon

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/query"
)

// Built-in named counters the daemon samples about itself at read time.
const (
	CounterUptime     = "uptime"
	CounterGoroutines = "go-goroutines"
	CounterHeapBytes  = "go-heap-alloc-bytes"
)

// Registry is the node's counter store. Named and keyed counters live
// in separate spaces and never meet: the two addressing forms are
// disjoint all the way from increment to query.
type Registry struct {
	mu      sync.RWMutex
	named   map[string]float64
	keyed   map[counter.Key]float64
	started time.Time
}

// NewRegistry creates an empty counter store.
func NewRegistry() *Registry {
	return &Registry{
		named:   make(map[string]float64),
		keyed:   make(map[counter.Key]float64),
		started: time.Now(),
	}
}

// IncrNamed adds delta to the named counter, creating it at zero first.
// Returns the new value.
func (r *Registry) IncrNamed(name string, delta float64) (float64, error) {
	if name == "" {
		return 0, errors.New(errors.ErrCodeInvalidRequest, "counter name is empty")
	}
	if name == query.TokenWildcard || name == query.TokenBlank {
		return 0, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"counter name collides with a query marker",
			map[string]any{"name": name})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.named[name] += delta
	v := r.named[name]
	countersGauge.WithLabelValues(counter.FormNamed.String()).Set(float64(len(r.named) + builtinCount))
	incrementsTotal.WithLabelValues(counter.FormNamed.String()).Inc()
	return v, nil
}

// IncrKeyed adds delta to the keyed counter addressed by parts,
// creating it at zero first. Between one and three components are
// accepted; missing trailing components are stored as explicit nulls.
// The first component must be present.
func (r *Registry) IncrKeyed(parts []counter.Component, delta float64) (float64, error) {
	if len(parts) == 0 || len(parts) > 3 {
		return 0, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"keyed counters carry one to three components",
			map[string]any{"components": len(parts)})
	}
	if parts[0].IsNull() {
		return 0, errors.New(errors.ErrCodeInvalidRequest, "first key component cannot be null")
	}

	var full [3]counter.Component
	copy(full[:], parts)
	for i := len(parts); i < 3; i++ {
		full[i] = counter.Null()
	}
	key := counter.Keyed(full[0], full[1], full[2])

	r.mu.Lock()
	defer r.mu.Unlock()
	r.keyed[key] += delta
	v := r.keyed[key]
	countersGauge.WithLabelValues(counter.FormKeyed.String()).Set(float64(len(r.keyed)))
	incrementsTotal.WithLabelValues(counter.FormKeyed.String()).Inc()
	return v, nil
}

// builtinCount is how many self-sampled named counters Snapshot adds.
const builtinCount = 3

// Snapshot returns every counter the node would report right now, in
// deterministic order: named counters sorted by name, then keyed
// counters in key order. The built-in gauges are sampled at call time.
func (r *Registry) Snapshot() []counter.Sample {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	r.mu.RLock()
	named := make(map[string]float64, len(r.named)+builtinCount)
	for name, v := range r.named {
		named[name] = v
	}
	keyed := make([]counter.Sample, 0, len(r.keyed))
	for key, v := range r.keyed {
		keyed = append(keyed, counter.Sample{Key: key, Value: v})
	}
	started := r.started
	r.mu.RUnlock()

	named[CounterUptime] = time.Since(started).Seconds()
	named[CounterGoroutines] = float64(runtime.NumGoroutine())
	named[CounterHeapBytes] = float64(mem.HeapAlloc)

	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)

	samples := make([]counter.Sample, 0, len(named)+len(keyed))
	for _, name := range names {
		samples = append(samples, counter.Sample{Key: counter.Named(name), Value: named[name]})
	}
	sort.Slice(keyed, func(i, j int) bool {
		return keyed[i].Key.Compare(keyed[j].Key) < 0
	})
	samples = append(samples, keyed...)
	return samples
}

// Query returns the snapshot subset matching spec.
func (r *Registry) Query(spec query.Spec) []counter.Sample {
	return query.Match(spec, r.Snapshot())
}
