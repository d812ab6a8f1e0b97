/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package daemon

import (
	"sync"
	"testing"

	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/query"
)

func TestRegistryIncrNamed(t *testing.T) {
	r := NewRegistry()

	v, err := r.IncrNamed("queue-size", 1)
	if err != nil {
		t.Fatalf("IncrNamed: %v", err)
	}
	if v != 1 {
		t.Errorf("value = %v, want 1", v)
	}

	v, err = r.IncrNamed("queue-size", 2.5)
	if err != nil {
		t.Fatalf("IncrNamed: %v", err)
	}
	if v != 3.5 {
		t.Errorf("value = %v, want 3.5", v)
	}
}

func TestRegistryIncrNamedRejectsMarkers(t *testing.T) {
	r := NewRegistry()
	for _, bad := range []string{"", query.TokenWildcard, query.TokenBlank} {
		if _, err := r.IncrNamed(bad, 1); !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
			t.Errorf("IncrNamed(%q) should be rejected, got %v", bad, err)
		}
	}
}

func TestRegistryIncrKeyedPadsWithNulls(t *testing.T) {
	r := NewRegistry()

	if _, err := r.IncrKeyed([]counter.Component{counter.Lit("mail:total")}, 5); err != nil {
		t.Fatalf("IncrKeyed: %v", err)
	}

	spec := query.Keyed(query.Literal("mail:total"), query.Blank(), query.Blank())
	samples := r.Query(spec)
	if len(samples) != 1 {
		t.Fatalf("expected the padded key to carry explicit nulls, matched %d", len(samples))
	}
	if samples[0].Value != 5 {
		t.Errorf("value = %v, want 5", samples[0].Value)
	}
}

func TestRegistryIncrKeyedValidation(t *testing.T) {
	r := NewRegistry()

	if _, err := r.IncrKeyed(nil, 1); !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
		t.Errorf("empty key list should be rejected, got %v", err)
	}
	four := []counter.Component{counter.Lit("a"), counter.Lit("b"), counter.Lit("c"), counter.Lit("d")}
	if _, err := r.IncrKeyed(four, 1); !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
		t.Errorf("four components should be rejected, got %v", err)
	}
	if _, err := r.IncrKeyed([]counter.Component{counter.Null()}, 1); !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
		t.Errorf("null first component should be rejected, got %v", err)
	}
}

func TestRegistrySnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.IncrNamed("zeta", 1)
	r.IncrNamed("alpha", 1)
	r.IncrKeyed([]counter.Component{counter.Lit("mail:total"), counter.Lit("eu")}, 1)
	r.IncrKeyed([]counter.Component{counter.Lit("mail:total")}, 1)

	samples := r.Snapshot()

	// Named counters come first, sorted, with the built-ins mixed in.
	var names []string
	var keyedAt int
	for i, s := range samples {
		if s.Key.Form() == counter.FormKeyed {
			keyedAt = i
			break
		}
		names = append(names, s.Key.Name())
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("named counters out of order: %v", names)
		}
	}
	for _, want := range []string{CounterUptime, CounterGoroutines, CounterHeapBytes, "alpha", "zeta"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("snapshot missing named counter %q", want)
		}
	}

	// Keyed counters follow in key order, nulls first.
	keyed := samples[keyedAt:]
	if len(keyed) != 2 {
		t.Fatalf("expected 2 keyed samples, got %d", len(keyed))
	}
	if !keyed[0].Key.Parts()[1].IsNull() {
		t.Errorf("null second component should sort before a literal: %v", keyed[0].Key)
	}
}

func TestRegistryQueryFormsNeverMix(t *testing.T) {
	r := NewRegistry()
	r.IncrNamed("mail:total", 1)
	r.IncrKeyed([]counter.Component{counter.Lit("mail:total")}, 2)

	named := r.Query(query.Named("mail:total"))
	if len(named) != 1 || named[0].Key.Form() != counter.FormNamed {
		t.Errorf("named query matched wrong samples: %+v", named)
	}

	keyed := r.Query(query.Keyed(query.Literal("mail:total"), query.Wildcard(), query.Wildcard()))
	if len(keyed) != 1 || keyed[0].Key.Form() != counter.FormKeyed {
		t.Errorf("keyed query matched wrong samples: %+v", keyed)
	}
}

func TestRegistryConcurrentIncrements(t *testing.T) {
	r := NewRegistry()

	const workers = 8
	const perWorker = 100

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				r.IncrNamed("hits", 1)
			}
		}()
	}
	wg.Wait()

	samples := r.Query(query.Named("hits"))
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if samples[0].Value != workers*perWorker {
		t.Errorf("value = %v, want %d", samples[0].Value, workers*perWorker)
	}
}
