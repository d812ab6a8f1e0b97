/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package counter

import (
	"encoding/json"
	"testing"
)

func TestComponentCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Component
		want int
	}{
		{"null equals null", Null(), Null(), 0},
		{"null before literal", Null(), Lit("a"), -1},
		{"literal after null", Lit("a"), Null(), 1},
		{"null before empty literal", Null(), Lit(""), -1},
		{"equal literals", Lit("eu"), Lit("eu"), 0},
		{"lexicographic", Lit("a"), Lit("b"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComponentString(t *testing.T) {
	if got := Null().String(); got != "-" {
		t.Errorf("null component renders as %q, want \"-\"", got)
	}
	if got := Lit("example.org").String(); got != "example.org" {
		t.Errorf("literal component renders as %q", got)
	}
}

func TestKeyCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want int
	}{
		{"named by name", Named("a"), Named("b"), -1},
		{"named equal", Named("x"), Named("x"), 0},
		{
			"keyed null-first on first component",
			Keyed(Null(), Lit("z"), Lit("z")),
			Keyed(Lit("a"), Null(), Null()),
			-1,
		},
		{
			"keyed falls through to later components",
			Keyed(Lit("a"), Lit("b"), Null()),
			Keyed(Lit("a"), Lit("b"), Lit("c")),
			-1,
		},
		{
			"keyed equal",
			Keyed(Lit("a"), Null(), Lit("c")),
			Keyed(Lit("a"), Null(), Lit("c")),
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := tt.b.Compare(tt.a); got != -tt.want {
				t.Errorf("reverse Compare() = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestKeyAsMapKey(t *testing.T) {
	m := map[Key]float64{
		Named("uptime"):                       1,
		Keyed(Lit("a"), Null(), Lit("c")):     2,
		Keyed(Lit("a"), Lit(""), Lit("c")):    3,
		Keyed(Null(), Null(), Null()):         4,
		Keyed(Lit("a"), Null(), Lit("other")): 5,
	}
	if len(m) != 5 {
		t.Fatalf("expected 5 distinct keys, got %d", len(m))
	}
	// Null and empty literal are distinct keys.
	if m[Keyed(Lit("a"), Null(), Lit("c"))] != 2 {
		t.Error("null component key lookup failed")
	}
	if m[Keyed(Lit("a"), Lit(""), Lit("c"))] != 3 {
		t.Error("empty literal key lookup failed")
	}
}

func TestSampleJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   string
	}{
		{
			name:   "named",
			sample: Sample{Key: Named("system-cpu-usage"), Value: 12.5},
			want:   `{"name":"system-cpu-usage","value":12.5}`,
		},
		{
			name:   "keyed with null",
			sample: Sample{Key: Keyed(Lit("mail:total"), Lit("eu"), Null()), Value: 5},
			want:   `{"key":["mail:total","eu",null],"value":5}`,
		},
		{
			name:   "keyed all null",
			sample: Sample{Key: Keyed(Null(), Null(), Null()), Value: 0},
			want:   `{"key":[null,null,null],"value":0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.sample)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("marshal = %s, want %s", data, tt.want)
			}

			var back Sample
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back.Key.Compare(tt.sample.Key) != 0 {
				t.Errorf("round trip key = %v, want %v", back.Key, tt.sample.Key)
			}
			if back.Value != tt.sample.Value {
				t.Errorf("round trip value = %v, want %v", back.Value, tt.sample.Value)
			}
		})
	}
}

func TestSampleUnmarshalRejectsMixedForms(t *testing.T) {
	var s Sample
	err := json.Unmarshal([]byte(`{"name":"x","key":["a","b","c"],"value":1}`), &s)
	if err == nil {
		t.Fatal("expected error for sample carrying both name and key")
	}
}

func TestKeyString(t *testing.T) {
	if got := Named("queue-size").String(); got != "queue-size" {
		t.Errorf("named key String() = %q", got)
	}
	k := Keyed(Lit("mail:total"), Null(), Lit("example.org"))
	if got := k.String(); got != "mail:total - example.org" {
		t.Errorf("keyed key String() = %q", got)
	}
}
