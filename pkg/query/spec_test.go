/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	"encoding/json"
	"testing"

	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/errors"
)

func TestParseNamed(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		wantName string
		wantErr  bool
	}{
		{name: "no tokens is list mode", tokens: nil, wantName: ""},
		{name: "empty slice is list mode", tokens: []string{}, wantName: ""},
		{name: "exact name", tokens: []string{"system-cpu-usage"}, wantName: "system-cpu-usage"},
		{name: "wildcard marker rejected", tokens: []string{"."}, wantErr: true},
		{name: "blank marker rejected", tokens: []string{"-"}, wantErr: true},
		{name: "two tokens rejected", tokens: []string{"a", "b"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseNamed(tt.tokens)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.HasCode(err, errors.ErrCodeInvalidQuery) {
					t.Errorf("expected INVALID_QUERY, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec.Form() != counter.FormNamed {
				t.Errorf("expected named form, got %v", spec.Form())
			}
			if spec.Name() != tt.wantName {
				t.Errorf("name = %q, want %q", spec.Name(), tt.wantName)
			}
		})
	}
}

func TestParseKeyed(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		want    [3]Pattern
		wantErr bool
	}{
		{
			name:   "no tokens defaults to all wildcards",
			tokens: nil,
			want:   [3]Pattern{Wildcard(), Wildcard(), Wildcard()},
		},
		{
			name:   "trailing components default to wildcard",
			tokens: []string{"mail:total"},
			want:   [3]Pattern{Literal("mail:total"), Wildcard(), Wildcard()},
		},
		{
			name:   "markers and literal",
			tokens: []string{"mail:total", ".", "-"},
			want:   [3]Pattern{Literal("mail:total"), Wildcard(), Blank()},
		},
		{
			name:   "all markers",
			tokens: []string{".", "-", "."},
			want:   [3]Pattern{Wildcard(), Blank(), Wildcard()},
		},
		{
			name:    "four components rejected",
			tokens:  []string{"a", "b", "c", "d"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseKeyed(tt.tokens)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.HasCode(err, errors.ErrCodeInvalidQuery) {
					t.Errorf("expected INVALID_QUERY, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec.Form() != counter.FormKeyed {
				t.Errorf("expected keyed form, got %v", spec.Form())
			}
			if spec.Patterns() != tt.want {
				t.Errorf("patterns = %v, want %v", spec.Patterns(), tt.want)
			}
		})
	}
}

func TestParseToken(t *testing.T) {
	if ParseToken(".") != Wildcard() {
		t.Error("expected \".\" to parse as wildcard")
	}
	if ParseToken("-") != Blank() {
		t.Error("expected \"-\" to parse as blank")
	}
	if ParseToken("eu") != Literal("eu") {
		t.Error("expected plain text to parse as literal")
	}
}

func TestSpecJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{
			name: "named",
			spec: Named("queue-size"),
			want: `{"form":"named","name":"queue-size"}`,
		},
		{
			name: "named list mode",
			spec: Named(""),
			want: `{"form":"named"}`,
		},
		{
			name: "keyed",
			spec: Keyed(Literal("mail:total"), Wildcard(), Blank()),
			want: `{"form":"keyed","keys":["mail:total",".","-"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.spec)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("marshal = %s, want %s", data, tt.want)
			}

			var back Spec
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back != tt.spec {
				t.Errorf("round trip = %+v, want %+v", back, tt.spec)
			}
		})
	}
}

func TestSpecUnmarshalRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown form", `{"form":"fancy"}`},
		{"marker in named form", `{"form":"named","name":"."}`},
		{"too many keys", `{"form":"keyed","keys":["a","b","c","d"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Spec
			if err := json.Unmarshal([]byte(tt.data), &s); err == nil {
				t.Fatalf("expected error for %s", tt.data)
			}
		})
	}
}
