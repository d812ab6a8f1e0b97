/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	"encoding/json"
	"fmt"

	"github.com/mtaops/statctl/pkg/counter"
	"github.com/mtaops/statctl/pkg/errors"
)

// maxKeyComponents is the fixed arity of keyed counter addresses.
const maxKeyComponents = 3

// Spec is a normalized counter query: exactly one of the two addressing
// forms, never both.
type Spec struct {
	form     counter.Form
	name     string
	patterns [maxKeyComponents]Pattern
}

// Form returns which addressing form the query uses.
func (s Spec) Form() counter.Form {
	return s.form
}

// Name returns the exact counter name for named queries. Empty means list
// all named counters.
func (s Spec) Name() string {
	return s.name
}

// Patterns returns the three key patterns of a keyed query.
func (s Spec) Patterns() [maxKeyComponents]Pattern {
	return s.patterns
}

// String renders the query in the external query language.
func (s Spec) String() string {
	if s.form == counter.FormNamed {
		if s.name == "" {
			return "<all named>"
		}
		return s.name
	}
	return fmt.Sprintf("%s %s %s",
		s.patterns[0].Token(), s.patterns[1].Token(), s.patterns[2].Token())
}

// Named builds a named-form query directly. An empty name selects list mode.
func Named(name string) Spec {
	return Spec{form: counter.FormNamed, name: name}
}

// Keyed builds a keyed-form query directly from three patterns.
func Keyed(k1, k2, k3 Pattern) Spec {
	return Spec{form: counter.FormKeyed, patterns: [maxKeyComponents]Pattern{k1, k2, k3}}
}

// ParseNamed normalizes raw tokens into a named-form query. Zero tokens
// select list mode. The named form has no key patterns, so reserved markers
// are rejected.
func ParseNamed(tokens []string) (Spec, error) {
	switch len(tokens) {
	case 0:
		return Named(""), nil
	case 1:
		tok := tokens[0]
		if tok == TokenWildcard || tok == TokenBlank {
			return Spec{}, errors.NewWithContext(errors.ErrCodeInvalidQuery,
				"named counter queries take an exact name, not a key pattern",
				map[string]any{"token": tok})
		}
		return Named(tok), nil
	default:
		return Spec{}, errors.NewWithContext(errors.ErrCodeInvalidQuery,
			"named counter queries take at most one name",
			map[string]any{"tokens": len(tokens)})
	}
}

// ParseKeyed normalizes raw tokens into a keyed-form query. Up to three
// tokens are accepted; omitted trailing components default to the wildcard.
func ParseKeyed(tokens []string) (Spec, error) {
	if len(tokens) > maxKeyComponents {
		return Spec{}, errors.NewWithContext(errors.ErrCodeInvalidQuery,
			"keyed counter queries take at most three key components",
			map[string]any{"tokens": len(tokens)})
	}
	var patterns [maxKeyComponents]Pattern
	for i := range patterns {
		if i < len(tokens) {
			patterns[i] = ParseToken(tokens[i])
		} else {
			patterns[i] = Wildcard()
		}
	}
	return Spec{form: counter.FormKeyed, patterns: patterns}, nil
}

// specWire is the JSON shape queries travel in. Keyed patterns are carried
// as their query-language tokens.
type specWire struct {
	Form string   `json:"form"`
	Name string   `json:"name,omitempty"`
	Keys []string `json:"keys,omitempty"`
}

// MarshalJSON renders the spec in its wire shape.
func (s Spec) MarshalJSON() ([]byte, error) {
	w := specWire{Form: s.form.String()}
	switch s.form {
	case counter.FormNamed:
		w.Name = s.name
	case counter.FormKeyed:
		w.Keys = make([]string, 0, maxKeyComponents)
		for _, p := range s.patterns {
			w.Keys = append(w.Keys, p.Token())
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes and re-validates the wire shape through the same
// normalization path used for command tokens.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var w specWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Form {
	case counter.FormNamed.String():
		spec, err := ParseNamed(nameTokens(w.Name))
		if err != nil {
			return err
		}
		*s = spec
		return nil
	case counter.FormKeyed.String():
		spec, err := ParseKeyed(w.Keys)
		if err != nil {
			return err
		}
		*s = spec
		return nil
	default:
		return errors.NewWithContext(errors.ErrCodeInvalidQuery,
			"unknown query form", map[string]any{"form": w.Form})
	}
}

func nameTokens(name string) []string {
	if name == "" {
		return nil
	}
	return []string{name}
}
