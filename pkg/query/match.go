/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	"github.com/mtaops/statctl/pkg/counter"
)

// Matches reports whether the query accepts one concrete sample. The two
// addressing forms never cross: a named query only ever accepts named
// samples, a keyed query only keyed ones.
//
// Named queries with an empty name accept every named sample (list mode);
// otherwise a named query accepts exactly the sample whose name matches
// case-sensitively. Keyed queries accept a sample iff every pattern accepts
// the sample's component at the same position, independently of the others.
func (s Spec) Matches(smp counter.Sample) bool {
	switch s.form {
	case counter.FormNamed:
		if smp.Key.Form() != counter.FormNamed {
			return false
		}
		if s.name == "" {
			return true
		}
		return smp.Key.Name() == s.name
	case counter.FormKeyed:
		if smp.Key.Form() != counter.FormKeyed {
			return false
		}
		parts := smp.Key.Parts()
		for i, p := range s.patterns {
			if !p.Matches(parts[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Match filters samples down to those the query accepts. It is a pure
// filter: input order is preserved, nothing is mutated, and applying it
// twice yields the same result, so filtering may run on the node or
// centrally with identical output.
func Match(spec Spec, samples []counter.Sample) []counter.Sample {
	matched := make([]counter.Sample, 0, len(samples))
	for _, smp := range samples {
		if spec.Matches(smp) {
			matched = append(matched, smp)
		}
	}
	return matched
}
