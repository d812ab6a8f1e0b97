/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	"fmt"

	"github.com/mtaops/statctl/pkg/counter"
)

// Reserved query tokens. These are a wire-level contract shared with every
// node daemon and must match exactly.
const (
	// TokenWildcard matches any key component, including an absent one.
	TokenWildcard = "."
	// TokenBlank matches only an explicitly absent key component.
	TokenBlank = "-"
)

type patternKind int

const (
	patternWildcard patternKind = iota
	patternBlank
	patternLiteral
)

// Pattern is one key-component query term: a literal value, a wildcard, or
// a blank (must-be-absent) marker. The zero value is the wildcard.
type Pattern struct {
	kind patternKind
	lit  string
}

// Literal returns a pattern accepting only a present component exactly
// equal to s.
func Literal(s string) Pattern {
	return Pattern{kind: patternLiteral, lit: s}
}

// Wildcard returns the pattern accepting any component, absent included.
func Wildcard() Pattern {
	return Pattern{kind: patternWildcard}
}

// Blank returns the pattern accepting only an explicitly absent component.
func Blank() Pattern {
	return Pattern{kind: patternBlank}
}

// ParseToken maps one query token to its pattern: "." to Wildcard, "-" to
// Blank, anything else to a Literal.
func ParseToken(tok string) Pattern {
	switch tok {
	case TokenWildcard:
		return Wildcard()
	case TokenBlank:
		return Blank()
	default:
		return Literal(tok)
	}
}

// Matches reports whether the pattern accepts the given concrete component.
func (p Pattern) Matches(c counter.Component) bool {
	switch p.kind {
	case patternWildcard:
		return true
	case patternBlank:
		return c.IsNull()
	default:
		return !c.IsNull() && c.Value() == p.lit
	}
}

// Token renders the pattern back to its query-language token.
func (p Pattern) Token() string {
	switch p.kind {
	case patternWildcard:
		return TokenWildcard
	case patternBlank:
		return TokenBlank
	default:
		return p.lit
	}
}

// String implements fmt.Stringer for log output.
func (p Pattern) String() string {
	switch p.kind {
	case patternWildcard:
		return "<any>"
	case patternBlank:
		return "<blank>"
	default:
		return fmt.Sprintf("%q", p.lit)
	}
}
