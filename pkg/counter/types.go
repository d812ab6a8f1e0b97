/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package counter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Form identifies which of the two counter addressing schemes a key or a
// query uses.
type Form int

const (
	// FormNamed addresses flat daemon counters by a single string name.
	FormNamed Form = iota
	// FormKeyed addresses application counters by three ordered components.
	FormKeyed
)

// String returns the string representation of the Form.
func (f Form) String() string {
	switch f {
	case FormNamed:
		return "named"
	case FormKeyed:
		return "keyed"
	default:
		return fmt.Sprintf("form(%d)", int(f))
	}
}

// Component is one position of a keyed counter key: a literal string value
// or an explicit null. The zero value is the null component.
type Component struct {
	value   string
	present bool
}

// Lit returns a literal component holding s.
func Lit(s string) Component {
	return Component{value: s, present: true}
}

// Null returns the explicitly absent component.
func Null() Component {
	return Component{}
}

// IsNull reports whether the component is explicitly absent.
func (c Component) IsNull() bool {
	return !c.present
}

// Value returns the literal value. It is the empty string for null
// components; use IsNull to distinguish a null from an empty literal.
func (c Component) Value() string {
	return c.value
}

// String renders the component for human output, using "-" for null,
// matching the query language's blank marker.
func (c Component) String() string {
	if !c.present {
		return "-"
	}
	return c.value
}

// Compare orders components deterministically: null sorts before any
// literal, literals sort lexicographically.
func (c Component) Compare(o Component) int {
	switch {
	case !c.present && !o.present:
		return 0
	case !c.present:
		return -1
	case !o.present:
		return 1
	default:
		return strings.Compare(c.value, o.value)
	}
}

// MarshalJSON renders literal components as JSON strings and null
// components as JSON null.
func (c Component) MarshalJSON() ([]byte, error) {
	if !c.present {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

// UnmarshalJSON accepts a JSON string or null.
func (c *Component) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Component{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("key component must be a string or null: %w", err)
	}
	*c = Component{value: s, present: true}
	return nil
}

// MarshalYAML renders literal components as strings and null components as nil.
func (c Component) MarshalYAML() (any, error) {
	if !c.present {
		return nil, nil
	}
	return c.value, nil
}

// Key is the concrete address a counter carries on a node: a flat name for
// the named form, or three components for the keyed form. Keys are
// comparable values and safe to use as map keys.
type Key struct {
	form  Form
	name  string
	parts [3]Component
}

// Named returns a key for a flat daemon counter.
func Named(name string) Key {
	return Key{form: FormNamed, name: name}
}

// Keyed returns a key for an application counter with exactly three
// components.
func Keyed(k1, k2, k3 Component) Key {
	return Key{form: FormKeyed, parts: [3]Component{k1, k2, k3}}
}

// Form returns the addressing form of the key.
func (k Key) Form() Form {
	return k.form
}

// Name returns the counter name for named keys. It is empty for keyed keys.
func (k Key) Name() string {
	return k.name
}

// Parts returns the three components of a keyed key. All components are
// null for named keys.
func (k Key) Parts() [3]Component {
	return k.parts
}

// Compare orders keys deterministically: named keys sort by name; keyed keys
// sort component-wise with null components first. Named keys sort before
// keyed keys, though the two forms never meet within one query result.
func (k Key) Compare(o Key) int {
	if k.form != o.form {
		if k.form == FormNamed {
			return -1
		}
		return 1
	}
	if k.form == FormNamed {
		return strings.Compare(k.name, o.name)
	}
	for i := range k.parts {
		if c := k.parts[i].Compare(o.parts[i]); c != 0 {
			return c
		}
	}
	return 0
}

// String renders the key for human output: the name for named keys, or the
// components joined by spaces with "-" for nulls.
func (k Key) String() string {
	if k.form == FormNamed {
		return k.name
	}
	return fmt.Sprintf("%s %s %s", k.parts[0], k.parts[1], k.parts[2])
}

// Sample is one reported counter from a node: a concrete key plus its
// numeric value. Origin identifies the reporting node and is assigned by the
// querying side, not carried on the wire.
type Sample struct {
	Origin string
	Key    Key
	Value  float64
}

// sampleWire is the JSON shape samples travel in. Named samples carry only
// the name; keyed samples carry the three components, nulls included.
type sampleWire struct {
	Name  string        `json:"name,omitempty"`
	Key   *[3]Component `json:"key,omitempty"`
	Value float64       `json:"value"`
}

// MarshalJSON renders the sample in its wire shape.
func (s Sample) MarshalJSON() ([]byte, error) {
	w := sampleWire{Value: s.Value}
	switch s.Key.form {
	case FormNamed:
		w.Name = s.Key.name
	case FormKeyed:
		parts := s.Key.parts
		w.Key = &parts
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire shape, inferring the form from which field
// is present. A sample carrying both a name and key components is malformed.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var w sampleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Name != "" && w.Key != nil {
		return fmt.Errorf("sample carries both a name and key components")
	}
	if w.Key != nil {
		s.Key = Keyed(w.Key[0], w.Key[1], w.Key[2])
	} else {
		s.Key = Named(w.Name)
	}
	s.Value = w.Value
	return nil
}

// MarshalYAML renders the sample in the same shape as its JSON wire form.
func (s Sample) MarshalYAML() (any, error) {
	out := map[string]any{"value": s.Value}
	switch s.Key.form {
	case FormNamed:
		out["name"] = s.Key.name
	case FormKeyed:
		parts := make([]any, 0, 3)
		for _, p := range s.Key.parts {
			v, _ := p.MarshalYAML()
			parts = append(parts, v)
		}
		out["key"] = parts
	}
	return out, nil
}
