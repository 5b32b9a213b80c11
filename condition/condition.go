// Package condition implements the predicates that select multipart block
// state cases: property matches combined with AND and OR.
package condition

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmpty   = errors.New("empty condition")
	ErrBadNode = errors.New("bad condition")
)

type Kind int

const (
	// KindNone always holds and encodes to nothing.
	KindNone Kind = iota
	KindMatch
	KindAnd
	KindOr
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMatch:
		return "match"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	default:
		return fmt.Sprintf("<unknown kind %d>", int(k))
	}
}

// Condition is a tagged union over Kind. The zero value is None.
type Condition struct {
	kind     Kind
	key      string
	value    any
	children []Condition
}

var None = Condition{}

// Match tests property key against value. A string value may list
// alternatives separated by '|'.
func Match(key string, value any) Condition {
	return Condition{kind: KindMatch, key: key, value: value}
}

func And(first Condition, rest ...Condition) Condition {
	return Condition{kind: KindAnd, children: append([]Condition{first}, rest...)}
}

func Or(first Condition, rest ...Condition) Condition {
	return Condition{kind: KindOr, children: append([]Condition{first}, rest...)}
}

// AndOf is And over a slice, which must not be empty.
func AndOf(cs []Condition) (Condition, error) {
	if len(cs) == 0 {
		return None, fmt.Errorf("%w: and without children", ErrEmpty)
	}
	return And(cs[0], cs[1:]...), nil
}

// OrOf is Or over a slice, which must not be empty.
func OrOf(cs []Condition) (Condition, error) {
	if len(cs) == 0 {
		return None, fmt.Errorf("%w: or without children", ErrEmpty)
	}
	return Or(cs[0], cs[1:]...), nil
}

func (c Condition) Kind() Kind   { return c.kind }
func (c Condition) Key() string  { return c.key }
func (c Condition) Value() any   { return c.value }
func (c Condition) IsNone() bool { return c.kind == KindNone }

// Children returns a copy of the children of an And or Or.
func (c Condition) Children() []Condition {
	return append([]Condition(nil), c.children...)
}

// Equal reports structural equality. Match values compare by their string
// form, as that is all that is encoded.
func Equal(a, b Condition) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNone:
		return true
	case KindMatch:
		return a.key == b.key && valueString(a.value) == valueString(b.value)
	case KindAnd, KindOr:
		if len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if !Equal(a.children[i], b.children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Normalize collapses single child And and Or nodes and merges directly
// nested nodes of the same kind. Normalized conditions are equal when they
// encode the same predicate.
func Normalize(c Condition) Condition {
	switch c.kind {
	case KindAnd, KindOr:
		var flat []Condition
		for _, child := range c.children {
			n := Normalize(child)
			if n.kind == c.kind {
				flat = append(flat, n.children...)
				continue
			}
			flat = append(flat, n)
		}
		if len(flat) == 1 {
			return flat[0]
		}
		return Condition{kind: c.kind, children: flat}
	}
	return c
}

// Matches evaluates c against block state properties. A missing property
// reads as the empty string.
func (c Condition) Matches(props map[string]string) bool {
	switch c.kind {
	case KindNone:
		return true
	case KindMatch:
		got := props[c.key]
		for _, alt := range strings.Split(valueString(c.value), "|") {
			if alt == got {
				return true
			}
		}
		return false
	case KindAnd:
		for _, child := range c.children {
			if !child.Matches(props) {
				return false
			}
		}
		return true
	case KindOr:
		for _, child := range c.children {
			if child.Matches(props) {
				return true
			}
		}
		return false
	}
	return false
}

func (c Condition) String() string {
	switch c.kind {
	case KindNone:
		return "none"
	case KindMatch:
		return c.key + "=" + valueString(c.value)
	case KindAnd, KindOr:
		parts := make([]string, len(c.children))
		for i, child := range c.children {
			parts[i] = child.String()
		}
		return c.kind.String() + "(" + strings.Join(parts, ", ") + ")"
	}
	return c.kind.String()
}

func valueString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return "null"
	default:
		return fmt.Sprint(x)
	}
}
