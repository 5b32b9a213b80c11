// Package blockstate implements block state definitions: the mapping from
// the properties of a placed block to the models rendering it.
//
// A definition holds either named variants, each selected by a set of
// property values, or a multipart list of selectors whose conditions are
// evaluated independently.
package blockstate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/signadot/respack/condition"
	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/stream"
)

// Selector applies its variants when its condition holds.
type Selector struct {
	When  condition.Condition
	Apply MultiVariant
}

func (s Selector) MarshalStream(w *stream.Writer) error {
	w.StartObject()
	if !s.When.IsNone() {
		w.Key("when")
		if err := condition.EncodeObject(w, s.When); err != nil {
			return err
		}
	}
	w.Key("apply")
	if err := s.Apply.MarshalStream(w); err != nil {
		return err
	}
	w.EndObject()
	return w.Err()
}

// Case is a named variant entry. The name lists property values as
// "facing=north,lit=true"; the empty name applies to every state.
type Case struct {
	Name  string
	Apply MultiVariant
}

type BlockState struct {
	Key       key.Key
	Variants  []Case
	Multipart []Selector
}

func (b *BlockState) MarshalStream(w *stream.Writer) error {
	return Encode(w, b)
}

func Encode(w *stream.Writer, b *BlockState) error {
	w.StartObject()
	if len(b.Variants) != 0 {
		w.Key("variants").StartObject()
		for _, c := range b.Variants {
			w.Key(c.Name)
			if err := c.Apply.MarshalStream(w); err != nil {
				return err
			}
		}
		w.EndObject()
	}
	if len(b.Multipart) != 0 {
		w.Key("multipart").StartArray()
		for _, s := range b.Multipart {
			if err := s.MarshalStream(w); err != nil {
				return err
			}
		}
		w.EndArray()
	}
	w.EndObject()
	return w.Err()
}

func Decode(node *ir.Node, k key.Key) (*BlockState, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s: expected object, got %s", ErrBadVariant, node.Path(), node.Type)
	}
	b := &BlockState{Key: k}
	if vs := ir.Get(node, "variants"); vs != nil {
		if vs.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: %s: expected object, got %s", ErrBadVariant, vs.Path(), vs.Type)
		}
		for i, f := range vs.Fields {
			m, err := decodeMulti(vs.Values[i])
			if err != nil {
				return nil, err
			}
			b.Variants = append(b.Variants, Case{Name: f.String, Apply: m})
		}
	}
	if mp := ir.Get(node, "multipart"); mp != nil {
		if mp.Type != ir.ArrayType {
			return nil, fmt.Errorf("%w: %s: expected array, got %s", ErrBadVariant, mp.Path(), mp.Type)
		}
		for _, sn := range mp.Values {
			s, err := decodeSelector(sn)
			if err != nil {
				return nil, err
			}
			b.Multipart = append(b.Multipart, s)
		}
	}
	return b, nil
}

func decodeSelector(node *ir.Node) (Selector, error) {
	if node.Type != ir.ObjectType {
		return Selector{}, fmt.Errorf("%w: %s: expected object, got %s", ErrBadVariant, node.Path(), node.Type)
	}
	s := Selector{When: condition.None}
	if when := ir.Get(node, "when"); when != nil {
		c, err := condition.Decode(when)
		if err != nil {
			return Selector{}, err
		}
		s.When = c
	}
	apply := ir.Get(node, "apply")
	if apply == nil {
		return Selector{}, fmt.Errorf("%w: %s: missing apply", ErrBadVariant, node.Path())
	}
	m, err := decodeMulti(apply)
	if err != nil {
		return Selector{}, err
	}
	s.Apply = m
	return s, nil
}

// Resolve returns the variant alternatives rendering a block with the given
// properties: the first matching variant case, or every multipart selector
// whose condition holds.
func (b *BlockState) Resolve(props map[string]string) []MultiVariant {
	var res []MultiVariant
	for _, c := range b.Variants {
		if caseMatches(c.Name, props) {
			res = append(res, c.Apply)
			break
		}
	}
	for _, s := range b.Multipart {
		if s.When.Matches(props) {
			res = append(res, s.Apply)
		}
	}
	return res
}

func caseMatches(name string, props map[string]string) bool {
	if name == "" {
		return true
	}
	for _, kv := range strings.Split(name, ",") {
		k, v, _ := strings.Cut(kv, "=")
		if props[k] != v {
			return false
		}
	}
	return true
}

// CaseName formats props as a variant case name, sorted by property.
func CaseName(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + props[k]
	}
	return strings.Join(parts, ",")
}
