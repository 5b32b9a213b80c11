// Package metadata implements the sections of .mcmeta documents: the root
// pack.mcmeta and the sidecars of textures and other resources.
//
// A Metadata value is an ordered set of parts keyed by section name.
// Sections this package does not know are kept as parsed nodes and written
// back unchanged.
package metadata

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/packformat"
	"github.com/signadot/respack/parse"
	"github.com/signadot/respack/stream"
)

var ErrBadMetadata = errors.New("bad metadata")

// Part is one section of a metadata document.
type Part interface {
	// Section is the name of the field holding the part.
	Section() string
	stream.Marshaler
}

// Metadata is an immutable ordered set of parts with distinct sections.
type Metadata struct {
	parts []Part
}

// Empty has no parts.
var Empty = Metadata{}

// New returns metadata holding parts in order. A later part replaces an
// earlier one with the same section, keeping the earlier position.
func New(parts ...Part) Metadata {
	m := Metadata{}
	for _, p := range parts {
		m = m.With(p)
	}
	return m
}

// With returns a copy of m with p added or replaced.
func (m Metadata) With(p Part) Metadata {
	parts := slices.Clone(m.parts)
	i := m.index(p.Section())
	if i < 0 {
		parts = append(parts, p)
	} else {
		parts[i] = p
	}
	return Metadata{parts: parts}
}

// Without returns a copy of m without the part named section.
func (m Metadata) Without(section string) Metadata {
	i := m.index(section)
	if i < 0 {
		return m
	}
	return Metadata{parts: slices.Delete(slices.Clone(m.parts), i, i+1)}
}

func (m Metadata) index(section string) int {
	return slices.IndexFunc(m.parts, func(p Part) bool { return p.Section() == section })
}

func (m Metadata) Parts() []Part {
	return slices.Clone(m.parts)
}

// Get returns the part named section, or nil.
func (m Metadata) Get(section string) Part {
	if i := m.index(section); i >= 0 {
		return m.parts[i]
	}
	return nil
}

func (m Metadata) IsEmpty() bool {
	return len(m.parts) == 0
}

// Find returns the first part of type P.
func Find[P Part](m Metadata) (P, bool) {
	for _, p := range m.parts {
		if v, ok := p.(P); ok {
			return v, true
		}
	}
	var zero P
	return zero, false
}

func (m Metadata) MarshalStream(w *stream.Writer) error {
	w.StartObject()
	for _, p := range m.parts {
		w.Key(p.Section())
		if err := p.MarshalStream(w); err != nil {
			return fmt.Errorf("writing %s metadata: %w", p.Section(), err)
		}
	}
	w.EndObject()
	return w.Err()
}

type decodeFunc func(*ir.Node, *decodeOpts) (Part, error)

var decoders = map[string]decodeFunc{
	sectionPack:      decodePack,
	sectionOverlays:  decodeOverlays,
	sectionAnimation: decodeAnimation,
	sectionTexture:   decodeTexture,
	sectionVillager:  decodeVillager,
	sectionLanguage:  decodeLanguage,
	sectionFilter:    decodeFilter,
}

type decodeOpts struct {
	formats []packformat.DecodeOption
}

type DecodeOption func(*decodeOpts)

// Coerce repairs inconsistent format ranges in the pack and overlays
// sections with packformat.Coerce instead of failing.
func Coerce(v bool) DecodeOption {
	return func(o *decodeOpts) {
		o.formats = nil
		if v {
			o.formats = []packformat.DecodeOption{packformat.WithCoerce()}
		}
	}
}

// Decode reads a metadata document. Sections are kept in document order.
func Decode(node *ir.Node, opts ...DecodeOption) (Metadata, error) {
	o := &decodeOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if node.Type != ir.ObjectType {
		return Empty, fmt.Errorf("%w: %s: expected object, got %s", ErrBadMetadata, node.Path(), node.Type)
	}
	parts := make([]Part, 0, len(node.Fields))
	for i, f := range node.Fields {
		val := node.Values[i]
		dec, ok := decoders[f.String]
		if !ok {
			parts = append(parts, &Unknown{Name: f.String, Node: val})
			continue
		}
		if val.Type != ir.ObjectType {
			return Empty, fmt.Errorf("%w: %s: expected object, got %s", ErrBadMetadata, val.Path(), val.Type)
		}
		p, err := dec(val, o)
		if err != nil {
			return Empty, err
		}
		parts = append(parts, p)
	}
	return New(parts...), nil
}

// Parse parses and decodes a metadata document. With lenient set it
// accepts comments and trailing commas and coerces inconsistent format
// ranges.
func Parse(d []byte, lenient bool) (Metadata, error) {
	node, err := parse.Parse(d, parse.Lenient(lenient))
	if err != nil {
		return Empty, err
	}
	return Decode(node, Coerce(lenient))
}

// Unknown is a section without a dedicated type.
type Unknown struct {
	Name string
	Node *ir.Node
}

func (u *Unknown) Section() string { return u.Name }

func (u *Unknown) MarshalStream(w *stream.Writer) error {
	w.Node(u.Node)
	return w.Err()
}
