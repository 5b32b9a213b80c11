// Package model implements block and item models.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/stream"
)

var ErrBadModel = errors.New("bad model")

// GUILight is how an item model is lit in inventories. The empty value
// leaves it to the parent, which defaults to GUILightSide.
type GUILight string

const (
	GUILightFront GUILight = "front"
	GUILightSide  GUILight = "side"
)

// TextureRef is either a texture key or a reference "#name" to another
// texture variable of the model.
type TextureRef struct {
	Key key.Key
	Ref string
}

func ParseTextureRef(s string) (TextureRef, error) {
	if ref, ok := strings.CutPrefix(s, "#"); ok {
		return TextureRef{Ref: ref}, nil
	}
	k, err := key.Parse(s)
	if err != nil {
		return TextureRef{}, err
	}
	return TextureRef{Key: k}, nil
}

func (t TextureRef) String() string {
	if t.Ref != "" {
		return "#" + t.Ref
	}
	return t.Key.Compact(key.DefaultNamespace)
}

// TextureVar binds a texture variable of a model.
type TextureVar struct {
	Name  string
	Value TextureRef
}

// Override replaces the model of an item when every predicate holds.
type Override struct {
	Predicate []Predicate
	Model     key.Key
}

// Predicate compares an item property against a value, usually a number.
type Predicate struct {
	Name  string
	Value any
}

// Model is a block or item model. Build one with a Builder.
type Model struct {
	Key              key.Key
	Parent           key.Key
	Display          Display
	Elements         []Element
	AmbientOcclusion bool
	Textures         []TextureVar
	GUILight         GUILight
	Overrides        []Override
}

func (m *Model) MarshalStream(w *stream.Writer) error {
	return Encode(w, m)
}

// Texture returns the value bound to the variable name.
func (m *Model) Texture(name string) (TextureRef, bool) {
	for _, tv := range m.Textures {
		if tv.Name == name {
			return tv.Value, true
		}
	}
	return TextureRef{}, false
}

func Encode(w *stream.Writer, m *Model) error {
	w.StartObject()
	if !m.Parent.IsZero() {
		w.KeyValue("parent", m.Parent)
	}
	if !m.Display.IsEmpty() {
		w.Key("display")
		m.Display.encode(w)
	}
	if len(m.Elements) != 0 {
		w.Key("elements").StartArray()
		for i := range m.Elements {
			m.Elements[i].encode(w)
		}
		w.EndArray()
	}
	if !m.AmbientOcclusion {
		w.KeyValue("ambientocclusion", false)
	}
	if len(m.Textures) != 0 {
		w.Key("textures").StartObject()
		for _, tv := range m.Textures {
			w.KeyValue(tv.Name, tv.Value.String())
		}
		w.EndObject()
	}
	if m.GUILight != "" {
		w.KeyValue("gui_light", string(m.GUILight))
	}
	if len(m.Overrides) != 0 {
		w.Key("overrides").StartArray()
		for _, o := range m.Overrides {
			w.StartObject().Key("predicate").StartObject()
			for _, p := range o.Predicate {
				w.KeyValue(p.Name, p.Value)
			}
			w.EndObject().KeyValue("model", o.Model).EndObject()
		}
		w.EndArray()
	}
	w.EndObject()
	return w.Err()
}

func Decode(node *ir.Node, k key.Key) (*Model, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s: expected object, got %s", ErrBadModel, node.Path(), node.Type)
	}
	b := NewBuilder(k)
	for i, f := range node.Fields {
		v := node.Values[i]
		var err error
		switch f.String {
		case "parent":
			err = b.decodeParent(v)
		case "display":
			b.m.Display, err = decodeDisplay(v)
		case "elements":
			err = b.decodeElements(v)
		case "ambientocclusion":
			b.m.AmbientOcclusion, err = v.AsBool()
		case "textures":
			err = b.decodeTextures(v)
		case "gui_light":
			var s string
			s, err = v.AsString()
			b.m.GUILight = GUILight(s)
		case "overrides":
			err = b.decodeOverrides(v)
		}
		if err != nil {
			return nil, wrap(err)
		}
	}
	return b.Build()
}

func wrap(err error) error {
	if errors.Is(err, ErrBadModel) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrBadModel, err)
}

func (b *Builder) decodeParent(v *ir.Node) error {
	s, err := v.AsString()
	if err != nil {
		return err
	}
	b.m.Parent, err = key.Parse(s)
	return err
}

func (b *Builder) decodeElements(v *ir.Node) error {
	if v.Type != ir.ArrayType {
		return fmt.Errorf("%s: expected array, got %s", v.Path(), v.Type)
	}
	for _, en := range v.Values {
		e, err := decodeElement(en)
		if err != nil {
			return err
		}
		b.m.Elements = append(b.m.Elements, e)
	}
	return nil
}

func (b *Builder) decodeTextures(v *ir.Node) error {
	if v.Type != ir.ObjectType {
		return fmt.Errorf("%s: expected object, got %s", v.Path(), v.Type)
	}
	for i, f := range v.Fields {
		s, err := v.Values[i].AsString()
		if err != nil {
			return err
		}
		ref, err := ParseTextureRef(s)
		if err != nil {
			return err
		}
		b.Texture(f.String, ref)
	}
	return nil
}

func (b *Builder) decodeOverrides(v *ir.Node) error {
	if v.Type != ir.ArrayType {
		return fmt.Errorf("%s: expected array, got %s", v.Path(), v.Type)
	}
	for _, on := range v.Values {
		ms, err := ir.Get(on, "model").AsString()
		if err != nil {
			return err
		}
		mk, err := key.Parse(ms)
		if err != nil {
			return err
		}
		o := Override{Model: mk}
		pred := ir.Get(on, "predicate")
		if pred == nil || pred.Type != ir.ObjectType {
			return fmt.Errorf("%s: missing predicate", on.Path())
		}
		for j, pf := range pred.Fields {
			pv := pred.Values[j]
			switch pv.Type {
			case ir.ObjectType, ir.ArrayType, ir.NullType:
				return fmt.Errorf("%s: predicate must be a scalar", pv.Path())
			}
			o.Predicate = append(o.Predicate, Predicate{Name: pf.String, Value: pv.Scalar()})
		}
		b.m.Overrides = append(b.m.Overrides, o)
	}
	return nil
}
