package model

import (
	"fmt"
	"slices"

	"github.com/signadot/respack/key"
)

// Builder assembles a Model. Each Builder owns the model it builds; Build
// returns a copy, so a Builder may be reused.
type Builder struct {
	m Model
}

func NewBuilder(k key.Key) *Builder {
	return &Builder{m: Model{Key: k, AmbientOcclusion: true}}
}

func (b *Builder) Parent(k key.Key) *Builder {
	b.m.Parent = k
	return b
}

// Texture binds a texture variable, replacing an earlier binding of the
// same name in place.
func (b *Builder) Texture(name string, ref TextureRef) *Builder {
	i := slices.IndexFunc(b.m.Textures, func(tv TextureVar) bool { return tv.Name == name })
	if i >= 0 {
		b.m.Textures[i].Value = ref
		return b
	}
	b.m.Textures = append(b.m.Textures, TextureVar{Name: name, Value: ref})
	return b
}

func (b *Builder) Element(e Element) *Builder {
	b.m.Elements = append(b.m.Elements, e)
	return b
}

func (b *Builder) Display(slot Slot, t Transform) *Builder {
	b.m.Display = b.m.Display.With(slot, t)
	return b
}

func (b *Builder) AmbientOcclusion(on bool) *Builder {
	b.m.AmbientOcclusion = on
	return b
}

func (b *Builder) GUILight(l GUILight) *Builder {
	b.m.GUILight = l
	return b
}

func (b *Builder) Override(o Override) *Builder {
	b.m.Overrides = append(b.m.Overrides, o)
	return b
}

// Build validates the model.
func (b *Builder) Build() (*Model, error) {
	m := b.m
	m.Textures = slices.Clone(m.Textures)
	m.Elements = slices.Clone(m.Elements)
	m.Overrides = slices.Clone(m.Overrides)
	switch m.GUILight {
	case "", GUILightFront, GUILightSide:
	default:
		return nil, fmt.Errorf("%w: gui_light %q", ErrBadModel, m.GUILight)
	}
	for i := range m.Elements {
		if err := m.Elements[i].validate(); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrBadModel, i, err)
		}
	}
	return &m, nil
}
