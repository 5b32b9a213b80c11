package blockstate

import (
	"errors"
	"fmt"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/stream"
)

var ErrBadVariant = errors.New("bad variant")

const DefaultWeight = 1

// Variant is a model with rotation applied when a block state is rendered.
type Variant struct {
	model  key.Key
	x, y   int
	uvlock bool
	weight int
}

type VariantOption func(*Variant)

// X rotates the model around the x axis, in degrees.
func X(deg int) VariantOption { return func(v *Variant) { v.x = deg } }

// Y rotates the model around the y axis, in degrees.
func Y(deg int) VariantOption { return func(v *Variant) { v.y = deg } }

// UVLock keeps textures from rotating with the model.
func UVLock(on bool) VariantOption { return func(v *Variant) { v.uvlock = on } }

// Weight is the relative likelihood of the variant among its alternatives.
func Weight(w int) VariantOption { return func(v *Variant) { v.weight = w } }

// NewVariant validates rotations, which must be one of 0, 90, 180 or 270,
// and the weight, which must be positive.
func NewVariant(model key.Key, opts ...VariantOption) (Variant, error) {
	v := Variant{model: model, weight: DefaultWeight}
	for _, opt := range opts {
		opt(&v)
	}
	if model.IsZero() {
		return Variant{}, fmt.Errorf("%w: missing model", ErrBadVariant)
	}
	if !validRotation(v.x) {
		return Variant{}, fmt.Errorf("%w: x rotation %d", ErrBadVariant, v.x)
	}
	if !validRotation(v.y) {
		return Variant{}, fmt.Errorf("%w: y rotation %d", ErrBadVariant, v.y)
	}
	if v.weight < 1 {
		return Variant{}, fmt.Errorf("%w: weight %d", ErrBadVariant, v.weight)
	}
	return v, nil
}

func MustVariant(model key.Key, opts ...VariantOption) Variant {
	v, err := NewVariant(model, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func validRotation(deg int) bool {
	return deg >= 0 && deg <= 270 && deg%90 == 0
}

func (v Variant) Model() key.Key { return v.model }
func (v Variant) X() int         { return v.x }
func (v Variant) Y() int         { return v.y }
func (v Variant) UVLock() bool   { return v.uvlock }
func (v Variant) Weight() int    { return v.weight }

func (v Variant) MarshalStream(w *stream.Writer) error {
	w.StartObject().KeyValue("model", v.model)
	if v.x != 0 {
		w.KeyValue("x", v.x)
	}
	if v.y != 0 {
		w.KeyValue("y", v.y)
	}
	if v.uvlock {
		w.KeyValue("uvlock", true)
	}
	if v.weight != DefaultWeight {
		w.KeyValue("weight", v.weight)
	}
	w.EndObject()
	return w.Err()
}

func decodeVariant(node *ir.Node) (Variant, error) {
	if node.Type != ir.ObjectType {
		return Variant{}, fmt.Errorf("%w: %s: expected object, got %s", ErrBadVariant, node.Path(), node.Type)
	}
	ms, err := ir.Get(node, "model").AsString()
	if err != nil {
		return Variant{}, fmt.Errorf("%w: %w", ErrBadVariant, err)
	}
	model, err := key.Parse(ms)
	if err != nil {
		return Variant{}, fmt.Errorf("%w: %s: %w", ErrBadVariant, node.Path(), err)
	}
	var opts []VariantOption
	for _, f := range []struct {
		name string
		opt  func(int) VariantOption
	}{{"x", X}, {"y", Y}, {"weight", Weight}} {
		v := ir.Get(node, f.name)
		if v == nil {
			continue
		}
		i, err := v.AsInt()
		if err != nil {
			return Variant{}, fmt.Errorf("%w: %w", ErrBadVariant, err)
		}
		opts = append(opts, f.opt(int(i)))
	}
	if v := ir.Get(node, "uvlock"); v != nil {
		b, err := v.AsBool()
		if err != nil {
			return Variant{}, fmt.Errorf("%w: %w", ErrBadVariant, err)
		}
		opts = append(opts, UVLock(b))
	}
	v, err := NewVariant(model, opts...)
	if err != nil {
		return Variant{}, fmt.Errorf("%s: %w", node.Path(), err)
	}
	return v, nil
}

// MultiVariant is a non-empty list of weighted alternatives.
type MultiVariant struct {
	variants []Variant
}

func Multi(first Variant, rest ...Variant) MultiVariant {
	return MultiVariant{variants: append([]Variant{first}, rest...)}
}

func (m MultiVariant) Variants() []Variant {
	return append([]Variant(nil), m.variants...)
}

// MarshalStream writes a single variant as an object and several as an
// array.
func (m MultiVariant) MarshalStream(w *stream.Writer) error {
	if len(m.variants) == 1 {
		return m.variants[0].MarshalStream(w)
	}
	w.StartArray()
	for _, v := range m.variants {
		if err := v.MarshalStream(w); err != nil {
			return err
		}
	}
	w.EndArray()
	return w.Err()
}

func decodeMulti(node *ir.Node) (MultiVariant, error) {
	switch node.Type {
	case ir.ObjectType:
		v, err := decodeVariant(node)
		if err != nil {
			return MultiVariant{}, err
		}
		return Multi(v), nil
	case ir.ArrayType:
		if len(node.Values) == 0 {
			return MultiVariant{}, fmt.Errorf("%w: %s: no variants", ErrBadVariant, node.Path())
		}
		vs := make([]Variant, len(node.Values))
		for i, n := range node.Values {
			v, err := decodeVariant(n)
			if err != nil {
				return MultiVariant{}, err
			}
			vs[i] = v
		}
		return MultiVariant{variants: vs}, nil
	}
	return MultiVariant{}, fmt.Errorf("%w: %s: expected object or array, got %s", ErrBadVariant, node.Path(), node.Type)
}
