package model

import (
	"fmt"
	"maps"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/stream"
)

type Vec3 [3]float64

func (v Vec3) encode(w *stream.Writer) {
	w.StartArray().Float(v[0]).Float(v[1]).Float(v[2]).EndArray()
}

func decodeVec3(node *ir.Node) (Vec3, error) {
	var v Vec3
	if node == nil {
		return v, fmt.Errorf("%w: missing vector", ErrBadModel)
	}
	if node.Type != ir.ArrayType || len(node.Values) != 3 {
		return v, fmt.Errorf("%w: %s: expected 3 numbers", ErrBadModel, node.Path())
	}
	for i, n := range node.Values {
		f, err := n.AsFloat()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// Slot is a context an item model is displayed in.
type Slot int

const (
	ThirdPersonRightHand Slot = iota
	ThirdPersonLeftHand
	FirstPersonRightHand
	FirstPersonLeftHand
	Head
	GUI
	Ground
	Fixed
	numSlots
)

var slotNames = [numSlots]string{
	"thirdperson_righthand",
	"thirdperson_lefthand",
	"firstperson_righthand",
	"firstperson_lefthand",
	"head",
	"gui",
	"ground",
	"fixed",
}

func (s Slot) String() string {
	if s < 0 || s >= numSlots {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown display slot %q", ErrBadModel, name)
}

var DefaultScale = Vec3{1, 1, 1}

const (
	maxScale       = 4.0
	maxTranslation = 80.0
)

// Transform positions a model in a display slot. Start from Identity; the
// zero Transform scales to nothing.
type Transform struct {
	Rotation    Vec3
	Translation Vec3
	Scale       Vec3
}

func Identity() Transform {
	return Transform{Scale: DefaultScale}
}

func (t Transform) encode(w *stream.Writer) {
	w.StartObject()
	if t.Rotation != (Vec3{}) {
		w.Key("rotation")
		t.Rotation.encode(w)
	}
	if t.Translation != (Vec3{}) {
		w.Key("translation")
		t.Translation.encode(w)
	}
	if t.Scale != DefaultScale {
		w.Key("scale")
		t.Scale.encode(w)
	}
	w.EndObject()
}

// decodeTransform clamps translation to [-80, 80] and scale to at most 4,
// as the game does.
func decodeTransform(node *ir.Node) (Transform, error) {
	t := Identity()
	if node.Type != ir.ObjectType {
		return t, fmt.Errorf("%w: %s: expected object, got %s", ErrBadModel, node.Path(), node.Type)
	}
	var err error
	if n := ir.Get(node, "rotation"); n != nil {
		if t.Rotation, err = decodeVec3(n); err != nil {
			return t, err
		}
	}
	if n := ir.Get(node, "translation"); n != nil {
		if t.Translation, err = decodeVec3(n); err != nil {
			return t, err
		}
		for i, f := range t.Translation {
			t.Translation[i] = max(-maxTranslation, min(maxTranslation, f))
		}
	}
	if n := ir.Get(node, "scale"); n != nil {
		if t.Scale, err = decodeVec3(n); err != nil {
			return t, err
		}
		for i, f := range t.Scale {
			t.Scale[i] = min(maxScale, f)
		}
	}
	return t, nil
}

// Display holds the transforms of the slots a model overrides.
type Display struct {
	slots map[Slot]Transform
}

// With returns a copy of d with t set for s.
func (d Display) With(s Slot, t Transform) Display {
	res := Display{slots: maps.Clone(d.slots)}
	if res.slots == nil {
		res.slots = map[Slot]Transform{}
	}
	res.slots[s] = t
	return res
}

func (d Display) Get(s Slot) (Transform, bool) {
	t, ok := d.slots[s]
	return t, ok
}

func (d Display) IsEmpty() bool {
	return len(d.slots) == 0
}

func (d Display) encode(w *stream.Writer) {
	w.StartObject()
	for s := Slot(0); s < numSlots; s++ {
		t, ok := d.slots[s]
		if !ok {
			continue
		}
		w.Key(s.String())
		t.encode(w)
	}
	w.EndObject()
}

func decodeDisplay(node *ir.Node) (Display, error) {
	var d Display
	if node.Type != ir.ObjectType {
		return d, fmt.Errorf("%w: %s: expected object, got %s", ErrBadModel, node.Path(), node.Type)
	}
	for i, f := range node.Fields {
		s, err := ParseSlot(f.String)
		if err != nil {
			return d, err
		}
		t, err := decodeTransform(node.Values[i])
		if err != nil {
			return d, err
		}
		d = d.With(s, t)
	}
	return d, nil
}
