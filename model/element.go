package model

import (
	"fmt"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/stream"
)

// Direction names a face of a cuboid.
type Direction int

const (
	Down Direction = iota
	Up
	North
	South
	West
	East
	numDirections
)

var directionNames = [numDirections]string{"down", "up", "north", "south", "west", "east"}

func (d Direction) String() string {
	if d < 0 || d >= numDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func ParseDirection(s string) (Direction, error) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrBadModel, s)
}

// NoTint marks a face which is not tinted.
const NoTint = -1

// Face is one textured side of an element. Start from NewFace.
type Face struct {
	// UV is in texture pixels; nil derives it from the element bounds.
	UV        *[4]float64
	Texture   string
	CullFace  *Direction
	Rotation  int
	TintIndex int
}

func NewFace(texture string) Face {
	return Face{Texture: texture, TintIndex: NoTint}
}

func (f *Face) encode(w *stream.Writer) {
	w.StartObject()
	if f.UV != nil {
		w.Key("uv").StartArray()
		for _, x := range f.UV {
			w.Float(x)
		}
		w.EndArray()
	}
	w.KeyValue("texture", f.Texture)
	if f.CullFace != nil {
		w.KeyValue("cullface", f.CullFace.String())
	}
	if f.Rotation != 0 {
		w.KeyValue("rotation", f.Rotation)
	}
	if f.TintIndex != NoTint {
		w.KeyValue("tintindex", f.TintIndex)
	}
	w.EndObject()
}

func decodeFace(node *ir.Node) (Face, error) {
	f := NewFace("")
	if node.Type != ir.ObjectType {
		return f, fmt.Errorf("%w: %s: expected object, got %s", ErrBadModel, node.Path(), node.Type)
	}
	var err error
	if f.Texture, err = ir.Get(node, "texture").AsString(); err != nil {
		return f, err
	}
	if n := ir.Get(node, "uv"); n != nil {
		if n.Type != ir.ArrayType || len(n.Values) != 4 {
			return f, fmt.Errorf("%w: %s: expected 4 numbers", ErrBadModel, n.Path())
		}
		var uv [4]float64
		for i, v := range n.Values {
			if uv[i], err = v.AsFloat(); err != nil {
				return f, err
			}
		}
		f.UV = &uv
	}
	if n := ir.Get(node, "cullface"); n != nil {
		s, err := n.AsString()
		if err != nil {
			return f, err
		}
		d, err := ParseDirection(s)
		if err != nil {
			return f, err
		}
		f.CullFace = &d
	}
	for _, fld := range []struct {
		name string
		dst  *int
	}{{"rotation", &f.Rotation}, {"tintindex", &f.TintIndex}} {
		n := ir.Get(node, fld.name)
		if n == nil {
			continue
		}
		i, err := n.AsInt()
		if err != nil {
			return f, err
		}
		*fld.dst = int(i)
	}
	return f, nil
}

type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// Rotation rotates an element around one axis.
type Rotation struct {
	Origin  Vec3
	Axis    Axis
	Angle   float64
	Rescale bool
}

// Element is a cuboid of a model. Start from NewElement.
type Element struct {
	From, To Vec3
	Rotation *Rotation
	Shade    bool
	Faces    [numDirections]*Face
}

func NewElement(from, to Vec3) Element {
	return Element{From: from, To: to, Shade: true}
}

// WithFace returns e with face f on side d.
func (e Element) WithFace(d Direction, f Face) Element {
	e.Faces[d] = &f
	return e
}

func (e *Element) validate() error {
	for _, v := range []Vec3{e.From, e.To} {
		for _, c := range v {
			if c < -16 || c > 32 {
				return fmt.Errorf("coordinate %v outside [-16, 32]", c)
			}
		}
	}
	if r := e.Rotation; r != nil {
		switch r.Axis {
		case AxisX, AxisY, AxisZ:
		default:
			return fmt.Errorf("axis %q", r.Axis)
		}
		switch r.Angle {
		case -45, -22.5, 0, 22.5, 45:
		default:
			return fmt.Errorf("angle %v", r.Angle)
		}
	}
	for d, f := range e.Faces {
		if f == nil {
			continue
		}
		if f.Rotation < 0 || f.Rotation > 270 || f.Rotation%90 != 0 {
			return fmt.Errorf("%s face rotation %d", Direction(d), f.Rotation)
		}
		if f.Texture == "" {
			return fmt.Errorf("%s face without texture", Direction(d))
		}
	}
	return nil
}

func (e *Element) encode(w *stream.Writer) {
	w.StartObject().Key("from")
	e.From.encode(w)
	w.Key("to")
	e.To.encode(w)
	if r := e.Rotation; r != nil {
		w.Key("rotation").StartObject().Key("origin")
		r.Origin.encode(w)
		w.KeyValue("axis", string(r.Axis)).KeyValue("angle", r.Angle)
		if r.Rescale {
			w.KeyValue("rescale", true)
		}
		w.EndObject()
	}
	if !e.Shade {
		w.KeyValue("shade", false)
	}
	w.Key("faces").StartObject()
	for d, f := range e.Faces {
		if f == nil {
			continue
		}
		w.Key(Direction(d).String())
		f.encode(w)
	}
	w.EndObject().EndObject()
}

func decodeElement(node *ir.Node) (Element, error) {
	e := NewElement(Vec3{}, Vec3{})
	if node.Type != ir.ObjectType {
		return e, fmt.Errorf("%w: %s: expected object, got %s", ErrBadModel, node.Path(), node.Type)
	}
	var err error
	if e.From, err = decodeVec3(ir.Get(node, "from")); err != nil {
		return e, err
	}
	if e.To, err = decodeVec3(ir.Get(node, "to")); err != nil {
		return e, err
	}
	if n := ir.Get(node, "rotation"); n != nil {
		r := &Rotation{}
		if r.Origin, err = decodeVec3(ir.Get(n, "origin")); err != nil {
			return e, err
		}
		axis, err := ir.Get(n, "axis").AsString()
		if err != nil {
			return e, err
		}
		r.Axis = Axis(axis)
		if r.Angle, err = ir.Get(n, "angle").AsFloat(); err != nil {
			return e, err
		}
		if rs := ir.Get(n, "rescale"); rs != nil {
			if r.Rescale, err = rs.AsBool(); err != nil {
				return e, err
			}
		}
		e.Rotation = r
	}
	if n := ir.Get(node, "shade"); n != nil {
		if e.Shade, err = n.AsBool(); err != nil {
			return e, err
		}
	}
	faces := ir.Get(node, "faces")
	if faces == nil || faces.Type != ir.ObjectType {
		return e, fmt.Errorf("%w: %s: missing faces", ErrBadModel, node.Path())
	}
	for i, f := range faces.Fields {
		d, err := ParseDirection(f.String)
		if err != nil {
			return e, err
		}
		face, err := decodeFace(faces.Values[i])
		if err != nil {
			return e, err
		}
		e.Faces[d] = &face
	}
	return e, nil
}
