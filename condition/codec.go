package condition

import (
	"fmt"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/stream"
)

const (
	andKey = "AND"
	orKey  = "OR"
)

// Encode writes c into the enclosing object. A top level And writes its
// children directly, since the fields of one object are implicitly
// conjoined; nested And and Or nodes with several children are wrapped in
// "AND" or "OR" arrays of objects. None writes nothing.
func Encode(w *stream.Writer, c Condition, topLevel bool) error {
	switch c.kind {
	case KindNone:
	case KindMatch:
		w.Key(c.key).String(valueString(c.value))
	case KindAnd:
		if topLevel || len(c.children) == 1 {
			for _, child := range c.children {
				if err := Encode(w, child, false); err != nil {
					return err
				}
			}
			break
		}
		if err := encodeList(w, andKey, c.children); err != nil {
			return err
		}
	case KindOr:
		if len(c.children) == 1 {
			return Encode(w, c.children[0], false)
		}
		if err := encodeList(w, orKey, c.children); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrBadNode, c.kind)
	}
	return w.Err()
}

func encodeList(w *stream.Writer, name string, children []Condition) error {
	w.Key(name).StartArray()
	for _, child := range children {
		w.StartObject()
		if err := Encode(w, child, false); err != nil {
			return err
		}
		w.EndObject()
	}
	w.EndArray()
	return w.Err()
}

// EncodeObject writes c wrapped in its own object.
func EncodeObject(w *stream.Writer, c Condition) error {
	w.StartObject()
	if err := Encode(w, c, true); err != nil {
		return err
	}
	w.EndObject()
	return w.Err()
}

// Decode reads a condition object. A single "AND" or "OR" entry holds an
// array of condition objects; any other single entry is a match; several
// entries are matches conjoined.
func Decode(node *ir.Node) (Condition, error) {
	if node.Type != ir.ObjectType {
		return None, fmt.Errorf("%w: %s: expected object, got %s", ErrBadNode, node.Path(), node.Type)
	}
	switch len(node.Fields) {
	case 0:
		return None, fmt.Errorf("%w: %s", ErrEmpty, node.Path())
	case 1:
		name, val := node.Fields[0].String, node.Values[0]
		switch name {
		case andKey:
			cs, err := decodeList(val)
			if err != nil {
				return None, err
			}
			return AndOf(cs)
		case orKey:
			cs, err := decodeList(val)
			if err != nil {
				return None, err
			}
			return OrOf(cs)
		}
		return decodeMatch(name, val)
	}
	cs := make([]Condition, len(node.Fields))
	for i, f := range node.Fields {
		m, err := decodeMatch(f.String, node.Values[i])
		if err != nil {
			return None, err
		}
		cs[i] = m
	}
	return AndOf(cs)
}

func decodeList(node *ir.Node) ([]Condition, error) {
	if node.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: %s: expected array, got %s", ErrBadNode, node.Path(), node.Type)
	}
	if len(node.Values) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, node.Path())
	}
	cs := make([]Condition, len(node.Values))
	for i, v := range node.Values {
		c, err := Decode(v)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return cs, nil
}

func decodeMatch(name string, val *ir.Node) (Condition, error) {
	switch val.Type {
	case ir.StringType:
		return Match(name, val.String), nil
	case ir.BoolType, ir.NumberType:
		return Match(name, valueString(val.Scalar())), nil
	}
	return None, fmt.Errorf("%w: %s: match value must be a scalar, got %s", ErrBadNode, val.Path(), val.Type)
}
