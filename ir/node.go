package ir

import (
	"fmt"
	"math"
	"strconv"
)

// Node is a parsed JSON value. Objects keep their fields in document order:
// Fields[i] is a string node holding the name of Values[i].
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

// FromNumber creates a number node from its literal text, filling in
// Int64 when the literal is integral and Float64 otherwise.
func FromNumber(lit string) (*Node, error) {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return &Node{Type: NumberType, Int64: &i, Number: lit}, nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", ErrType, lit)
	}
	return &Node{Type: NumberType, Float64: &f, Number: lit}, nil
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals creates an object preserving the order of kvs.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i, kv := range kvs {
		res.Fields[i] = &Node{
			Type:        StringType,
			String:      kv.Key,
			Parent:      res,
			ParentIndex: i,
			ParentField: kv.Key,
		}
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// Get returns the value of field in object y, or nil.
func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// AsInt returns the value of an integral number node.
func (y *Node) AsInt() (int64, error) {
	if y == nil || y.Type != NumberType {
		return 0, y.typeErr(NumberType)
	}
	if y.Int64 != nil {
		return *y.Int64, nil
	}
	if y.Float64 != nil && *y.Float64 == math.Trunc(*y.Float64) {
		return int64(*y.Float64), nil
	}
	return 0, fmt.Errorf("%w: %s is not an integer", ErrType, y.Path())
}

func (y *Node) AsFloat() (float64, error) {
	if y == nil || y.Type != NumberType {
		return 0, y.typeErr(NumberType)
	}
	if y.Float64 != nil {
		return *y.Float64, nil
	}
	if y.Int64 != nil {
		return float64(*y.Int64), nil
	}
	return strconv.ParseFloat(y.Number, 64)
}

func (y *Node) AsString() (string, error) {
	if y == nil || y.Type != StringType {
		return "", y.typeErr(StringType)
	}
	return y.String, nil
}

func (y *Node) AsBool() (bool, error) {
	if y == nil || y.Type != BoolType {
		return false, y.typeErr(BoolType)
	}
	return y.Bool, nil
}

func (y *Node) typeErr(want Type) error {
	if y == nil {
		return fmt.Errorf("%w: missing %s", ErrType, want)
	}
	return fmt.Errorf("%w: expected %s at %s, got %s", ErrType, want, y.Path(), y.Type)
}

// Scalar returns the Go value of a leaf node: string, bool, int64, float64
// or nil.
func (y *Node) Scalar() any {
	switch y.Type {
	case StringType:
		return y.String
	case BoolType:
		return y.Bool
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return y.Number
	default:
		return nil
	}
}
