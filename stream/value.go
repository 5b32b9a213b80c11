package stream

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
)

// Marshaler is implemented by values that write themselves to a Writer.
type Marshaler interface {
	MarshalStream(w *Writer) error
}

// Value writes v. Supported are strings, key.Key, booleans, integers,
// floats, json.Number, nil, []string, []int, []any, map[string]any (sorted by
// key), *ir.Node and Marshaler. Anything else records ErrUnsupportedValue.
func (w *Writer) Value(v any) *Writer {
	switch x := v.(type) {
	case nil:
		return w.Null()
	case string:
		return w.String(x)
	case key.Key:
		return w.String(x.Compact(w.keyNS))
	case bool:
		return w.Bool(x)
	case int:
		return w.Int(int64(x))
	case int8:
		return w.Int(int64(x))
	case int16:
		return w.Int(int64(x))
	case int32:
		return w.Int(int64(x))
	case int64:
		return w.Int(x)
	case uint:
		return w.Uint(uint64(x))
	case uint8:
		return w.Uint(uint64(x))
	case uint16:
		return w.Uint(uint64(x))
	case uint32:
		return w.Uint(uint64(x))
	case uint64:
		return w.Uint(x)
	case float32:
		return w.float(float64(x), 32)
	case float64:
		return w.float(x, 64)
	case json.Number:
		return w.number(x)
	case []string:
		w.StartArray()
		for _, s := range x {
			w.String(s)
		}
		return w.EndArray()
	case []int:
		w.StartArray()
		for _, i := range x {
			w.Int(int64(i))
		}
		return w.EndArray()
	case []any:
		w.StartArray()
		for _, e := range x {
			w.Value(e)
		}
		return w.EndArray()
	case map[string]any:
		w.StartObject()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			w.Key(k).Value(x[k])
		}
		return w.EndObject()
	case *ir.Node:
		return w.Node(x)
	case Marshaler:
		if w.err != nil {
			return w
		}
		if err := x.MarshalStream(w); err != nil {
			w.fail(err)
		}
		return w
	}
	w.fail(fmt.Errorf("%w: %T", ErrUnsupportedValue, v))
	return w
}

func (w *Writer) String(s string) *Writer {
	if !w.prepareValue() {
		return w
	}
	w.color(ir.StringType, ValueColor, quote(s))
	return w
}

func (w *Writer) Int(i int64) *Writer {
	if !w.prepareValue() {
		return w
	}
	w.color(ir.NumberType, ValueColor, strconv.FormatInt(i, 10))
	return w
}

func (w *Writer) Uint(u uint64) *Writer {
	if !w.prepareValue() {
		return w
	}
	w.color(ir.NumberType, ValueColor, strconv.FormatUint(u, 10))
	return w
}

func (w *Writer) Float(f float64) *Writer {
	return w.float(f, 64)
}

func (w *Writer) Bool(b bool) *Writer {
	if !w.prepareValue() {
		return w
	}
	w.color(ir.BoolType, ValueColor, strconv.FormatBool(b))
	return w
}

func (w *Writer) Null() *Writer {
	if !w.prepareValue() {
		return w
	}
	w.color(ir.NullType, ValueColor, "null")
	return w
}

func (w *Writer) float(f float64, bits int) *Writer {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		w.fail(fmt.Errorf("%w: %v", ErrUnsupportedValue, f))
		return w
	}
	if !w.prepareValue() {
		return w
	}
	w.color(ir.NumberType, ValueColor, formatFloat(f, bits))
	return w
}

func (w *Writer) number(n json.Number) *Writer {
	if i, err := n.Int64(); err == nil {
		return w.Int(i)
	}
	f, err := n.Float64()
	if err != nil {
		w.fail(fmt.Errorf("%w: number %q", ErrUnsupportedValue, n))
		return w
	}
	return w.Float(f)
}

// Node writes a parsed tree, preserving field order. A nil node is written
// as null.
func (w *Writer) Node(n *ir.Node) *Writer {
	if n == nil {
		return w.Null()
	}
	switch n.Type {
	case ir.ObjectType:
		w.StartObject()
		for i, f := range n.Fields {
			w.Key(f.String).Node(n.Values[i])
		}
		return w.EndObject()
	case ir.ArrayType:
		w.StartArray()
		for _, v := range n.Values {
			w.Node(v)
		}
		return w.EndArray()
	case ir.StringType:
		return w.String(n.String)
	case ir.BoolType:
		return w.Bool(n.Bool)
	case ir.NumberType:
		switch {
		case n.Int64 != nil:
			return w.Int(*n.Int64)
		case n.Float64 != nil:
			return w.Float(*n.Float64)
		}
		return w.number(json.Number(n.Number))
	default:
		return w.Null()
	}
}

// formatFloat writes integral values without a fraction and uses exponent
// notation only for very small or very large magnitudes.
func formatFloat(f float64, bits int) string {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	abs := math.Abs(f)
	fmtc := byte('f')
	if abs < 1e-6 || abs >= 1e21 {
		fmtc = 'e'
	}
	b := strconv.AppendFloat(nil, f, fmtc, -1, bits)
	if fmtc == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}

func (w *Writer) writeKey(name string) {
	w.color(ir.ObjectType, FieldColor, quote(name))
}

func (w *Writer) punct(s string) {
	w.color(ir.ObjectType, SepColor, s)
}

func (w *Writer) color(t ir.Type, a ColorAttr, s string) {
	if w.colors != nil {
		s = w.colors.Color(t, a, s)
	}
	w.raw(s)
}
