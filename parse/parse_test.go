package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/respack/ir"
)

type parseTest struct {
	in string
	e  error
}

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{in: `null`},
		{in: `true`},
		{in: `false`},
		{in: `22`},
		{in: `1e14`},
		{in: `-0.5`},
		{in: `"hello"`},
		{in: `[]`},
		{in: `{}`},
		{in: `["a", "b"]`},
		{in: `{"a": {"b": [1, 2, {"c": null}]}}`},
		{in: "  {\"a\": 1}\n\n"},
	}
	for i := range pts {
		pt := &pts[i]
		if _, err := Parse([]byte(pt.in)); err != nil {
			t.Errorf("%q: %v", pt.in, err)
		}
	}
}

func TestParseErr(t *testing.T) {
	pts := []parseTest{
		{in: ``},
		{in: `{`},
		{in: `{"a" 1}`},
		{in: `[1,]`},
		{in: `{"a": 1} {}`},
		{in: `// c
{}`},
	}
	for i := range pts {
		pt := &pts[i]
		_, err := Parse([]byte(pt.in))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected parse error, got %v", pt.in, err)
		}
	}
}

func TestFieldOrder(t *testing.T) {
	node, err := Parse([]byte(`{"z": 1, "a": 2, "m": 3, "a": 4}`))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, f := range node.Fields {
		got = append(got, f.String)
	}
	if strings.Join(got, ",") != "z,a,m" {
		t.Fatalf("field order %v", got)
	}
	a, err := ir.Get(node, "a").AsInt()
	if err != nil || a != 4 {
		t.Errorf("a = %d, %v", a, err)
	}
}

func TestNumbers(t *testing.T) {
	node, err := Parse([]byte(`[1, 2.5, 4.0, -7]`))
	if err != nil {
		t.Fatal(err)
	}
	if node.Values[0].Int64 == nil || *node.Values[0].Int64 != 1 {
		t.Errorf("expected int 1")
	}
	if node.Values[1].Float64 == nil || *node.Values[1].Float64 != 2.5 {
		t.Errorf("expected float 2.5")
	}
	if i, err := node.Values[2].AsInt(); err != nil || i != 4 {
		t.Errorf("4.0 as int: %d %v", i, err)
	}
	if _, err := node.Values[1].AsInt(); !errors.Is(err, ir.ErrType) {
		t.Errorf("2.5 as int: expected type error, got %v", err)
	}
}

func TestLenient(t *testing.T) {
	in := []byte(`{
  // the model
  "model": "block/stone", /* inline */
  "x": 90,
}`)
	if _, err := Parse(in); err == nil {
		t.Fatalf("strict parse accepted comments")
	}
	node, err := Parse(in, Lenient(true))
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := ir.Get(node, "model").AsString(); s != "block/stone" {
		t.Errorf("model %q", s)
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := Parse([]byte("{\n  \"a\": 1,\n  \"b\" 2\n}"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "3:") {
		t.Errorf("expected line 3 in %q", err)
	}
}
