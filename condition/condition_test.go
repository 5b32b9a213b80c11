package condition

import (
	"bytes"
	"errors"
	"testing"

	"github.com/signadot/respack/parse"
	"github.com/signadot/respack/stream"
)

func encodeTop(t *testing.T, c Condition) string {
	t.Helper()
	buf := &bytes.Buffer{}
	w := stream.NewWriter(buf)
	if err := EncodeObject(w, c); err != nil {
		t.Fatal(err)
	}
	if err := w.Finish(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func decodeString(t *testing.T, s string) (Condition, error) {
	t.Helper()
	node, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return Decode(node)
}

func TestEncode(t *testing.T) {
	a, b, c := Match("a", "1"), Match("b", "2"), Match("c", "3")
	tests := []struct {
		name string
		c    Condition
		exp  string
	}{
		{"none", None, `{}`},
		{"match", a, `{"a":"1"}`},
		{"top level and flattens", And(a, b), `{"a":"1","b":"2"}`},
		{"single or collapses", Or(a), `{"a":"1"}`},
		{"or", Or(a, b), `{"OR":[{"a":"1"},{"b":"2"}]}`},
		{"nested and wraps", Or(And(a, b), c), `{"OR":[{"AND":[{"a":"1"},{"b":"2"}]},{"c":"3"}]}`},
		{"single nested and", Or(And(a), c), `{"OR":[{"a":"1"},{"c":"3"}]}`},
		{"non string value", Match("lit", true), `{"lit":"true"}`},
	}
	for _, tc := range tests {
		if got := encodeTop(t, tc.c); got != tc.exp {
			t.Errorf("%s: got %s exp %s", tc.name, got, tc.exp)
		}
	}
}

func TestEncodeNested(t *testing.T) {
	buf := &bytes.Buffer{}
	w := stream.NewWriter(buf)
	w.StartObject()
	if err := Encode(w, And(Match("a", "1"), Match("b", "2")), false); err != nil {
		t.Fatal(err)
	}
	w.EndObject()
	if buf.String() != `{"AND":[{"a":"1"},{"b":"2"}]}` {
		t.Errorf("got %s", buf.String())
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		in  string
		exp Condition
	}{
		{`{"a":"1","b":"2"}`, And(Match("a", "1"), Match("b", "2"))},
		{`{"a":"1"}`, Match("a", "1")},
		{`{"lit":true}`, Match("lit", "true")},
		{`{"level":3}`, Match("level", "3")},
		{`{"OR":[{"a":"1"},{"b":"2"}]}`, Or(Match("a", "1"), Match("b", "2"))},
		{`{"AND":[{"a":"1"},{"OR":[{"b":"2"},{"c":"3"}]}]}`, And(Match("a", "1"), Or(Match("b", "2"), Match("c", "3")))},
		{`{"OR":[{"a":"1","b":"2"}]}`, Or(And(Match("a", "1"), Match("b", "2")))},
	}
	for _, tc := range tests {
		got, err := decodeString(t, tc.in)
		if err != nil {
			t.Errorf("%s: %v", tc.in, err)
			continue
		}
		if !Equal(got, tc.exp) {
			t.Errorf("%s: got %s exp %s", tc.in, got, tc.exp)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{`{}`, ErrEmpty},
		{`{"OR":[]}`, ErrEmpty},
		{`{"AND":[{}]}`, ErrEmpty},
		{`{"OR":{"a":"1"}}`, ErrBadNode},
		{`{"a":["1"]}`, ErrBadNode},
		{`{"a":null}`, ErrBadNode},
		{`[]`, ErrBadNode},
	}
	for _, tc := range tests {
		_, err := decodeString(t, tc.in)
		if !errors.Is(err, tc.err) {
			t.Errorf("%s: expected %v got %v", tc.in, tc.err, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	a, b, c, d := Match("a", "1"), Match("b", "2|3"), Match("c", "x"), Match("d", "true")
	conds := []Condition{
		a,
		And(a, b),
		And(a, b, c),
		Or(a),
		Or(a, b),
		And(Or(a, b)),
		Or(And(a, b), c),
		Or(And(a, Or(b, c)), d),
		Or(Or(a, b), And(c, d)),
	}
	for _, cond := range conds {
		enc := encodeTop(t, cond)
		got, err := decodeString(t, enc)
		if err != nil {
			t.Errorf("%s (%s): %v", cond, enc, err)
			continue
		}
		if !Equal(Normalize(got), Normalize(cond)) {
			t.Errorf("%s: round trip gave %s via %s", cond, got, enc)
		}
	}
}

// A top-level And holding an Or is flattened inline next to plain matches,
// where the OR key reads back as a property.
func TestInlineOrNotDecodable(t *testing.T) {
	cond := And(Or(Match("a", "1"), Match("b", "2")), Match("c", "3"))
	enc := encodeTop(t, cond)
	if enc != `{"OR":[{"a":"1"},{"b":"2"}],"c":"3"}` {
		t.Fatalf("got %s", enc)
	}
	if _, err := decodeString(t, enc); !errors.Is(err, ErrBadNode) {
		t.Errorf("expected %v, got %v", ErrBadNode, err)
	}
}

func TestChildrenCopy(t *testing.T) {
	c := And(Match("a", "1"), Match("b", "2"))
	cs := c.Children()
	cs[0] = Match("z", "9")
	if !Equal(c.Children()[0], Match("a", "1")) {
		t.Errorf("children aliased")
	}
}
