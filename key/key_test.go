package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		ns, val string
		err     bool
	}{
		{in: "stone", ns: "minecraft", val: "stone"},
		{in: "minecraft:block/stone", ns: "minecraft", val: "block/stone"},
		{in: "creative:item/ruby.png", ns: "creative", val: "item/ruby.png"},
		{in: "Bad:stone", err: true},
		{in: "ns:", err: true},
		{in: ":x", err: true},
		{in: "ns:a b", err: true},
	}
	for _, tc := range tests {
		k, err := Parse(tc.in)
		if tc.err {
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("%q: expected ErrInvalid, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if k.Namespace != tc.ns || k.Value != tc.val {
			t.Errorf("%q: got %#v", tc.in, k)
		}
	}
}

func TestCompact(t *testing.T) {
	if got := MustParse("stone").Compact(DefaultNamespace); got != "stone" {
		t.Errorf("got %q", got)
	}
	if got := MustParse("foo:stone").Compact(DefaultNamespace); got != "foo:stone" {
		t.Errorf("got %q", got)
	}
}

func TestCompare(t *testing.T) {
	a := MustParse("a:z")
	b := MustParse("b:a")
	if Compare(a, b) >= 0 || Compare(b, a) <= 0 || Compare(a, a) != 0 {
		t.Errorf("bad ordering")
	}
}

func TestText(t *testing.T) {
	var k Key
	if err := k.UnmarshalText([]byte("foo:bar")); err != nil {
		t.Fatal(err)
	}
	d, _ := k.MarshalText()
	if string(d) != "foo:bar" {
		t.Errorf("got %q", d)
	}
}
