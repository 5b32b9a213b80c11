package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/signadot/respack/packdiff"
)

func TestPrintChange(t *testing.T) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	for _, c := range []packdiff.Change{
		{Path: "a.json", Kind: packdiff.Added},
		{Path: "b.json", Kind: packdiff.Removed},
		{Path: "c.json", Kind: packdiff.Changed, Patch: []byte(`{"x":1}`)},
		{Path: "d.txt", Kind: packdiff.Changed, Lines: []packdiff.Line{{Op: packdiff.Equal, Text: "k"}, {Op: packdiff.Insert, Text: "n"}}},
	} {
		printChange(buf, &c)
	}
	exp := "+ a.json\n- b.json\n~ c.json\n  {\"x\":1}\n~ d.txt\n   k\n  +n\n"
	if buf.String() != exp {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), exp)
	}
}
