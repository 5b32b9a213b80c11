package packdiff

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/respack/filetree"
)

func TestDiff(t *testing.T) {
	a := fstest.MapFS{
		"pack.mcmeta": {Data: []byte(`{"pack":{"pack_format":15,"description":"a"}}`)},
		"same.json":   {Data: []byte(`{"a":1,"b":2}`)},
		"gone.json":   {Data: []byte(`{}`)},
		"notes.txt":   {Data: []byte("one\ntwo\nthree\n")},
		"icon.png":    {Data: []byte{0x89, 'P', 0}},
		"broken.json": {Data: []byte(`{"a":`)},
	}
	b := fstest.MapFS{
		"pack.mcmeta": {Data: []byte(`{"pack":{"pack_format":15,"description":"b"}}`)},
		"same.json":   {Data: []byte("{\n  \"b\": 2,\n  \"a\": 1\n}")},
		"new.json":    {Data: []byte(`{}`)},
		"notes.txt":   {Data: []byte("one\n2\nthree\n")},
		"icon.png":    {Data: []byte{0x89, 'P', 1}},
		"broken.json": {Data: []byte(`{"a":2`)},
	}
	got, err := Diff(filetree.FSSource(a), filetree.FSSource(b))
	if err != nil {
		t.Fatal(err)
	}
	exp := []Change{
		{Path: "broken.json", Kind: Changed, Lines: []Line{{Delete, `{"a":`}, {Insert, `{"a":2`}}},
		{Path: "gone.json", Kind: Removed},
		{Path: "icon.png", Kind: Changed},
		{Path: "new.json", Kind: Added},
		{Path: "notes.txt", Kind: Changed, Lines: []Line{{Equal, "one"}, {Delete, "two"}, {Insert, "2"}, {Equal, "three"}}},
		{Path: "pack.mcmeta", Kind: Changed, Patch: []byte(`{"pack":{"description":"b"}}`)},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLineDiff(t *testing.T) {
	got := LineDiff("a\nb", "a\nb\nc")
	exp := []Line{{Equal, "a"}, {Delete, "b"}, {Insert, "b"}, {Insert, "c"}}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := LineDiff("x\n", "x\n"); len(got) != 1 || got[0].String() != " x" {
		t.Errorf("got %v", got)
	}
}
