package ir_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/parse"
	"github.com/signadot/respack/stream"
)

type pathTest struct {
	Path string
	Doc  string
	Res  string
}

var pathTests = []pathTest{
	{
		Path: "$",
		Doc:  "null",
		Res:  "null",
	},
	{
		Path: "$.f",
		Doc:  `{"f": 1}`,
		Res:  "1",
	},
	{
		Path: "$[0]",
		Doc:  "[1,2,3]",
		Res:  "1",
	},
	{
		Path: "$",
		Doc:  "[1,2,3]",
		Res:  "[1,2,3]",
	},
	{
		Path: "$[1].f",
		Doc:  `[0, {"f": 2, "g": 3}]`,
		Res:  "2",
	},
	{
		Path: "$.f[3]",
		Doc:  `{"a": [1,2], "f": [0,1,2,"three"]}`,
		Res:  `"three"`,
	},
	{
		Path: "$.'f[3]'[2]",
		Doc:  `{"a": [1,2], "f[3]": [0,1,2,"three"]}`,
		Res:  "2",
	},
	{
		Path: "$.'$f[\\'3]'[2]",
		Doc:  `{"a": [1,2], "$f['3]": [0,1,2,"three"]}`,
		Res:  "2",
	},
	{
		Path: "$.variants.'facing=north'.model",
		Doc:  `{"variants": {"facing=north": {"model": "block/furnace"}}}`,
		Res:  `"block/furnace"`,
	},
}

func encode(t *testing.T, n *ir.Node) string {
	t.Helper()
	buf := &bytes.Buffer{}
	w := stream.NewWriter(buf)
	w.Node(n)
	if err := w.Finish(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPathGet(t *testing.T) {
	for i := range pathTests {
		pathTest := &pathTests[i]
		node, err := parse.Parse([]byte(pathTest.Doc))
		if err != nil {
			t.Errorf("# doc\n%s\n---\n# %v\n", pathTest.Doc, err)
			continue
		}
		res, err := node.GetPath(pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		if res == nil {
			t.Errorf("%s: no result", pathTest.Path)
			continue
		}
		if out := encode(t, res); out != pathTest.Res {
			t.Errorf("%s: got %q want %q", pathTest.Path, out, pathTest.Res)
		}
		// The path of the result leads back to it.
		again, err := node.GetPath(res.Path())
		if err != nil {
			t.Errorf("%s: %v", res.Path(), err)
			continue
		}
		if again != res {
			t.Errorf("%s: path %s does not lead back", pathTest.Path, res.Path())
		}
	}
}

func TestPathString(t *testing.T) {
	for _, p := range []string{"$", "$.a", "$[3].b", "$.'a.b'[0]", "$.'x\\'y'"} {
		pp, err := ir.ParsePath(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if pp.String() != p {
			t.Errorf("got %s want %s", pp.String(), p)
		}
	}
}

func TestPathErrors(t *testing.T) {
	for _, p := range []string{"", "a", "$x", "$[", "$[a]", "$.'open"} {
		if _, err := ir.ParsePath(p); !errors.Is(err, ir.ErrPath) {
			t.Errorf("%q: %v", p, err)
		}
	}
	node, err := parse.Parse([]byte(`{"a": [1]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := node.GetPath("$.a.b"); !errors.Is(err, ir.ErrType) {
		t.Errorf("field of array: %v", err)
	}
	if _, err := node.GetPath("$.a[4]"); !errors.Is(err, ir.ErrPath) {
		t.Errorf("index out of bounds: %v", err)
	}
	if res, err := node.GetPath("$.missing"); res != nil || err != nil {
		t.Errorf("missing field: %v %v", res, err)
	}
}
