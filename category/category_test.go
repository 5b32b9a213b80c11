package category

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/stream"
)

type note struct {
	k    key.Key
	text string
}

type blob struct {
	k    key.Key
	data []byte
	meta string
}

type box struct {
	notes []note
	blobs []blob
}

type frames int

func (f frames) IsEmpty() bool { return f == 0 }

func (f frames) MarshalStream(w *stream.Writer) error {
	w.StartObject().KeyValue("frames", int(f)).EndObject()
	return w.Err()
}

var notes = &Category[*box, note]{
	Folder:    "notes",
	Extension: ".json",
	List:      func(b *box) []note { return b.notes },
	Add:       func(b *box, n note) { b.notes = append(b.notes, n) },
	Key:       func(n note) key.Key { return n.k },
	Encode: func(w *stream.Writer, n note) error {
		w.StartObject().KeyValue("text", n.text).EndObject()
		return w.Err()
	},
	DecodeNode: func(node *ir.Node, k key.Key) (note, error) {
		s, err := ir.Get(node, "text").AsString()
		return note{k: k, text: s}, err
	},
}

var blobs = &Category[*box, blob]{
	Folder:      "blobs",
	Extension:   ".bin",
	List:        func(b *box) []blob { return b.blobs },
	Add:         func(b *box, v blob) { b.blobs = append(b.blobs, v) },
	Key:         func(v blob) key.Key { return v.k },
	EncodeBytes: func(v blob) []byte { return v.data },
	DecodeBytes: func(d []byte, k key.Key) (blob, error) { return blob{k: k, data: d}, nil },
	Sidecar: func(v blob) filetree.Sidecar {
		return frames(len(v.meta))
	},
	WithSidecar: func(v blob, node *ir.Node) (blob, error) {
		n, err := ir.Get(node, "frames").AsInt()
		v.meta = string(bytes.Repeat([]byte{'x'}, int(n)))
		return v, err
	},
}

func testRegistry(t *testing.T, l Layout) *Registry[*box] {
	t.Helper()
	r, err := NewRegistry[*box](l, notes, blobs)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func sample() *box {
	return &box{
		notes: []note{
			{k: key.MustParse("z"), text: "last"},
			{k: key.MustParse("custom:a/b"), text: "nested"},
			{k: key.MustParse("a"), text: "first"},
		},
		blobs: []blob{
			{k: key.MustParse("img"), data: []byte{1, 2, 3}, meta: "xx"},
			{k: key.MustParse("plain"), data: []byte{4}},
		},
	}
}

func TestWriteAll(t *testing.T) {
	buf := &bytes.Buffer{}
	var order []string
	a := filetree.NewArchive(buf, filetree.OnEntryClosed(func(name string, _ int64) {
		order = append(order, name)
	}))
	r := testRegistry(t, nil)
	if err := r.WriteAll(a, sample()); err != nil {
		t.Fatal(err)
	}
	if err := a.Finish(); err != nil {
		t.Fatal(err)
	}
	exp := []string{
		"assets/custom/notes/a/b.json",
		"assets/minecraft/notes/a.json",
		"assets/minecraft/notes/z.json",
		"assets/minecraft/blobs/img.bin",
		"assets/minecraft/blobs/img.bin.mcmeta",
		"assets/minecraft/blobs/plain.bin",
	}
	if diff := cmp.Diff(exp, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}

	src, err := filetree.ZipSource(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	es, err := src.Entries()
	if err != nil {
		t.Fatal(err)
	}
	files := map[string][]byte{}
	for _, e := range es {
		d, err := e.ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		files[e.Path] = d
	}
	if got := string(files["assets/minecraft/blobs/img.bin.mcmeta"]); got != `{"frames":2}` {
		t.Errorf("sidecar %q", got)
	}

	got := &box{}
	for _, e := range es {
		p := e.Path
		if strings.HasSuffix(p, filetree.MetadataSuffix) {
			continue
		}
		if err := r.Read(got, p, files[p], WithSidecar(files[p+filetree.MetadataSuffix])); err != nil {
			t.Fatalf("%s: %v", p, err)
		}
	}
	want := sample()
	opt := cmp.AllowUnexported(note{}, blob{}, box{})
	if diff := cmp.Diff(notes.Sorted(want), notes.Sorted(got), opt); diff != "" {
		t.Errorf("notes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(blobs.Sorted(want), blobs.Sorted(got), opt); diff != "" {
		t.Errorf("blobs (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	r := testRegistry(t, nil)
	tests := []struct {
		path string
		cat  string
		key  string
		err  error
	}{
		{path: "assets/minecraft/notes/a.json", cat: "notes", key: "minecraft:a"},
		{path: "assets/ns/notes/deep/er.json", cat: "notes", key: "ns:deep/er"},
		{path: "assets/minecraft/blobs/x.bin", cat: "blobs", key: "minecraft:x"},
		{path: "assets/minecraft/notes/a.txt", err: ErrExtension},
		{path: "assets/minecraft/blobs/x.bin.mcmeta", err: ErrExtension},
		{path: "assets/minecraft/other/a.json", err: ErrNoCategory},
		{path: "pack.mcmeta", err: ErrNoCategory},
		{path: "assets/BAD/notes/a.json", err: key.ErrInvalid},
	}
	for _, tc := range tests {
		h, k, err := r.Lookup(tc.path)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("%s: got %v, expected %v", tc.path, err, tc.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tc.path, err)
			continue
		}
		if h.Name() != tc.cat || k.String() != tc.key {
			t.Errorf("%s: got %s %s", tc.path, h.Name(), k)
		}
	}
}

func TestFolderLayout(t *testing.T) {
	l := FolderLayout{}
	p := l.Path("notes", key.MustParse("custom:a/b"), ".json")
	if p != "notes/custom/a/b.json" {
		t.Errorf("path %s", p)
	}
	r := testRegistry(t, l)
	h, k, err := r.Lookup(p)
	if err != nil {
		t.Fatal(err)
	}
	if h.Name() != "notes" || k != key.MustParse("custom:a/b") {
		t.Errorf("got %s %s", h.Name(), k)
	}
}

func TestDuplicateCategory(t *testing.T) {
	if _, err := NewRegistry[*box](nil, notes, notes); err == nil {
		t.Errorf("expected error")
	}
}

func TestReadLenient(t *testing.T) {
	r := testRegistry(t, nil)
	doc := []byte("{\n  // greeting\n  \"text\": \"hi\",\n}")
	b := &box{}
	if err := r.Read(b, "assets/minecraft/notes/a.json", doc); err == nil {
		t.Errorf("strict read accepted comments")
	}
	if err := r.Read(b, "assets/minecraft/notes/a.json", doc, Lenient(true)); err != nil {
		t.Fatal(err)
	}
	if len(b.notes) != 1 || b.notes[0].text != "hi" {
		t.Errorf("got %v", b.notes)
	}
}
