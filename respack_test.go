package respack

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/respack/blockstate"
	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/lang"
	"github.com/signadot/respack/metadata"
	"github.com/signadot/respack/model"
	"github.com/signadot/respack/packformat"
	"github.com/signadot/respack/parse"
	"github.com/signadot/respack/sound"
	"github.com/signadot/respack/texture"
)

func samplePack(t *testing.T) *Pack {
	t.Helper()
	stone := key.MustParse("block/stone")
	m, err := model.NewBuilder(stone).
		Parent(key.MustParse("block/cube_all")).
		Texture("all", model.TextureRef{Key: stone}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	m2, err := model.NewBuilder(stone).Parent(key.MustParse("block/cube_mirrored_all")).Build()
	if err != nil {
		t.Fatal(err)
	}
	wind := key.MustParse("custom:ambient/wind")

	p := New(metadata.New(metadata.NewPack(packformat.Of(15), "demo")))
	p.Icon = []byte{0x89, 'P', 'N', 'G'}
	p.BlockStates = append(p.BlockStates, &blockstate.BlockState{
		Key:      key.MustParse("stone"),
		Variants: []blockstate.Case{{Apply: blockstate.Multi(blockstate.MustVariant(stone))}},
	})
	p.Models = append(p.Models, m)
	p.Languages = append(p.Languages, &lang.Language{
		Key:          key.MustParse("en_us"),
		Translations: []lang.Translation{{Key: "block.minecraft.stone", Value: "Stone"}},
	})
	tex := texture.New(stone, []byte("stone-png"))
	tex.Meta = metadata.New(&metadata.Animation{FrameTime: 2})
	p.Textures = append(p.Textures, tex)
	p.Sounds = append(p.Sounds, sound.New(wind, []byte("OggS-wind")))
	p.SoundRegistries = append(p.SoundRegistries, &sound.Registry{
		Namespace: "custom",
		Events:    []sound.Event{{Name: "ambient.wind", Sounds: []sound.Entry{{Name: wind}}}},
	})
	p.AddUnknown("LICENSE.txt", []byte("MIT"))
	p.AddUnknown("assets/custom/readme.txt", []byte("hi"))
	p.OverlayFor("v2").Models = append(p.OverlayFor("v2").Models, m2)
	return p
}

var sampleOrder = []string{
	"pack.mcmeta",
	"pack.png",
	"assets/minecraft/blockstates/stone.json",
	"assets/minecraft/models/block/stone.json",
	"assets/minecraft/lang/en_us.json",
	"assets/minecraft/textures/block/stone.png",
	"assets/minecraft/textures/block/stone.png.mcmeta",
	"assets/custom/sounds/ambient/wind.ogg",
	"assets/custom/sounds.json",
	"overlays/v2/assets/minecraft/models/block/stone.json",
	"LICENSE.txt",
	"assets/custom/readme.txt",
}

func TestWriteOrder(t *testing.T) {
	var order []string
	w := NewWriter(WithTreeOptions(filetree.OnEntryClosed(func(name string, _ int64) {
		order = append(order, name)
	})))
	if err := w.WriteToZip(samplePack(t), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleOrder, order); diff != "" {
		t.Errorf("entry order (-want +got):\n%s", diff)
	}
}

func TestWriteToDir(t *testing.T) {
	dir := t.TempDir()
	if err := NewWriter().WriteToDir(samplePack(t), dir); err != nil {
		t.Fatal(err)
	}
	es, err := filetree.DirSource(dir).Entries()
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, e := range es {
		d, err := e.ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		got[e.Path] = string(d)
	}
	exp := map[string]string{
		"pack.mcmeta":                                          `{"pack":{"pack_format":15,"description":"demo"}}`,
		"assets/minecraft/models/block/stone.json":             `{"parent":"block/cube_all","textures":{"all":"block/stone"}}`,
		"assets/minecraft/textures/block/stone.png.mcmeta":     `{"animation":{"frametime":2}}`,
		"assets/minecraft/blockstates/stone.json":              `{"variants":{"":{"model":"block/stone"}}}`,
		"assets/minecraft/lang/en_us.json":                     `{"block.minecraft.stone":"Stone"}`,
		"assets/custom/sounds.json":                            `{"ambient.wind":{"sounds":["custom:ambient/wind"]}}`,
		"overlays/v2/assets/minecraft/models/block/stone.json": `{"parent":"block/cube_mirrored_all"}`,
	}
	for p, want := range exp {
		if got[p] != want {
			t.Errorf("%s: got %s want %s", p, got[p], want)
		}
	}
	if len(got) != len(sampleOrder) {
		t.Errorf("got %d files, want %d", len(got), len(sampleOrder))
	}
}

func TestWriteToDirClear(t *testing.T) {
	for _, keep := range []bool{false, true} {
		dir := t.TempDir()
		stale := filepath.Join(dir, "keep.txt")
		if err := os.WriteFile(stale, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		var opts []Option
		if keep {
			opts = append(opts, WithTreeOptions(filetree.Clear(false)))
		}
		if err := NewWriter(opts...).WriteToDir(New(metadata.New()), dir); err != nil {
			t.Fatal(err)
		}
		_, err := os.Stat(stale)
		if keep && err != nil {
			t.Errorf("Clear(false): existing file removed: %v", err)
		}
		if !keep && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("default: existing file kept: %v", err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	b, err := w.Build(samplePack(t))
	if err != nil {
		t.Fatal(err)
	}
	src, err := filetree.ZipSource(bytes.NewReader(b.Data), int64(len(b.Data)))
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewReader().Read(src)
	if err != nil {
		t.Fatal(err)
	}
	pm, ok := metadata.Find[*metadata.Pack](p.Metadata)
	if !ok || pm.DescriptionText() != "demo" {
		t.Errorf("pack metadata not read: %v", p.Metadata)
	}
	tex := p.Texture(key.MustParse("block/stone"))
	if tex == nil {
		t.Fatal("texture missing")
	}
	if anim, ok := metadata.Find[*metadata.Animation](tex.Meta); !ok || anim.FrameTime != 2 {
		t.Errorf("texture metadata not paired: %v", tex.Meta)
	}
	o := p.Overlay("v2")
	if o == nil || o.Model(key.MustParse("block/stone")) == nil {
		t.Fatalf("overlay not read: %+v", o)
	}
	if d, ok := p.UnknownFile("assets/custom/readme.txt"); !ok || string(d) != "hi" {
		t.Errorf("unknown file not kept: %q", d)
	}
	if p.SoundRegistry("custom") == nil {
		t.Errorf("sound registry not read")
	}

	again, err := w.Build(p)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b.Data, again.Data) || b.SHA1 != again.SHA1 || b.BLAKE3 != again.BLAKE3 {
		t.Errorf("rebuilt archive differs")
	}
}

func TestBuildDeterministic(t *testing.T) {
	for _, m := range []uint16{filetree.Deflate, filetree.Zstd} {
		w := NewWriter(WithIndent("  "), WithTreeOptions(filetree.Method(m)))
		a, err := w.Build(samplePack(t))
		if err != nil {
			t.Fatal(err)
		}
		b, err := w.Build(samplePack(t))
		if err != nil {
			t.Fatal(err)
		}
		if a.SHA1 != b.SHA1 || !bytes.Equal(a.Data, b.Data) {
			t.Errorf("method %d: builds differ", m)
		}
	}
}

func TestReadUnknown(t *testing.T) {
	fsys := fstest.MapFS{
		"pack.mcmeta":                            {Data: []byte(`{"pack":{"pack_format":15,"description":""}}`)},
		"notes.md":                               {Data: []byte("x")},
		"data/minecraft/recipes/a.json":          {Data: []byte("{}")},
		"assets/minecraft/models/a.txt":          {Data: []byte("x")},
		"assets/Bad/models/a.json":               {Data: []byte("{}")},
		"assets/minecraft/icon.png":              {Data: []byte("x")},
		"assets/minecraft/widgets/a.json":        {Data: []byte("{}")},
		"assets/minecraft/textures/b.png.mcmeta": {Data: []byte(`{"animation":{}}`)},
		"overlays/readme.txt":                    {Data: []byte("x")},
		"overlays/v2/notes.md":                   {Data: []byte("y")},
	}
	p, err := NewReader().Read(filetree.FSSource(fsys))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, f := range p.Unknown {
		got = append(got, f.Path)
	}
	exp := []string{
		"assets/Bad/models/a.json",
		"assets/minecraft/icon.png",
		"assets/minecraft/models/a.txt",
		"assets/minecraft/widgets/a.json",
		"data/minecraft/recipes/a.json",
		"notes.md",
		"overlays/readme.txt",
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("unknown files (-want +got):\n%s", diff)
	}
	if len(p.Textures) != 0 {
		t.Errorf("metadata without texture produced %d textures", len(p.Textures))
	}
	o := p.Overlay("v2")
	if o == nil {
		t.Fatal("overlay missing")
	}
	if d, ok := o.UnknownFile("notes.md"); !ok || string(d) != "y" {
		t.Errorf("overlay unknown file: %q", d)
	}
}

type reversed struct{ filetree.Source }

func (r reversed) Entries() ([]filetree.Entry, error) {
	es, err := r.Source.Entries()
	slices.Reverse(es)
	return es, err
}

func TestTexturePairing(t *testing.T) {
	for _, rev := range []bool{false, true} {
		testTexturePairing(t, rev)
	}
}

func testTexturePairing(t *testing.T, rev bool) {
	t.Helper()
	fsys := fstest.MapFS{
		"assets/minecraft/textures/a.png":                   {Data: []byte("a")},
		"assets/minecraft/textures/a.png.mcmeta":            {Data: []byte(`{"animation":{"frametime":3}}`)},
		"overlays/o/assets/minecraft/textures/b.png":        {Data: []byte("b")},
		"overlays/o/assets/minecraft/textures/b.png.mcmeta": {Data: []byte(`{"texture":{"blur":true}}`)},
	}
	var src filetree.Source = filetree.FSSource(fsys)
	if rev {
		src = reversed{src}
	}
	p, err := NewReader().Read(src)
	if err != nil {
		t.Fatal(err)
	}
	a := p.Texture(key.MustParse("a"))
	if a == nil {
		t.Fatal("a missing")
	}
	if anim, ok := metadata.Find[*metadata.Animation](a.Meta); !ok || anim.FrameTime != 3 {
		t.Errorf("a: %v", a.Meta)
	}
	b := p.Overlay("o").Texture(key.MustParse("b"))
	if b == nil {
		t.Fatal("b missing")
	}
	if tm, ok := metadata.Find[*metadata.Texture](b.Meta); !ok || !tm.Blur {
		t.Errorf("b: %v", b.Meta)
	}
	if len(p.Unknown) != 0 || len(p.Overlay("o").Unknown) != 0 {
		t.Errorf("sidecars kept as unknown files")
	}
}

func TestLenient(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/minecraft/models/a.json": {Data: []byte("{\n  // comment\n  \"parent\": \"block/b\",\n}")},
		"pack.mcmeta":                    {Data: []byte(`{"pack":{"pack_format":3,"supported_formats":[4,5],"description":"x"}}`)},
	}
	if _, err := NewReader().Read(filetree.FSSource(fsys)); !errors.Is(err, parse.ErrParse) {
		t.Errorf("strict reader: %v", err)
	}
	p, err := NewReader(Lenient(true)).Read(filetree.FSSource(fsys))
	if err != nil {
		t.Fatal(err)
	}
	m := p.Model(key.MustParse("a"))
	if m == nil || m.Parent != key.MustParse("block/b") {
		t.Errorf("got %+v", m)
	}
	pm, ok := metadata.Find[*metadata.Pack](p.Metadata)
	if !ok || pm.Formats.Canonical() != packformat.V(4, 0) {
		t.Errorf("pack formats not coerced: %v", p.Metadata)
	}
}

func TestDuplicateEntity(t *testing.T) {
	p := samplePack(t)
	p.Models = append(p.Models, p.Models[0])
	if _, err := NewWriter().Build(p); !errors.Is(err, filetree.ErrDuplicatePath) {
		t.Errorf("expected duplicate path, got %v", err)
	}
}
