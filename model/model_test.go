package model

import (
	"bytes"
	"errors"
	"testing"

	"github.com/signadot/respack/key"
	"github.com/signadot/respack/parse"
	"github.com/signadot/respack/stream"
)

func encodeString(t *testing.T, m *Model) string {
	t.Helper()
	buf := &bytes.Buffer{}
	w := stream.NewWriter(buf)
	if err := m.MarshalStream(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Finish(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestBuilder(t *testing.T) {
	gui := Identity()
	gui.Rotation = Vec3{30, 225, 0}
	gui.Scale = Vec3{0.625, 0.625, 0.625}
	b := NewBuilder(key.MustParse("block/stone")).
		Parent(key.MustParse("block/cube_all")).
		Texture("all", TextureRef{Key: key.MustParse("block/stone")}).
		Texture("particle", TextureRef{Ref: "all"}).
		Texture("all", TextureRef{Key: key.MustParse("custom:block/stone")}).
		Display(GUI, gui).
		Display(ThirdPersonRightHand, Identity())
	m, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	exp := `{"parent":"block/cube_all","display":{"thirdperson_righthand":{},"gui":{"rotation":[30,225,0],"scale":[0.625,0.625,0.625]}},"textures":{"all":"custom:block/stone","particle":"#all"}}`
	if got := encodeString(t, m); got != exp {
		t.Errorf("got %s\nexp %s", got, exp)
	}
	b.AmbientOcclusion(false).GUILight(GUILightFront)
	m2, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !m.AmbientOcclusion || m.GUILight != "" {
		t.Errorf("Build shares state with later builds")
	}
	exp2 := `{"parent":"block/cube_all","display":{"thirdperson_righthand":{},"gui":{"rotation":[30,225,0],"scale":[0.625,0.625,0.625]}},"ambientocclusion":false,"textures":{"all":"custom:block/stone","particle":"#all"},"gui_light":"front"}`
	if got := encodeString(t, m2); got != exp2 {
		t.Errorf("got %s\nexp %s", got, exp2)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		`{}`,
		`{"parent":"item/generated","textures":{"layer0":"item/apple"},"overrides":[{"predicate":{"custom_model_data":1},"model":"item/apple_gold"},{"predicate":{"pulling":1,"pull":0.65},"model":"item/bow_pulling_1"}]}`,
		`{"elements":[{"from":[0,0,0],"to":[16,8.5,16],"rotation":{"origin":[8,8,8],"axis":"y","angle":22.5,"rescale":true},"shade":false,"faces":{"down":{"uv":[0,0,16,16],"texture":"#bottom","cullface":"down","tintindex":0},"north":{"texture":"#side","rotation":90}}}],"gui_light":"side"}`,
	}
	for _, doc := range docs {
		node, err := parse.Parse([]byte(doc))
		if err != nil {
			t.Fatal(err)
		}
		m, err := Decode(node, key.MustParse("x"))
		if err != nil {
			t.Fatalf("%s: %v", doc, err)
		}
		if got := encodeString(t, m); got != doc {
			t.Errorf("got %s\nexp %s", got, doc)
		}
	}
}

func TestDecodeClamps(t *testing.T) {
	node, err := parse.Parse([]byte(`{"display":{"head":{"translation":[100,-90,1],"scale":[5,1,1]}}}`))
	if err != nil {
		t.Fatal(err)
	}
	m, err := Decode(node, key.MustParse("x"))
	if err != nil {
		t.Fatal(err)
	}
	tr, ok := m.Display.Get(Head)
	if !ok || tr.Translation != (Vec3{80, -80, 1}) || tr.Scale != (Vec3{4, 1, 1}) {
		t.Errorf("got %v", tr)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, doc := range []string{
		`[]`,
		`{"parent":1}`,
		`{"parent":"Bad Key"}`,
		`{"gui_light":"back"}`,
		`{"display":{"hand":{}}}`,
		`{"elements":[{"from":[0,0,0],"to":[16,16,16]}]}`,
		`{"elements":[{"from":[0,0,0],"to":[64,16,16],"faces":{}}]}`,
		`{"elements":[{"from":[0,0,0],"to":[16,16,16],"rotation":{"origin":[0,0,0],"axis":"y","angle":30},"faces":{}}]}`,
		`{"elements":[{"from":[0,0,0],"to":[16,16,16],"faces":{"side":{"texture":"#a"}}}]}`,
		`{"elements":[{"from":[0,0,0],"to":[16,16,16],"faces":{"up":{"texture":"#a","rotation":45}}}]}`,
		`{"overrides":[{"model":"a","predicate":{"x":[1]}}]}`,
	} {
		node, err := parse.Parse([]byte(doc))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Decode(node, key.MustParse("x")); !errors.Is(err, ErrBadModel) {
			t.Errorf("%s: got %v", doc, err)
		}
	}
}

func TestTextureRef(t *testing.T) {
	m, err := NewBuilder(key.MustParse("x")).Texture("a", TextureRef{Ref: "b"}).Build()
	if err != nil {
		t.Fatal(err)
	}
	if ref, ok := m.Texture("a"); !ok || ref.String() != "#b" {
		t.Errorf("got %v %v", ref, ok)
	}
	if _, ok := m.Texture("missing"); ok {
		t.Errorf("found missing texture")
	}
}
