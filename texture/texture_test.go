package texture

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/signadot/respack/key"
	"github.com/signadot/respack/metadata"
	"github.com/signadot/respack/parse"
)

func pngData(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFrameCount(t *testing.T) {
	tex := New(key.MustParse("block/lava"), pngData(t, 16, 64))
	if n, err := tex.FrameCount(); err != nil || n != 1 {
		t.Errorf("static: %d %v", n, err)
	}
	if !tex.Sidecar().IsEmpty() {
		t.Errorf("static texture has a sidecar")
	}
	node, err := parse.Parse([]byte(`{"animation":{"frametime":2}}`))
	if err != nil {
		t.Fatal(err)
	}
	anim, err := tex.WithMeta(node)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := anim.FrameCount(); err != nil || n != 4 {
		t.Errorf("animated: %d %v", n, err)
	}
	if tex.Meta.Get("animation") != nil {
		t.Errorf("WithMeta modified the original")
	}
	wide := &Texture{Key: tex.Key, Data: pngData(t, 32, 16), Meta: metadata.New(&metadata.Animation{Width: 8, Height: 16})}
	if n, err := wide.FrameCount(); err != nil || n != 4 {
		t.Errorf("wide: %d %v", n, err)
	}
}

func TestSizeError(t *testing.T) {
	if _, _, err := New(key.MustParse("x"), []byte("not a png")).Size(); err == nil {
		t.Errorf("expected error")
	}
}
