// Package texture implements texture files and their .mcmeta sidecars.
package texture

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/metadata"
)

// Texture is the PNG data of a texture with the metadata written next to
// it, e.g. animation.
type Texture struct {
	Key  key.Key
	Data []byte
	Meta metadata.Metadata
}

func New(k key.Key, data []byte) *Texture {
	return &Texture{Key: k, Data: data}
}

// Sidecar returns the metadata of t, which is not written when empty.
func (t *Texture) Sidecar() filetree.Sidecar {
	return t.Meta
}

// WithMeta returns a copy of t carrying the metadata in node.
func (t *Texture) WithMeta(node *ir.Node) (*Texture, error) {
	m, err := metadata.Decode(node)
	if err != nil {
		return nil, err
	}
	res := *t
	res.Meta = m
	return &res, nil
}

// Size reads the dimensions from the PNG header.
func (t *Texture) Size() (width, height int, err error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(t.Data))
	if err != nil {
		return 0, 0, fmt.Errorf("texture %s: %w", t.Key, err)
	}
	return cfg.Width, cfg.Height, nil
}

// FrameCount is the number of animation frames stacked vertically in t.
// Textures without animation metadata have one frame.
func (t *Texture) FrameCount() (int, error) {
	anim, ok := metadata.Find[*metadata.Animation](t.Meta)
	if !ok {
		return 1, nil
	}
	w, h, err := t.Size()
	if err != nil {
		return 0, err
	}
	fw, fh := w, w
	if anim.Width > 0 {
		fw = anim.Width
	}
	if anim.Height > 0 {
		fh = anim.Height
	}
	if fw == 0 || fh == 0 {
		return 0, fmt.Errorf("texture %s: empty frame", t.Key)
	}
	return (w / fw) * (h / fh), nil
}
