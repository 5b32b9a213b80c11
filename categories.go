package respack

import (
	"github.com/signadot/respack/blockstate"
	"github.com/signadot/respack/category"
	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/lang"
	"github.com/signadot/respack/model"
	"github.com/signadot/respack/sound"
	"github.com/signadot/respack/texture"
)

// Categories of resources held in a container.
var (
	BlockStates = &category.Category[*Resources, *blockstate.BlockState]{
		Folder:     "blockstates",
		Extension:  ".json",
		List:       func(r *Resources) []*blockstate.BlockState { return r.BlockStates },
		Add:        func(r *Resources, b *blockstate.BlockState) { r.BlockStates = append(r.BlockStates, b) },
		Key:        func(b *blockstate.BlockState) key.Key { return b.Key },
		Encode:     blockstate.Encode,
		DecodeNode: blockstate.Decode,
	}

	Models = &category.Category[*Resources, *model.Model]{
		Folder:     "models",
		Extension:  ".json",
		List:       func(r *Resources) []*model.Model { return r.Models },
		Add:        func(r *Resources, m *model.Model) { r.Models = append(r.Models, m) },
		Key:        func(m *model.Model) key.Key { return m.Key },
		Encode:     model.Encode,
		DecodeNode: model.Decode,
	}

	Languages = &category.Category[*Resources, *lang.Language]{
		Folder:     "lang",
		Extension:  ".json",
		List:       func(r *Resources) []*lang.Language { return r.Languages },
		Add:        func(r *Resources, l *lang.Language) { r.Languages = append(r.Languages, l) },
		Key:        func(l *lang.Language) key.Key { return l.Key },
		Encode:     lang.Encode,
		DecodeNode: lang.Decode,
	}

	Textures = &category.Category[*Resources, *texture.Texture]{
		Folder:      "textures",
		Extension:   ".png",
		List:        func(r *Resources) []*texture.Texture { return r.Textures },
		Add:         func(r *Resources, t *texture.Texture) { r.Textures = append(r.Textures, t) },
		Key:         func(t *texture.Texture) key.Key { return t.Key },
		EncodeBytes: func(t *texture.Texture) []byte { return t.Data },
		DecodeBytes: func(d []byte, k key.Key) (*texture.Texture, error) { return texture.New(k, d), nil },
		Sidecar:     func(t *texture.Texture) filetree.Sidecar { return t.Sidecar() },
		WithSidecar: func(t *texture.Texture, node *ir.Node) (*texture.Texture, error) { return t.WithMeta(node) },
	}

	Sounds = &category.Category[*Resources, *sound.Sound]{
		Folder:      "sounds",
		Extension:   ".ogg",
		List:        func(r *Resources) []*sound.Sound { return r.Sounds },
		Add:         func(r *Resources, s *sound.Sound) { r.Sounds = append(r.Sounds, s) },
		Key:         func(s *sound.Sound) key.Key { return s.Key },
		EncodeBytes: func(s *sound.Sound) []byte { return s.Data },
		DecodeBytes: func(d []byte, k key.Key) (*sound.Sound, error) { return sound.New(k, d), nil },
	}
)

// NewRegistry returns a registry of every category a container holds, in
// the order they are written.
func NewRegistry() *category.Registry[*Resources] {
	return category.MustRegistry[*Resources](category.AssetsLayout{},
		BlockStates, Models, Languages, Textures, Sounds)
}
