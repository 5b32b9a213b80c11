// Package respack reads and writes resource packs.
//
// A [Pack] is written to a [filetree.Tree] by a [Writer] and read back from
// a [filetree.Source] by a [Reader]:
//
//	pack.mcmeta
//	pack.png
//	assets/<namespace>/<category>/<value><ext>[.mcmeta]
//	assets/<namespace>/sounds.json
//	overlays/<directory>/assets/...
//
// Files no category claims are carried through as [File]s.
package respack

import (
	"slices"
	"strings"

	"github.com/signadot/respack/blockstate"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/lang"
	"github.com/signadot/respack/metadata"
	"github.com/signadot/respack/model"
	"github.com/signadot/respack/sound"
	"github.com/signadot/respack/texture"
)

const (
	MetadataFile = "pack.mcmeta"
	IconFile     = "pack.png"
	OverlaysDir  = "overlays"
)

// File is an entry kept verbatim, at a path relative to its container.
type File struct {
	Path string
	Data []byte
}

// Resources is the content of a container: the pack root or an overlay.
type Resources struct {
	BlockStates     []*blockstate.BlockState
	Models          []*model.Model
	Languages       []*lang.Language
	Textures        []*texture.Texture
	Sounds          []*sound.Sound
	SoundRegistries []*sound.Registry
	Unknown         []File
}

func (r *Resources) Model(k key.Key) *model.Model {
	return find(r.Models, func(m *model.Model) bool { return m.Key == k })
}

func (r *Resources) BlockState(k key.Key) *blockstate.BlockState {
	return find(r.BlockStates, func(b *blockstate.BlockState) bool { return b.Key == k })
}

func (r *Resources) Language(k key.Key) *lang.Language {
	return find(r.Languages, func(l *lang.Language) bool { return l.Key == k })
}

func (r *Resources) Texture(k key.Key) *texture.Texture {
	return find(r.Textures, func(t *texture.Texture) bool { return t.Key == k })
}

func (r *Resources) Sound(k key.Key) *sound.Sound {
	return find(r.Sounds, func(s *sound.Sound) bool { return s.Key == k })
}

// SoundRegistry returns the sounds.json of namespace ns.
func (r *Resources) SoundRegistry(ns string) *sound.Registry {
	return find(r.SoundRegistries, func(s *sound.Registry) bool { return s.Namespace == ns })
}

// UnknownFile returns the data of the verbatim file at p.
func (r *Resources) UnknownFile(p string) ([]byte, bool) {
	i := slices.IndexFunc(r.Unknown, func(f File) bool { return f.Path == p })
	if i < 0 {
		return nil, false
	}
	return r.Unknown[i].Data, true
}

func (r *Resources) AddUnknown(p string, data []byte) {
	r.Unknown = append(r.Unknown, File{Path: p, Data: data})
}

func find[T any](xs []T, f func(T) bool) T {
	var zero T
	i := slices.IndexFunc(xs, f)
	if i < 0 {
		return zero
	}
	return xs[i]
}

// Overlay is a container applied on top of the pack root for the pack
// formats listed in the overlays section of the pack metadata.
type Overlay struct {
	Directory string
	Resources
}

// Pack is a resource pack: its metadata, icon, resources and overlays.
type Pack struct {
	Metadata metadata.Metadata
	Icon     []byte
	Resources
	Overlays []*Overlay
}

func New(meta metadata.Metadata) *Pack {
	return &Pack{Metadata: meta}
}

// Overlay returns the overlay in directory dir, or nil.
func (p *Pack) Overlay(dir string) *Overlay {
	return find(p.Overlays, func(o *Overlay) bool { return o.Directory == dir })
}

// OverlayFor returns the overlay in directory dir, creating it if needed.
func (p *Pack) OverlayFor(dir string) *Overlay {
	if o := p.Overlay(dir); o != nil {
		return o
	}
	o := &Overlay{Directory: dir}
	p.Overlays = append(p.Overlays, o)
	return o
}

func (p *Pack) sortedOverlays() []*Overlay {
	res := slices.Clone(p.Overlays)
	slices.SortStableFunc(res, func(a, b *Overlay) int { return strings.Compare(a.Directory, b.Directory) })
	return res
}
