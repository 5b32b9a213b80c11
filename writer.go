package respack

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/signadot/respack/digest"
	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/sound"
	"github.com/signadot/respack/stream"
)

// Writer writes packs. The order of entries depends only on the pack, so
// writing the same pack twice gives identical trees.
type Writer struct {
	opts *options
}

func NewWriter(opts ...Option) *Writer {
	return &Writer{opts: newOptions(opts)}
}

// Write writes p to t: pack.mcmeta, pack.png, the root resources, the
// overlays by directory, and then the unknown files of the root by path.
// Resources are indented according to t's own options.
func (w *Writer) Write(t filetree.Tree, p *Pack) error {
	if !p.Metadata.IsEmpty() {
		if err := filetree.WriteDocument(t, MetadataFile, p.Metadata, stream.WithIndent(w.opts.indent)); err != nil {
			return err
		}
	}
	if p.Icon != nil {
		if err := t.Write(IconFile, p.Icon); err != nil {
			return err
		}
	}
	if err := w.writeEntities(t, &p.Resources); err != nil {
		return err
	}
	for _, o := range p.sortedOverlays() {
		sub := filetree.NewSub(t, path.Join(OverlaysDir, o.Directory))
		if err := w.writeEntities(sub, &o.Resources); err != nil {
			return fmt.Errorf("overlay %s: %w", o.Directory, err)
		}
		if err := writeUnknown(sub, &o.Resources); err != nil {
			return fmt.Errorf("overlay %s: %w", o.Directory, err)
		}
		w.opts.logger.Debug("wrote overlay", "directory", o.Directory)
	}
	return writeUnknown(t, &p.Resources)
}

func (w *Writer) writeEntities(t filetree.Tree, r *Resources) error {
	if err := w.opts.registry.WriteAll(t, r); err != nil {
		return err
	}
	regs := slices.Clone(r.SoundRegistries)
	slices.SortStableFunc(regs, func(a, b *sound.Registry) int { return strings.Compare(a.Namespace, b.Namespace) })
	for _, reg := range regs {
		if err := filetree.WriteDocument(t, reg.Path(), reg, stream.WithIndent(w.opts.indent)); err != nil {
			return err
		}
	}
	return nil
}

func writeUnknown(t filetree.Tree, r *Resources) error {
	files := slices.Clone(r.Unknown)
	slices.SortStableFunc(files, func(a, b File) int { return strings.Compare(a.Path, b.Path) })
	for _, f := range files {
		if err := t.Write(f.Path, f.Data); err != nil {
			return err
		}
	}
	return nil
}

// WriteToDir writes p as an expanded directory. Anything already under dir
// is removed first unless the tree options include filetree.Clear(false).
func (w *Writer) WriteToDir(p *Pack, dir string) error {
	t, err := filetree.NewExpanded(dir, w.opts.trees(filetree.Clear(true))...)
	if err != nil {
		return err
	}
	defer t.Close()
	if err := w.Write(t, p); err != nil {
		return err
	}
	return t.Finish()
}

// WriteToZip writes p as a zip archive to out, which is left open.
func (w *Writer) WriteToZip(p *Pack, out io.Writer) error {
	a := filetree.NewArchive(out, w.opts.trees()...)
	if err := w.Write(a, p); err != nil {
		return err
	}
	return a.Finish()
}

// Built is a pack archive and its digests.
type Built struct {
	Data []byte
	digest.Sum
}

// Build writes p as a zip archive in memory.
func (w *Writer) Build(p *Pack) (*Built, error) {
	buf := &bytes.Buffer{}
	dw := digest.NewWriter(buf)
	if err := w.WriteToZip(p, dw); err != nil {
		return nil, err
	}
	res := &Built{Data: buf.Bytes(), Sum: dw.Sum()}
	w.opts.logger.Info("built pack", "size", res.Size, "sha1", res.SHA1)
	return res, nil
}
