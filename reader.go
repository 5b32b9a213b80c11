package respack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/respack/category"
	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/metadata"
	"github.com/signadot/respack/parse"
	"github.com/signadot/respack/sound"
)

// Reader reads packs written by a Writer, or by hand.
type Reader struct {
	opts *options
}

func NewReader(opts ...Option) *Reader {
	return &Reader{opts: newOptions(opts)}
}

// ReadDir reads the expanded pack under dir.
func (r *Reader) ReadDir(dir string) (*Pack, error) {
	return r.Read(filetree.DirSource(dir))
}

// ReadZip reads the pack archive at name.
func (r *Reader) ReadZip(name string) (*Pack, error) {
	z, err := filetree.OpenZip(name)
	if err != nil {
		return nil, err
	}
	defer z.Close()
	return r.Read(z)
}

// Read reads every entry of src. Entries in an unexpected place, with an
// unexpected extension or an invalid namespace are kept as unknown files
// of their container. A texture and its .mcmeta pair up whatever their
// order; metadata without its texture is dropped.
func (r *Reader) Read(src filetree.Source) (*Pack, error) {
	es, err := src.Entries()
	if err != nil {
		return nil, err
	}
	data := make(map[string][]byte, len(es))
	for _, e := range es {
		d, err := e.ReadAll()
		if err != nil {
			return nil, err
		}
		data[e.Path] = d
	}
	p := &Pack{}
	for _, e := range es {
		if err := r.readEntry(p, e.Path, data); err != nil {
			return nil, err
		}
	}
	r.opts.logger.Debug("read pack", "entries", len(es), "overlays", len(p.Overlays))
	return p, nil
}

func (r *Reader) readEntry(p *Pack, fp string, data map[string][]byte) error {
	d := data[fp]
	switch fp {
	case MetadataFile:
		m, err := metadata.Parse(d, r.opts.lenient)
		if err != nil {
			return fmt.Errorf("%s: %w", fp, err)
		}
		p.Metadata = m
		return nil
	case IconFile:
		p.Icon = d
		return nil
	}
	if !strings.Contains(fp, "/") {
		p.AddUnknown(fp, d)
		return nil
	}
	res, rel, prefix := &p.Resources, fp, ""
	if rest, ok := strings.CutPrefix(fp, OverlaysDir+"/"); ok {
		dir, sub, ok := strings.Cut(rest, "/")
		if !ok {
			p.AddUnknown(fp, d)
			return nil
		}
		res, rel, prefix = &p.OverlayFor(dir).Resources, sub, OverlaysDir+"/"+dir+"/"
	}
	return r.readResource(res, rel, prefix, data)
}

// readResource reads the entry at prefix+rel into the container res.
func (r *Reader) readResource(res *Resources, rel, prefix string, data map[string][]byte) error {
	d := data[prefix+rel]
	if owner, ok := strings.CutSuffix(rel, filetree.MetadataSuffix); ok {
		if h, _, err := r.opts.registry.Lookup(owner); err == nil && h.HasSidecar() {
			if _, paired := data[prefix+owner]; !paired {
				r.opts.logger.Debug("dropping metadata without its file", "path", prefix+rel)
			}
			return nil
		}
	}
	if ns, ok := soundRegistryNamespace(rel); ok {
		node, err := parse.Parse(d, parse.Lenient(r.opts.lenient))
		if err != nil {
			return fmt.Errorf("%s: %w", prefix+rel, err)
		}
		reg, err := sound.DecodeRegistry(node, ns)
		if err != nil {
			return fmt.Errorf("%s: %w", prefix+rel, err)
		}
		res.SoundRegistries = append(res.SoundRegistries, reg)
		return nil
	}
	h, _, err := r.opts.registry.Lookup(rel)
	switch {
	case errors.Is(err, category.ErrNoCategory), errors.Is(err, category.ErrExtension), errors.Is(err, key.ErrInvalid):
		r.opts.logger.Debug("unknown file", "path", prefix+rel, "reason", err)
		res.AddUnknown(rel, d)
		return nil
	case err != nil:
		return err
	}
	opts := []category.ReadOption{category.Lenient(r.opts.lenient)}
	if h.HasSidecar() {
		if sc, ok := data[prefix+rel+filetree.MetadataSuffix]; ok {
			opts = append(opts, category.WithSidecar(sc))
		}
	}
	if err := r.opts.registry.Read(res, rel, d, opts...); err != nil {
		return fmt.Errorf("%s: %w", prefix+rel, err)
	}
	return nil
}

// soundRegistryNamespace matches assets/<ns>/sounds.json.
func soundRegistryNamespace(p string) (string, bool) {
	rest, ok := strings.CutPrefix(p, "assets/")
	if !ok {
		return "", false
	}
	ns, file, ok := strings.Cut(rest, "/")
	if !ok || file != sound.RegistryFile || !key.ValidNamespace(ns) {
		return "", false
	}
	return ns, true
}
