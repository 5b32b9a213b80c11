package metadata

import (
	"fmt"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/packformat"
	"github.com/signadot/respack/stream"
)

const (
	sectionPack     = "pack"
	sectionOverlays = "overlays"
)

// Pack is the "pack" section of pack.mcmeta.
type Pack struct {
	Formats packformat.Range
	// Description is a string or a text component.
	Description *ir.Node
}

// NewPack returns a pack section with a plain text description.
func NewPack(formats packformat.Range, description string) *Pack {
	return &Pack{Formats: formats, Description: ir.FromString(description)}
}

func (p *Pack) Section() string { return sectionPack }

// DescriptionText returns the description if it is a plain string.
func (p *Pack) DescriptionText() string {
	if p.Description == nil || p.Description.Type != ir.StringType {
		return ""
	}
	return p.Description.String
}

func (p *Pack) MarshalStream(w *stream.Writer) error {
	w.StartObject()
	packformat.EncodeFields(w, p.Formats)
	w.Key("description")
	if p.Description == nil {
		w.String("")
	} else {
		w.Node(p.Description)
	}
	w.EndObject()
	return w.Err()
}

func decodePack(node *ir.Node, o *decodeOpts) (Part, error) {
	r, err := packformat.DecodeFields(node, o.formats...)
	if err != nil {
		return nil, err
	}
	desc := ir.Get(node, "description")
	if desc == nil {
		desc = ir.FromString("")
	}
	return &Pack{Formats: r, Description: desc}, nil
}

// OverlayEntry activates the overlay directory for the given formats.
type OverlayEntry struct {
	Directory string
	Formats   packformat.Range
}

// Overlays is the "overlays" section of pack.mcmeta.
type Overlays struct {
	Entries []OverlayEntry
}

func (o *Overlays) Section() string { return sectionOverlays }

func (o *Overlays) MarshalStream(w *stream.Writer) error {
	w.StartObject().Key("entries").StartArray()
	for _, e := range o.Entries {
		w.StartObject().Key("formats")
		packformat.EncodeSupported(w, e.Formats)
		w.KeyValue("directory", e.Directory)
		if packformat.NeedsMinMax(e.Formats) {
			w.Key("min_format")
			packformat.EncodeVersion(w, e.Formats.Min())
			w.Key("max_format")
			packformat.EncodeVersion(w, e.Formats.Max())
		}
		w.EndObject()
	}
	w.EndArray().EndObject()
	return w.Err()
}

func decodeOverlays(node *ir.Node, o *decodeOpts) (Part, error) {
	vals, err := reqArray(node, "entries")
	if err != nil {
		return nil, err
	}
	res := &Overlays{Entries: make([]OverlayEntry, 0, len(vals))}
	for _, v := range vals {
		dir, err := reqString(v, "directory")
		if err != nil {
			return nil, err
		}
		r, err := decodeOverlayFormats(v, o)
		if err != nil {
			return nil, err
		}
		res.Entries = append(res.Entries, OverlayEntry{Directory: dir, Formats: r})
	}
	return res, nil
}

// decodeOverlayFormats reads the formats of an overlay entry. Entries carry
// no canonical version, so the result is canonical at its lower bound.
func decodeOverlayFormats(node *ir.Node, o *decodeOpts) (packformat.Range, error) {
	minF, maxF := ir.Get(node, "min_format"), ir.Get(node, "max_format")
	if minF != nil && maxF != nil {
		lo, err := packformat.DecodeVersion(minF)
		if err != nil {
			return packformat.Range{}, err
		}
		hi, err := packformat.DecodeVersion(maxF)
		if err != nil {
			return packformat.Range{}, err
		}
		return overlaySpan(lo, hi, o)
	}
	f := ir.Get(node, "formats")
	if f == nil {
		return packformat.Range{}, fmt.Errorf("%w: %s: missing formats", ErrBadMetadata, node.Path())
	}
	lo, hi, err := packformat.DecodeSupported(f)
	if err != nil {
		return packformat.Range{}, err
	}
	return overlaySpan(lo, hi, o)
}

func overlaySpan(lo, hi packformat.Version, o *decodeOpts) (packformat.Range, error) {
	if len(o.formats) > 0 && hi.Less(lo) {
		lo, hi = hi, lo
	}
	return packformat.Span(lo, hi)
}
