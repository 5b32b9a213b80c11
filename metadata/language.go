package metadata

import (
	"fmt"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/stream"
)

const (
	sectionLanguage = "language"
	sectionFilter   = "filter"
)

// LanguageEntry declares a language a pack adds.
type LanguageEntry struct {
	Code          string
	Name          string
	Region        string
	Bidirectional bool
}

// Language is the "language" section of pack.mcmeta. Entries keep their
// order.
type Language struct {
	Entries []LanguageEntry
}

func (l *Language) Section() string { return sectionLanguage }

func (l *Language) MarshalStream(w *stream.Writer) error {
	w.StartObject()
	for _, e := range l.Entries {
		w.Key(e.Code).StartObject().
			KeyValue("name", e.Name).
			KeyValue("region", e.Region)
		if e.Bidirectional {
			w.KeyValue("bidirectional", true)
		}
		w.EndObject()
	}
	w.EndObject()
	return w.Err()
}

func decodeLanguage(node *ir.Node, o *decodeOpts) (Part, error) {
	l := &Language{Entries: make([]LanguageEntry, 0, len(node.Fields))}
	for i, f := range node.Fields {
		v := node.Values[i]
		if v.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: %s: expected object, got %s", ErrBadMetadata, v.Path(), v.Type)
		}
		e := LanguageEntry{Code: f.String}
		var err error
		if e.Name, err = reqString(v, "name"); err != nil {
			return nil, err
		}
		if e.Region, err = reqString(v, "region"); err != nil {
			return nil, err
		}
		if e.Bidirectional, err = optBool(v, "bidirectional", false); err != nil {
			return nil, err
		}
		l.Entries = append(l.Entries, e)
	}
	return l, nil
}

// KeyPattern matches resource keys by regular expressions on namespace and
// path. An empty pattern matches anything.
type KeyPattern struct {
	Namespace string
	Path      string
}

// Filter is the "filter" section of pack.mcmeta, hiding resources of lower
// packs.
type Filter struct {
	Block []KeyPattern
}

func (f *Filter) Section() string { return sectionFilter }

func (f *Filter) MarshalStream(w *stream.Writer) error {
	w.StartObject().Key("block").StartArray()
	for _, p := range f.Block {
		w.StartObject()
		if p.Namespace != "" {
			w.KeyValue("namespace", p.Namespace)
		}
		if p.Path != "" {
			w.KeyValue("path", p.Path)
		}
		w.EndObject()
	}
	w.EndArray().EndObject()
	return w.Err()
}

func decodeFilter(node *ir.Node, o *decodeOpts) (Part, error) {
	vals, err := reqArray(node, "block")
	if err != nil {
		return nil, err
	}
	f := &Filter{Block: make([]KeyPattern, 0, len(vals))}
	for _, v := range vals {
		var p KeyPattern
		if p.Namespace, err = optString(v, "namespace"); err != nil {
			return nil, err
		}
		if p.Path, err = optString(v, "path"); err != nil {
			return nil, err
		}
		f.Block = append(f.Block, p)
	}
	return f, nil
}
