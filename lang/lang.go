// Package lang implements translation files, assets/<ns>/lang/<code>.json.
package lang

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/stream"
)

var ErrBadLanguage = errors.New("bad language")

type Translation struct {
	Key   string
	Value string
}

// Language is the translations of one locale, keyed by its code, e.g.
// minecraft:en_us. Translations keep their order.
type Language struct {
	Key          key.Key
	Translations []Translation
}

// Get returns the translation of k.
func (l *Language) Get(k string) (string, bool) {
	i := slices.IndexFunc(l.Translations, func(t Translation) bool { return t.Key == k })
	if i < 0 {
		return "", false
	}
	return l.Translations[i].Value, true
}

// Set replaces the translation of k in place or appends it.
func (l *Language) Set(k, v string) {
	i := slices.IndexFunc(l.Translations, func(t Translation) bool { return t.Key == k })
	if i < 0 {
		l.Translations = append(l.Translations, Translation{Key: k, Value: v})
		return
	}
	l.Translations[i].Value = v
}

func (l *Language) MarshalStream(w *stream.Writer) error {
	return Encode(w, l)
}

func Encode(w *stream.Writer, l *Language) error {
	w.StartObject()
	for _, t := range l.Translations {
		w.KeyValue(t.Key, t.Value)
	}
	w.EndObject()
	return w.Err()
}

func Decode(node *ir.Node, k key.Key) (*Language, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s: expected object, got %s", ErrBadLanguage, node.Path(), node.Type)
	}
	l := &Language{Key: k, Translations: make([]Translation, 0, len(node.Fields))}
	for i, f := range node.Fields {
		s, err := node.Values[i].AsString()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadLanguage, err)
		}
		l.Translations = append(l.Translations, Translation{Key: f.String, Value: s})
	}
	return l, nil
}
