package category

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/key"
)

// Registry holds the categories of a container type, keyed by folder.
type Registry[C any] struct {
	layout   Layout
	handlers []Handler[C]
	byName   map[string]Handler[C]
	logger   *slog.Logger
}

// NewRegistry builds a registry. A nil layout means AssetsLayout. Folders
// must be distinct.
func NewRegistry[C any](layout Layout, hs ...Handler[C]) (*Registry[C], error) {
	if layout == nil {
		layout = AssetsLayout{}
	}
	r := &Registry[C]{
		layout: layout,
		byName: make(map[string]Handler[C], len(hs)),
		logger: slog.Default(),
	}
	for _, h := range hs {
		if _, dup := r.byName[h.Name()]; dup {
			return nil, fmt.Errorf("duplicate category %q", h.Name())
		}
		r.byName[h.Name()] = h
		r.handlers = append(r.handlers, h)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry[C any](layout Layout, hs ...Handler[C]) *Registry[C] {
	r, err := NewRegistry(layout, hs...)
	if err != nil {
		panic(err)
	}
	return r
}

// WithLogger returns r logging to logger.
func (r *Registry[C]) WithLogger(logger *slog.Logger) *Registry[C] {
	res := *r
	res.logger = logger
	return &res
}

func (r *Registry[C]) Layout() Layout { return r.layout }

func (r *Registry[C]) Handlers() []Handler[C] {
	return append([]Handler[C](nil), r.handlers...)
}

func (r *Registry[C]) Get(folder string) (Handler[C], bool) {
	h, ok := r.byName[folder]
	return h, ok
}

// WriteAll writes every entity of c, category by category in registration
// order and by key within a category.
func (r *Registry[C]) WriteAll(t filetree.Tree, c C) error {
	for _, h := range r.handlers {
		n := h.Count(c)
		if n == 0 {
			continue
		}
		if err := h.write(t, r.layout, c); err != nil {
			return fmt.Errorf("writing %s: %w", h.Name(), err)
		}
		r.logger.Debug("wrote category", "category", h.Name(), "count", n)
	}
	return nil
}

// Lookup finds the category of p and the key it encodes. It returns
// ErrNoCategory if no category folder contains p and ErrExtension if one
// does but the extension differs.
func (r *Registry[C]) Lookup(p string) (Handler[C], key.Key, error) {
	var extErr error
	for _, h := range r.handlers {
		ns, rest, ok := r.layout.Split(h.Name(), p)
		if !ok {
			continue
		}
		value, ok := strings.CutSuffix(rest, h.Ext())
		if !ok || value == "" {
			extErr = fmt.Errorf("%w: %s in %s", ErrExtension, p, h.Name())
			continue
		}
		k, err := key.New(ns, value)
		if err != nil {
			return nil, key.Key{}, fmt.Errorf("%s: %w", p, err)
		}
		return h, k, nil
	}
	if extErr != nil {
		return nil, key.Key{}, extErr
	}
	return nil, key.Key{}, fmt.Errorf("%w: %s", ErrNoCategory, p)
}

type readOpts struct {
	lenient bool
	sidecar []byte
}

type ReadOption func(*readOpts)

// Lenient accepts comments and trailing commas in JSON entries.
func Lenient(v bool) ReadOption {
	return func(o *readOpts) { o.lenient = v }
}

// WithSidecar passes the contents of the metadata file next to the entry.
func WithSidecar(data []byte) ReadOption {
	return func(o *readOpts) { o.sidecar = data }
}

// Read decodes the entry at p and adds it to c.
func (r *Registry[C]) Read(c C, p string, data []byte, opts ...ReadOption) error {
	o := &readOpts{}
	for _, opt := range opts {
		opt(o)
	}
	h, k, err := r.Lookup(p)
	if err != nil {
		return err
	}
	return h.read(c, k, data, o)
}
