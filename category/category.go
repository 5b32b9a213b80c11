// Package category dispatches the entities of a pack container to the
// files of a tree and back.
//
// A [Category] describes one kind of entity: its folder, file extension and
// codec, and how to list and add entities of a container. Categories of
// different entity types are held together in a [Registry], which is
// constructed once and passed to writers and readers explicitly.
package category

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/parse"
	"github.com/signadot/respack/stream"
)

var (
	ErrNoCategory = errors.New("no category")
	ErrExtension  = errors.New("unexpected extension")
	ErrCodec      = errors.New("category has no codec")
)

// Category handles entities of type T held in containers of type C.
//
// Entities are JSON documents when Encode and DecodeNode are set, and raw
// files when EncodeBytes and DecodeBytes are set.
type Category[C, T any] struct {
	Folder    string
	Extension string

	List func(C) []T
	Add  func(C, T)
	Key  func(T) key.Key

	Encode      func(*stream.Writer, T) error
	EncodeBytes func(T) []byte
	DecodeNode  func(*ir.Node, key.Key) (T, error)
	DecodeBytes func([]byte, key.Key) (T, error)

	// Sidecar returns the metadata written next to an entity, if any.
	Sidecar func(T) filetree.Sidecar
	// WithSidecar attaches metadata read next to an entity.
	WithSidecar func(T, *ir.Node) (T, error)
}

// Handler is the type-erased view of a Category held by a Registry.
type Handler[C any] interface {
	Name() string
	Ext() string
	// HasSidecar reports whether entities may carry metadata.
	HasSidecar() bool
	Count(c C) int

	write(t filetree.Tree, l Layout, c C) error
	read(c C, k key.Key, data []byte, o *readOpts) error
}

func (cat *Category[C, T]) Name() string { return cat.Folder }
func (cat *Category[C, T]) Ext() string  { return cat.Extension }

func (cat *Category[C, T]) HasSidecar() bool {
	return cat.Sidecar != nil || cat.WithSidecar != nil
}

func (cat *Category[C, T]) Count(c C) int {
	return len(cat.List(c))
}

// Sorted returns the entities of c ordered by key.
func (cat *Category[C, T]) Sorted(c C) []T {
	res := slices.Clone(cat.List(c))
	slices.SortStableFunc(res, func(a, b T) int { return key.Compare(cat.Key(a), cat.Key(b)) })
	return res
}

func (cat *Category[C, T]) write(t filetree.Tree, l Layout, c C) error {
	for _, v := range cat.Sorted(c) {
		p := l.Path(cat.Folder, cat.Key(v), cat.Extension)
		var sc filetree.Sidecar
		if cat.Sidecar != nil {
			sc = cat.Sidecar(v)
		}
		var r filetree.Resource
		switch {
		case cat.EncodeBytes != nil:
			r = &binaryResource{path: p, data: cat.EncodeBytes(v), sidecar: sc}
		case cat.Encode != nil:
			r = &documentResource[T]{path: p, v: v, enc: cat.Encode, sidecar: sc}
		default:
			return fmt.Errorf("%w: %s", ErrCodec, cat.Folder)
		}
		if err := t.WriteResource(r); err != nil {
			return err
		}
	}
	return nil
}

func (cat *Category[C, T]) read(c C, k key.Key, data []byte, o *readOpts) error {
	var (
		v   T
		err error
	)
	switch {
	case cat.DecodeBytes != nil:
		v, err = cat.DecodeBytes(data, k)
	case cat.DecodeNode != nil:
		var node *ir.Node
		node, err = parse.Parse(data, parse.Lenient(o.lenient))
		if err != nil {
			return err
		}
		v, err = cat.DecodeNode(node, k)
	default:
		return fmt.Errorf("%w: %s", ErrCodec, cat.Folder)
	}
	if err != nil {
		return fmt.Errorf("decoding %s %s: %w", cat.Folder, k, err)
	}
	if o.sidecar != nil && cat.WithSidecar != nil {
		node, err := parse.Parse(o.sidecar, parse.Lenient(o.lenient))
		if err != nil {
			return fmt.Errorf("metadata of %s %s: %w", cat.Folder, k, err)
		}
		if v, err = cat.WithSidecar(v, node); err != nil {
			return fmt.Errorf("metadata of %s %s: %w", cat.Folder, k, err)
		}
	}
	cat.Add(c, v)
	return nil
}

type documentResource[T any] struct {
	path    string
	v       T
	enc     func(*stream.Writer, T) error
	sidecar filetree.Sidecar
}

func (r *documentResource[T]) Path() string              { return r.path }
func (r *documentResource[T]) Sidecar() filetree.Sidecar { return r.sidecar }

func (r *documentResource[T]) MarshalStream(w *stream.Writer) error {
	return r.enc(w, r.v)
}

type binaryResource struct {
	path    string
	data    []byte
	sidecar filetree.Sidecar
}

func (r *binaryResource) Path() string              { return r.path }
func (r *binaryResource) Bytes() []byte             { return r.data }
func (r *binaryResource) Sidecar() filetree.Sidecar { return r.sidecar }
