// Package filetree provides the sinks a pack is written to: an expanded
// directory ([Expanded]) or a single zip archive ([Archive]), and the
// sources it is read back from.
//
// Every tree accepts each path at most once. Paths are slash separated and
// relative, e.g. "assets/minecraft/models/block/stone.json".
package filetree

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/signadot/respack/stream"
)

// MetadataSuffix is appended to a resource path to locate its sidecar.
const MetadataSuffix = ".mcmeta"

var (
	ErrDuplicatePath = errors.New("path already written")
	ErrBadPath       = errors.New("bad path")
	ErrClosed        = errors.New("tree closed")
	ErrBadResource   = errors.New("bad resource")
)

// Tree is a write-once store of path to bytes.
type Tree interface {
	// Exists reports whether path has been written or is otherwise present.
	Exists(path string) bool
	// Open claims path and returns a sink for its contents. The sink must
	// be closed.
	Open(path string) (io.WriteCloser, error)
	Write(path string, data []byte) error
	// WriteResource writes r at r.Path(), followed by its sidecar, if any
	// and not empty, at r.Path()+MetadataSuffix.
	WriteResource(r Resource) error
	// Finish flushes everything written without closing the underlying
	// resource.
	Finish() error
	Close() error
}

// Resource is an entry which knows its own location. Its content is a
// JSON document if it implements stream.Marshaler, or raw bytes if it
// implements Binary.
type Resource interface {
	Path() string
	// Sidecar returns the metadata document for the resource, or nil.
	Sidecar() Sidecar
}

type Binary interface {
	Bytes() []byte
}

type Sidecar interface {
	stream.Marshaler
	IsEmpty() bool
}

type options struct {
	clear         bool
	indent        string
	logger        *slog.Logger
	method        uint16
	entryFactory  func(name string) *FileHeader
	onEntryClosed func(name string, size int64)
}

type Option func(*options)

// Clear removes existing contents of an Expanded tree's root on creation.
func Clear(v bool) Option {
	return func(o *options) { o.clear = v }
}

// WithIndent sets the indentation of documents written by WriteResource.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func newOptions(opts []Option) *options {
	o := &options{method: Deflate}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// entrySet records claimed paths.
type entrySet map[string]struct{}

func (s entrySet) claim(p string) error {
	if err := checkPath(p); err != nil {
		return err
	}
	if _, ok := s[p]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePath, p)
	}
	s[p] = struct{}{}
	return nil
}

func (s entrySet) has(p string) bool {
	_, ok := s[p]
	return ok
}

func checkPath(p string) error {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") || path.Clean(p) != p || p == ".." || strings.HasPrefix(p, "../") {
		return fmt.Errorf("%w: %q", ErrBadPath, p)
	}
	return nil
}

// WriteDocument opens path on t and writes m as a JSON document.
func WriteDocument(t Tree, path string, m stream.Marshaler, opts ...stream.WriterOption) (err error) {
	wc, err := t.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	w := stream.NewWriter(wc, opts...)
	if err := m.MarshalStream(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Finish(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeResource(t Tree, r Resource, indent string) error {
	p := r.Path()
	var err error
	switch c := r.(type) {
	case Binary:
		err = writeBytes(t, p, c.Bytes())
	case stream.Marshaler:
		err = WriteDocument(t, p, c, stream.WithIndent(indent))
	default:
		err = fmt.Errorf("%w: %s has no content", ErrBadResource, p)
	}
	if err != nil {
		return err
	}
	sc := r.Sidecar()
	if sc == nil || sc.IsEmpty() {
		return nil
	}
	return WriteDocument(t, p+MetadataSuffix, sc, stream.WithIndent(indent))
}

func writeBytes(t Tree, path string, data []byte) error {
	wc, err := t.Open(path)
	if err != nil {
		return err
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return wc.Close()
}
