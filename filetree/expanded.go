package filetree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Expanded writes entries as files under a root directory.
type Expanded struct {
	root    string
	opts    *options
	entries entrySet
	closed  bool
}

// NewExpanded creates root if needed. With Clear(true) anything already
// under root is removed first.
func NewExpanded(root string, opts ...Option) (*Expanded, error) {
	o := newOptions(opts)
	if o.clear {
		if err := clearDir(root); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}
	return &Expanded{root: root, opts: o, entries: entrySet{}}, nil
}

func clearDir(root string) error {
	des, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("clearing %s: %w", root, err)
	}
	for _, de := range des {
		if err := os.RemoveAll(filepath.Join(root, de.Name())); err != nil {
			return fmt.Errorf("clearing %s: %w", root, err)
		}
	}
	return nil
}

func (t *Expanded) Root() string { return t.root }

func (t *Expanded) file(p string) string {
	return filepath.Join(t.root, filepath.FromSlash(p))
}

func (t *Expanded) Exists(p string) bool {
	if t.entries.has(p) {
		return true
	}
	if checkPath(p) != nil {
		return false
	}
	_, err := os.Stat(t.file(p))
	return err == nil
}

// Open replaces any existing file at p, creating parent directories.
func (t *Expanded) Open(p string) (io.WriteCloser, error) {
	if t.closed {
		return nil, ErrClosed
	}
	if err := t.entries.claim(p); err != nil {
		return nil, err
	}
	fp := t.file(p)
	if err := os.Remove(fp); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("replacing %s: %w", p, err)
	}
	if err := os.MkdirAll(filepath.Dir(fp), 0o755); err != nil {
		return nil, fmt.Errorf("creating parent of %s: %w", p, err)
	}
	f, err := os.OpenFile(fp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", p, err)
	}
	t.opts.logger.Debug("open entry", "tree", t.root, "path", p)
	return f, nil
}

func (t *Expanded) Write(p string, data []byte) error {
	return writeBytes(t, p, data)
}

func (t *Expanded) WriteResource(r Resource) error {
	return writeResource(t, r, t.opts.indent)
}

// Finish has nothing to flush; files are complete once closed.
func (t *Expanded) Finish() error {
	return nil
}

func (t *Expanded) Close() error {
	t.closed = true
	return nil
}
