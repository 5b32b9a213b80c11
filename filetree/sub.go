package filetree

import (
	"io"
	"path"
)

// Sub is a view of a tree rooted at a directory of it. Finishing or closing
// a Sub does not affect the parent tree.
type Sub struct {
	parent Tree
	dir    string
}

// NewSub returns the view of t below dir.
func NewSub(t Tree, dir string) *Sub {
	return &Sub{parent: t, dir: dir}
}

func (s *Sub) Dir() string { return s.dir }

func (s *Sub) join(p string) string {
	if p == "" {
		return ""
	}
	return path.Join(s.dir, p)
}

func (s *Sub) Exists(p string) bool {
	return s.parent.Exists(s.join(p))
}

func (s *Sub) Open(p string) (io.WriteCloser, error) {
	if err := checkPath(p); err != nil {
		return nil, err
	}
	return s.parent.Open(s.join(p))
}

func (s *Sub) Write(p string, data []byte) error {
	return writeBytes(s, p, data)
}

func (s *Sub) WriteResource(r Resource) error {
	return writeResource(s, r, s.indent())
}

func (s *Sub) indent() string {
	if in, ok := s.parent.(indenter); ok {
		return in.indent()
	}
	return ""
}

func (s *Sub) Finish() error { return nil }
func (s *Sub) Close() error  { return nil }

type indenter interface {
	indent() string
}

func (t *Expanded) indent() string { return t.opts.indent }
func (a *Archive) indent() string  { return a.opts.indent }
