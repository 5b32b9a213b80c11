package filetree

import (
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

type FileHeader = zip.FileHeader

// Compression methods for archive entries.
const (
	Store   = zip.Store
	Deflate = zip.Deflate
	Zstd    = zstd.ZipMethodWinZip
)

// dosEpochDate is 1980-01-01 in MS-DOS date format, the earliest date a
// zip entry can carry.
const dosEpochDate = 1<<5 | 1

// Method selects the compression method of archive entries.
func Method(m uint16) Option {
	return func(o *options) { o.method = m }
}

// EntryFactory customizes the header of each archive entry. The archive
// overrides the name and timestamps of the returned header.
func EntryFactory(f func(name string) *FileHeader) Option {
	return func(o *options) { o.entryFactory = f }
}

// OnEntryClosed is called with the name and uncompressed size of every
// archive entry once it is closed.
func OnEntryClosed(f func(name string, size int64)) Option {
	return func(o *options) { o.onEntryClosed = f }
}

// Archive writes entries sequentially into a zip archive. Entry headers
// carry a fixed timestamp, so identical input gives identical bytes.
//
// At most one entry is open at a time: opening an entry closes the
// previously opened one, whose sink then rejects further writes.
type Archive struct {
	out      io.Writer
	zw       *zip.Writer
	opts     *options
	entries  entrySet
	current  *entry
	finished bool
}

func NewArchive(out io.Writer, opts ...Option) *Archive {
	o := newOptions(opts)
	zw := zip.NewWriter(out)
	// an entry factory may pick zstd per entry
	zw.RegisterCompressor(Zstd, zstd.ZipCompressor(zstd.WithEncoderConcurrency(1)))
	return &Archive{out: out, zw: zw, opts: o, entries: entrySet{}}
}

func (a *Archive) Exists(p string) bool {
	return a.entries.has(p)
}

func (a *Archive) Open(p string) (io.WriteCloser, error) {
	if a.finished {
		return nil, ErrClosed
	}
	if err := a.entries.claim(p); err != nil {
		return nil, err
	}
	if err := a.closeCurrent(); err != nil {
		return nil, err
	}
	hdr := &FileHeader{Method: a.opts.method}
	if a.opts.entryFactory != nil {
		if h := a.opts.entryFactory(p); h != nil {
			hdr = h
		}
	}
	hdr.Name = p
	hdr.Modified = time.Time{}
	hdr.ModifiedTime = 0
	hdr.ModifiedDate = dosEpochDate
	w, err := a.zw.CreateHeader(hdr)
	if err != nil {
		return nil, fmt.Errorf("creating entry %s: %w", p, err)
	}
	a.current = &entry{a: a, name: p, w: w}
	a.opts.logger.Debug("open entry", "path", p)
	return a.current, nil
}

// closeCurrent finalizes the open entry, if any. It is the only place an
// entry is closed, whether by its own Close or by opening the next one.
func (a *Archive) closeCurrent() error {
	e := a.current
	if e == nil {
		return nil
	}
	a.current = nil
	e.closed = true
	if a.opts.onEntryClosed != nil {
		a.opts.onEntryClosed(e.name, e.n)
	}
	return nil
}

func (a *Archive) Write(p string, data []byte) error {
	return writeBytes(a, p, data)
}

func (a *Archive) WriteResource(r Resource) error {
	return writeResource(a, r, a.opts.indent)
}

// Finish writes the central directory. The underlying writer is left
// open.
func (a *Archive) Finish() error {
	if a.finished {
		return nil
	}
	if err := a.closeCurrent(); err != nil {
		return err
	}
	a.finished = true
	if err := a.zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}

// Close finishes the archive and closes the underlying writer if it is an
// io.Closer.
func (a *Archive) Close() error {
	if err := a.Finish(); err != nil {
		return err
	}
	if c, ok := a.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type entry struct {
	a      *Archive
	name   string
	w      io.Writer
	n      int64
	closed bool
}

func (e *entry) Write(p []byte) (int, error) {
	if e.closed {
		return 0, fmt.Errorf("%w: entry %s", ErrClosed, e.name)
	}
	n, err := e.w.Write(p)
	e.n += int64(n)
	return n, err
}

func (e *entry) Close() error {
	if e.closed {
		return nil
	}
	if e.a.current != e {
		e.closed = true
		return nil
	}
	return e.a.closeCurrent()
}
