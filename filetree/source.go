package filetree

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Entry is one readable path of a Source.
type Entry struct {
	Path string
	Open func() (io.ReadCloser, error)
}

func (e Entry) ReadAll() ([]byte, error) {
	rc, err := e.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", e.Path, err)
	}
	defer rc.Close()
	d, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", e.Path, err)
	}
	return d, nil
}

// Source lists entries in lexical path order.
type Source interface {
	Entries() ([]Entry, error)
}

// Dir is a Source over the regular files of an fs.FS.
type Dir struct {
	fsys fs.FS
}

func DirSource(root string) *Dir {
	return &Dir{fsys: os.DirFS(root)}
}

func FSSource(fsys fs.FS) *Dir {
	return &Dir{fsys: fsys}
}

func (d *Dir) Entries() ([]Entry, error) {
	var res []Entry
	err := fs.WalkDir(d.fsys, ".", func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !de.Type().IsRegular() {
			return nil
		}
		res = append(res, Entry{
			Path: p,
			Open: func() (io.ReadCloser, error) { return d.fsys.Open(p) },
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing directory: %w", err)
	}
	sortEntries(res)
	return res, nil
}

// Zip is a Source over the files of a zip archive, including entries
// compressed with zstd.
type Zip struct {
	r      *zip.Reader
	closer io.Closer
}

func ZipSource(r io.ReaderAt, size int64) (*Zip, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading zip: %w", err)
	}
	zr.RegisterDecompressor(Zstd, zstd.ZipDecompressor())
	return &Zip{r: zr}, nil
}

func OpenZip(name string) (*Zip, error) {
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	rc.RegisterDecompressor(Zstd, zstd.ZipDecompressor())
	return &Zip{r: &rc.Reader, closer: rc}, nil
}

func (z *Zip) Entries() ([]Entry, error) {
	res := make([]Entry, 0, len(z.r.File))
	for _, f := range z.r.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		res = append(res, Entry{Path: f.Name, Open: f.Open})
	}
	sortEntries(res)
	return res, nil
}

func sortEntries(es []Entry) {
	slices.SortFunc(es, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) })
}

func (z *Zip) Close() error {
	if z.closer == nil {
		return nil
	}
	return z.closer.Close()
}
