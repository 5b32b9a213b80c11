// Package manifest records the path, size and hash of every file of a
// pack, for caches that only fetch what changed.
package manifest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/signadot/respack/digest"
	"github.com/signadot/respack/filetree"
)

// Version is the version of the encoding written by Encode.
const Version = 1

var ErrBadManifest = errors.New("bad manifest")

type Entry struct {
	Path   string      `cbor:"1,keyasint"`
	Size   int64       `cbor:"2,keyasint"`
	BLAKE3 digest.Hash `cbor:"3,keyasint"`
}

// Manifest lists entries sorted by path.
type Manifest struct {
	Version int     `cbor:"1,keyasint"`
	Entries []Entry `cbor:"2,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("manifest: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("manifest: CBOR decoder initialization failed: " + err.Error())
	}
}

// Build hashes every entry of src.
func Build(src filetree.Source) (*Manifest, error) {
	es, err := src.Entries()
	if err != nil {
		return nil, err
	}
	m := &Manifest{Version: Version, Entries: make([]Entry, 0, len(es))}
	for _, e := range es {
		d, err := e.ReadAll()
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, Entry{Path: e.Path, Size: int64(len(d)), BLAKE3: digest.File(d)})
	}
	slices.SortFunc(m.Entries, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) })
	return m, nil
}

// Lookup returns the entry at path p.
func (m *Manifest) Lookup(p string) (Entry, bool) {
	i, ok := slices.BinarySearchFunc(m.Entries, p, func(e Entry, p string) int { return strings.Compare(e.Path, p) })
	if !ok {
		return Entry{}, false
	}
	return m.Entries[i], true
}

// Changed returns the paths of m which are absent from or differ in old.
func (m *Manifest) Changed(old *Manifest) []string {
	var res []string
	for _, e := range m.Entries {
		if o, ok := old.Lookup(e.Path); !ok || o != e {
			res = append(res, e.Path)
		}
	}
	return res
}

// Marshal encodes m as deterministic CBOR.
func (m *Manifest) Marshal() ([]byte, error) {
	d, err := encMode.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return d, nil
}

func Unmarshal(d []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := decMode.Unmarshal(d, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadManifest, err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("%w: version %d", ErrBadManifest, m.Version)
	}
	if !slices.IsSortedFunc(m.Entries, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) }) {
		return nil, fmt.Errorf("%w: entries not sorted", ErrBadManifest)
	}
	return m, nil
}
