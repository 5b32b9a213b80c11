// Package digest hashes pack bytes while they are written.
//
// SHA-1 is what game clients verify a downloaded pack against. BLAKE3,
// keyed by a fixed domain key, addresses packs and their files in caches.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/zeebo/blake3"
)

type Hash [32]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func ParseHash(s string) (Hash, error) {
	var h Hash
	d, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("parsing hash: %w", err)
	}
	if len(d) != len(h) {
		return h, fmt.Errorf("hash is %d bytes, want %d", len(d), len(h))
	}
	copy(h[:], d)
	return h, nil
}

type domainKey [32]byte

var (
	packDomainKey = domainKey{
		'r', 'e', 's', 'p', 'a', 'c', 'k', '.', 'p', 'a', 'c', 'k',
	}
	fileDomainKey = domainKey{
		'r', 'e', 's', 'p', 'a', 'c', 'k', '.', 'f', 'i', 'l', 'e',
	}
)

func newKeyed(k domainKey) *blake3.Hasher {
	h, err := blake3.NewKeyed(k[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return h
}

// File hashes the contents of one pack entry.
func File(data []byte) Hash {
	h := newKeyed(fileDomainKey)
	h.Write(data)
	var res Hash
	copy(res[:], h.Sum(nil))
	return res
}

// Writer passes bytes through to an optional underlying writer, hashing
// them on the way.
type Writer struct {
	out  io.Writer
	sha  hash.Hash
	b3   *blake3.Hasher
	size int64
}

// NewWriter returns a Writer forwarding to out, which may be nil.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out, sha: sha1.New(), b3: newKeyed(packDomainKey)}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.out != nil {
		n, err := w.out.Write(p)
		w.sum(p[:n])
		return n, err
	}
	w.sum(p)
	return len(p), nil
}

func (w *Writer) sum(p []byte) {
	w.sha.Write(p)
	w.b3.Write(p)
	w.size += int64(len(p))
}

// Size is the number of bytes written so far.
func (w *Writer) Size() int64 { return w.size }

// SHA1 is the hex SHA-1 of everything written so far.
func (w *Writer) SHA1() string {
	return hex.EncodeToString(w.sha.Sum(nil))
}

// BLAKE3 is the keyed BLAKE3 of everything written so far.
func (w *Writer) BLAKE3() Hash {
	var res Hash
	copy(res[:], w.b3.Sum(nil))
	return res
}

// Sum is the digests of a complete pack.
type Sum struct {
	Size   int64
	SHA1   string
	BLAKE3 Hash
}

func (w *Writer) Sum() Sum {
	return Sum{Size: w.size, SHA1: w.SHA1(), BLAKE3: w.BLAKE3()}
}

// Reader hashes everything read from r.
func Reader(r io.Reader) (Sum, error) {
	w := NewWriter(nil)
	if _, err := io.Copy(w, r); err != nil {
		return Sum{}, fmt.Errorf("hashing: %w", err)
	}
	return w.Sum(), nil
}
