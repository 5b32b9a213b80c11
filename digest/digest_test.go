package digest

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	if _, err := w.Write([]byte("hello ")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello world" {
		t.Errorf("passthrough got %q", buf.String())
	}
	// sha1("hello world")
	if got, want := w.SHA1(), "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"; got != want {
		t.Errorf("sha1 got %s want %s", got, want)
	}
	sum, err := Reader(strings.NewReader("hello world"))
	if err != nil {
		t.Fatal(err)
	}
	if sum != w.Sum() {
		t.Errorf("reader sum %+v differs from writer sum %+v", sum, w.Sum())
	}
	if sum.Size != 11 {
		t.Errorf("size %d", sum.Size)
	}
}

func TestDomains(t *testing.T) {
	w := NewWriter(nil)
	w.Write([]byte("x"))
	if w.BLAKE3() == File([]byte("x")) {
		t.Errorf("pack and file hashes share a domain")
	}
	if File([]byte("x")) != File([]byte("x")) {
		t.Errorf("file hash not stable")
	}
}

func TestParseHash(t *testing.T) {
	h := File([]byte("abc"))
	got, err := ParseHash(h.String())
	if err != nil {
		t.Fatal(err)
	}
	if got != h {
		t.Errorf("got %s want %s", got, h)
	}
	if _, err := ParseHash("abcd"); err == nil {
		t.Errorf("short hash accepted")
	}
	if _, err := ParseHash("zz"); err == nil {
		t.Errorf("non-hex accepted")
	}
}
