package sound

import (
	"bytes"
	"errors"
	"testing"

	"github.com/signadot/respack/key"
	"github.com/signadot/respack/parse"
	"github.com/signadot/respack/stream"
)

func TestIsOgg(t *testing.T) {
	if !New(key.MustParse("a"), []byte("OggS\x00\x02")).IsOgg() {
		t.Errorf("ogg not detected")
	}
	if New(key.MustParse("a"), []byte("RIFF")).IsOgg() {
		t.Errorf("wav detected as ogg")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	doc := `{"entity.ruby.break":{"replace":true,"subtitle":"subtitles.ruby","sounds":["custom:ruby/break1",{"name":"custom:ruby/break2","volume":0.5,"weight":3,"stream":true}]},"ambient.cave":{"sounds":[{"name":"ambient.generic","type":"event"}]}}`
	node, err := parse.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	r, err := DecodeRegistry(node, "custom")
	if err != nil {
		t.Fatal(err)
	}
	if r.Path() != "assets/custom/sounds.json" {
		t.Errorf("path %s", r.Path())
	}
	buf := &bytes.Buffer{}
	if err := r.MarshalStream(stream.NewWriter(buf)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != doc {
		t.Errorf("got %s\nexp %s", got, doc)
	}
}

func TestRegistryDefaults(t *testing.T) {
	node, err := parse.Parse([]byte(`{"a":{"replace":false,"subtitle":null,"sounds":[{"name":"x","volume":1,"pitch":1.0,"weight":1,"attenuation_distance":16,"type":"file"}]}}`))
	if err != nil {
		t.Fatal(err)
	}
	r, err := DecodeRegistry(node, "minecraft")
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := r.MarshalStream(stream.NewWriter(buf)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != `{"a":{"sounds":["x"]}}` {
		t.Errorf("got %s", got)
	}
}

func TestRegistryErrors(t *testing.T) {
	for _, doc := range []string{
		`[]`,
		`{"a":[]}`,
		`{"a":{"sounds":{}}}`,
		`{"a":{"sounds":[1]}}`,
		`{"a":{"sounds":[{"name":"x","type":"stream"}]}}`,
		`{"a":{"sounds":[{"volume":1}]}}`,
	} {
		node, err := parse.Parse([]byte(doc))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := DecodeRegistry(node, "minecraft"); !errors.Is(err, ErrBadRegistry) {
			t.Errorf("%s: %v", doc, err)
		}
	}
}
