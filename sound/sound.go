// Package sound implements sound files, assets/<ns>/sounds/<path>.ogg.
package sound

import (
	"bytes"

	"github.com/signadot/respack/key"
)

var oggMagic = []byte("OggS")

// Sound is the Ogg Vorbis data of a sound file.
type Sound struct {
	Key  key.Key
	Data []byte
}

func New(k key.Key, data []byte) *Sound {
	return &Sound{Key: k, Data: data}
}

// IsOgg reports whether the data starts with an Ogg page header.
func (s *Sound) IsOgg() bool {
	return bytes.HasPrefix(s.Data, oggMagic)
}
