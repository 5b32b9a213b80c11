package manifest

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is the tag byte leading an encoded manifest.
type Compression uint8

const (
	None Compression = 0
	LZ4  Compression = 1
	Zstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

var errIncompressible = errors.New("incompressible")

// MaxSize bounds the uncompressed length Decode accepts.
const MaxSize = 64 << 20

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		panic("manifest: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("manifest: zstd decoder initialization failed: " + err.Error())
	}
}

// Encode writes m as a tag byte, the uncompressed length as a uvarint, and
// the CBOR encoding of m compressed with c. Data that does not shrink is
// stored uncompressed.
func (m *Manifest) Encode(c Compression) ([]byte, error) {
	raw, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	var body []byte
	switch c {
	case None:
		body = raw
	case LZ4:
		body, err = compressLZ4(raw)
	case Zstd:
		body, err = compressZstd(raw)
	default:
		return nil, fmt.Errorf("unsupported compression: %d", c)
	}
	if errors.Is(err, errIncompressible) {
		c, body, err = None, raw, nil
	}
	if err != nil {
		return nil, err
	}
	res := []byte{byte(c)}
	res = binary.AppendUvarint(res, uint64(len(raw)))
	return append(res, body...), nil
}

// Decode reads a manifest written by Encode.
func Decode(d []byte) (*Manifest, error) {
	if len(d) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadManifest)
	}
	c := Compression(d[0])
	size, n := binary.Uvarint(d[1:])
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad length", ErrBadManifest)
	}
	if size > MaxSize {
		return nil, fmt.Errorf("%w: length %d exceeds %d", ErrBadManifest, size, MaxSize)
	}
	body := d[1+n:]
	var (
		raw []byte
		err error
	)
	switch c {
	case None:
		if uint64(len(body)) != size {
			return nil, fmt.Errorf("%w: size %d does not match expected %d", ErrBadManifest, len(body), size)
		}
		raw = body
	case LZ4:
		raw, err = decompressLZ4(body, int(size))
	case Zstd:
		raw, err = decompressZstd(body, int(size))
	default:
		return nil, fmt.Errorf("%w: compression %s", ErrBadManifest, c)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadManifest, err)
	}
	return Unmarshal(raw)
}

func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 || n >= len(data) {
		return nil, errIncompressible
	}
	return dst[:n], nil
}

func decompressLZ4(body []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(body, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", n, size)
	}
	return dst, nil
}

func compressZstd(data []byte) ([]byte, error) {
	res := zstdEncoder.EncodeAll(data, nil)
	if len(res) >= len(data) {
		return nil, errIncompressible
	}
	return res, nil
}

func decompressZstd(body []byte, size int) ([]byte, error) {
	res, err := zstdDecoder.DecodeAll(body, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(res) != size {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(res), size)
	}
	return res, nil
}
