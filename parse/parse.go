// Package parse reads JSON documents into ir.Node trees, preserving object
// field order.
package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/respack/ir"
	"github.com/tidwall/jsonc"
)

type parseOpts struct {
	lenient bool
}

type ParseOption func(*parseOpts)

// Lenient accepts comments and trailing commas, as found in hand edited
// pack files.
func Lenient(v bool) ParseOption {
	return func(o *parseOpts) { o.lenient = v }
}

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if o.lenient {
		d = jsonc.ToJSON(d)
	}
	p := &parser{doc: d, dec: json.NewDecoder(bytes.NewReader(d))}
	p.dec.UseNumber()
	node, err := p.value()
	if err != nil {
		return nil, p.wrap(err)
	}
	if _, err := p.dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data")
		}
		return nil, p.wrap(err)
	}
	return node, nil
}

func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

type parser struct {
	doc []byte
	dec *json.Decoder
}

func (p *parser) wrap(err error) error {
	var se *json.SyntaxError
	off := p.dec.InputOffset()
	if errors.As(err, &se) {
		off = se.Offset
	}
	line, col := newPosDoc(p.doc).LineCol(int(off))
	return fmt.Errorf("%w: %d:%d: %w", ErrParse, line+1, col+1, err)
}

func (p *parser) value() (*ir.Node, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return p.fromToken(tok)
}

func (p *parser) fromToken(tok json.Token) (*ir.Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return p.object()
		case '[':
			return p.array()
		}
		return nil, fmt.Errorf("unexpected %q", v)
	case string:
		return ir.FromString(v), nil
	case json.Number:
		return ir.FromNumber(v.String())
	case bool:
		return ir.FromBool(v), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("%w: unexpected token %v", errInternal, tok)
}

func (p *parser) object() (*ir.Node, error) {
	var kvs []ir.KeyVal
	index := map[string]int{}
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		k, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key %v", errInternal, tok)
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		// later duplicates win, at the position of the first
		if i, dup := index[k]; dup {
			kvs[i].Val = v
			continue
		}
		index[k] = len(kvs)
		kvs = append(kvs, ir.KeyVal{Key: k, Val: v})
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}
	return ir.FromKeyVals(kvs), nil
}

func (p *parser) array() (*ir.Node, error) {
	vals := []*ir.Node{}
	for p.dec.More() {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}
	return ir.FromSlice(vals), nil
}
