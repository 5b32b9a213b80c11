package packformat

import (
	"fmt"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/stream"
)

// Versions above this major, or with a minor component, can only be
// expressed with min_format and max_format.
const legacyMaxMajor = 64

const (
	fieldPackFormat       = "pack_format"
	fieldSupportedFormats = "supported_formats"
	fieldMinFormat        = "min_format"
	fieldMaxFormat        = "max_format"
	fieldMinInclusive     = "min_inclusive"
	fieldMaxInclusive     = "max_inclusive"
)

type decodeOpts struct {
	coerce bool
}

type DecodeOption func(*decodeOpts)

// WithCoerce repairs inconsistent ranges with Coerce instead of failing.
func WithCoerce() DecodeOption {
	return func(o *decodeOpts) { o.coerce = true }
}

// EncodeVersion writes v as a number, or as [major, minor] when the minor
// component is set.
func EncodeVersion(w *stream.Writer, v Version) {
	if v.Minor == 0 {
		w.Int(int64(v.Major))
		return
	}
	w.StartArray().Int(int64(v.Major)).Int(int64(v.Minor)).EndArray()
}

func DecodeVersion(node *ir.Node) (Version, error) {
	switch node.Type {
	case ir.NumberType:
		n, err := node.AsInt()
		if err != nil {
			return Version{}, fmt.Errorf("%w: %w", ErrBadFormat, err)
		}
		return checkVersion(node, V(int(n), 0))
	case ir.ArrayType:
		if len(node.Values) == 0 || len(node.Values) > 2 {
			return Version{}, fmt.Errorf("%w: %s: expected [major] or [major, minor]", ErrBadFormat, node.Path())
		}
		maj, err := node.Values[0].AsInt()
		if err != nil {
			return Version{}, fmt.Errorf("%w: %w", ErrBadFormat, err)
		}
		var min int64
		if len(node.Values) == 2 {
			if min, err = node.Values[1].AsInt(); err != nil {
				return Version{}, fmt.Errorf("%w: %w", ErrBadFormat, err)
			}
		}
		return checkVersion(node, V(int(maj), int(min)))
	case ir.StringType:
		return ParseVersion(node.String)
	}
	return Version{}, fmt.Errorf("%w: %s: unexpected %s", ErrBadFormat, node.Path(), node.Type)
}

func checkVersion(node *ir.Node, v Version) (Version, error) {
	if !v.valid() {
		return Version{}, fmt.Errorf("%w: %s: negative version %s", ErrBadFormat, node.Path(), v)
	}
	return v, nil
}

// NeedsMinMax reports whether a bound of r cannot be written as a legacy
// format number and so requires min_format and max_format.
func NeedsMinMax(r Range) bool {
	for _, v := range []Version{r.min, r.max} {
		if v.Minor != 0 || v.Major > legacyMaxMajor {
			return true
		}
	}
	return false
}

// EncodeFields writes the fields describing r into the enclosing object:
// pack_format always, supported_formats when r is not single, and
// min_format/max_format when a bound cannot be expressed as a legacy format
// number.
func EncodeFields(w *stream.Writer, r Range) {
	w.Key(fieldPackFormat)
	EncodeVersion(w, r.canonical)
	if !r.IsSingle() && r.min.Minor == 0 && r.max.Minor == 0 {
		w.Key(fieldSupportedFormats).
			StartArray().Int(int64(r.min.Major)).Int(int64(r.max.Major)).EndArray()
	}
	if NeedsMinMax(r) {
		w.Key(fieldMinFormat)
		EncodeVersion(w, r.min)
		w.Key(fieldMaxFormat)
		EncodeVersion(w, r.max)
	}
}

// DecodeFields reads a range from the fields of an object written by
// EncodeFields or by other producers. min_format/max_format take precedence
// over supported_formats.
func DecodeFields(node *ir.Node, opts ...DecodeOption) (Range, error) {
	o := &decodeOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if node.Type != ir.ObjectType {
		return Range{}, fmt.Errorf("%w: %s: expected object, got %s", ErrBadFormat, node.Path(), node.Type)
	}
	var (
		canonical, min, max Version
		err                 error
		pf                  = ir.Get(node, fieldPackFormat)
		minF                = ir.Get(node, fieldMinFormat)
		maxF                = ir.Get(node, fieldMaxFormat)
		supported           = ir.Get(node, fieldSupportedFormats)
	)
	switch {
	case pf != nil:
		if canonical, err = DecodeVersion(pf); err != nil {
			return Range{}, err
		}
	case minF != nil:
		if canonical, err = DecodeVersion(minF); err != nil {
			return Range{}, err
		}
	default:
		return Range{}, fmt.Errorf("%w: %s: missing %s", ErrBadFormat, node.Path(), fieldPackFormat)
	}
	min, max = canonical, canonical
	switch {
	case minF != nil || maxF != nil:
		if minF != nil {
			if min, err = DecodeVersion(minF); err != nil {
				return Range{}, err
			}
		}
		if maxF != nil {
			if max, err = DecodeVersion(maxF); err != nil {
				return Range{}, err
			}
		}
	case supported != nil:
		if min, max, err = DecodeSupported(supported); err != nil {
			return Range{}, err
		}
	}
	if o.coerce {
		return Coerce(canonical, min, max), nil
	}
	return New(canonical, min, max)
}

// EncodeSupported writes the short form used by overlay entries: a number
// when single, [min, max] otherwise. Minor components are not representable.
func EncodeSupported(w *stream.Writer, r Range) {
	if r.min == r.max {
		w.Int(int64(r.min.Major))
		return
	}
	w.StartArray().Int(int64(r.min.Major)).Int(int64(r.max.Major)).EndArray()
}

// DecodeSupported accepts n, [min, max] and
// {"min_inclusive": min, "max_inclusive": max}.
func DecodeSupported(node *ir.Node) (min, max Version, err error) {
	var lo, hi *ir.Node
	switch node.Type {
	case ir.NumberType:
		lo, hi = node, node
	case ir.ArrayType:
		if len(node.Values) != 2 {
			return min, max, fmt.Errorf("%w: %s: expected [min, max]", ErrBadFormat, node.Path())
		}
		lo, hi = node.Values[0], node.Values[1]
	case ir.ObjectType:
		lo, hi = ir.Get(node, fieldMinInclusive), ir.Get(node, fieldMaxInclusive)
		if lo == nil || hi == nil {
			return min, max, fmt.Errorf("%w: %s: expected %s and %s", ErrBadFormat, node.Path(), fieldMinInclusive, fieldMaxInclusive)
		}
	default:
		return min, max, fmt.Errorf("%w: %s: unsupported %s", ErrBadFormat, node.Path(), node.Type)
	}
	loI, err := lo.AsInt()
	if err != nil {
		return min, max, fmt.Errorf("%w: %w", ErrBadFormat, err)
	}
	hiI, err := hi.AsInt()
	if err != nil {
		return min, max, fmt.Errorf("%w: %w", ErrBadFormat, err)
	}
	return V(int(loI), 0), V(int(hiI), 0), nil
}
