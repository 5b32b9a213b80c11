// Package packformat implements pack format versions and the validated
// ranges of them that packs and overlays declare support for.
package packformat

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange = errors.New("invalid pack format range")
	ErrBadFormat    = errors.New("bad pack format")
)

// Range is an inclusive range of versions with a canonical version inside
// it. The canonical version is what consumers that predate ranges see.
//
// The zero Range is the single version 0.
type Range struct {
	canonical Version
	min       Version
	max       Version
}

// New validates min <= canonical <= max.
func New(canonical, min, max Version) (Range, error) {
	if !canonical.valid() || !min.valid() || !max.valid() {
		return Range{}, fmt.Errorf("%w: negative version in (%s, %s, %s)", ErrInvalidRange, canonical, min, max)
	}
	if max.Less(min) {
		return Range{}, fmt.Errorf("%w: min %s > max %s", ErrInvalidRange, min, max)
	}
	if canonical.Less(min) || max.Less(canonical) {
		return Range{}, fmt.Errorf("%w: %s is not in [%s, %s]", ErrInvalidRange, canonical, min, max)
	}
	return Range{canonical: canonical, min: min, max: max}, nil
}

func MustNew(canonical, min, max Version) Range {
	r, err := New(canonical, min, max)
	if err != nil {
		panic(err)
	}
	return r
}

// Single is the range holding only v.
func Single(v Version) Range {
	return Range{canonical: v, min: v, max: v}
}

// Of is Single(V(major, 0)).
func Of(major int) Range {
	return Single(V(major, 0))
}

// Span is the range [min, max] with canonical min.
func Span(min, max Version) (Range, error) {
	return New(min, min, max)
}

// Coerce builds a range from possibly inconsistent bounds: min and max are
// swapped if inverted and canonical is clamped into the range. It is the
// recovery policy used when reading malformed input leniently.
func Coerce(canonical, min, max Version) Range {
	if max.Less(min) {
		min, max = max, min
	}
	canonical = Max(min, Min(canonical, max))
	return Range{canonical: canonical, min: min, max: max}
}

func (r Range) Canonical() Version { return r.canonical }
func (r Range) Min() Version       { return r.min }
func (r Range) Max() Version       { return r.max }

func (r Range) IsSingle() bool {
	return r.canonical == r.min && r.min == r.max
}

// Contains reports whether min <= v <= max.
func (r Range) Contains(v Version) bool {
	return !v.Less(r.min) && !r.max.Less(v)
}

// Union combines two ranges. Two single ranges give the single range at
// the lower canonical version. Otherwise the result spans both and its
// canonical version is the lower bound of the span, so Union(Of(7), (7, 5,
// 9)) is (5, 5, 9). The ranges are assumed to be compatible.
func Union(a, b Range) Range {
	if a.IsSingle() && b.IsSingle() {
		return Single(Min(a.canonical, b.canonical))
	}
	min := Min(a.min, b.min)
	return Range{
		canonical: min,
		min:       min,
		max:       Max(a.max, b.max),
	}
}

func (r Range) String() string {
	if r.IsSingle() {
		return r.canonical.String()
	}
	return fmt.Sprintf("%s [%s, %s]", r.canonical, r.min, r.max)
}
