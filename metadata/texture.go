package metadata

import (
	"fmt"
	"strings"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/stream"
)

const (
	sectionAnimation = "animation"
	sectionTexture   = "texture"
	sectionVillager  = "villager"
)

// DefaultFrameTime is the number of ticks a frame lasts unless set.
const DefaultFrameTime = 1

// Frame is an animation frame. A zero Time uses the animation's frame time.
type Frame struct {
	Index int
	Time  int
}

// Animation is the "animation" section of a texture sidecar. Zero Width,
// Height and FrameTime mean unset.
type Animation struct {
	Interpolate bool
	Width       int
	Height      int
	FrameTime   int
	Frames      []Frame
}

func (a *Animation) Section() string { return sectionAnimation }

func (a *Animation) frameTime() int {
	if a.FrameTime <= 0 {
		return DefaultFrameTime
	}
	return a.FrameTime
}

func (a *Animation) MarshalStream(w *stream.Writer) error {
	w.StartObject()
	if a.Interpolate {
		w.KeyValue("interpolate", true)
	}
	if a.Width > 0 {
		w.KeyValue("width", a.Width)
	}
	if a.Height > 0 {
		w.KeyValue("height", a.Height)
	}
	ft := a.frameTime()
	if ft != DefaultFrameTime {
		w.KeyValue("frametime", ft)
	}
	if len(a.Frames) != 0 {
		w.Key("frames").StartArray()
		for _, f := range a.Frames {
			if f.Time <= 0 || f.Time == ft {
				w.Int(int64(f.Index))
				continue
			}
			w.StartObject().KeyValue("index", f.Index).KeyValue("time", f.Time).EndObject()
		}
		w.EndArray()
	}
	w.EndObject()
	return w.Err()
}

func decodeAnimation(node *ir.Node, o *decodeOpts) (Part, error) {
	a := &Animation{}
	var err error
	if a.Interpolate, err = optBool(node, "interpolate", false); err != nil {
		return nil, err
	}
	if a.Width, err = optInt(node, "width", 0); err != nil {
		return nil, err
	}
	if a.Height, err = optInt(node, "height", 0); err != nil {
		return nil, err
	}
	if a.FrameTime, err = optInt(node, "frametime", 0); err != nil {
		return nil, err
	}
	if a.FrameTime == DefaultFrameTime {
		a.FrameTime = 0
	}
	frames := ir.Get(node, "frames")
	if frames == nil {
		return a, nil
	}
	if frames.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: %s: expected array, got %s", ErrBadMetadata, frames.Path(), frames.Type)
	}
	for _, f := range frames.Values {
		var fr Frame
		switch f.Type {
		case ir.ObjectType:
			idx := ir.Get(f, "index")
			if idx == nil {
				return nil, fmt.Errorf("%w: %s: missing index", ErrBadMetadata, f.Path())
			}
			i, err := idx.AsInt()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrBadMetadata, err)
			}
			fr.Index = int(i)
			if fr.Time, err = optInt(f, "time", 0); err != nil {
				return nil, err
			}
		default:
			i, err := f.AsInt()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrBadMetadata, err)
			}
			fr.Index = int(i)
		}
		a.Frames = append(a.Frames, fr)
	}
	return a, nil
}

// Texture is the "texture" section of a texture sidecar.
type Texture struct {
	Blur  bool
	Clamp bool
}

func (t *Texture) Section() string { return sectionTexture }

func (t *Texture) MarshalStream(w *stream.Writer) error {
	w.StartObject()
	if t.Blur {
		w.KeyValue("blur", true)
	}
	if t.Clamp {
		w.KeyValue("clamp", true)
	}
	w.EndObject()
	return w.Err()
}

func decodeTexture(node *ir.Node, o *decodeOpts) (Part, error) {
	t := &Texture{}
	var err error
	if t.Blur, err = optBool(node, "blur", false); err != nil {
		return nil, err
	}
	if t.Clamp, err = optBool(node, "clamp", false); err != nil {
		return nil, err
	}
	return t, nil
}

// Hat is how a villager profession texture covers the villager's hat.
type Hat int

const (
	HatNone Hat = iota
	HatPartial
	HatFull
)

var hatNames = []string{"none", "partial", "full"}

func (h Hat) String() string {
	if h < 0 || int(h) >= len(hatNames) {
		return fmt.Sprintf("Hat(%d)", int(h))
	}
	return hatNames[h]
}

func ParseHat(s string) (Hat, error) {
	for i, n := range hatNames {
		if strings.EqualFold(n, s) {
			return Hat(i), nil
		}
	}
	return HatNone, fmt.Errorf("%w: unknown hat %q", ErrBadMetadata, s)
}

// Villager is the "villager" section of villager texture sidecars.
type Villager struct {
	Hat Hat
}

func (v *Villager) Section() string { return sectionVillager }

func (v *Villager) MarshalStream(w *stream.Writer) error {
	w.StartObject()
	if v.Hat != HatNone {
		w.KeyValue("hat", v.Hat.String())
	}
	w.EndObject()
	return w.Err()
}

func decodeVillager(node *ir.Node, o *decodeOpts) (Part, error) {
	s, err := optString(node, "hat")
	if err != nil {
		return nil, err
	}
	if s == "" {
		return &Villager{}, nil
	}
	h, err := ParseHat(s)
	if err != nil {
		return nil, err
	}
	return &Villager{Hat: h}, nil
}
