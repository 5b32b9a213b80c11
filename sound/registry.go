package sound

import (
	"errors"
	"fmt"

	"github.com/signadot/respack/ir"
	"github.com/signadot/respack/key"
	"github.com/signadot/respack/stream"
)

var ErrBadRegistry = errors.New("bad sound registry")

// RegistryFile is the name of the sound registry in a namespace directory.
const RegistryFile = "sounds.json"

const (
	defaultVolume              = 1.0
	defaultPitch               = 1.0
	defaultWeight              = 1
	defaultAttenuationDistance = 16
)

// EntryType tells whether an entry names a sound file or another event.
type EntryType string

const (
	TypeFile  EntryType = "file"
	TypeEvent EntryType = "event"
)

// Entry is one sound an event may play. Zero numeric fields and an empty
// Type take the game's defaults.
type Entry struct {
	Name                key.Key
	Volume              float64
	Pitch               float64
	Weight              int
	Stream              bool
	AttenuationDistance int
	Preload             bool
	Type                EntryType
}

func (e *Entry) allDefault() bool {
	return e.Volume == 0 && e.Pitch == 0 && e.Weight == 0 && !e.Stream &&
		e.AttenuationDistance == 0 && !e.Preload && e.Type == ""
}

func (e *Entry) encode(w *stream.Writer) {
	if e.allDefault() {
		w.Value(e.Name)
		return
	}
	w.StartObject().KeyValue("name", e.Name)
	if e.Volume != 0 {
		w.KeyValue("volume", e.Volume)
	}
	if e.Pitch != 0 {
		w.KeyValue("pitch", e.Pitch)
	}
	if e.Weight != 0 {
		w.KeyValue("weight", e.Weight)
	}
	if e.Stream {
		w.KeyValue("stream", true)
	}
	if e.AttenuationDistance != 0 {
		w.KeyValue("attenuation_distance", e.AttenuationDistance)
	}
	if e.Preload {
		w.KeyValue("preload", true)
	}
	if e.Type != "" {
		w.KeyValue("type", string(e.Type))
	}
	w.EndObject()
}

// Event is a sound event of a registry.
type Event struct {
	Name     string
	Replace  bool
	Subtitle string
	Sounds   []Entry
}

// Registry is the sounds.json of one namespace. Events keep their order.
type Registry struct {
	Namespace string
	Events    []Event
}

// Path is the location of r in a pack.
func (r *Registry) Path() string {
	return "assets/" + r.Namespace + "/" + RegistryFile
}

func (r *Registry) MarshalStream(w *stream.Writer) error {
	w.StartObject()
	for _, ev := range r.Events {
		w.Key(ev.Name).StartObject()
		if ev.Replace {
			w.KeyValue("replace", true)
		}
		if ev.Subtitle != "" {
			w.KeyValue("subtitle", ev.Subtitle)
		}
		if len(ev.Sounds) != 0 {
			w.Key("sounds").StartArray()
			for i := range ev.Sounds {
				ev.Sounds[i].encode(w)
			}
			w.EndArray()
		}
		w.EndObject()
	}
	w.EndObject()
	return w.Err()
}

// DecodeRegistry reads the sounds.json of namespace ns. Values equal to
// the defaults are normalized to zero.
func DecodeRegistry(node *ir.Node, ns string) (*Registry, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s: expected object, got %s", ErrBadRegistry, node.Path(), node.Type)
	}
	r := &Registry{Namespace: ns}
	for i, f := range node.Fields {
		ev, err := decodeEvent(f.String, node.Values[i])
		if err != nil {
			return nil, err
		}
		r.Events = append(r.Events, ev)
	}
	return r, nil
}

func decodeEvent(name string, node *ir.Node) (Event, error) {
	ev := Event{Name: name}
	if node.Type != ir.ObjectType {
		return ev, fmt.Errorf("%w: %s: expected object, got %s", ErrBadRegistry, node.Path(), node.Type)
	}
	var err error
	if n := ir.Get(node, "replace"); n != nil {
		if ev.Replace, err = n.AsBool(); err != nil {
			return ev, fmt.Errorf("%w: %w", ErrBadRegistry, err)
		}
	}
	if n := ir.Get(node, "subtitle"); n != nil && n.Type != ir.NullType {
		if ev.Subtitle, err = n.AsString(); err != nil {
			return ev, fmt.Errorf("%w: %w", ErrBadRegistry, err)
		}
	}
	sounds := ir.Get(node, "sounds")
	if sounds == nil {
		return ev, nil
	}
	if sounds.Type != ir.ArrayType {
		return ev, fmt.Errorf("%w: %s: expected array, got %s", ErrBadRegistry, sounds.Path(), sounds.Type)
	}
	for _, sn := range sounds.Values {
		e, err := decodeEntry(sn)
		if err != nil {
			return ev, fmt.Errorf("%w: %w", ErrBadRegistry, err)
		}
		ev.Sounds = append(ev.Sounds, e)
	}
	return ev, nil
}

func decodeEntry(node *ir.Node) (Entry, error) {
	var e Entry
	if node.Type == ir.StringType {
		k, err := key.Parse(node.String)
		e.Name = k
		return e, err
	}
	if node.Type != ir.ObjectType {
		return e, fmt.Errorf("%s: expected string or object, got %s", node.Path(), node.Type)
	}
	name, err := ir.Get(node, "name").AsString()
	if err != nil {
		return e, err
	}
	if e.Name, err = key.Parse(name); err != nil {
		return e, err
	}
	for i, f := range node.Fields {
		v := node.Values[i]
		switch f.String {
		case "volume":
			e.Volume, err = v.AsFloat()
			if e.Volume == defaultVolume {
				e.Volume = 0
			}
		case "pitch":
			e.Pitch, err = v.AsFloat()
			if e.Pitch == defaultPitch {
				e.Pitch = 0
			}
		case "weight":
			var n int64
			n, err = v.AsInt()
			if e.Weight = int(n); e.Weight == defaultWeight {
				e.Weight = 0
			}
		case "stream":
			e.Stream, err = v.AsBool()
		case "attenuation_distance":
			var n int64
			n, err = v.AsInt()
			if e.AttenuationDistance = int(n); e.AttenuationDistance == defaultAttenuationDistance {
				e.AttenuationDistance = 0
			}
		case "preload":
			e.Preload, err = v.AsBool()
		case "type":
			var s string
			s, err = v.AsString()
			switch EntryType(s) {
			case TypeFile:
			case TypeEvent:
				e.Type = TypeEvent
			default:
				if err == nil {
					err = fmt.Errorf("%s: unknown type %q", v.Path(), s)
				}
			}
		}
		if err != nil {
			return e, err
		}
	}
	return e, nil
}
