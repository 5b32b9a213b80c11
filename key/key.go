// Package key implements namespaced resource identifiers of the form
// namespace:value.
//
// A key without an explicit namespace belongs to [DefaultNamespace]. Keys are
// comparable values and may be used directly as map keys.
package key

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultNamespace = "minecraft"
	Separator        = ':'
)

var ErrInvalid = errors.New("invalid key")

type Key struct {
	Namespace string
	Value     string
}

// New creates a key, validating both parts.
func New(namespace, value string) (Key, error) {
	if !ValidNamespace(namespace) {
		return Key{}, fmt.Errorf("%w: namespace %q", ErrInvalid, namespace)
	}
	if !ValidValue(value) {
		return Key{}, fmt.Errorf("%w: value %q", ErrInvalid, value)
	}
	return Key{Namespace: namespace, Value: value}, nil
}

// Parse parses "namespace:value" or "value".
func Parse(s string) (Key, error) {
	i := strings.IndexByte(s, Separator)
	if i == -1 {
		return New(DefaultNamespace, s)
	}
	return New(s[:i], s[i+1:])
}

func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Of is like Parse with a namespace fallback other than the default one.
func Of(namespace, s string) (Key, error) {
	if strings.IndexByte(s, Separator) != -1 {
		return Parse(s)
	}
	return New(namespace, s)
}

func (k Key) String() string {
	return k.Namespace + string(Separator) + k.Value
}

// Compact omits the namespace when it equals ns.
func (k Key) Compact(ns string) string {
	if k.Namespace == ns {
		return k.Value
	}
	return k.String()
}

func (k Key) IsZero() bool {
	return k.Namespace == "" && k.Value == ""
}

func Compare(a, b Key) int {
	if c := strings.Compare(a.Namespace, b.Namespace); c != 0 {
		return c
	}
	return strings.Compare(a.Value, b.Value)
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(d []byte) error {
	kk, err := Parse(string(d))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

func ValidNamespace(ns string) bool {
	if ns == "" {
		return false
	}
	for i := 0; i < len(ns); i++ {
		if !namespaceChar(ns[i]) {
			return false
		}
	}
	return true
}

func ValidValue(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if c := v[i]; !namespaceChar(c) && c != '/' {
			return false
		}
	}
	return true
}

func namespaceChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '.':
		return true
	}
	return false
}
