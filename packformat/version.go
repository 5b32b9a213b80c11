package packformat

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a pack format version, major.minor. Versions are ordered by
// major first, then minor.
type Version struct {
	Major int
	Minor int
}

func V(major, minor int) Version {
	return Version{Major: major, Minor: minor}
}

func (v Version) Compare(o Version) int {
	switch {
	case v.Major < o.Major:
		return -1
	case v.Major > o.Major:
		return 1
	case v.Minor < o.Minor:
		return -1
	case v.Minor > o.Minor:
		return 1
	}
	return 0
}

func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func (v Version) String() string {
	if v.Minor == 0 {
		return strconv.Itoa(v.Major)
	}
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

func (v Version) valid() bool {
	return v.Major >= 0 && v.Minor >= 0
}

func Min(a, b Version) Version {
	if b.Less(a) {
		return b
	}
	return a
}

func Max(a, b Version) Version {
	if a.Less(b) {
		return b
	}
	return a
}

// ParseVersion parses "M" or "M.m".
func ParseVersion(s string) (Version, error) {
	maj, min, dotted := strings.Cut(s, ".")
	v := Version{}
	var err error
	if v.Major, err = strconv.Atoi(maj); err != nil {
		return Version{}, fmt.Errorf("%w: version %q", ErrBadFormat, s)
	}
	if dotted {
		if v.Minor, err = strconv.Atoi(min); err != nil {
			return Version{}, fmt.Errorf("%w: version %q", ErrBadFormat, s)
		}
	}
	if !v.valid() {
		return Version{}, fmt.Errorf("%w: negative version %q", ErrBadFormat, s)
	}
	return v, nil
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(d []byte) error {
	vv, err := ParseVersion(string(d))
	if err != nil {
		return err
	}
	*v = vv
	return nil
}
