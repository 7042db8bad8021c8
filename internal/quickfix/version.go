package quickfix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guttosm/fixdict/internal/dict"
)

// Version identifies a protocol revision, e.g. FIX.4.4 or FIX.5.0-SP2.
type Version struct {
	Type        string
	Major       int
	Minor       int
	ServicePack int
}

// String renders "{type}.{major}.{minor}", adding "-SP{n}" only for a
// non-zero service pack.
func (v Version) String() string {
	s := fmt.Sprintf("%s.%d.%d", v.Type, v.Major, v.Minor)
	if v.ServicePack != 0 {
		s += fmt.Sprintf("-SP%d", v.ServicePack)
	}
	return s
}

// ParseVersion is the inverse of Version.String.
func ParseVersion(s string) (Version, error) {
	base, sp, hasSP := strings.Cut(s, "-SP")
	parts := strings.Split(base, ".")
	if len(parts) != 3 || parts[0] == "" {
		return Version{}, fmt.Errorf("%w: version %q", dict.ErrMalformedInput, s)
	}

	var v Version
	var err error
	v.Type = parts[0]
	if v.Major, err = strconv.Atoi(parts[1]); err != nil {
		return Version{}, fmt.Errorf("%w: version %q", dict.ErrMalformedInput, s)
	}
	if v.Minor, err = strconv.Atoi(parts[2]); err != nil {
		return Version{}, fmt.Errorf("%w: version %q", dict.ErrMalformedInput, s)
	}
	if hasSP {
		if v.ServicePack, err = strconv.Atoi(sp); err != nil {
			return Version{}, fmt.Errorf("%w: version %q", dict.ErrMalformedInput, s)
		}
	}
	return v, nil
}
