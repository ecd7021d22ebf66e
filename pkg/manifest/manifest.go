// Package manifest reads the catalog-wide documents that list skills
// outside of the skill directories themselves: the bundle definitions,
// the install configuration, the wizard defaults and the discovery
// skill's agent table. The validator compares them against each other to
// detect drift.
package manifest

import (
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnparsable is returned when a source exists but the mandatory list
// cannot be extracted from it.
var ErrUnparsable = errors.New("unable to parse manifest")

// MandatorySource is anything that declares the set of skills every
// installation must include.
type MandatorySource interface {
	// Label names the source in drift messages, usually its path
	// relative to the catalog root.
	Label() string
	// Mandatory returns the declared mandatory skill names.
	Mandatory() ([]string, error)
}

// SkillName reduces a path-like skill reference such as "core/git" to its
// last segment.
func SkillName(ref string) string {
	ref = strings.TrimRight(strings.TrimSpace(ref), "/")
	if ref == "" {
		return ""
	}
	return path.Base(ref)
}

// Sorted returns a sorted copy of names.
func Sorted(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}

// SameSet reports whether a and b hold the same names in the same
// multiplicity, ignoring order.
func SameSet(a, b []string) bool {
	return strings.Join(Sorted(a), "|") == strings.Join(Sorted(b), "|")
}

// Missing returns the names of want that do not appear in have, in the
// order of want.
func Missing(want, have []string) []string {
	present := make(map[string]struct{}, len(have))
	for _, h := range have {
		present[h] = struct{}{}
	}
	var missing []string
	for _, w := range want {
		if _, ok := present[w]; !ok {
			missing = append(missing, w)
		}
	}
	return missing
}
