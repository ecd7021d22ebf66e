package markdown

import "strings"

var externalPrefixes = []string{"http://", "https://", "mailto:", "tel:", "#"}

// IsExternal reports whether a link target points outside the repository
// or only within the current document.
func IsExternal(target string) bool {
	lower := strings.ToLower(target)
	for _, p := range externalPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// NormalizeTarget reduces a raw link destination to a file path: angle
// brackets are removed, anything after the first space is dropped, and so
// are the fragment and query parts.
func NormalizeTarget(raw string) string {
	link := strings.TrimSpace(raw)
	if len(link) >= 2 && strings.HasPrefix(link, "<") && strings.HasSuffix(link, ">") {
		link = link[1 : len(link)-1]
	}
	if i := strings.IndexByte(link, ' '); i >= 0 {
		link = link[:i]
	}
	if i := strings.IndexByte(link, '#'); i >= 0 {
		link = link[:i]
	}
	if i := strings.IndexByte(link, '?'); i >= 0 {
		link = link[:i]
	}
	return strings.TrimSpace(link)
}

// LocalTargets returns the links of src that point at local files, as
// pairs of the raw destination and its normalized path. External links
// and links that normalize to nothing are left out.
func LocalTargets(src []byte) []Target {
	var targets []Target
	for _, raw := range Links(src) {
		path := NormalizeTarget(raw)
		if path == "" || IsExternal(path) {
			continue
		}
		targets = append(targets, Target{Raw: raw, Path: path})
	}
	return targets
}

// Target is a local link destination.
type Target struct {
	Raw  string
	Path string
}
