package paths

import (
	"path/filepath"
	"strings"
)

// RelativePath is a normalized path relative to either the dotfiles root or
// the home directory. It is the identity of a mapping and the key that joins
// the two trees.
//
// The zero value is the root itself. Construct values with Normalize so that
// equality is plain string equality on the component sequence.
type RelativePath string

const sep = string(filepath.Separator)

// Normalize strips leading "./" markers, duplicate separators, "." segments and
// trailing separators. It never resolves ".." nor symlinks. A leading separator
// is preserved so absolute input can be detected with IsAbs.
func Normalize(p string) RelativePath {
	abs := strings.HasPrefix(p, sep)
	parts := strings.Split(p, sep)
	kept := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		kept = append(kept, part)
	}
	joined := strings.Join(kept, sep)
	if abs {
		joined = sep + joined
	}
	return RelativePath(joined)
}

// String returns the path using the host separator.
func (p RelativePath) String() string {
	return string(p)
}

// IsAbs reports whether the path carries an absolute prefix, which is never a
// valid mapping.
func (p RelativePath) IsAbs() bool {
	return filepath.IsAbs(string(p))
}

// IsEmpty reports whether p designates the root itself.
func (p RelativePath) IsEmpty() bool {
	return p == ""
}

// Components returns the path split into its components.
func (p RelativePath) Components() []string {
	if p == "" {
		return nil
	}
	s := string(p)
	if strings.HasPrefix(s, sep) {
		return append([]string{sep}, strings.Split(strings.TrimPrefix(s, sep), sep)...)
	}
	return strings.Split(s, sep)
}

// Join returns the absolute location of p under root.
func (p RelativePath) Join(root string) string {
	return filepath.Join(root, string(p))
}

// Child returns p extended by one component.
func (p RelativePath) Child(name string) RelativePath {
	if p == "" {
		return Normalize(name)
	}
	return Normalize(string(p) + sep + name)
}

// IsPrefixOf reports whether b's components start with all of p's components.
// A path is a prefix of itself.
func (p RelativePath) IsPrefixOf(b RelativePath) bool {
	pc, bc := p.Components(), b.Components()
	if len(pc) > len(bc) {
		return false
	}
	for i := range pc {
		if pc[i] != bc[i] {
			return false
		}
	}
	return true
}

// Compare orders paths component by component, so a parent always sorts
// directly before its own descendants ("a" < "a/b" < "a-c").
func Compare(a, b RelativePath) int {
	ac, bc := a.Components(), b.Components()
	for i := 0; i < len(ac) && i < len(bc); i++ {
		if c := strings.Compare(ac[i], bc[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ac) < len(bc):
		return -1
	case len(ac) > len(bc):
		return 1
	}
	return 0
}

// Within returns the path of abs relative to root when abs lies strictly
// below root. Both arguments must be absolute; containment is decided on
// cleaned components, not raw string prefixes.
func Within(root, abs string) (RelativePath, bool) {
	root = filepath.Clean(root)
	abs = filepath.Clean(abs)
	if root == abs {
		return "", false
	}
	prefix := root
	if !strings.HasSuffix(prefix, sep) {
		prefix += sep
	}
	if !strings.HasPrefix(abs, prefix) {
		return "", false
	}
	return Normalize(strings.TrimPrefix(abs, prefix)), true
}
