// Package mappings holds the validated set of managed paths.
//
// A mapping designates one file or directory, relative to both the dotfiles
// root and the home directory, that is kept symlinked from home into the
// repository. Mappings never nest: a mapped directory is managed as a single
// unit, so no other mapping may live inside it.
package mappings

import (
	"sort"

	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/paths"
)

// Set is an ordered set of mappings. The order is the insertion order, which
// is also the order the config file is written in.
type Set struct {
	paths []paths.RelativePath
	index map[paths.RelativePath]struct{}
}

// New builds a Set from raw config entries. Entries are normalized, then
// rejected if absolute, empty or nested.
func New(raw []string) (*Set, error) {
	s := &Set{index: make(map[paths.RelativePath]struct{}, len(raw))}
	for _, r := range raw {
		p := paths.Normalize(r)
		if p.IsAbs() {
			return nil, errors.Newf(errors.ErrConfigAbsolute,
				"found an absolute path in the configured mappings: %q. "+
					"Mappings should be relative to the root of your dotfiles repository.", r).
				WithDetail("path", r)
		}
		if p.IsEmpty() {
			return nil, errors.Newf(errors.ErrConfigParse,
				"found an empty entry in the configured mappings: %q", r).
				WithDetail("path", r)
		}
		s.paths = append(s.paths, p)
		s.index[p] = struct{}{}
	}

	if err := Validate(s.paths); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate fails if any mapping is nested in another one. The mappings are
// sorted by component order, which places every path directly after its
// closest ancestor in the list, so checking adjacent pairs finds a violation
// whenever one exists. Duplicates count as nesting.
func Validate(list []paths.RelativePath) error {
	if len(list) < 2 {
		return nil
	}

	sorted := make([]paths.RelativePath, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return paths.Compare(sorted[i], sorted[j]) < 0
	})

	for i := 0; i < len(sorted)-1; i++ {
		parent, nested := sorted[i], sorted[i+1]
		if parent.IsPrefixOf(nested) {
			return errors.Newf(errors.ErrConfigNested,
				"invalid mappings in config: the mappings entry %q is nested in the entry %q",
				nested, parent).
				WithDetail("nested", nested).
				WithDetail("parent", parent)
		}
	}
	return nil
}

// Contains reports whether p is exactly one of the mappings.
func (s *Set) Contains(p paths.RelativePath) bool {
	_, ok := s.index[p]
	return ok
}

// CheckAdd verifies that p could be added without nesting. It does not check
// for p being present already; callers test Contains first.
func (s *Set) CheckAdd(p paths.RelativePath) error {
	for _, m := range s.paths {
		if p.IsPrefixOf(m) {
			return errors.Newf(errors.ErrExistingParent,
				"cannot add this path: the given path %s is a parent of the existing mapping %s. "+
					"Nested mappings are not supported.", p, m).
				WithDetail("path", p).
				WithDetail("mapping", m)
		}
		if m.IsPrefixOf(p) {
			return errors.Newf(errors.ErrExistingChild,
				"cannot add this path: the given path %s is a child of the existing mapping %s. "+
					"Nested mappings are not supported.", p, m).
				WithDetail("path", p).
				WithDetail("mapping", m)
		}
	}
	return nil
}

// Add appends p after checking it against the existing mappings.
func (s *Set) Add(p paths.RelativePath) error {
	if p.IsAbs() {
		return errors.Newf(errors.ErrConfigAbsolute, "cannot add absolute path %s as a mapping", p).
			WithDetail("path", p)
	}
	if p.IsEmpty() {
		return errors.New(errors.ErrInvalidInput, "cannot add an empty mapping")
	}
	if err := s.CheckAdd(p); err != nil {
		return err
	}
	if s.index == nil {
		s.index = make(map[paths.RelativePath]struct{})
	}
	s.paths = append(s.paths, p)
	s.index[p] = struct{}{}
	return nil
}

// Paths returns the mappings in insertion order.
func (s *Set) Paths() []paths.RelativePath {
	out := make([]paths.RelativePath, len(s.paths))
	copy(out, s.paths)
	return out
}

// Sorted returns the mappings in component order.
func (s *Set) Sorted() []paths.RelativePath {
	out := s.Paths()
	sort.Slice(out, func(i, j int) bool {
		return paths.Compare(out[i], out[j]) < 0
	})
	return out
}

// Strings returns the mappings as config entries.
func (s *Set) Strings() []string {
	out := make([]string, len(s.paths))
	for i, p := range s.paths {
		out[i] = p.String()
	}
	return out
}

// Len returns the number of mappings.
func (s *Set) Len() int {
	return len(s.paths)
}

// IsOnPathTo reports whether p equals a mapping or is an ancestor of one.
func (s *Set) IsOnPathTo(p paths.RelativePath) bool {
	for _, m := range s.paths {
		if p.IsPrefixOf(m) {
			return true
		}
	}
	return false
}
