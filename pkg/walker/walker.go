// Package walker discovers the entries of a dotfiles repository that a status
// report is made of.
//
// The repository is traversed breadth first. Traversal descends only into
// directories that lead to a configured mapping; everything else stops the
// descent right where it is found. Mappings that were never found are added
// back as Invalid entries so a report always covers the whole mapping set.
package walker

import (
	"os"
	"sort"

	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/filesystem"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/mappings"
	"github.com/arthur-debert/dotfiles/pkg/paths"
)

// EntryState tells how a repository entry relates to the mapping set.
type EntryState int

const (
	// Mapped entries are exactly a configured mapping
	Mapped EntryState = iota
	// Unmapped entries have no mapping at or below them
	Unmapped
	// Invalid entries are mappings that do not exist in the repository
	Invalid
)

func (s EntryState) String() string {
	switch s {
	case Mapped:
		return "mapped"
	case Unmapped:
		return "unmapped"
	case Invalid:
		return "invalid"
	}
	return "unknown"
}

// Entry is one path reported for the repository.
type Entry struct {
	Path  paths.RelativePath
	State EntryState
}

// Options tunes a walk.
type Options struct {
	// Ignore lists base names that are never reported as Unmapped
	Ignore []string
}

// Walk returns every entry of the repository at root, sorted in component
// order. Symlinks inside the repository are reported but never followed.
func Walk(fsys filesystem.FS, root string, set *mappings.Set, opts Options) ([]Entry, error) {
	logger := logging.GetLogger("walker")
	logger.Debug().Str("root", root).Int("mappings", set.Len()).Msg("Walking repository")

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access dotfiles root %s", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrFileAccess, "dotfiles root %s is not a directory", root).
			WithDetail("path", root)
	}

	ignored := make(map[string]bool, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignored[name] = true
	}

	queue, err := children(fsys, root, "")
	if err != nil {
		return nil, err
	}

	var entries []Entry
	found := make(map[paths.RelativePath]bool)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		switch {
		case set.Contains(p):
			entries = append(entries, Entry{Path: p, State: Mapped})
			found[p] = true

		case !set.IsOnPathTo(p):
			if ignored[baseName(p)] {
				logger.Trace().Str("path", p.String()).Msg("Ignoring entry")
				continue
			}
			entries = append(entries, Entry{Path: p, State: Unmapped})

		default:
			abs := p.Join(root)
			info, err := fsys.Lstat(abs)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", abs).
					WithDetail("path", abs)
			}
			// A symlinked directory is a leaf: its mappings below are Invalid.
			if !info.IsDir() || info.Mode()&os.ModeSymlink != 0 {
				continue
			}
			next, err := children(fsys, root, p)
			if err != nil {
				return nil, err
			}
			queue = append(queue, next...)
		}
	}

	for _, m := range set.Paths() {
		if !found[m] {
			logger.Debug().Str("mapping", m.String()).Msg("Mapping not found in repository")
			entries = append(entries, Entry{Path: m, State: Invalid})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return paths.Compare(entries[i].Path, entries[j].Path) < 0
	})

	logger.Debug().Int("entries", len(entries)).Msg("Walk complete")
	return entries, nil
}

// children lists the entries of dir in name order.
func children(fsys filesystem.FS, root string, dir paths.RelativePath) ([]paths.RelativePath, error) {
	abs := dir.Join(root)
	dirEntries, err := fsys.ReadDir(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", abs).
			WithDetail("path", abs)
	}

	out := make([]paths.RelativePath, 0, len(dirEntries))
	for _, e := range dirEntries {
		out = append(out, dir.Child(e.Name()))
	}
	sort.Slice(out, func(i, j int) bool {
		return paths.Compare(out[i], out[j]) < 0
	})
	return out, nil
}

func baseName(p paths.RelativePath) string {
	c := p.Components()
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}
