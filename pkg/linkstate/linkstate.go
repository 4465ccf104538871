// Package linkstate classifies a repository entry against its counterpart in
// the home directory.
package linkstate

import (
	"os"

	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/filesystem"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/walker"
)

// Kind is the relationship between a repository entry and the home tree.
type Kind int

const (
	// Invalid: the mapping does not exist in the repository
	Invalid Kind = iota
	// Linked: the home path is a symlink to the repository path
	Linked
	// Unlinked: nothing exists at the home path
	Unlinked
	// ConflictWrongTarget: the home path is a symlink to somewhere else
	ConflictWrongTarget
	// ConflictNoLink: the home path exists and is not a symlink
	ConflictNoLink
	// Unmapped: the entry is not managed
	Unmapped
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Linked:
		return "linked"
	case Unlinked:
		return "unlinked"
	case ConflictWrongTarget:
		return "conflict_wrong_target"
	case ConflictNoLink:
		return "conflict_no_link"
	case Unmapped:
		return "unmapped"
	}
	return "unknown"
}

// IsConflict reports whether k is one of the conflict kinds.
func (k Kind) IsConflict() bool {
	return k == ConflictWrongTarget || k == ConflictNoLink
}

// State is a classified entry. Path carries the payload of the kinds that
// have one: the expected repository path for Invalid, the actual link target
// for ConflictWrongTarget and the home path for ConflictNoLink.
type State struct {
	Kind Kind
	Path string
}

// Classifier computes link states. It holds no cache: every call observes the
// filesystem again.
type Classifier struct {
	fs       filesystem.FS
	repoRoot string
	homeRoot string
}

// NewClassifier returns a Classifier for the given roots.
func NewClassifier(fsys filesystem.FS, repoRoot, homeRoot string) *Classifier {
	return &Classifier{fs: fsys, repoRoot: repoRoot, homeRoot: homeRoot}
}

// Classify returns the state of entry. The first matching rule wins; a
// symlink target is compared literally with the absolute repository path.
func (c *Classifier) Classify(entry walker.Entry) (State, error) {
	logger := logging.GetLogger("linkstate")

	repoPath := entry.Path.Join(c.repoRoot)

	switch entry.State {
	case walker.Invalid:
		return State{Kind: Invalid, Path: repoPath}, nil
	case walker.Unmapped:
		return State{Kind: Unmapped}, nil
	}

	homePath := entry.Path.Join(c.homeRoot)
	info, err := c.fs.Lstat(homePath)
	if err != nil {
		if os.IsNotExist(err) {
			return State{Kind: Unlinked}, nil
		}
		return State{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", homePath).
			WithDetail("path", homePath)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return State{Kind: ConflictNoLink, Path: homePath}, nil
	}

	target, err := c.fs.Readlink(homePath)
	if err != nil {
		return State{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot read symlink %s", homePath).
			WithDetail("path", homePath)
	}

	if target != repoPath {
		logger.Debug().
			Str("link", homePath).
			Str("target", target).
			Str("expected", repoPath).
			Msg("Symlink points elsewhere")
		return State{Kind: ConflictWrongTarget, Path: target}, nil
	}
	return State{Kind: Linked}, nil
}
