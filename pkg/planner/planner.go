// Package planner computes the changes needed to bring one path under
// management.
//
// Planning never touches the filesystem beyond observing it. Every check runs
// before a plan is returned, so a failed plan leaves nothing half done.
package planner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/filesystem"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/mappings"
	"github.com/arthur-debert/dotfiles/pkg/paths"
)

// Skip reasons reported for steps that are already satisfied.
const (
	SkipAlreadyMapped = "This path is already mapped, no need to update config."
	SkipAlreadyLinked = "no symlink will be created, paths are already linked."
)

// ChangeKind identifies a plan step.
type ChangeKind int

const (
	// AddMapping appends Path to the mapping set and persists it
	AddMapping ChangeKind = iota
	// CreateSymlink creates the symlink From pointing to To
	CreateSymlink
	// MoveFile relocates From to To
	MoveFile
)

func (k ChangeKind) String() string {
	switch k {
	case AddMapping:
		return "add_mapping"
	case CreateSymlink:
		return "create_symlink"
	case MoveFile:
		return "move_file"
	}
	return "unknown"
}

// Change is one step of a plan.
type Change struct {
	Kind ChangeKind
	// Path is the mapping added by AddMapping
	Path paths.RelativePath
	From string
	To   string
}

// Describe returns the human readable form of the change.
func (c Change) Describe() string {
	switch c.Kind {
	case AddMapping:
		return fmt.Sprintf("adding %s to mappings in config file", c.Path)
	case CreateSymlink:
		return fmt.Sprintf("creating symlink %s -> %s", c.From, c.To)
	case MoveFile:
		return fmt.Sprintf("moving %s -> %s", c.From, c.To)
	}
	return c.Kind.String()
}

// Plan is an ordered list of changes plus the steps that were not needed.
type Plan struct {
	// Path is the mapping-relative path the plan is about
	Path    paths.RelativePath
	Changes []Change
	Skipped []string
}

// IsEmpty reports whether there is nothing to apply.
func (p *Plan) IsEmpty() bool {
	return len(p.Changes) == 0
}

// Input bundles what a plan is computed from.
type Input struct {
	FS           filesystem.FS
	Mappings     *mappings.Set
	DotfilesRoot string
	HomeDir      string
	// Candidate is absolute and known to exist
	Candidate string
}

// Locate returns the mapping-relative path of candidate. The repository wins
// over home, which matters when the repository lives inside home. The
// repository root and any directory holding it can never be mapped.
func Locate(dotfilesRoot, homeDir, candidate string) (paths.RelativePath, error) {
	if _, ok := paths.Within(candidate, dotfilesRoot); ok || filepath.Clean(candidate) == filepath.Clean(dotfilesRoot) {
		return "", errors.New(errors.ErrOutsideValidDir,
			"The given path contains the dotfiles directory and cannot be added.").
			WithDetail("path", candidate).
			WithDetail("repo", dotfilesRoot)
	}
	if rel, ok := paths.Within(dotfilesRoot, candidate); ok {
		return rel, nil
	}
	if rel, ok := paths.Within(homeDir, candidate); ok {
		return rel, nil
	}
	return "", errors.New(errors.ErrOutsideValidDir,
		"The given path must be either inside your home or dotfiles directory.").
		WithDetail("path", candidate)
}

// Compute builds the plan for in.Candidate.
func Compute(in Input) (*Plan, error) {
	logger := logging.GetLogger("planner")

	rel, err := Locate(in.DotfilesRoot, in.HomeDir, in.Candidate)
	if err != nil {
		return nil, err
	}

	homePath := rel.Join(in.HomeDir)
	repoPath := rel.Join(in.DotfilesRoot)
	logger.Debug().
		Str("path", rel.String()).
		Str("home", homePath).
		Str("repo", repoPath).
		Msg("Planning add")

	plan := &Plan{Path: rel}

	if in.Mappings.Contains(rel) {
		plan.Skipped = append(plan.Skipped, SkipAlreadyMapped)
	} else {
		if err := in.Mappings.CheckAdd(rel); err != nil {
			return nil, err
		}
		plan.Changes = append(plan.Changes, Change{Kind: AddMapping, Path: rel})
	}

	homeExists, err := filesystem.Exists(in.FS, homePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", homePath).
			WithDetail("path", homePath)
	}
	repoExists, err := filesystem.Exists(in.FS, repoPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", repoPath).
			WithDetail("path", repoPath)
	}

	switch {
	case homeExists && repoExists:
		linked, err := pointsTo(in.FS, homePath, repoPath)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, errors.Newf(errors.ErrBothPathsExist,
				"Both %s and %s already exist. Remove one of them and run this command again.",
				repoPath, homePath).
				WithDetail("repo", repoPath).
				WithDetail("home", homePath)
		}
		plan.Skipped = append(plan.Skipped, SkipAlreadyLinked)

	case homeExists:
		// A dangling link into the repository means the content is gone.
		// Moving it would leave a symlink pointing at itself.
		dangling, err := pointsTo(in.FS, homePath, repoPath)
		if err != nil {
			return nil, err
		}
		if dangling {
			return nil, errors.Newf(errors.ErrRepoContentMissing,
				"%s already links to %s, but that path is missing from the dotfiles directory.",
				homePath, repoPath).
				WithDetail("repo", repoPath).
				WithDetail("home", homePath)
		}
		plan.Changes = append(plan.Changes,
			Change{Kind: MoveFile, From: homePath, To: repoPath},
			Change{Kind: CreateSymlink, From: homePath, To: repoPath},
		)

	default:
		plan.Changes = append(plan.Changes, Change{Kind: CreateSymlink, From: homePath, To: repoPath})
	}

	logger.Info().
		Str("path", rel.String()).
		Int("changes", len(plan.Changes)).
		Int("skipped", len(plan.Skipped)).
		Msg("Plan computed")
	return plan, nil
}

// pointsTo reports whether link is a symlink whose literal target is target.
func pointsTo(fsys filesystem.FS, link, target string) (bool, error) {
	info, err := fsys.Lstat(link)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", link).
			WithDetail("path", link)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false, nil
	}
	got, err := fsys.Readlink(link)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read symlink %s", link).
			WithDetail("path", link)
	}
	return got == target, nil
}
