package planner

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/mappings"
	"github.com/arthur-debert/dotfiles/pkg/paths"
	"github.com/arthur-debert/dotfiles/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(t *testing.T, env *testutil.TestEnvironment, candidate string, entries ...string) Input {
	t.Helper()
	set, err := mappings.New(entries)
	require.NoError(t, err)
	return Input{
		FS:           env.FS,
		Mappings:     set,
		DotfilesRoot: env.DotfilesRoot,
		HomeDir:      env.HomeDir,
		Candidate:    candidate,
	}
}

func TestComputeHomeOnlyMovesThenLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHomeTree(testutil.FileTree{".vimrc": "set nu"})

	plan, err := Compute(input(t, env, env.HomePath(".vimrc")))
	require.NoError(t, err)

	assert.Equal(t, paths.RelativePath(".vimrc"), plan.Path)
	assert.Empty(t, plan.Skipped)
	assert.Equal(t, []Change{
		{Kind: AddMapping, Path: ".vimrc"},
		{Kind: MoveFile, From: env.HomePath(".vimrc"), To: env.RepoPath(".vimrc")},
		{Kind: CreateSymlink, From: env.HomePath(".vimrc"), To: env.RepoPath(".vimrc")},
	}, plan.Changes)
}

func TestComputeRepoOnlyLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithRepoTree(testutil.FileTree{".config": testutil.FileTree{"nvim": testutil.FileTree{}}})

	plan, err := Compute(input(t, env, env.RepoPath(".config/nvim")))
	require.NoError(t, err)

	assert.Equal(t, []Change{
		{Kind: AddMapping, Path: ".config/nvim"},
		{Kind: CreateSymlink, From: env.HomePath(".config/nvim"), To: env.RepoPath(".config/nvim")},
	}, plan.Changes)
}

func TestComputeAlreadyMappedAndLinked(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithRepoTree(testutil.FileTree{".vimrc": ""})
	env.LinkHome(".vimrc", env.RepoPath(".vimrc"))

	plan, err := Compute(input(t, env, env.HomePath(".vimrc"), ".vimrc"))
	require.NoError(t, err)

	assert.True(t, plan.IsEmpty())
	assert.Equal(t, []string{SkipAlreadyMapped, SkipAlreadyLinked}, plan.Skipped)
}

func TestComputeMappedButUnlinked(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithRepoTree(testutil.FileTree{".vimrc": ""})

	plan, err := Compute(input(t, env, env.RepoPath(".vimrc"), ".vimrc"))
	require.NoError(t, err)

	assert.Equal(t, []string{SkipAlreadyMapped}, plan.Skipped)
	assert.Equal(t, []Change{
		{Kind: CreateSymlink, From: env.HomePath(".vimrc"), To: env.RepoPath(".vimrc")},
	}, plan.Changes)
}

func TestComputeBothPathsExist(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithRepoTree(testutil.FileTree{".vimrc": "repo"})
	env.WithHomeTree(testutil.FileTree{".vimrc": "home"})

	plan, err := Compute(input(t, env, env.HomePath(".vimrc")))
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBothPathsExist))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, env.RepoPath(".vimrc"), details["repo"])
	assert.Equal(t, env.HomePath(".vimrc"), details["home"])
}

func TestComputeBothExistWithForeignLink(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithRepoTree(testutil.FileTree{".vimrc": "repo"})
	env.LinkHome(".vimrc", "/somewhere/else")

	_, err := Compute(input(t, env, env.HomePath(".vimrc")))
	assert.True(t, errors.IsErrorCode(err, errors.ErrBothPathsExist))
}

func TestComputeOutsideValidDirs(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	outside := filepath.Join(filepath.Dir(env.HomeDir), "elsewhere")

	for _, candidate := range []string{outside, env.HomeDir, env.DotfilesRoot} {
		_, err := Compute(input(t, env, candidate))
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideValidDir), "candidate %s", candidate)
	}
}

func TestComputeDanglingLinkIntoRepository(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.LinkHome(".vimrc", env.RepoPath(".vimrc"))

	plan, err := Compute(input(t, env, env.HomePath(".vimrc")))
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoContentMissing))
	assert.Equal(t, env.RepoPath(".vimrc"), errors.GetErrorDetails(err)["repo"])
}

func TestComputeRepositoryNestedInHome(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.NestRepoInHome("src/dotfiles")
	env.WithRepoTree(testutil.FileTree{".vimrc": ""})

	for _, candidate := range []string{env.DotfilesRoot, env.HomePath("src"), env.HomeDir} {
		plan, err := Compute(input(t, env, candidate))
		assert.Nil(t, plan, "candidate %s", candidate)
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideValidDir), "candidate %s", candidate)
	}

	plan, err := Compute(input(t, env, env.RepoPath(".vimrc")))
	require.NoError(t, err)
	assert.Equal(t, paths.RelativePath(".vimrc"), plan.Path)
	require.Len(t, plan.Changes, 2)
	assert.Equal(t, AddMapping, plan.Changes[0].Kind)
	assert.Equal(t, Change{Kind: CreateSymlink, From: env.HomePath(".vimrc"), To: env.RepoPath(".vimrc")}, plan.Changes[1])
}

func TestComputeNestingConflicts(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHomeTree(testutil.FileTree{
		".config": testutil.FileTree{"nvim": testutil.FileTree{"init.lua": ""}},
	})

	_, err := Compute(input(t, env, env.HomePath(".config"), ".config/nvim"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrExistingParent))

	_, err = Compute(input(t, env, env.HomePath(".config/nvim/init.lua"), ".config/nvim"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrExistingChild))
}

func TestLocatePrefersRepository(t *testing.T) {
	home := "/home/u"
	repo := "/home/u/dotfiles"

	rel, err := Locate(repo, home, "/home/u/dotfiles/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, paths.RelativePath(".vimrc"), rel)

	rel, err = Locate(repo, home, "/home/u/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, paths.RelativePath(".vimrc"), rel)

	// Sibling with a shared string prefix is not inside the repository.
	rel, err = Locate(repo, home, "/home/u/dotfiles-old/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, paths.RelativePath("dotfiles-old/.vimrc"), rel)
}

func TestLocateRejectsRepositoryAndAncestors(t *testing.T) {
	home := "/home/u"
	repo := "/home/u/src/dotfiles"

	for _, candidate := range []string{repo, repo + "/", "/home/u/src", home, "/"} {
		_, err := Locate(repo, home, candidate)
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideValidDir), "candidate %s", candidate)
	}

	rel, err := Locate(repo, home, "/home/u/src/other")
	require.NoError(t, err)
	assert.Equal(t, paths.RelativePath("src/other"), rel)
}

func TestChangeDescribe(t *testing.T) {
	assert.Equal(t, "adding .vimrc to mappings in config file",
		Change{Kind: AddMapping, Path: ".vimrc"}.Describe())
	assert.Equal(t, "moving /h/.vimrc -> /d/.vimrc",
		Change{Kind: MoveFile, From: "/h/.vimrc", To: "/d/.vimrc"}.Describe())
	assert.Equal(t, "creating symlink /h/.vimrc -> /d/.vimrc",
		Change{Kind: CreateSymlink, From: "/h/.vimrc", To: "/d/.vimrc"}.Describe())
}
