package add

import (
	"context"
	"os"
	"testing"

	"github.com/arthur-debert/dotfiles/pkg/config"
	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/executor"
	"github.com/arthur-debert/dotfiles/pkg/planner"
	"github.com/arthur-debert/dotfiles/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockConfirmer is a mock implementation of confirmations.Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(question string, defaultValue bool) (bool, error) {
	args := m.Called(question, defaultValue)
	return args.Bool(0), args.Error(1)
}

func options(env *testutil.TestEnvironment, path string, confirmer *MockConfirmer) Options {
	return Options{
		DotfilesRoot: env.DotfilesRoot,
		HomeDir:      env.HomeDir,
		Path:         path,
		Cwd:          env.HomeDir,
		Confirmer:    confirmer,
	}
}

func kinds(plan *planner.Plan) []planner.ChangeKind {
	var out []planner.ChangeKind
	for _, c := range plan.Changes {
		out = append(out, c.Kind)
	}
	return out
}

func TestAddHomeOnlyPath(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithMappings()
	env.WithHomeTree(testutil.FileTree{".vimrc": "set nu"})

	confirmer := &MockConfirmer{}
	confirmer.On("Confirm", ContinuePrompt, true).Return(true, nil).Once()

	var shown *planner.Plan
	opts := options(env, ".vimrc", confirmer)
	opts.Show = func(p *planner.Plan) { shown = p }

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	confirmer.AssertExpectations(t)

	assert.Same(t, result.Plan, shown)
	assert.True(t, result.Confirmed)
	assert.Equal(t, []planner.ChangeKind{planner.AddMapping, planner.MoveFile, planner.CreateSymlink}, kinds(result.Plan))
	assert.Len(t, result.Steps, 3)

	testutil.AssertFileContent(t, env.RepoPath(".vimrc"), "set nu")
	testutil.AssertSymlink(t, env.HomePath(".vimrc"), env.RepoPath(".vimrc"))

	mf, err := config.Load(env.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, []string{".vimrc"}, mf.Mappings.Strings())

	// Adding the same path again has nothing left to do.
	again, err := Run(context.Background(), options(env, ".vimrc", &MockConfirmer{}))
	require.NoError(t, err)
	assert.True(t, again.Plan.IsEmpty())
	assert.Equal(t, []string{planner.SkipAlreadyMapped, planner.SkipAlreadyLinked}, again.Plan.Skipped)
}

func TestAddRepositoryPathRelativeToCwd(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithMappings()
	env.WithRepoTree(testutil.FileTree{"bin": testutil.FileTree{"tool": "#!/bin/sh"}})

	result, err := Run(context.Background(), Options{
		DotfilesRoot: env.DotfilesRoot,
		HomeDir:      env.HomeDir,
		Path:         "./bin/tool",
		Cwd:          env.DotfilesRoot,
		AssumeYes:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, env.RepoPath("bin/tool"), result.Candidate)
	testutil.AssertSymlink(t, env.HomePath("bin/tool"), env.RepoPath("bin/tool"))
}

func TestAddDeclined(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithMappings()
	env.WithHomeTree(testutil.FileTree{".zshrc": ""})

	confirmer := &MockConfirmer{}
	confirmer.On("Confirm", ContinuePrompt, true).Return(false, nil)

	result, err := Run(context.Background(), options(env, ".zshrc", confirmer))
	require.NoError(t, err)

	assert.False(t, result.Confirmed)
	assert.Empty(t, result.Steps)
	testutil.AssertFileContent(t, env.HomePath(".zshrc"), "")
	testutil.AssertNotExists(t, env.RepoPath(".zshrc"))
}

func TestAddDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithMappings()
	env.WithHomeTree(testutil.FileTree{".zshrc": ""})

	confirmer := &MockConfirmer{}
	opts := options(env, ".zshrc", confirmer)
	opts.DryRun = true

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)

	assert.Len(t, result.Steps, 3)
	assert.Equal(t, executor.StatusDryRun, result.Steps[0].Status)
	testutil.AssertNotExists(t, env.RepoPath(".zshrc"))

	mf, err := config.Load(env.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, 0, mf.Mappings.Len())
}

func TestAddBothPathsExist(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithMappings()
	env.WithRepoTree(testutil.FileTree{".vimrc": "same"})
	env.WithHomeTree(testutil.FileTree{".vimrc": "same"})

	_, err := Run(context.Background(), options(env, ".vimrc", &MockConfirmer{}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBothPathsExist))

	mf, err := config.Load(env.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, 0, mf.Mappings.Len())
}

func TestAddAncestorOfExistingMapping(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithMappings(".config/nvim")
	env.WithHomeTree(testutil.FileTree{
		".config": testutil.FileTree{"nvim": testutil.FileTree{"init.lua": ""}},
	})

	_, err := Run(context.Background(), options(env, ".config", &MockConfirmer{}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExistingParent))

	info, err := os.Lstat(env.HomePath(".config"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestAddMissingPath(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithMappings()

	_, err := Run(context.Background(), options(env, "nope", &MockConfirmer{}))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestAddOutsideValidDirs(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithMappings()

	_, err := Run(context.Background(), Options{
		DotfilesRoot: env.DotfilesRoot,
		HomeDir:      env.HomeDir,
		Path:         env.StateDir,
		Confirmer:    &MockConfirmer{},
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideValidDir))
}

func TestAddRepositoryRootNestedInHome(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.NestRepoInHome("dotfiles")
	env.WithMappings()

	for _, path := range []string{"dotfiles", "."} {
		_, err := Run(context.Background(), Options{
			DotfilesRoot: env.DotfilesRoot,
			HomeDir:      env.HomeDir,
			Path:         path,
			Cwd:          env.HomeDir,
			AssumeYes:    true,
			Confirmer:    &MockConfirmer{},
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideValidDir), "path %s", path)
	}

	testutil.AssertNotExists(t, env.RepoPath("dotfiles"))
	mf, err := config.Load(env.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, 0, mf.Mappings.Len())
}

func TestAddDanglingLinkIntoRepository(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithMappings()
	env.LinkHome(".vimrc", env.RepoPath(".vimrc"))

	opts := options(env, ".vimrc", &MockConfirmer{})
	opts.AssumeYes = true
	_, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoContentMissing))

	testutil.AssertNotExists(t, env.RepoPath(".vimrc"))
	testutil.AssertSymlink(t, env.HomePath(".vimrc"), env.RepoPath(".vimrc"))
	mf, err := config.Load(env.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, 0, mf.Mappings.Len())
}

func TestAddCreatesMissingConfig(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHomeTree(testutil.FileTree{".vimrc": ""})

	confirmer := &MockConfirmer{}
	confirmer.On("Confirm", mock.MatchedBy(func(q string) bool { return q != ContinuePrompt }), true).Return(true, nil).Once()
	confirmer.On("Confirm", ContinuePrompt, true).Return(true, nil).Once()

	result, err := Run(context.Background(), options(env, ".vimrc", confirmer))
	require.NoError(t, err)
	confirmer.AssertExpectations(t)

	assert.True(t, result.ConfigCreated)
	mf, err := config.Load(env.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, []string{".vimrc"}, mf.Mappings.Strings())
}
