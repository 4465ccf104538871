package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestEnvironment(t *testing.T) {
	env := NewTestEnvironment(t)

	assert.DirExists(t, env.DotfilesRoot)
	assert.DirExists(t, env.HomeDir)
	assert.Equal(t, env.HomeDir, os.Getenv("HOME"))
	assert.Equal(t, env.DotfilesRoot, os.Getenv("DOTFILES_ROOT"))
	assert.Equal(t, filepath.Join(env.HomeDir, ".config"), os.Getenv("XDG_CONFIG_HOME"))
}

func TestFileTree(t *testing.T) {
	env := NewTestEnvironment(t)
	env.WithRepoTree(FileTree{
		".vimrc": "set nu",
		".config": FileTree{
			"nvim": FileTree{"init.lua": "-- init"},
		},
		"link": Symlink{Target: "/nowhere"},
	})

	AssertFileContent(t, env.RepoPath(".vimrc"), "set nu")
	AssertFileContent(t, env.RepoPath(".config/nvim/init.lua"), "-- init")
	AssertSymlink(t, env.RepoPath("link"), "/nowhere")
	AssertNotExists(t, env.RepoPath("missing"))
}

func TestWithMappings(t *testing.T) {
	env := NewTestEnvironment(t)
	env.WithMappings(".vimrc", `odd"name`)

	data, err := os.ReadFile(env.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, "config_version = 1\nmappings = [\".vimrc\", \"odd\\\"name\"]\n", string(data))
}
