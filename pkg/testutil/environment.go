package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotfiles/pkg/filesystem"
)

// TestEnvironment is an isolated pair of repository and home directories.
type TestEnvironment struct {
	// DotfilesRoot is the repository root
	DotfilesRoot string

	// HomeDir is the fake home directory, also exported as HOME
	HomeDir string

	// ConfigDir is $XDG_CONFIG_HOME, <home>/.config
	ConfigDir string

	// StateDir is $XDG_STATE_HOME, kept outside of home
	StateDir string

	FS filesystem.FS

	t *testing.T
}

// NewTestEnvironment creates the directories and points HOME,
// XDG_CONFIG_HOME, XDG_STATE_HOME and DOTFILES_ROOT at them. The base
// directory is canonicalized so that paths compare equal to resolved ones.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	env := &TestEnvironment{
		DotfilesRoot: filepath.Join(base, "dotfiles"),
		HomeDir:      filepath.Join(base, "home"),
		StateDir:     filepath.Join(base, "state"),
		FS:           filesystem.NewOS(),
		t:            t,
	}
	env.ConfigDir = filepath.Join(env.HomeDir, ".config")

	for _, dir := range []string{env.DotfilesRoot, env.HomeDir, env.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	t.Setenv("DOTFILES_ROOT", env.DotfilesRoot)
	t.Setenv("DOTFILES_HOME", "")
	t.Setenv("NO_COLOR", "1")

	return env
}

// NestRepoInHome relocates the repository to <home>/rel, the common layout
// where the dotfiles checkout lives inside home. Call it before creating any
// repository content.
func (env *TestEnvironment) NestRepoInHome(rel string) *TestEnvironment {
	env.t.Helper()

	root := env.HomePath(rel)
	if err := os.MkdirAll(root, 0755); err != nil {
		env.t.Fatalf("Failed to create directory %s: %v", root, err)
	}
	if err := os.Remove(env.DotfilesRoot); err != nil {
		env.t.Fatalf("Failed to remove %s: %v", env.DotfilesRoot, err)
	}
	env.DotfilesRoot = root
	env.t.Setenv("DOTFILES_ROOT", root)
	return env
}

// RepoPath returns the absolute path of rel inside the repository.
func (env *TestEnvironment) RepoPath(rel string) string {
	return filepath.Join(env.DotfilesRoot, rel)
}

// HomePath returns the absolute path of rel inside the home directory.
func (env *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(env.HomeDir, rel)
}

// ConfigFile returns the location of the mappings file for this environment.
func (env *TestEnvironment) ConfigFile() string {
	return filepath.Join(env.DotfilesRoot, ".config", "dotfiles", "config.toml")
}

// WithRepoTree creates tree under the repository root.
func (env *TestEnvironment) WithRepoTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	CreateFileTree(env.t, env.DotfilesRoot, tree)
	return env
}

// WithHomeTree creates tree under the home directory.
func (env *TestEnvironment) WithHomeTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	CreateFileTree(env.t, env.HomeDir, tree)
	return env
}

// WithMappings writes a mappings file listing entries.
func (env *TestEnvironment) WithMappings(entries ...string) *TestEnvironment {
	env.t.Helper()

	content := "config_version = 1\nmappings = ["
	for i, e := range entries {
		if i > 0 {
			content += ", "
		}
		content += quote(e)
	}
	content += "]\n"

	path := env.ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write config file: %v", err)
	}
	return env
}

// LinkHome creates <home>/rel pointing to target.
func (env *TestEnvironment) LinkHome(rel, target string) *TestEnvironment {
	env.t.Helper()

	link := env.HomePath(rel)
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", link, err)
	}
	if err := os.Symlink(target, link); err != nil {
		env.t.Fatalf("Failed to create symlink %s: %v", link, err)
	}
	return env
}

func quote(s string) string {
	out := []byte{'"'}
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(append(out, '"'))
}
