package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotfiles/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the environment variable holding the repository root
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvDotfilesHome overrides the home directory links are created in
	EnvDotfilesHome = "DOTFILES_HOME"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under config and state locations
	AppDirName = "dotfiles"

	// ConfigFileName is the name of the mappings file
	ConfigFileName = "config.toml"

	// DefaultRelativeConfigDir is used when the user config directory is the
	// XDG default
	DefaultRelativeConfigDir = ".config"
)

// Locations groups the absolute roots of one invocation.
type Locations struct {
	// DotfilesRoot is the repository holding the real content
	DotfilesRoot string

	// HomeDir is where symlinks pointing into DotfilesRoot live
	HomeDir string

	// ConfigFile is the mappings file inside the repository
	ConfigFile string
}

// ResolveLocations builds the Locations for a repository root and home
// directory. An empty home falls back to the current user's home directory.
// The repository root must be an existing directory.
func ResolveLocations(dotfilesRoot, home string) (*Locations, error) {
	if dotfilesRoot == "" {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"the dotfiles repository root is required (use --root or %s)", EnvDotfilesRoot)
	}

	root, err := filepath.Abs(ExpandHome(dotfilesRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", dotfilesRoot)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a valid directory", dotfilesRoot).
			WithDetail("root", root)
	}

	if home == "" {
		home, err = GetHomeDirectory()
		if err != nil {
			return nil, err
		}
	}
	home, err = filepath.Abs(ExpandHome(home))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrUserLocation, "failed to get absolute path for home directory")
	}

	configFile, err := ConfigFilePath(root, home)
	if err != nil {
		return nil, err
	}

	return &Locations{
		DotfilesRoot: root,
		HomeDir:      home,
		ConfigFile:   configFile,
	}, nil
}

// RelativeConfigDir returns the user config directory relative to home,
// ".config" in most setups.
func RelativeConfigDir(home string) (RelativePath, error) {
	// Pick up XDG_CONFIG_HOME / HOME changes made after process start.
	xdg.Reload()

	rel, ok := Within(home, xdg.ConfigHome)
	if !ok {
		return "", errors.Newf(errors.ErrUserLocation,
			"could not resolve user config directory: %s is not inside the home directory %s",
			xdg.ConfigHome, home)
	}
	return rel, nil
}

// ConfigFilePath returns <dotfilesRoot>/<relative config dir>/dotfiles/config.toml.
// The mappings file lives in the repository itself, so it never needs to be
// linked to be found.
func ConfigFilePath(dotfilesRoot, home string) (string, error) {
	rel, err := RelativeConfigDir(home)
	if err != nil {
		return "", err
	}
	return filepath.Join(rel.Join(dotfilesRoot), AppDirName, ConfigFileName), nil
}

// SettingsFilePath returns the optional per-user settings file location.
func SettingsFilePath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, AppDirName, "settings.toml")
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrUserLocation, "could not find location: home directory")
	}
	return homeDir, nil
}

// AbsNoResolve makes p absolute against cwd. The parent directory is
// canonicalized but the final component is kept as is, so a symlink given on
// the command line designates the link and not its target.
func AbsNoResolve(cwd, p string) (string, error) {
	joined := ExpandHome(p)
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(cwd, joined)
	}
	joined = filepath.Clean(joined)

	parent, name := filepath.Dir(joined), filepath.Base(joined)
	if parent == joined {
		return joined, nil
	}

	canonical, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "could not canonicalize path %s", parent)
	}
	return filepath.Join(canonical, name), nil
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
