// Package paths provides the path model for dotfiles.
//
// A RelativePath is the identity of a mapping: a path relative to either the
// dotfiles repository or the home directory, normalized so that "./.vimrc",
// ".vimrc" and ".vimrc/" are the same value. Comparisons are done on path
// components, never on raw strings, so ".config/app" is not a prefix of
// ".config/application".
//
// # Locations
//
// Each invocation works with three absolute locations:
//
//   - the dotfiles root: the repository holding the real content ($DOTFILES_ROOT)
//   - the home directory: where symlinks into the repository live ($DOTFILES_HOME or $HOME)
//   - the config file: <root>/<user config dir relative to home>/dotfiles/config.toml
//
// The user config directory is resolved through the XDG base directory
// specification, so with the defaults the config file is
// <root>/.config/dotfiles/config.toml.
package paths
