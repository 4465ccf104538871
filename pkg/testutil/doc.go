// Package testutil provides fixtures for dotfiles tests.
//
// Key components:
//   - TestEnvironment: an isolated repository and home directory under
//     t.TempDir, with HOME and the XDG variables pointing inside it
//   - FileTree: declarative file, directory and symlink layouts
//   - Assertions for links and file contents on the real filesystem
//
// Tests exercise the OS filesystem directly: symlink semantics are the
// subject of most of the code under test and an in-memory filesystem cannot
// reproduce them faithfully.
package testutil
