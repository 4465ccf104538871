// Package filesystem provides the filesystem primitives dotfiles relies on.
//
// All reads go through the FS interface so the walker, the link state
// classifier and the planner can be exercised against temporary directories.
// Only the POSIX symlink model is supported: symlinks are inspected with Lstat
// and Readlink and never followed.
package filesystem
