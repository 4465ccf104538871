package filesystem

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// Exists reports whether something is present at path without following a
// final symlink, so a dangling link exists.
func Exists(fsys FS, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// IsSymlink reports whether path is a symlink. A missing path is not.
func IsSymlink(fsys FS, path string) (bool, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// Move relocates from to to, creating the destination's parent directory.
// A rename across devices falls back to copying the tree and removing the
// source.
func Move(fsys FS, from, to string) error {
	if err := fsys.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	err := fsys.Rename(from, to)
	if err == nil {
		return nil
	}
	if !IsCrossDevice(err) {
		return err
	}

	if err := copyTree(fsys, from, to); err != nil {
		_ = fsys.RemoveAll(to)
		return fmt.Errorf("failed to copy across devices: %w", err)
	}
	return fsys.RemoveAll(from)
}

// IsCrossDevice reports whether err is a rename failing because source and
// destination live on different devices.
func IsCrossDevice(err error) bool {
	return err != nil && stderrors.Is(err, syscall.EXDEV)
}

// copyTree copies from to to. Symlinks are recreated, not followed.
func copyTree(fsys FS, from, to string) error {
	info, err := fsys.Lstat(from)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := fsys.Readlink(from)
		if err != nil {
			return err
		}
		return fsys.Symlink(target, to)

	case info.IsDir():
		if err := fsys.MkdirAll(to, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := fsys.ReadDir(from)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyTree(fsys, filepath.Join(from, entry.Name()), filepath.Join(to, entry.Name())); err != nil {
				return err
			}
		}
		return nil

	default:
		data, err := fsys.ReadFile(from)
		if err != nil {
			return err
		}
		return fsys.WriteFile(to, data, info.Mode().Perm())
	}
}

// AtomicWrite writes data to path atomically using temp file + rename.
// Parent directories are created on demand.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".dotfiles-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	tmpFile = nil
	return nil
}
