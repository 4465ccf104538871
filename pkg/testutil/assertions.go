package testutil

import (
	"os"
	"testing"
)

// AssertSymlink checks that link is a symlink whose stored target is target.
func AssertSymlink(t *testing.T, link, target string) {
	t.Helper()

	info, err := os.Lstat(link)
	if err != nil {
		t.Errorf("Expected symlink at %s: %v", link, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("Expected %s to be a symlink, got mode %v", link, info.Mode())
		return
	}
	got, err := os.Readlink(link)
	if err != nil {
		t.Errorf("Failed to read symlink %s: %v", link, err)
		return
	}
	if got != target {
		t.Errorf("Symlink %s points to %q, want %q", link, got, target)
	}
}

// AssertNotExists checks that nothing, not even a dangling link, is at path.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Expected %s not to exist", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("Failed to check %s: %v", path, err)
	}
}

// AssertFileContent checks the content of a regular file.
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Failed to read %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("File %s content = %q, want %q", path, string(data), want)
	}
}
