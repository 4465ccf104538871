package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FileTree describes a directory layout. Values are a string (file content),
// a nested FileTree (directory) or a Symlink.
type FileTree map[string]interface{}

// Symlink is a FileTree leaf created as a symbolic link to Target.
type Symlink struct {
	Target string
}

// CreateFileTree materializes tree under base.
func CreateFileTree(t *testing.T, base string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(base, name)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
		}

		switch v := content.(type) {
		case string:
			if err := os.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := os.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			CreateFileTree(t, fullPath, v)
		case Symlink:
			if err := os.Symlink(v.Target, fullPath); err != nil {
				t.Fatalf("Failed to create symlink %s: %v", fullPath, err)
			}
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
