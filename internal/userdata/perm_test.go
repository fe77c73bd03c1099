package userdata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyPerm(t *testing.T) {
	if !permBitsHonored {
		t.Skip("permission bits are not honored on this OS")
	}
	tmp := t.TempDir()
	file := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(file, []byte("log_level: info\n"), 0644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(tmp, "documents")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		perm os.FileMode
	}{
		{file, FilePermSecure},
		{dir, DirPermSecure},
	}
	for _, tt := range tests {
		if err := applyPerm(tt.path, tt.perm); err != nil {
			t.Fatalf("applyPerm(%s): %v", tt.path, err)
		}
		assertDirPerm(t, tt.path, tt.perm)
	}
}

func TestApplyPermMissingPath(t *testing.T) {
	if !permBitsHonored {
		t.Skip("permission bits are not honored on this OS")
	}
	if err := applyPerm(filepath.Join(t.TempDir(), "gone"), DirPermSecure); err == nil {
		t.Error("expected error for a missing path")
	}
}
