//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docshelf/docshelf/internal/catalog"
	"github.com/docshelf/docshelf/internal/registry"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // DOCSHELF_HOME
	BundleDir  string // DOCSHELF_BUNDLE, read-only documents
	StorageDir string // DOCSHELF_STORAGE, receives imports
	PickDir    string // where the "picker" finds files to import
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all docshelf operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	home := t.TempDir()
	env := &testEnv{
		HomeDir:    home,
		BundleDir:  filepath.Join(home, "bundle"),
		StorageDir: filepath.Join(home, "documents"),
		PickDir:    t.TempDir(),
	}

	t.Setenv("DOCSHELF_HOME", env.HomeDir)
	t.Setenv("DOCSHELF_BUNDLE", env.BundleDir)
	t.Setenv("DOCSHELF_STORAGE", env.StorageDir)
	t.Setenv("DOCSHELF_TYPES", "")

	return env
}

// setupBundle fills the bundle with a small mixed set of documents, plus the
// kind of clutter a real bundle directory picks up.
func setupBundle(t *testing.T, bundleDir string) {
	t.Helper()

	writeFile(t, filepath.Join(bundleDir, "cover.png"), "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	writeFile(t, filepath.Join(bundleDir, "Guide.pdf"), "%PDF-1.7\nguide")
	writeFile(t, filepath.Join(bundleDir, "notes.txt"), "plain notes\n")
	writeFile(t, filepath.Join(bundleDir, ".DS_Store"), "\x00\x00\x00\x01Bud1")
	writeFile(t, filepath.Join(bundleDir, "Thumbs.db"), "thumbs")
	writeFile(t, filepath.Join(bundleDir, "drafts", "ignored.md"), "# nested\n")
}

// newRegistry constructs a registry over env with the OS filesystem.
func newRegistry(t *testing.T, env *testEnv, policy registry.CollisionPolicy) *registry.Registry {
	t.Helper()
	reg, err := registry.New(registry.Options{
		BundleDir:   env.BundleDir,
		StorageDir:  env.StorageDir,
		OnCollision: policy,
	})
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	return reg
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileContent fails if the file doesn't exist or differs from want.
func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("file %s = %q, want %q", path, data, want)
	}
}

// titles returns the titles of records in order.
func titles(records []catalog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}
