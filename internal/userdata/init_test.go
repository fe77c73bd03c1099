package userdata

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func setupHome(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("DOCSHELF_HOME", tmp)
	t.Setenv("DOCSHELF_BUNDLE", "")
	t.Setenv("DOCSHELF_STORAGE", "")
	t.Setenv("DOCSHELF_TYPES", "")
	return tmp
}

func TestInitHome_CreatesStructure(t *testing.T) {
	tmp := setupHome(t)

	var buf bytes.Buffer
	if err := InitHome(&buf); err != nil {
		t.Fatalf("InitHome failed: %v", err)
	}

	assertDirExists(t, filepath.Join(tmp, "bundle"))
	assertDirExists(t, filepath.Join(tmp, "documents"))
	assertFileExists(t, filepath.Join(tmp, "config.yaml"))

	if runtime.GOOS != "windows" {
		assertDirPerm(t, filepath.Join(tmp, "documents"), DirPermSecure)
		assertDirPerm(t, filepath.Join(tmp, "bundle"), DirPermNormal)
	}

	if !strings.Contains(buf.String(), "[ OK ]") {
		t.Error("expected [ OK ] in output")
	}
}

func TestInitHome_Idempotent(t *testing.T) {
	tmp := setupHome(t)

	var buf1 bytes.Buffer
	if err := InitHome(&buf1); err != nil {
		t.Fatalf("first InitHome failed: %v", err)
	}

	// Run again; should succeed with SKIP messages.
	var buf2 bytes.Buffer
	if err := InitHome(&buf2); err != nil {
		t.Fatalf("second InitHome failed: %v", err)
	}
	if !strings.Contains(buf2.String(), "[SKIP]") {
		t.Error("expected [SKIP] messages in second run")
	}

	data, err := os.ReadFile(filepath.Join(tmp, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config.yaml: %v", err)
	}
	if !strings.Contains(string(data), "on_collision: fail") {
		t.Error("config.yaml content was corrupted")
	}
}

func TestInitHome_StorageOverride(t *testing.T) {
	setupHome(t)
	storage := filepath.Join(t.TempDir(), "elsewhere", "docs")
	t.Setenv("DOCSHELF_STORAGE", storage)

	if err := InitHome(&bytes.Buffer{}); err != nil {
		t.Fatalf("InitHome failed: %v", err)
	}
	assertDirExists(t, storage)
}

func TestInitHome_FileInTheWay(t *testing.T) {
	tmp := setupHome(t)
	if err := os.WriteFile(filepath.Join(tmp, "documents"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := InitHome(&bytes.Buffer{}); err == nil {
		t.Fatal("expected error when storage path is a regular file")
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("directory %s does not exist: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", path)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file %s does not exist: %v", path, err)
	}
	if info.IsDir() {
		t.Fatalf("%s is a directory, expected file", path)
	}
}

func assertDirPerm(t *testing.T, path string, expected os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	actual := info.Mode().Perm()
	if actual != expected {
		t.Errorf("permissions on %s: expected %o, got %o", path, expected, actual)
	}
}
