package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Default content for config.yaml.
const defaultConfigContent = `# docshelf settings. Environment variables (DOCSHELF_*) and flags take precedence.
# bundle_dir: /path/to/bundled/assets
# storage_dir: /path/to/imported/documents
# bundle_extensions: [png, jpg, jpeg]
on_collision: fail
log_level: info
# preview_command: xdg-open
`

// InitHome creates the docshelf home layout: the home directory, the bundle
// and storage directories, and a commented config.yaml. It prints progress
// messages to w. Existing items are skipped with a message.
func InitHome(w io.Writer) error {
	root, err := GetHomeRoot()
	if err != nil {
		return err
	}
	if err := ensureDir(w, root, DirPermNormal); err != nil {
		return err
	}

	bundle, err := GetBundleRoot()
	if err != nil {
		return err
	}
	if err := ensureDir(w, bundle, DirPermNormal); err != nil {
		return err
	}

	storage, err := GetStorageRoot()
	if err != nil {
		return err
	}
	if err := ensureDir(w, storage, DirPermSecure); err != nil {
		return err
	}

	if err := ensureFile(w, filepath.Join(root, ConfigFile), defaultConfigContent, FilePermSecure); err != nil {
		return err
	}

	return nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := applyPerm(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
