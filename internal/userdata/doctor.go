package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CheckLayout validates the home layout: bundle readability, storage
// existence, permissions and writability. When fix is true it attempts to
// repair what it can. It returns the number of failed checks.
func CheckLayout(w io.Writer, bundleDir, storageDir string, fix bool) int {
	failures := 0
	fmt.Fprintln(w, "Layout check:")

	if !checkReadableDir(w, bundleDir) {
		failures++
	}

	if !checkDirWithPerm(w, storageDir, DirPermSecure, fix) {
		failures++
	} else if !checkWritable(w, storageDir) {
		failures++
	}

	return failures
}

func checkReadableDir(w io.Writer, path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s is not readable: %v\n", path, err)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s readable (%d entries)\n", path, len(entries))
	return true
}

func checkDirWithPerm(w io.Writer, path string, expectedPerm os.FileMode, fix bool) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			return false
		}
		if mkErr := os.MkdirAll(path, expectedPerm); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			return false
		}
		applyPerm(path, expectedPerm)
		fmt.Fprintf(w, "  [FIX ] Created %s with %o\n", path, expectedPerm)
		return true
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", path)
		return false
	}

	actualPerm := info.Mode().Perm()
	if actualPerm != expectedPerm && permBitsHonored {
		fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", path, actualPerm, expectedPerm)
		if fix {
			if chErr := applyPerm(path, expectedPerm); chErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", path, chErr)
				return true
			}
			fmt.Fprintf(w, "  [FIX ] Fixed permissions on %s to %o\n", path, expectedPerm)
		}
		return true
	}
	fmt.Fprintf(w, "  [ OK ] %s (permissions %o)\n", path, actualPerm)
	return true
}

// checkWritable creates and removes a probe file inside dir.
func checkWritable(w io.Writer, dir string) bool {
	probe, err := os.CreateTemp(dir, ".docshelf-probe-*")
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s is not writable: %v\n", dir, err)
		return false
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	fmt.Fprintf(w, "  [ OK ] %s writable\n", filepath.Clean(dir))
	return true
}
