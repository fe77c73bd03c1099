package userdata

import (
	"os"
	"runtime"
)

// permBitsHonored is false on Windows, where the mode argument of chmod
// only toggles the read-only attribute.
var permBitsHonored = runtime.GOOS != "windows"

// applyPerm sets the permission bits of path where the OS honors them.
func applyPerm(path string, perm os.FileMode) error {
	if !permBitsHonored {
		return nil
	}
	return os.Chmod(path, perm.Perm())
}
