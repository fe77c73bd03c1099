package registry

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// maxRenameAttempts bounds the name-N.ext search under CollisionRename.
const maxRenameAttempts = 1000

// storageDirPerm is used when Import has to create the storage directory.
const storageDirPerm os.FileMode = 0700

// copyIntoStorage copies src into the storage directory and returns the
// path it was written to. It never overwrites an existing file. On failure
// the partial target is removed, and so is a storage directory created
// by this call.
func (r *Registry) copyIntoStorage(src string) (string, error) {
	info, err := r.fs.Stat(src)
	if err != nil {
		return "", &ImportError{Source: src, Kind: ErrImportIO, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &ImportError{Source: src, Kind: ErrImportIO, Err: errNotRegular}
	}
	base := filepath.Base(src)
	if shouldExclude(base) {
		return "", &ImportError{Source: src, Kind: ErrImportIO, Err: errExcludedName}
	}

	_, statErr := r.fs.Stat(r.storageDir)
	createdStorage := errors.Is(statErr, fs.ErrNotExist)
	if err := r.fs.MkdirAll(r.storageDir, storageDirPerm); err != nil {
		return "", &ImportError{Source: src, Target: r.storageDir, Kind: ErrImportIO, Err: err}
	}

	dst, out, err := r.createTarget(src, base, info.Mode().Perm())
	if err != nil {
		r.discard("", createdStorage)
		return "", err
	}

	if err := copyContents(r.fs, src, out); err != nil {
		out.Close()
		r.discard(dst, createdStorage)
		return "", &ImportError{Source: src, Target: dst, Kind: ErrImportIO, Err: err}
	}
	if err := out.Close(); err != nil {
		r.discard(dst, createdStorage)
		return "", &ImportError{Source: src, Target: dst, Kind: ErrImportIO, Err: err}
	}

	return dst, nil
}

// discard removes a partial target and, when this import created the
// storage directory, the directory too if it is still empty.
func (r *Registry) discard(dst string, createdStorage bool) {
	if dst != "" {
		r.fs.Remove(dst)
	}
	if !createdStorage {
		return
	}
	if empty, err := afero.IsEmpty(r.fs, r.storageDir); err == nil && empty {
		r.fs.Remove(r.storageDir)
	}
}

// createTarget exclusively creates the destination file. Under
// CollisionRename it walks name-1.ext, name-2.ext, ... until a free name
// is found.
func (r *Registry) createTarget(src, base string, perm os.FileMode) (string, afero.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if perm == 0 {
		perm = 0644
	}

	dst := filepath.Join(r.storageDir, base)
	out, err := r.fs.OpenFile(dst, flags, perm)
	if err == nil {
		return dst, out, nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return "", nil, &ImportError{Source: src, Target: dst, Kind: ErrImportIO, Err: err}
	}
	if r.onCollision != CollisionRename {
		return "", nil, &ImportError{Source: src, Target: dst, Kind: ErrImportCollision, Err: err}
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; i <= maxRenameAttempts; i++ {
		candidate := filepath.Join(r.storageDir, fmt.Sprintf("%s-%d%s", stem, i, ext))
		out, err = r.fs.OpenFile(candidate, flags, perm)
		if err == nil {
			r.log.Debug().Str("target", candidate).Msg("renamed to avoid collision")
			return candidate, out, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", nil, &ImportError{Source: src, Target: candidate, Kind: ErrImportIO, Err: err}
		}
	}
	return "", nil, &ImportError{
		Source: src,
		Target: dst,
		Kind:   ErrImportCollision,
		Err:    fmt.Errorf("no free name after %d attempts", maxRenameAttempts),
	}
}

// copyContents streams src into out and syncs it.
func copyContents(fsys afero.Fs, src string, out afero.File) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
