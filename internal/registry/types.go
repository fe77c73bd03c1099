package registry

import (
	"fmt"

	"github.com/docshelf/docshelf/internal/contenttype"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// CollisionPolicy decides what Import does when the target name exists.
type CollisionPolicy string

const (
	// CollisionFail rejects the import with ErrImportCollision.
	CollisionFail CollisionPolicy = "fail"
	// CollisionRename stores the file as name-1.ext, name-2.ext, ...
	CollisionRename CollisionPolicy = "rename"
)

// ParseCollisionPolicy maps a setting value to a policy. Empty means fail.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case "", CollisionFail:
		return CollisionFail, nil
	case CollisionRename:
		return CollisionRename, nil
	}
	return "", fmt.Errorf("unknown collision policy %q (want %s or %s)", s, CollisionFail, CollisionRename)
}

// Options configures a Registry.
type Options struct {
	BundleDir  string // read-only source, never written
	StorageDir string // imports are copied here

	// Fs defaults to the OS filesystem.
	Fs afero.Fs

	// Classifier defaults to the embedded content type table.
	Classifier contenttype.Classifier

	// BundleExtensions restricts bundled files to these extensions
	// (case-insensitive, leading dot optional). Empty accepts every file.
	BundleExtensions []string

	OnCollision CollisionPolicy

	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}
