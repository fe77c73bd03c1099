package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryUnreadable is returned by Scan when a source directory
	// cannot be listed. ListBundled and ListImported swallow it.
	ErrDirectoryUnreadable = errors.New("directory unreadable")

	// ErrMetadataUnavailable marks an entry whose file info could not be read.
	ErrMetadataUnavailable = errors.New("metadata unavailable")

	// ErrImportCollision is returned when the target name already exists in
	// storage and the collision policy is CollisionFail.
	ErrImportCollision = errors.New("a file with the same name already exists")

	// ErrImportIO covers every other import failure.
	ErrImportIO = errors.New("import failed")

	errNotRegular   = errors.New("not a regular file")
	errExcludedName = errors.New("name is reserved for platform bookkeeping files")
)

// ImportError describes a failed Import. errors.Is matches both the kind
// (ErrImportCollision or ErrImportIO) and the underlying cause.
type ImportError struct {
	Source string
	Target string
	Kind   error
	Err    error
}

func (e *ImportError) Error() string {
	msg := fmt.Sprintf("importing %s", e.Source)
	if e.Target != "" {
		msg += " into " + e.Target
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ImportError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
