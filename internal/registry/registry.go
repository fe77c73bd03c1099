package registry

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/docshelf/docshelf/internal/catalog"
	"github.com/docshelf/docshelf/internal/contenttype"
	"github.com/docshelf/docshelf/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Registry owns the live catalog for one bundle/storage pair. All methods
// are safe for concurrent use; imports are serialized.
type Registry struct {
	fs          afero.Fs
	bundleDir   string
	storageDir  string
	classifier  contenttype.Classifier
	extensions  map[string]bool
	onCollision CollisionPolicy
	log         zerolog.Logger

	mu       sync.Mutex
	snapshot *catalog.Catalog // nil until the first Refresh
}

// New validates opts and returns a Registry. It does not scan; call
// Refresh to build the first snapshot.
func New(opts Options) (*Registry, error) {
	if opts.BundleDir == "" {
		return nil, fmt.Errorf("bundle directory is required")
	}
	if opts.StorageDir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}

	bundleDir, err := filepath.Abs(opts.BundleDir)
	if err != nil {
		return nil, fmt.Errorf("resolving bundle directory: %w", err)
	}
	storageDir, err := filepath.Abs(opts.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("resolving storage directory: %w", err)
	}
	if bundleDir == storageDir {
		return nil, fmt.Errorf("bundle and storage must be different directories (both %s)", bundleDir)
	}

	policy, err := ParseCollisionPolicy(string(opts.OnCollision))
	if err != nil {
		return nil, err
	}

	r := &Registry{
		fs:          opts.Fs,
		bundleDir:   bundleDir,
		storageDir:  storageDir,
		classifier:  opts.Classifier,
		onCollision: policy,
		log:         zerolog.Nop(),
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.classifier == nil {
		table, err := contenttype.Default()
		if err != nil {
			return nil, fmt.Errorf("loading content types: %w", err)
		}
		r.classifier = table
	}
	if opts.Logger != nil {
		r.log = logger.Component(*opts.Logger, "registry")
	}
	if len(opts.BundleExtensions) > 0 {
		r.extensions = make(map[string]bool, len(opts.BundleExtensions))
		for _, ext := range opts.BundleExtensions {
			r.extensions[normalizeExt(ext)] = true
		}
	}

	return r, nil
}

// BundleDir returns the absolute bundle directory.
func (r *Registry) BundleDir() string { return r.bundleDir }

// StorageDir returns the absolute storage directory.
func (r *Registry) StorageDir() string { return r.storageDir }

// Refresh rescans both sources and replaces the live snapshot.
func (r *Registry) Refresh() *catalog.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.refreshLocked())
}

func (r *Registry) refreshLocked() *catalog.Catalog {
	r.snapshot = catalog.New(r.ListBundled(), r.ListImported())
	bundled, imported := r.snapshot.Counts()
	r.log.Info().Int("bundled", bundled).Int("imported", imported).Msg("catalog refreshed")
	return r.snapshot
}

// Catalog returns the live snapshot without rescanning. Before the first
// Refresh it is empty.
func (r *Registry) Catalog() *catalog.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot == nil {
		return catalog.New(nil, nil)
	}
	return clone(r.snapshot)
}

// Import copies sourcePath into the storage directory under its base name
// and appends the new record to the live snapshot. The new record's row is
// the last row of the returned Catalog. On failure the snapshot and the
// storage directory are left as they were.
func (r *Registry) Import(sourcePath string) (catalog.Record, error) {
	src, err := filepath.Abs(sourcePath)
	if err != nil {
		return catalog.Record{}, &ImportError{Source: sourcePath, Kind: ErrImportIO, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// The first import before any Refresh still needs the bundled rows in
	// front of it.
	if r.snapshot == nil {
		r.refreshLocked()
	}

	dst, err := r.copyIntoStorage(src)
	if err != nil {
		r.log.Warn().Err(err).Str("source", src).Msg("import failed")
		return catalog.Record{}, err
	}

	rec, err := r.buildRecord(dst, catalog.OriginImported)
	if err != nil {
		r.log.Debug().Err(err).Str("file", dst).Msg("metadata unavailable after import, using defaults")
		rec = fallbackRecord(dst)
	}

	r.snapshot = catalog.New(r.snapshot.Bundled, append(r.snapshot.Imported, rec))
	r.log.Info().
		Str("source", src).
		Str("target", dst).
		Int64("size", rec.Size).
		Str("type", rec.Type).
		Msg("imported")
	return rec, nil
}

func clone(c *catalog.Catalog) *catalog.Catalog {
	return &catalog.Catalog{
		ID:       c.ID,
		Bundled:  append([]catalog.Record(nil), c.Bundled...),
		Imported: append([]catalog.Record(nil), c.Imported...),
	}
}
