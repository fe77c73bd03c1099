package registry

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docshelf/docshelf/internal/catalog"
	"github.com/docshelf/docshelf/internal/contenttype"
)

// headLen is how many leading bytes are handed to the classifier.
const headLen = 512

// excludedNames are platform bookkeeping files that never become records.
var excludedNames = map[string]bool{
	".DS_Store":   true,
	"Thumbs.db":   true,
	"desktop.ini": true,
	"Icon\r":      true,
}

// shouldExclude reports whether name is hidden or a bookkeeping artifact.
func shouldExclude(name string) bool {
	return excludedNames[name] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$")
}

// Scan lists one source directory. Unlike ListBundled and ListImported it
// reports an unreadable directory as an error wrapping
// ErrDirectoryUnreadable.
func (r *Registry) Scan(origin catalog.Origin) ([]catalog.Record, error) {
	switch origin {
	case catalog.OriginBundled:
		return r.scan(r.bundleDir, origin)
	case catalog.OriginImported:
		return r.scan(r.storageDir, origin)
	}
	return nil, fmt.Errorf("unknown origin %q", origin)
}

// ListBundled returns the records of the bundle directory sorted by title.
// An unreadable directory yields an empty list.
func (r *Registry) ListBundled() []catalog.Record {
	return r.bestEffort(catalog.OriginBundled)
}

// ListImported returns the records of the storage directory sorted by title.
// An unreadable or missing directory yields an empty list.
func (r *Registry) ListImported() []catalog.Record {
	return r.bestEffort(catalog.OriginImported)
}

func (r *Registry) bestEffort(origin catalog.Origin) []catalog.Record {
	records, err := r.Scan(origin)
	if err != nil {
		event := r.log.Warn()
		if errors.Is(err, fs.ErrNotExist) {
			event = r.log.Debug()
		}
		event.Err(err).Str("origin", string(origin)).Msg("listing degraded to empty")
		return []catalog.Record{}
	}
	return records
}

func (r *Registry) scan(dir string, origin catalog.Origin) ([]catalog.Record, error) {
	entries, err := r.readDirNames(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryUnreadable, dir, err)
	}

	records := make([]catalog.Record, 0, len(entries))
	for _, name := range entries {
		if shouldExclude(name) {
			continue
		}
		if origin == catalog.OriginBundled && !r.extensionAllowed(name) {
			continue
		}

		rec, err := r.buildRecord(filepath.Join(dir, name), origin)
		if err != nil {
			if !errors.Is(err, errNotRegular) {
				r.log.Debug().Err(err).Str("file", name).Msg("skipping entry")
			}
			continue
		}
		records = append(records, rec)
	}

	sortRecords(records)
	r.log.Debug().Str("dir", dir).Str("origin", string(origin)).Int("count", len(records)).Msg("scanned")
	return records, nil
}

func (r *Registry) readDirNames(dir string) ([]string, error) {
	f, err := r.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}

// buildRecord stats path and classifies it. Symlinks are followed; anything
// that does not resolve to a regular file returns errNotRegular.
func (r *Registry) buildRecord(path string, origin catalog.Origin) (catalog.Record, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("%w: %w", ErrMetadataUnavailable, err)
	}
	if !info.Mode().IsRegular() {
		return catalog.Record{}, errNotRegular
	}

	size := info.Size()
	if size < 0 {
		size = 0
	}
	return catalog.Record{
		Title:    titleFor(info.Name(), path),
		Size:     size,
		Type:     r.classify(path),
		Location: path,
		Origin:   origin,
	}, nil
}

// fallbackRecord is used when a freshly imported file cannot be stat'ed.
func fallbackRecord(path string) catalog.Record {
	return catalog.Record{
		Title:    titleFor("", path),
		Size:     0,
		Type:     contenttype.Unknown,
		Location: path,
		Origin:   catalog.OriginImported,
	}
}

func (r *Registry) classify(path string) string {
	name := filepath.Base(path)
	id, err := r.classifier.Classify(name, r.readHead(path))
	if err != nil || id == "" {
		return contenttype.Unknown
	}
	return id
}

// readHead returns up to headLen leading bytes, or nil when unreadable.
func (r *Registry) readHead(path string) []byte {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	buf := make([]byte, headLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil
	}
	return buf[:n]
}

func (r *Registry) extensionAllowed(name string) bool {
	if len(r.extensions) == 0 {
		return true
	}
	return r.extensions[normalizeExt(filepath.Ext(name))]
}

func titleFor(name, path string) string {
	if name != "" {
		return name
	}
	return filepath.Base(path)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// sortRecords orders by title, then location, so listings are stable
// regardless of the order the filesystem returns entries in.
func sortRecords(records []catalog.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Title != records[j].Title {
			return records[i].Title < records[j].Title
		}
		return records[i].Location < records[j].Location
	})
}
