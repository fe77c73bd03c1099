// Package catalog holds the document records produced by a registry scan and
// the ordered snapshot that maps display rows back to records. Rows are the
// concatenation of bundled records followed by imported records.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// Origin identifies which source directory produced a record.
type Origin string

const (
	OriginBundled  Origin = "bundled"
	OriginImported Origin = "imported"
)

// ParseOrigin maps a user-supplied origin name to an Origin.
func ParseOrigin(s string) (Origin, error) {
	switch Origin(s) {
	case OriginBundled, OriginImported:
		return Origin(s), nil
	}
	return "", fmt.Errorf("unknown origin %q (want %s or %s)", s, OriginBundled, OriginImported)
}

// Record is one document in the catalog. All fields are captured when the
// record is built and never re-read from the filesystem.
type Record struct {
	Title    string `json:"title" yaml:"title"`
	Size     int64  `json:"size" yaml:"size"`
	Type     string `json:"type" yaml:"type"`
	Location string `json:"location" yaml:"location"`
	Origin   Origin `json:"origin" yaml:"origin"`
}

// ErrIndexOutOfRange is returned when a row does not address a record.
var ErrIndexOutOfRange = errors.New("row index out of range")

// IndexError reports an invalid row together with the catalog size.
type IndexError struct {
	Row int
	Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("row %d: %v (catalog has %d rows)", e.Row, ErrIndexOutOfRange, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// Catalog is an immutable snapshot of bundled and imported records.
// ID changes whenever the registry produces a new snapshot, so a caller
// holding a row mapping can tell when it went stale.
type Catalog struct {
	ID       uuid.UUID
	Bundled  []Record
	Imported []Record
}

// New builds a snapshot with a fresh ID. The slices are copied.
func New(bundled, imported []Record) *Catalog {
	return &Catalog{
		ID:       uuid.New(),
		Bundled:  append([]Record(nil), bundled...),
		Imported: append([]Record(nil), imported...),
	}
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	return len(c.Bundled) + len(c.Imported)
}

// Counts returns the number of bundled and imported rows.
func (c *Catalog) Counts() (bundled, imported int) {
	return len(c.Bundled), len(c.Imported)
}

// Records returns all records in row order.
func (c *Catalog) Records() []Record {
	out := make([]Record, 0, c.Len())
	out = append(out, c.Bundled...)
	return append(out, c.Imported...)
}

// Resolve returns the record displayed at row.
func (c *Catalog) Resolve(row int) (Record, error) {
	if row < 0 || row >= c.Len() {
		return Record{}, &IndexError{Row: row, Len: c.Len()}
	}
	if row < len(c.Bundled) {
		return c.Bundled[row], nil
	}
	return c.Imported[row-len(c.Bundled)], nil
}

// FindByLocation returns the row of the record stored at location.
func (c *Catalog) FindByLocation(location string) (int, bool) {
	return FindByLocation(c.Records(), location)
}

// FindByLocation scans records for the first one whose location matches
// after both sides are made absolute and cleaned.
func FindByLocation(records []Record, location string) (int, bool) {
	want := normalize(location)
	if want == "" {
		return -1, false
	}
	for i, r := range records {
		if normalize(r.Location) == want {
			return i, true
		}
	}
	return -1, false
}

func normalize(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
