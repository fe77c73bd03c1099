package contenttype

import (
	"mime"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
)

// sniffLen is how many leading bytes http.DetectContentType considers.
const sniffLen = 512

// Table maps extensions and MIME types to identifiers and identifiers to
// icons. It is immutable once built and safe for concurrent use.
type Table struct {
	entries map[string]Entry
	byExt   map[string]string
	byMIME  map[string]string
}

// NewTable indexes entries. Later entries win on duplicate ids, extensions
// or MIME types.
func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: make(map[string]Entry, len(entries)),
		byExt:   make(map[string]string),
		byMIME:  make(map[string]string),
	}
	for _, e := range entries {
		t.add(e)
	}
	return t
}

func (t *Table) add(e Entry) {
	t.entries[e.ID] = e
	for _, ext := range e.Extensions {
		t.byExt[normalizeExt(ext)] = e.ID
	}
	if e.MIME != "" {
		t.byMIME[strings.ToLower(e.MIME)] = e.ID
	}
}

// Overlay returns a new table with entries layered over t.
func (t *Table) Overlay(entries []Entry) *Table {
	all := make([]Entry, 0, len(t.entries)+len(entries))
	all = append(all, t.Entries()...)
	all = append(all, entries...)
	return NewTable(all)
}

// Entries returns all entries sorted by id.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns the entry for id.
func (t *Table) Lookup(id string) (Entry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// Icon returns the icon name for id, or DefaultIcon.
func (t *Table) Icon(id string) string {
	if e, ok := t.entries[id]; ok && e.Icon != "" {
		return e.Icon
	}
	return DefaultIcon
}

// Describe returns a human-readable description for id, falling back to id.
func (t *Table) Describe(id string) string {
	if e, ok := t.entries[id]; ok && e.Description != "" {
		return e.Description
	}
	return id
}

// Classify resolves a file to an identifier. The extension table is
// consulted first, then the system MIME registry, then content sniffing of
// head. MIME types the table does not know are returned as-is.
func (t *Table) Classify(name string, head []byte) (string, error) {
	ext := normalizeExt(filepath.Ext(name))
	if ext != "" {
		if id, ok := t.byExt[ext]; ok {
			return id, nil
		}
		if mt := baseMIME(mime.TypeByExtension("." + ext)); mt != "" {
			return t.fromMIME(mt), nil
		}
	}

	if len(head) == 0 {
		return "", ErrUnclassified
	}
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	mt := baseMIME(http.DetectContentType(head))
	if mt == "" || mt == "application/octet-stream" {
		return "", ErrUnclassified
	}
	return t.fromMIME(mt), nil
}

func (t *Table) fromMIME(mt string) string {
	if id, ok := t.byMIME[mt]; ok {
		return id
	}
	return mt
}

func baseMIME(v string) string {
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
