package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Format selects the encoding used by Export.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Row is a record annotated with its position for export.
type Row struct {
	Row    int `json:"row" yaml:"row"`
	Record `yaml:",inline"`
}

// Snapshot is the exported document.
type Snapshot struct {
	ID       string `json:"id" yaml:"id"`
	Bundled  int    `json:"bundled" yaml:"bundled"`
	Imported int    `json:"imported" yaml:"imported"`
	Rows     []Row  `json:"rows" yaml:"rows"`
}

// Snapshot converts the catalog into its export form. When filter is
// non-empty only rows of that origin are kept; row numbers are unaffected.
func (c *Catalog) Snapshot(filter Origin) Snapshot {
	bundled, imported := c.Counts()
	s := Snapshot{
		ID:       c.ID.String(),
		Bundled:  bundled,
		Imported: imported,
		Rows:     []Row{},
	}
	for i, r := range c.Records() {
		if filter != "" && r.Origin != filter {
			continue
		}
		s.Rows = append(s.Rows, Row{Row: i, Record: r})
	}
	return s
}

// Export writes the catalog to w in the given format.
func Export(w io.Writer, c *Catalog, format Format, filter Origin) error {
	snap := c.Snapshot(filter)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
