package contenttype

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed types.yaml
var defaultTypes []byte

// Parse validates and decodes a type table document. source names the
// document in error messages.
func Parse(data []byte, source string) (*File, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", source, err)
	}
	if !result.Valid {
		return nil, &SchemaError{Source: source, Issues: result.Issues}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &f, nil
}

// ParseFile reads and parses a type table file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Default returns the table built from the embedded types.yaml.
func Default() (*Table, error) {
	f, err := Parse(defaultTypes, "embedded types.yaml")
	if err != nil {
		return nil, err
	}
	return NewTable(f.Types), nil
}

// Load returns the embedded table overlaid with the entries of overridePath.
// A missing override file is not an error; an empty path skips the overlay.
func Load(overridePath string) (*Table, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if overridePath == "" {
		return base, nil
	}

	f, err := ParseFile(overridePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return nil, err
	}
	return base.Overlay(f.Types), nil
}

// checkVersion rejects tables outside SupportedVersions.
func checkVersion(version string) error {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing table version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing supported range: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("table version %s is not supported (want %s)", v, SupportedVersions)
	}
	return nil
}
