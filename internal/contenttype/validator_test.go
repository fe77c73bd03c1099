package contenttype

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestValidate_EmbeddedTable(t *testing.T) {
	result, err := Validate(defaultTypes)
	if err != nil {
		t.Fatalf("Validate(embedded) error: %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
		t.Fatal("embedded types.yaml should be valid")
	}
}

func TestValidateFile_Valid(t *testing.T) {
	result, err := ValidateFile(testPath("valid-override.yaml"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got %d issues: %v", len(result.Issues), result.Issues)
	}
}

func TestValidateFile_Invalid(t *testing.T) {
	invalidFiles := []struct {
		file    string
		desc    string
		keyword string
	}{
		{"invalid-missing-id.yaml", "entry without id", "required"},
		{"invalid-bad-extension.yaml", "extension with glob characters", "pattern"},
		{"invalid-unknown-field.yaml", "unknown entry field", "additionalProperties"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a %q issue for %s, got %v", tt.keyword, tt.desc, result.Issues)
			}
		})
	}
}

func TestValidate_InvalidYAML(t *testing.T) {
	if _, err := ValidateFile(testPath("not-yaml.yaml")); err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}

func TestValidate_NumericVersionRejected(t *testing.T) {
	result, err := Validate([]byte("version: 1.0\ntypes: []\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("a numeric version should fail the string type check")
	}
}

func TestValidateFile_Missing(t *testing.T) {
	if _, err := ValidateFile(testPath("does-not-exist.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	err := error(&SchemaError{
		Source: "types.yaml",
		Issues: []ValidationIssue{
			{Path: "/types/0", Message: "missing property 'id'", Keyword: "required"},
			{Message: "top-level problem"},
		},
	})
	msg := err.Error()
	for _, want := range []string{"types.yaml", "2 validation issue(s)", "/types/0: missing property 'id'", "top-level problem"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}

	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatal("errors.As should find *SchemaError")
	}
}
