package contenttype

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_classifier.go -package=mocks github.com/docshelf/docshelf/internal/contenttype Classifier

import "errors"

// Unknown is the identifier recorded when a file cannot be classified.
const Unknown = "Unknown"

// DefaultIcon is returned for identifiers without a configured icon.
const DefaultIcon = "doc"

// SupportedVersions is the semver range of type table files this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// ErrUnclassified is returned by Classify when no identifier matches.
var ErrUnclassified = errors.New("content type not recognized")

// Classifier resolves a file name and its leading bytes to a content type
// identifier.
type Classifier interface {
	Classify(name string, head []byte) (string, error)
}

// Entry describes one content type.
type Entry struct {
	ID          string   `yaml:"id" json:"id"`
	MIME        string   `yaml:"mime,omitempty" json:"mime,omitempty"`
	Extensions  []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Icon        string   `yaml:"icon,omitempty" json:"icon,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// File is the on-disk shape of types.yaml.
type File struct {
	Version string  `yaml:"version"`
	Types   []Entry `yaml:"types"`
}
