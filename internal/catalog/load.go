package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the catalog format major version this build understands.
const SupportedMajor = "v1"

// Format identifies the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// document is the serialized catalog.
type document struct {
	Name      string     `json:"name"`
	Version   string     `json:"version"`
	Questions []Question `json:"questions"`
}

// FormatForPath picks a format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document, validates it against the catalog schema
// and the structural rules, and checks version compatibility.
func Parse(data []byte, format Format) (*Catalog, error) {
	raw, err := decodeAny(data, format)
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON so YAML and JSON input validate identically.
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize catalog: %w", err)
	}
	var doc any
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("normalize catalog: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var d document
	if err := json.Unmarshal(normalized, &d); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	version, err := checkVersion(d.Version)
	if err != nil {
		return nil, err
	}
	if err := validateQuestions(d.Questions); err != nil {
		return nil, err
	}
	return build(d.Name, version, d.Questions), nil
}

func decodeAny(data []byte, format Format) (any, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
	return raw, nil
}

// checkVersion canonicalizes a declared version. An empty version is
// accepted as-is.
func checkVersion(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid catalog version %q", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return "", fmt.Errorf("unsupported catalog version %s (want %s.x)", v, SupportedMajor)
	}
	return semver.Canonical(v), nil
}
