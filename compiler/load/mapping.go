package load

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/modeldraw"
)

// Mapping translates a relation's nominal target name to the name of the
// entity it actually refers to. Name is matched case-insensitively.
type Mapping struct {
	Name   string `json:"name" yaml:"name"`
	MapsTo string `json:"maps_to" yaml:"maps_to"`
}

// Format of a mapping file.
type Format int

// Supported mapping file formats.
const (
	FormatJSON Format = iota
	FormatYAML
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// FormatOf infers the mapping file format from its extension.
// Anything that is not .yaml or .yml is read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadMappings reads the mapping table at path. An empty path means no
// table and is not an error.
func LoadMappings(path string) ([]*Mapping, error) {
	if path == "" {
		return nil, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read mappings %s: %w", path, err)
	}
	ms, err := UnmarshalMappings(buf, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("load: mappings %s: %w", path, err)
	}
	return ms, nil
}

// UnmarshalMappings decodes a mapping table and checks that every entry
// has both keys set. Entry order is preserved.
func UnmarshalMappings(buf []byte, format Format) ([]*Mapping, error) {
	var ms []*Mapping
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(buf, &ms); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(buf, &ms); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	if err := ValidateMappings(ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// ValidateMappings reports every entry with an empty name or target.
func ValidateMappings(ms []*Mapping) error {
	var errs []error
	for i, m := range ms {
		path := fmt.Sprintf("mappings[%d]", i)
		switch {
		case m == nil:
			errs = append(errs, modeldraw.NewMissingKeyError(path, "name"))
		case m.Name == "":
			errs = append(errs, modeldraw.NewMissingKeyError(path, "name"))
		case m.MapsTo == "":
			errs = append(errs, modeldraw.NewMissingKeyError(path, "maps_to"))
		}
	}
	return modeldraw.NewAggregateError(errs...)
}
