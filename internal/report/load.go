package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFixture is returned by Load for unknown file extensions.
var ErrUnsupportedFixture = errors.New("unsupported report file type")

// Load reads a report from a .json, .yaml or .yml file and assigns
// identifiers to records that lack one.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var r *Report
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		r, err = DecodeJSON(data)
	case ".yaml", ".yml":
		r, err = DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFixture, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return r, nil
}

// DecodeJSON decodes a report and assigns missing identifiers.
func DecodeJSON(data []byte) (*Report, error) {
	r := NewReport()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(r); err != nil {
		return nil, fmt.Errorf("failed to decode report JSON: %w", err)
	}
	r.EnsureLocalIDs()
	return r, nil
}

// DecodeYAML decodes a report written in YAML using the same field names
// as the JSON form.
func DecodeYAML(data []byte) (*Report, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode report YAML: %w", err)
	}

	// Round-trip through JSON so the json tags are the only field mapping.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert report YAML: %w", err)
	}
	return DecodeJSON(raw)
}
