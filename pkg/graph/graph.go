package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Serialization formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// =============================================================================
// Dataset Serialization API
// =============================================================================

// FormatFromPath infers the serialization format from a file extension.
// Unknown extensions default to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// MarshalDataset converts a dataset to bytes in the given format.
func MarshalDataset(d Dataset, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDataset(d, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDataset decodes bytes in the given format into a dataset.
func UnmarshalDataset(data []byte, format string) (Dataset, error) {
	return ReadDataset(bytes.NewReader(data), format)
}

// WriteDataset encodes d to w. JSON output is indented for readability.
func WriteDataset(d Dataset, w io.Writer, format string) error {
	d = withEmptySlices(d)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// ReadDataset decodes a dataset from r. Device types and states are
// normalized onto their closed vocabularies.
func ReadDataset(r io.Reader, format string) (Dataset, error) {
	var d Dataset
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
			return Dataset{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return Dataset{}, fmt.Errorf("decode: %w", err)
		}
	default:
		return Dataset{}, fmt.Errorf("unsupported format %q", format)
	}
	return Normalize(d), nil
}

// WriteDatasetFile writes a dataset to path, choosing the format from the
// file extension.
func WriteDatasetFile(d Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDataset(d, f, FormatFromPath(path))
}

// ReadDatasetFile reads a dataset from path, choosing the format from the
// file extension.
func ReadDatasetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f, FormatFromPath(path))
}

// Normalize maps node types and states onto their vocabularies. It does not
// touch ids or links; referential checks belong to the graph model.
func Normalize(d Dataset) Dataset {
	for i := range d.Nodes {
		d.Nodes[i].Type = ParseDeviceType(string(d.Nodes[i].Type))
		d.Nodes[i].Status = ParseStatus(string(d.Nodes[i].Status))
	}
	return d
}

func withEmptySlices(d Dataset) Dataset {
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Links == nil {
		d.Links = []Link{}
	}
	return d
}
