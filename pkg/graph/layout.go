package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Layout algorithm names.
const (
	AlgorithmHybrid   = "hybrid"
	AlgorithmCircular = "circular"
	AlgorithmGrid     = "grid"
	AlgorithmRadial   = "radial"
)

// Algorithms lists all supported layout algorithms.
var Algorithms = []string{AlgorithmHybrid, AlgorithmCircular, AlgorithmGrid, AlgorithmRadial}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x" bson:"x"`
	Y float64 `json:"y" yaml:"y" bson:"y"`
}

// Level is the serialized hierarchy information of a single node.
type Level struct {
	Level     int      `json:"level" bson:"level"`
	InDegree  int      `json:"inDegree" bson:"in_degree"`
	OutDegree int      `json:"outDegree" bson:"out_degree"`
	Children  []string `json:"children,omitempty" bson:"children,omitempty"`
	Parents   []string `json:"parents,omitempty" bson:"parents,omitempty"`
}

// Layout is the serialized result of a layout run: the settled positions,
// the hierarchy metadata used to compute them, and the laid-out dataset.
type Layout struct {
	Algorithm     string           `json:"algorithm" bson:"algorithm"`
	Width         float64          `json:"width" bson:"width"`
	Height        float64          `json:"height" bson:"height"`
	Positions     map[string]Point `json:"positions" bson:"positions"`
	NodeHierarchy map[string]Level `json:"nodeHierarchy,omitempty" bson:"node_hierarchy,omitempty"`
	MaxLevel      int              `json:"maxLevel" bson:"max_level"`
	Dataset       Dataset          `json:"dataset" bson:"dataset"`
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Algorithm == "" {
		l.Algorithm = AlgorithmHybrid
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
