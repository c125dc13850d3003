// Package graph provides serialization types for network topologies and
// layouts.
//
// This package defines the canonical wire format for netmap's topology data,
// used for dataset files, API payloads, stored topologies and the layout cache.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory graph
// model and external formats:
//
//   - [Dataset], [Node], [Link]: ingest/egress shape (this package)
//   - pkg/topology.Graph: in-memory model with resolved links
//   - [Layout]: positions and hierarchy metadata produced by a layout run
//
// # Dataset Format
//
// Datasets use a node-link format in JSON or YAML:
//
//	{
//	  "nodes": [{"id": "core-1", "type": "switch", "label": "Core", "status": "online"}],
//	  "links": [{"source": "core-1", "target": "dist-1"}]
//	}
//
// Positions (x, y) are optional on ingest and always present on egress.
//
// Common operations:
//
//	ds, _ := graph.ReadDatasetFile("site.json")    // File → Dataset
//	graph.WriteDatasetFile(ds, "site.yaml")        // Dataset → File (YAML by extension)
//	data, _ := graph.MarshalDataset(ds, "json")    // Dataset → []byte
//
// # Vocabularies
//
// Node types are a closed set ([DeviceTypes]); anything else is read as
// [DeviceUnknown]. Status is online unless explicitly "offline".
//
// # Concurrency
//
// All functions are safe for concurrent use; the types carry no shared state.
package graph
