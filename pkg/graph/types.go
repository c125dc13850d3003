package graph

import (
	"strings"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// DeviceType is the closed vocabulary of node types. Anything the vocabulary
// does not know is normalized to [DeviceUnknown].
type DeviceType string

// Device types.
const (
	DevicePC       DeviceType = "pc"
	DeviceLaptop   DeviceType = "laptop"
	DeviceServer   DeviceType = "server"
	DeviceRouter   DeviceType = "router"
	DeviceSwitch   DeviceType = "switch"
	DeviceFirewall DeviceType = "firewall"
	DevicePrinter  DeviceType = "printer"
	DeviceUnknown  DeviceType = "unknown"
)

// DeviceTypes lists every known device type in display order.
var DeviceTypes = []DeviceType{
	DevicePC, DeviceLaptop, DeviceServer, DeviceRouter,
	DeviceSwitch, DeviceFirewall, DevicePrinter, DeviceUnknown,
}

// ParseDeviceType maps s onto the device vocabulary. Matching is case
// insensitive; empty or unrecognized values yield [DeviceUnknown].
func ParseDeviceType(s string) DeviceType {
	t := DeviceType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DeviceTypes {
		if t == known {
			return t
		}
	}
	return DeviceUnknown
}

// Status is the reachability state of a device.
type Status string

// Device states.
const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// ParseStatus maps s onto a device state. Anything other than "offline"
// is treated as online, matching how the dashboard renders devices.
func ParseStatus(s string) Status {
	if strings.EqualFold(strings.TrimSpace(s), string(StatusOffline)) {
		return StatusOffline
	}
	return StatusOnline
}

// =============================================================================
// Dataset - Topology Serialization
// =============================================================================

// Dataset is the canonical serialization format for network topologies.
// It is both the ingest shape handed to the graph model and the egress shape
// produced by a snapshot. Links always reference nodes by id.
type Dataset struct {
	Nodes []Node `json:"nodes" yaml:"nodes" bson:"nodes"`
	Links []Link `json:"links" yaml:"links" bson:"links"`
}

// Node is a device in the serialized topology. X and Y are optional on
// ingest; a snapshot always fills them in.
type Node struct {
	ID     string     `json:"id" yaml:"id" bson:"id"`
	Type   DeviceType `json:"type" yaml:"type" bson:"type"`
	Label  string     `json:"label" yaml:"label" bson:"label"`
	X      *float64   `json:"x,omitempty" yaml:"x,omitempty" bson:"x,omitempty"`
	Y      *float64   `json:"y,omitempty" yaml:"y,omitempty" bson:"y,omitempty"`
	Status Status     `json:"status" yaml:"status" bson:"status"`
}

// HasPosition reports whether both coordinates are present.
func (n Node) HasPosition() bool { return n.X != nil && n.Y != nil }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Link is a connection between two nodes, referenced by id. The order
// (source → target) defines the hierarchy direction.
type Link struct {
	Source string `json:"source" yaml:"source" bson:"source"`
	Target string `json:"target" yaml:"target" bson:"target"`
}

// Float returns a pointer to v. It is a convenience for building datasets
// with explicit positions.
func Float(v float64) *float64 { return &v }

// NodeCount returns the number of nodes in the dataset.
func (d Dataset) NodeCount() int { return len(d.Nodes) }

// LinkCount returns the number of links in the dataset.
func (d Dataset) LinkCount() int { return len(d.Links) }
