// Package cache stores computed layouts so repeated runs over an unchanged
// dataset skip the force simulation.
//
// Keys are derived from a content hash of the dataset plus the options that
// influence the result, so any edit to the topology or the canvas produces
// a fresh key. Entries never need explicit invalidation.
//
// Two backends exist: [NullCache] for when caching is disabled, and
// [FileCache] for the CLI, which stores snappy-compressed entries under the
// user cache directory.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// Expired or unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs besides the dataset that change a layout.
type LayoutKeyOpts struct {
	Algorithm  string  `json:"algorithm"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	NodeRadius float64 `json:"node_radius"`
	Threshold  int     `json:"threshold"`
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey generates a key for a layout of the dataset with the given hash.
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey generates a key for a rendering of the given layout.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
