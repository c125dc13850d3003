package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/netmap/pkg/graph"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashDataset hashes the canonical JSON form of d. Node and link order
// matter: they decide the initial circle placement and hierarchy tie
// breaks, so reordering yields a different key.
func HashDataset(d graph.Dataset) (string, error) {
	data, err := graph.MarshalDataset(d, graph.FormatJSON)
	if err != nil {
		return "", fmt.Errorf("hash dataset: %w", err)
	}
	return Hash(data), nil
}
