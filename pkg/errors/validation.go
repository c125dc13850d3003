package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxIDLength bounds node ids and topology names.
const MaxIDLength = 256

// ValidateNodeID validates a node id supplied through an outer surface.
// The graph model itself accepts any non-empty string; this check keeps
// ids printable so they survive DOT output, store keys and log lines.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", MaxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}
	return nil
}

// topologyNameRegex matches store names: letters, digits, dot, dash,
// underscore and space, starting with a letter or digit.
var topologyNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._ -]*$`)

// ValidateTopologyName validates the name of a stored topology. Names end
// up in file paths and Redis keys, so path separators and traversal
// sequences are rejected.
func ValidateTopologyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "topology name cannot be empty")
	}
	if len(name) > MaxIDLength {
		return New(ErrCodeInvalidName, "topology name too long (max %d characters)", MaxIDLength)
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "topology name cannot contain path traversal sequences (..)")
	}
	if !topologyNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid topology name: %q", name)
	}
	return nil
}
