package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "core-switch-1", false},
		{"unicode", "交换机-1", false},
		{"spaces", "rack 4 pc", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %s", GetCode(err))
			}
		})
	}
}

func TestValidateTopologyName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "office", false},
		{"with dash and dot", "dc-1.floor_2", false},
		{"with space", "Head Office", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"leading dot", ".hidden", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "a..b", true},
		{"too long", strings.Repeat("n", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopologyName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTopologyName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("code = %s", GetCode(err))
			}
		})
	}
}
