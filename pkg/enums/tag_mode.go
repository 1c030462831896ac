package enums

import (
	"fmt"
	"strings"
)

// TagMode describes how the purchased vehicle gets its license plate.
type TagMode string

const (
	TagModeUnset                 TagMode = ""
	TagModeNewPlate              TagMode = "new_plate"
	TagModeTransferExistingPlate TagMode = "transfer_existing_plate"
	TagModeTempTag               TagMode = "temp_tag"
)

var validTagModes = []TagMode{
	TagModeNewPlate,
	TagModeTransferExistingPlate,
	TagModeTempTag,
}

// String implements fmt.Stringer.
func (t TagMode) String() string {
	return string(t)
}

// IsValid reports whether the value is a known, non-empty TagMode.
func (t TagMode) IsValid() bool {
	for _, candidate := range validTagModes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTagMode converts raw input into a TagMode. Blank input parses to TagModeUnset.
func ParseTagMode(value string) (TagMode, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return TagModeUnset, nil
	}
	for _, candidate := range validTagModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tag mode %q", value)
}
