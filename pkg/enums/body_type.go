package enums

import (
	"fmt"
	"strings"
)

// BodyType selects the registration weight schedule for a vehicle.
type BodyType string

const (
	BodyTypeAuto  BodyType = "auto"
	BodyTypeTruck BodyType = "truck"
	BodyTypeVan   BodyType = "van"
	BodyTypeOther BodyType = "other"
)

var validBodyTypes = []BodyType{
	BodyTypeAuto,
	BodyTypeTruck,
	BodyTypeVan,
	BodyTypeOther,
}

// String implements fmt.Stringer.
func (b BodyType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BodyType.
func (b BodyType) IsValid() bool {
	for _, candidate := range validBodyTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// OrDefault returns the body type, or BodyTypeAuto when it is blank or unknown.
func (b BodyType) OrDefault() BodyType {
	if b.IsValid() {
		return b
	}
	return BodyTypeAuto
}

// ParseBodyType converts raw input into a BodyType.
func ParseBodyType(value string) (BodyType, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validBodyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid body type %q", value)
}
