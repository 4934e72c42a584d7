package enums

import "fmt"

// GarmentType describes the sized garments the catalog sells.
type GarmentType string

const (
	GarmentPolo GarmentType = "polo"
	GarmentTee  GarmentType = "tee"
)

var validGarmentTypes = []GarmentType{
	GarmentPolo,
	GarmentTee,
}

// GarmentTypes returns the catalog order of garment types.
func GarmentTypes() []GarmentType {
	out := make([]GarmentType, len(validGarmentTypes))
	copy(out, validGarmentTypes)
	return out
}

// IsValid reports whether the value matches the canonical garment type enum.
func (g GarmentType) IsValid() bool {
	for _, candidate := range validGarmentTypes {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGarmentType converts the raw string to GarmentType.
func ParseGarmentType(value string) (GarmentType, error) {
	for _, candidate := range validGarmentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid garment type %q", value)
}
