package enums

import "fmt"

// Accessory describes the unsized add-on products.
type Accessory string

const (
	AccessoryCap Accessory = "cap"
	AccessoryMug Accessory = "mug"
)

var validAccessories = []Accessory{
	AccessoryCap,
	AccessoryMug,
}

// Accessories returns the catalog order of accessories.
func Accessories() []Accessory {
	out := make([]Accessory, len(validAccessories))
	copy(out, validAccessories)
	return out
}

// IsValid reports whether the value matches the canonical accessory enum.
func (a Accessory) IsValid() bool {
	for _, candidate := range validAccessories {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAccessory converts the raw string to Accessory.
func ParseAccessory(value string) (Accessory, error) {
	for _, candidate := range validAccessories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid accessory %q", value)
}
