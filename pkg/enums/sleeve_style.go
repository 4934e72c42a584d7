package enums

import "fmt"

// SleeveStyle describes the surcharged sleeve variants. Garments without an
// assigned style are short-sleeve, which is derived and never stored.
type SleeveStyle string

const (
	SleeveLong    SleeveStyle = "long"
	SleeveRuffled SleeveStyle = "ruffled"
)

var validSleeveStyles = []SleeveStyle{
	SleeveLong,
	SleeveRuffled,
}

// SleeveStyles returns the clamp order of sleeve styles (long first).
func SleeveStyles() []SleeveStyle {
	out := make([]SleeveStyle, len(validSleeveStyles))
	copy(out, validSleeveStyles)
	return out
}

// IsValid reports whether the value matches the canonical sleeve style enum.
func (s SleeveStyle) IsValid() bool {
	for _, candidate := range validSleeveStyles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSleeveStyle converts the raw string to SleeveStyle.
func ParseSleeveStyle(value string) (SleeveStyle, error) {
	for _, candidate := range validSleeveStyles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sleeve style %q", value)
}
