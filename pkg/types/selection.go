package types

import "github.com/hanifwidodo/merchorder-backend/pkg/enums"

// GarmentQuantities maps garment type → size id → unit count.
type GarmentQuantities map[enums.GarmentType]map[string]int

// SleevePair carries the surcharged sleeve counts for one garment type.
// The short-sleeve remainder is derived, never stored.
type SleevePair struct {
	Long    int `json:"long"`
	Ruffled int `json:"ruffled"`
}

// Total returns the number of garments assigned a surcharged sleeve style.
func (p SleevePair) Total() int {
	return p.Long + p.Ruffled
}

// SleeveCounts maps garment type → surcharged sleeve counts.
type SleeveCounts map[enums.GarmentType]SleevePair

// AccessoryQuantities maps accessory → unit count.
type AccessoryQuantities map[enums.Accessory]int

// Selection is the product portion of an order: what was picked, in which
// sizes, with which sleeve styles. It appears both in drafts and in persisted
// records; the JSON field names are part of the stored record layout and must
// not change.
type Selection struct {
	GarmentQuantities   GarmentQuantities   `json:"garmentQuantities"`
	SleeveCounts        SleeveCounts        `json:"sleeveCounts"`
	AccessoryQuantities AccessoryQuantities `json:"accessoryQuantities"`
}

// NewSelection returns an empty selection with all maps allocated.
func NewSelection() Selection {
	garments := GarmentQuantities{}
	sleeves := SleeveCounts{}
	for _, g := range enums.GarmentTypes() {
		garments[g] = map[string]int{}
		sleeves[g] = SleevePair{}
	}
	accessories := AccessoryQuantities{}
	for _, a := range enums.Accessories() {
		accessories[a] = 0
	}
	return Selection{
		GarmentQuantities:   garments,
		SleeveCounts:        sleeves,
		AccessoryQuantities: accessories,
	}
}

// Clone deep-copies the selection so records stay immutable after submission.
func (s Selection) Clone() Selection {
	out := Selection{
		GarmentQuantities:   GarmentQuantities{},
		SleeveCounts:        SleeveCounts{},
		AccessoryQuantities: AccessoryQuantities{},
	}
	for g, sizes := range s.GarmentQuantities {
		copied := make(map[string]int, len(sizes))
		for id, qty := range sizes {
			copied[id] = qty
		}
		out.GarmentQuantities[g] = copied
	}
	for g, pair := range s.SleeveCounts {
		out.SleeveCounts[g] = pair
	}
	for a, qty := range s.AccessoryQuantities {
		out.AccessoryQuantities[a] = qty
	}
	return out
}

// UnitsOf sums the size quantities for one garment type.
func (s Selection) UnitsOf(garment enums.GarmentType) int {
	total := 0
	for _, qty := range s.GarmentQuantities[garment] {
		total += qty
	}
	return total
}

// AccessoryUnits sums all accessory quantities.
func (s Selection) AccessoryUnits() int {
	total := 0
	for _, qty := range s.AccessoryQuantities {
		total += qty
	}
	return total
}
