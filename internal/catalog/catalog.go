package catalog

import (
	"fmt"

	"github.com/hanifwidodo/merchorder-backend/pkg/enums"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
)

// Size describes a single garment size option and its surcharge over the
// garment base price. Prices are whole rupiah, never fractional.
type Size struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Surcharge int64  `json:"surcharge"`
}

// Garment is a priced garment product with its available sizes.
type Garment struct {
	Type      enums.GarmentType `json:"type"`
	Label     string            `json:"label"`
	BasePrice int64             `json:"basePrice"`
	Sizes     []Size            `json:"sizes"`
}

// SleeveOption is a per-unit garment upgrade (long sleeve, ruffled sleeve).
type SleeveOption struct {
	Style     enums.SleeveStyle `json:"style"`
	Label     string            `json:"label"`
	Surcharge int64             `json:"surcharge"`
}

// AccessoryItem is a flat-priced accessory product.
type AccessoryItem struct {
	Type  enums.Accessory `json:"type"`
	Label string          `json:"label"`
	Price int64           `json:"price"`
}

// Catalog holds the full price list. It is immutable after construction;
// handlers and the pricing engine share one instance.
type Catalog struct {
	Garments      map[enums.GarmentType]Garment      `json:"garments"`
	SleeveOptions map[enums.SleeveStyle]SleeveOption `json:"sleeveOptions"`
	Accessories   map[enums.Accessory]AccessoryItem  `json:"accessories"`
}

// standardSizes is shared by both garments: S through XL carry no surcharge,
// extended sizes step up in fixed increments.
func standardSizes() []Size {
	return []Size{
		{ID: "S", Label: "S", Surcharge: 0},
		{ID: "M", Label: "M", Surcharge: 0},
		{ID: "L", Label: "L", Surcharge: 0},
		{ID: "XL", Label: "XL", Surcharge: 0},
		{ID: "XXL", Label: "XXL", Surcharge: 5000},
		{ID: "XXXL", Label: "3XL", Surcharge: 10000},
		{ID: "XXXXL", Label: "4XL", Surcharge: 15000},
		{ID: "XXXXXL", Label: "5XL", Surcharge: 20000},
	}
}

// Default returns the production price list.
func Default() *Catalog {
	return &Catalog{
		Garments: map[enums.GarmentType]Garment{
			enums.GarmentPolo: {
				Type:      enums.GarmentPolo,
				Label:     "Polo Shirt",
				BasePrice: 85000,
				Sizes:     standardSizes(),
			},
			enums.GarmentTee: {
				Type:      enums.GarmentTee,
				Label:     "T-Shirt",
				BasePrice: 75000,
				Sizes:     standardSizes(),
			},
		},
		SleeveOptions: map[enums.SleeveStyle]SleeveOption{
			enums.SleeveLong: {
				Style:     enums.SleeveLong,
				Label:     "Long Sleeve",
				Surcharge: 5000,
			},
			enums.SleeveRuffled: {
				Style:     enums.SleeveRuffled,
				Label:     "Ruffled Sleeve",
				Surcharge: 7000,
			},
		},
		Accessories: map[enums.Accessory]AccessoryItem{
			enums.AccessoryCap: {
				Type:  enums.AccessoryCap,
				Label: "Cap",
				Price: 35000,
			},
			enums.AccessoryMug: {
				Type:  enums.AccessoryMug,
				Label: "Mug",
				Price: 25000,
			},
		},
	}
}

// UnitPrice returns base price plus size surcharge for one unit of the
// garment in the given size. Unknown garments or size ids are an error,
// never a silent zero.
func (c *Catalog) UnitPrice(garment enums.GarmentType, sizeID string) (int64, error) {
	g, ok := c.Garments[garment]
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown garment type %q", garment))
	}
	for _, size := range g.Sizes {
		if size.ID == sizeID {
			return g.BasePrice + size.Surcharge, nil
		}
	}
	return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown size %q for garment %q", sizeID, garment))
}

// SleeveSurcharge returns the per-unit surcharge for a sleeve style.
func (c *Catalog) SleeveSurcharge(style enums.SleeveStyle) (int64, error) {
	opt, ok := c.SleeveOptions[style]
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sleeve style %q", style))
	}
	return opt.Surcharge, nil
}

// AccessoryPrice returns the flat unit price for an accessory.
func (c *Catalog) AccessoryPrice(accessory enums.Accessory) (int64, error) {
	item, ok := c.Accessories[accessory]
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown accessory %q", accessory))
	}
	return item.Price, nil
}

// HasSize reports whether the garment offers the given size id.
func (c *Catalog) HasSize(garment enums.GarmentType, sizeID string) bool {
	g, ok := c.Garments[garment]
	if !ok {
		return false
	}
	for _, size := range g.Sizes {
		if size.ID == sizeID {
			return true
		}
	}
	return false
}
