package pricing

import (
	"fmt"

	"github.com/hanifwidodo/merchorder-backend/internal/catalog"
	"github.com/hanifwidodo/merchorder-backend/pkg/enums"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/types"
)

// Quote is a fully-computed price breakdown for a selection. All values
// are whole rupiah; no floats are involved anywhere.
type Quote struct {
	GarmentSubtotal   int64 `json:"garmentSubtotal"`
	SleeveSubtotal    int64 `json:"sleeveSubtotal"`
	AccessorySubtotal int64 `json:"accessorySubtotal"`
	TotalItems        int   `json:"totalItems"`
	TotalPrice        int64 `json:"totalPrice"`
}

// Price computes the deterministic quote for a selection against the
// catalog. Unknown size ids, garments, sleeve styles, or accessories
// surface as validation errors rather than pricing to zero.
func Price(c *catalog.Catalog, sel types.Selection) (Quote, error) {
	var q Quote

	for garment := range sel.GarmentQuantities {
		if !garment.IsValid() {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown garment type %q", garment))
		}
	}
	for accessory := range sel.AccessoryQuantities {
		if !accessory.IsValid() {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown accessory %q", accessory))
		}
	}

	// Iterate in declared enum order so totals accumulate deterministically.
	for _, garment := range enums.GarmentTypes() {
		sizes := sel.GarmentQuantities[garment]
		for sizeID, qty := range sizes {
			if qty <= 0 {
				continue
			}
			unit, err := c.UnitPrice(garment, sizeID)
			if err != nil {
				return Quote{}, err
			}
			q.GarmentSubtotal += unit * int64(qty)
			q.TotalItems += qty
		}

		pair := sel.SleeveCounts[garment]
		if pair.Long > 0 {
			surcharge, err := c.SleeveSurcharge(enums.SleeveLong)
			if err != nil {
				return Quote{}, err
			}
			q.SleeveSubtotal += surcharge * int64(pair.Long)
		}
		if pair.Ruffled > 0 {
			surcharge, err := c.SleeveSurcharge(enums.SleeveRuffled)
			if err != nil {
				return Quote{}, err
			}
			q.SleeveSubtotal += surcharge * int64(pair.Ruffled)
		}
	}

	for _, accessory := range enums.Accessories() {
		qty := sel.AccessoryQuantities[accessory]
		if qty <= 0 {
			continue
		}
		unit, err := c.AccessoryPrice(accessory)
		if err != nil {
			return Quote{}, err
		}
		q.AccessorySubtotal += unit * int64(qty)
		q.TotalItems += qty
	}

	q.TotalPrice = q.GarmentSubtotal + q.SleeveSubtotal + q.AccessorySubtotal
	return q, nil
}
