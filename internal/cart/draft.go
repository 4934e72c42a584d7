package cart

import (
	"fmt"
	"strings"

	"github.com/hanifwidodo/merchorder-backend/internal/catalog"
	"github.com/hanifwidodo/merchorder-backend/internal/pricing"
	"github.com/hanifwidodo/merchorder-backend/pkg/enums"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/types"
)

// Draft is an in-progress order being assembled before submission. It
// keeps the selection internally consistent at every step: quantities
// never go negative and sleeve counts never exceed the units of their
// garment. Draft is not safe for concurrent use; each session owns one.
type Draft struct {
	catalog   *catalog.Catalog
	selection types.Selection
	name      string
	region    string
}

// NewDraft builds an empty draft priced against the given catalog.
func NewDraft(c *catalog.Catalog) (*Draft, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog required")
	}
	return &Draft{
		catalog:   c,
		selection: types.NewSelection(),
	}, nil
}

// NewDraftFromSelection rebuilds a draft from a previously captured
// selection, e.g. one posted by a client. Size and accessory
// quantities pass through the same clamping as interactive edits;
// sleeve counts are kept verbatim so ValidateForSubmit can reject a
// selection whose sleeves outgrew its garments instead of silently
// shrinking it.
func NewDraftFromSelection(c *catalog.Catalog, sel types.Selection) (*Draft, error) {
	d, err := NewDraft(c)
	if err != nil {
		return nil, err
	}
	for garment, sizes := range sel.GarmentQuantities {
		for sizeID, qty := range sizes {
			if err := d.SetSizeQuantity(garment, sizeID, qty); err != nil {
				return nil, err
			}
		}
	}
	for accessory, qty := range sel.AccessoryQuantities {
		if err := d.SetAccessoryQuantity(accessory, qty); err != nil {
			return nil, err
		}
	}
	for garment, pair := range sel.SleeveCounts {
		if !garment.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown garment type %q", garment))
		}
		if pair.Long < 0 {
			pair.Long = 0
		}
		if pair.Ruffled < 0 {
			pair.Ruffled = 0
		}
		d.selection.SleeveCounts[garment] = pair
	}
	return d, nil
}

// SetSizeQuantity records the quantity for one garment size. Negative
// quantities clamp to zero. When a decrease drops the garment's unit
// count below its sleeve upgrades, long is clamped to the new total
// first and ruffled to the units long leaves over.
func (d *Draft) SetSizeQuantity(garment enums.GarmentType, sizeID string, qty int) error {
	if !d.catalog.HasSize(garment, sizeID) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown size %q for garment %q", sizeID, garment))
	}
	if qty < 0 {
		qty = 0
	}

	sizes := d.selection.GarmentQuantities[garment]
	if sizes == nil {
		sizes = map[string]int{}
		d.selection.GarmentQuantities[garment] = sizes
	}
	sizes[sizeID] = qty

	d.reclampSleeves(garment)
	return nil
}

// SetSleeveCount records how many units of the garment carry a sleeve
// upgrade. A count exceeding the garment's current unit total (counting
// the other style's units too) is rejected without mutating the draft;
// the caller simply sees the count unchanged. Negative counts clamp to
// zero.
func (d *Draft) SetSleeveCount(garment enums.GarmentType, style enums.SleeveStyle, count int) error {
	if !garment.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown garment type %q", garment))
	}
	if !style.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sleeve style %q", style))
	}
	if count < 0 {
		count = 0
	}

	units := d.selection.UnitsOf(garment)
	pair := d.selection.SleeveCounts[garment]

	other := pair.Ruffled
	if style == enums.SleeveRuffled {
		other = pair.Long
	}
	if count+other > units {
		// Precondition not met: leave the previous count in place.
		return nil
	}

	switch style {
	case enums.SleeveLong:
		pair.Long = count
	case enums.SleeveRuffled:
		pair.Ruffled = count
	}
	d.selection.SleeveCounts[garment] = pair
	return nil
}

// SetAccessoryQuantity records the quantity for an accessory, clamping
// negatives to zero.
func (d *Draft) SetAccessoryQuantity(accessory enums.Accessory, qty int) error {
	if !accessory.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown accessory %q", accessory))
	}
	if qty < 0 {
		qty = 0
	}
	d.selection.AccessoryQuantities[accessory] = qty
	return nil
}

// SetIdentity records the submitter name and region for the draft.
func (d *Draft) SetIdentity(name, region string) {
	d.name = strings.TrimSpace(name)
	d.region = strings.TrimSpace(region)
}

// Name returns the submitter name currently on the draft.
func (d *Draft) Name() string { return d.name }

// Region returns the region currently on the draft.
func (d *Draft) Region() string { return d.region }

// Selection returns a deep copy of the current selection.
func (d *Draft) Selection() types.Selection {
	return d.selection.Clone()
}

// SleeveCount returns the current count for one garment/style pair.
func (d *Draft) SleeveCount(garment enums.GarmentType, style enums.SleeveStyle) int {
	pair := d.selection.SleeveCounts[garment]
	if style == enums.SleeveRuffled {
		return pair.Ruffled
	}
	return pair.Long
}

// SizeQuantity returns the current quantity for one garment/size pair.
func (d *Draft) SizeQuantity(garment enums.GarmentType, sizeID string) int {
	return d.selection.GarmentQuantities[garment][sizeID]
}

// Quote prices the current selection.
func (d *Draft) Quote() (pricing.Quote, error) {
	return pricing.Price(d.catalog, d.selection)
}

// UnitsOf returns the garment's current unit total across all sizes.
func (d *Draft) UnitsOf(garment enums.GarmentType) int {
	return d.selection.UnitsOf(garment)
}

// ValidateForSubmit checks the draft is complete enough to persist:
// sleeve counts within garment totals, at least one item, and identity
// filled in. Returns the first violation found.
func (d *Draft) ValidateForSubmit() error {
	for _, garment := range enums.GarmentTypes() {
		pair := d.selection.SleeveCounts[garment]
		if pair.Total() > d.selection.UnitsOf(garment) {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("sleeve upgrades exceed %s unit count", garment))
		}
	}
	q, err := d.Quote()
	if err != nil {
		return err
	}
	if q.TotalItems <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if d.name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "submitter name is required")
	}
	if d.region == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "region is required")
	}
	return nil
}

// reclampSleeves shrinks the garment's sleeve counts until their sum
// fits within the garment's unit total. Long is clamped against the
// new total first; ruffled then takes whatever units remain.
func (d *Draft) reclampSleeves(garment enums.GarmentType) {
	units := d.selection.UnitsOf(garment)
	pair := d.selection.SleeveCounts[garment]

	if pair.Total() <= units {
		return
	}

	if pair.Long > units {
		pair.Long = units
	}
	if pair.Ruffled > units-pair.Long {
		pair.Ruffled = units - pair.Long
	}
	d.selection.SleeveCounts[garment] = pair
}
