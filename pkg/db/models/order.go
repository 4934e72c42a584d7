package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanifwidodo/merchorder-backend/pkg/types"
)

// Order is the immutable persisted record produced from a submitted draft.
// Totals are frozen at submission time and never recomputed, so records stay
// stable across later catalog changes. The json tags define the produced
// record layout consumed by the admin feed and must round-trip exactly.
type Order struct {
	ID                  uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Collection          string                    `gorm:"column:collection;not null;index" json:"-"`
	SubmitterName       string                    `gorm:"column:submitter_name;not null" json:"submitterName"`
	Region              string                    `gorm:"column:region;not null" json:"region"`
	GarmentQuantities   types.GarmentQuantities   `gorm:"column:garment_quantities;type:jsonb;serializer:json" json:"garmentQuantities"`
	SleeveCounts        types.SleeveCounts        `gorm:"column:sleeve_counts;type:jsonb;serializer:json" json:"sleeveCounts"`
	AccessoryQuantities types.AccessoryQuantities `gorm:"column:accessory_quantities;type:jsonb;serializer:json" json:"accessoryQuantities"`
	TotalItems          int                       `gorm:"column:total_items;not null" json:"totalItems"`
	TotalPrice          int64                     `gorm:"column:total_price;not null" json:"totalPrice"`
	CreatedAt           time.Time                 `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
