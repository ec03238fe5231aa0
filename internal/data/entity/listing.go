package entity

import (
	"github.com/google/uuid"
)

type StorageType string

const (
	StorageTypeItemSlot    StorageType = "item_slot"
	StorageTypeSquareMeter StorageType = "square_meter"
)

type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "active"
	ListingStatusInactive ListingStatus = "inactive"
)

// Listing holds exactly one capacity column depending on StorageType:
// ItemSlotCapacity for item_slot listings, SquareMeters for square_meter
// listings. The other column stays NULL.
type Listing struct {
	BaseSimple
	ProviderID       uuid.UUID     `db:"provider_id"`
	AddressID        uuid.UUID     `db:"address_id"`
	Title            string        `db:"title"`
	Description      string        `db:"description"`
	StorageType      StorageType   `db:"storage_type"`
	ItemSlotCapacity *int          `db:"item_slot_capacity"`
	SquareMeters     *float64      `db:"square_meters"`
	PricePerMonth    float64       `db:"price_per_month"`
	Status           ListingStatus `db:"status"`
}
