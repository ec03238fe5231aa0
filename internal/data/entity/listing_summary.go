package entity

import (
	"time"

	"github.com/google/uuid"
)

// ListingSummary is the projection returned by the browse and search
// queries: one row per listing with its address and primary image joined
// in, ordered newest first.
type ListingSummary struct {
	ID               uuid.UUID
	ProviderID       uuid.UUID
	Title            string
	StorageType      StorageType
	ItemSlotCapacity *int
	SquareMeters     *float64
	PricePerMonth    float64
	Status           ListingStatus
	StreetName       string
	City             string
	PostalCode       string
	PrimaryImageURL  *string
	CreatedAt        time.Time
}
