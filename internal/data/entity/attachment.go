package entity

import "github.com/google/uuid"

// Attachment is an image tied to a listing. At most one attachment per
// listing is meant to carry IsPrimary, but no uniqueness constraint
// enforces that; readers sort primary-first and take the first row.
type Attachment struct {
	BaseSimple
	ListingID uuid.UUID `db:"listing_id"`
	FileURL   string    `db:"file_url"`
	IsPrimary bool      `db:"is_primary"`
}
