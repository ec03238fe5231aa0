package request

type ListingImage struct {
	FileURL   string `json:"file_url" validate:"required,url"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateListingRequest carries exactly one capacity field: ItemSlotCapacity
// for item_slot listings, SquareMeters for square_meter ones. The listing
// service rejects a mismatch.
type CreateListingRequest struct {
	Title            string         `json:"title" validate:"required,min=3,max=100"`
	Description      string         `json:"description" validate:"required"`
	StorageType      string         `json:"storage_type" validate:"required,oneof=item_slot square_meter"`
	ItemSlotCapacity *int           `json:"item_slot_capacity,omitempty" validate:"omitempty,gt=0"`
	SquareMeters     *float64       `json:"square_meters,omitempty" validate:"omitempty,gt=0"`
	PricePerMonth    float64        `json:"price_per_month" validate:"required,gt=0"`
	StreetName       string         `json:"street_name" validate:"required"`
	HouseNumber      string         `json:"house_number" validate:"required"`
	City             string         `json:"city" validate:"required"`
	PostalCode       string         `json:"postal_code" validate:"required"`
	Images           []ListingImage `json:"images" validate:"omitempty,dive"`
}
