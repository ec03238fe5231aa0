package request

type BookingItemRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid4"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

// CreateBookingRequest: Items is required for item_slot listings,
// RequestedSqMeters for square_meter ones; the booking service checks the
// sub-structure against the listing's storage type. TotalCost is computed
// from the listing price and date range when omitted.
type CreateBookingRequest struct {
	ListingID         string               `json:"listing_id" validate:"required,uuid4"`
	StartDate         string               `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate           string               `json:"end_date" validate:"required,datetime=2006-01-02"`
	TotalCost         *float64             `json:"total_cost,omitempty" validate:"omitempty,gt=0"`
	RequestedSqMeters *float64             `json:"requested_sq_meters,omitempty" validate:"omitempty,gt=0"`
	Items             []BookingItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected cancelled"`
}
