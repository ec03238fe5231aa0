package response

import (
	"time"

	"storage-marketplace/internal/data/entity"
)

type BookingItemResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Quantity   int    `json:"quantity"`
}

type BookingResponse struct {
	ID                string                `json:"id"`
	BookingRef        string                `json:"booking_ref"`
	ListingID         string                `json:"listing_id"`
	SeekerID          string                `json:"seeker_id"`
	StartDate         string                `json:"start_date"`
	EndDate           string                `json:"end_date"`
	TotalCost         float64               `json:"total_cost"`
	Status            entity.BookingStatus  `json:"status"`
	RequestedSqMeters *float64              `json:"requested_sq_meters,omitempty"`
	Items             []BookingItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, items []*entity.BookingItem) BookingResponse {
	resp := BookingResponse{
		ID:                booking.ID.String(),
		BookingRef:        booking.BookingRef,
		ListingID:         booking.ListingID.String(),
		SeekerID:          booking.SeekerID.String(),
		StartDate:         booking.StartDate.Format("2006-01-02"),
		EndDate:           booking.EndDate.Format("2006-01-02"),
		TotalCost:         booking.TotalCost,
		Status:            booking.Status,
		RequestedSqMeters: booking.RequestedSqMeters,
		CreatedAt:         booking.CreatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, BookingItemResponse{
			ID:         item.ID.String(),
			CategoryID: item.CategoryID.String(),
			Quantity:   item.Quantity,
		})
	}

	return resp
}
