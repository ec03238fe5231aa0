package response

import (
	"time"

	"storage-marketplace/internal/data/entity"
)

type AttachmentResponse struct {
	ID        string `json:"id"`
	FileURL   string `json:"file_url"`
	IsPrimary bool   `json:"is_primary"`
}

type ListingResponse struct {
	ID               string               `json:"id"`
	ProviderID       string               `json:"provider_id"`
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	StorageType      entity.StorageType   `json:"storage_type"`
	ItemSlotCapacity *int                 `json:"item_slot_capacity,omitempty"`
	SquareMeters     *float64             `json:"square_meters,omitempty"`
	PricePerMonth    float64              `json:"price_per_month"`
	Status           entity.ListingStatus `json:"status"`
	Address          *AddressResponse     `json:"address,omitempty"`
	Attachments      []AttachmentResponse `json:"attachments"`
	CreatedAt        time.Time            `json:"created_at"`
}

type ListingSummaryResponse struct {
	ID               string               `json:"id"`
	ProviderID       string               `json:"provider_id"`
	Title            string               `json:"title"`
	StorageType      entity.StorageType   `json:"storage_type"`
	ItemSlotCapacity *int                 `json:"item_slot_capacity,omitempty"`
	SquareMeters     *float64             `json:"square_meters,omitempty"`
	PricePerMonth    float64              `json:"price_per_month"`
	Status           entity.ListingStatus `json:"status"`
	City             string               `json:"city"`
	StreetName       string               `json:"street_name"`
	PrimaryImageURL  *string              `json:"primary_image_url,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

// ListingToResponse aggregates the attachment rows primary-first.
func ListingToResponse(listing *entity.Listing, address *entity.Address, attachments []*entity.Attachment) ListingResponse {
	resp := ListingResponse{
		ID:               listing.ID.String(),
		ProviderID:       listing.ProviderID.String(),
		Title:            listing.Title,
		Description:      listing.Description,
		StorageType:      listing.StorageType,
		ItemSlotCapacity: listing.ItemSlotCapacity,
		SquareMeters:     listing.SquareMeters,
		PricePerMonth:    listing.PricePerMonth,
		Status:           listing.Status,
		Address:          AddressToResponse(address),
		Attachments:      make([]AttachmentResponse, 0, len(attachments)),
		CreatedAt:        listing.CreatedAt,
	}

	for _, a := range attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:        a.ID.String(),
			FileURL:   a.FileURL,
			IsPrimary: a.IsPrimary,
		})
	}

	return resp
}

func ListingSummaryToResponse(s *entity.ListingSummary) ListingSummaryResponse {
	return ListingSummaryResponse{
		ID:               s.ID.String(),
		ProviderID:       s.ProviderID.String(),
		Title:            s.Title,
		StorageType:      s.StorageType,
		ItemSlotCapacity: s.ItemSlotCapacity,
		SquareMeters:     s.SquareMeters,
		PricePerMonth:    s.PricePerMonth,
		Status:           s.Status,
		City:             s.City,
		StreetName:       s.StreetName,
		PrimaryImageURL:  s.PrimaryImageURL,
		CreatedAt:        s.CreatedAt,
	}
}
