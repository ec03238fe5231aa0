package response

import (
	"time"

	"storage-marketplace/internal/data/entity"
)

type UserResponse struct {
	ID                string          `json:"id"`
	Username          string          `json:"username"`
	Email             string          `json:"email"`
	Role              entity.UserRole `json:"role"`
	IsVerified        bool            `json:"is_verified"`
	ProfilePictureURL *string         `json:"profile_picture_url,omitempty"`
	RatingAvg         float64         `json:"rating_avg"`
	RatingCount       int             `json:"rating_count"`
	LastLoginAt       *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

type AddressResponse struct {
	ID         string `json:"id"`
	StreetName string `json:"street_name"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type UserProfileResponse struct {
	UserResponse
	Address *AddressResponse `json:"address,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                user.ID.String(),
		Username:          user.Username,
		Email:             user.Email,
		Role:              user.Role,
		IsVerified:        user.IsVerified,
		ProfilePictureURL: user.ProfilePictureURL,
		RatingAvg:         user.RatingAvg,
		RatingCount:       user.RatingCount,
		LastLoginAt:       user.LastLoginAt,
		CreatedAt:         user.CreatedAt,
	}
}

func AddressToResponse(address *entity.Address) *AddressResponse {
	if address == nil {
		return nil
	}
	return &AddressResponse{
		ID:         address.ID.String(),
		StreetName: address.StreetName,
		City:       address.City,
		PostalCode: address.PostalCode,
	}
}
