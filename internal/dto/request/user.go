package request

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,strongpassword"`
}

type UpdateVerificationRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid4"`
	IsVerified bool   `json:"is_verified"`
}

// UpdateUserDetailsRequest re-resolves the address when any address field
// is supplied; empty fields keep their stored values.
type UpdateUserDetailsRequest struct {
	Username    string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	StreetName  string `json:"street_name,omitempty"`
	HouseNumber string `json:"house_number,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
}

type UpdateProfilePictureRequest struct {
	PictureURL string `json:"picture_url" validate:"required,url"`
}
