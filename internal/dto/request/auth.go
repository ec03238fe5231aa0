package request

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,strongpassword"`
	Role        string `json:"role" validate:"required,oneof=provider seeker"`
	StreetName  string `json:"street_name" validate:"required"`
	HouseNumber string `json:"house_number" validate:"required"`
	City        string `json:"city" validate:"required"`
	PostalCode  string `json:"postal_code" validate:"required"`
}

// LoginRequest takes a single identifier that may be a username or an
// email; the store decides which by its shape.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}
