package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleProvider UserRole = "provider"
	RoleSeeker   UserRole = "seeker"
)

type User struct {
	Base
	Username          string     `db:"username"`
	Email             string     `db:"email"`
	PasswordHash      string     `db:"password"`
	Role              UserRole   `db:"role"`
	AddressID         uuid.UUID  `db:"address_id"`
	IsVerified        bool       `db:"is_verified"`
	ProfilePictureURL *string    `db:"profile_picture_url"`
	RatingAvg         float64    `db:"rating_avg"`
	RatingCount       int        `db:"rating_count"`
	LastLoginAt       *time.Time `db:"last_login_at"`
}
