package usecase

import (
	"storage-marketplace/internal/data/repository"
	"storage-marketplace/pkg/database"
	"storage-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Listing ListingService
	Booking BookingService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(db, repo, config, log),
		User:    NewUserService(db, repo, config, log),
		Listing: NewListingService(db, repo, log),
		Booking: NewBookingService(db, repo, log),
	}
}
